// Copyright 2025 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Package bn256 adapts the gnark-crypto bn254 implementation to the byte
// layout the EVM uses for the alt_bn128 precompiled contracts (EIP-196 and
// EIP-197): affine coordinates as unsigned 32-byte big-endian field
// elements, Fp2 coefficients serialized with the i-coefficient first, and
// the all-zero encoding standing for the point at infinity.
//
// The curve parameters are package-level values inside gnark-crypto,
// initialized by the Go runtime before any function here can run, so no
// explicit setup call is needed and concurrent first callers are safe.
package bn256

import (
	"encoding/binary"
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

var (
	errInvalidInputSize   = errors.New("invalid input size")
	errPointNotOnCurve    = errors.New("invalid point: not on curve")
	errPointNotInSubgroup = errors.New("invalid point: subgroup check failed")
)

// UnmarshalG1 unmarshals a given input [32-byte X | 32-byte Y] slice to a
// G1Affine point. The all-zero input decodes to the point at infinity;
// anything else must have both coordinates below the field modulus and
// satisfy the curve equation. G1 has cofactor one, so the curve check is
// also the subgroup check.
func UnmarshalG1(input []byte, point *bn254.G1Affine) error {
	if len(input) != 64 {
		return errInvalidInputSize
	}

	if isAllZeroes(input) {
		return nil
	}

	// read X and Y coordinates
	if err := point.X.SetBytesCanonical(input[:32]); err != nil {
		return err
	}
	if err := point.Y.SetBytesCanonical(input[32:64]); err != nil {
		return err
	}

	if !point.IsOnCurve() {
		return errPointNotOnCurve
	}
	return nil
}

// MarshalG1 marshals a given G1Affine point to byte slice with
// [32-byte X | 32-byte Y] form. The point at infinity yields 64 zero bytes.
func MarshalG1(point *bn254.G1Affine, ret []byte) []byte {
	xBytes := point.X.Bytes()
	yBytes := point.Y.Bytes()
	ret = append(ret, xBytes[:]...)
	ret = append(ret, yBytes[:]...)
	return ret
}

// UnmarshalG2 unmarshals a 128-byte [X | Y] slice to a G2Affine point.
// Each coordinate is an Fp2 element serialized as [32-byte c1 | 32-byte c0].
// The all-zero input decodes to the point at infinity; anything else must
// be on the twist and in the order-r subgroup.
func UnmarshalG2(input []byte, point *bn254.G2Affine) error {
	if len(input) != 128 {
		return errInvalidInputSize
	}

	if isAllZeroes(input) {
		return nil
	}

	if err := point.X.A1.SetBytesCanonical(input[:32]); err != nil {
		return err
	}
	if err := point.X.A0.SetBytesCanonical(input[32:64]); err != nil {
		return err
	}
	if err := point.Y.A1.SetBytesCanonical(input[64:96]); err != nil {
		return err
	}
	if err := point.Y.A0.SetBytesCanonical(input[96:128]); err != nil {
		return err
	}

	if !point.IsOnCurve() {
		return errPointNotOnCurve
	}
	if !point.IsInSubGroup() {
		return errPointNotInSubgroup
	}
	return nil
}

// PairingCheck computes whether ∏ e(g1[i], g2[i]) equals one in GT. Pairs
// where either point is at infinity contribute the identity to the product
// and are skipped; the empty product passes.
func PairingCheck(g1 []bn254.G1Affine, g2 []bn254.G2Affine) (bool, error) {
	p := make([]bn254.G1Affine, 0, len(g1))
	q := make([]bn254.G2Affine, 0, len(g2))
	for i := range g1 {
		if g1[i].IsInfinity() || g2[i].IsInfinity() {
			continue
		}
		p = append(p, g1[i])
		q = append(q, g2[i])
	}
	if len(p) == 0 {
		return true, nil
	}
	return bn254.PairingCheck(p, q)
}

func isAllZeroes(input []byte) bool {
	for i := 0; i < len(input); i += 8 {
		if 0 != binary.BigEndian.Uint64(input[i:i+8]) {
			return false
		}
	}
	return true
}
