// Copyright 2014 The go-ethereum Authors
// (original work)
// Copyright 2026 The Erigon Authors
// (modifications)
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

//go:build !linux

package precompiles

import "math/big"

var bigOne = big.NewInt(1)

// modExpBytes computes base ** exp modulo mod, all big-endian unsigned.
// A zero modulus yields an empty result (the caller pads to width).
func modExpBytes(baseBytes, expBytes, modBytes []byte) []byte {
	var (
		base = new(big.Int).SetBytes(baseBytes)
		exp  = new(big.Int).SetBytes(expBytes)
		mod  = new(big.Int).SetBytes(modBytes)
	)
	switch {
	case mod.BitLen() == 0:
		// Modulo 0 is undefined, return zero
		return []byte{}
	case base.Cmp(bigOne) == 0:
		// If base == 1, then we can just return base % mod (if mod >= 1, which it is)
		return base.Mod(base, mod).Bytes()
	default:
		return base.Exp(base, exp, mod).Bytes()
	}
}
