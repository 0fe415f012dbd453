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

package crypto

import (
	"bytes"
	"encoding/hex"
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/evm-precompiles/common"
)

// These tests are sanity checks.
// They should ensure that we don't e.g. use Sha3-224 instead of Sha3-256
// and that the sha3 library uses keccak-f permutation.
func TestKeccak256(t *testing.T) {
	msg := []byte("abc")
	exp, _ := hex.DecodeString("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")
	checkhash(t, "Sha3-256", func(in []byte) []byte { return Keccak256(in) }, msg, exp)
}

func checkhash(t *testing.T, name string, f func([]byte) []byte, msg, exp []byte) {
	sum := f(msg)
	if !bytes.Equal(exp, sum) {
		t.Fatalf("hash %s mismatch: want: %x have: %x", name, exp, sum)
	}
}

func TestValidateSignatureValues(t *testing.T) {
	t.Parallel()
	check := func(expected bool, v byte, r, s *uint256.Int) {
		if ValidateSignatureValues(v, r, s, false) != expected {
			t.Errorf("mismatch for v: %d r: %v s: %v want: %v", v, r, s, expected)
		}
	}
	minusOne := new(uint256.Int).SetAllOne()
	one := uint256.NewInt(1)
	zero := uint256.NewInt(0)
	secp256k1nMinus1 := new(uint256.Int).Sub(secp256k1N, one)

	// correct v,r,s
	check(true, 0, one, one)
	check(true, 1, one, one)
	// incorrect v, correct r,s
	check(false, 2, one, one)
	check(false, 3, one, one)

	// incorrect v, incorrect/correct r,s
	check(false, 2, zero, zero)
	check(false, 2, zero, one)
	check(false, 2, one, zero)
	check(false, 2, one, one)

	// incorrect r,s
	check(false, 0, zero, zero)
	check(false, 0, zero, one)
	check(false, 0, one, zero)

	// correct sig with max r,s
	check(true, 0, secp256k1nMinus1, secp256k1nMinus1)
	// correct v, combinations of incorrect r,s at upper limit
	check(false, 0, secp256k1N, secp256k1nMinus1)
	check(false, 0, secp256k1nMinus1, secp256k1N)
	check(false, 0, secp256k1N, secp256k1N)

	// current callers ensure r,s cannot be negative, but let's test for that too
	check(false, 0, minusOne, one)
	check(false, 0, one, minusOne)
}

// Recovering the signing key of a known good signature must yield the
// expected address.
func TestEcrecover(t *testing.T) {
	t.Parallel()

	hash := common.Hex2Bytes("38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e")
	sig := common.Hex2Bytes("38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e789d1dd423d25f0772d2748d60f7e4b81bb14d086eba8e8e8efb6dcff8a4ae0200")

	pubKey, err := Ecrecover(hash, sig)
	require.NoError(t, err)
	require.NotEmpty(t, pubKey)
	assert.Equal(t, byte(4), pubKey[0])

	addr := Keccak256(pubKey[1:])[12:]
	assert.Equal(t, "ceaccac640adf55b2028469bd36ba501f28b699d", common.Bytes2Hex(addr))
}

func TestEcrecoverConcurrent(t *testing.T) {
	t.Parallel()

	hash := common.Hex2Bytes("38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e")
	sig := common.Hex2Bytes("38d18acb67d25c8bb9942764b62f18e17054f66a817bd4295423adf9ed98873e789d1dd423d25f0772d2748d60f7e4b81bb14d086eba8e8e8efb6dcff8a4ae0200")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pubKey, err := Ecrecover(hash, sig)
			assert.NoError(t, err)
			assert.NotEmpty(t, pubKey)
		}()
	}
	wg.Wait()
}
