// Copyright 2017 The go-ethereum Authors
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
	"sync"

	"github.com/erigontech/secp256k1"
)

// Recovery contexts are expensive to build and safe to reuse, but must not
// be shared by concurrent callers. The pool hands each caller its own
// lazily constructed context.
var contextPool = sync.Pool{
	New: func() any { return secp256k1.NewContext() },
}

// Ecrecover returns the uncompressed public key that created the given
// signature. sig must be in the 65-byte [R || S || V] format with V being
// 0 or 1.
func Ecrecover(hash, sig []byte) ([]byte, error) {
	context := contextPool.Get().(*secp256k1.Context)
	defer contextPool.Put(context)
	return EcrecoverWithContext(context, hash, sig)
}

// EcrecoverWithContext is like Ecrecover, but uses the given recovery
// context instead of borrowing one from the pool.
func EcrecoverWithContext(context *secp256k1.Context, hash, sig []byte) ([]byte, error) {
	return secp256k1.RecoverPubkeyWithContext(context, hash, sig, nil)
}
