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

// Package precompiles implements the nine precompiled contracts the EVM
// exposes at addresses 0x01 through 0x09, each as a pair of a gas-cost
// function and a run function. The caller dispatches by table index,
// charges the gas cost against its own budget, and owns the returned
// output bytes.
package precompiles

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"math"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/holiman/uint256"
	//lint:ignore SA1019 consensus code needs the legacy digest
	"golang.org/x/crypto/ripemd160"

	"github.com/erigontech/evm-precompiles/common"
	"github.com/erigontech/evm-precompiles/crypto"
	"github.com/erigontech/evm-precompiles/crypto/blake2b"
	"github.com/erigontech/evm-precompiles/crypto/bn256"
)

// Revision identifies the active protocol rule set, numbered on the EVMC
// scale. Only the Istanbul and Berlin thresholds change any behavior here;
// smaller values mean "pre-Istanbul" and "pre-Berlin" respectively.
type Revision int32

const (
	Frontier         Revision = 0
	Homestead        Revision = 1
	TangerineWhistle Revision = 2
	SpuriousDragon   Revision = 3
	Byzantium        Revision = 4
	Constantinople   Revision = 5
	Petersburg       Revision = 6
	Istanbul         Revision = 7
	Berlin           Revision = 8
)

// GasFunc computes the execution price of a precompile for the given input
// under the given revision. It is total: costs that do not fit 64 bits come
// back as math.MaxUint64, which no budget can cover.
type GasFunc func(input []byte, rev Revision) uint64

// RunFunc produces the output bytes for the given input. The input is
// read-only; the returned slice is owned by the caller. A nil error with a
// nil or empty slice is a consensus-valid empty output, not a fault.
type RunFunc func(input []byte) ([]byte, error)

// Contract is a precompiled contract: a gas function and a run function.
type Contract struct {
	Gas GasFunc
	Run RunFunc
}

// Table indices of the nine contracts. The index plus one is the contract's
// EVM address.
const (
	Ecrec = iota
	Sha256
	Rip160
	Identity
	ExpMod
	BnAdd
	BnMul
	Snarkv
	Blake2F

	NumContracts
)

// Contracts is the dispatch table. Callers select the active prefix with
// CountForRevision.
var Contracts = [NumContracts]Contract{
	{ecrecGas, ecrecRun},
	{sha256Gas, sha256Run},
	{rip160Gas, rip160Run},
	{identityGas, identityRun},
	{expModGas, expModRun},
	{bnAddGas, bnAddRun},
	{bnMulGas, bnMulRun},
	{snarkvGas, snarkvRun},
	{blake2FGas, blake2FRun},
}

// CountForRevision returns how many leading table entries are active under
// the given revision.
func CountForRevision(rev Revision) int {
	switch {
	case rev >= Istanbul:
		return NumContracts
	case rev >= Byzantium:
		return Blake2F
	default:
		return ExpMod
	}
}

// ErrOutOfGas is returned by RunContract when the supplied gas does not
// cover the contract's cost.
var ErrOutOfGas = errors.New("out of gas")

// RunContract charges the contract's gas cost against suppliedGas and runs
// it. It returns the output bytes, the remaining gas, and any error that
// occurred.
func RunContract(c Contract, input []byte, suppliedGas uint64, rev Revision) ([]byte, uint64, error) {
	gasCost := c.Gas(input, rev)
	if suppliedGas < gasCost {
		return nil, 0, ErrOutOfGas
	}
	suppliedGas -= gasCost
	output, err := c.Run(input)
	return output, suppliedGas, err
}

// getData returns a slice from the data based on the start and size and
// pads up to size with zero's. This function is overflow safe.
func getData(data []byte, start uint64, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length || end < start {
		end = length
	}
	return common.RightPadBytes(data[start:end], int(size))
}

// ECRECOVER implemented as a native contract.

var (
	num27 = uint256.NewInt(27)
	num28 = uint256.NewInt(28)
)

func ecrecGas(_ []byte, _ Revision) uint64 {
	return EcrecoverGas
}

func ecrecRun(input []byte) ([]byte, error) {
	const ecRecoverInputLength = 128

	input = common.RightPadBytes(input, ecRecoverInputLength)
	// "input" is (hash, v, r, s), each 32 bytes,
	// but for the recovery routine we want (r, s, v)

	v := new(uint256.Int).SetBytes(input[32:64])
	r := new(uint256.Int).SetBytes(input[64:96])
	s := new(uint256.Int).SetBytes(input[96:128])

	// v is a full 256-bit word; any high bit set means rejection
	if !v.Eq(num27) && !v.Eq(num28) {
		return nil, nil
	}
	// tighter sig s values in homestead only apply to tx sigs
	if !crypto.ValidateSignatureValues(byte(v.Uint64()-27), r, s, false) {
		return nil, nil
	}
	// We must make sure not to modify the 'input', so placing the 'v' along
	// with the signature needs to be done on a new allocation
	sig := make([]byte, crypto.SignatureLength)
	copy(sig, input[64:128])
	sig[crypto.RecoveryIDOffset] = byte(v.Uint64() - 27)

	pubKey, err := crypto.Ecrecover(input[:32], sig)
	if err != nil {
		return nil, nil
	}
	// the first byte of pubkey is the uncompressed point marker
	return common.LeftPadBytes(crypto.Keccak256(pubKey[1:])[12:], 32), nil
}

// SHA256 implemented as a native contract. The standard library digest
// picks up the SHA extension instructions where the CPU has them.
func sha256Gas(input []byte, _ Revision) uint64 {
	return uint64(len(input)+31)/32*Sha256PerWordGas + Sha256BaseGas
}

func sha256Run(input []byte) ([]byte, error) {
	h := sha256.Sum256(input)
	return h[:], nil
}

// RIPEMD160 implemented as a native contract.
func rip160Gas(input []byte, _ Revision) uint64 {
	return uint64(len(input)+31)/32*Ripemd160PerWordGas + Ripemd160BaseGas
}

func rip160Run(input []byte) ([]byte, error) {
	ripemd := ripemd160.New()
	ripemd.Write(input)
	return common.LeftPadBytes(ripemd.Sum(nil), 32), nil
}

// Identity (data copy) implemented as a native contract.
func identityGas(input []byte, _ Revision) uint64 {
	return uint64(len(input)+31)/32*IdentityPerWordGas + IdentityBaseGas
}

func identityRun(input []byte) ([]byte, error) {
	return common.CopyBytes(input), nil
}

// EXPMOD (big integer modular exponentiation) implemented as a native
// contract.

var (
	big1      = big.NewInt(1)
	big3      = big.NewInt(3)
	big4      = big.NewInt(4)
	big7      = big.NewInt(7)
	big8      = big.NewInt(8)
	big16     = big.NewInt(16)
	big64     = big.NewInt(64)
	big20     = big.NewInt(20)
	big96     = big.NewInt(96)
	big480    = big.NewInt(480)
	big1024   = big.NewInt(1024)
	big3072   = big.NewInt(3072)
	big199680 = big.NewInt(199680)
)

// modExpMultComplexity implements the EIP-198 multiplication complexity
// formula:
//
//	def mult_complexity(x):
//	    if x <= 64: return x ** 2
//	    elif x <= 1024: return x ** 2 // 4 + 96 * x - 3072
//	    else: return x ** 2 // 16 + 480 * x - 199680
//
// where x is max(length_of_MODULUS, length_of_BASE)
func modExpMultComplexity(x *big.Int) *big.Int {
	switch {
	case x.Cmp(big64) <= 0:
		x.Mul(x, x) // x ** 2
	case x.Cmp(big1024) <= 0:
		// (x ** 2 // 4 ) + ( 96 * x - 3072)
		x = new(big.Int).Add(
			new(big.Int).Div(new(big.Int).Mul(x, x), big4),
			new(big.Int).Sub(new(big.Int).Mul(big96, x), big3072),
		)
	default:
		// (x ** 2 // 16) + (480 * x - 199680)
		x = new(big.Int).Add(
			new(big.Int).Div(new(big.Int).Mul(x, x), big16),
			new(big.Int).Sub(new(big.Int).Mul(big480, x), big199680),
		)
	}
	return x
}

func expModGas(input []byte, rev Revision) uint64 {
	var minGas uint64
	if rev >= Berlin {
		minGas = ModExpMinGasEIP2565
	}

	var (
		baseLen256 = new(uint256.Int).SetBytes(getData(input, 0, 32))
		expLen256  = new(uint256.Int).SetBytes(getData(input, 32, 32))
		modLen256  = new(uint256.Int).SetBytes(getData(input, 64, 32))
	)
	// The zero-width case is free regardless of the declared exponent length
	if baseLen256.IsZero() && modLen256.IsZero() {
		return minGas
	}
	if !baseLen256.IsUint64() || !expLen256.IsUint64() || !modLen256.IsUint64() {
		return math.MaxUint64
	}
	baseLen := baseLen256.Uint64()
	expLen := expLen256.Uint64()

	// Retrieve the head 32 bytes of the exponent for the adjusted exponent
	// length. Inputs truncated before the exponent leave the head zero.
	var tail []byte
	if len(input) > 96 {
		tail = input[96:]
	}
	var expHead uint256.Int
	if uint64(len(tail)) > baseLen {
		n := expLen
		if n > 32 {
			n = 32
		}
		expHead.SetBytes(getData(tail, baseLen, n))
	}

	adjExpLen := new(big.Int)
	if expLen > 32 {
		adjExpLen.SetUint64(expLen - 32)
		adjExpLen.Mul(big8, adjExpLen)
	}
	if bitlen := expHead.BitLen(); bitlen > 1 {
		adjExpLen.Add(adjExpLen, big.NewInt(int64(bitlen-1)))
	}
	if adjExpLen.Sign() == 0 {
		adjExpLen.Set(big1)
	}

	// max(mod_len, base_len); both fit 64 bits here, the product below does
	// not, hence big.Int throughout
	gas := new(big.Int).SetUint64(modLen256.Uint64())
	if baseLen > modLen256.Uint64() {
		gas.SetUint64(baseLen)
	}
	if rev >= Berlin {
		// EIP-2565: words = ceil(max_len / 8), complexity = words ** 2,
		// divisor 3
		gas.Add(gas, big7)
		gas.Div(gas, big8)
		gas.Mul(gas, gas)
		gas.Mul(gas, adjExpLen)
		gas.Div(gas, big3)
	} else {
		// EIP-198, divisor 20
		gas = modExpMultComplexity(gas)
		gas.Mul(gas, adjExpLen)
		gas.Div(gas, big20)
	}

	if gas.BitLen() > 64 {
		return math.MaxUint64
	}
	if g := gas.Uint64(); g > minGas {
		return g
	}
	return minGas
}

func expModRun(input []byte) ([]byte, error) {
	var (
		baseLen = new(uint256.Int).SetBytes(getData(input, 0, 32)).Uint64()
		expLen  = new(uint256.Int).SetBytes(getData(input, 32, 32)).Uint64()
		modLen  = new(uint256.Int).SetBytes(getData(input, 64, 32)).Uint64()
	)
	if modLen == 0 {
		return []byte{}, nil
	}
	if len(input) > 96 {
		input = input[96:]
	} else {
		input = input[:0]
	}
	// Retrieve the operands and execute the exponentiation
	var (
		base = getData(input, 0, baseLen)
		exp  = getData(input, baseLen, expLen)
		mod  = getData(input, baseLen+expLen, modLen)
	)
	return common.LeftPadBytes(modExpBytes(base, exp, mod), int(modLen)), nil
}

// BN_ADD (alt_bn128 G1 point addition) implemented as a native contract.

func bnAddGas(_ []byte, rev Revision) uint64 {
	if rev >= Istanbul {
		return Bn254AddGasIstanbul
	}
	return Bn254AddGasByzantium
}

func bnAddRun(input []byte) ([]byte, error) {
	input = common.RightPadBytes(input, 128)

	var p, q bn254.G1Affine
	if err := bn256.UnmarshalG1(input[:64], &p); err != nil {
		return nil, err
	}
	if err := bn256.UnmarshalG1(input[64:128], &q); err != nil {
		return nil, err
	}
	sum := new(bn254.G1Affine).Add(&p, &q)
	return bn256.MarshalG1(sum, make([]byte, 0, 64)), nil
}

// BN_MUL (alt_bn128 G1 scalar multiplication) implemented as a native
// contract.

func bnMulGas(_ []byte, rev Revision) uint64 {
	if rev >= Istanbul {
		return Bn254ScalarMulGasIstanbul
	}
	return Bn254ScalarMulGasByzantium
}

func bnMulRun(input []byte) ([]byte, error) {
	input = common.RightPadBytes(input, 96)

	var p bn254.G1Affine
	if err := bn256.UnmarshalG1(input[:64], &p); err != nil {
		return nil, err
	}
	// the scalar is the full 256-bit word, never reduced by the group order
	n := new(big.Int).SetBytes(input[64:96])
	product := new(bn254.G1Affine).ScalarMultiplication(&p, n)
	return bn256.MarshalG1(product, make([]byte, 0, 64)), nil
}

// SNARKV (alt_bn128 pairing check) implemented as a native contract.

const snarkvStride = 192

var (
	// true32Byte is returned if the snarkv pairing check succeeds.
	true32Byte = []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}

	// false32Byte is returned if the snarkv pairing check fails.
	false32Byte = make([]byte, 32)

	// errBadPairingInput is returned if the snarkv input is invalid.
	errBadPairingInput = errors.New("bad elliptic curve pairing size")
)

func snarkvGas(input []byte, rev Revision) uint64 {
	k := uint64(len(input) / snarkvStride)
	if rev >= Istanbul {
		return Bn254PairingPerPointGasIstanbul*k + Bn254PairingBaseGasIstanbul
	}
	return Bn254PairingPerPointGasByzantium*k + Bn254PairingBaseGasByzantium
}

func snarkvRun(input []byte) ([]byte, error) {
	if len(input)%snarkvStride > 0 {
		return nil, errBadPairingInput
	}
	k := len(input) / snarkvStride

	g1s := make([]bn254.G1Affine, k)
	g2s := make([]bn254.G2Affine, k)
	for i := 0; i < k; i++ {
		if err := bn256.UnmarshalG1(input[i*snarkvStride:i*snarkvStride+64], &g1s[i]); err != nil {
			return nil, err
		}
		if err := bn256.UnmarshalG2(input[i*snarkvStride+64:(i+1)*snarkvStride], &g2s[i]); err != nil {
			return nil, err
		}
	}

	ok, err := bn256.PairingCheck(g1s, g2s)
	if err != nil {
		return nil, err
	}
	if ok {
		return true32Byte, nil
	}
	return false32Byte, nil
}

// BLAKE2_F (BLAKE2b compression) implemented as a native contract.

const (
	blake2FInputLength        = 213
	blake2FFinalBlockBytes    = byte(1)
	blake2FNonFinalBlockBytes = byte(0)
)

var (
	errBlake2FInvalidInputLength = errors.New("invalid input length")
	errBlake2FInvalidFinalFlag   = errors.New("invalid final flag")
)

func blake2FGas(input []byte, _ Revision) uint64 {
	// The rounds count doubles as the price. Inputs too short to carry one
	// are free; the run will fail on them anyway.
	if len(input) < 4 {
		return 0
	}
	return uint64(binary.BigEndian.Uint32(input[0:4]))
}

func blake2FRun(input []byte) ([]byte, error) {
	// Make sure the input is valid (correct length and final flag)
	if len(input) != blake2FInputLength {
		return nil, errBlake2FInvalidInputLength
	}
	if input[212] != blake2FNonFinalBlockBytes && input[212] != blake2FFinalBlockBytes {
		return nil, errBlake2FInvalidFinalFlag
	}
	// Parse the input into the BLAKE2b call parameters
	var (
		rounds = binary.BigEndian.Uint32(input[0:4])
		final  = input[212] == blake2FFinalBlockBytes

		h [8]uint64
		m [16]uint64
		t [2]uint64
	)
	for i := 0; i < 8; i++ {
		offset := 4 + i*8
		h[i] = binary.LittleEndian.Uint64(input[offset : offset+8])
	}
	for i := 0; i < 16; i++ {
		offset := 68 + i*8
		m[i] = binary.LittleEndian.Uint64(input[offset : offset+8])
	}
	t[0] = binary.LittleEndian.Uint64(input[196:204])
	t[1] = binary.LittleEndian.Uint64(input[204:212])

	// Execute the compression function, extract and return the result
	blake2b.F(&h, m, t, final, rounds)

	output := make([]byte, 64)
	for i := 0; i < 8; i++ {
		offset := i * 8
		binary.LittleEndian.PutUint64(output[offset:offset+8], h[i])
	}
	return output, nil
}
