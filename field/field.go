// Package field adapts the prime field the Poseidon gadget is built over:
// addition, multiplication, multiplicative inverse and a canonical
// little-endian byte encoding, fixed concretely to the BN254 scalar field.
package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/exp/slices"
)

// Fe is a single field element. Copying an Fe copies its value.
type Fe = fr.Element

// BitSize is the bit-width of the field modulus, fixed at compile time.
func BitSize() int {
	return fr.Bits
}

// Zero returns the additive identity.
func Zero() Fe {
	var z Fe
	return z
}

// One returns the multiplicative identity.
func One() Fe {
	var z Fe
	z.SetOne()
	return z
}

// Add returns a + b.
func Add(a, b Fe) Fe {
	var z Fe
	z.Add(&a, &b)
	return z
}

// Sub returns a - b.
func Sub(a, b Fe) Fe {
	var z Fe
	z.Sub(&a, &b)
	return z
}

// Mul returns a * b.
func Mul(a, b Fe) Fe {
	var z Fe
	z.Mul(&a, &b)
	return z
}

// Inverse returns the multiplicative inverse of a. Panics if a is zero, the
// same contract libsnark's FieldT::inverse() carries.
func Inverse(a Fe) Fe {
	if a.IsZero() {
		panic("field: inverse of zero")
	}
	var z Fe
	z.Inverse(&a)
	return z
}

// FromUint64 lifts a small integer into the field, used for literal round
// constants and matrix coefficients in tests.
func FromUint64(v uint64) Fe {
	var z Fe
	z.SetUint64(v)
	return z
}

// FromLEBytes decodes b as a little-endian integer and reduces it modulo the
// field modulus. Any byte slice is a valid input; values >= the modulus wrap
// around, matching bytes_to_FieldT_littleendian in ethsnarks's poseidon.hpp,
// which relies on the underlying field constructor reducing on overflow.
func FromLEBytes(b []byte) Fe {
	be := slices.Clone(b)
	slices.Reverse(be)
	v := new(big.Int).SetBytes(be)
	v.Mod(v, fr.Modulus())
	var z Fe
	z.SetBigInt(v)
	return z
}

// Bytes returns the canonical little-endian encoding of a, ceil(bits/8)
// bytes wide. This is the ordinary canonical encoding; the unconventional
// "round up to one extra byte when already byte-aligned" rule used to size
// the BLAKE2b output stream lives in poseidon.constantStreamLen, not here.
func Bytes(a Fe) []byte {
	be := a.Bytes()
	out := slices.Clone(be[:])
	slices.Reverse(out)
	return out
}

// Equal reports whether a and b represent the same field element.
func Equal(a, b Fe) bool {
	return a.Equal(&b)
}
