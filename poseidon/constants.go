package poseidon

import (
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/ethsnarks-go/poseidon/field"
	"github.com/ethsnarks-go/poseidon/internal/glog"
	"github.com/ethsnarks-go/poseidon/internal/memo"
)

const (
	roundConstantSeed = "poseidon_constants"
	matrixSeed        = "poseidon_matrix_0000"
)

// Constants holds the derived round-constant vector and MDS matrix for one
// (t, F, P) parameter tuple. Once produced it is immutable and shared by
// reference across every instance built for that tuple.
type Constants struct {
	// C has length F+P.
	C []field.Fe
	// M has length t*t, row-major.
	M []field.Fe
}

var constantsTable = memo.NewTable[*Constants]()

// GetConstants returns the memoized PoseidonConstants for (t, F, P),
// deriving them on first access. Concurrent first accesses for the same
// tuple are deduplicated so the derivation runs exactly once.
func GetConstants(t, F, P int) *Constants {
	key := fmt.Sprintf("%d|%d|%d", t, F, P)
	return constantsTable.Get(key, func() *Constants {
		glog.Component("constants").Debug().Int("t", t).Int("F", F).Int("P", P).Msg("deriving poseidon constants")
		c := make([]field.Fe, F+P)
		fillConstantStream([]byte(roundConstantSeed), c)
		m := make([]field.Fe, t*t)
		fillMatrix([]byte(matrixSeed), t, m)
		return &Constants{C: c, M: m}
	})
}

// constantStreamLen is the number of BLAKE2b output bytes consumed per
// field element. It rounds the field's bit-width up to a full extra byte
// even when the bit-width is already a multiple of 8 — an unconventional
// rule preserved bit-exactly from ethsnarks's poseidon.hpp
// (n_bits_roundedup = size_in_bits() + (8 - size_in_bits()%8)) because
// existing proving/verification keys depend on it.
func constantStreamLen(bits int) int {
	roundedUp := bits + (8 - bits%8)
	return roundedUp / 8
}

// fillConstantStream derives len(out) field elements from seed: the first
// element is BLAKE2b(out=L, data=seed); each subsequent element re-seeds
// BLAKE2b with the previous element's raw output bytes.
func fillConstantStream(seed []byte, out []field.Fe) {
	l := constantStreamLen(field.BitSize())
	digest := blake2bSum(l, seed)
	out[0] = field.FromLEBytes(digest)
	for i := 1; i < len(out); i++ {
		digest = blake2bSum(l, digest)
		out[i] = field.FromLEBytes(digest)
	}
}

// fillMatrix derives the t x t Cauchy MDS matrix from seed: 2t field
// elements c[0..2t) are generated via fillConstantStream, then
// M[i*t+j] = (c[i] - c[t+j])^-1.
func fillMatrix(seed []byte, t int, out []field.Fe) {
	c := make([]field.Fe, 2*t)
	fillConstantStream(seed, c)
	for i := 0; i < t; i++ {
		for j := 0; j < t; j++ {
			diff := field.Sub(c[i], c[t+j])
			out[i*t+j] = field.Inverse(diff)
		}
	}
}

// blake2bSum computes a BLAKE2b digest of the given output length over
// data, with no key. A construction failure here is a
// derivation failure here can only happen for an out-of-range output
// length, which is fixed entirely by the field's compile-time bit-width,
// so it is surfaced as a panic rather than a recoverable error.
func blake2bSum(outLen int, data []byte) []byte {
	h, err := blake2b.New(outLen, nil)
	if err != nil {
		panic(fmt.Sprintf("poseidon: blake2b constant derivation failed: %v", err))
	}
	h.Write(data)
	return h.Sum(nil)
}
