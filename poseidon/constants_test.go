package poseidon

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethsnarks-go/poseidon/field"
)

func TestGetConstantsShape(t *testing.T) {
	c := GetConstants(6, 8, 57)
	require.Len(t, c.C, 8+57)
	require.Len(t, c.M, 6*6)
}

func TestGetConstantsFrozenFirstConstant(t *testing.T) {
	c := GetConstants(6, 8, 57)

	want, ok := new(big.Int).SetString("1fd4a35e68f0946f8f5dfd2ac9d7882ce2466ec1c9766f69b5a14c3f84a17be2", 16)
	require.True(t, ok)
	require.True(t, field.Equal(c.C[0], field.FromLEBytes(reverse(want.Bytes()))))
}

func TestGetConstantsMemoized(t *testing.T) {
	a := GetConstants(6, 8, 57)
	b := GetConstants(6, 8, 57)
	require.Same(t, a, b)
}

func TestGetConstantsDistinctPerTuple(t *testing.T) {
	a := GetConstants(6, 8, 57)
	b := GetConstants(3, 8, 57)
	require.NotSame(t, a, b)
	require.NotEqual(t, len(a.M), len(b.M))
}

func TestConstantStreamLenRoundsUpEvenWhenAligned(t *testing.T) {
	// 256 is already byte-aligned (32 bytes); the rule still adds a full
	// extra byte-multiple rather than leaving it unchanged.
	require.Equal(t, 33, constantStreamLen(256))
	require.Equal(t, 32, constantStreamLen(254))
}

// reverse returns b with its byte order flipped, the big-endian ->
// little-endian conversion needed because big.Int.Bytes() is big-endian.
func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
