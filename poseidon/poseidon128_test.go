package poseidon

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethsnarks-go/poseidon/field"
)

func feFromHex(t *testing.T, hex string) field.Fe {
	t.Helper()
	v, ok := new(big.Int).SetString(hex, 16)
	require.True(t, ok)
	return field.FromLEBytes(reverse(v.Bytes()))
}

func TestEvaluatePoseidon128FrozenVectors(t *testing.T) {
	cases := []struct {
		name   string
		inputs []field.Fe
		want   string
	}{
		{"single-zero", []field.Fe{field.FromUint64(0)}, "21a76d5f2cdcf354ab66eff7b4dee40f02501545def7bb66b3502ae68e1b781"},
		{"single-one", []field.Fe{field.FromUint64(1)}, "50a05b5d53f6f01b1629db59138e94b0827e70cbf91b1f66255b90ca700450d"},
		{"pair-zero-zero", []field.Fe{field.FromUint64(0), field.FromUint64(0)}, "21a76d5f2cdcf354ab66eff7b4dee40f02501545def7bb66b3502ae68e1b781"},
		{"pair-zero-one", []field.Fe{field.FromUint64(0), field.FromUint64(1)}, "17ddf6f66c73719745eeca828537ee30394123a28d16eb51cf51f3bcc0bd03a3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EvaluatePoseidon128(1, tc.inputs)
			require.NoError(t, err)
			require.Len(t, got, 1)
			require.True(t, field.Equal(got[0], feFromHex(t, tc.want)))
		})
	}
}

func TestEvaluatePoseidon128OneInputEqualsTwoInputsWithZeroPad(t *testing.T) {
	// state[h]+c_i degenerates to c_i when h is padded with a zero input, so
	// omitting a trailing zero input slot is observationally identical to
	// keeping it.
	h1, err := EvaluatePoseidon128(1, []field.Fe{field.FromUint64(0)})
	require.NoError(t, err)
	h2, err := EvaluatePoseidon128(1, []field.Fe{field.FromUint64(0), field.FromUint64(0)})
	require.NoError(t, err)
	require.True(t, field.Equal(h1[0], h2[0]))
}

func TestEvaluatePoseidon128RejectsTooManyInputs(t *testing.T) {
	inputs := make([]field.Fe, Poseidon128T+1)
	_, err := EvaluatePoseidon128(1, inputs)
	require.ErrorIs(t, err, ErrParameterInvalid)
}

func TestEvaluateRejectsTooManyOutputs(t *testing.T) {
	_, err := Evaluate(Poseidon128T, Poseidon128C, Poseidon128F, Poseidon128P, Poseidon128T+1, []field.Fe{field.FromUint64(1)})
	require.ErrorIs(t, err, ErrParameterInvalid)
}
