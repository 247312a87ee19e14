package poseidon

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethsnarks-go/poseidon/csys"
	"github.com/ethsnarks-go/poseidon/field"
)

// TestPermutationAgreement checks that Evaluate's out-of-circuit result
// matches the in-circuit witness for a range of parameter tuples, not just
// the frozen Poseidon128 vectors.
func TestPermutationAgreement(t *testing.T) {
	tuples := []struct {
		tt, c, f, p, nIn, nOut int
	}{
		{3, 1, 8, 17, 1, 1},
		{3, 1, 8, 17, 2, 2},
		{5, 2, 8, 30, 3, 1},
	}

	for _, tc := range tuples {
		inputs := make([]field.Fe, tc.nIn)
		for i := range inputs {
			inputs[i] = field.FromUint64(uint64(i + 1))
		}

		want, err := Evaluate(tc.tt, tc.c, tc.f, tc.p, tc.nOut, inputs)
		require.NoError(t, err)

		pb := csys.NewSystem()
		vs := pb.AllocateVariables(tc.nIn)
		for i, v := range vs {
			pb.SetVal(v, inputs[i])
		}

		m, err := NewMaster(pb, lcs(vs), tc.tt, tc.c, tc.f, tc.p, tc.nIn, tc.nOut, true)
		require.NoError(t, err)
		m.GenerateConstraints(pb)
		m.GenerateWitness(pb)
		require.True(t, pb.AllSatisfied())

		for i, ov := range m.OutputVars {
			require.True(t, field.Equal(pb.Val(ov), want[i]))
		}
	}
}

func lcs(vs []csys.Variable) []csys.LinearCombination {
	out := make([]csys.LinearCombination, len(vs))
	for i, v := range vs {
		out[i] = csys.LC(v)
	}
	return out
}
