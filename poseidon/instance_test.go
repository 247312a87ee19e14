package poseidon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ethsnarks-go/poseidon/csys"
	"github.com/ethsnarks-go/poseidon/field"
)

func TestInstanceWitnessMatchesEvaluate(t *testing.T) {
	pb := csys.NewSystem()
	in := pb.AllocateVariables(1)
	pb.SetVal(in[0], field.FromUint64(0))

	inst, err := NewPoseidon128(pb, 1, true, in)
	require.NoError(t, err)
	inst.GenerateConstraints()
	inst.GenerateWitness()

	require.True(t, pb.AllSatisfied())

	out, err := inst.Result()
	require.NoError(t, err)

	want, err := EvaluatePoseidon128(1, []field.Fe{field.FromUint64(0)})
	require.NoError(t, err)
	require.True(t, field.Equal(pb.Val(out), want[0]))
}

func TestTwoInstancesOnSameProtoboardDoNotCollide(t *testing.T) {
	pb := csys.NewSystem()
	in1 := pb.AllocateVariables(1)
	in2 := pb.AllocateVariables(1)
	pb.SetVal(in1[0], field.FromUint64(1))
	pb.SetVal(in2[0], field.FromUint64(2))

	i1, err := NewPoseidon128(pb, 1, true, in1)
	require.NoError(t, err)
	i2, err := NewPoseidon128(pb, 1, true, in2)
	require.NoError(t, err)

	i1.GenerateConstraints()
	i2.GenerateConstraints()
	i1.GenerateWitness()
	i2.GenerateWitness()

	require.True(t, pb.AllSatisfied())

	o1, err := i1.Result()
	require.NoError(t, err)
	o2, err := i2.Result()
	require.NoError(t, err)

	require.NotEqual(t, o1, o2, "the two stamped instances must land in disjoint variable blocks")
	require.False(t, field.Equal(pb.Val(o1), pb.Val(o2)))
}

func TestTwoInstancesOnSameInputAgree(t *testing.T) {
	pb := csys.NewSystem()
	in1 := pb.AllocateVariables(1)
	in2 := pb.AllocateVariables(1)
	pb.SetVal(in1[0], field.FromUint64(7))
	pb.SetVal(in2[0], field.FromUint64(7))

	i1, err := NewPoseidon128(pb, 1, true, in1)
	require.NoError(t, err)
	i2, err := NewPoseidon128(pb, 1, true, in2)
	require.NoError(t, err)

	i1.GenerateConstraints()
	i2.GenerateConstraints()
	i1.GenerateWitness()
	i2.GenerateWitness()

	require.True(t, pb.AllSatisfied())

	o1, err := i1.Result()
	require.NoError(t, err)
	o2, err := i2.Result()
	require.NoError(t, err)

	require.True(t, field.Equal(pb.Val(o1), pb.Val(o2)), "two stamped instances on the same input must agree on their output value")
}

func TestInstanceReusesMemoizedMasterConstraints(t *testing.T) {
	pb1 := csys.NewSystem()
	in1 := pb1.AllocateVariables(1)
	i1, err := NewPoseidon128(pb1, 1, true, in1)
	require.NoError(t, err)
	i1.GenerateConstraints()

	pb2 := csys.NewSystem()
	in2 := pb2.AllocateVariables(1)
	i2, err := NewPoseidon128(pb2, 1, true, in2)
	require.NoError(t, err)
	i2.GenerateConstraints()

	require.Equal(t, len(pb1.Constraints()), len(pb2.Constraints()))
	require.Equal(t, i1.entry, i2.entry, "same parameter tuple must share the memoized master")
}

func TestResultsSymmetricWithResult(t *testing.T) {
	pb := csys.NewSystem()
	in := pb.AllocateVariables(1)
	pb.SetVal(in[0], field.FromUint64(0))

	inst, err := NewPoseidon128(pb, 1, true, in)
	require.NoError(t, err)
	inst.GenerateConstraints()
	inst.GenerateWitness()

	single, err := inst.Result()
	require.NoError(t, err)
	multi, err := inst.Results()
	require.NoError(t, err)

	require.Len(t, multi, 1)
	require.Equal(t, single, multi[0])
}

func TestResultRequiresConstrainOutputs(t *testing.T) {
	pb := csys.NewSystem()
	in := pb.AllocateVariables(1)
	inst, err := NewPoseidon128(pb, 1, false, in)
	require.NoError(t, err)

	_, err = inst.Result()
	require.Error(t, err)
}

func TestSwapABIsIdempotent(t *testing.T) {
	pb1 := csys.NewSystem()
	in1 := pb1.AllocateVariables(1)
	i1, err := NewPoseidon128(pb1, 1, true, in1)
	require.NoError(t, err)
	i1.GenerateConstraints()

	before := make([]csys.Constraint, len(i1.entry.pb.Constraints()))
	for idx, c := range i1.entry.pb.Constraints() {
		before[idx] = *c
	}

	i1.SwapAB()
	i1.SwapAB() // second call must be a no-op

	for idx, c := range i1.entry.pb.Constraints() {
		if diff := cmp.Diff(before[idx].A.Terms(), c.B.Terms()); diff != "" {
			t.Fatalf("constraint %d A/B not swapped exactly once (-want +got):\n%s", idx, diff)
		}
	}
}

func TestSwapABAffectsFreshlyStampedInstance(t *testing.T) {
	// A dedicated nOutputs value keys a fresh, never-yet-swapped memoized
	// master entry, independent of whatever earlier tests in this file may
	// already have swapped.
	const nOutputs = 2

	pb1 := csys.NewSystem()
	in1 := pb1.AllocateVariables(1)
	i1, err := NewPoseidon128(pb1, nOutputs, true, in1)
	require.NoError(t, err)
	i1.GenerateConstraints()

	before := make([]csys.Constraint, len(pb1.Constraints()))
	for idx, c := range pb1.Constraints() {
		before[idx] = *c
	}

	i1.SwapAB()

	pb2 := csys.NewSystem()
	in2 := pb2.AllocateVariables(1)
	i2, err := NewPoseidon128(pb2, nOutputs, true, in2)
	require.NoError(t, err)
	i2.GenerateConstraints()

	require.Equal(t, i1.entry, i2.entry, "same parameter tuple must share the memoized master")
	require.Len(t, pb2.Constraints(), len(before))

	for idx, c := range pb2.Constraints() {
		if diff := cmp.Diff(before[idx].A.Terms(), c.B.Terms()); diff != "" {
			t.Fatalf("constraint %d A not swapped into B on the freshly stamped instance (-want +got):\n%s", idx, diff)
		}
		if diff := cmp.Diff(before[idx].B.Terms(), c.A.Terms()); diff != "" {
			t.Fatalf("constraint %d B not swapped into A on the freshly stamped instance (-want +got):\n%s", idx, diff)
		}
	}
}
