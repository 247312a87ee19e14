package poseidon

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethsnarks-go/poseidon/csys"
	"github.com/ethsnarks-go/poseidon/field"
)

func TestSBoxWitnessSatisfiesConstraints(t *testing.T) {
	pb := csys.NewSystem()
	x := pb.AllocateVariable()
	pb.SetVal(x, field.FromUint64(3))

	sb := NewSBox(pb)
	sb.GenerateConstraints(pb, csys.LC(x))
	sb.GenerateWitness(pb, field.FromUint64(3))

	require.True(t, pb.AllSatisfied())
	require.True(t, field.Equal(pb.Val(sb.X5), field.FromUint64(243))) // 3^5
}

func TestSBoxEmitsThreeConstraints(t *testing.T) {
	pb := csys.NewSystem()
	x := pb.AllocateVariable()
	sb := NewSBox(pb)
	sb.GenerateConstraints(pb, csys.LC(x))

	require.Len(t, pb.Constraints(), 3)
}

func TestSBoxResultIsReusable(t *testing.T) {
	pb := csys.NewSystem()
	sb := NewSBox(pb)
	r1 := sb.Result()
	r2 := sb.Result()
	require.Equal(t, r1.Terms(), r2.Terms())
}
