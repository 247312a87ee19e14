package csys

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethsnarks-go/poseidon/field"
)

func TestNewSystemPreAssignsOne(t *testing.T) {
	s := NewSystem()
	require.True(t, field.Equal(s.Val(One), field.One()))
	require.Equal(t, 0, s.NumVariables())
}

func TestAllocateVariablesIsDense(t *testing.T) {
	s := NewSystem()
	vs := s.AllocateVariables(3)
	require.Equal(t, []Variable{1, 2, 3}, vs)
	require.Equal(t, 3, s.NumVariables())
}

func TestValPanicsBeforeAssignment(t *testing.T) {
	s := NewSystem()
	v := s.AllocateVariable()
	require.Panics(t, func() {
		s.Val(v)
	})
}

func TestAddConstraintClonesOperands(t *testing.T) {
	s := NewSystem()
	v := s.AllocateVariable()
	lc := LC(v)

	s.AddConstraint(lc, LC(One), lc)
	grown := lc.AddTerm(One, field.FromUint64(99))

	require.Len(t, grown.Terms(), 2)
	require.Len(t, s.Constraints()[0].A.Terms(), 1)
}

func TestAllSatisfied(t *testing.T) {
	s := NewSystem()
	x := s.AllocateVariable()
	y := s.AllocateVariable()

	s.AddConstraint(LC(x), LC(x), LC(y)) // y = x*x
	s.SetVal(x, field.FromUint64(7))
	s.SetVal(y, field.FromUint64(49))

	require.True(t, s.AllSatisfied())

	s.SetVal(y, field.FromUint64(50))
	require.False(t, s.AllSatisfied())
}

func TestSwapAB(t *testing.T) {
	s := NewSystem()
	x := s.AllocateVariable()
	y := s.AllocateVariable()
	s.AddConstraint(LC(x), LC(y), LC(x))

	before := s.Constraints()[0]
	a, b := before.A, before.B
	s.SwapAB()
	after := s.Constraints()[0]

	require.Equal(t, a.Terms(), after.B.Terms())
	require.Equal(t, b.Terms(), after.A.Terms())
}
