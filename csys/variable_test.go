package csys

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethsnarks-go/poseidon/field"
)

func TestLinearCombinationAddDoesNotMutateOperands(t *testing.T) {
	a := LC(Variable(1))
	b := LC(Variable(2))

	sum := a.Add(b)
	require.Len(t, sum.Terms(), 2)
	require.Len(t, a.Terms(), 1)
	require.Len(t, b.Terms(), 1)
}

func TestLinearCombinationScale(t *testing.T) {
	a := LC(Variable(1)).AddTerm(Variable(2), field.FromUint64(3))
	scaled := a.Scale(field.FromUint64(5))

	require.True(t, field.Equal(scaled.Terms()[0].Coeff, field.FromUint64(5)))
	require.True(t, field.Equal(scaled.Terms()[1].Coeff, field.FromUint64(15)))
}

type mapWitness map[Variable]field.Fe

func (m mapWitness) Val(v Variable) field.Fe { return m[v] }

func TestEval(t *testing.T) {
	lc := LC(One).AddTerm(Variable(1), field.FromUint64(2))
	w := mapWitness{One: field.One(), Variable(1): field.FromUint64(10)}

	got := Eval(w, lc)
	require.True(t, field.Equal(got, field.FromUint64(21)))
}

func TestAddReusesReservedCapacity(t *testing.T) {
	lc := NewLinearCombination(4)
	lc = lc.AddTerm(Variable(1), field.One())
	lc = lc.Add(LC(Variable(2)))
	lc = lc.Add(LC(Variable(3)))

	require.Len(t, lc.Terms(), 3)
	require.Equal(t, 4, cap(lc.Terms()), "reserved capacity should not be abandoned by Add")
}

func TestClone(t *testing.T) {
	a := LC(Variable(1))
	b := a.Clone()
	grown := b.AddTerm(Variable(2), field.One())

	require.Len(t, a.Terms(), 1)
	require.Len(t, b.Terms(), 1)
	require.Len(t, grown.Terms(), 2)
}
