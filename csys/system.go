package csys

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/ethsnarks-go/poseidon/field"
)

// System is the reference Protoboard implementation. A production caller
// (a pairing-backend R1CS compiler) would supply its own; gadgets are
// written only against the Protoboard interface, never against System
// directly.
type System struct {
	values   []field.Fe
	assigned *bitset.BitSet
	cons     []*Constraint
}

// NewSystem returns an empty protoboard with the constant-1 variable
// pre-assigned at index 0.
func NewSystem() *System {
	s := &System{
		values:   []field.Fe{field.One()},
		assigned: bitset.New(1),
	}
	s.assigned.Set(0)
	return s
}

// AllocateVariable appends one fresh, unassigned variable.
func (s *System) AllocateVariable() Variable {
	s.values = append(s.values, field.Zero())
	return Variable(len(s.values) - 1)
}

// AllocateVariables appends n fresh, unassigned variables as one block.
func (s *System) AllocateVariables(n int) []Variable {
	out := make([]Variable, n)
	for i := 0; i < n; i++ {
		out[i] = s.AllocateVariable()
	}
	return out
}

// AddConstraint appends a constraint, cloning its linear combinations so
// later in-place mutation of caller-held LCs cannot retroactively change a
// stored constraint.
func (s *System) AddConstraint(a, b, c LinearCombination) {
	s.cons = append(s.cons, &Constraint{A: a.Clone(), B: b.Clone(), C: c.Clone()})
}

// Val reads v's witness value. Panics if v was never assigned.
func (s *System) Val(v Variable) field.Fe {
	if int(v) >= len(s.values) || !s.assigned.Test(uint(v)) {
		panic(fmt.Sprintf("csys: variable %d read before assignment", v))
	}
	return s.values[v]
}

// SetVal assigns val to v's witness slot.
func (s *System) SetVal(v Variable, val field.Fe) {
	s.values[v] = val
	s.assigned.Set(uint(v))
}

// NumVariables returns the number of allocated variables, excluding the
// implicit constant-1 variable: if 5 variables have been allocated their ids
// are 1..5 and NumVariables returns 5, so NumVariables()+1 is always the
// next free variable id.
func (s *System) NumVariables() int {
	return len(s.values) - 1
}

// Constraints exposes the stored constraints for read or in-place rewrite
// (swapAB).
func (s *System) Constraints() []*Constraint {
	return s.cons
}

// SwapAB mutates every stored constraint's A/B sides in place.
func (s *System) SwapAB() {
	for _, c := range s.cons {
		c.SwapAB()
	}
}

// AllSatisfied reports whether every stored constraint holds under the
// current witness assignment. Used by tests to check witness soundness.
func (s *System) AllSatisfied() bool {
	for _, c := range s.cons {
		if !c.Satisfied(s) {
			return false
		}
	}
	return true
}
