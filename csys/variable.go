// Package csys is the "protoboard": the host constraint-system collaborator
// a circuit gadget is built against. It owns variable allocation, R1CS
// constraint storage and the witness-assignment table, and the
// index-translation machinery the Poseidon instance stamper relies on.
package csys

import "github.com/ethsnarks-go/poseidon/field"

// Variable is a dense, non-negative identifier of a witness slot.
// Variable 0 is conventionally the constant 1.
type Variable int

// One is the constant-1 variable shared by every protoboard.
const One Variable = 0

// LinearTerm is a coefficient applied to a variable.
type LinearTerm struct {
	Var   Variable
	Coeff field.Fe
}

// LinearCombination is an ordered sum of linear terms, semantically a sum
// over witness variables plus an optional constant (expressed as a term on
// Variable One). The zero value is the empty (zero) combination.
type LinearCombination struct {
	terms []LinearTerm
}

// NewLinearCombination returns an empty combination whose backing slice is
// pre-sized for capacity terms, avoiding the repeated O(n) reallocation the
// Design Notes call out ("a term-count reservation primitive to avoid O(n^2)
// growth when building long rows").
func NewLinearCombination(capacity int) LinearCombination {
	return LinearCombination{terms: make([]LinearTerm, 0, capacity)}
}

// LC is a convenience constructor wrapping a single variable with
// coefficient 1 — the natural reading of a bare variable as a combination.
func LC(v Variable) LinearCombination {
	return LinearCombination{terms: []LinearTerm{{Var: v, Coeff: field.One()}}}
}

// Terms returns the underlying terms. Callers must not mutate the result.
func (l LinearCombination) Terms() []LinearTerm {
	return l.terms
}

// Clone returns an independent copy of l.
func (l LinearCombination) Clone() LinearCombination {
	out := make([]LinearTerm, len(l.terms))
	copy(out, l.terms)
	return LinearCombination{terms: out}
}

// AddTerm appends coeff*v to l and returns the (possibly reallocated) result.
func (l LinearCombination) AddTerm(v Variable, coeff field.Fe) LinearCombination {
	l.terms = append(l.terms, LinearTerm{Var: v, Coeff: coeff})
	return l
}

// AddConstant adds a constant term (on the One variable) to l.
func (l LinearCombination) AddConstant(c field.Fe) LinearCombination {
	return l.AddTerm(One, c)
}

// Add returns l + other. Like AddTerm, it appends into l's own backing
// array when l has spare capacity — typically reserved up front via
// NewLinearCombination — instead of always allocating a fresh
// right-sized one; this is what lets round-building code accumulate many
// terms into one row at O(row length) instead of O(row length^2). Callers
// must use the returned value and not l afterward, the same convention
// AddTerm/AddConstant already follow.
func (l LinearCombination) Add(other LinearCombination) LinearCombination {
	l.terms = append(l.terms, other.terms...)
	return l
}

// Scale returns c*l, without mutating l.
func (l LinearCombination) Scale(c field.Fe) LinearCombination {
	out := NewLinearCombination(len(l.terms))
	for _, t := range l.terms {
		out.terms = append(out.terms, LinearTerm{Var: t.Var, Coeff: field.Mul(t.Coeff, c)})
	}
	return out
}

// Eval evaluates l against a witness reader, summing coeff*val(variable)
// over every term.
func Eval(pb WitnessReader, l LinearCombination) field.Fe {
	acc := field.Zero()
	for _, t := range l.terms {
		acc = field.Add(acc, field.Mul(t.Coeff, pb.Val(t.Var)))
	}
	return acc
}

// WitnessReader is the read side of Protoboard, split out so Eval doesn't
// need the full interface.
type WitnessReader interface {
	Val(v Variable) field.Fe
}
