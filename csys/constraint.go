package csys

import "github.com/ethsnarks-go/poseidon/field"

// Constraint is one rank-1 constraint A*B=C over linear combinations of
// witness variables.
type Constraint struct {
	A, B, C LinearCombination
}

// SwapAB exchanges the A and B sides of the constraint in place. This is the
// sole permitted in-place mutation of a stored constraint: it backs the
// stamper's once-only swapAB latch.
func (c *Constraint) SwapAB() {
	c.A, c.B = c.B, c.A
}

// Satisfied reports whether A*B=C holds under the given witness reader.
func (c *Constraint) Satisfied(pb WitnessReader) bool {
	lhs := field.Mul(Eval(pb, c.A), Eval(pb, c.B))
	rhs := Eval(pb, c.C)
	return field.Equal(lhs, rhs)
}
