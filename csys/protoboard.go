package csys

import "github.com/ethsnarks-go/poseidon/field"

// Protoboard is the host constraint-system interface gadgets are built
// against. It offers variable allocation, constraint insertion and a
// witness-assignment table indexed by variable id.
type Protoboard interface {
	WitnessReader

	// AllocateVariable appends a fresh variable slot and returns its id.
	AllocateVariable() Variable
	// AllocateVariables appends n fresh variable slots.
	AllocateVariables(n int) []Variable
	// AddConstraint appends one R1CS constraint A*B=C.
	AddConstraint(a, b, c LinearCombination)
	// SetVal assigns val to v's witness slot.
	SetVal(v Variable, val field.Fe)
	// NumVariables returns the number of allocated variables, not counting
	// the implicit constant-1 variable.
	NumVariables() int
	// Constraints returns the constraint list, mutable so that a
	// canonicalization pass (swapAB) can rewrite it in place.
	Constraints() []*Constraint
}
