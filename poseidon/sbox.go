package poseidon

import (
	"github.com/ethsnarks-go/poseidon/csys"
	"github.com/ethsnarks-go/poseidon/field"
)

// SBox is the x -> x^5 gadget. It introduces three fresh
// variables x2, x4, x5 and three constraints realizing x^2, x^4 and x^5.
type SBox struct {
	X2, X4, X5 csys.Variable
}

// NewSBox allocates the three result variables for one S-box instance.
func NewSBox(pb csys.Protoboard) *SBox {
	v := pb.AllocateVariables(3)
	return &SBox{X2: v[0], X4: v[1], X5: v[2]}
}

// GenerateConstraints emits the three R1CS constraints realizing y=x^5 for
// the caller-supplied linear combination x.
func (s *SBox) GenerateConstraints(pb csys.Protoboard, x csys.LinearCombination) {
	pb.AddConstraint(x, x, csys.LC(s.X2))
	pb.AddConstraint(csys.LC(s.X2), csys.LC(s.X2), csys.LC(s.X4))
	pb.AddConstraint(x, csys.LC(s.X4), csys.LC(s.X5))
}

// GenerateWitness computes x2, x4, x5 from the concrete value of x and
// writes them into pb.
func (s *SBox) GenerateWitness(pb csys.Protoboard, valX field.Fe) {
	x2 := field.Mul(valX, valX)
	x4 := field.Mul(x2, x2)
	x5 := field.Mul(x4, valX)
	pb.SetVal(s.X2, x2)
	pb.SetVal(s.X4, x4)
	pb.SetVal(s.X5, x5)
}

// Result returns x5 as a reusable, single-variable linear combination.
func (s *SBox) Result() csys.LinearCombination {
	return csys.LC(s.X5)
}
