package poseidon

import (
	"github.com/ethsnarks-go/poseidon/csys"
	"github.com/ethsnarks-go/poseidon/field"
)

// Poseidon128 parameters: the 128-bit-security instantiation (t=6, c=1,
// F=8, P=57).
const (
	Poseidon128T = 6
	Poseidon128C = 1
	Poseidon128F = 8
	Poseidon128P = 57
)

// NewPoseidon128 stamps a Poseidon128<nOutputs> instance (t=6, c=1, F=8,
// P=57) onto pb, reading its initial state from inputs.
func NewPoseidon128(pb csys.Protoboard, nOutputs int, constrainOutputs bool, inputs []csys.Variable) (*Instance, error) {
	return NewInstance(pb, Poseidon128T, Poseidon128C, Poseidon128F, Poseidon128P, nOutputs, constrainOutputs, inputs)
}

// EvaluatePoseidon128 is Evaluate fixed to the Poseidon128 parameters.
func EvaluatePoseidon128(nOutputs int, inputs []field.Fe) ([]field.Fe, error) {
	return Evaluate(Poseidon128T, Poseidon128C, Poseidon128F, Poseidon128P, nOutputs, inputs)
}
