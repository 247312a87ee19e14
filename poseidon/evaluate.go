package poseidon

import (
	"fmt"

	"github.com/ethsnarks-go/poseidon/field"
)

// Evaluate computes the Poseidon hash of inputs out-of-circuit, running the
// same round schedule as Master directly over field elements. Its output
// is compared against the in-circuit witness's last-round output values in
// tests; they must always agree, since both implement the identical round
// table.
func Evaluate(t, sBoxPartial, F, P, nOutputs int, inputs []field.Fe) ([]field.Fe, error) {
	nInputs := len(inputs)
	if F%2 != 0 {
		return nil, fmt.Errorf("%w: F=%d must be even", ErrParameterInvalid, F)
	}
	if nInputs > t || nOutputs > t || sBoxPartial > t || sBoxPartial < 1 {
		return nil, fmt.Errorf("%w: evaluate(t=%d, c=%d, nInputs=%d, nOutputs=%d)", ErrParameterInvalid, t, sBoxPartial, nInputs, nOutputs)
	}

	constants := GetConstants(t, F, P)
	totalRounds := F + P
	partialBegin := F / 2
	partialEnd := partialBegin + P

	state := evalRound(t, t, nInputs, t, constants.C[0], constants.M, inputs)
	for i := 1; i < partialBegin; i++ {
		state = evalRound(t, t, t, t, constants.C[i], constants.M, state)
	}
	for i := partialBegin; i < partialEnd; i++ {
		state = evalRound(t, sBoxPartial, t, t, constants.C[i], constants.M, state)
	}
	for i := partialEnd; i < totalRounds-1; i++ {
		state = evalRound(t, t, t, t, constants.C[i], constants.M, state)
	}
	state = evalRound(t, t, t, nOutputs, constants.C[totalRounds-1], constants.M, state)
	return state, nil
}

func sbox5(x field.Fe) field.Fe {
	x2 := field.Mul(x, x)
	x4 := field.Mul(x2, x2)
	return field.Mul(x4, x)
}

// evalRound mirrors Round's output-row formula directly over concrete
// field values instead of linear combinations.
func evalRound(t, nSBox, nInputs, nOutputs int, ci field.Fe, m []field.Fe, state []field.Fe) []field.Fe {
	sboxResults := make([]field.Fe, nSBox)
	for h := 0; h < nSBox; h++ {
		x := ci
		if h < nInputs {
			x = field.Add(state[h], ci)
		}
		sboxResults[h] = sbox5(x)
	}

	out := make([]field.Fe, nOutputs)
	for i := 0; i < nOutputs; i++ {
		row := m[i*t : i*t+t]
		acc := field.Zero()
		for s := 0; s < nSBox; s++ {
			acc = field.Add(acc, field.Mul(row[s], sboxResults[s]))
		}
		for k := nSBox; k < nInputs; k++ {
			acc = field.Add(acc, field.Mul(row[k], state[k]))
		}
		if nSBox < t {
			constTerm := field.Zero()
			for j := nSBox; j < t; j++ {
				constTerm = field.Add(constTerm, field.Mul(ci, row[j]))
			}
			acc = field.Add(acc, constTerm)
		}
		out[i] = acc
	}
	return out
}
