package poseidon

import (
	"fmt"

	"github.com/ethsnarks-go/poseidon/csys"
	"github.com/ethsnarks-go/poseidon/field"
	"github.com/ethsnarks-go/poseidon/internal/rowpar"
)

// Round is one Poseidon round, parameterized by how many
// S-boxes it applies (nSBox) and how many state slots it reads/produces
// (nInputs/nOutputs). Its outputs are linear combinations, not variables:
// the MDS mixing step is linear and folds into the next round's inputs at
// zero constraint cost.
type Round struct {
	T, NSBox, NInputs, NOutputs int
	Ci                          field.Fe
	M                           []field.Fe // shared reference into Constants.M, len T*T
	State                       []csys.LinearCombination
	SBoxes                      []*SBox
	Outputs                     []csys.LinearCombination
}

// NewRound allocates the round's S-box gadgets and computes its output
// linear combinations eagerly (no intermediate state variable is ever
// allocated for state positions that don't feed an S-box).
func NewRound(pb csys.Protoboard, t, nSBox, nInputs, nOutputs int, ci field.Fe, m []field.Fe, state []csys.LinearCombination) (*Round, error) {
	if nInputs > t || nOutputs > t || nSBox > t {
		return nil, fmt.Errorf("%w: round(t=%d, nSBox=%d, nInputs=%d, nOutputs=%d)", ErrParameterInvalid, t, nSBox, nInputs, nOutputs)
	}
	if len(m) != t*t {
		return nil, fmt.Errorf("%w: matrix has %d entries, want %d", ErrParameterInvalid, len(m), t*t)
	}

	sboxes := make([]*SBox, nSBox)
	for i := range sboxes {
		sboxes[i] = NewSBox(pb)
	}

	r := &Round{
		T: t, NSBox: nSBox, NInputs: nInputs, NOutputs: nOutputs,
		Ci: ci, M: m, State: state, SBoxes: sboxes,
	}
	r.Outputs = r.computeOutputs()
	return r, nil
}

// sboxInput returns the linear combination driving S-box h: state[h]+c_i
// when h indexes a real input, or the bare constant c_i otherwise (so that
// positional alignment of S-boxes stays consistent when nInputs < t).
func (r *Round) sboxInput(h int) csys.LinearCombination {
	if h < r.NInputs {
		return r.State[h].AddConstant(r.Ci)
	}
	return csys.LinearCombination{}.AddConstant(r.Ci)
}

// computeOutputs builds the nOutputs output rows, running over rowpar.For
// since row construction has no shared-write state across rows. Each row's
// linear combination reserves t+1 terms up front (an optional constant term
// plus up to t S-box/state terms). A pass-through state combination can carry
// several terms of its own, so a row may grow past that reservation; terms on
// the same variable are then folded together, which bounds a row by the number
// of distinct variables it refers to rather than letting it multiply in size
// with every partial round.
func (r *Round) computeOutputs() []csys.LinearCombination {
	out := make([]csys.LinearCombination, r.NOutputs)
	rowpar.For(r.NOutputs, func(i int) {
		row := r.M[i*r.T : i*r.T+r.T]

		lc := csys.NewLinearCombination(r.T + 1)
		if r.NSBox < r.T {
			constTerm := field.Zero()
			for j := r.NSBox; j < r.T; j++ {
				constTerm = field.Add(constTerm, field.Mul(r.Ci, row[j]))
			}
			lc = lc.AddConstant(constTerm)
		}

		for s := 0; s < r.NSBox; s++ {
			lc = lc.Add(r.SBoxes[s].Result().Scale(row[s]))
		}

		for k := r.NSBox; k < r.NInputs; k++ {
			lc = lc.Add(r.State[k].Scale(row[k]))
		}

		terms := make([]csys.LinearTerm, 0, len(lc.Terms()))
		pos := make(map[csys.Variable]int, len(lc.Terms()))
		for _, term := range lc.Terms() {
			if j, ok := pos[term.Var]; ok {
				terms[j].Coeff = field.Add(terms[j].Coeff, term.Coeff)
				continue
			}
			pos[term.Var] = len(terms)
			terms = append(terms, term)
		}
		merged := csys.NewLinearCombination(len(terms))
		for _, term := range terms {
			merged = merged.AddTerm(term.Var, term.Coeff)
		}
		out[i] = merged
	})
	return out
}

// GenerateConstraints emits the S-box constraints for every S-box in the
// round. The output linear combinations cost no constraints: they are pure
// affine rewrites of existing variables.
func (r *Round) GenerateConstraints(pb csys.Protoboard) {
	for h := 0; h < r.NSBox; h++ {
		r.SBoxes[h].GenerateConstraints(pb, r.sboxInput(h))
	}
}

// GenerateWitness evaluates each S-box's input under the current witness
// and fills in its result variables.
func (r *Round) GenerateWitness(pb csys.Protoboard) {
	for h := 0; h < r.NSBox; h++ {
		value := r.Ci
		if h < r.NInputs {
			value = field.Add(value, csys.Eval(pb, r.State[h]))
		}
		r.SBoxes[h].GenerateWitness(pb, value)
	}
}
