package poseidon

import (
	"fmt"

	"github.com/ethsnarks-go/poseidon/csys"
)

// Master owns the full round schedule for one (t, c, F, P, nInputs,
// nOutputs, constrainOutputs) tuple: a first round, F/2-1 full prefix
// rounds, P partial rounds, F/2-1 full suffix rounds, and a last round
// and a last round. It is built once per tuple on a scratch protoboard and
// reused by every stamped instance.
type Master struct {
	T, SBoxPartial, F, P, NInputs, NOutputs int
	ConstrainOutputs                        bool

	Constants  *Constants
	First      *Round
	PrefixFull []*Round
	Partial    []*Round
	SuffixFull []*Round
	Last       *Round

	// OutputVars holds the fresh pinned output variables, populated only
	// when ConstrainOutputs is true.
	OutputVars []csys.Variable
}

// NewMaster builds the round schedule on pb, reading the permutation's
// initial state from inInputs.
func NewMaster(pb csys.Protoboard, inInputs []csys.LinearCombination, t, sBoxPartial, F, P, nInputs, nOutputs int, constrainOutputs bool) (*Master, error) {
	if F%2 != 0 {
		return nil, fmt.Errorf("%w: F=%d must be even", ErrParameterInvalid, F)
	}
	if nInputs > t || nOutputs > t || sBoxPartial > t || sBoxPartial < 1 {
		return nil, fmt.Errorf("%w: master(t=%d, c=%d, nInputs=%d, nOutputs=%d)", ErrParameterInvalid, t, sBoxPartial, nInputs, nOutputs)
	}
	if len(inInputs) != nInputs {
		return nil, fmt.Errorf("%w: got %d input combinations, want %d", ErrParameterInvalid, len(inInputs), nInputs)
	}

	constants := GetConstants(t, F, P)
	totalRounds := F + P
	partialBegin := F / 2
	partialEnd := partialBegin + P

	first, err := NewRound(pb, t, t, nInputs, t, constants.C[0], constants.M, inInputs)
	if err != nil {
		return nil, err
	}

	state := first.Outputs
	prefix := make([]*Round, 0, partialBegin-1)
	for i := 1; i < partialBegin; i++ {
		rnd, err := NewRound(pb, t, t, t, t, constants.C[i], constants.M, state)
		if err != nil {
			return nil, err
		}
		prefix = append(prefix, rnd)
		state = rnd.Outputs
	}

	partial := make([]*Round, 0, P)
	for i := partialBegin; i < partialEnd; i++ {
		rnd, err := NewRound(pb, t, sBoxPartial, t, t, constants.C[i], constants.M, state)
		if err != nil {
			return nil, err
		}
		partial = append(partial, rnd)
		state = rnd.Outputs
	}

	suffix := make([]*Round, 0, totalRounds-1-partialEnd)
	for i := partialEnd; i < totalRounds-1; i++ {
		rnd, err := NewRound(pb, t, t, t, t, constants.C[i], constants.M, state)
		if err != nil {
			return nil, err
		}
		suffix = append(suffix, rnd)
		state = rnd.Outputs
	}

	last, err := NewRound(pb, t, t, t, nOutputs, constants.C[totalRounds-1], constants.M, state)
	if err != nil {
		return nil, err
	}

	m := &Master{
		T: t, SBoxPartial: sBoxPartial, F: F, P: P, NInputs: nInputs, NOutputs: nOutputs,
		ConstrainOutputs: constrainOutputs,
		Constants:        constants,
		First:            first,
		PrefixFull:       prefix,
		Partial:          partial,
		SuffixFull:       suffix,
		Last:             last,
	}
	if constrainOutputs {
		m.OutputVars = pb.AllocateVariables(nOutputs)
	}
	return m, nil
}

// GenerateConstraints emits every round's constraints in order, then — if
// ConstrainOutputs — pins the last round's output linear combinations to
// the fresh output variables via identity constraints.
func (m *Master) GenerateConstraints(pb csys.Protoboard) {
	m.First.GenerateConstraints(pb)
	for _, r := range m.PrefixFull {
		r.GenerateConstraints(pb)
	}
	for _, r := range m.Partial {
		r.GenerateConstraints(pb)
	}
	for _, r := range m.SuffixFull {
		r.GenerateConstraints(pb)
	}
	m.Last.GenerateConstraints(pb)

	if m.ConstrainOutputs {
		one := csys.LC(csys.One)
		for i, lc := range m.Last.Outputs {
			pb.AddConstraint(lc, one, csys.LC(m.OutputVars[i]))
		}
	}
}

// GenerateWitness propagates round witnesses in schedule order and, when
// ConstrainOutputs, evaluates the last round's output combinations into the
// pinned output variables.
func (m *Master) GenerateWitness(pb csys.Protoboard) {
	m.First.GenerateWitness(pb)
	for _, r := range m.PrefixFull {
		r.GenerateWitness(pb)
	}
	for _, r := range m.Partial {
		r.GenerateWitness(pb)
	}
	for _, r := range m.SuffixFull {
		r.GenerateWitness(pb)
	}
	m.Last.GenerateWitness(pb)

	if m.ConstrainOutputs {
		for i, lc := range m.Last.Outputs {
			pb.SetVal(m.OutputVars[i], csys.Eval(pb, lc))
		}
	}
}

// NumConstraints returns the number of R1CS constraints the master emits:
// 3*(t*F + c*P) + nOutputs when ConstrainOutputs.
func (m *Master) NumConstraints() int {
	n := 3 * (m.T*m.F + m.SBoxPartial*m.P)
	if m.ConstrainOutputs {
		n += m.NOutputs
	}
	return n
}
