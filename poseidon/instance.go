package poseidon

import (
	"fmt"

	"github.com/ethsnarks-go/poseidon/csys"
	"github.com/ethsnarks-go/poseidon/internal/glog"
	"github.com/ethsnarks-go/poseidon/internal/memo"
)

// masterEntry is the memoized, process-wide master build for one parameter
// tuple: its scratch protoboard, the Master gadget built on it, and the
// once-only latch guarding swapAB.
type masterEntry struct {
	pb        *csys.System
	master    *Master
	swapLatch *memo.Latch
}

var masterTable = memo.NewTable[*masterEntry]()

func masterKey(t, sBoxPartial, F, P, nInputs, nOutputs int, constrainOutputs bool) string {
	return fmt.Sprintf("%d|%d|%d|%d|%d|%d|%v", t, sBoxPartial, F, P, nInputs, nOutputs, constrainOutputs)
}

func getMasterEntry(t, sBoxPartial, F, P, nInputs, nOutputs int, constrainOutputs bool) *masterEntry {
	key := masterKey(t, sBoxPartial, F, P, nInputs, nOutputs, constrainOutputs)
	return masterTable.Get(key, func() *masterEntry {
		glog.Component("master").Debug().
			Int("t", t).Int("c", sBoxPartial).Int("F", F).Int("P", P).
			Int("nInputs", nInputs).Int("nOutputs", nOutputs).
			Msg("building poseidon master permutation")

		pb := csys.NewSystem()
		state := csys.AllocateVariableArray(pb, nInputs).LCs()

		master, err := NewMaster(pb, state, t, sBoxPartial, F, P, nInputs, nOutputs, constrainOutputs)
		if err != nil {
			panic(fmt.Sprintf("poseidon: master parameters rejected after instance-level validation: %v", err))
		}
		master.GenerateConstraints(pb)

		return &masterEntry{pb: pb, master: master, swapLatch: &memo.Latch{}}
	})
}

// Instance is the per-call stamp of a memoized master permutation into a
// caller protoboard: it allocates one block of auxiliary variables on the
// caller's protoboard and binds the caller's input variables, then copies
// the master's constraints in under an index translation instead of
// re-emitting them.
type Instance struct {
	entry  *masterEntry
	pb     csys.Protoboard
	inputs []csys.Variable
	offset int
}

// NewInstance stamps a Poseidon instance with the given compile-time-fixed
// parameters onto pb, binding inputs as the permutation's initial state.
func NewInstance(pb csys.Protoboard, t, sBoxPartial, F, P, nOutputs int, constrainOutputs bool, inputs []csys.Variable) (*Instance, error) {
	nInputs := len(inputs)
	if F%2 != 0 {
		return nil, fmt.Errorf("%w: F=%d must be even", ErrParameterInvalid, F)
	}
	if nInputs > t || nOutputs > t || sBoxPartial > t || sBoxPartial < 1 {
		return nil, fmt.Errorf("%w: instance(t=%d, c=%d, nInputs=%d, nOutputs=%d)", ErrParameterInvalid, t, sBoxPartial, nInputs, nOutputs)
	}

	entry := getMasterEntry(t, sBoxPartial, F, P, nInputs, nOutputs, constrainOutputs)

	offset := pb.NumVariables() + 1
	pb.AllocateVariables(entry.pb.NumVariables() - nInputs)

	return &Instance{entry: entry, pb: pb, inputs: inputs, offset: offset}, nil
}

// translate maps a master-protoboard variable id into this instance's
// caller-protoboard id: the constant-1 variable is universal, the first
// nInputs ids bind to the caller's input variables, and everything after
// that lands in this instance's auxiliary block.
func (g *Instance) translate(idx csys.Variable) csys.Variable {
	if idx == csys.One {
		return csys.One
	}
	i := int(idx)
	if i <= len(g.inputs) {
		return g.inputs[i-1]
	}
	return csys.Variable(g.offset + (i - 1 - len(g.inputs)))
}

// GenerateConstraints copies every master constraint into the caller
// protoboard, rewriting its variable ids eagerly through translate. No
// field arithmetic is redone: only the variable ids change.
func (g *Instance) GenerateConstraints() {
	for _, c := range g.entry.pb.Constraints() {
		tc := csys.TranslateConstraint(c, g.translate)
		g.pb.AddConstraint(tc.A, tc.B, tc.C)
	}
}

// GenerateWitness writes the caller's current input values into the
// master's placeholder slots, runs the master's witness generation, then
// copies the resulting values into this instance's auxiliary block.
func (g *Instance) GenerateWitness() {
	for i, v := range g.inputs {
		g.entry.pb.SetVal(csys.Variable(1+i), g.pb.Val(v))
	}

	g.entry.master.GenerateWitness(g.entry.pb)

	total := entryAuxCount(g)
	for i := 0; i < total; i++ {
		masterIdx := csys.Variable(1 + len(g.inputs) + i)
		g.pb.SetVal(csys.Variable(g.offset+i), g.entry.pb.Val(masterIdx))
	}
}

func entryAuxCount(g *Instance) int {
	return g.entry.pb.NumVariables() - len(g.inputs)
}

// Result returns the single output variable (after translation). It is
// only available when the master was built with exactly one output and
// ConstrainOutputs set.
func (g *Instance) Result() (csys.Variable, error) {
	if !g.entry.master.ConstrainOutputs || g.entry.master.NOutputs != 1 {
		return 0, fmt.Errorf("poseidon: Result() requires nOutputs=1 and constrainOutputs=true")
	}
	return g.translate(g.entry.master.OutputVars[0]), nil
}

// Results returns every output variable (after translation), the symmetric
// multi-output counterpart to Result.
func (g *Instance) Results() ([]csys.Variable, error) {
	if !g.entry.master.ConstrainOutputs {
		return nil, fmt.Errorf("poseidon: Results() requires constrainOutputs=true")
	}
	out := make([]csys.Variable, len(g.entry.master.OutputVars))
	for i, v := range g.entry.master.OutputVars {
		out[i] = g.translate(v)
	}
	return out, nil
}

// SwapAB mutates the shared master's constraints, swapping A and B, exactly
// once across the process lifetime — later callers, including from other
// goroutines, observe the same post-swap state without re-swapping.
func (g *Instance) SwapAB() {
	g.entry.swapLatch.Do(func() {
		for _, c := range g.entry.pb.Constraints() {
			c.SwapAB()
		}
	})
}
