package poseidon

import "errors"

// ErrParameterInvalid is returned when a gadget is constructed with a
// compile-time-fixed parameter combination that violates a precondition:
// nInputs > t, nOutputs > t, F odd, or c > t.
var ErrParameterInvalid = errors.New("poseidon: invalid parameter combination")
