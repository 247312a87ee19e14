// Package poseidon renders the Poseidon permutation and hash as an R1CS
// gadget: a fixed schedule of full and partial rounds, each adding a round
// constant, applying the x^5 S-box to some positions, and mixing the state
// through an MDS matrix — built so that the MDS mixing step never costs a
// variable or constraint, only the S-box does.
//
// The package is organized bottom-up:
//
//   - constants.go:  deterministic round-constant / MDS derivation from a
//     BLAKE2b-seeded stream, memoized per (t, F, P).
//   - sbox.go:       the x^5 S-box gadget (3 variables, 3 constraints).
//   - round.go:      one round, expressed as linear combinations over the
//     previous round's outputs and this round's S-box results.
//   - master.go:      the full round schedule, built once per parameter
//     tuple on a private scratch protoboard.
//   - instance.go:    stamps the memoized master into a caller protoboard by
//     translating variable indices, instead of re-emitting constraints.
//   - poseidon128.go: the Poseidon128 convenience instantiation (t=6, c=1,
//     F=8, P=57).
//   - evaluate.go:    an out-of-circuit reference evaluator for the same
//     round schedule, used to check permutation agreement in tests.
package poseidon
