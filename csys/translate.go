package csys

// Translator maps a variable id from a master protoboard's index space into
// a caller protoboard's index space. Variable ids are rewritten eagerly at
// stamp time rather than resolved lazily through a stored back-pointer,
// trading stamp-time allocation for solve-time speed.
type Translator func(Variable) Variable

// Translate rewrites every variable id in l through tau, returning a new
// combination; l is left unmodified.
func Translate(l LinearCombination, tau Translator) LinearCombination {
	out := NewLinearCombination(len(l.terms))
	for _, t := range l.terms {
		out.terms = append(out.terms, LinearTerm{Var: tau(t.Var), Coeff: t.Coeff})
	}
	return out
}

// TranslateConstraint rewrites all three sides of c through tau.
func TranslateConstraint(c *Constraint, tau Translator) *Constraint {
	return &Constraint{
		A: Translate(c.A, tau),
		B: Translate(c.B, tau),
		C: Translate(c.C, tau),
	}
}
