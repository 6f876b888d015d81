package wkrq

// Rule priorities (§4.6): oracle rules fire before α, α before β, so a
// cheap atomic verdict can close a branch before a costly split is ever
// built.
const (
	priorityOracle = 5
	priorityAlpha  = 10
	priorityBeta   = 20
)

// Rule is an instantiated rule application: the conclusions are already
// computed signed formulas, not a schema — quantifier rules need branch
// state (ground terms, fresh-constant generator) to produce them, so there
// is no value in a separate uninstantiated Rule value.
//
// A Rule with one conclusion branch is α: the branch is simply extended. A
// Rule with k>1 conclusion branches is β: the branch is replaced by k
// children, each extended by one of the lists.
type Rule struct {
	Name        string
	Conclusions [][]SignedFormula
	Priority    int
}

func (r *Rule) IsBeta() bool { return len(r.Conclusions) > 1 }

func alpha(name string, priority int, conclusions ...SignedFormula) *Rule {
	return &Rule{Name: name, Conclusions: [][]SignedFormula{conclusions}, Priority: priority}
}

func beta(name string, priority int, branches ...[]SignedFormula) *Rule {
	return &Rule{Name: name, Conclusions: branches, Priority: priority}
}

// matchPropositional implements the connective and m/n rows of §4.2's rule
// table. It does not consult branch state, so it applies identically under
// both logics except where selectRuleACrQ intercepts negated atoms first.
func matchPropositional(sf SignedFormula) (*Rule, bool) {
	c, ok := sf.Formula.(*Compound)
	if !ok {
		return nil, false
	}
	switch c.Op {
	case OpNeg:
		phi := c.Args[0]
		switch sf.Sign {
		case SignT:
			return alpha("t-neg", priorityAlpha, NewSignedFormula(SignF, phi)), true
		case SignF:
			return alpha("f-neg", priorityAlpha, NewSignedFormula(SignT, phi)), true
		case SignE:
			return alpha("e-neg", priorityAlpha, NewSignedFormula(SignE, phi)), true
		case SignM:
			return alpha("m-neg", priorityAlpha, NewSignedFormula(SignN, phi)), true
		case SignN:
			return alpha("n-neg", priorityAlpha, NewSignedFormula(SignM, phi)), true
		}
		return nil, false
	case OpAnd:
		phi, psi := c.Args[0], c.Args[1]
		switch sf.Sign {
		case SignT:
			return alpha("t-and", priorityAlpha, NewSignedFormula(SignT, phi), NewSignedFormula(SignT, psi)), true
		case SignF:
			return beta("f-and", priorityBeta,
				[]SignedFormula{NewSignedFormula(SignF, phi)},
				[]SignedFormula{NewSignedFormula(SignF, psi)},
				[]SignedFormula{NewSignedFormula(SignE, phi), NewSignedFormula(SignE, psi)},
			), true
		case SignE:
			return beta("e-and", priorityBeta,
				[]SignedFormula{NewSignedFormula(SignE, phi)},
				[]SignedFormula{NewSignedFormula(SignE, psi)},
			), true
		}
		return nil, false
	case OpOr:
		phi, psi := c.Args[0], c.Args[1]
		switch sf.Sign {
		case SignT:
			return beta("t-or", priorityBeta,
				[]SignedFormula{NewSignedFormula(SignT, phi)},
				[]SignedFormula{NewSignedFormula(SignT, psi)},
				[]SignedFormula{NewSignedFormula(SignE, phi), NewSignedFormula(SignE, psi)},
			), true
		case SignF:
			return alpha("f-or", priorityAlpha, NewSignedFormula(SignF, phi), NewSignedFormula(SignF, psi)), true
		case SignE:
			return beta("e-or", priorityBeta,
				[]SignedFormula{NewSignedFormula(SignE, phi)},
				[]SignedFormula{NewSignedFormula(SignE, psi)},
			), true
		}
		return nil, false
	case OpImpl:
		phi, psi := c.Args[0], c.Args[1]
		switch sf.Sign {
		case SignT:
			return beta("t-impl", priorityBeta,
				[]SignedFormula{NewSignedFormula(SignF, phi)},
				[]SignedFormula{NewSignedFormula(SignT, psi)},
				[]SignedFormula{NewSignedFormula(SignE, phi), NewSignedFormula(SignE, psi)},
			), true
		case SignF:
			return alpha("f-impl", priorityAlpha, NewSignedFormula(SignT, phi), NewSignedFormula(SignF, psi)), true
		case SignE:
			return beta("e-impl", priorityBeta,
				[]SignedFormula{NewSignedFormula(SignE, phi)},
				[]SignedFormula{NewSignedFormula(SignE, psi)},
			), true
		}
		return nil, false
	}
	return nil, false
}

// matchMN implements the m/n decomposition rows that apply to any formula,
// not only compounds: "m: φ" and "n: φ" split on the meaning of the sign
// itself, independent of φ's shape.
func matchMN(sf SignedFormula) (*Rule, bool) {
	switch sf.Sign {
	case SignM:
		if _, isNeg := isNegation(sf.Formula); isNeg {
			return nil, false // handled by matchPropositional's m-neg row
		}
		return beta("m-split", priorityBeta,
			[]SignedFormula{NewSignedFormula(SignT, sf.Formula)},
			[]SignedFormula{NewSignedFormula(SignF, sf.Formula)},
		), true
	case SignN:
		if _, isNeg := isNegation(sf.Formula); isNeg {
			return nil, false // handled by matchPropositional's n-neg row
		}
		return beta("n-split", priorityBeta,
			[]SignedFormula{NewSignedFormula(SignF, sf.Formula)},
			[]SignedFormula{NewSignedFormula(SignE, sf.Formula)},
		), true
	}
	return nil, false
}

func isNegation(f Formula) (*Compound, bool) {
	c, ok := f.(*Compound)
	if ok && c.Op == OpNeg {
		return c, true
	}
	return nil, false
}

// existentialWitnessRule builds the e-signed witness rule shared by
// e-exists and e-forall (SPEC_FULL.md §9A: "e: [∃Xφ]ψ holds iff some branch
// witness constant makes at least one of φ(c), ψ(c) evaluate to e —
// existential witness, fresh constant"). Every ground term already on the
// branch is tried as a candidate witness, but a freshly minted constant is
// always tried too: reusing only existing terms can pin every candidate to
// a conflicting value (e.g. one already asserted t or f elsewhere on the
// branch) even when the e-claim itself is perfectly satisfiable by an
// unconstrained domain element. Trying both, as sibling branches of one
// application, is what makes the rule sound; it is one-shot (not re-fired
// as new ground terms later appear) since it already considers every term
// known at the time it fires, plus the one fresh term that always remains
// available.
func existentialWitnessRule(name string, restriction, matrix Formula, v Term, branch *Branch, gen *ConstantGenerator) *Rule {
	witnesses := append(branch.groundTermsSorted(), gen.Next())
	branches := make([][]SignedFormula, 0, len(witnesses)*2)
	for _, c := range witnesses {
		branches = append(branches,
			[]SignedFormula{NewSignedFormula(SignE, substitute(restriction, v, c))},
			[]SignedFormula{NewSignedFormula(SignE, substitute(matrix, v, c))},
		)
	}
	return beta(name, priorityBeta, branches...)
}

// matchQuantifier implements the restricted-quantifier rows of §4.2,
// consulting branch state for fresh-constant minting and fair universal
// reuse (§4.5). It returns (nil, false) when the rule genuinely does not
// apply yet (e.g. a universal with no unused ground term).
func matchQuantifier(sf SignedFormula, branch *Branch, gen *ConstantGenerator) (*Rule, bool) {
	switch n := sf.Formula.(type) {
	case *RestrictedExists:
		switch sf.Sign {
		case SignT:
			c := gen.Next()
			return alpha("t-exists", priorityAlpha,
				NewSignedFormula(SignT, substitute(n.Restriction, n.Var, c)),
				NewSignedFormula(SignT, substitute(n.Matrix, n.Var, c)),
			), true
		case SignF:
			c, ok := branch.nextLazyWitness(sf.Key())
			if !ok {
				return nil, false
			}
			return beta("f-exists", priorityBeta,
				[]SignedFormula{NewSignedFormula(SignF, substitute(n.Restriction, n.Var, c))},
				[]SignedFormula{NewSignedFormula(SignF, substitute(n.Matrix, n.Var, c))},
			), true
		case SignE:
			return existentialWitnessRule("e-exists", n.Restriction, n.Matrix, n.Var, branch, gen), true
		}
	case *RestrictedForall:
		switch sf.Sign {
		case SignT:
			c, ok := branch.nextUniversalWitness(n)
			if !ok {
				return nil, false
			}
			return beta("t-forall", priorityBeta,
				[]SignedFormula{NewSignedFormula(SignF, substitute(n.Restriction, n.Var, c))},
				[]SignedFormula{NewSignedFormula(SignT, substitute(n.Matrix, n.Var, c))},
			), true
		case SignF:
			c := gen.Next()
			return alpha("f-forall", priorityAlpha,
				NewSignedFormula(SignT, substitute(n.Restriction, n.Var, c)),
				NewSignedFormula(SignF, substitute(n.Matrix, n.Var, c)),
			), true
		case SignE:
			return existentialWitnessRule("e-forall", n.Restriction, n.Matrix, n.Var, branch, gen), true
		}
	}
	return nil, false
}

// selectRuleWKRQ is the wKrQ rule selector of §4.2, used verbatim by ACrQ
// for every shape that is not a negated atom (§4.3).
func selectRuleWKRQ(sf SignedFormula, branch *Branch, gen *ConstantGenerator) (*Rule, bool) {
	if r, ok := matchPropositional(sf); ok {
		return r, true
	}
	if r, ok := matchMN(sf); ok {
		return r, true
	}
	if r, ok := matchQuantifier(sf, branch, gen); ok {
		return r, true
	}
	return nil, false
}

// selectRuleACrQ is the ACrQ rule selector of §4.3: it rewrites a negated
// atom to its bilateral dual before anything else, then falls through to
// the wKrQ table for every other shape.
func selectRuleACrQ(sf SignedFormula, branch *Branch, gen *ConstantGenerator) (*Rule, bool) {
	if c, isNeg := isNegation(sf.Formula); isNeg {
		if a, isAtom := c.Args[0].(*Atom); isAtom {
			return alpha("acrq-dual", priorityAlpha, NewSignedFormula(sf.Sign, a.Dual())), true
		}
	}
	return selectRuleWKRQ(sf, branch, gen)
}
