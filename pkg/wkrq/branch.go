package wkrq

import "sort"

// Branch is a linear path through the tableau, from the root to a leaf,
// augmented with the indices and memos §3 requires for O(1) contradiction
// probes and fair quantifier instantiation.
//
// A Branch never mutates another branch's state: at a β-split the parent's
// index and memo sets are copied into each child (§3 Lifecycle, §9
// "branching discipline"). Nodes themselves are never copied — only the id
// list referencing them.
type Branch struct {
	ID      int
	logic   Logic
	nodeIDs []int

	// signIndex[sign][formulaKey] is the set of node ids asserting that
	// signed formula on this branch — the per-sign index of §3.
	signIndex map[Sign]map[string][]int

	groundTerms map[Term]bool

	closed         bool
	closureWitness [2]int

	// universalInstantiations[forallKey] is the set of constants already
	// used to instantiate that universal on this branch (§4.5 invariant 3).
	universalInstantiations map[string]map[Term]bool

	// lazyInstantiationsUsed generalizes the universal-fairness memo to
	// f:[∃Xφ]ψ, which §4.5 calls "handled lazily" but does not name a memo
	// for: it fires once per unused ground term, exactly like t:[∀Xφ]ψ, so
	// it shares its termination argument. e:[∃Xφ]ψ and e:[∀Xφ]ψ do not use
	// this memo — see existentialWitnessRule in rule.go, which fires once
	// and considers every ground term already on the branch plus a fresh
	// one in a single application, rather than lazily cycling through them.
	// Keyed by the quantifier formula's own Key() so occurrences never
	// collide.
	lazyInstantiationsUsed map[string]map[Term]bool

	// oracleEvaluated is the set of atomic formula keys the oracle has
	// already been asked about on this branch (§4.7 idempotence).
	oracleEvaluated map[string]bool
}

func newBranch(id int, logic Logic) *Branch {
	return &Branch{
		ID:                      id,
		logic:                   logic,
		signIndex:               make(map[Sign]map[string][]int),
		groundTerms:             make(map[Term]bool),
		universalInstantiations: make(map[string]map[Term]bool),
		lazyInstantiationsUsed:  make(map[string]map[Term]bool),
		oracleEvaluated:         make(map[string]bool),
		closureWitness:          [2]int{-1, -1},
	}
}

// clone deep-copies every index and memo set so the returned branch shares
// no mutable state with b — the copy-on-write discipline a β-split requires.
func (b *Branch) clone(newID int) *Branch {
	c := newBranch(newID, b.logic)
	c.nodeIDs = append([]int(nil), b.nodeIDs...)
	for sign, byKey := range b.signIndex {
		m := make(map[string][]int, len(byKey))
		for k, ids := range byKey {
			m[k] = append([]int(nil), ids...)
		}
		c.signIndex[sign] = m
	}
	for t := range b.groundTerms {
		c.groundTerms[t] = true
	}
	for k, used := range b.universalInstantiations {
		m := make(map[Term]bool, len(used))
		for t := range used {
			m[t] = true
		}
		c.universalInstantiations[k] = m
	}
	for k, used := range b.lazyInstantiationsUsed {
		m := make(map[Term]bool, len(used))
		for t := range used {
			m[t] = true
		}
		c.lazyInstantiationsUsed[k] = m
	}
	for k := range b.oracleEvaluated {
		c.oracleEvaluated[k] = true
	}
	c.closed = b.closed
	c.closureWitness = b.closureWitness
	return c
}

// addFormula inserts sign ▷ f as a node produced by ruleName from parent,
// updates all indices, registers any ground terms it introduces, and checks
// closure (§4.4). It returns the new node's id.
func (b *Branch) addFormula(nodes *nodeStore, sf SignedFormula, parent int, ruleName string) int {
	node := nodes.add(sf, parent, ruleName)
	b.nodeIDs = append(b.nodeIDs, node.ID)
	b.registerGroundTerms(sf.Formula)

	key := sf.Formula.Key()
	byKey, ok := b.signIndex[sf.Sign]
	if !ok {
		byKey = make(map[string][]int)
		b.signIndex[sf.Sign] = byKey
	}
	byKey[key] = append(byKey[key], node.ID)

	if b.closed {
		return node.ID
	}
	if !sf.Sign.isClosureSign() {
		return node.ID
	}
	for _, otherSign := range []Sign{SignT, SignF, SignE} {
		if otherSign == sf.Sign {
			continue
		}
		ids, ok := b.signIndex[otherSign][key]
		if !ok || len(ids) == 0 {
			continue
		}
		b.closed = true
		b.closureWitness = [2]int{ids[0], node.ID}
		return node.ID
	}

	// Bilateral glut check (§4.4, Ferguson Def. 18): t:p(t̄) and t:p*(t̄) do
	// not share a formula key, so the probe above never sees them. A glut
	// is tolerated under ACrQ but lethal under wKrQ, where asserting both
	// a predicate and its dual true is a direct contradiction.
	if sf.Sign == SignT && b.logic == LogicWKRQ {
		if a, isAtom := sf.Formula.(*Atom); isAtom {
			dualKey := a.Dual().Key()
			if ids, ok := b.signIndex[SignT][dualKey]; ok && len(ids) > 0 {
				b.closed = true
				b.closureWitness = [2]int{ids[0], node.ID}
			}
		}
	}
	return node.ID
}

// registerGroundTerms records every constant occurring in f into the
// branch's ground-term set (§3: "constants occurring anywhere on the
// branch").
func (b *Branch) registerGroundTerms(f Formula) {
	switch n := f.(type) {
	case *Atom:
		for _, t := range n.Args {
			if t.IsConstant() {
				b.groundTerms[t] = true
			}
		}
	case *Compound:
		for _, a := range n.Args {
			b.registerGroundTerms(a)
		}
	case *RestrictedExists:
		b.registerGroundTerms(n.Restriction)
		b.registerGroundTerms(n.Matrix)
	case *RestrictedForall:
		b.registerGroundTerms(n.Restriction)
		b.registerGroundTerms(n.Matrix)
	}
}

// groundTermsSorted returns the branch's ground terms in deterministic
// (lexicographic) order, as §4.5 requires for fair, reproducible universal
// instantiation.
func (b *Branch) groundTermsSorted() []Term {
	out := make([]Term, 0, len(b.groundTerms))
	for t := range b.groundTerms {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// nextUniversalWitness picks the lexicographically smallest unused ground
// term for the given universal, per §4.5, and marks it used. It reports
// false when every ground term has already been used for this universal.
func (b *Branch) nextUniversalWitness(u *RestrictedForall) (Term, bool) {
	key := u.Key()
	used := b.universalInstantiations[key]
	for _, c := range b.groundTermsSorted() {
		if used == nil || !used[c] {
			if used == nil {
				used = make(map[Term]bool)
				b.universalInstantiations[key] = used
			}
			used[c] = true
			return c, true
		}
	}
	return Term{}, false
}

// hasUnusedUniversalWitness reports whether the universal admits another
// instantiation without mutating any memo (used by rule scanning to decide
// applicability before actually applying).
func (b *Branch) hasUnusedUniversalWitness(u *RestrictedForall) bool {
	used := b.universalInstantiations[u.Key()]
	for c := range b.groundTerms {
		if used == nil || !used[c] {
			return true
		}
	}
	return false
}

// nextLazyWitness picks the lexicographically smallest ground term not yet
// used for the quantifier occurrence identified by key, marks it used, and
// reports false once every ground term has been consumed. It backs only the
// f:[∃Xφ]ψ row (see lazyInstantiationsUsed).
func (b *Branch) nextLazyWitness(key string) (Term, bool) {
	used := b.lazyInstantiationsUsed[key]
	for _, c := range b.groundTermsSorted() {
		if used == nil || !used[c] {
			if used == nil {
				used = make(map[Term]bool)
				b.lazyInstantiationsUsed[key] = used
			}
			used[c] = true
			return c, true
		}
	}
	return Term{}, false
}

// hasUnusedLazyWitness mirrors hasUnusedUniversalWitness for the lazy memo.
func (b *Branch) hasUnusedLazyWitness(key string) bool {
	used := b.lazyInstantiationsUsed[key]
	for c := range b.groundTerms {
		if used == nil || !used[c] {
			return true
		}
	}
	return false
}

// isOracleEvaluated reports whether the oracle has already been asked about
// atom on this branch.
func (b *Branch) isOracleEvaluated(atom Formula) bool {
	return b.oracleEvaluated[atom.Key()]
}

func (b *Branch) markOracleEvaluated(atom Formula) {
	b.oracleEvaluated[atom.Key()] = true
}

// signedFormulas returns the branch's signed formulas in node-append order.
func (b *Branch) signedFormulas(nodes *nodeStore) []SignedFormula {
	out := make([]SignedFormula, len(b.nodeIDs))
	for i, id := range b.nodeIDs {
		out[i] = nodes.get(id).Signed
	}
	return out
}
