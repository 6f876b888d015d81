package wkrq

import "testing"

func TestClosureOnDirectContradiction(t *testing.T) {
	nodes := newNodeStore()
	b := newBranch(0, LogicWKRQ)
	p := atomP()

	b.addFormula(nodes, NewSignedFormula(SignT, p), -1, "initial")
	if b.closed {
		t.Fatal("branch closed after a single assertion")
	}
	b.addFormula(nodes, NewSignedFormula(SignF, p), 0, "test")
	if !b.closed {
		t.Error("branch must close on t:P and f:P")
	}
}

func TestMNeverClosesAgainstN(t *testing.T) {
	nodes := newNodeStore()
	b := newBranch(0, LogicWKRQ)
	p := atomP()

	b.addFormula(nodes, NewSignedFormula(SignM, p), -1, "initial")
	b.addFormula(nodes, NewSignedFormula(SignN, p), 0, "test")
	if b.closed {
		t.Error("m and n overlap on f and must never directly close a branch (§9)")
	}
}

// Property 7: a glut on a bilateral predicate is satisfiable under ACrQ and
// unsatisfiable (lethal) under wKrQ.
func TestBilateralGlutACrQTolerantWKRQLethal(t *testing.T) {
	nodes := newNodeStore()
	p := NewAtom("Bird", []Term{NewConstant("tweety")})

	acrq := newBranch(0, LogicACrQ)
	acrq.addFormula(nodes, NewSignedFormula(SignT, p), -1, "initial")
	acrq.addFormula(nodes, NewSignedFormula(SignT, p.Dual()), 0, "test")
	if acrq.closed {
		t.Error("a glut must not close a branch under ACrQ")
	}

	wkrq := newBranch(1, LogicWKRQ)
	wkrq.addFormula(nodes, NewSignedFormula(SignT, p), -1, "initial")
	wkrq.addFormula(nodes, NewSignedFormula(SignT, p.Dual()), 0, "test")
	if !wkrq.closed {
		t.Error("a glut must be lethal (close the branch) under wKrQ")
	}
}

// Property 8: universal fairness. Given k ground terms, the universal
// admits exactly k instantiations before exhausting its witnesses.
func TestUniversalFairnessFiresOncePerConstant(t *testing.T) {
	b := newBranch(0, LogicWKRQ)
	x := NewVariable("X")
	forall := NewRestrictedForall(x, NewAtom("Human", []Term{x}), NewAtom("Mortal", []Term{x}))

	constants := []Term{NewConstant("a"), NewConstant("b"), NewConstant("c")}
	for _, c := range constants {
		b.groundTerms[c] = true
	}

	used := make(map[Term]bool)
	for i := 0; i < len(constants); i++ {
		c, ok := b.nextUniversalWitness(forall)
		if !ok {
			t.Fatalf("expected a witness on iteration %d", i)
		}
		if used[c] {
			t.Fatalf("constant %v reused before every constant was exhausted", c)
		}
		used[c] = true
	}
	if _, ok := b.nextUniversalWitness(forall); ok {
		t.Error("expected no further witness once every ground term is used")
	}
	if len(used) != len(constants) {
		t.Errorf("universal fired %d times, want %d", len(used), len(constants))
	}
}

func TestCloneSharesNoMutableState(t *testing.T) {
	nodes := newNodeStore()
	parent := newBranch(0, LogicWKRQ)
	parent.addFormula(nodes, NewSignedFormula(SignT, atomP()), -1, "initial")

	child := parent.clone(1)
	child.addFormula(nodes, NewSignedFormula(SignT, atomQ()), 0, "test")

	if _, ok := parent.signIndex[SignT][atomQ().Key()]; ok {
		t.Error("mutating a cloned branch must not affect its parent's index")
	}
}

func TestLazyWitnessExhaustion(t *testing.T) {
	b := newBranch(0, LogicWKRQ)
	b.groundTerms[NewConstant("a")] = true
	b.groundTerms[NewConstant("b")] = true

	key := "some-quantifier-key"
	seen := map[Term]bool{}
	for i := 0; i < 2; i++ {
		c, ok := b.nextLazyWitness(key)
		if !ok {
			t.Fatalf("expected a lazy witness on iteration %d", i)
		}
		seen[c] = true
	}
	if len(seen) != 2 {
		t.Fatalf("expected 2 distinct lazy witnesses, got %d", len(seen))
	}
	if _, ok := b.nextLazyWitness(key); ok {
		t.Error("expected no further lazy witness once ground terms are exhausted")
	}
}
