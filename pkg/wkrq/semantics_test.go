package wkrq

import "testing"

// Property 2: e is absorbing for every binary connective.
func TestWeakKleeneAbsorption(t *testing.T) {
	values := []TruthValue{TRUE, FALSE, UNDEFINED}
	for _, v := range values {
		if got := And(v, UNDEFINED); got != UNDEFINED {
			t.Errorf("And(%v, e) = %v, want e", v, got)
		}
		if got := And(UNDEFINED, v); got != UNDEFINED {
			t.Errorf("And(e, %v) = %v, want e", v, got)
		}
		if got := Or(v, UNDEFINED); got != UNDEFINED {
			t.Errorf("Or(%v, e) = %v, want e", v, got)
		}
		if got := Or(UNDEFINED, v); got != UNDEFINED {
			t.Errorf("Or(e, %v) = %v, want e", v, got)
		}
		if got := Impl(v, UNDEFINED); got != UNDEFINED {
			t.Errorf("Impl(%v, e) = %v, want e", v, got)
		}
		if got := Impl(UNDEFINED, v); got != UNDEFINED {
			t.Errorf("Impl(e, %v) = %v, want e", v, got)
		}
	}
}

func TestNeg(t *testing.T) {
	cases := map[TruthValue]TruthValue{TRUE: FALSE, FALSE: TRUE, UNDEFINED: UNDEFINED}
	for in, want := range cases {
		if got := Neg(in); got != want {
			t.Errorf("Neg(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestAndOrClassical(t *testing.T) {
	if And(TRUE, TRUE) != TRUE {
		t.Error("And(t,t) != t")
	}
	if And(TRUE, FALSE) != FALSE {
		t.Error("And(t,f) != f")
	}
	if Or(FALSE, FALSE) != FALSE {
		t.Error("Or(f,f) != f")
	}
	if Or(TRUE, FALSE) != TRUE {
		t.Error("Or(t,f) != t")
	}
	if Impl(FALSE, FALSE) != TRUE {
		t.Error("Impl(f,f) != t")
	}
	if Impl(TRUE, FALSE) != FALSE {
		t.Error("Impl(t,f) != f")
	}
}

func TestBilateralTruthValueGlutGap(t *testing.T) {
	glut := BilateralTruthValue{Positive: TRUE, Negative: TRUE}
	if !glut.IsGlut() || glut.IsGap() {
		t.Error("<t,t> should be a glut, not a gap")
	}
	gap := BilateralTruthValue{Positive: FALSE, Negative: FALSE}
	if !gap.IsGap() || gap.IsGlut() {
		t.Error("<f,f> should be a gap, not a glut")
	}
}
