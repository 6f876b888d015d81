package parser

import (
	"testing"

	"github.com/gitrdm/wkrq/pkg/wkrq"
)

func TestParseBareAtom(t *testing.T) {
	f, err := Parse("Bird")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := wkrq.NewAtom("Bird", nil)
	if !wkrq.Equal(f, want) {
		t.Errorf("Parse(%q) = %v, want %v", "Bird", f, want)
	}
}

func TestParseAtomWithArgs(t *testing.T) {
	f, err := Parse("Likes(socrates,plato)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := wkrq.NewAtom("Likes", []wkrq.Term{wkrq.NewConstant("socrates"), wkrq.NewConstant("plato")})
	if !wkrq.Equal(f, want) {
		t.Errorf("Parse(%q) = %v, want %v", "Likes(socrates,plato)", f, want)
	}
}

func TestParseDualAtom(t *testing.T) {
	f, err := Parse("Bird*(tweety)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := wkrq.NewBilateralAtom("Bird", []wkrq.Term{wkrq.NewConstant("tweety")}, true)
	if !wkrq.Equal(f, want) {
		t.Errorf("Parse(%q) = %v, want %v", "Bird*(tweety)", f, want)
	}
}

func TestParseNegation(t *testing.T) {
	f, err := Parse("~Bird")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := wkrq.NewCompound(wkrq.OpNeg, wkrq.NewAtom("Bird", nil))
	if !wkrq.Equal(f, want) {
		t.Errorf("Parse(%q) = %v, want %v", "~Bird", f, want)
	}
}

func TestParseBinaryConnectives(t *testing.T) {
	p, q := wkrq.NewAtom("P", nil), wkrq.NewAtom("Q", nil)
	for _, tc := range []struct {
		src  string
		want wkrq.Formula
	}{
		{"(P&Q)", wkrq.NewCompound(wkrq.OpAnd, p, q)},
		{"(P|Q)", wkrq.NewCompound(wkrq.OpOr, p, q)},
		{"(P->Q)", wkrq.NewCompound(wkrq.OpImpl, p, q)},
	} {
		f, err := Parse(tc.src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.src, err)
		}
		if !wkrq.Equal(f, tc.want) {
			t.Errorf("Parse(%q) = %v, want %v", tc.src, f, tc.want)
		}
	}
}

// <-> has no core-ADT connective; it must desugar to ((P->Q)&(Q->P)).
func TestParseBiconditionalDesugars(t *testing.T) {
	p, q := wkrq.NewAtom("P", nil), wkrq.NewAtom("Q", nil)
	f, err := Parse("(P<->Q)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fwd := wkrq.NewCompound(wkrq.OpImpl, p, q)
	bwd := wkrq.NewCompound(wkrq.OpImpl, q, p)
	want := wkrq.NewCompound(wkrq.OpAnd, fwd, bwd)
	if !wkrq.Equal(f, want) {
		t.Errorf("Parse(%q) = %v, want %v", "(P<->Q)", f, want)
	}
}

func TestParseRestrictedForall(t *testing.T) {
	f, err := Parse("[forall X Human(X)]Mortal(X)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	x := wkrq.NewVariable("X")
	want := wkrq.NewRestrictedForall(x, wkrq.NewAtom("Human", []wkrq.Term{x}), wkrq.NewAtom("Mortal", []wkrq.Term{x}))
	if !wkrq.Equal(f, want) {
		t.Errorf("Parse(forall) = %v, want %v", f, want)
	}
}

func TestParseRestrictedExists(t *testing.T) {
	f, err := Parse("[exists X Human(X)]Mortal(X)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	x := wkrq.NewVariable("X")
	want := wkrq.NewRestrictedExists(x, wkrq.NewAtom("Human", []wkrq.Term{x}), wkrq.NewAtom("Mortal", []wkrq.Term{x}))
	if !wkrq.Equal(f, want) {
		t.Errorf("Parse(exists) = %v, want %v", f, want)
	}
}

func TestParseWhitespaceInsignificant(t *testing.T) {
	a, err := Parse("( P & Q )")
	if err != nil {
		t.Fatalf("Parse with spaces: %v", err)
	}
	b, err := Parse("(P&Q)")
	if err != nil {
		t.Fatalf("Parse without spaces: %v", err)
	}
	if !wkrq.Equal(a, b) {
		t.Errorf("whitespace changed the parsed formula: %v vs %v", a, b)
	}
}

func TestParseNestedFormula(t *testing.T) {
	f, err := Parse("((P&Q)->~P)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p, q := wkrq.NewAtom("P", nil), wkrq.NewAtom("Q", nil)
	want := wkrq.NewCompound(wkrq.OpImpl, wkrq.NewCompound(wkrq.OpAnd, p, q), wkrq.NewCompound(wkrq.OpNeg, p))
	if !wkrq.Equal(f, want) {
		t.Errorf("Parse(nested) = %v, want %v", f, want)
	}
}

func TestParseRejectsTrailingInput(t *testing.T) {
	if _, err := Parse("P Q"); err == nil {
		t.Error("expected an error for trailing input after a complete formula")
	}
}

func TestParseRejectsUnclosedParen(t *testing.T) {
	if _, err := Parse("(P&Q"); err == nil {
		t.Error("expected an error for an unclosed parenthesis")
	}
}

func TestParseRejectsUnknownCharacter(t *testing.T) {
	if _, err := Parse("P@Q"); err == nil {
		t.Error("expected an error for an unrecognized character")
	}
}

func TestParseRejectsEmptyInput(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Error("expected an error for empty input")
	}
}

// A user constant in the engine's reserved fresh-constant namespace must be
// rejected, so it can never collide with a constant the tableau mints
// itself (§9, namespace hygiene).
func TestParseRejectsFreshConstantNamespace(t *testing.T) {
	if _, err := Parse("P(c_1)"); err == nil {
		t.Error("expected an error for a user constant in the reserved c_ namespace")
	}
}

func TestParseAcceptsConstantOutsideFreshNamespace(t *testing.T) {
	f, err := Parse("P(charlie)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := wkrq.NewAtom("P", []wkrq.Term{wkrq.NewConstant("charlie")})
	if !wkrq.Equal(f, want) {
		t.Errorf("Parse(P(charlie)) = %v, want %v", f, want)
	}
}
