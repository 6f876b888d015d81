package wkrq

import "fmt"

// Sign is one of the six signs of §3.
type Sign uint8

const (
	// SignT: designated true in the intended interpretation.
	SignT Sign = iota
	// SignF: designated false.
	SignF
	// SignE: undefined.
	SignE
	// SignM: "meaningful" — t or f.
	SignM
	// SignN: "nontrue" — f or e.
	SignN
	// SignV: variable/unknown placeholder; produced only by the oracle
	// adapter, never by a logical rule, and never a closure participant
	// (§9, open question on sign v).
	SignV
)

func (s Sign) String() string {
	switch s {
	case SignT:
		return "t"
	case SignF:
		return "f"
	case SignE:
		return "e"
	case SignM:
		return "m"
	case SignN:
		return "n"
	case SignV:
		return "v"
	default:
		return "?"
	}
}

// ParseSign maps the one-letter surface spelling to a Sign.
func ParseSign(s string) (Sign, error) {
	switch s {
	case "t":
		return SignT, nil
	case "f":
		return SignF, nil
	case "e":
		return SignE, nil
	case "m":
		return SignM, nil
	case "n":
		return SignN, nil
	case "v":
		return SignV, nil
	default:
		return 0, fmt.Errorf("ParseSign: %w: %q", ErrUnknownSign, s)
	}
}

// isClosureSign reports whether s participates in the closure probe. Only
// {t, f, e} do; m and n are decomposed by rules, v never closes (§3, §9).
func (s Sign) isClosureSign() bool {
	return s == SignT || s == SignF || s == SignE
}

// IncompatibleSigns reports whether a and b are two distinct elements of
// {t, f, e} — the only pairs that, on the same formula, make a branch
// inconsistent. The bilateral glut case (an atom and its dual both t) is a
// separate check in branch.go's addFormula, since the two formulas have
// different keys and never reach this comparison.
func IncompatibleSigns(a, b Sign) bool {
	return a != b && a.isClosureSign() && b.isClosureSign()
}

// SignedFormula is `sign ▷ formula`. Equality is structural over both
// components.
type SignedFormula struct {
	Sign    Sign
	Formula Formula
}

// NewSignedFormula builds a signed formula.
func NewSignedFormula(sign Sign, f Formula) SignedFormula {
	return SignedFormula{Sign: sign, Formula: f}
}

func (sf SignedFormula) String() string {
	return fmt.Sprintf("%s ▷ %s", sf.Sign, sf.Formula)
}

// Key returns a canonical string combining the sign and the formula's own
// Key, suitable for use as a map key in the per-sign branch index.
func (sf SignedFormula) Key() string {
	return sf.Sign.String() + "\x1f" + sf.Formula.Key()
}

// Equal reports structural equality of both components.
func (sf SignedFormula) Equal(other SignedFormula) bool {
	return sf.Sign == other.Sign && Equal(sf.Formula, other.Formula)
}
