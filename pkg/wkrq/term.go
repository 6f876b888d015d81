package wkrq

import (
	"fmt"
	"sync"
)

// FreshConstantPrefix is the reserved namespace for constants generated
// during tableau expansion. The surface parser must reject user constants
// that start with this prefix so fresh and user constants never collide
// (§9, "variable/constant namespace hygiene").
const FreshConstantPrefix = "c_"

// TermKind distinguishes the two term shapes: a variable, which only ever
// occurs inside a quantifier's restriction and matrix, and a constant,
// which is ground.
type TermKind uint8

const (
	// VariableTerm marks an identifier bound by a restricted quantifier.
	VariableTerm TermKind = iota
	// ConstantTerm marks a ground identifier, either supplied by the
	// caller or generated fresh during existential instantiation.
	ConstantTerm
)

// Term is either a variable or a constant. Terms are plain values: two
// terms are equal iff their Kind and Name match, so Term is safe to use as
// a map key and as a struct field without indirection.
type Term struct {
	Kind TermKind
	Name string
}

// NewVariable builds a variable term.
func NewVariable(name string) Term {
	return Term{Kind: VariableTerm, Name: name}
}

// NewConstant builds a constant term. It does not check namespace hygiene;
// that is the parser's job (§9). The engine does not check it either; its
// own fresh constants always carry FreshConstantPrefix (see
// ConstantGenerator).
func NewConstant(name string) Term {
	return Term{Kind: ConstantTerm, Name: name}
}

// IsVariable reports whether t is a variable.
func (t Term) IsVariable() bool { return t.Kind == VariableTerm }

// IsConstant reports whether t is a constant.
func (t Term) IsConstant() bool { return t.Kind == ConstantTerm }

// IsGround reports whether t contains no variables; for a bare Term this is
// equivalent to IsConstant, kept as a named predicate for symmetry with
// Formula.IsGround.
func (t Term) IsGround() bool { return t.Kind == ConstantTerm }

func (t Term) String() string { return t.Name }

// ConstantGenerator mints fresh constants for existential instantiation.
// It is branch-unique in the sense the spec requires (§4.5, invariant 2):
// each tableau owns exactly one generator, shared by all of its branches,
// so no two branches ever mint the same fresh constant independently,
// which trivially satisfies "fresh constants... do not appear on any
// sibling branch unless independently generated there".
type ConstantGenerator struct {
	mu      sync.Mutex
	counter int64
}

// NewConstantGenerator returns a generator seeded at 1, per §5.
func NewConstantGenerator() *ConstantGenerator {
	return &ConstantGenerator{counter: 0}
}

// Next mints the next fresh constant, monotonically, under the reserved
// prefix.
func (g *ConstantGenerator) Next() Term {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return NewConstant(fmt.Sprintf("%s%d", FreshConstantPrefix, g.counter))
}

// IsFreshName reports whether name falls in the reserved fresh-constant
// namespace. Exposed so a surface parser can reject it from user input.
func IsFreshName(name string) bool {
	return len(name) > len(FreshConstantPrefix) && name[:len(FreshConstantPrefix)] == FreshConstantPrefix
}
