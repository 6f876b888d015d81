package wkrq

// Logic selects the rule selector and closure policy (§6 Options: "logic").
type Logic uint8

const (
	// LogicWKRQ is plain wKrQ: any two distinct {t,f,e} signs on the same
	// formula close the branch.
	LogicWKRQ Logic = iota
	// LogicACrQ is the paraconsistent bilateral extension: a glut
	// (t ▷ p(t̄), t ▷ p*(t̄)) is tolerated and does not close (§4.4).
	LogicACrQ
)

func (l Logic) String() string {
	if l == LogicACrQ {
		return "acrq"
	}
	return "wkrq"
}

// OracleFunc evaluates an atomic formula to a bilateral truth value. It is
// the only externally-blocking operation the engine has (§5); a failure is
// reported via the error return and treated as a local, per-call failure
// (§4.7, §7): the atom is left unevaluated on that branch, not marked, free
// to be retried on a sibling.
type OracleFunc func(atom Formula) (BilateralTruthValue, error)

// GapPolicy controls how the oracle adapter records a <FALSE, FALSE> (gap)
// verdict: either as an ordinary negative assertion, or as the special
// non-closing v-signed marker described in §4.7.
type GapPolicy uint8

const (
	// GapAsNegative records a gap as f ▷ φ (and, if bilateral, f ▷ φ's
	// dual) — an ordinary, closure-eligible assertion.
	GapAsNegative GapPolicy = iota
	// GapAsV records a gap as v ▷ φ, a marker that never closes.
	GapAsV
)

// Options configures a Solve call (§6 Options table).
type Options struct {
	// Logic selects wKrQ (default) or ACrQ.
	Logic Logic

	// Oracle, when non-nil, enables the oracle rule (§4.7).
	Oracle OracleFunc

	// GapPolicy controls how the oracle adapter records a gap verdict.
	// Only consulted when Oracle is non-nil.
	GapPolicy GapPolicy

	// MaxIterations bounds the number of rule applications (default 1000).
	MaxIterations int

	// MaxBranches bounds the number of open+closed branches (default 10000).
	MaxBranches int

	// Trace, when true, records step-by-step rule applications (§6 Trace
	// format).
	Trace bool

	// EarlyTermination enables the atomic-branch shortcut described in
	// §4.6(d) (default true). When Oracle is non-nil, the shortcut
	// additionally waits until every atom on every open branch has been
	// oracle-evaluated, per §4.6(d) and §9.
	EarlyTermination bool
}

// DefaultOptions returns the Options defaults named in §6.
func DefaultOptions() Options {
	return Options{
		Logic:            LogicWKRQ,
		MaxIterations:    1000,
		MaxBranches:      10000,
		EarlyTermination: true,
	}
}

// normalized returns a copy of o with zero-valued bounds replaced by
// defaults, so callers may build an Options literal specifying only the
// fields they care about.
func (o Options) normalized() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = 1000
	}
	if o.MaxBranches <= 0 {
		o.MaxBranches = 10000
	}
	return o
}
