package wkrq

import "errors"

// Sentinel errors for the input-error class of §7: malformed input is
// rejected at Solve entry, before any tableau is built.
var (
	// ErrMalformedFormula is returned when a signed formula is structurally
	// invalid, e.g. a quantifier matrix references a variable not bound by
	// its own restriction.
	ErrMalformedFormula = errors.New("wkrq: malformed formula")

	// ErrUnknownSign is returned when a SignedFormula carries a Sign value
	// outside the six defined in the sign algebra.
	ErrUnknownSign = errors.New("wkrq: unknown sign")

	// ErrInvariantViolation reports a bug in the engine itself: a fresh
	// constant collision, a rule applied to a closed branch, or similar.
	// Callers should treat it as fatal and file a bug; the engine never
	// recovers from it on its own.
	ErrInvariantViolation = errors.New("wkrq: internal invariant violation")
)
