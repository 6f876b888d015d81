package wkrq

import (
	"context"
	"fmt"
	"sync"

	"github.com/gitrdm/wkrq/internal/parallel"
)

// validateInput enforces §7's input-error class: every signed formula
// handed to Solve must carry a known sign and a formula with no free
// variable outside a quantifier's own restriction/matrix.
func validateInput(initial []SignedFormula) error {
	for _, sf := range initial {
		if sf.Sign > SignV {
			return fmt.Errorf("validateInput: %w: sign value %d", ErrUnknownSign, sf.Sign)
		}
		if sf.Formula == nil {
			return fmt.Errorf("validateInput: %w: nil formula", ErrMalformedFormula)
		}
		if free := freeVariables(sf.Formula); len(free) > 0 {
			return fmt.Errorf("validateInput: %w: unbound variable %q in %s", ErrMalformedFormula, free[0].Name, sf.Formula)
		}
	}
	return nil
}

// Solve builds a tableau from initial and returns its result (§6.1).
func Solve(initial []SignedFormula, opts Options) (result *TableauResult, err error) {
	if err := validateInput(initial); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("Solve: %w", e)
				return
			}
			err = fmt.Errorf("Solve: %w: %v", ErrInvariantViolation, r)
		}
	}()

	tb := newTableau(opts)
	tb.run(initial)
	return tb.result(), nil
}

// Valid reports whether formula is valid: solve([f ▷ formula, e ▷ formula])
// has no open branch (§6.2).
func Valid(formula Formula, opts Options) (bool, error) {
	res, err := Solve([]SignedFormula{
		NewSignedFormula(SignF, formula),
		NewSignedFormula(SignE, formula),
	}, opts)
	if err != nil {
		return false, fmt.Errorf("Valid: %w", err)
	}
	return res.OpenCount == 0, nil
}

// Entails reports whether premises entail conclusion: equivalent to
// solve([t ▷ p for p in premises] + [n ▷ conclusion]) having no open branch
// (§6.3).
func Entails(premises []Formula, conclusion Formula, opts Options) (bool, error) {
	initial := make([]SignedFormula, 0, len(premises)+1)
	for _, p := range premises {
		initial = append(initial, NewSignedFormula(SignT, p))
	}
	initial = append(initial, NewSignedFormula(SignN, conclusion))

	res, err := Solve(initial, opts)
	if err != nil {
		return false, fmt.Errorf("Entails: %w", err)
	}
	return res.OpenCount == 0, nil
}

// CheckInference is a structured wrapper around Entails returning the
// countermodel on failure (§6.4).
func CheckInference(inf Inference, opts Options) (*InferenceResult, error) {
	initial := make([]SignedFormula, 0, len(inf.Premises)+1)
	for _, p := range inf.Premises {
		initial = append(initial, NewSignedFormula(SignT, p))
	}
	initial = append(initial, NewSignedFormula(SignN, inf.Conclusion))

	res, err := Solve(initial, opts)
	if err != nil {
		return nil, fmt.Errorf("CheckInference: %w", err)
	}
	if res.OpenCount == 0 {
		return &InferenceResult{Valid: true}, nil
	}
	return &InferenceResult{Valid: false, Countermodel: res.Models[0]}, nil
}

// Theory is an ordered, named collection of signed formulas assumed true —
// a thin, dependency-free convenience over repeatedly building the same
// initial-formula slice by hand. It holds nothing an original theory
// manager's persistence layer would need to survive a restart; that
// remains an external collaborator (§1 Purpose & Scope).
type Theory struct {
	Name     string
	Formulas []SignedFormula
}

// NewTheory builds an empty, named theory.
func NewTheory(name string) *Theory {
	return &Theory{Name: name}
}

// Assert appends a signed formula to the theory.
func (t *Theory) Assert(sign Sign, f Formula) {
	t.Formulas = append(t.Formulas, NewSignedFormula(sign, f))
}

// Solve runs solve over the theory's formulas plus any additional signed
// formulas supplied for this call.
func (t *Theory) Solve(opts Options, extra ...SignedFormula) (*TableauResult, error) {
	initial := make([]SignedFormula, 0, len(t.Formulas)+len(extra))
	initial = append(initial, t.Formulas...)
	initial = append(initial, extra...)
	return Solve(initial, opts)
}

// Entails reports whether the theory's t-signed formulas entail conclusion.
// Formulas asserted under any other sign are not used as premises.
func (t *Theory) Entails(conclusion Formula, opts Options) (bool, error) {
	premises := make([]Formula, 0, len(t.Formulas))
	for _, sf := range t.Formulas {
		if sf.Sign == SignT {
			premises = append(premises, sf.Formula)
		}
	}
	return Entails(premises, conclusion, opts)
}

// Query is one solve request submitted to SolveAll.
type Query struct {
	Initial []SignedFormula
}

// SolveAll runs each query through an independent Solve call on a fixed-size
// worker pool, preserving input order in the returned slice (§5, §6B). Each
// tableau owns its own node/branch graph exclusively, so SolveAll adds no
// shared mutable state across queries.
func SolveAll(ctx context.Context, queries []Query, opts Options) ([]TableauResult, error) {
	results := make([]TableauResult, len(queries))
	errs := make([]error, len(queries))

	pool := parallel.NewPool(0)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			res, err := Solve(q.Initial, opts)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = *res
		}
		if err := pool.Submit(ctx, task); err != nil {
			wg.Done()
			return nil, fmt.Errorf("SolveAll: %w", err)
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("SolveAll: query %d: %w", i, err)
		}
	}
	return results, nil
}
