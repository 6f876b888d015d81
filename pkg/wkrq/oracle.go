package wkrq

// oracleAdapter wraps a caller-supplied OracleFunc with the idempotence and
// failure-handling contract of §4.7: called at most once per atomic
// formula per branch, memoized in the branch's oracle_evaluated set, and
// silent on failure (no conclusion, not marked evaluated, so a sibling
// branch may retry).
type oracleAdapter struct {
	fn  OracleFunc
	gap GapPolicy
}

func newOracleAdapter(opts Options) *oracleAdapter {
	if opts.Oracle == nil {
		return nil
	}
	return &oracleAdapter{fn: opts.Oracle, gap: opts.GapPolicy}
}

func signForTruth(v TruthValue) Sign {
	switch v {
	case TRUE:
		return SignT
	case FALSE:
		return SignF
	default:
		return SignE
	}
}

// evaluate asks the oracle about atom and builds its single-α-branch
// conclusion (§4.7). It returns ok=false, with no error surfaced to the
// engine, whenever the oracle itself fails — the caller must not mark the
// atom evaluated in that case, per the spec's retry-on-sibling allowance.
func (o *oracleAdapter) evaluate(atom *Atom) (*Rule, bool) {
	bv, err := o.fn(atom)
	if err != nil {
		return nil, false
	}

	if bv.IsGap() && o.gap == GapAsV {
		return alpha("oracle-eval", priorityOracle, NewSignedFormula(SignV, atom)), true
	}

	conclusions := []SignedFormula{NewSignedFormula(signForTruth(bv.Positive), atom)}
	conclusions = append(conclusions, NewSignedFormula(signForTruth(bv.Negative), atom.Dual()))
	return alpha("oracle-eval", priorityOracle, conclusions...), true
}

// findUnevaluatedAtom scans the branch for an atomic formula the oracle has
// not yet been asked about, in node order, so oracle calls on one branch
// are deterministic given the input (§5).
func findUnevaluatedAtom(branch *Branch, nodes *nodeStore) (*Atom, bool) {
	seen := make(map[string]bool)
	for _, id := range branch.nodeIDs {
		n := nodes.get(id)
		a, ok := n.Signed.Formula.(*Atom)
		if !ok {
			continue
		}
		if seen[a.Key()] {
			continue
		}
		seen[a.Key()] = true
		if !branch.isOracleEvaluated(a) {
			return a, true
		}
	}
	return nil, false
}

// allAtomsOracleEvaluated reports whether every distinct atomic formula on
// the branch has been asked about, used by the early-termination check of
// §4.6(d) when an oracle is installed.
func allAtomsOracleEvaluated(branch *Branch, nodes *nodeStore) bool {
	_, found := findUnevaluatedAtom(branch, nodes)
	return !found
}
