package wkrq

import "sort"

// candidate is one applicable rule instance found while scanning a branch:
// enough information to compare it against others by §4.6's sort key
// (priority ascending, then node id ascending — this implementation has no
// distinct complexity-cost metric, so node id alone breaks priority ties)
// without yet paying the cost of instantiating its conclusions.
type candidate struct {
	premiseNodeID int
	priority      int
	isOracle      bool
	atom          *Atom // only set when isOracle
}

func (c candidate) less(o candidate) bool {
	if c.priority != o.priority {
		return c.priority < o.priority
	}
	return c.premiseNodeID < o.premiseNodeID
}

// previewRule reports whether node's signed formula currently admits a
// rule application, and at what priority, without mutating any branch memo
// — so it is safe to call while merely scanning for the best candidate.
// t:∀ and f:∃ are the only rows that remain applicable across many
// iterations as new ground terms appear, gated by their witness memos;
// every other shape, including both e-signed quantifier rows (one-shot
// since existentialWitnessRule already considers every ground term known
// at firing time plus a fresh one), is one-shot, gated by applied.
func previewRule(node *TableauNode, branch *Branch, logic Logic, applied map[int]bool) (priority int, ok bool) {
	sf := node.Signed

	if logic == LogicACrQ {
		if c, isNeg := isNegation(sf.Formula); isNeg {
			if _, isAtom := c.Args[0].(*Atom); isAtom {
				return priorityAlpha, !applied[node.ID]
			}
		}
	}

	if r, matched := matchPropositional(sf); matched {
		return r.Priority, !applied[node.ID]
	}
	if r, matched := matchMN(sf); matched {
		return r.Priority, !applied[node.ID]
	}

	switch n := sf.Formula.(type) {
	case *RestrictedExists:
		switch sf.Sign {
		case SignT:
			return priorityAlpha, !applied[node.ID]
		case SignF:
			return priorityBeta, branch.hasUnusedLazyWitness(sf.Key())
		case SignE:
			// One-shot: existentialWitnessRule already considers every
			// ground term known at firing time plus a fresh one, so there
			// is nothing left to gain by re-firing later (see rule.go).
			return priorityBeta, !applied[node.ID]
		}
	case *RestrictedForall:
		switch sf.Sign {
		case SignT:
			return priorityBeta, branch.hasUnusedUniversalWitness(n)
		case SignF:
			return priorityAlpha, !applied[node.ID]
		case SignE:
			return priorityBeta, !applied[node.ID]
		}
	}
	return 0, false
}

// Tableau owns one proof search: its node store, constant generator,
// oracle adapter and the current open/closed branch pools. It is built and
// driven entirely by Solve; callers never construct one directly, matching
// §5's "each tableau owns its node and branch graph exclusively".
type Tableau struct {
	opts   Options
	nodes  *nodeStore
	gen    *ConstantGenerator
	oracle *oracleAdapter

	// open holds every branch the tableau has ever produced, closed ones
	// included: a closed branch is still retained for trace and counting
	// (§3 Lifecycle) but excluded from expansion by openBranchesUnclosed.
	open       []*Branch
	nextBranch int

	// applied[branchID][nodeID] marks a one-shot rule as already fired on
	// that branch, so it is never reconsidered (§3 invariant 4: a rule is
	// either applied or still pending — never reapplied once it has fired).
	applied map[int]map[int]bool

	trace      []TraceStep
	incomplete bool

	iterations int
	ruleApps   map[string]int
}

func newTableau(opts Options) *Tableau {
	return &Tableau{
		opts:     opts.normalized(),
		nodes:    newNodeStore(),
		gen:      NewConstantGenerator(),
		oracle:   newOracleAdapter(opts),
		applied:  make(map[int]map[int]bool),
		ruleApps: make(map[string]int),
	}
}

func (tb *Tableau) newBranch() *Branch {
	b := newBranch(tb.nextBranch, tb.opts.Logic)
	tb.applied[b.ID] = make(map[int]bool)
	tb.nextBranch++
	return b
}

func (tb *Tableau) selectRule(sf SignedFormula, branch *Branch) (*Rule, bool) {
	if tb.opts.Logic == LogicACrQ {
		return selectRuleACrQ(sf, branch, tb.gen)
	}
	return selectRuleWKRQ(sf, branch, tb.gen)
}

// branchPlan summarizes one open branch's best applicable candidate and its
// non-branching (α-priority or oracle-priority) candidate count, the metric
// branch selection minimizes (§4.6 step 1).
type branchPlan struct {
	branch         *Branch
	candidates     []candidate // sorted by (priority, node id)
	nonBranchCount int
}

func (p branchPlan) hasCandidate() bool { return len(p.candidates) > 0 }

func (tb *Tableau) planBranch(branch *Branch) branchPlan {
	plan := branchPlan{branch: branch}

	if tb.oracle != nil {
		if atom, ok := findUnevaluatedAtom(branch, tb.nodes); ok {
			nodeID := branch.signIndex[firstSignOf(branch, atom)][atom.Key()][0]
			plan.candidates = append(plan.candidates, candidate{premiseNodeID: nodeID, priority: priorityOracle, isOracle: true, atom: atom})
		}
	}

	applied := tb.applied[branch.ID]
	for _, id := range branch.nodeIDs {
		node := tb.nodes.get(id)
		priority, ok := previewRule(node, branch, tb.opts.Logic, applied)
		if !ok {
			continue
		}
		plan.candidates = append(plan.candidates, candidate{premiseNodeID: id, priority: priority})
	}

	for _, c := range plan.candidates {
		if c.priority < priorityBeta {
			plan.nonBranchCount++
		}
	}
	sort.Slice(plan.candidates, func(i, j int) bool { return plan.candidates[i].less(plan.candidates[j]) })
	return plan
}

// firstSignOf returns any sign under which atom currently appears on
// branch, used only to pick a stable node id for candidate tie-breaking.
func firstSignOf(branch *Branch, atom *Atom) Sign {
	for _, s := range []Sign{SignT, SignF, SignE, SignM, SignN, SignV} {
		if ids, ok := branch.signIndex[s][atom.Key()]; ok && len(ids) > 0 {
			return s
		}
	}
	return SignT
}

// run drives the proof-search loop of §4.6 to completion (or to a resource
// bound) starting from the given initial signed formulas.
func (tb *Tableau) run(initial []SignedFormula) {
	root := tb.newBranch()
	for _, sf := range initial {
		root.addFormula(tb.nodes, sf, -1, "initial")
	}
	tb.open = []*Branch{root}

	for {
		if tb.totalBranches() > tb.opts.MaxBranches {
			tb.incomplete = true
			return
		}
		if tb.iterations >= tb.opts.MaxIterations {
			tb.incomplete = true
			return
		}

		live := tb.openBranchesUnclosed()
		if len(live) == 0 {
			return
		}

		plans := make([]branchPlan, 0, len(live))
		for _, b := range live {
			p := tb.planBranch(b)
			if p.hasCandidate() {
				plans = append(plans, p)
			}
		}
		if len(plans) == 0 {
			// No open branch admits a further rule: §4.6(a) completion.
			return
		}

		chosen := plans[0]
		for _, p := range plans[1:] {
			if p.nonBranchCount < chosen.nonBranchCount ||
				(p.nonBranchCount == chosen.nonBranchCount && p.branch.ID < chosen.branch.ID) {
				chosen = p
			}
		}

		if tb.checkEarlyTermination(live) {
			return
		}

		// Try the chosen branch's candidates in priority order; an oracle
		// failure is skipped (§4.7, §7) and the engine continues with the
		// next candidate rather than stalling the whole iteration. If every
		// candidate was a failing oracle call, this iteration makes no
		// progress; the iteration cap (§7 resource exhaustion) bounds that.
		for _, c := range chosen.candidates {
			if tb.applyCandidate(chosen.branch, c) {
				break
			}
		}
		tb.iterations++
	}
}

// checkEarlyTermination implements §4.6(d): without an oracle, any open
// branch whose nodes are all atomic is already a model witness. With an
// oracle, that heuristic is unsound (the oracle might still refute a
// pending atom) and is suppressed until every atomic node on every open
// branch has been oracle-evaluated (§9, "early termination with oracle").
// The search stops only when every live branch passes these checks.
func (tb *Tableau) checkEarlyTermination(live []*Branch) bool {
	if !tb.opts.EarlyTermination {
		return false
	}
	for _, b := range live {
		if tb.oracle != nil && !allAtomsOracleEvaluated(b, tb.nodes) {
			return false
		}
		if !branchIsAllAtomic(b, tb.nodes) {
			return false
		}
	}
	return true
}

func branchIsAllAtomic(b *Branch, nodes *nodeStore) bool {
	for _, id := range b.nodeIDs {
		if !nodes.get(id).Signed.Formula.IsAtomic() {
			return false
		}
	}
	return true
}

// applyCandidate instantiates and applies one candidate: an oracle
// evaluation, an α extension, or a β split. It reports whether the
// candidate actually produced progress — false only for an oracle call
// that failed, per §4.7's "skipped... not marked evaluated... engine
// continues with remaining rules": the caller falls through to the next
// candidate on the same branch rather than stalling.
func (tb *Tableau) applyCandidate(branch *Branch, c candidate) bool {
	if c.isOracle {
		rule, ok := tb.oracle.evaluate(c.atom)
		if !ok {
			return false
		}
		// One verdict covers both sides of the bilateral pair, so the dual
		// is not asked about separately.
		branch.markOracleEvaluated(c.atom)
		branch.markOracleEvaluated(c.atom.Dual())
		tb.applyRuleToBranch(branch, rule, c.premiseNodeID)
		return true
	}

	node := tb.nodes.get(c.premiseNodeID)
	rule, ok := tb.selectRule(node.Signed, branch)
	if !ok {
		// An invariant violation: the candidate was deemed applicable by
		// previewRule but selectRule disagrees. This can only happen from
		// an implementation bug, never from valid input.
		panic(ErrInvariantViolation)
	}
	tb.markOneShotIfApplicable(node.Signed, branch, c.premiseNodeID)
	tb.applyRuleToBranch(branch, rule, c.premiseNodeID)
	return true
}

func (tb *Tableau) markOneShotIfApplicable(sf SignedFormula, branch *Branch, nodeID int) {
	switch sf.Formula.(type) {
	case *RestrictedExists:
		if sf.Sign == SignF {
			return // reusable, gated by the lazy-witness memo instead
		}
	case *RestrictedForall:
		if sf.Sign == SignT {
			return // reusable, gated by the universal-witness memo
		}
	}
	tb.applied[branch.ID][nodeID] = true
}

// applyRuleToBranch performs an α extension (rule.Conclusions has one
// branch) or a β split (more than one), checking closure on every
// insertion (§4.4) and recording a trace step when enabled (§6).
func (tb *Tableau) applyRuleToBranch(branch *Branch, rule *Rule, premiseNodeID int) {
	tb.ruleApps[rule.Name]++
	var producedIDs []int
	var branchIDsAfter []int

	if !rule.IsBeta() {
		for _, sf := range rule.Conclusions[0] {
			id := branch.addFormula(tb.nodes, sf, premiseNodeID, rule.Name)
			producedIDs = append(producedIDs, id)
		}
		branchIDsAfter = []int{branch.ID}
		tb.replaceOpen(branch, []*Branch{branch})
	} else {
		// Clone every sibling before extending any of them, so no child
		// inherits another child's conclusions.
		children := make([]*Branch, len(rule.Conclusions))
		children[0] = branch
		for i := 1; i < len(children); i++ {
			children[i] = tb.splitClone(branch)
		}
		for i, conj := range rule.Conclusions {
			child := children[i]
			for _, sf := range conj {
				id := child.addFormula(tb.nodes, sf, premiseNodeID, rule.Name)
				producedIDs = append(producedIDs, id)
			}
			branchIDsAfter = append(branchIDsAfter, child.ID)
		}
		tb.replaceOpen(branch, children)
	}

	if tb.opts.Trace {
		tb.trace = append(tb.trace, TraceStep{
			Step:            len(tb.trace),
			RuleName:        rule.Name,
			PremiseNodeID:   premiseNodeID,
			ProducedNodeIDs: producedIDs,
			BranchIDBefore:  branch.ID,
			BranchIDsAfter:  branchIDsAfter,
		})
	}
}

// splitClone creates a fresh sibling branch carrying a deep copy of
// parent's index and memo state, and its own copy of the applied-rule
// memo, per §3 Lifecycle and §9 "branching discipline".
func (tb *Tableau) splitClone(parent *Branch) *Branch {
	child := parent.clone(tb.nextBranch)
	tb.nextBranch++
	applied := make(map[int]bool, len(tb.applied[parent.ID]))
	for k, v := range tb.applied[parent.ID] {
		applied[k] = v
	}
	tb.applied[child.ID] = applied
	return child
}

// replaceOpen swaps old out of the branch pool for news. Closed branches
// stay in the pool; result counts them.
func (tb *Tableau) replaceOpen(old *Branch, news []*Branch) {
	idx := -1
	for i, b := range tb.open {
		if b == old {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	replacement := make([]*Branch, 0, len(tb.open)-1+len(news))
	replacement = append(replacement, tb.open[:idx]...)
	replacement = append(replacement, news...)
	replacement = append(replacement, tb.open[idx+1:]...)
	tb.open = replacement
}

func (tb *Tableau) openBranchesUnclosed() []*Branch {
	out := make([]*Branch, 0, len(tb.open))
	for _, b := range tb.open {
		if !b.closed {
			out = append(out, b)
		}
	}
	return out
}

func (tb *Tableau) totalBranches() int {
	return len(tb.open)
}

// result assembles the TableauResult once run has finished.
func (tb *Tableau) result() *TableauResult {
	var models []*Model
	seen := make(map[string]bool)
	openCount := 0
	closedCount := 0
	maxDepth := 0
	for _, b := range tb.open {
		if len(b.nodeIDs) > maxDepth {
			maxDepth = len(b.nodeIDs)
		}
		if b.closed {
			closedCount++
			continue
		}
		openCount++
		m := extractModel(b, tb.nodes, tb.opts.Logic)
		key := m.CanonicalKey()
		if !seen[key] {
			seen[key] = true
			models = append(models, m)
		}
	}

	return &TableauResult{
		Satisfiable: openCount > 0,
		Models:      models,
		OpenCount:   openCount,
		ClosedCount: closedCount,
		TotalNodes:  len(tb.nodes.nodes),
		Trace:       tb.trace,
		Incomplete:  tb.incomplete,
		Stats: Stats{
			Iterations:       tb.iterations,
			RuleApplications: tb.ruleApps,
			MaxBranchDepth:   maxDepth,
		},
	}
}
