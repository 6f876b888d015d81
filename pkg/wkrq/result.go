package wkrq

// TraceStep records one rule application, in the order it happened, for
// the trace format of §6.
type TraceStep struct {
	Step            int
	RuleName        string
	PremiseNodeID   int
	ProducedNodeIDs []int
	BranchIDBefore  int
	BranchIDsAfter  []int
}

// TableauResult is the return value of solve (§6).
type TableauResult struct {
	Satisfiable bool
	Models      []*Model
	OpenCount   int
	ClosedCount int
	TotalNodes  int
	Trace       []TraceStep

	// Incomplete is set when the iteration or branching cap terminated the
	// search before it reached a fixpoint (§7 resource exhaustion).
	Incomplete bool

	Stats Stats
}

// Stats reports what a synchronous, single-threaded engine can observe
// about its own run (§4.9) — a reduced analogue of the teacher's
// SolverMonitor/ExecutionStats, with no goroutine or queue-depth metrics
// since a tableau run has none.
type Stats struct {
	Iterations       int
	RuleApplications map[string]int
	MaxBranchDepth   int
}

// InferenceResult is the structured wrapper check_inference returns (§6.4).
type InferenceResult struct {
	Valid        bool
	Countermodel *Model
}

// Inference is a premises/conclusion pair for CheckInference.
type Inference struct {
	Premises   []Formula
	Conclusion Formula
}
