// Package wkrq implements a three-valued first-order tableau prover for
// Ferguson's weak Kleene logic with restricted quantification (wKrQ) and its
// paraconsistent bilateral-predicate extension (ACrQ).
//
// The package builds signed tableaux over an immutable formula ADT, applies
// the wKrQ/ACrQ rule schemas to expand branches, detects closure (including
// ACrQ's glut tolerance), and extracts three-valued models from surviving
// open branches. The public surface is four operations: Solve, Valid,
// Entails and CheckInference; everything else is exported to let a caller
// inspect a run (trace, stats, models) but is not required for ordinary
// use.
//
// The engine is single-threaded and synchronous: one Solve call owns its
// tableau exclusively. Callers that need to run many independent queries
// concurrently should use SolveAll, which fans out across a worker pool.
package wkrq
