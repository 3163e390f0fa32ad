// Package audit orchestrates audit runs: one fetch, concurrent phase
// execution with fault isolation, weighted aggregation, and cross-phase
// derivation of merge suggestions, cannibalization risks, and missing topics.
//
// The orchestrator owns no evaluators of its own; it receives a closed set at
// construction and locates requested phases in it by name. A phase that
// fails, panics, or is unknown still produces a result (zero score, one
// critical finding) so a report never silently omits a requested phase.
package audit
