// Package phase implements the audit phases: independent evaluators that each
// score one aspect of fetched content and report findings.
//
// Each evaluator implements the Evaluator interface and lives in its own file.
// The set is closed: DefaultEvaluators returns every built-in evaluator, and
// the orchestrator receives the set at construction. There is no runtime
// discovery or registration mechanism beyond that.
//
// Scoring is shared: every phase starts at 100 and loses a fixed deduction per
// finding severity (see score.go). Scores are clamped to [0, 100] and every
// evaluator counts at least one check, so consumers can always compute a
// passed/total ratio.
package phase
