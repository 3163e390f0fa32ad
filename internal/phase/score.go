package phase

import (
	"errors"
	"fmt"

	"github.com/contentaudit/contentaudit/internal/model"
)

// Score deductions per finding severity. Every phase starts at 100 and loses
// the deduction of each finding it reports; the result is clamped to [0, 100].
//
// The table is intentionally coarse: four critical findings zero a phase,
// while low findings only matter in numbers.
const (
	// DeductionCritical is subtracted for each critical finding.
	DeductionCritical = 25.0

	// DeductionHigh is subtracted for each high finding.
	DeductionHigh = 10.0

	// DeductionMedium is subtracted for each medium finding.
	DeductionMedium = 5.0

	// DeductionLow is subtracted for each low finding.
	DeductionLow = 2.0
)

// ErrNoChecks is returned when a phase reports a non-positive total check
// count. Every phase that runs must count at least one check.
var ErrNoChecks = errors.New("phase counted no checks")

// Deduction returns the score deduction for a severity level.
func Deduction(severity model.Severity) float64 {
	switch severity {
	case model.SeverityCritical:
		return DeductionCritical
	case model.SeverityHigh:
		return DeductionHigh
	case model.SeverityMedium:
		return DeductionMedium
	case model.SeverityLow:
		return DeductionLow
	default:
		return DeductionLow
	}
}

// ClampScore bounds a score to [0, 100].
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ScoreFromFindings computes a phase score from its findings: 100 minus the
// per-severity deductions, clamped to [0, 100]. More or worse findings never
// raise the score.
func ScoreFromFindings(findings []model.Finding) float64 {
	score := 100.0
	for _, f := range findings {
		score -= Deduction(f.Severity)
	}
	return ClampScore(score)
}

// BuildResult assembles a PhaseResult from a findings list and a total check
// count. It enforces the phase contract: totalChecks must be positive, the
// score is derived from the findings, and PassedChecks never goes negative.
// An empty summary is replaced with a passed/total line.
func BuildResult(name string, weight float64, totalChecks int, findings []model.Finding, summary string) (*model.PhaseResult, error) {
	if totalChecks <= 0 {
		return nil, fmt.Errorf("phase %s: %w", name, ErrNoChecks)
	}

	passed := totalChecks - len(findings)
	if passed < 0 {
		passed = 0
	}

	if summary == "" {
		summary = fmt.Sprintf("%d of %d checks passed", passed, totalChecks)
	}

	return &model.PhaseResult{
		Phase:        name,
		Score:        ScoreFromFindings(findings),
		Weight:       weight,
		PassedChecks: passed,
		TotalChecks:  totalChecks,
		Findings:     findings,
		Summary:      summary,
	}, nil
}
