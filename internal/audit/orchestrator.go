package audit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/contentaudit/contentaudit/internal/model"
	"github.com/contentaudit/contentaudit/internal/phase"
)

// defaultVersion tags reports when no version is injected. main injects the
// release version via WithVersion.
const defaultVersion = "dev"

// ContentSource fetches and parses the page an audit evaluates.
// Implementations must perform at most one network request per Fetch call.
type ContentSource interface {
	// Fetch retrieves and parses the content at url.
	Fetch(ctx context.Context, url string) (*model.FetchedContent, error)
}

// PerformanceSource resolves external performance metrics for a URL.
type PerformanceSource interface {
	// Snapshot returns the current metrics snapshot for url.
	Snapshot(ctx context.Context, url string) (*model.PerformanceSnapshot, error)
}

// Orchestrator runs audits: it fetches content once, executes the requested
// phases concurrently, aggregates their scores, and derives cross-phase
// results.
//
// Design decision: We inject a fixed evaluator set at construction rather
// than discovering phases at runtime because:
//  1. The set of phases is a product decision, not a deployment one
//  2. Name collisions and missing phases surface at construction
//  3. Tests can inject arbitrary evaluator sets
type Orchestrator struct {
	// source fetches and parses the audited page.
	source ContentSource

	// performance optionally resolves metrics snapshots. May be nil.
	performance PerformanceSource

	// evaluators maps phase name to evaluator.
	evaluators map[string]phase.Evaluator

	// order preserves registration order for default phase selection.
	order []string

	// mergeThreshold is the semantic distance below which merge
	// suggestions are derived.
	mergeThreshold float64

	// version tags every produced report.
	version string

	// logger is used for structured logging during runs.
	logger *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithPerformanceSource wires a performance metrics source. Without one,
// requests asking for performance data produce reports without it.
func WithPerformanceSource(source PerformanceSource) Option {
	return func(o *Orchestrator) {
		o.performance = source
	}
}

// WithVersion sets the version tag stamped on reports.
func WithVersion(version string) Option {
	return func(o *Orchestrator) {
		if version != "" {
			o.version = version
		}
	}
}

// WithMergeThreshold overrides the semantic distance below which merge
// suggestions are derived. Defaults to phase.MergeThreshold.
func WithMergeThreshold(threshold float64) Option {
	return func(o *Orchestrator) {
		if threshold > 0 && threshold <= 1 {
			o.mergeThreshold = threshold
		}
	}
}

// New creates an Orchestrator over a content source and a closed evaluator
// set. Evaluator names must be unique.
func New(source ContentSource, evaluators []phase.Evaluator, opts ...Option) (*Orchestrator, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if len(evaluators) == 0 {
		return nil, ErrNoEvaluators
	}

	o := &Orchestrator{
		source:         source,
		evaluators:     make(map[string]phase.Evaluator, len(evaluators)),
		order:          make([]string, 0, len(evaluators)),
		mergeThreshold: phase.MergeThreshold,
		version:        defaultVersion,
	}

	for _, ev := range evaluators {
		name := ev.Name()
		if _, exists := o.evaluators[name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEvaluator, name)
		}
		o.evaluators[name] = ev
		o.order = append(o.order, name)
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o, nil
}

// Run executes one audit. The page is fetched exactly once; a fetch failure
// is fatal and returns an error with no report. Everything after the fetch
// is fault-isolated per phase.
func (o *Orchestrator) Run(ctx context.Context, req *model.AuditRequest) (*model.Report, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	start := time.Now()
	phases := req.Phases
	if len(phases) == 0 {
		phases = o.order
	}

	o.logger.Info("starting audit",
		"project", req.ProjectID,
		"url", req.URL,
		"phases", len(phases),
	)

	content, err := o.source.Fetch(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	performance := o.resolvePerformance(ctx, req)

	actx := &phase.Context{
		Request: req,
		Related: req.Related,
		Facts:   req.Facts,
	}

	results := o.runPhases(ctx, phases, content, actx)

	report := &model.Report{
		ID:                   uuid.NewString(),
		ProjectID:            req.ProjectID,
		AuditType:            auditType(req),
		URL:                  content.URL,
		OverallScore:         OverallScore(results),
		PhaseResults:         results,
		MergeSuggestions:     deriveMergeSuggestions(content.URL, results, o.mergeThreshold),
		CannibalizationRisks: deriveCannibalizationRisks(content.URL, results),
		MissingTopics:        deriveMissingTopics(content.PlainText, req.Facts),
		Language:             resolveLanguage(content, req),
		Version:              o.version,
		Prerequisites: model.Prerequisites{
			ContentFetched:    true,
			FactsProvided:     len(req.Facts) > 0,
			PerformanceLinked: performance != nil,
		},
		Performance: performance,
		CreatedAt:   start,
		Duration:    time.Since(start),
	}

	o.logger.Info("audit complete",
		"project", req.ProjectID,
		"url", content.URL,
		"overall", report.OverallScore,
		"findings", report.SeverityCounts().Total(),
		"duration", report.Duration,
	)

	return report, nil
}

// runPhases executes the requested phases concurrently, one result slot per
// requested name. The pool is sized to the phase count so no phase waits on
// an artificial limit.
func (o *Orchestrator) runPhases(ctx context.Context, phases []string, content *model.FetchedContent, actx *phase.Context) []model.PhaseResult {
	results := make([]model.PhaseResult, len(phases))

	var g errgroup.Group
	g.SetLimit(len(phases))

	for i, name := range phases {
		g.Go(func() error {
			results[i] = *o.runPhase(ctx, name, content, actx)
			return nil
		})
	}

	// Goroutines never return errors; failures become phase results.
	_ = g.Wait()

	return results
}

// runPhase executes a single phase with full fault isolation: an unknown
// name, an error, a nil result, or a panic all collapse into a zero-score
// result with one critical finding.
func (o *Orchestrator) runPhase(ctx context.Context, name string, content *model.FetchedContent, actx *phase.Context) (result *model.PhaseResult) {
	ev, ok := o.evaluators[name]
	if !ok {
		o.logger.Warn("unknown phase requested", "phase", name)
		return failureResult(name, 0, "phase_unknown",
			fmt.Sprintf("No evaluator is registered under the name %q.", name))
	}

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("phase panicked", "phase", name, "panic", r)
			result = failureResult(name, ev.Weight(), "phase_failed",
				fmt.Sprintf("The %s phase panicked: %v.", name, r))
		}
	}()

	o.logger.Debug("running phase", "phase", name)

	res, err := ev.Evaluate(ctx, content, actx)
	if err != nil {
		o.logger.Warn("phase failed", "phase", name, "error", err)
		return failureResult(name, ev.Weight(), "phase_failed",
			fmt.Sprintf("The %s phase failed: %v.", name, err))
	}
	if res == nil {
		o.logger.Warn("phase returned no result", "phase", name)
		return failureResult(name, ev.Weight(), "phase_failed",
			fmt.Sprintf("The %s phase returned no result.", name))
	}
	return res
}

// failureResult builds the zero-score result recorded for a phase that did
// not run. TotalChecks is 1 so the result still satisfies the phase
// contract.
func failureResult(name string, weight float64, rule, description string) *model.PhaseResult {
	finding := model.NewFinding(name, rule, "Phase did not run", description)
	return &model.PhaseResult{
		Phase:        name,
		Score:        0,
		Weight:       weight,
		PassedChecks: 0,
		TotalChecks:  1,
		Findings:     []model.Finding{finding},
		Summary:      "phase did not run",
	}
}

// resolvePerformance fetches a metrics snapshot when the request asks for
// one and a source is wired. Failures are logged and ignored; performance
// data is never worth failing an audit over.
func (o *Orchestrator) resolvePerformance(ctx context.Context, req *model.AuditRequest) *model.PerformanceSnapshot {
	if !req.IncludePerformance || o.performance == nil {
		return nil
	}

	snapshot, err := o.performance.Snapshot(ctx, req.URL)
	if err != nil {
		o.logger.Warn("failed to resolve performance snapshot", "url", req.URL, "error", err)
		return nil
	}
	return snapshot
}

// OverallScore aggregates phase scores into the report score: the
// weight-proportional average over positive-weight phases, rounded to one
// decimal and clamped to [0, 100]. Bonus phases contribute findings only.
// When no positive-weight phase ran, the overall score is 0.
func OverallScore(results []model.PhaseResult) float64 {
	var weightedSum, weightSum float64
	for _, r := range results {
		if r.Weight <= 0 {
			continue
		}
		weightedSum += r.Score * r.Weight
		weightSum += r.Weight
	}
	if weightSum == 0 {
		return 0
	}
	return phase.ClampScore(round1(weightedSum / weightSum))
}

// validateRequest checks the request invariants shared by Run and RunBatch.
func validateRequest(req *model.AuditRequest) error {
	if req == nil {
		return ErrNilRequest
	}
	if req.ProjectID == "" {
		return ErrNoProjectID
	}
	if req.URL == "" {
		return ErrNoURL
	}
	return nil
}

// auditType defaults the request's audit type to internal.
func auditType(req *model.AuditRequest) model.AuditType {
	if req.AuditType == model.AuditTypeExternal {
		return model.AuditTypeExternal
	}
	return model.AuditTypeInternal
}

// resolveLanguage prefers the parsed content language, then the request
// hint, then English.
func resolveLanguage(content *model.FetchedContent, req *model.AuditRequest) string {
	if content.Language != "" {
		return content.Language
	}
	if req.Language != "" {
		return req.Language
	}
	return "en"
}

// round1 rounds to one decimal.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
