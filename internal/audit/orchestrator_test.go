package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/contentaudit/contentaudit/internal/model"
	"github.com/contentaudit/contentaudit/internal/phase"
)

// mockSource is a test helper that implements the ContentSource interface.
// The call counter is atomic because RunBatch fetches concurrently.
type mockSource struct {
	fetchFunc func(ctx context.Context, url string) (*model.FetchedContent, error)
	calls     atomic.Int64
}

// Fetch implements ContentSource.Fetch.
func (m *mockSource) Fetch(ctx context.Context, url string) (*model.FetchedContent, error) {
	m.calls.Add(1)
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url)
	}
	return &model.FetchedContent{URL: url, PlainText: "hello audit world"}, nil
}

// mockEvaluator is a test helper that implements the phase.Evaluator
// interface.
type mockEvaluator struct {
	name     string
	weight   float64
	evalFunc func(ctx context.Context, content *model.FetchedContent, audit *phase.Context) (*model.PhaseResult, error)
}

// Name implements Evaluator.Name.
func (m *mockEvaluator) Name() string { return m.name }

// Weight implements Evaluator.Weight.
func (m *mockEvaluator) Weight() float64 { return m.weight }

// Evaluate implements Evaluator.Evaluate.
func (m *mockEvaluator) Evaluate(ctx context.Context, content *model.FetchedContent, audit *phase.Context) (*model.PhaseResult, error) {
	if m.evalFunc != nil {
		return m.evalFunc(ctx, content, audit)
	}
	return &model.PhaseResult{
		Phase:        m.name,
		Score:        100,
		Weight:       m.weight,
		PassedChecks: 1,
		TotalChecks:  1,
		Findings:     []model.Finding{},
	}, nil
}

// scoredEvaluator returns a mock evaluator that always reports score.
func scoredEvaluator(name string, weight, score float64) *mockEvaluator {
	return &mockEvaluator{
		name:   name,
		weight: weight,
		evalFunc: func(_ context.Context, _ *model.FetchedContent, _ *phase.Context) (*model.PhaseResult, error) {
			return &model.PhaseResult{
				Phase:        name,
				Score:        score,
				Weight:       weight,
				PassedChecks: 1,
				TotalChecks:  1,
				Findings:     []model.Finding{},
			}, nil
		},
	}
}

// mockPerformanceSource is a test helper that implements the
// PerformanceSource interface.
type mockPerformanceSource struct {
	snapshotFunc func(ctx context.Context, url string) (*model.PerformanceSnapshot, error)
	calls        atomic.Int64
}

// Snapshot implements PerformanceSource.Snapshot.
func (m *mockPerformanceSource) Snapshot(ctx context.Context, url string) (*model.PerformanceSnapshot, error) {
	m.calls.Add(1)
	if m.snapshotFunc != nil {
		return m.snapshotFunc(ctx, url)
	}
	return &model.PerformanceSnapshot{Clicks: 1200, Impressions: 40000}, nil
}

// testLogger returns a logger that swallows all output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testRequest returns a minimal valid audit request.
func testRequest() *model.AuditRequest {
	return &model.AuditRequest{
		ProjectID: "project-1",
		URL:       "https://example.com/page",
	}
}

// TestNew tests the Orchestrator constructor.
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates orchestrator with defaults", func(t *testing.T) {
		t.Parallel()

		o, err := New(&mockSource{}, []phase.Evaluator{&mockEvaluator{name: "a", weight: 1}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if o.version != defaultVersion {
			t.Errorf("expected version %q, got %q", defaultVersion, o.version)
		}
		if o.mergeThreshold != phase.MergeThreshold {
			t.Errorf("expected merge threshold %v, got %v", phase.MergeThreshold, o.mergeThreshold)
		}
		if o.logger == nil {
			t.Error("expected a default logger")
		}
	})

	t.Run("rejects nil content source", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil, []phase.Evaluator{&mockEvaluator{name: "a"}})
		if !errors.Is(err, ErrNilSource) {
			t.Errorf("expected ErrNilSource, got %v", err)
		}
	})

	t.Run("rejects empty evaluator set", func(t *testing.T) {
		t.Parallel()

		_, err := New(&mockSource{}, nil)
		if !errors.Is(err, ErrNoEvaluators) {
			t.Errorf("expected ErrNoEvaluators, got %v", err)
		}
	})

	t.Run("rejects duplicate evaluator names", func(t *testing.T) {
		t.Parallel()

		evaluators := []phase.Evaluator{
			&mockEvaluator{name: "twin", weight: 1},
			&mockEvaluator{name: "twin", weight: 2},
		}

		_, err := New(&mockSource{}, evaluators)
		if !errors.Is(err, ErrDuplicateEvaluator) {
			t.Errorf("expected ErrDuplicateEvaluator, got %v", err)
		}
		if err != nil && !strings.Contains(err.Error(), "twin") {
			t.Errorf("expected error to name the duplicate, got %v", err)
		}
	})

	t.Run("applies options", func(t *testing.T) {
		t.Parallel()

		perf := &mockPerformanceSource{}
		o, err := New(&mockSource{}, []phase.Evaluator{&mockEvaluator{name: "a"}},
			WithVersion("1.2.3"),
			WithMergeThreshold(0.2),
			WithPerformanceSource(perf),
			WithLogger(testLogger()),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if o.version != "1.2.3" {
			t.Errorf("expected version 1.2.3, got %q", o.version)
		}
		if o.mergeThreshold != 0.2 {
			t.Errorf("expected merge threshold 0.2, got %v", o.mergeThreshold)
		}
		if o.performance == nil {
			t.Error("expected performance source to be set")
		}
	})

	t.Run("ignores out-of-range merge thresholds", func(t *testing.T) {
		t.Parallel()

		o, err := New(&mockSource{}, []phase.Evaluator{&mockEvaluator{name: "a"}},
			WithMergeThreshold(0), WithMergeThreshold(1.5), WithMergeThreshold(-0.1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if o.mergeThreshold != phase.MergeThreshold {
			t.Errorf("expected default merge threshold, got %v", o.mergeThreshold)
		}
	})
}

// TestRunValidation tests request validation.
func TestRunValidation(t *testing.T) {
	t.Parallel()

	newOrchestrator := func(t *testing.T) *Orchestrator {
		t.Helper()
		o, err := New(&mockSource{}, []phase.Evaluator{&mockEvaluator{name: "a", weight: 1}}, WithLogger(testLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return o
	}

	tests := []struct {
		name    string
		request *model.AuditRequest
		wantErr error
	}{
		{
			name:    "nil request",
			request: nil,
			wantErr: ErrNilRequest,
		},
		{
			name:    "missing project id",
			request: &model.AuditRequest{URL: "https://example.com"},
			wantErr: ErrNoProjectID,
		},
		{
			name:    "missing url",
			request: &model.AuditRequest{ProjectID: "p"},
			wantErr: ErrNoURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report, err := newOrchestrator(t).Run(context.Background(), tt.request)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if report != nil {
				t.Error("expected no report on invalid request")
			}
		})
	}
}

// TestRunFetchFailure tests that a failed fetch aborts the audit.
func TestRunFetchFailure(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("connection refused")
	source := &mockSource{
		fetchFunc: func(_ context.Context, _ string) (*model.FetchedContent, error) {
			return nil, fetchErr
		},
	}

	o, err := New(source, []phase.Evaluator{&mockEvaluator{name: "a", weight: 1}}, WithLogger(testLogger()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := o.Run(context.Background(), testRequest())
	if report != nil {
		t.Error("expected no report when the fetch fails")
	}
	if !errors.Is(err, fetchErr) {
		t.Errorf("expected wrapped fetch error, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "failed to fetch content") {
		t.Errorf("expected fetch error context, got %v", err)
	}
}

// TestRunPhaseSelection tests which phases run and in which order.
func TestRunPhaseSelection(t *testing.T) {
	t.Parallel()

	newOrchestrator := func(t *testing.T) *Orchestrator {
		t.Helper()
		evaluators := []phase.Evaluator{
			scoredEvaluator("alpha", 1, 80),
			scoredEvaluator("beta", 1, 90),
			scoredEvaluator("gamma", 1, 70),
		}
		o, err := New(&mockSource{}, evaluators, WithLogger(testLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return o
	}

	t.Run("runs all phases in registration order by default", func(t *testing.T) {
		t.Parallel()

		report, err := newOrchestrator(t).Run(context.Background(), testRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"alpha", "beta", "gamma"}
		if len(report.PhaseResults) != len(expected) {
			t.Fatalf("expected %d phase results, got %d", len(expected), len(report.PhaseResults))
		}
		for i, name := range expected {
			if report.PhaseResults[i].Phase != name {
				t.Errorf("result %d: expected phase %q, got %q", i, name, report.PhaseResults[i].Phase)
			}
		}
	})

	t.Run("runs only requested phases in request order", func(t *testing.T) {
		t.Parallel()

		req := testRequest()
		req.Phases = []string{"gamma", "alpha"}

		report, err := newOrchestrator(t).Run(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"gamma", "alpha"}
		if len(report.PhaseResults) != len(expected) {
			t.Fatalf("expected %d phase results, got %d", len(expected), len(report.PhaseResults))
		}
		for i, name := range expected {
			if report.PhaseResults[i].Phase != name {
				t.Errorf("result %d: expected phase %q, got %q", i, name, report.PhaseResults[i].Phase)
			}
		}
	})
}

// TestRunFaultIsolation tests that one broken phase never takes down the
// audit or its neighbors.
func TestRunFaultIsolation(t *testing.T) {
	t.Parallel()

	// assertFailure checks the zero-score result recorded for a phase that
	// did not run.
	assertFailure := func(t *testing.T, result model.PhaseResult, phaseName, rule string) {
		t.Helper()

		if result.Phase != phaseName {
			t.Errorf("expected phase %q, got %q", phaseName, result.Phase)
		}
		if result.Score != 0 {
			t.Errorf("expected zero score, got %v", result.Score)
		}
		if result.TotalChecks != 1 {
			t.Errorf("expected 1 total check, got %d", result.TotalChecks)
		}
		if result.PassedChecks != 0 {
			t.Errorf("expected 0 passed checks, got %d", result.PassedChecks)
		}
		if len(result.Findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(result.Findings))
		}
		if result.Findings[0].Rule != rule {
			t.Errorf("expected rule %q, got %q", rule, result.Findings[0].Rule)
		}
		if result.Findings[0].Severity != model.SeverityCritical {
			t.Errorf("expected critical severity, got %v", result.Findings[0].Severity)
		}
	}

	run := func(t *testing.T, broken *mockEvaluator, phases []string) *model.Report {
		t.Helper()

		evaluators := []phase.Evaluator{
			scoredEvaluator("healthy", 1, 100),
			broken,
		}
		o, err := New(&mockSource{}, evaluators, WithLogger(testLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		req := testRequest()
		req.Phases = phases
		report, err := o.Run(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return report
	}

	t.Run("isolates evaluator errors", func(t *testing.T) {
		t.Parallel()

		broken := &mockEvaluator{
			name:   "broken",
			weight: 1,
			evalFunc: func(_ context.Context, _ *model.FetchedContent, _ *phase.Context) (*model.PhaseResult, error) {
				return nil, errors.New("exploded")
			},
		}

		report := run(t, broken, nil)
		if len(report.PhaseResults) != 2 {
			t.Fatalf("expected 2 phase results, got %d", len(report.PhaseResults))
		}
		assertFailure(t, report.PhaseResults[1], "broken", "phase_failed")

		if report.PhaseResults[0].Score != 100 {
			t.Errorf("expected healthy phase untouched, got score %v", report.PhaseResults[0].Score)
		}
		if report.OverallScore != 50 {
			t.Errorf("expected overall 50, got %v", report.OverallScore)
		}
	})

	t.Run("isolates evaluator panics", func(t *testing.T) {
		t.Parallel()

		broken := &mockEvaluator{
			name:   "broken",
			weight: 1,
			evalFunc: func(_ context.Context, _ *model.FetchedContent, _ *phase.Context) (*model.PhaseResult, error) {
				panic("index out of range")
			},
		}

		report := run(t, broken, nil)
		assertFailure(t, report.PhaseResults[1], "broken", "phase_failed")
		if !strings.Contains(report.PhaseResults[1].Findings[0].Description, "panicked") {
			t.Errorf("expected panic description, got %q", report.PhaseResults[1].Findings[0].Description)
		}
	})

	t.Run("isolates nil results", func(t *testing.T) {
		t.Parallel()

		broken := &mockEvaluator{
			name:   "broken",
			weight: 1,
			evalFunc: func(_ context.Context, _ *model.FetchedContent, _ *phase.Context) (*model.PhaseResult, error) {
				return nil, nil
			},
		}

		report := run(t, broken, nil)
		assertFailure(t, report.PhaseResults[1], "broken", "phase_failed")
	})

	t.Run("records unknown phases", func(t *testing.T) {
		t.Parallel()

		broken := &mockEvaluator{name: "unused", weight: 1}
		report := run(t, broken, []string{"healthy", "nonexistent"})

		if len(report.PhaseResults) != 2 {
			t.Fatalf("expected 2 phase results, got %d", len(report.PhaseResults))
		}
		assertFailure(t, report.PhaseResults[1], "nonexistent", "phase_unknown")

		// An unknown phase has no weight and must not drag the average.
		if report.PhaseResults[1].Weight != 0 {
			t.Errorf("expected zero weight for unknown phase, got %v", report.PhaseResults[1].Weight)
		}
		if report.OverallScore != 100 {
			t.Errorf("expected overall 100, got %v", report.OverallScore)
		}
	})
}

// TestRunAggregation tests the weighted overall score on full runs.
func TestRunAggregation(t *testing.T) {
	t.Parallel()

	t.Run("aggregates scores by weight", func(t *testing.T) {
		t.Parallel()

		evaluators := []phase.Evaluator{
			scoredEvaluator("heavy", 2, 80),
			scoredEvaluator("light", 1, 50),
		}
		o, err := New(&mockSource{}, evaluators, WithLogger(testLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		report, err := o.Run(context.Background(), testRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// (80*2 + 50*1) / 3 = 70
		if report.OverallScore != 70 {
			t.Errorf("expected overall 70, got %v", report.OverallScore)
		}
	})

	t.Run("excludes bonus phases from the overall score", func(t *testing.T) {
		t.Parallel()

		evaluators := []phase.Evaluator{
			scoredEvaluator("weighted", 1, 40),
			scoredEvaluator("bonus", 0, 100),
		}
		o, err := New(&mockSource{}, evaluators, WithLogger(testLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		report, err := o.Run(context.Background(), testRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.OverallScore != 40 {
			t.Errorf("expected overall 40, got %v", report.OverallScore)
		}
	})

	t.Run("scores zero when only bonus phases ran", func(t *testing.T) {
		t.Parallel()

		o, err := New(&mockSource{}, []phase.Evaluator{scoredEvaluator("bonus", 0, 100)}, WithLogger(testLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		report, err := o.Run(context.Background(), testRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.OverallScore != 0 {
			t.Errorf("expected overall 0, got %v", report.OverallScore)
		}
	})
}

// TestOverallScore tests the aggregation function directly.
func TestOverallScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		results []model.PhaseResult
		want    float64
	}{
		{
			name:    "no results",
			results: nil,
			want:    0,
		},
		{
			name: "single phase",
			results: []model.PhaseResult{
				{Score: 87.5, Weight: 1},
			},
			want: 87.5,
		},
		{
			name: "equal weights average evenly",
			results: []model.PhaseResult{
				{Score: 100, Weight: 2},
				{Score: 50, Weight: 2},
			},
			want: 75,
		},
		{
			name: "heavier phases count more",
			results: []model.PhaseResult{
				{Score: 100, Weight: 3},
				{Score: 0, Weight: 1},
			},
			want: 75,
		},
		{
			name: "zero-weight phases are ignored",
			results: []model.PhaseResult{
				{Score: 60, Weight: 1},
				{Score: 0, Weight: 0},
			},
			want: 60,
		},
		{
			name: "only zero-weight phases",
			results: []model.PhaseResult{
				{Score: 100, Weight: 0},
			},
			want: 0,
		},
		{
			name: "result is rounded to one decimal",
			results: []model.PhaseResult{
				{Score: 100, Weight: 1},
				{Score: 50, Weight: 1},
				{Score: 50, Weight: 1},
			},
			want: 66.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := OverallScore(tt.results)
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestRunReportMetadata tests the identity and metadata fields of produced
// reports.
func TestRunReportMetadata(t *testing.T) {
	t.Parallel()

	newOrchestrator := func(t *testing.T, source ContentSource, opts ...Option) *Orchestrator {
		t.Helper()
		opts = append(opts, WithLogger(testLogger()))
		o, err := New(source, []phase.Evaluator{scoredEvaluator("a", 1, 100)}, opts...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return o
	}

	t.Run("stamps identity and defaults", func(t *testing.T) {
		t.Parallel()

		o := newOrchestrator(t, &mockSource{}, WithVersion("9.9.9"))
		report, err := o.Run(context.Background(), testRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.ID == "" {
			t.Error("expected a report id")
		}
		if report.ProjectID != "project-1" {
			t.Errorf("expected project id project-1, got %q", report.ProjectID)
		}
		if report.AuditType != model.AuditTypeInternal {
			t.Errorf("expected internal audit type, got %q", report.AuditType)
		}
		if report.URL != "https://example.com/page" {
			t.Errorf("unexpected url %q", report.URL)
		}
		if report.Version != "9.9.9" {
			t.Errorf("expected version 9.9.9, got %q", report.Version)
		}
		if report.CreatedAt.IsZero() {
			t.Error("expected a creation timestamp")
		}
		if report.Duration < 0 {
			t.Errorf("expected non-negative duration, got %v", report.Duration)
		}
	})

	t.Run("respects external audit type", func(t *testing.T) {
		t.Parallel()

		req := testRequest()
		req.AuditType = model.AuditTypeExternal

		report, err := newOrchestrator(t, &mockSource{}).Run(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.AuditType != model.AuditTypeExternal {
			t.Errorf("expected external audit type, got %q", report.AuditType)
		}
	})

	t.Run("prefers the content language", func(t *testing.T) {
		t.Parallel()

		source := &mockSource{
			fetchFunc: func(_ context.Context, url string) (*model.FetchedContent, error) {
				return &model.FetchedContent{URL: url, Language: "nl"}, nil
			},
		}
		req := testRequest()
		req.Language = "de"

		report, err := newOrchestrator(t, source).Run(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.Language != "nl" {
			t.Errorf("expected language nl, got %q", report.Language)
		}
	})

	t.Run("falls back to the request language", func(t *testing.T) {
		t.Parallel()

		req := testRequest()
		req.Language = "de"

		report, err := newOrchestrator(t, &mockSource{}).Run(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.Language != "de" {
			t.Errorf("expected language de, got %q", report.Language)
		}
	})

	t.Run("defaults the language to english", func(t *testing.T) {
		t.Parallel()

		report, err := newOrchestrator(t, &mockSource{}).Run(context.Background(), testRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.Language != "en" {
			t.Errorf("expected language en, got %q", report.Language)
		}
	})
}

// TestRunPrerequisites tests the prerequisite flags and performance
// resolution.
func TestRunPrerequisites(t *testing.T) {
	t.Parallel()

	evaluators := func() []phase.Evaluator {
		return []phase.Evaluator{scoredEvaluator("a", 1, 100)}
	}

	t.Run("marks content fetched and facts provided", func(t *testing.T) {
		t.Parallel()

		o, err := New(&mockSource{}, evaluators(), WithLogger(testLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		req := testRequest()
		req.Facts = []model.Fact{{Entity: "Model S", Attribute: "600 km range"}}

		report, err := o.Run(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !report.Prerequisites.ContentFetched {
			t.Error("expected content fetched flag")
		}
		if !report.Prerequisites.FactsProvided {
			t.Error("expected facts provided flag")
		}
		if report.Prerequisites.PerformanceLinked {
			t.Error("expected performance not linked without a source")
		}
	})

	t.Run("links performance when requested and available", func(t *testing.T) {
		t.Parallel()

		perf := &mockPerformanceSource{}
		o, err := New(&mockSource{}, evaluators(),
			WithPerformanceSource(perf), WithLogger(testLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		req := testRequest()
		req.IncludePerformance = true

		report, err := o.Run(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !report.Prerequisites.PerformanceLinked {
			t.Error("expected performance linked flag")
		}
		if report.Performance == nil {
			t.Fatal("expected a performance snapshot")
		}
		if report.Performance.Clicks != 1200 {
			t.Errorf("expected 1200 clicks, got %d", report.Performance.Clicks)
		}
	})

	t.Run("ignores the performance source when not requested", func(t *testing.T) {
		t.Parallel()

		perf := &mockPerformanceSource{}
		o, err := New(&mockSource{}, evaluators(),
			WithPerformanceSource(perf), WithLogger(testLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		report, err := o.Run(context.Background(), testRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if perf.calls.Load() != 0 {
			t.Errorf("expected no snapshot calls, got %d", perf.calls.Load())
		}
		if report.Performance != nil {
			t.Error("expected no performance snapshot")
		}
	})

	t.Run("survives a failing performance source", func(t *testing.T) {
		t.Parallel()

		perf := &mockPerformanceSource{
			snapshotFunc: func(_ context.Context, _ string) (*model.PerformanceSnapshot, error) {
				return nil, errors.New("quota exceeded")
			},
		}
		o, err := New(&mockSource{}, evaluators(),
			WithPerformanceSource(perf), WithLogger(testLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		req := testRequest()
		req.IncludePerformance = true

		report, err := o.Run(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.Performance != nil {
			t.Error("expected no performance snapshot on source failure")
		}
		if report.Prerequisites.PerformanceLinked {
			t.Error("expected performance not linked on source failure")
		}
	})
}

// TestRunWithDefaultEvaluators runs a full audit through the real evaluator
// set against hand-built content samples.
func TestRunWithDefaultEvaluators(t *testing.T) {
	t.Parallel()

	run := func(t *testing.T, content *model.FetchedContent) *model.Report {
		t.Helper()

		source := &mockSource{
			fetchFunc: func(_ context.Context, _ string) (*model.FetchedContent, error) {
				return content, nil
			},
		}
		o, err := New(source, phase.DefaultEvaluators(), WithLogger(testLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		report, err := o.Run(context.Background(), testRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return report
	}

	wellFormed := run(t, wellFormedContent())
	defective := run(t, defectiveContent())

	t.Run("every default phase is present", func(t *testing.T) {
		expected := []string{
			phase.PhaseMetadata, phase.PhaseHeadings, phase.PhaseContent,
			phase.PhaseLinks, phase.PhaseImages, phase.PhaseStructuredData,
			phase.PhaseSemanticDistance, phase.PhaseFactValidation,
		}
		if len(wellFormed.PhaseResults) != len(expected) {
			t.Fatalf("expected %d phase results, got %d", len(expected), len(wellFormed.PhaseResults))
		}
		for i, name := range expected {
			if wellFormed.PhaseResults[i].Phase != name {
				t.Errorf("result %d: expected phase %q, got %q", i, name, wellFormed.PhaseResults[i].Phase)
			}
		}
	})

	t.Run("phase scores stay within bounds", func(t *testing.T) {
		for _, report := range []*model.Report{wellFormed, defective} {
			for _, pr := range report.PhaseResults {
				if pr.Score < 0 || pr.Score > 100 {
					t.Errorf("phase %s: score %v out of bounds", pr.Phase, pr.Score)
				}
				if pr.TotalChecks <= 0 {
					t.Errorf("phase %s: expected positive check count, got %d", pr.Phase, pr.TotalChecks)
				}
			}
		}
	})

	t.Run("a clean page scores a clean hundred", func(t *testing.T) {
		if wellFormed.OverallScore != 100 {
			t.Errorf("expected overall 100, got %v", wellFormed.OverallScore)
			for _, pr := range wellFormed.PhaseResults {
				for _, f := range pr.Findings {
					t.Logf("phase %s: %s (%s)", pr.Phase, f.Rule, f.Description)
				}
			}
		}
	})

	t.Run("a defective page scores clearly lower", func(t *testing.T) {
		if defective.OverallScore >= 95 {
			t.Errorf("expected defective score below 95, got %v", defective.OverallScore)
		}
		if defective.OverallScore >= wellFormed.OverallScore {
			t.Errorf("expected defective %v below well-formed %v",
				defective.OverallScore, wellFormed.OverallScore)
		}
		if defective.SeverityCounts().Critical == 0 {
			t.Error("expected at least one critical finding on the defective page")
		}
	})
}

// wellFormedContent builds a content sample that passes every default check.
func wellFormedContent() *model.FetchedContent {
	return &model.FetchedContent{
		URL:         "https://example.com/guides/ebike-maintenance",
		Title:       "Electric Bike Maintenance Guide for Commuters",
		Description: "Learn how to maintain your electric bike with battery care, chain cleaning, brake checks, and seasonal storage tips for daily commuters.",
		PlainText:   evenPlainText(320, 16),
		Headings: []model.Heading{
			{Level: 1, Text: "Electric bike maintenance"},
			{Level: 2, Text: "Battery care"},
			{Level: 2, Text: "Chain and brakes"},
			{Level: 2, Text: "Seasonal storage"},
		},
		Images: []model.Image{
			{Source: "https://example.com/img/chain.jpg", Alt: "Cleaning an e-bike chain"},
		},
		InternalLinks:  []string{"/guides/ebike-batteries", "/guides/winter-riding"},
		ExternalLinks:  []string{"https://bikes.example.org/torque-specs"},
		StructuredData: []string{`{"@context":"https://schema.org","@type":"Article"}`},
		CanonicalURL:   "https://example.com/guides/ebike-maintenance",
		MetaTags: map[string]string{
			"og:title":       "Electric Bike Maintenance Guide",
			"og:description": "Battery, chain, and brake care for commuters.",
		},
		Language: "en",
	}
}

// defectiveContent builds a content sample that trips checks across phases:
// no title, no description, no headings, thin run-on text, no links, no
// structured data.
func defectiveContent() *model.FetchedContent {
	return &model.FetchedContent{
		URL:       "https://example.com/fragment",
		PlainText: strings.TrimSpace(strings.Repeat("buy cheap widget deals today ", 10)),
	}
}

// evenPlainText generates words evenly drawn from a fixed vocabulary, in
// sentences of sentenceLen words. Even draw keeps every term well under the
// stuffing threshold.
func evenPlainText(words, sentenceLen int) string {
	vocabulary := []string{
		"battery", "charge", "cycle", "winter", "storage", "chain", "lubricant", "brake",
		"pad", "motor", "torque", "sensor", "wheel", "spoke", "tire", "pressure",
		"frame", "bolt", "light", "reflector", "fender", "rack", "pannier", "helmet",
		"lock", "computer", "display", "cable", "connector", "washer", "valve", "pump",
		"gauge", "stand", "crank", "pedal", "grip", "saddle", "mirror", "bell",
	}

	var b strings.Builder
	for i := 0; i < words; i++ {
		b.WriteString(vocabulary[i%len(vocabulary)])
		if i%sentenceLen == sentenceLen-1 {
			b.WriteString(". ")
		} else {
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
