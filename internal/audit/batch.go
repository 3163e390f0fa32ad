package audit

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/contentaudit/contentaudit/internal/model"
)

// defaultBatchConcurrency bounds parallel audits when the caller passes a
// non-positive concurrency.
const defaultBatchConcurrency = 4

// BatchResult pairs one request of a batch with its outcome. Exactly one of
// Report and Err is set.
type BatchResult struct {
	// Request is the audit request this result belongs to.
	Request *model.AuditRequest

	// Report is the audit report. Nil when the audit failed.
	Report *model.Report

	// Err is the audit error. Nil when the audit succeeded.
	Err error
}

// RunBatch executes independent audits concurrently, bounded by
// concurrency. One audit's failure never aborts the others; results are
// returned in request order.
//
// Design decision: We collect per-request errors in BatchResult rather than
// failing the batch because batch callers almost always want the surviving
// reports, and a single unreachable URL should not cost the rest.
func (o *Orchestrator) RunBatch(ctx context.Context, requests []*model.AuditRequest, concurrency int) []BatchResult {
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}

	results := make([]BatchResult, len(requests))

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, req := range requests {
		g.Go(func() error {
			report, err := o.Run(ctx, req)
			results[i] = BatchResult{Request: req, Report: report, Err: err}
			return nil
		})
	}

	// Failures live in the per-request results.
	_ = g.Wait()

	return results
}
