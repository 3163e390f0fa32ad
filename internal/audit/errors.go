package audit

import "errors"

var (
	// ErrNilRequest is returned when Run receives a nil request.
	ErrNilRequest = errors.New("audit request is nil")

	// ErrNoProjectID is returned when the request has no project id.
	ErrNoProjectID = errors.New("audit request has no project id")

	// ErrNoURL is returned when the request has no URL to fetch.
	ErrNoURL = errors.New("audit request has no url")

	// ErrNoEvaluators is returned when the orchestrator is constructed
	// without any evaluators.
	ErrNoEvaluators = errors.New("no evaluators provided")

	// ErrDuplicateEvaluator is returned when two evaluators share a name.
	ErrDuplicateEvaluator = errors.New("duplicate evaluator name")

	// ErrNilSource is returned when the orchestrator is constructed
	// without a content source.
	ErrNilSource = errors.New("content source is nil")
)
