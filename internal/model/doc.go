// Package model defines the core data structures used throughout contentaudit.
//
// This package contains the following main types:
//   - FetchedContent: A fetched web page with parsed content
//   - AuditRequest: What to audit and which phases to run
//   - PhaseResult: The scored outcome of a single audit phase
//   - Finding: A single issue discovered by a phase
//   - Report: The main audit result structure
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (content, phase, audit, snapshot, export)
// need to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
