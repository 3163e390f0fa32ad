// Package snapshot flattens finished audit reports into the unified row
// shape the durable store persists.
//
// BuildRow is pure: it serializes the full report, extracts the scalar
// columns, and mirrors optional inputs with the null semantics the store
// expects. Absent values become nil pointers, with one deliberate asymmetry:
// the phase score map is always present (empty when no phases ran) while the
// phase weight map is nil in that case. SaveSnapshot is the only operation
// that touches a store.
package snapshot
