// Package performance resolves point-in-time performance snapshots for
// audited URLs. Sources implement the orchestrator's PerformanceSource
// contract; the engine itself never talks to analytics APIs.
package performance
