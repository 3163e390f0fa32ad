// Package trend correlates audit score history with external performance
// metrics. All functions are pure over their inputs: series go in,
// coefficients come out, no I/O and no storage access.
package trend
