// Package main provides the entry point for the contentaudit CLI.
//
// contentaudit is a multi-phase content quality auditing tool for web pages.
// It fetches a page, scores it across weighted evaluation phases, and reports
// findings, merge suggestions, and cannibalization risks.
//
// Usage:
//
//	contentaudit audit --project my-blog https://example.com/article
//	contentaudit export --project my-blog --format xlsx -o report.xlsx
//	contentaudit trend --project my-blog --metrics metrics.csv
//
// See --help for all available options.
package main

// main is the entry point for contentaudit.
func main() {
	Execute()
}
