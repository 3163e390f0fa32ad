// Package content fetches and parses the single page an audit evaluates.
//
// # Architecture
//
// The package has two halves. Client performs exactly one HTTP GET per Fetch
// call and hands the body to Parse. Parse turns raw markup into a
// model.FetchedContent: title, meta tags, headings, images, links split into
// internal and external, JSON-LD blocks, canonical URL, and the visible plain
// text with markup stripped.
//
// Design decision: We parse with goquery rather than walking x/net/html nodes
// by hand because:
//  1. Selector queries keep each extraction to one readable line
//  2. goquery tolerates the malformed HTML real pages serve
//  3. The plain-text extraction needs element removal, which selections
//     make trivial
//
// # Language resolution
//
// The content language is resolved in order: the html lang attribute (parsed
// with x/text/language and reduced to its base subtag), then an
// indicator-word heuristic over the plain text, then English. See language.go.
//
// # Usage
//
//	client := content.NewClient(content.WithTimeout(10 * time.Second))
//	page, err := client.Fetch(ctx, "https://example.com/guide")
package content
