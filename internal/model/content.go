package model

import "time"

// Heading is a single h1-h6 element in document order.
type Heading struct {
	// Level is the heading level, 1 through 6.
	Level int `json:"level"`

	// Text is the trimmed heading text.
	Text string `json:"text"`
}

// Image is an image reference found in the content.
type Image struct {
	// Source is the image URL, resolved against the page URL.
	Source string `json:"source"`

	// Alt is the alternative text. Empty means the attribute was missing
	// or blank.
	Alt string `json:"alt,omitempty"`
}

// FetchedContent represents one fetched and parsed web page. It is the
// single snapshot every audit phase evaluates against.
//
// Design decision: We store both the raw markup and the parsed fields
// because:
// 1. Parsed fields keep the evaluators free of HTML concerns
// 2. Raw markup allows later re-parsing when the parser improves
// 3. The plain text drives language detection and semantic comparison
type FetchedContent struct {
	// URL is the final URL the content was fetched from, redirects
	// followed.
	URL string `json:"url"`

	// RawHTML is the full response body as received.
	RawHTML string `json:"-"` // Excluded from JSON due to size

	// PlainText is the visible text with scripts, styles, and markup
	// stripped and whitespace collapsed.
	PlainText string `json:"plain_text,omitempty"`

	// Title is the text of the <title> element.
	Title string `json:"title,omitempty"`

	// Description is the content of the meta description.
	Description string `json:"description,omitempty"`

	// Headings lists all h1-h6 elements in document order.
	Headings []Heading `json:"headings,omitempty"`

	// Images lists all <img> references with their alt text.
	Images []Image `json:"images,omitempty"`

	// InternalLinks are anchor targets on the same host (relative links
	// included).
	InternalLinks []string `json:"internal_links,omitempty"`

	// ExternalLinks are anchor targets pointing at other hosts.
	ExternalLinks []string `json:"external_links,omitempty"`

	// StructuredData holds the raw JSON-LD script blocks, unparsed.
	StructuredData []string `json:"structured_data,omitempty"`

	// CanonicalURL is the href of the rel=canonical link, if present.
	CanonicalURL string `json:"canonical_url,omitempty"`

	// MetaTags maps meta tag names and properties to their content
	// (description, robots, og:title, ...). Last occurrence wins.
	MetaTags map[string]string `json:"meta_tags,omitempty"`

	// Language is the resolved content language (ISO 639-1 base code).
	Language string `json:"language,omitempty"`

	// FetchedVia records the fetch provenance, e.g. "http" for a live
	// fetch or "parse" for content parsed from supplied markup.
	FetchedVia string `json:"fetched_via,omitempty"`

	// FetchedAt is when the fetch started.
	FetchedAt time.Time `json:"fetched_at,omitempty"`

	// FetchDuration is how long fetch and parse took together.
	FetchDuration time.Duration `json:"fetch_duration,omitempty"`
}

// WordCount returns the number of whitespace-separated words in the plain
// text. Used by several phases to size their expectations.
func (c *FetchedContent) WordCount() int {
	if c.PlainText == "" {
		return 0
	}
	count := 0
	inWord := false
	for _, r := range c.PlainText {
		switch r {
		case ' ', '\t', '\n', '\r':
			inWord = false
		default:
			if !inWord {
				count++
				inWord = true
			}
		}
	}
	return count
}
