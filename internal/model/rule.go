package model

// RuleInfo contains metadata about a finding rule including severity,
// category, rationale, and remediation recommendation.
type RuleInfo struct {
	Severity        Severity
	Category        string
	Rationale       string
	EstimatedImpact string
	AutoFixable     bool
	Recommendation  string
}

// ruleCatalog maps rule identifiers to their metadata.
// This centralized mapping ensures consistent assessment across all phases.
//
// Design decision: We use a map rather than embedding severity in each
// evaluator because:
// 1. It allows tuning assessments without modifying evaluator code
// 2. It provides a single source of truth for severity and category
// 3. It makes it easy to generate rule documentation
var ruleCatalog = map[string]RuleInfo{
	// CRITICAL - the audit target is fundamentally broken
	"title_missing": {
		Severity:        SeverityCritical,
		Category:        "metadata",
		Rationale:       "The page has no title element, so search engines and browser tabs show nothing meaningful.",
		EstimatedImpact: "high",
		AutoFixable:     false,
		Recommendation:  "Add a descriptive title of 30-60 characters covering the primary topic.",
	},
	"structured_data_invalid": {
		Severity:        SeverityCritical,
		Category:        "technical",
		Rationale:       "A JSON-LD block does not parse, so search engines silently drop all structured data on the page.",
		EstimatedImpact: "high",
		AutoFixable:     false,
		Recommendation:  "Validate every JSON-LD block and fix the syntax error before publishing.",
	},
	"phase_failed": {
		Severity:        SeverityCritical,
		Category:        "system",
		Rationale:       "An audit phase crashed or returned an error, so its aspect of the page was not evaluated.",
		EstimatedImpact: "high",
		AutoFixable:     false,
		Recommendation:  "Inspect the error, fix the underlying cause, and re-run the audit.",
	},
	"phase_unknown": {
		Severity:        SeverityCritical,
		Category:        "system",
		Rationale:       "A requested phase name matches no registered evaluator, so that aspect was not evaluated.",
		EstimatedImpact: "high",
		AutoFixable:     false,
		Recommendation:  "Remove the unknown phase name from the request or register the evaluator.",
	},

	// HIGH - fix before publishing
	"meta_description_missing": {
		Severity:        SeverityHigh,
		Category:        "metadata",
		Rationale:       "Without a meta description, search engines compose their own snippet, which usually converts worse.",
		EstimatedImpact: "high",
		AutoFixable:     false,
		Recommendation:  "Write a 50-160 character description that summarizes the page and invites the click.",
	},
	"h1_missing": {
		Severity:        SeverityHigh,
		Category:        "structure",
		Rationale:       "The page has no H1, leaving the primary topic undeclared to readers and crawlers.",
		EstimatedImpact: "high",
		AutoFixable:     false,
		Recommendation:  "Add exactly one H1 stating the page topic.",
	},
	"h1_multiple": {
		Severity:        SeverityHigh,
		Category:        "structure",
		Rationale:       "Multiple H1 elements dilute the topical focus of the page.",
		EstimatedImpact: "medium",
		AutoFixable:     true,
		Recommendation:  "Keep one H1 and demote the others to H2.",
	},
	"thin_content": {
		Severity:        SeverityHigh,
		Category:        "content",
		Rationale:       "Very short pages rarely satisfy the search intent and tend to be outranked by deeper coverage.",
		EstimatedImpact: "high",
		AutoFixable:     false,
		Recommendation:  "Expand the page to at least 300 words of substantive coverage.",
	},
	"semantic_overlap": {
		Severity:        SeverityHigh,
		Category:        "semantic",
		Rationale:       "The page covers nearly the same ground as related content, so the pages compete for the same queries.",
		EstimatedImpact: "high",
		AutoFixable:     false,
		Recommendation:  "Differentiate the pages by intent or merge them into one stronger page.",
	},
	"canonical_missing": {
		Severity:        SeverityHigh,
		Category:        "technical",
		Rationale:       "Without a canonical link, parameter and syndication duplicates split ranking signals across URLs.",
		EstimatedImpact: "medium",
		AutoFixable:     true,
		Recommendation:  "Add a rel=canonical link pointing at the preferred URL of this page.",
	},

	// MEDIUM - accumulates into real damage
	"title_too_short": {
		Severity:        SeverityMedium,
		Category:        "metadata",
		Rationale:       "A very short title wastes the search snippet and usually omits qualifying terms.",
		EstimatedImpact: "medium",
		AutoFixable:     true,
		Recommendation:  "Extend the title toward 30-60 characters with the primary topic and a qualifier.",
	},
	"title_too_long": {
		Severity:        SeverityMedium,
		Category:        "metadata",
		Rationale:       "Titles over roughly 60 characters are truncated in search results, hiding the tail.",
		EstimatedImpact: "medium",
		AutoFixable:     true,
		Recommendation:  "Shorten the title to at most 60 characters, front-loading the important words.",
	},
	"meta_description_too_short": {
		Severity:        SeverityMedium,
		Category:        "metadata",
		Rationale:       "A terse description leaves snippet space unused and gives little reason to click.",
		EstimatedImpact: "low",
		AutoFixable:     true,
		Recommendation:  "Expand the description toward 50-160 characters.",
	},
	"meta_description_too_long": {
		Severity:        SeverityMedium,
		Category:        "metadata",
		Rationale:       "Descriptions over roughly 160 characters are truncated mid-sentence in search results.",
		EstimatedImpact: "low",
		AutoFixable:     true,
		Recommendation:  "Trim the description to at most 160 characters.",
	},
	"h1_empty": {
		Severity:        SeverityMedium,
		Category:        "structure",
		Rationale:       "An empty H1 declares no topic and reads as a template artifact.",
		EstimatedImpact: "medium",
		AutoFixable:     true,
		Recommendation:  "Fill the H1 with the page topic or remove the empty element.",
	},
	"heading_level_skipped": {
		Severity:        SeverityMedium,
		Category:        "structure",
		Rationale:       "Skipped heading levels break the document outline that assistive tech and crawlers rely on.",
		EstimatedImpact: "low",
		AutoFixable:     true,
		Recommendation:  "Restructure headings so levels descend one step at a time.",
	},
	"keyword_stuffing": {
		Severity:        SeverityMedium,
		Category:        "content",
		Rationale:       "A single term dominating the text reads unnaturally and risks spam demotion.",
		EstimatedImpact: "medium",
		AutoFixable:     false,
		Recommendation:  "Rewrite repetitive passages with synonyms and varied phrasing.",
	},
	"image_alt_missing": {
		Severity:        SeverityMedium,
		Category:        "media",
		Rationale:       "Images without alt text are invisible to image search and screen readers.",
		EstimatedImpact: "medium",
		AutoFixable:     true,
		Recommendation:  "Add concise, descriptive alt text to every content image.",
	},
	"structured_data_missing": {
		Severity:        SeverityMedium,
		Category:        "technical",
		Rationale:       "Without structured data the page is not eligible for rich results.",
		EstimatedImpact: "medium",
		AutoFixable:     false,
		Recommendation:  "Add JSON-LD markup for the page type (Article, Product, FAQ, ...).",
	},
	"open_graph_incomplete": {
		Severity:        SeverityMedium,
		Category:        "technical",
		Rationale:       "Missing Open Graph tags produce bare link previews when the page is shared.",
		EstimatedImpact: "low",
		AutoFixable:     true,
		Recommendation:  "Add og:title and og:description meta tags.",
	},
	"fact_not_covered": {
		Severity:        SeverityMedium,
		Category:        "facts",
		Rationale:       "A root fact of the topic does not appear in the content, leaving a knowledge gap competitors can fill.",
		EstimatedImpact: "medium",
		AutoFixable:     false,
		Recommendation:  "Work the missing fact into the content where it fits naturally.",
	},
	"sentences_too_long": {
		Severity:        SeverityMedium,
		Category:        "content",
		Rationale:       "Long average sentence length hurts readability and dwell time.",
		EstimatedImpact: "low",
		AutoFixable:     false,
		Recommendation:  "Split long sentences; aim for an average under 25 words.",
	},

	// LOW - polish
	"internal_links_missing": {
		Severity:        SeverityLow,
		Category:        "links",
		Rationale:       "Pages without internal links are dead ends that spread no authority through the site.",
		EstimatedImpact: "low",
		AutoFixable:     false,
		Recommendation:  "Link to at least a handful of related pages on the same site.",
	},
	"external_links_missing": {
		Severity:        SeverityLow,
		Category:        "links",
		Rationale:       "Citing no external sources can read as unsupported for informational content.",
		EstimatedImpact: "low",
		AutoFixable:     false,
		Recommendation:  "Reference a few authoritative external sources where claims need support.",
	},
	"anchor_density_low": {
		Severity:        SeverityLow,
		Category:        "links",
		Rationale:       "Long content with very few links misses navigation and context opportunities.",
		EstimatedImpact: "low",
		AutoFixable:     false,
		Recommendation:  "Add contextual links roughly every few hundred words.",
	},
	"images_missing": {
		Severity:        SeverityLow,
		Category:        "media",
		Rationale:       "Long text without imagery scores worse on engagement and misses image search traffic.",
		EstimatedImpact: "low",
		AutoFixable:     false,
		Recommendation:  "Add at least one relevant image with descriptive alt text.",
	},
	"paragraph_structure_weak": {
		Severity:        SeverityLow,
		Category:        "content",
		Rationale:       "Long stretches of text without sub-headings are hard to scan.",
		EstimatedImpact: "low",
		AutoFixable:     false,
		Recommendation:  "Break the text up with descriptive sub-headings every few paragraphs.",
	},
	"subheadings_missing": {
		Severity:        SeverityLow,
		Category:        "structure",
		Rationale:       "Long content without H2/H3 structure is hard to scan and harder to deep-link.",
		EstimatedImpact: "low",
		AutoFixable:     false,
		Recommendation:  "Add sub-headings that segment the content by sub-topic.",
	},
	"fact_sheet_missing": {
		Severity:        SeverityLow,
		Category:        "facts",
		Rationale:       "Fact validation was requested but no fact sheet was supplied, so nothing could be verified.",
		EstimatedImpact: "low",
		AutoFixable:     false,
		Recommendation:  "Provide entity/attribute facts for the topic in the project file.",
	},
}

// GetRuleInfo returns the catalog entry for a rule identifier.
// Returns a medium-severity default for rules not in the catalog so that
// ad-hoc findings still carry sane metadata.
func GetRuleInfo(rule string) RuleInfo {
	if info, ok := ruleCatalog[rule]; ok {
		return info
	}
	return RuleInfo{
		Severity:        SeverityMedium,
		Category:        "general",
		Rationale:       "Unknown rule. Review manually.",
		EstimatedImpact: "medium",
		AutoFixable:     false,
		Recommendation:  "Investigate the finding and assess impact.",
	}
}
