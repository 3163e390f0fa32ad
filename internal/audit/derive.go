package audit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/contentaudit/contentaudit/internal/model"
	"github.com/contentaudit/contentaudit/internal/phase"
)

// collectOverlapSignals gathers the structured payloads of semantic findings
// across all phase results, in phase order.
func collectOverlapSignals(results []model.PhaseResult) []*model.OverlapSignal {
	var signals []*model.OverlapSignal
	for _, pr := range results {
		for _, f := range pr.Findings {
			if f.Overlap != nil {
				signals = append(signals, f.Overlap)
			}
		}
	}
	return signals
}

// deriveMergeSuggestions turns near-duplicate overlap signals into merge
// suggestions. A signal qualifies when its distance is below the threshold
// and it references a concrete page.
func deriveMergeSuggestions(sourceURL string, results []model.PhaseResult, threshold float64) []model.MergeSuggestion {
	var suggestions []model.MergeSuggestion
	for _, signal := range collectOverlapSignals(results) {
		if signal.Distance >= threshold || signal.URL == "" {
			continue
		}
		overlap := round1((1 - signal.Distance) * 100)
		suggestions = append(suggestions, model.MergeSuggestion{
			SourceURL: sourceURL,
			TargetURL: signal.URL,
			Overlap:   overlap,
			Reason:    fmt.Sprintf("%.1f%% topical overlap on %q", overlap, signal.Entity),
			Action:    "merge",
		})
	}
	return suggestions
}

// deriveCannibalizationRisks groups overlap signals by entity: every entity
// contested by the audited page and at least one related page becomes one
// risk listing all affected URLs and the union of shared keywords.
func deriveCannibalizationRisks(sourceURL string, results []model.PhaseResult) []model.CannibalizationRisk {
	type group struct {
		urls     map[string]bool
		keywords map[string]bool
		severity model.Severity
	}
	groups := make(map[string]*group)

	for _, pr := range results {
		for _, f := range pr.Findings {
			if f.Overlap == nil || f.Overlap.Entity == "" {
				continue
			}
			g, ok := groups[f.Overlap.Entity]
			if !ok {
				g = &group{
					urls:     map[string]bool{sourceURL: true},
					keywords: make(map[string]bool),
					severity: f.Severity,
				}
				groups[f.Overlap.Entity] = g
			}
			if f.Overlap.URL != "" {
				g.urls[f.Overlap.URL] = true
			}
			for _, kw := range f.Overlap.SharedKeywords {
				g.keywords[kw] = true
			}
			if f.Severity > g.severity {
				g.severity = f.Severity
			}
		}
	}

	entities := make([]string, 0, len(groups))
	for entity := range groups {
		entities = append(entities, entity)
	}
	sort.Strings(entities)

	risks := make([]model.CannibalizationRisk, 0, len(entities))
	for _, entity := range entities {
		g := groups[entity]
		risks = append(risks, model.CannibalizationRisk{
			Entity:   entity,
			URLs:     sortedKeys(g.urls),
			Keywords: sortedKeys(g.keywords),
			Severity: g.severity,
			Recommendation: fmt.Sprintf("%d pages compete on %q; differentiate them by search intent or consolidate.",
				len(g.urls), entity),
		})
	}
	return risks
}

// deriveMissingTopics checks every supplied fact against the plain text and
// lists the uncovered ones in fact order. Returns nil when no facts were
// supplied.
func deriveMissingTopics(plainText string, facts []model.Fact) []string {
	if len(facts) == 0 {
		return nil
	}

	text := strings.ToLower(plainText)
	var missing []string
	for _, fact := range facts {
		if phase.FactCovered(text, fact) {
			continue
		}
		missing = append(missing, phase.FactLabel(fact))
	}
	return missing
}

// sortedKeys returns the map's keys in sorted order.
func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
