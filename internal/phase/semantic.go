package phase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/contentaudit/contentaudit/internal/model"
)

// Semantic distance thresholds. Distance is 1 minus the cosine similarity of
// term profiles, so 0 means identical coverage and 1 means none shared.
const (
	// OverlapThreshold is the distance below which two pages compete for
	// the same queries and a finding is reported.
	OverlapThreshold = 0.35

	// MergeThreshold is the distance below which the pages are close to
	// duplicates and merging beats differentiating. Findings under this
	// threshold escalate to high severity, and the orchestrator derives
	// merge suggestions from them.
	MergeThreshold = 0.15
)

// topTermCount caps the number of page terms entering the comparison, so
// incidental vocabulary does not drown the profile.
const topTermCount = 30

// defaultSemanticWeight is the semantic-distance phase's share in the
// overall score.
const defaultSemanticWeight = 1.0

// SemanticDistanceEvaluator measures how close the page's term profile sits
// to each related topic profile. Close profiles mean the pages cannibalize
// each other in search.
//
// Design decision: Profiles come from the audit context rather than from
// fetching related pages because:
//  1. The audit fetches exactly one page; related data must be precomputed
//  2. Callers decide what counts as "related" (project file, past audits)
//  3. Keyword profiles are stable while page markup churns
type SemanticDistanceEvaluator struct {
	baseEvaluator
}

// NewSemanticDistanceEvaluator creates a new SemanticDistanceEvaluator.
func NewSemanticDistanceEvaluator() *SemanticDistanceEvaluator {
	return &SemanticDistanceEvaluator{
		baseEvaluator: baseEvaluator{name: PhaseSemanticDistance, weight: defaultSemanticWeight},
	}
}

// Evaluate counts one profile-build check plus one distance check per
// related topic profile. Each overlap finding carries an OverlapSignal
// payload with the entity, distance, reference URL, and shared keywords.
func (e *SemanticDistanceEvaluator) Evaluate(ctx context.Context, content *model.FetchedContent, audit *Context) (*model.PhaseResult, error) {
	var related []model.TopicProfile
	if audit != nil {
		related = audit.Related
	}

	totalChecks := 1 + len(related)
	findings := make([]model.Finding, 0)

	freq := TermFrequencies(content.PlainText + " " + content.Title)
	pageTerms := topTermVector(freq, topTermCount)

	summary := ""
	if len(related) == 0 {
		summary = "no related content to compare against"
	}

	for _, profile := range related {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if len(profile.Keywords) == 0 {
			continue
		}

		distance, shared := profileDistance(pageTerms, profile.Keywords)
		if distance >= OverlapThreshold {
			continue
		}

		f := model.NewFinding(PhaseSemanticDistance, "semantic_overlap",
			"Heavy topic overlap",
			fmt.Sprintf("The page shares %d of %d profile keywords with %s.", len(shared), len(profile.Keywords), profile.URL))
		if distance >= MergeThreshold {
			f.Severity = model.SeverityMedium
		}
		f.Overlap = &model.OverlapSignal{
			Entity:         profile.Entity,
			Distance:       round3(distance),
			URL:            profile.URL,
			SharedKeywords: shared,
		}
		findings = append(findings, f)
	}

	return BuildResult(e.Name(), e.Weight(), totalChecks, findings, summary)
}

// topTermVector keeps the n most frequent terms of freq as a weight vector.
func topTermVector(freq map[string]int, n int) map[string]float64 {
	vector := make(map[string]float64, n)
	for _, term := range TopTerms(freq, n) {
		vector[term] = float64(freq[term])
	}
	return vector
}

// profileDistance returns 1 minus the cosine similarity between the page's
// top-term vector and a uniform vector over the profile keywords, along with
// the sorted shared keywords.
func profileDistance(pageTerms map[string]float64, keywords []string) (float64, []string) {
	var dot, pageNorm float64
	shared := make([]string, 0, len(keywords))

	for _, weight := range pageTerms {
		pageNorm += weight * weight
	}

	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		if weight, ok := pageTerms[kw]; ok {
			dot += weight
			shared = append(shared, kw)
		}
	}

	keywordNorm := float64(len(seen))
	if pageNorm == 0 || keywordNorm == 0 {
		return 1, nil
	}

	similarity := dot / (math.Sqrt(pageNorm) * math.Sqrt(keywordNorm))
	if similarity > 1 {
		similarity = 1
	}

	sort.Strings(shared)
	return 1 - similarity, shared
}

// round3 rounds to three decimals for stable payloads and reports.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
