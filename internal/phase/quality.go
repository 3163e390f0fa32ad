package phase

import (
	"context"
	"fmt"
	"strings"

	"github.com/contentaudit/contentaudit/internal/model"
)

// Content quality thresholds.
const (
	// MinContentWords is the word count below which content is thin.
	MinContentWords = 300

	// MaxAvgSentenceWords is the average sentence length above which the
	// text reads as hard going.
	MaxAvgSentenceWords = 25

	// MaxTermRatio is the frequency share above which a single term counts
	// as stuffed (0.03 = 3% of all words).
	MaxTermRatio = 0.03

	// minStuffingWords is the word count below which the term ratio is too
	// noisy to judge.
	minStuffingWords = 100

	// maxWordsPerHeading is the words-per-heading-section ratio above which
	// long content reads as a wall of text.
	maxWordsPerHeading = 400
)

// defaultContentWeight is the content phase's share in the overall score.
const defaultContentWeight = 2.0

// ContentEvaluator checks the text itself: depth, readability, block
// structure, and term balance. It is weighted as heavily as metadata because
// the text is what actually ranks.
type ContentEvaluator struct {
	baseEvaluator
}

// NewContentEvaluator creates a new ContentEvaluator.
func NewContentEvaluator() *ContentEvaluator {
	return &ContentEvaluator{
		baseEvaluator: baseEvaluator{name: PhaseContent, weight: defaultContentWeight},
	}
}

// Evaluate runs four checks: word count, average sentence length, paragraph
// structure on long content, and keyword stuffing.
func (e *ContentEvaluator) Evaluate(_ context.Context, content *model.FetchedContent, _ *Context) (*model.PhaseResult, error) {
	const totalChecks = 4
	findings := make([]model.Finding, 0)

	words := content.WordCount()
	if words < MinContentWords {
		findings = append(findings, model.NewFinding(PhaseContent, "thin_content",
			"Thin content",
			fmt.Sprintf("The page has %d words; substantive coverage starts around %d.", words, MinContentWords)))
	}

	if avg := averageSentenceWords(content.PlainText); avg > MaxAvgSentenceWords {
		findings = append(findings, model.NewFinding(PhaseContent, "sentences_too_long",
			"Sentences run long",
			fmt.Sprintf("Sentences average %.0f words; readability drops beyond %d.", avg, MaxAvgSentenceWords)))
	}

	if words >= LongContentWords {
		headings := len(content.Headings)
		if headings == 0 || words/headings > maxWordsPerHeading {
			findings = append(findings, model.NewFinding(PhaseContent, "paragraph_structure_weak",
				"Wall of text",
				fmt.Sprintf("%d words with %d headings leaves long unscannable stretches.", words, headings)))
		}
	}

	if words >= minStuffingWords {
		if term, ratio := dominantTerm(content.PlainText, words); ratio > MaxTermRatio {
			f := model.NewFinding(PhaseContent, "keyword_stuffing",
				"Keyword stuffing",
				fmt.Sprintf("The term %q makes up %.1f%% of the text.", term, ratio*100))
			f.Suggestion = fmt.Sprintf("Replace some occurrences of %q with synonyms or pronouns.", term)
			findings = append(findings, f)
		}
	}

	return BuildResult(e.Name(), e.Weight(), totalChecks, findings, "")
}

// averageSentenceWords returns the mean word count per sentence, splitting on
// terminal punctuation. Returns 0 for empty text.
func averageSentenceWords(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	totalWords := 0
	counted := 0
	for _, s := range sentences {
		n := len(strings.Fields(s))
		if n == 0 {
			continue
		}
		totalWords += n
		counted++
	}
	if counted == 0 {
		return 0
	}
	return float64(totalWords) / float64(counted)
}

// dominantTerm returns the most frequent content term and its share of the
// total word count.
func dominantTerm(text string, totalWords int) (string, float64) {
	freq := TermFrequencies(text)
	top := TopTerms(freq, 1)
	if len(top) == 0 || totalWords == 0 {
		return "", 0
	}
	return top[0], float64(freq[top[0]]) / float64(totalWords)
}
