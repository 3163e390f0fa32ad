package phase

import (
	"sort"
	"strings"
	"unicode"
)

// minTermLength filters out tokens too short to characterize a topic.
const minTermLength = 3

// stopWords are function words excluded from term profiles. The set mixes
// the supported content languages so profiles stay comparable regardless of
// which language the page resolved to.
var stopWords = map[string]bool{
	// English
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "her": true,
	"was": true, "one": true, "our": true, "out": true, "has": true,
	"have": true, "that": true, "this": true, "with": true, "from": true,
	"they": true, "will": true, "what": true, "when": true, "your": true,
	"which": true, "their": true, "about": true, "there": true, "more": true,
	"been": true, "into": true, "than": true, "them": true, "then": true,
	"its": true, "also": true, "were": true, "how": true, "who": true,
	// Dutch
	"het": true, "een": true, "van": true, "dat": true, "die": true,
	"niet": true, "zijn": true, "voor": true, "met": true, "aan": true,
	"naar": true, "deze": true, "maar": true, "ook": true, "over": true,
	"wordt": true, "worden": true, "hebben": true, "door": true,
	// German
	"der": true, "und": true, "das": true, "ist": true, "sie": true,
	"nicht": true, "mit": true, "sich": true, "auf": true, "eine": true,
	"auch": true, "werden": true, "aus": true, "dem": true, "den": true,
	// French
	"les": true, "des": true, "est": true, "dans": true, "pour": true,
	"que": true, "qui": true, "une": true, "sur": true, "pas": true,
	"vous": true, "par": true, "avec": true, "son": true, "ses": true,
}

// Tokenize splits text into lower-cased alphanumeric terms, dropping stop
// words and terms shorter than minTermLength.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		if len([]rune(field)) < minTermLength || stopWords[field] {
			continue
		}
		terms = append(terms, field)
	}
	return terms
}

// TermFrequencies counts term occurrences in text after tokenization.
func TermFrequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, term := range Tokenize(text) {
		freq[term]++
	}
	return freq
}

// TopTerms returns the n most frequent terms, most frequent first. Ties
// break alphabetically so the result is deterministic.
func TopTerms(freq map[string]int, n int) []string {
	terms := make([]string, 0, len(freq))
	for term := range freq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}
