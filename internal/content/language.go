package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// defaultLanguage is assumed when nothing else resolves.
const defaultLanguage = "en"

// Detection thresholds. Below minDetectionWords the indicator counts are
// noise; below minIndicatorRatio the best language is not convincing enough
// to override the default.
const (
	minDetectionWords = 25
	minIndicatorRatio = 0.12
)

// languageIndicators maps ISO 639-1 codes to high-frequency function words
// of that language. Order matters: on equal counts the earlier language
// wins.
var languageIndicators = []struct {
	code  string
	words map[string]bool
}{
	{"en", map[string]bool{
		"the": true, "and": true, "with": true, "from": true, "this": true,
		"that": true, "have": true, "are": true, "was": true, "were": true,
		"will": true, "your": true, "which": true, "their": true, "about": true,
	}},
	{"nl", map[string]bool{
		"de": true, "het": true, "een": true, "van": true, "dat": true,
		"niet": true, "zijn": true, "voor": true, "met": true, "aan": true,
		"ook": true, "maar": true, "naar": true, "wordt": true, "deze": true,
	}},
	{"de", map[string]bool{
		"der": true, "die": true, "das": true, "und": true, "ist": true,
		"nicht": true, "mit": true, "sich": true, "auf": true, "eine": true,
		"auch": true, "werden": true, "dem": true, "den": true, "ein": true,
	}},
	{"fr", map[string]bool{
		"le": true, "la": true, "les": true, "des": true, "est": true,
		"dans": true, "pour": true, "que": true, "qui": true, "une": true,
		"sur": true, "pas": true, "avec": true, "par": true, "plus": true,
	}},
}

// ResolveLanguage resolves the content language: a declared lang attribute
// wins, then indicator words in the text, then English.
func ResolveLanguage(langAttr, text string) string {
	if code := parseLangAttr(langAttr); code != "" {
		return code
	}
	if code := detectLanguage(text); code != "" {
		return code
	}
	return defaultLanguage
}

// parseLangAttr reduces a BCP 47 tag like "nl-NL" to its base subtag.
// Returns "" for missing or unparseable attributes.
func parseLangAttr(langAttr string) string {
	langAttr = strings.TrimSpace(langAttr)
	if langAttr == "" {
		return ""
	}

	tag, err := language.Parse(langAttr)
	if err != nil {
		return ""
	}

	base, confidence := tag.Base()
	if confidence == language.No {
		return ""
	}
	return base.String()
}

// detectLanguage guesses the text language from function-word frequency.
// Returns "" when the text is too short or no language stands out.
func detectLanguage(text string) string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) < minDetectionWords {
		return ""
	}

	best := ""
	bestCount := 0
	for _, indicator := range languageIndicators {
		count := 0
		for _, word := range words {
			if indicator.words[word] {
				count++
			}
		}
		if count > bestCount {
			best = indicator.code
			bestCount = count
		}
	}

	if float64(bestCount)/float64(len(words)) < minIndicatorRatio {
		return ""
	}
	return best
}
