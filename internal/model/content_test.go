package model

import "testing"

// TestWordCount tests word counting on plain text.
func TestWordCount(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		text     string
		expected int
	}{
		{"empty", "", 0},
		{"single word", "hello", 1},
		{"simple sentence", "the quick brown fox", 4},
		{"collapsed whitespace", "  spaced   out\twords\nhere  ", 4},
		{"unicode words", "de snelle bruine vos springt", 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := &FetchedContent{PlainText: tc.text}
			if got := c.WordCount(); got != tc.expected {
				t.Errorf("WordCount(%q) = %d, expected %d", tc.text, got, tc.expected)
			}
		})
	}
}
