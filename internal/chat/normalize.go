// Package chat decides how a customer message is answered: from a package
// record, from a stored FAQ, or by the completion provider.
package chat

import (
	"regexp"
	"strings"
)

var (
	punctuation = strings.NewReplacer(
		"?", " ", "!", " ", ".", " ", ",", " ", ";", " ", ":", " ", "-", " ", "'", " ", `"`, " ",
	)
	whitespaceRun       = regexp.MustCompile(`\s+`)
	leadingQuestionWord = regexp.MustCompile(`^(?:what|how|when|where|why|can|do|does|is|are|will)\s+`)
	fillerWords         = regexp.MustCompile(`\s(?:a|an|the|to|for|in|on|with|of|about|please|tell me|i want to know)\s`)
)

// Normalize reduces free text to the words that matter for matching.
// The result is a fixpoint: Normalize(Normalize(x)) == Normalize(x).
// An empty result means the text has nothing to match on.
func Normalize(text string) string {
	out := normalizeOnce(text)
	for {
		next := normalizeOnce(out)
		if next == out {
			return out
		}
		out = next
	}
}

func normalizeOnce(text string) string {
	s := strings.ToLower(text)
	s = punctuation.Replace(s)
	s = collapse(s)
	s = leadingQuestionWord.ReplaceAllString(s, "")
	s = fillerWords.ReplaceAllString(s, " ")
	return collapse(s)
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
