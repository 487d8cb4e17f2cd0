package chat

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxSimpleLength = 100
	maxSimpleWords  = 8
)

type taggedPattern struct {
	tag string
	re  *regexp.Regexp
}

// complexPatterns mark questions that need reasoning rather than a canned answer.
var complexPatterns = []taggedPattern{
	{"comparison", regexp.MustCompile(`(?i)\b(?:compare|comparison|difference between|differences between|versus|vs)\b|\bor\b.+\bbetter\b`)},
	{"personal", regexp.MustCompile(`(?i)\bmy\s+(?:house|home|roof|bill|electric bill|electricity bill|situation|place|business|property)\b`)},
	{"roi", regexp.MustCompile(`(?i)\b(?:roi|return on investment|payback|break[-\s]?even|worth it|cost[-\s]benefit)\b`)},
	{"multipart", regexp.MustCompile(`(?i)\b(?:and also|as well as|in addition|additionally)\b`)},
	{"numeric_unit", regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(?:kwh|kw|watts?|w|php|pesos?)\b|₱\s*\d`)},
	{"calculation", regexp.MustCompile(`(?i)\b(?:calculate|calculation|compute|estimate|how many panels)\b`)},
	{"hypothetical", regexp.MustCompile(`(?i)\b(?:what if|suppose|supposing|hypothetically|imagine)\b`)},
	{"advice", regexp.MustCompile(`(?i)\b(?:recommend|recommendation|should i|which is best|which one|advise|advice)\b`)},
}

var stopwords = toSet(
	"the", "and", "for", "are", "but", "not", "you", "your", "all", "any", "can", "has", "have",
	"had", "was", "were", "will", "would", "could", "should", "what", "how", "when", "where",
	"why", "which", "who", "whom", "this", "that", "these", "those", "there", "their", "they",
	"them", "with", "about", "from", "into", "does", "did", "doing", "been", "being", "than",
	"then", "also", "just", "very", "much", "many", "some", "please", "tell", "know", "want",
	"like", "get", "our", "ours", "yours", "its", "his", "her", "she", "him", "out", "off",
	"over", "under", "again", "here", "only", "own", "same", "too", "more", "most", "other",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Complexity explains an IsComplex decision.
type Complexity struct {
	Complex bool     `json:"complex"`
	Reasons []string `json:"reasons,omitempty"`
}

// AnalyzeComplexity reports every reason the query is too complex for a canned answer.
func AnalyzeComplexity(rawQuery string) Complexity {
	var reasons []string

	if utf8.RuneCountInString(rawQuery) > maxSimpleLength {
		reasons = append(reasons, "length")
	}
	if significantWords(rawQuery) > maxSimpleWords {
		reasons = append(reasons, "word_count")
	}
	for _, p := range complexPatterns {
		if p.re.MatchString(rawQuery) {
			reasons = append(reasons, p.tag)
		}
	}
	if strings.Count(rawQuery, "?") > 1 {
		reasons = append(reasons, "multiple_questions")
	}

	return Complexity{Complex: len(reasons) > 0, Reasons: reasons}
}

// IsComplex reports whether local FAQ matching should be bypassed.
func IsComplex(rawQuery string) bool {
	return AnalyzeComplexity(rawQuery).Complex
}

func significantWords(text string) int {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	n := 0
	for _, w := range words {
		if utf8.RuneCountInString(w) <= 2 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		n++
	}
	return n
}
