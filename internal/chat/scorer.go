package chat

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
)

// KeywordMode selects how keyword hits contribute to a score.
type KeywordMode int

const (
	// PerKeyword adds 10 points for every keyword found in the query.
	PerKeyword KeywordMode = iota
	// FlatKeyword adds 30 points once if any keyword is found.
	FlatKeyword
)

func (m KeywordMode) String() string {
	if m == FlatKeyword {
		return "flat"
	}
	return "per-keyword"
}

const (
	pointsPerKeyword      = 10
	pointsFlatKeyword     = 30
	pointsExactQuestion   = 100
	pointsContainQuestion = 50
	pointsExactNormalized = 80
	pointsContainNormal   = 40
)

var malwareTerms = []string{
	"virus", "software", "program", "app", "application", "download", "computer", "laptop",
	"phone", "mobile", "system", "malware", "spyware", "adware", "trojan", "worm", "hack", "hacking",
}

// Vetoed reports whether the query asks about installing something that is not solar
// hardware. Matching is by substring, so "install a solar system" is vetoed too.
func Vetoed(rawQuery string) bool {
	q := strings.ToLower(rawQuery)
	if !strings.Contains(q, "install") || strings.Contains(q, "installment") {
		return false
	}
	for _, term := range malwareTerms {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}

// ScoredCandidate pairs an FAQ with its relevance score.
type ScoredCandidate struct {
	FAQ   domain.FAQ `json:"faq"`
	Score int        `json:"score"`
}

// query holds the per-query values shared by every FAQ comparison.
type query struct {
	lower      string
	normalized string
	words      map[string]struct{}
	vetoed     bool
}

func newQuery(raw string) query {
	n := Normalize(raw)
	return query{
		lower:      strings.ToLower(strings.TrimSpace(raw)),
		normalized: n,
		words:      longWords(n),
		vetoed:     Vetoed(raw),
	}
}

// Score rates how well rawQuery matches faq. Scores are additive and non-negative.
func Score(rawQuery string, faq domain.FAQ, mode KeywordMode) int {
	return newQuery(rawQuery).score(faq, mode)
}

func (q query) score(faq domain.FAQ, mode KeywordMode) int {
	if q.vetoed {
		return 0
	}

	score := q.keywordPoints(faq.Keywords, mode)

	question := strings.ToLower(strings.TrimSpace(faq.Question))
	switch {
	case q.lower == question:
		score += pointsExactQuestion
	case q.lower != "" && question != "" &&
		(strings.Contains(q.lower, question) || strings.Contains(question, q.lower)):
		score += pointsContainQuestion
	}

	normalized := Normalize(faq.Question)
	if q.normalized != "" && normalized != "" {
		switch {
		case q.normalized == normalized:
			score += pointsExactNormalized
		case strings.Contains(q.normalized, normalized) || strings.Contains(normalized, q.normalized):
			score += pointsContainNormal
		}
	}

	score += overlapPoints(q.words, longWords(normalized))
	return score
}

func (q query) keywordPoints(keywords []string, mode KeywordMode) int {
	hits := 0
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || !strings.Contains(q.lower, kw) {
			continue
		}
		if mode == FlatKeyword {
			return pointsFlatKeyword
		}
		hits++
	}
	return hits * pointsPerKeyword
}

func overlapPoints(queryWords, faqWords map[string]struct{}) int {
	if len(queryWords) == 0 || len(faqWords) == 0 {
		return 0
	}
	shared := 0
	for w := range queryWords {
		if _, ok := faqWords[w]; ok {
			shared++
		}
	}
	queryOverlap := float64(shared) / float64(len(queryWords))
	faqOverlap := float64(shared) / float64(len(faqWords))
	best := queryOverlap
	if faqOverlap > best {
		best = faqOverlap
	}

	switch {
	case best > 0.7:
		return 30
	case best > 0.5:
		return 20
	case best > 0.3:
		return 10
	}
	return 0
}

// longWords returns the unique words longer than three characters.
func longWords(normalized string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(normalized) {
		if utf8.RuneCountInString(w) > 3 {
			words[w] = struct{}{}
		}
	}
	return words
}

// Rank scores every FAQ and sorts them best first. Ties keep knowledge base order.
func Rank(rawQuery string, faqs []domain.FAQ, mode KeywordMode) []ScoredCandidate {
	q := newQuery(rawQuery)
	ranked := make([]ScoredCandidate, len(faqs))
	for i, faq := range faqs {
		ranked[i] = ScoredCandidate{FAQ: faq, Score: q.score(faq, mode)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Matcher applies the selection thresholds on top of Rank.
type Matcher struct {
	DirectThreshold   int
	RelevantThreshold int
	MaxRelevant       int
}

// DefaultMatcher returns the standard thresholds.
func DefaultMatcher() Matcher {
	return Matcher{DirectThreshold: 30, RelevantThreshold: 15, MaxRelevant: 5}
}

// BestMatch returns the top PerKeyword candidate when it reaches DirectThreshold.
func (m Matcher) BestMatch(rawQuery string, faqs []domain.FAQ) (ScoredCandidate, bool) {
	ranked := Rank(rawQuery, faqs, PerKeyword)
	if len(ranked) == 0 || ranked[0].Score < m.DirectThreshold || ranked[0].Score == 0 {
		return ScoredCandidate{}, false
	}
	return ranked[0], true
}

// Relevant returns up to MaxRelevant FlatKeyword candidates scoring at least RelevantThreshold.
func (m Matcher) Relevant(rawQuery string, faqs []domain.FAQ) []ScoredCandidate {
	ranked := Rank(rawQuery, faqs, FlatKeyword)
	out := make([]ScoredCandidate, 0, m.MaxRelevant)
	for _, c := range ranked {
		if len(out) == m.MaxRelevant || c.Score < m.RelevantThreshold || c.Score == 0 {
			break
		}
		out = append(out, c)
	}
	return out
}
