package chat

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
)

const overlapPrefixLen = 30

var (
	thinkBlock      = regexp.MustCompile(`(?is)<think>.*?</think>`)
	unclosedThink   = regexp.MustCompile(`(?is)<think>.*$`)
	sourceMarker    = regexp.MustCompile(`(?i)\s*\[source:[^\]]*\]`)
	blankLineRun    = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
	narrationPrefix = regexp.MustCompile(`(?i)^\s*(?:let me\b|i need to\b|i should\b|i will now\b|based on\b|the user (?:is asking|asked|wants)\b|okay,? so\b|alright,? so\b|first,? i\b)`)
)

var topicEmoji = []struct {
	re    *regexp.Regexp
	emoji string
}{
	{regexp.MustCompile(`(?i)price|cost|₱|financ|installment|payment`), "💰"},
	{regexp.MustCompile(`(?i)batter|backup|outage`), "🔋"},
	{regexp.MustCompile(`(?i)install|roof|inspection|site visit`), "🏠"},
	{regexp.MustCompile(`(?i)saving|bill|net metering`), "💡"},
}

// StripSourceMarkers removes inline "[Source: ...]" citations.
func StripSourceMarkers(text string) string {
	return strings.TrimSpace(sourceMarker.ReplaceAllString(text, ""))
}

// CleanCompletion removes reasoning traces and narration from a model reply.
func CleanCompletion(text string) string {
	text = thinkBlock.ReplaceAllString(text, "")
	text = unclosedThink.ReplaceAllString(text, "")

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if narrationPrefix.MatchString(line) {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}
	text = strings.Join(kept, "\n")
	text = blankLineRun.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Decorate prefixes a topic emoji unless the text already starts with a symbol.
func Decorate(text string) string {
	if text == "" {
		return text
	}
	if r, _ := utf8.DecodeRuneInString(text); r >= 0x2600 {
		return text
	}
	for _, t := range topicEmoji {
		if t.re.MatchString(text) {
			return t.emoji + " " + text
		}
	}
	return "☀️ " + text
}

// OverlappingFAQ returns the id of the first candidate whose answer shares a
// 30-character prefix with text, in either direction.
func OverlappingFAQ(text string, candidates []ScoredCandidate) (string, bool) {
	textLower := strings.ToLower(strings.TrimSpace(text))
	textPrefix, textOK := runePrefix(textLower, overlapPrefixLen)

	for _, c := range candidates {
		answer := strings.ToLower(strings.TrimSpace(StripSourceMarkers(c.FAQ.Answer)))
		if textOK && strings.Contains(answer, textPrefix) {
			return c.FAQ.ID, true
		}
		if answerPrefix, ok := runePrefix(answer, overlapPrefixLen); ok && strings.Contains(textLower, answerPrefix) {
			return c.FAQ.ID, true
		}
	}
	return "", false
}

// runePrefix returns the first n runes of s, or false when s is shorter.
func runePrefix(s string, n int) (string, bool) {
	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	if count == n {
		return s, true
	}
	return "", false
}

// lastTurns keeps the most recent user and assistant turns, dropping blanks and system entries.
func lastTurns(history []domain.ChatTurn, limit int) []domain.ChatTurn {
	turns := make([]domain.ChatTurn, 0, len(history))
	for _, t := range history {
		if t.Role != domain.RoleUser && t.Role != domain.RoleAssistant {
			continue
		}
		if strings.TrimSpace(t.Content) == "" {
			continue
		}
		turns = append(turns, t)
	}
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns
}
