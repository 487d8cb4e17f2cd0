package chat

import (
	"encoding/json"
	"strings"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
)

// ParseStructured decodes the JSON object embedded in a model reply.
// Code fences and text around the outermost braces are ignored.
func ParseStructured[T any](text string) (T, error) {
	var out T

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return out, domain.MalformedOutputError("no JSON object in model output", nil)
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		var zero T
		return zero, domain.MalformedOutputError("decode model output", err)
	}
	return out, nil
}

// FAQMatch is the provider's verdict on whether one candidate FAQ answers the question.
type FAQMatch struct {
	CanAnswer  bool    `json:"canAnswer"`
	BestFAQID  string  `json:"bestFaqId"`
	Confidence float64 `json:"confidence"`
}
