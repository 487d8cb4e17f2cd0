package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeComplexity(t *testing.T) {
	tests := []struct {
		query   string
		complex bool
		reason  string
	}{
		{"Do you offer installment plans?", false, ""},
		{"What is net metering?", false, ""},
		{"Can I pay monthly?", false, ""},
		{"What's the difference between On-Grid and Hybrid?", true, "comparison"},
		{"on-grid vs hybrid", true, "comparison"},
		{"is a 5kW or a 3kW package better", true, "comparison"},
		{"How big a system does my house need", true, "personal"},
		{"Is solar worth it", true, "roi"},
		{"I want a quote and also a site visit", true, "multipart"},
		{"price of 5 kw", true, "numeric_unit"},
		{"I pay ₱4000 a month", true, "numeric_unit"},
		{"Can you calculate my savings", true, "calculation"},
		{"what if there is a typhoon", true, "hypothetical"},
		{"Should I get a battery", true, "advice"},
		{"Price? Warranty?", true, "multiple_questions"},
		{strings.Repeat("solar ", 20), true, "length"},
		{"solar panels inverter battery warranty installation financing inspection permits", true, "word_count"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := AnalyzeComplexity(tt.query)
			assert.Equal(t, tt.complex, got.Complex, got.Reasons)
			assert.Equal(t, tt.complex, IsComplex(tt.query))
			if tt.reason != "" {
				assert.Contains(t, got.Reasons, tt.reason)
			}
		})
	}
}

func TestSignificantWords(t *testing.T) {
	assert.Equal(t, 3, significantWords("Do you offer installment plans?"))
	assert.Equal(t, 0, significantWords("is it ok to go"))
}

func TestIsComplex_MonotonicInQuestionMarks(t *testing.T) {
	queries := []string{
		"Do you offer installment plans?",
		"What is net metering?",
		"Should I get a battery?",
		"What's the difference between On-Grid and Hybrid?",
		"How much?",
	}
	for _, q := range queries {
		before := IsComplex(q)
		for extra := 1; extra <= 3; extra++ {
			after := IsComplex(q + strings.Repeat("?", extra))
			if before {
				assert.True(t, after, "%q + %d", q, extra)
			}
			assert.True(t, after, "more than one question mark is always complex")
		}
	}
}
