package chat

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"What is the price?", "price"},
		{"Do you offer installment plans?", "you offer installment plans"},
		{"How long does installation take?", "long does installation take"},
		{"Can I get a quote for the 5kW package, please?", "i get quote 5kw package please"},
		{"  What's   ON-GRID?!  ", "s grid"},
		{"I want to know about net metering", "i want know net metering"},
		{"the", "the"},
		{"???", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	samples := []string{
		"what is the price",
		"is the a the an of to",
		"how do does is are will",
		"tell me tell me about about the the price",
		"Please, tell me: what's the cost of a 3kW system?",
		"i want to know i want to know",
		" - ' \" ; : , . ! ?",
		"Magkano po ang solar sa bahay?",
	}
	for _, s := range samples {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), s)
	}

	err := quick.Check(func(s string) bool {
		once := Normalize(s)
		return Normalize(once) == once
	}, &quick.Config{MaxCount: 2000})
	assert.NoError(t, err)
}
