package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
)

// Intent is the unified classification of a customer message.
type Intent string

const (
	IntentPricing      Intent = "pricing"
	IntentOffTopic     Intent = "off_topic"
	IntentSolarRelated Intent = "solar_related"
	IntentAmbiguous    Intent = "ambiguous"
)

// Valid reports whether i is a known intent.
func (i Intent) Valid() bool {
	switch i {
	case IntentPricing, IntentOffTopic, IntentSolarRelated, IntentAmbiguous:
		return true
	}
	return false
}

var (
	pricingTerms = regexp.MustCompile(`(?i)\b(?:price|prices|pricing|priced|cost|costs|how much|magkano|quotation|quote|financing|finance|installment|installments|payment|payments|monthly|downpayment|down payment|srp|cash|budget|afford|affordable|cheap|cheapest|expensive|rates?)\b`)
	solarTerms   = regexp.MustCompile(`(?i)\b(?:solar|panels?|inverters?|batter(?:y|ies)|net[-\s]?metering|on[-\s]?grid|off[-\s]?grid|hybrid|kwh|kw|roof|rooftop|electricity|meralco|energy|power|installation|installer|warranty|maintenance|d[-\s]?solar|photovoltaic|pv|site (?:inspection|survey|visit)|permits?|packages?)\b`)
	offTopicTerms = regexp.MustCompile(`(?i)\b(?:recipes?|cook(?:ing)?|movies?|weather|politics?|election|sports?|basketball|football|games?|gaming|songs?|music|lyrics|homework|essay|crypto|bitcoin|stocks?|dating|celebrity|jokes?|poem|antivirus|virus|malware|hack(?:ing)?)\b`)
	greetingTerms = regexp.MustCompile(`(?i)^\s*(?:hi|hello|hey|good (?:morning|afternoon|evening)|kumusta|kamusta|thanks|thank you|salamat)\b`)
)

// ClassifyIntent applies the keyword tables to a raw message.
// The confidence is the strength of the matching rule, zero for ambiguous.
func ClassifyIntent(raw string) (Intent, float64) {
	solar := solarTerms.MatchString(raw)

	switch {
	case Vetoed(raw) && !solar:
		return IntentOffTopic, 1.0
	case offTopicTerms.MatchString(raw) && !solar:
		return IntentOffTopic, 0.8
	case pricingTerms.MatchString(raw):
		return IntentPricing, 0.9
	case solar:
		return IntentSolarRelated, 0.8
	case greetingTerms.MatchString(raw):
		return IntentSolarRelated, 0.6
	}
	return IntentAmbiguous, 0
}

// RemoteClassifier resolves messages the keyword tables cannot place.
type RemoteClassifier interface {
	Classify(ctx context.Context, message string) (Intent, error)
}

// CompletionClassifier asks the completion provider to categorise a message.
type CompletionClassifier struct {
	Provider domain.CompletionProvider
}

type intentVerdict struct {
	Category string `json:"category"`
}

const classificationPrompt = `You classify messages sent to the customer chat of D-Solar, a solar panel installation company in the Philippines.
Reply with a JSON object {"category": "<value>"} where <value> is one of:
- "pricing": the customer asks about prices, costs, payment or financing
- "solar_related": the message concerns solar energy, electricity, our company or its services
- "off_topic": anything else`

// Classify implements RemoteClassifier.
func (c CompletionClassifier) Classify(ctx context.Context, message string) (Intent, error) {
	out, err := c.Provider.Complete(ctx, []domain.ChatTurn{
		{Role: domain.RoleSystem, Content: classificationPrompt},
		{Role: domain.RoleUser, Content: message},
	}, domain.CompletionOptions{Temperature: 0, MaxTokens: 20, ResponseFormat: domain.ResponseFormatJSON})
	if err != nil {
		return IntentAmbiguous, err
	}

	verdict, err := ParseStructured[intentVerdict](out)
	if err != nil {
		return IntentAmbiguous, err
	}
	intent := Intent(strings.ToLower(strings.TrimSpace(verdict.Category)))
	if !intent.Valid() || intent == IntentAmbiguous {
		return IntentAmbiguous, domain.MalformedOutputError(fmt.Sprintf("unknown category %q", verdict.Category), nil)
	}
	return intent, nil
}
