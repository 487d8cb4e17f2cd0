package chat

import (
	"fmt"
	"strings"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
)

const companyFacts = `You are the customer assistant of D-Solar, a solar energy installation company in the Philippines.
Company facts:
- D-Solar designs and installs on-grid and hybrid (battery-backed) rooftop solar systems for homes and businesses.
- Every project starts with a free site inspection, followed by a quotation, installation and net metering assistance.
- Packages can be paid in cash or through financing with monthly installments.
- Customers can reach the team through the website contact form or the Facebook page.
Guidelines:
- Answer only questions about solar energy, D-Solar's packages and services.
- Be concise and friendly; use markdown for lists.
- Quote prices exactly as given below in Philippine pesos (₱); never invent prices or package codes.
- If you are unsure, offer to connect the customer with a D-Solar specialist.`

// buildSystemPrompt assembles the generation prompt from company facts, FAQ context and,
// for pricing questions, the package catalogue.
func buildSystemPrompt(candidates []ScoredCandidate, pkgs []domain.Package, pricing bool) string {
	var b strings.Builder
	b.WriteString(companyFacts)

	if len(candidates) > 0 {
		b.WriteString("\n\nRelevant FAQs from the knowledge base:\n")
		for _, c := range candidates {
			fmt.Fprintf(&b, "\nQ: %s\nA: %s\n", c.FAQ.Question, StripSourceMarkers(c.FAQ.Answer))
		}
		b.WriteString("\nPrefer these answers when they address the question.")
	}

	if pricing && len(pkgs) > 0 {
		b.WriteString("\n\nCurrent packages:\n")
		b.WriteString(FormatCatalog(pkgs))
	}

	return b.String()
}

const faqMatchPrompt = `You decide whether one of the FAQs below fully answers the customer's question.
Respond with a JSON object only:
{"canAnswer": true|false, "bestFaqId": "<id of the best FAQ or empty>", "confidence": <number between 0 and 1>}`

func buildFAQMatchTurns(message string, candidates []ScoredCandidate) []domain.ChatTurn {
	var b strings.Builder
	b.WriteString(faqMatchPrompt)
	b.WriteString("\n\nFAQs:\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "\nID: %s\nQ: %s\nA: %s\n", c.FAQ.ID, c.FAQ.Question, StripSourceMarkers(c.FAQ.Answer))
	}

	return []domain.ChatTurn{
		{Role: domain.RoleSystem, Content: b.String()},
		{Role: domain.RoleUser, Content: message},
	}
}
