// Package domain defines the core types shared by the assistant.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// PackageType is the system family of a solar package.
type PackageType string

const (
	PackageTypeOnGrid      PackageType = "ongrid"
	PackageTypeHybrid      PackageType = "hybrid"
	PackageTypeHybridSmall PackageType = "hybrid-small"
	PackageTypeHybridLarge PackageType = "hybrid-large"
)

// Valid reports whether t is one of the known package types.
func (t PackageType) Valid() bool {
	switch t {
	case PackageTypeOnGrid, PackageTypeHybrid, PackageTypeHybridSmall, PackageTypeHybridLarge:
		return true
	}
	return false
}

// Label returns a human readable name for the package type.
func (t PackageType) Label() string {
	switch t {
	case PackageTypeOnGrid:
		return "On-Grid"
	case PackageTypeHybrid:
		return "Hybrid"
	case PackageTypeHybridSmall:
		return "Hybrid (Small)"
	case PackageTypeHybridLarge:
		return "Hybrid (Large)"
	}
	return string(t)
}

// FAQ is a single knowledge base entry.
type FAQ struct {
	ID        string    `json:"id" yaml:"id"`
	Question  string    `json:"question" yaml:"question"`
	Answer    string    `json:"answer" yaml:"answer"` // markdown
	Keywords  []string  `json:"keywords" yaml:"keywords"`
	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"-"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" yaml:"-"`
}

// Validate checks the FAQ invariants.
func (f *FAQ) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return ValidationError("faq id is required", nil)
	}
	if strings.TrimSpace(f.Question) == "" {
		return ValidationError(fmt.Sprintf("faq %s: question is required", f.ID), nil)
	}
	if strings.TrimSpace(f.Answer) == "" {
		return ValidationError(fmt.Sprintf("faq %s: answer is required", f.ID), nil)
	}

	keywords := f.Keywords[:0:0]
	for _, kw := range f.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return ValidationError(fmt.Sprintf("faq %s: at least one keyword is required", f.ID), nil)
	}
	f.Keywords = keywords
	return nil
}

// Package is a priced solar installation offering.
type Package struct {
	Code           string      `json:"code" yaml:"code"`
	Name           string      `json:"name" yaml:"name"`
	Description    string      `json:"description" yaml:"description"`
	Type           PackageType `json:"type" yaml:"type"`
	Wattage        float64     `json:"wattage" yaml:"wattage"` // watts
	SuitableFor    string      `json:"suitableFor" yaml:"suitable_for"`
	FinancingPrice float64     `json:"financingPrice" yaml:"financing_price"`
	SRPPrice       float64     `json:"srpPrice" yaml:"srp_price"`
	CashPrice      float64     `json:"cashPrice" yaml:"cash_price"`
	CreatedAt      time.Time   `json:"createdAt,omitempty" yaml:"-"`
	UpdatedAt      time.Time   `json:"updatedAt,omitempty" yaml:"-"`
}

// Validate checks the package invariants.
func (p *Package) Validate() error {
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	if p.Code == "" {
		return ValidationError("package code is required", nil)
	}
	if strings.TrimSpace(p.Name) == "" {
		return ValidationError(fmt.Sprintf("package %s: name is required", p.Code), nil)
	}
	if !p.Type.Valid() {
		return ValidationError(fmt.Sprintf("package %s: invalid type %q", p.Code, p.Type), nil)
	}
	if p.Wattage < 0 || p.FinancingPrice < 0 || p.SRPPrice < 0 || p.CashPrice < 0 {
		return ValidationError(fmt.Sprintf("package %s: wattage and prices must be non-negative", p.Code), nil)
	}
	return nil
}

// Role is the author of a chat turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is one message of a conversation.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat asks the provider for a particular output shape.
type ResponseFormat string

const (
	ResponseFormatText ResponseFormat = ""
	ResponseFormatJSON ResponseFormat = "json_object"
)

// CompletionOptions tunes a single completion request.
type CompletionOptions struct {
	Temperature    float32
	MaxTokens      int
	ResponseFormat ResponseFormat
}
