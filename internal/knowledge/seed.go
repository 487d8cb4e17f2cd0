// Package knowledge loads, caches and hot-reloads the FAQ and package catalogue.
package knowledge

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
)

// Seed is the YAML document holding the initial knowledge base.
type Seed struct {
	FAQs     []domain.FAQ     `yaml:"faqs"`
	Packages []domain.Package `yaml:"packages"`
}

// LoadSeedFile reads and validates a seed file.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.ConfigError(fmt.Sprintf("read seed file %s", path), err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a seed document and validates every entry.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, domain.ConfigError("parse seed", err)
	}
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// Validate checks every FAQ and package and rejects duplicate ids or codes.
func (s *Seed) Validate() error {
	ids := make(map[string]struct{}, len(s.FAQs))
	for i := range s.FAQs {
		if err := s.FAQs[i].Validate(); err != nil {
			return err
		}
		if _, dup := ids[s.FAQs[i].ID]; dup {
			return domain.ValidationError(fmt.Sprintf("duplicate faq id %s", s.FAQs[i].ID), nil)
		}
		ids[s.FAQs[i].ID] = struct{}{}
	}

	codes := make(map[string]struct{}, len(s.Packages))
	for i := range s.Packages {
		if err := s.Packages[i].Validate(); err != nil {
			return err
		}
		if _, dup := codes[s.Packages[i].Code]; dup {
			return domain.ValidationError(fmt.Sprintf("duplicate package code %s", s.Packages[i].Code), nil)
		}
		codes[s.Packages[i].Code] = struct{}{}
	}
	return nil
}

// Writer persists knowledge entries.
type Writer interface {
	UpsertFAQ(ctx context.Context, faq *domain.FAQ) error
	UpsertPackage(ctx context.Context, pkg *domain.Package) error
}

// ImportResult counts what Import wrote.
type ImportResult struct {
	FAQs     int `json:"faqs"`
	Packages int `json:"packages"`
}

// Import upserts every seed entry into w. progress, when set, is called after each write.
func Import(ctx context.Context, w Writer, seed *Seed, progress func(done, total int)) (ImportResult, error) {
	var res ImportResult
	total := len(seed.FAQs) + len(seed.Packages)
	done := 0
	step := func() {
		done++
		if progress != nil {
			progress(done, total)
		}
	}

	for i := range seed.FAQs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		faq := seed.FAQs[i]
		if err := w.UpsertFAQ(ctx, &faq); err != nil {
			return res, fmt.Errorf("import faq %s: %w", faq.ID, err)
		}
		res.FAQs++
		step()
	}

	for i := range seed.Packages {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		pkg := seed.Packages[i]
		if err := w.UpsertPackage(ctx, &pkg); err != nil {
			return res, fmt.Errorf("import package %s: %w", pkg.Code, err)
		}
		res.Packages++
		step()
	}

	return res, nil
}
