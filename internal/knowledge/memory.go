package knowledge

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
)

// MemoryBase is an in-process knowledge base. Safe for concurrent use.
type MemoryBase struct {
	mu       sync.RWMutex
	faqs     []domain.FAQ
	packages []domain.Package
}

// NewMemoryBase returns a base holding the seed contents. seed may be nil.
func NewMemoryBase(seed *Seed) *MemoryBase {
	m := &MemoryBase{}
	if seed != nil {
		m.Replace(seed)
	}
	return m
}

// Replace swaps the whole contents atomically.
func (m *MemoryBase) Replace(seed *Seed) {
	faqs := make([]domain.FAQ, len(seed.FAQs))
	copy(faqs, seed.FAQs)
	pkgs := make([]domain.Package, len(seed.Packages))
	copy(pkgs, seed.Packages)

	m.mu.Lock()
	m.faqs = faqs
	m.packages = pkgs
	m.mu.Unlock()
}

// ListFAQs returns a copy of the FAQs in insertion order.
func (m *MemoryBase) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.FAQ, len(m.faqs))
	copy(out, m.faqs)
	return out, nil
}

// ListPackages returns a copy of the packages in insertion order.
func (m *MemoryBase) ListPackages(ctx context.Context) ([]domain.Package, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Package, len(m.packages))
	copy(out, m.packages)
	return out, nil
}

// FindPackageByCode looks up a package by code, ignoring case.
func (m *MemoryBase) FindPackageByCode(ctx context.Context, code string) (*domain.Package, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.packages {
		if strings.EqualFold(m.packages[i].Code, code) {
			pkg := m.packages[i]
			return &pkg, nil
		}
	}
	return nil, domain.ErrNotFound
}

// FindPackageByCodeSuffix returns the first package whose code ends with suffix.
func (m *MemoryBase) FindPackageByCodeSuffix(ctx context.Context, suffix string) (*domain.Package, error) {
	suffix = strings.ToUpper(suffix)
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.packages {
		if strings.HasSuffix(strings.ToUpper(m.packages[i].Code), suffix) {
			pkg := m.packages[i]
			return &pkg, nil
		}
	}
	return nil, domain.ErrNotFound
}

// UpsertFAQ validates and inserts or replaces an FAQ.
func (m *MemoryBase) UpsertFAQ(ctx context.Context, faq *domain.FAQ) error {
	if err := faq.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.faqs {
		if m.faqs[i].ID == faq.ID {
			faq.CreatedAt = m.faqs[i].CreatedAt
			faq.UpdatedAt = now
			m.faqs[i] = *faq
			return nil
		}
	}
	faq.CreatedAt, faq.UpdatedAt = now, now
	m.faqs = append(m.faqs, *faq)
	return nil
}

// UpsertPackage validates and inserts or replaces a package.
func (m *MemoryBase) UpsertPackage(ctx context.Context, pkg *domain.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.packages {
		if m.packages[i].Code == pkg.Code {
			pkg.CreatedAt = m.packages[i].CreatedAt
			pkg.UpdatedAt = now
			m.packages[i] = *pkg
			return nil
		}
	}
	pkg.CreatedAt, pkg.UpdatedAt = now, now
	m.packages = append(m.packages, *pkg)
	return nil
}

var (
	_ domain.KnowledgeBase = (*MemoryBase)(nil)
	_ Writer               = (*MemoryBase)(nil)
)
