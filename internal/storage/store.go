package storage

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
)

// Store is the SQL-backed knowledge base.
type Store struct {
	db       *sql.DB
	driver   string
	FAQs     *FAQRepository
	Packages *PackageRepository
}

// NewStore wraps an open database. driver is "sqlite" or "postgres".
func NewStore(db *sql.DB, driver string) *Store {
	return &Store{
		db:       db,
		driver:   driver,
		FAQs:     NewFAQRepository(db),
		Packages: NewPackageRepository(db),
	}
}

// EnsureSchema creates missing tables.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return EnsureSchema(ctx, s.db, s.driver)
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ListFAQs implements domain.KnowledgeBase.
func (s *Store) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	faqs, err := s.FAQs.List(ctx)
	if err != nil {
		return nil, domain.StorageError("list faqs", err)
	}
	return faqs, nil
}

// ListPackages implements domain.KnowledgeBase.
func (s *Store) ListPackages(ctx context.Context) ([]domain.Package, error) {
	pkgs, err := s.Packages.List(ctx)
	if err != nil {
		return nil, domain.StorageError("list packages", err)
	}
	return pkgs, nil
}

// FindPackageByCode implements domain.KnowledgeBase.
func (s *Store) FindPackageByCode(ctx context.Context, code string) (*domain.Package, error) {
	pkg, err := s.Packages.GetByCode(ctx, strings.ToUpper(code))
	if err != nil && !domain.IsNotFound(err) {
		return nil, domain.StorageError("find package", err)
	}
	return pkg, err
}

// FindPackageByCodeSuffix implements domain.KnowledgeBase.
func (s *Store) FindPackageByCodeSuffix(ctx context.Context, suffix string) (*domain.Package, error) {
	pkg, err := s.Packages.GetByCodeSuffix(ctx, strings.ToUpper(suffix))
	if err != nil && !domain.IsNotFound(err) {
		return nil, domain.StorageError("find package by suffix", err)
	}
	return pkg, err
}

var _ domain.KnowledgeBase = (*Store)(nil)

// GetFAQ returns one FAQ or ErrNotFound.
func (s *Store) GetFAQ(ctx context.Context, id string) (*domain.FAQ, error) {
	faq, err := s.FAQs.GetByID(ctx, id)
	if err != nil && !domain.IsNotFound(err) {
		return nil, domain.StorageError("get faq", err)
	}
	return faq, err
}

// UpsertFAQ validates and stores an FAQ.
func (s *Store) UpsertFAQ(ctx context.Context, faq *domain.FAQ) error {
	if err := faq.Validate(); err != nil {
		return err
	}
	if err := s.FAQs.Upsert(ctx, faq); err != nil {
		return domain.StorageError("upsert faq", err)
	}
	return nil
}

// DeleteFAQ removes an FAQ or returns ErrNotFound.
func (s *Store) DeleteFAQ(ctx context.Context, id string) error {
	err := s.FAQs.Delete(ctx, id)
	if err != nil && !domain.IsNotFound(err) {
		return domain.StorageError("delete faq", err)
	}
	return err
}

// UpsertPackage validates and stores a package.
func (s *Store) UpsertPackage(ctx context.Context, pkg *domain.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}
	if err := s.Packages.Upsert(ctx, pkg); err != nil {
		return domain.StorageError("upsert package", err)
	}
	return nil
}

// DeletePackage removes a package or returns ErrNotFound.
func (s *Store) DeletePackage(ctx context.Context, code string) error {
	err := s.Packages.Delete(ctx, strings.ToUpper(code))
	if err != nil && !domain.IsNotFound(err) {
		return domain.StorageError("delete package", err)
	}
	return err
}
