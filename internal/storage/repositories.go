package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
)

// FAQRepository handles FAQ CRUD operations.
type FAQRepository struct {
	db DB
}

// NewFAQRepository creates a new FAQ repository.
func NewFAQRepository(db DB) *FAQRepository {
	return &FAQRepository{db: db}
}

const faqColumns = `id, question, answer, keywords, created_at, updated_at`

// List returns all FAQs in insertion order.
func (r *FAQRepository) List(ctx context.Context) ([]domain.FAQ, error) {
	query := `SELECT ` + faqColumns + ` FROM faqs ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var faqs []domain.FAQ
	for rows.Next() {
		faq, err := scanFAQ(rows)
		if err != nil {
			return nil, err
		}
		faqs = append(faqs, *faq)
	}
	return faqs, rows.Err()
}

// GetByID retrieves an FAQ by ID.
func (r *FAQRepository) GetByID(ctx context.Context, id string) (*domain.FAQ, error) {
	query := `SELECT ` + faqColumns + ` FROM faqs WHERE id = $1`
	faq, err := scanFAQ(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return faq, err
}

// Upsert inserts the FAQ or updates the existing row with the same ID.
// CreatedAt is kept on update.
func (r *FAQRepository) Upsert(ctx context.Context, faq *domain.FAQ) error {
	keywords, err := json.Marshal(faq.Keywords)
	if err != nil {
		return fmt.Errorf("encode keywords: %w", err)
	}
	now := time.Now().UTC()
	if faq.CreatedAt.IsZero() {
		faq.CreatedAt = now
	}
	faq.UpdatedAt = now

	query := `
		INSERT INTO faqs (id, question, answer, keywords, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			question = excluded.question,
			answer = excluded.answer,
			keywords = excluded.keywords,
			updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		faq.ID, faq.Question, faq.Answer, string(keywords), faq.CreatedAt, faq.UpdatedAt,
	)
	return err
}

// Delete removes an FAQ. Returns ErrNotFound when no row matched.
func (r *FAQRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFAQ(row rowScanner) (*domain.FAQ, error) {
	faq := &domain.FAQ{}
	var keywords string
	if err := row.Scan(
		&faq.ID, &faq.Question, &faq.Answer, &keywords, &faq.CreatedAt, &faq.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(keywords), &faq.Keywords); err != nil {
		return nil, fmt.Errorf("decode keywords for faq %s: %w", faq.ID, err)
	}
	return faq, nil
}

// PackageRepository handles package CRUD operations.
type PackageRepository struct {
	db DB
}

// NewPackageRepository creates a new package repository.
func NewPackageRepository(db DB) *PackageRepository {
	return &PackageRepository{db: db}
}

const packageColumns = `code, name, description, type, wattage, suitable_for,
	financing_price, srp_price, cash_price, created_at, updated_at`

// List returns all packages ordered by code.
func (r *PackageRepository) List(ctx context.Context) ([]domain.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages ORDER BY code`
	return r.query(ctx, query)
}

// GetByCode retrieves a package by its exact code.
func (r *PackageRepository) GetByCode(ctx context.Context, code string) (*domain.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE code = $1`
	pkg, err := scanPackage(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return pkg, err
}

// GetByCodeSuffix retrieves the first package, by code, whose code ends with suffix.
func (r *PackageRepository) GetByCodeSuffix(ctx context.Context, suffix string) (*domain.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE code LIKE $1 ORDER BY code LIMIT 1`
	pkg, err := scanPackage(r.db.QueryRowContext(ctx, query, "%"+suffix))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return pkg, err
}

// Upsert inserts the package or updates the existing row with the same code.
func (r *PackageRepository) Upsert(ctx context.Context, pkg *domain.Package) error {
	now := time.Now().UTC()
	if pkg.CreatedAt.IsZero() {
		pkg.CreatedAt = now
	}
	pkg.UpdatedAt = now

	query := `
		INSERT INTO packages (code, name, description, type, wattage, suitable_for,
			financing_price, srp_price, cash_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (code) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			type = excluded.type,
			wattage = excluded.wattage,
			suitable_for = excluded.suitable_for,
			financing_price = excluded.financing_price,
			srp_price = excluded.srp_price,
			cash_price = excluded.cash_price,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		pkg.Code, pkg.Name, pkg.Description, string(pkg.Type), pkg.Wattage, pkg.SuitableFor,
		pkg.FinancingPrice, pkg.SRPPrice, pkg.CashPrice, pkg.CreatedAt, pkg.UpdatedAt,
	)
	return err
}

// Delete removes a package. Returns ErrNotFound when no row matched.
func (r *PackageRepository) Delete(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE code = $1`, code)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PackageRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Package, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pkgs []domain.Package
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, *pkg)
	}
	return pkgs, rows.Err()
}

func scanPackage(row rowScanner) (*domain.Package, error) {
	pkg := &domain.Package{}
	var pkgType string
	if err := row.Scan(
		&pkg.Code, &pkg.Name, &pkg.Description, &pkgType, &pkg.Wattage, &pkg.SuitableFor,
		&pkg.FinancingPrice, &pkg.SRPPrice, &pkg.CashPrice, &pkg.CreatedAt, &pkg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	pkg.Type = domain.PackageType(pkgType)
	return pkg, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
