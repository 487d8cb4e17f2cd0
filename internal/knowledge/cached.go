package knowledge

import (
	"context"
	"errors"
	"time"

	"github.com/Ramsu24/D-Solar-sub001/internal/cache"
	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
	"github.com/Ramsu24/D-Solar-sub001/internal/observability"
)

const cachePrefix = "knowledge:"

var (
	faqsKey     = cache.CacheKey("knowledge", "faqs")
	packagesKey = cache.CacheKey("knowledge", "packages")
)

// CachedBase keeps JSON snapshots of the FAQ and package lists in a cache.
// Single lookups go straight to the wrapped base.
type CachedBase struct {
	base  domain.KnowledgeBase
	cache cache.Client
	ttl   time.Duration
	log   *observability.Logger
}

// NewCachedBase wraps base with snapshot caching.
func NewCachedBase(base domain.KnowledgeBase, c cache.Client, ttl time.Duration, log *observability.Logger) *CachedBase {
	if log == nil {
		log = observability.NopLogger()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedBase{base: base, cache: c, ttl: ttl, log: log}
}

// ListFAQs serves the FAQ snapshot, loading it from the base on a miss.
func (c *CachedBase) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	var faqs []domain.FAQ
	if c.lookup(ctx, faqsKey, &faqs) {
		return faqs, nil
	}
	faqs, err := c.base.ListFAQs(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, faqsKey, faqs)
	return faqs, nil
}

// ListPackages serves the package snapshot, loading it from the base on a miss.
func (c *CachedBase) ListPackages(ctx context.Context) ([]domain.Package, error) {
	var pkgs []domain.Package
	if c.lookup(ctx, packagesKey, &pkgs) {
		return pkgs, nil
	}
	pkgs, err := c.base.ListPackages(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, packagesKey, pkgs)
	return pkgs, nil
}

func (c *CachedBase) FindPackageByCode(ctx context.Context, code string) (*domain.Package, error) {
	return c.base.FindPackageByCode(ctx, code)
}

func (c *CachedBase) FindPackageByCodeSuffix(ctx context.Context, suffix string) (*domain.Package, error) {
	return c.base.FindPackageByCodeSuffix(ctx, suffix)
}

// Invalidate drops both snapshots.
func (c *CachedBase) Invalidate(ctx context.Context) error {
	return c.cache.DeleteByPrefix(ctx, cachePrefix)
}

func (c *CachedBase) lookup(ctx context.Context, key string, out interface{}) bool {
	err := cache.GetJSON(ctx, c.cache, key, out)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		c.log.Warn().Err(err).Str("key", key).Msg("Knowledge cache read failed")
	}
	return false
}

func (c *CachedBase) store(ctx context.Context, key string, value interface{}) {
	if err := cache.SetJSON(ctx, c.cache, key, value, c.ttl); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Knowledge cache write failed")
	}
}

var _ domain.KnowledgeBase = (*CachedBase)(nil)
