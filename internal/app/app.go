// Package app wires configuration into a ready-to-use assistant.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ramsu24/D-Solar-sub001/internal/cache"
	"github.com/Ramsu24/D-Solar-sub001/internal/chat"
	"github.com/Ramsu24/D-Solar-sub001/internal/completion"
	"github.com/Ramsu24/D-Solar-sub001/internal/config"
	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
	"github.com/Ramsu24/D-Solar-sub001/internal/knowledge"
	"github.com/Ramsu24/D-Solar-sub001/internal/observability"
	"github.com/Ramsu24/D-Solar-sub001/internal/storage"
)

// App holds the long-lived services shared by the API server and the CLI.
type App struct {
	Config    *config.Config
	Log       *observability.Logger
	Metrics   *observability.Metrics
	Store     *storage.Store
	Cache     cache.Client
	Knowledge *knowledge.CachedBase
	Provider  domain.CompletionProvider
	Router    *chat.Router
}

// New opens storage and cache, seeds an empty database and builds the router.
func New(ctx context.Context, cfg *config.Config, log *observability.Logger) (*App, error) {
	if log == nil {
		log = observability.NopLogger()
	}
	a := &App{Config: cfg, Log: log}
	if cfg.Observability.MetricsEnabled {
		a.Metrics = observability.NewMetrics()
	}

	db, err := storage.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	a.Store = storage.NewStore(db, cfg.Database.Driver)
	if err := a.Store.EnsureSchema(ctx); err != nil {
		a.Close()
		return nil, err
	}

	if a.Cache, err = newCache(cfg.Cache); err != nil {
		a.Close()
		return nil, err
	}
	a.Knowledge = knowledge.NewCachedBase(a.Store, a.Cache, cfg.Cache.TTL, log)

	if cfg.Knowledge.SeedOnBoot && cfg.Knowledge.SeedFile != "" {
		if err := a.seedIfEmpty(ctx); err != nil {
			a.Close()
			return nil, err
		}
	}

	if a.Provider, err = completion.NewProvider(cfg.Completion, log); err != nil {
		a.Close()
		return nil, err
	}
	a.Router = chat.NewRouter(a.Knowledge, a.Provider, chat.OptionsFromConfig(cfg), log, a.Metrics)

	log.Info().
		Str("database", cfg.Database.Driver).
		Str("cache", cfg.Cache.Driver).
		Str("completion", cfg.Completion.Driver).
		Msg("Assistant initialized")
	return a, nil
}

func newCache(cfg config.CacheConfig) (cache.Client, error) {
	switch cfg.Driver {
	case "redis":
		c, err := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case "", "memory":
		return cache.NewMemoryClient(cfg.MaxEntries), nil
	}
	return nil, domain.ConfigError(fmt.Sprintf("unknown cache driver %q", cfg.Driver), nil)
}

func (a *App) seedIfEmpty(ctx context.Context) error {
	faqs, err := a.Store.ListFAQs(ctx)
	if err != nil {
		return err
	}
	if len(faqs) > 0 {
		a.Log.Debug().Int("faqs", len(faqs)).Msg("Database already seeded")
		return nil
	}
	_, err = a.SeedFromFile(ctx, a.Config.Knowledge.SeedFile, nil)
	return err
}

// SeedFromFile loads and imports a seed file.
func (a *App) SeedFromFile(ctx context.Context, path string, progress func(done, total int)) (knowledge.ImportResult, error) {
	seed, err := knowledge.LoadSeedFile(path)
	if err != nil {
		return knowledge.ImportResult{}, err
	}
	return a.ImportSeed(ctx, seed, progress)
}

// ApplySeed is the Reloader used by the seed file watcher.
func (a *App) ApplySeed(ctx context.Context, seed *knowledge.Seed) error {
	_, err := a.ImportSeed(ctx, seed, nil)
	return err
}

// ImportSeed upserts seed into the store and drops cached snapshots.
func (a *App) ImportSeed(ctx context.Context, seed *knowledge.Seed, progress func(done, total int)) (knowledge.ImportResult, error) {
	res, err := knowledge.Import(ctx, a.Store, seed, progress)
	if ierr := a.Knowledge.Invalidate(ctx); ierr != nil {
		a.Log.Warn().Err(ierr).Msg("Failed to invalidate knowledge cache")
	}
	if err != nil {
		return res, err
	}
	a.Log.Info().Int("faqs", res.FAQs).Int("packages", res.Packages).Msg("Knowledge seed imported")
	return res, nil
}

// Watcher returns a watcher on the configured seed file.
func (a *App) Watcher() *knowledge.Watcher {
	return knowledge.NewWatcher(a.Config.Knowledge.SeedFile, a.ApplySeed, a.Metrics, a.Log)
}

// Close releases the cache and database.
func (a *App) Close() error {
	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}
