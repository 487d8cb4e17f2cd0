package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsu24/D-Solar-sub001/internal/chat"
	"github.com/Ramsu24/D-Solar-sub001/internal/config"
	"github.com/Ramsu24/D-Solar-sub001/internal/knowledge"
)

const testSeed = `faqs:
  - id: installment-plans
    question: Do you offer installment plans?
    answer: Yes, through our financing partners.
    keywords: [installment, financing, monthly]
packages:
  - code: ONG-2K-P1
    name: 2kW On-Grid Starter
    type: ongrid
    wattage: 2000
    cash_price: 104800
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	seedPath := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(testSeed), 0o644))

	cfg := config.DefaultConfig()
	cfg.Database.Driver = "sqlite"
	cfg.Database.SQLite.Path = ":memory:"
	cfg.Database.SQLite.JournalMode = ""
	cfg.Cache.Driver = "memory"
	cfg.Completion.Driver = "none"
	cfg.Knowledge.SeedFile = seedPath
	cfg.Knowledge.SeedOnBoot = true
	return cfg
}

func TestNew_SeedsAndRoutes(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t), nil)
	require.NoError(t, err)
	defer a.Close()

	faqs, err := a.Knowledge.ListFAQs(ctx)
	require.NoError(t, err)
	require.Len(t, faqs, 1)

	resp, err := a.Router.Route(ctx, "Do you offer installment plans?", nil)
	require.NoError(t, err)
	assert.Equal(t, chat.SourceFAQ, resp.Source)

	resp, err = a.Router.Route(ctx, "Tell me about ONG-2K-P1", nil)
	require.NoError(t, err)
	assert.Equal(t, chat.SourcePackage, resp.Source)
	assert.Contains(t, resp.Text, "₱104,800")

	// No provider configured: generation falls back to the apology.
	resp, err = a.Router.Route(ctx, "Tell me something about the solar industry and renewable energy trends", nil)
	require.NoError(t, err)
	assert.Equal(t, chat.SourceError, resp.Source)
}

func TestApplySeed_InvalidatesCache(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t), nil)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Knowledge.ListPackages(ctx)
	require.NoError(t, err)

	seed, err := knowledge.ParseSeed([]byte(testSeed + `  - code: HYB-3PK
    name: 3kW Hybrid Small
    type: hybrid-small
    wattage: 3000
`))
	require.NoError(t, err)
	require.NoError(t, a.ApplySeed(ctx, seed))

	pkgs, err := a.Knowledge.ListPackages(ctx)
	require.NoError(t, err)
	assert.Len(t, pkgs, 2)
}

func TestNew_RejectsUnknownCache(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Driver = "memcached"

	_, err := New(context.Background(), cfg, nil)
	require.Error(t, err)
}

func TestNew_MissingSeedFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Knowledge.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(context.Background(), cfg, nil)
	require.Error(t, err)
}
