package knowledge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsu24/D-Solar-sub001/internal/cache"
	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
	"github.com/Ramsu24/D-Solar-sub001/internal/observability"
)

const testSeed = `
faqs:
  - id: installment-plans
    question: Do you offer installment plans?
    answer: Yes, we offer flexible installment plans.
    keywords: [installment, financing, monthly]
  - id: net-metering
    question: What is net metering?
    answer: Net metering credits the excess power you export.
    keywords: [net metering, export]
packages:
  - code: ong-2k-p1
    name: 2kW On-Grid
    type: ongrid
    wattage: 2000
    suitable_for: Small homes
    cash_price: 104800
  - code: HYB-6K10-P4
    name: 6kW Hybrid with 10kWh battery
    type: hybrid
    wattage: 6000
    cash_price: 420000
`

func TestParseSeed(t *testing.T) {
	seed, err := ParseSeed([]byte(testSeed))
	require.NoError(t, err)
	require.Len(t, seed.FAQs, 2)
	require.Len(t, seed.Packages, 2)
	assert.Equal(t, "ONG-2K-P1", seed.Packages[0].Code)
	assert.Equal(t, "Small homes", seed.Packages[0].SuitableFor)
	assert.Equal(t, []string{"net metering", "export"}, seed.FAQs[1].Keywords)
}

func TestParseSeed_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind domain.ErrorType
	}{
		{"bad yaml", "faqs: [", domain.ErrorTypeConfig},
		{"duplicate faq", `
faqs:
  - {id: a, question: q, answer: x, keywords: [k]}
  - {id: a, question: q2, answer: y, keywords: [k]}
`, domain.ErrorTypeValidation},
		{"duplicate package after normalising", `
packages:
  - {code: ong-1k-p1, name: a, type: ongrid}
  - {code: ONG-1K-P1, name: b, type: ongrid}
`, domain.ErrorTypeValidation},
		{"invalid type", `
packages:
  - {code: X-1, name: a, type: offgrid}
`, domain.ErrorTypeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeed([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, domain.IsType(err, tt.kind), err.Error())
		})
	}
}

func TestLoadSeedFile_Missing(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, domain.IsType(err, domain.ErrorTypeConfig))
}

func TestLoadSeedFile_Bundled(t *testing.T) {
	seed, err := LoadSeedFile(filepath.Join("..", "..", "configs", "seed.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, seed.FAQs)
	assert.NotEmpty(t, seed.Packages)

	base := NewMemoryBase(seed)
	pkg, err := base.FindPackageByCode(context.Background(), "ONG-2K-P1")
	require.NoError(t, err)
	assert.Equal(t, 104800.0, pkg.CashPrice)
}

func TestImport_ReportsProgress(t *testing.T) {
	seed, err := ParseSeed([]byte(testSeed))
	require.NoError(t, err)

	base := NewMemoryBase(nil)
	var calls []int
	res, err := Import(context.Background(), base, seed, func(done, total int) {
		assert.Equal(t, 4, total)
		calls = append(calls, done)
	})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{FAQs: 2, Packages: 2}, res)
	assert.Equal(t, []int{1, 2, 3, 4}, calls)

	faqs, err := base.ListFAQs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "installment-plans", faqs[0].ID)
}

type failingWriter struct{ Writer }

func (failingWriter) UpsertFAQ(ctx context.Context, faq *domain.FAQ) error {
	return errors.New("disk full")
}

func TestImport_StopsOnError(t *testing.T) {
	seed, err := ParseSeed([]byte(testSeed))
	require.NoError(t, err)

	_, err = Import(context.Background(), failingWriter{}, seed, nil)
	assert.ErrorContains(t, err, "import faq installment-plans")
}

func TestMemoryBase_Lookups(t *testing.T) {
	seed, err := ParseSeed([]byte(testSeed))
	require.NoError(t, err)
	base := NewMemoryBase(seed)
	ctx := context.Background()

	pkg, err := base.FindPackageByCode(ctx, "ong-2k-p1")
	require.NoError(t, err)
	assert.Equal(t, "2kW On-Grid", pkg.Name)

	pkg, err = base.FindPackageByCodeSuffix(ctx, "-p4")
	require.NoError(t, err)
	assert.Equal(t, "HYB-6K10-P4", pkg.Code)

	_, err = base.FindPackageByCode(ctx, "ONG-9K-P9")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Returned slices are copies.
	faqs, _ := base.ListFAQs(ctx)
	faqs[0].Answer = "mutated"
	again, _ := base.ListFAQs(ctx)
	assert.NotEqual(t, "mutated", again[0].Answer)

	base.Replace(&Seed{})
	faqs, _ = base.ListFAQs(ctx)
	assert.Empty(t, faqs)
}

func TestMemoryBase_Upsert(t *testing.T) {
	base := NewMemoryBase(nil)
	ctx := context.Background()

	faq := &domain.FAQ{ID: "a", Question: "q", Answer: "x", Keywords: []string{"k"}}
	require.NoError(t, base.UpsertFAQ(ctx, faq))
	faq.Answer = "y"
	require.NoError(t, base.UpsertFAQ(ctx, faq))

	faqs, _ := base.ListFAQs(ctx)
	require.Len(t, faqs, 1)
	assert.Equal(t, "y", faqs[0].Answer)

	assert.Error(t, base.UpsertPackage(ctx, &domain.Package{Code: "X"}))
}

func TestMemoryBase_ConcurrentAccess(t *testing.T) {
	seed, err := ParseSeed([]byte(testSeed))
	require.NoError(t, err)
	base := NewMemoryBase(seed)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = base.ListFAQs(ctx)
			_, _ = base.FindPackageByCode(ctx, "ONG-2K-P1")
		}()
		go func() {
			defer wg.Done()
			base.Replace(seed)
		}()
	}
	wg.Wait()
}

type countingBase struct {
	domain.KnowledgeBase
	faqCalls atomic.Int32
	pkgCalls atomic.Int32
}

func (c *countingBase) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	c.faqCalls.Add(1)
	return c.KnowledgeBase.ListFAQs(ctx)
}

func (c *countingBase) ListPackages(ctx context.Context) ([]domain.Package, error) {
	c.pkgCalls.Add(1)
	return c.KnowledgeBase.ListPackages(ctx)
}

func TestCachedBase_SnapshotsAndInvalidates(t *testing.T) {
	seed, err := ParseSeed([]byte(testSeed))
	require.NoError(t, err)
	inner := &countingBase{KnowledgeBase: NewMemoryBase(seed)}
	mc := cache.NewMemoryClient(100)
	defer mc.Close()
	cached := NewCachedBase(inner, mc, time.Minute, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		faqs, err := cached.ListFAQs(ctx)
		require.NoError(t, err)
		assert.Len(t, faqs, 2)
		pkgs, err := cached.ListPackages(ctx)
		require.NoError(t, err)
		assert.Len(t, pkgs, 2)
	}
	assert.Equal(t, int32(1), inner.faqCalls.Load())
	assert.Equal(t, int32(1), inner.pkgCalls.Load())

	require.NoError(t, cached.Invalidate(ctx))
	_, err = cached.ListFAQs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), inner.faqCalls.Load())

	pkg, err := cached.FindPackageByCode(ctx, "HYB-6K10-P4")
	require.NoError(t, err)
	assert.Equal(t, 6000.0, pkg.Wattage)
}

func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSeed), 0o644))

	base := NewMemoryBase(nil)
	metrics := observability.NewMetrics()
	w := NewWatcher(path, func(ctx context.Context, seed *Seed) error {
		base.Replace(seed)
		return nil
	}, metrics, nil)

	require.NoError(t, w.Reload(context.Background()))
	faqs, _ := base.ListFAQs(context.Background())
	assert.Len(t, faqs, 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.KnowledgeReloads.WithLabelValues("success")))

	require.NoError(t, os.WriteFile(path, []byte("faqs: ["), 0o644))
	assert.Error(t, w.Reload(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.KnowledgeReloads.WithLabelValues("error")))
	faqs, _ = base.ListFAQs(context.Background())
	assert.Len(t, faqs, 2, "failed reload keeps the previous contents")
}

func TestWatcher_RunPicksUpWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("faqs: []\n"), 0o644))

	base := NewMemoryBase(nil)
	w := NewWatcher(path, func(ctx context.Context, seed *Seed) error {
		base.Replace(seed)
		return nil
	}, nil, nil)
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(testSeed), 0o644))

	require.Eventually(t, func() bool {
		pkgs, _ := base.ListPackages(context.Background())
		return len(pkgs) == 2
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
