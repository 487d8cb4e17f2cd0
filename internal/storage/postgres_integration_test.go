package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Ramsu24/D-Solar-sub001/internal/config"
	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
)

func TestStore_PostgresIntegration(t *testing.T) {
	if os.Getenv("DSOLAR_INTEGRATION") != "1" {
		t.Skip("set DSOLAR_INTEGRATION=1 to run container tests")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("dsolar_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate postgres container: %v", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := Open(config.DatabaseConfig{
		Driver: "postgres",
		Postgres: config.PostgresConfig{
			DSN:          fmt.Sprintf("postgres://test:test@%s:%s/dsolar_test?sslmode=disable", host, port.Port()),
			MaxOpenConns: 5,
			MaxIdleConns: 2,
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	waitForDB(t, db)

	store := NewStore(db, "postgres")
	require.NoError(t, store.EnsureSchema(ctx))

	require.NoError(t, store.FAQs.Upsert(ctx, &domain.FAQ{
		ID: "net-metering", Question: "What is net metering?", Answer: "Exporting excess power.",
		Keywords: []string{"net metering"},
	}))
	require.NoError(t, store.Packages.Upsert(ctx, &domain.Package{
		Code: "ONG-2K-P1", Name: "2kW On-Grid", Type: domain.PackageTypeOnGrid, CashPrice: 104800,
	}))

	faqs, err := store.ListFAQs(ctx)
	require.NoError(t, err)
	assert.Len(t, faqs, 1)

	pkg, err := store.FindPackageByCodeSuffix(ctx, "-P1")
	require.NoError(t, err)
	assert.Equal(t, "ONG-2K-P1", pkg.Code)
}

func waitForDB(t *testing.T, db *sql.DB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for {
		if err := db.PingContext(ctx); err == nil {
			return
		}
		select {
		case <-ctx.Done():
			t.Fatal("Database not ready after 30 seconds")
		case <-time.After(100 * time.Millisecond):
		}
	}
}
