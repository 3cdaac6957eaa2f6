package testutil

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotelbooking/internal/database"
)

// NewPostgres starts a throwaway Postgres, applies the migrations and returns
// a gorm handle plus its DSN. Callers build with the integration tag.
func NewPostgres(t *testing.T) (*gorm.DB, string) {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("hotel_test"),
		tcPostgres.WithUsername("hotel"),
		tcPostgres.WithPassword("hotel"),
		tcPostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("skipping Postgres integration tests: %v", err)
	}
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	db, err := database.Connect(dsn, database.Options{MaxOpenConns: 8, MaxIdleConns: 2, LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := database.Migrate(ctx, db, dsn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db, dsn
}
