package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"hotelbooking/internal/database/migrations"
)

// Migrate brings the schema up to date: embedded SQL migrations on Postgres,
// AutoMigrate plus guard triggers on SQLite.
func Migrate(ctx context.Context, db *gorm.DB, dsn string) error {
	if !IsPostgres(dsn) {
		return migrateSQLite(db.WithContext(ctx))
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("open migration pool: %w", err)
	}
	defer pool.Close()

	return migrations.Apply(ctx, pool)
}
