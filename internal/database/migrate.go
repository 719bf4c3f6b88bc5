package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Dialects understood by Migrate
const (
	DialectPostgres = goose.DialectPostgres
	DialectSQLite   = goose.DialectSQLite3
)

// Migrate applies pending embedded migrations. A provider per call keeps
// goose's package-level state out of the picture when several stores open at once.
func Migrate(ctx context.Context, sqlDB *sql.DB, dialect goose.Dialect, log *logrus.Entry) error {
	fsys, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if len(results) > 0 {
		log.WithFields(logrus.Fields{
			"applied": len(results),
			"dialect": dialect,
		}).Info("✅ Database migrations completed")
	}
	return nil
}
