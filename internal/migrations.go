package internal

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/njordlabs/njord/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies pending schema migrations from the embedded
// migrations directory. Goose records applied versions in goose_db_version,
// so running this on every startup is safe.
func RunMigrations(db *sql.DB, logger *slog.Logger) error {
	goose.SetBaseFS(migrations.MigrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Info("Database schema up to date", "version", version)
	return nil
}
