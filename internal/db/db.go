package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/orgball2608/photoshare-client/internal/migrations"
	"github.com/orgball2608/photoshare-client/pkg/config"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"github.com/pressly/goose/v3"
)

// Open connects to the uploads database through database/sql for goose.
func Open(cfg *config.Config) (*sql.DB, error) {
	connect, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, err
	}
	return connect, nil
}

// NewMigrator returns a goose provider over the migrations compiled into the binary.
func NewMigrator(connect *sql.DB) (*goose.Provider, error) {
	return goose.NewProvider(goose.DialectPostgres, connect, nil)
}

// Migrate applies all pending migrations. It does nothing without a configured database.
func Migrate(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	if !cfg.PostgresEnabled() {
		return nil
	}

	connect, err := Open(cfg)
	if err != nil {
		return err
	}
	defer connect.Close()

	provider, err := NewMigrator(connect)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		log.Info("Applied migration", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}
