package pgx

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/photoshare-client/pkg/config"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Logger logger.Logger
	Config *config.Config
}

// New opens the uploads database pool. It returns a nil pool when no database
// is configured.
func New(opts Opts) (*pgxpool.Pool, error) {
	if !opts.Config.PostgresEnabled() {
		opts.Logger.Info("Postgres not configured, keeping uploads in memory")
		return nil, nil
	}

	pgx, err := pgxpool.New(context.Background(), opts.Config.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	opts.LC.Append(
		fx.Hook{
			OnStop: func(ctx context.Context) error {
				pgx.Close()
				return nil
			},
			OnStart: func(ctx context.Context) error {
				if err := pgx.Ping(ctx); err != nil {
					return fmt.Errorf("failed to ping postgres: %w", err)
				}

				opts.Logger.Info("Connected to postgres")
				return nil
			},
		},
	)

	return pgx, nil
}
