package uploads

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Module("uploads_repository",
	fx.Provide(New),
)

// New stores uploads in Postgres when a pool is available and in memory otherwise.
func New(pg *pgxpool.Pool, logger logger.Logger) Repository {
	if pg == nil {
		return NewMemory(logger)
	}
	return NewPgx(pg, logger)
}
