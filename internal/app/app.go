package app

import (
	"context"
	"errors"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/photoshare-client/internal/auth"
	"github.com/orgball2608/photoshare-client/internal/auth/authimpl"
	"github.com/orgball2608/photoshare-client/internal/command"
	"github.com/orgball2608/photoshare-client/internal/command/commandimpl"
	"github.com/orgball2608/photoshare-client/internal/db"
	"github.com/orgball2608/photoshare-client/internal/gallery"
	"github.com/orgball2608/photoshare-client/internal/layout"
	"github.com/orgball2608/photoshare-client/internal/photoapi"
	"github.com/orgball2608/photoshare-client/internal/photoapi/photoapiimpl"
	"github.com/orgball2608/photoshare-client/internal/pgx"
	repositories "github.com/orgball2608/photoshare-client/internal/repositories/fx"
	"github.com/orgball2608/photoshare-client/internal/telegram"
	"github.com/orgball2608/photoshare-client/internal/telegram/telegramimpl"
	"github.com/orgball2608/photoshare-client/internal/upload"
	"github.com/orgball2608/photoshare-client/pkg/config"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"github.com/spf13/afero"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
		afero.NewOsFs,
		clockwork.NewRealClock,
	),
	fx.Provide(
		fx.Annotate(
			photoapiimpl.New,
			fx.As(new(photoapi.Client)),
		),
		authimpl.New,
		func(p *authimpl.Provider) auth.Session {
			return p
		},
		fx.Annotate(
			authimpl.NewFirebaseVerifier,
			fx.As(new(auth.Verifier)),
		),
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		),
		fx.Annotate(
			layout.NewTerminal,
			fx.As(new(layout.Viewport)),
		),
		layout.NewCalculator,
		upload.New,
		gallery.New,
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
	),
	repositories.Module,
	fx.Invoke(migrate),
	fx.Invoke(run),
)

func migrate(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return db.Migrate(ctx, cfg, log.WithComponent("Migrations"))
		},
	})
}

// run drives the shell on the process terminal and stops the app when it exits.
func run(lc fx.Lifecycle, shutdowner fx.Shutdowner, shell command.Client, log logger.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)

				err := shell.Run(ctx, os.Stdin, os.Stdout)
				if err != nil && !errors.Is(err, context.Canceled) {
					log.Error("Shell stopped", "error", err)
				}

				if err := shutdowner.Shutdown(); err != nil {
					log.Error("Failed to request shutdown", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
