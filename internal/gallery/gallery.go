package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/photoshare-client/internal/domain"
	"github.com/orgball2608/photoshare-client/internal/ratelimit"
	"github.com/orgball2608/photoshare-client/internal/repositories/uploads"
	"github.com/orgball2608/photoshare-client/internal/telegram"
	"github.com/orgball2608/photoshare-client/pkg/config"
	"github.com/orgball2608/photoshare-client/pkg/formatter"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Repo     uploads.Repository
	Telegram telegram.Client
	Clock    clockwork.Clock
	Config   *config.Config
	Logger   logger.Logger
}

// Gallery is the feed that owns the upload modal: it keeps a record of every
// photo uploaded from this client and announces new ones.
type Gallery struct {
	repo      uploads.Repository
	telegram  telegram.Client
	clock     clockwork.Clock
	retention time.Duration
	logger    logger.Logger
	scheduler gocron.Scheduler
	limiter   ratelimit.Limiter
}

func New(opts Opts) (*Gallery, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithClock(opts.Clock))
	if err != nil {
		return nil, fmt.Errorf("failed to create cleanup scheduler: %w", err)
	}

	limiter := ratelimit.NewInMemoryLimiter(1, opts.Config.Telegram.AnnounceEvery, max(opts.Config.Telegram.AnnounceBurst, 1))

	g := &Gallery{
		repo:      opts.Repo,
		telegram:  opts.Telegram,
		clock:     opts.Clock,
		retention: opts.Config.Gallery.Retention,
		logger:    opts.Logger.WithComponent("Gallery"),
		scheduler: scheduler,
		limiter:   limiter,
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return g.ScheduleCleanup()
		},
		OnStop: func(context.Context) error {
			return g.scheduler.Shutdown()
		},
	})

	return g, nil
}

// OnUploaded records photo and announces it. A photo already recorded is not
// announced again. Announcement failures are logged only.
func (g *Gallery) OnUploaded(ctx context.Context, photo domain.Photo) error {
	record := domain.UploadRecord{
		PhotoID:    photo.ID,
		FileURL:    photo.FileURL,
		UploadedAt: g.clock.Now(),
	}
	if photo.User != nil {
		record.UserID = photo.User.UID
	}

	saved, err := g.repo.Create(ctx, record)
	if errors.Is(err, uploads.ErrAlreadyExists) {
		g.logger.Info("Upload already recorded", "photo_id", photo.ID)
		return nil
	}
	if err != nil {
		g.logger.Error("Failed to record upload", "photo_id", photo.ID, "error", err)
		return fmt.Errorf("failed to record upload: %w", err)
	}
	g.logger.Info("Upload recorded", "photo_id", photo.ID, "id", saved.ID)

	g.announce(ctx, photo)
	return nil
}

func (g *Gallery) announce(ctx context.Context, photo domain.Photo) {
	if !g.telegram.Enabled() {
		return
	}
	uploader := ""
	if photo.User != nil {
		uploader = photo.User.UID
	}
	if !g.limiter.Allow(uploader) {
		g.logger.Info("Announcement skipped, uploader over limit", "photo_id", photo.ID, "uid", uploader)
		return
	}

	caption := Caption(photo)
	var err error
	if photo.FileURL != "" {
		err = g.telegram.SendPhotoToChannelByURL(ctx, photo.FileURL, caption)
	} else {
		err = g.telegram.SendMessageToChannel(ctx, caption)
	}
	if err != nil {
		g.logger.Warn("Failed to announce upload", "photo_id", photo.ID, "error", err)
	}
}

// Caption is the MarkdownV2 announcement text for photo.
func Caption(photo domain.Photo) string {
	author := "Anonymous"
	if photo.User != nil && photo.User.DisplayName != "" {
		author = photo.User.DisplayName
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "*New photo* by %s", formatter.EscapeMarkdownV2(author))
	if photo.CameraModel != "" {
		fmt.Fprintf(&sb, "\n%s", formatter.EscapeMarkdownV2(photo.CameraModel))
	}
	if photo.ISO > 0 {
		fmt.Fprintf(&sb, "\nISO %s", formatter.FormatNumber(photo.ISO))
	}
	fmt.Fprintf(&sb, "\n`%s`", formatter.EscapeMarkdownV2(photo.ID))
	return sb.String()
}

// Recent lists the latest recorded uploads, newest first.
func (g *Gallery) Recent(ctx context.Context, n int) ([]*domain.UploadRecord, error) {
	return g.repo.Latest(ctx, n)
}

// Cleanup drops records older than the retention period.
func (g *Gallery) Cleanup(ctx context.Context) (int64, error) {
	return g.repo.CleanupOldRecords(ctx, g.clock.Now().Add(-g.retention))
}

// ScheduleCleanup runs Cleanup every day at 3:00 AM.
func (g *Gallery) ScheduleCleanup() error {
	_, err := g.scheduler.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0)),
		),
		gocron.NewTask(func() {
			g.logger.Info("Starting scheduled upload cleanup job")

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			deleted, err := g.Cleanup(ctx)
			if err != nil {
				g.logger.Error("Failed to clean up old uploads", "error", err)
				return
			}
			g.logger.Info("Upload cleanup completed", "rows_deleted", deleted)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule upload cleanup: %w", err)
	}

	g.scheduler.Start()
	return nil
}

// Jobs is the number of scheduled jobs.
func (g *Gallery) Jobs() int {
	return len(g.scheduler.Jobs())
}
