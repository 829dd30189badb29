package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	API struct {
		BaseURL string `env:"API_BASE" env-default:"http://localhost:8080"`
	}
	Firebase struct {
		CredentialsFile string `env:"FIREBASE_CREDENTIALS"`
		ProjectID       string `env:"FIREBASE_PROJECT_ID"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Telegram struct {
		BotToken      string        `env:"TELEGRAM_TOKEN"`
		Channel       string        `env:"TELEGRAM_CHANNEL"`
		// Announcements per uploader are limited to one per AnnounceEvery, bursting to AnnounceBurst.
		AnnounceEvery time.Duration `env:"TELEGRAM_ANNOUNCE_EVERY" env-default:"1m"`
		AnnounceBurst int           `env:"TELEGRAM_ANNOUNCE_BURST" env-default:"3"`
	}
	Upload struct {
		ExitAnimation time.Duration `env:"UPLOAD_EXIT_ANIMATION" env-default:"300ms"`
		PreviewDir    string        `env:"UPLOAD_PREVIEW_DIR"`
	}
	Layout struct {
		FallbackWidth int `env:"LAYOUT_FALLBACK_WIDTH" env-default:"80"`
		ImageHeight   int `env:"LAYOUT_IMAGE_HEIGHT" env-default:"300"`
	}
	Gallery struct {
		Retention time.Duration `env:"GALLERY_RETENTION" env-default:"720h"`
	}
}

// PostgresEnabled reports whether an uploads database is configured.
func (c *Config) PostgresEnabled() bool {
	return c.Postgres.Host != ""
}

// GetDSN returns the connection string for the uploads database.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}

var (
	once    sync.Once
	cfg     *Config
	loadErr error
)

func New() (*Config, error) {
	once.Do(func() {
		c := &Config{}
		if err := cleanenv.ReadEnv(c); err != nil {
			help, _ := cleanenv.GetDescription(c, nil)
			loadErr = fmt.Errorf("failed to read configuration: %w\n%s", err, help)
			return
		}
		cfg = c
	})
	return cfg, loadErr
}
