package telegramimpl

import (
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/photoshare-client/internal/telegram"
	"github.com/orgball2608/photoshare-client/pkg/config"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"go.uber.org/fx"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	bot     sender
	channel string
	http    *http.Client
	logger  logger.Logger
}

var _ telegram.Client = (*TelegramImpl)(nil)

// New connects the announcement bot. Without a token or channel it returns a
// client that drops every message.
func New(opts Opts) (*TelegramImpl, error) {
	log := opts.Logger.WithComponent("Telegram")
	tg := &TelegramImpl{
		channel: opts.Config.Telegram.Channel,
		http:    &http.Client{},
		logger:  log,
	}

	if opts.Config.Telegram.BotToken == "" || tg.channel == "" {
		log.Info("Telegram announcements disabled")
		return tg, nil
	}

	bot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.BotToken)
	if err != nil {
		log.Error("Error creating bot", "error", err)
		return nil, err
	}
	tg.bot = bot

	return tg, nil
}

func (tg *TelegramImpl) Enabled() bool {
	return tg.bot != nil
}

func (tg *TelegramImpl) channelName() string {
	return "@" + tg.channel
}
