package telegramimpl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/photoshare-client/pkg/logger"
)

var errEmptyImage = errors.New("empty image")

// SendMessageToChannel sends a MarkdownV2 text message to the configured channel
func (tg *TelegramImpl) SendMessageToChannel(ctx context.Context, text string) error {
	if !tg.Enabled() {
		return nil
	}

	msg := tgbotapi.NewMessageToChannel(tg.channelName(), text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	if _, err := tg.bot.Send(msg); err != nil {
		tg.logger.Error("Error sending message to channel", "channel", tg.channelName(), "error", err)
		return fmt.Errorf("failed to send message to channel: %w", err)
	}

	tg.logger.Info("Message sent to channel", "channel", tg.channelName())
	return nil
}

// SendPhotoToChannelByURL downloads an image and sends it to the channel
func (tg *TelegramImpl) SendPhotoToChannelByURL(ctx context.Context, url, caption string) error {
	if !tg.Enabled() {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := tg.http.Do(req)
	if err != nil {
		tg.logger.Error("Error downloading image", "url", url, "error", err)
		return fmt.Errorf("failed to download image: %w", err)
	}
	defer safeClose(resp.Body, tg.logger)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	media, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	if len(media) == 0 {
		return errEmptyImage
	}

	photo := tgbotapi.NewPhotoToChannel(tg.channelName(), tgbotapi.FileBytes{Name: "photo", Bytes: media})
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdownV2

	if _, err := tg.bot.Send(photo); err != nil {
		tg.logger.Error("Error sending photo to channel", "channel", tg.channelName(), "error", err)
		return fmt.Errorf("failed to send photo to channel: %w", err)
	}

	tg.logger.Info("Photo sent to channel", "channel", tg.channelName(), "url", url)
	return nil
}

// safeClose safely closes an io.ReadCloser and logs any errors
func safeClose(closer io.ReadCloser, logger logger.Logger) {
	if err := closer.Close(); err != nil {
		logger.Error("Error closing response body", "error", err)
	}
}
