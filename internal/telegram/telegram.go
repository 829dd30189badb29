package telegram

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go
type Client interface {
	// Enabled reports whether a bot and channel are configured.
	Enabled() bool

	SendMessageToChannel(ctx context.Context, text string) error

	// SendPhotoToChannelByURL downloads the image at url and posts it with caption.
	SendPhotoToChannelByURL(ctx context.Context, url, caption string) error
}
