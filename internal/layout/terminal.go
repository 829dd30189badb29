package layout

import (
	"context"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/orgball2608/photoshare-client/pkg/config"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"go.uber.org/fx"
	"golang.org/x/term"
)

type TerminalOpts struct {
	fx.In
	LC fx.Lifecycle

	Config *config.Config
	Logger logger.Logger
}

// Terminal is the Viewport of the controlling terminal. Resize events come
// from the window-change signal where the platform has one.
type Terminal struct {
	fd       int
	fallback int
	logger   logger.Logger

	mu       sync.Mutex
	handlers map[uint64]func(int)
	nextID   uint64

	signals chan os.Signal
	done    chan struct{}
}

var _ Viewport = (*Terminal)(nil)

func NewTerminal(opts TerminalOpts) *Terminal {
	t := &Terminal{
		fd:       int(os.Stdout.Fd()),
		fallback: opts.Config.Layout.FallbackWidth,
		logger:   opts.Logger.WithComponent("Terminal"),
		handlers: make(map[uint64]func(int)),
		signals:  make(chan os.Signal, 1),
		done:     make(chan struct{}),
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			notifyResize(t.signals)
			go t.loop()
			return nil
		},
		OnStop: func(context.Context) error {
			stopResize(t.signals)
			close(t.done)
			return nil
		},
	})

	return t
}

// Width is the terminal's column count, or the configured fallback when stdout
// is not a terminal.
func (t *Terminal) Width() int {
	w, _, err := term.GetSize(t.fd)
	if err != nil || w <= 0 {
		return t.fallback
	}
	return w
}

func (t *Terminal) OnResize(fn func(int)) func() {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.handlers[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.handlers, id)
		t.mu.Unlock()
	}
}

func (t *Terminal) Handlers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.handlers)
}

func (t *Terminal) loop() {
	for {
		select {
		case <-t.signals:
			t.emit(t.Width())
		case <-t.done:
			return
		}
	}
}

func (t *Terminal) emit(width int) {
	t.mu.Lock()
	keys := slices.Sorted(maps.Keys(t.handlers))
	handlers := make([]func(int), 0, len(keys))
	for _, k := range keys {
		handlers = append(handlers, t.handlers[k])
	}
	t.mu.Unlock()

	t.logger.Debug("Terminal resized", "width", width)
	for _, fn := range handlers {
		fn(width)
	}
}
