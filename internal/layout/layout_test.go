package layout

import (
	"sync"
	"testing"

	"github.com/orgball2608/photoshare-client/internal/domain"
	"github.com/orgball2608/photoshare-client/pkg/config"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeViewport struct {
	mu       sync.Mutex
	width    int
	handlers map[int]func(int)
	next     int
}

func newFakeViewport(width int) *fakeViewport {
	return &fakeViewport{width: width, handlers: map[int]func(int){}}
}

func (v *fakeViewport) Width() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width
}

func (v *fakeViewport) OnResize(fn func(int)) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.next
	v.next++
	v.handlers[id] = fn
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.handlers, id)
	}
}

func (v *fakeViewport) resize(width int) {
	v.mu.Lock()
	v.width = width
	handlers := make([]func(int), 0, len(v.handlers))
	for _, fn := range v.handlers {
		handlers = append(handlers, fn)
	}
	v.mu.Unlock()
	for _, fn := range handlers {
		fn(width)
	}
}

func (v *fakeViewport) count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.handlers)
}

func newCalculator() *Calculator {
	cfg := &config.Config{}
	cfg.Layout.ImageHeight = 300
	return NewCalculator(Opts{Config: cfg, Logger: logger.Nop()})
}

func TestCalculator_MountMeasures(t *testing.T) {
	c := newCalculator()
	v := newFakeViewport(120)

	c.Mount(v)
	defer c.Unmount()

	assert.Equal(t, 120, c.DisplayWidth())
	assert.Equal(t, 1, v.count())
}

func TestCalculator_ResizeIsIdempotent(t *testing.T) {
	c := newCalculator()
	v := newFakeViewport(100)
	c.Mount(v)
	defer c.Unmount()

	v.resize(80)
	assert.Equal(t, 80, c.DisplayWidth())

	v.resize(80)
	v.resize(80)
	assert.Equal(t, 80, c.DisplayWidth())
}

func TestCalculator_RemountDoesNotAccumulate(t *testing.T) {
	c := newCalculator()
	v := newFakeViewport(100)

	for range 5 {
		c.Mount(v)
	}
	assert.Equal(t, 1, v.count())

	c.Unmount()
	c.Unmount()
	assert.Zero(t, v.count())

	v.resize(40)
	assert.Equal(t, 100, c.DisplayWidth())
}

func TestCalculator_MountOtherViewport(t *testing.T) {
	c := newCalculator()
	first, second := newFakeViewport(100), newFakeViewport(60)

	c.Mount(first)
	c.Mount(second)
	defer c.Unmount()

	assert.Zero(t, first.count())
	assert.Equal(t, 1, second.count())
	assert.Equal(t, 60, c.DisplayWidth())

	first.resize(10)
	assert.Equal(t, 60, c.DisplayWidth())
}

func TestCalculator_Frame(t *testing.T) {
	c := newCalculator()
	c.Mount(newFakeViewport(100))
	defer c.Unmount()

	tests := []struct {
		name    string
		photo   *domain.Photo
		percent float64
		columns int
	}{
		{"landscape", &domain.Photo{Width: 200, Height: 100}, 50, 50},
		{"square", &domain.Photo{Width: 100, Height: 100}, 100, 100},
		{"tall clamps to width", &domain.Photo{Width: 100, Height: 300}, 300, 100},
		{"missing dimensions", &domain.Photo{}, 100, 100},
		{"no photo", nil, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := c.Frame(tt.photo)
			require.InDelta(t, tt.percent, f.WidthPercent, 0.001)
			assert.Equal(t, tt.columns, f.Columns)
			assert.Equal(t, 300, f.Height)
			assert.Equal(t, 100, f.TextWidth)
		})
	}
}
