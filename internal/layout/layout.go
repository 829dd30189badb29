package layout

import (
	"math"
	"sync"

	"github.com/orgball2608/photoshare-client/internal/domain"
	"github.com/orgball2608/photoshare-client/pkg/config"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"go.uber.org/fx"
)

// Viewport reports its width and resize events.
type Viewport interface {
	Width() int
	// OnResize registers fn for resize events and returns its deregistration.
	OnResize(fn func(width int)) (remove func())
}

// Frame is the box the detail page draws the image in.
type Frame struct {
	// WidthPercent is 100 times the photo's aspect ratio.
	WidthPercent float64
	// Columns is WidthPercent applied to the display width, at least 1 and at
	// most the display width.
	Columns   int
	Height    int
	TextWidth int
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// Calculator tracks the display width of one mounted view.
type Calculator struct {
	imageHeight int
	logger      logger.Logger

	mu     sync.Mutex
	width  int
	remove func()
}

func NewCalculator(opts Opts) *Calculator {
	return &Calculator{
		imageHeight: opts.Config.Layout.ImageHeight,
		logger:      opts.Logger.WithComponent("Layout"),
	}
}

// Mount measures v and follows its resize events until Unmount. Mounting again
// replaces the previous registration.
func (c *Calculator) Mount(v Viewport) {
	c.Unmount()

	remove := v.OnResize(c.setWidth)
	width := v.Width()

	c.mu.Lock()
	c.width = width
	c.remove = remove
	c.mu.Unlock()

	c.logger.Debug("Layout mounted", "width", width)
}

func (c *Calculator) Unmount() {
	c.mu.Lock()
	remove := c.remove
	c.remove = nil
	c.mu.Unlock()

	if remove != nil {
		remove()
	}
}

func (c *Calculator) setWidth(width int) {
	c.mu.Lock()
	c.width = width
	c.mu.Unlock()
}

func (c *Calculator) DisplayWidth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width
}

func (c *Calculator) Frame(photo *domain.Photo) Frame {
	width := c.DisplayWidth()
	aspect := 1.0
	if photo != nil {
		aspect = photo.AspectRatio()
	}

	percent := 100 * aspect
	columns := int(math.Round(float64(width) * aspect))
	columns = max(1, min(columns, width))

	return Frame{
		WidthPercent: percent,
		Columns:      columns,
		Height:       c.imageHeight,
		TextWidth:    width,
	}
}
