package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/orgball2608/photoshare-client/internal/domain"
	perrors "github.com/orgball2608/photoshare-client/pkg/errors"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"github.com/spf13/afero"
)

var (
	// ErrSuperseded is returned to a SelectFile call whose read was overtaken by
	// a newer selection or by Destroy.
	ErrSuperseded = errors.New("file selection superseded")
)

const readChunk = 32 * 1024

// Component turns a selected file into the modal's UploadSession and a preview.
// At most one read is in flight; starting another cancels it.
type Component struct {
	fs         afero.Fs
	previewDir string
	logger     logger.Logger

	mu         sync.Mutex
	session    *domain.UploadSession
	preview    *Preview
	cancelRead context.CancelFunc
	generation uint64
	destroyed  bool
}

func New(fs afero.Fs, previewDir string, log logger.Logger) *Component {
	return &Component{
		fs:         fs,
		previewDir: previewDir,
		logger:     log.WithComponent("ImageCapture"),
	}
}

type readResult struct {
	dataURL string
	err     error
}

// SelectFile reads path, decodes it through its data URL form and stores the
// result as the current session. An empty path is a no-op. On any failure the
// previous session is kept.
func (c *Component) SelectFile(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return ErrSuperseded
	}
	if c.cancelRead != nil {
		c.cancelRead()
	}
	c.generation++
	gen := c.generation
	readCtx, cancel := context.WithCancel(ctx)
	c.cancelRead = cancel
	c.mu.Unlock()
	defer cancel()

	results := make(chan readResult, 1)
	go func() {
		dataURL, err := c.readAsDataURL(readCtx, path)
		results <- readResult{dataURL: dataURL, err: err}
	}()

	var res readResult
	select {
	case <-readCtx.Done():
		res.err = readCtx.Err()
	case res = <-results:
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || c.destroyed {
		c.logger.Debug("Dropping stale file read", "path", path)
		return ErrSuperseded
	}
	c.cancelRead = nil

	if res.err != nil {
		return res.err
	}

	data, mimeType, err := DecodeDataURL(res.dataURL)
	if err != nil {
		c.logger.Warn("Captured file could not be decoded", "path", path, "error", err)
		return err
	}
	if len(data) == 0 {
		c.logger.Warn("Captured file is empty", "path", path)
		return perrors.Validation("selected file is empty")
	}

	preview, err := newPreview(c.fs, c.previewDir, data, mimeType)
	if err != nil {
		c.logger.Warn("Failed to create preview", "path", path, "error", err)
	}

	c.releasePreview()
	c.session = &domain.UploadSession{Bytes: data, MIMEType: mimeType}
	c.preview = preview

	c.logger.Info("Image captured", "path", path, "bytes", len(data), "mime", mimeType)
	return nil
}

// Session returns the captured image, or nil before any successful selection.
func (c *Component) Session() *domain.UploadSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

func (c *Component) Preview() *Preview {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preview
}

// Destroy cancels a pending read, releases the preview and drops the session.
// The component cannot be used afterwards.
func (c *Component) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelRead != nil {
		c.cancelRead()
		c.cancelRead = nil
	}
	c.releasePreview()
	c.session = nil
	c.destroyed = true
}

func (c *Component) releasePreview() {
	if err := c.preview.Release(); err != nil {
		c.logger.Warn("Failed to release preview", "path", c.preview.Path(), "error", err)
	}
	c.preview = nil
}

func (c *Component) readAsDataURL(ctx context.Context, path string) (string, error) {
	f, err := c.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var data []byte
	buf := make([]byte, readChunk)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, err := f.Read(buf)
		data = append(data, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	return EncodeDataURL(data, detectMIME(path, data)), nil
}

func detectMIME(path string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}
