package capture

import (
	"mime"
	"sync"

	"github.com/spf13/afero"
)

// Preview is a renderable handle on the captured image: a temporary file the
// view can display. It must be released once superseded.
type Preview struct {
	fs   afero.Fs
	path string
	once sync.Once
}

func newPreview(fs afero.Fs, dir string, data []byte, mimeType string) (*Preview, error) {
	pattern := "preview-*"
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		pattern += exts[0]
	}

	f, err := afero.TempFile(fs, dir, pattern)
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = fs.Remove(f.Name())
		return nil, err
	}
	if err := f.Close(); err != nil {
		_ = fs.Remove(f.Name())
		return nil, err
	}
	return &Preview{fs: fs, path: f.Name()}, nil
}

func (p *Preview) Path() string {
	if p == nil {
		return ""
	}
	return p.path
}

// Release deletes the backing file. Safe to call more than once.
func (p *Preview) Release() error {
	if p == nil {
		return nil
	}
	var err error
	p.once.Do(func() {
		err = p.fs.Remove(p.path)
	})
	return err
}
