package command

import (
	"context"
	"io"
)

type Client interface {
	// Run reads commands from in and writes the view to out until quit, EOF or ctx ends.
	Run(ctx context.Context, in io.Reader, out io.Writer) error
}
