package commandimpl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/orgball2608/photoshare-client/internal/auth"
	"github.com/orgball2608/photoshare-client/internal/command"
	"github.com/orgball2608/photoshare-client/internal/detail"
	"github.com/orgball2608/photoshare-client/internal/gallery"
	"github.com/orgball2608/photoshare-client/internal/layout"
	"github.com/orgball2608/photoshare-client/internal/photoapi"
	"github.com/orgball2608/photoshare-client/internal/upload"
	"github.com/orgball2608/photoshare-client/pkg/config"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	API      photoapi.Client
	Session  auth.Session
	Verifier auth.Verifier
	Modal    *upload.Modal
	Gallery  *gallery.Gallery
	Layout   *layout.Calculator
	Viewport layout.Viewport
	Logger   logger.Logger
	Config   *config.Config
}

type CommandImpl struct {
	API      photoapi.Client
	Session  auth.Session
	Verifier auth.Verifier
	Modal    *upload.Modal
	Gallery  *gallery.Gallery
	Layout   *layout.Calculator
	Viewport layout.Viewport
	Logger   logger.Logger
	Config   *config.Config

	out  *console
	page *detail.Page
}

func New(opts Opts) *CommandImpl {
	return &CommandImpl{
		API:      opts.API,
		Session:  opts.Session,
		Verifier: opts.Verifier,
		Modal:    opts.Modal,
		Gallery:  opts.Gallery,
		Layout:   opts.Layout,
		Viewport: opts.Viewport,
		Logger:   opts.Logger.WithComponent("Shell"),
		Config:   opts.Config,
	}
}

var _ command.Client = (*CommandImpl)(nil)

// console serializes writes from the command loop and from modal callbacks.
type console struct {
	mu sync.Mutex
	w  io.Writer
}

func (c *console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, format, args...)
}

func (c *console) println(s string) {
	c.printf("%s\n", s)
}

func (c *CommandImpl) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	c.out = &console{w: out}

	c.Layout.Mount(c.Viewport)
	defer c.Layout.Unmount()
	defer c.closePage()
	defer c.Modal.Close()

	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			c.Logger.Error("Failed to read input", "error", err)
		}
	}()

	c.out.println("photoshare. Type 'help' for commands.")
	for {
		c.out.printf("> ")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := c.handle(ctx, line); quit {
				return nil
			}
		}
	}
}

// handle runs one command line and reports whether the shell should exit.
func (c *CommandImpl) handle(ctx context.Context, line string) bool {
	name, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	args = strings.TrimSpace(args)

	switch strings.ToLower(name) {
	case "":
	case "login":
		c.handleLogin(ctx, args)
	case "logout":
		c.handleLogout()
	case "whoami":
		c.handleWhoami()
	case "upload":
		c.handleUpload(ctx)
	case "select":
		c.handleSelect(ctx, args)
	case "post":
		c.handlePost(ctx)
	case "cancel":
		c.handleCancel()
	case "open":
		c.handleOpen(ctx, args)
	case "comment":
		c.handleComment(ctx, args)
	case "feed":
		c.handleFeed(ctx)
	case "help":
		c.out.println(helpText)
	case "quit", "exit":
		return true
	default:
		c.out.printf("Unknown command %q. Type 'help' for commands.\n", name)
	}
	return false
}

const helpText = `Commands:
  login <idToken>   sign in with an identity-provider ID token
  logout            sign out
  whoami            show the signed-in user
  upload            open the upload dialog
  select <path>     choose the image to upload
  post              upload the chosen image
  cancel            close the upload dialog
  open <photoId>    show a photo with its comments
  comment <text>    comment on the photo on screen
  feed              list recent uploads from this client
  quit              exit`
