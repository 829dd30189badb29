package component

import (
	"context"
	"errors"
	"sync"
)

// ErrUnmounted marks a result that arrived after its component was torn down.
var ErrUnmounted = errors.New("component unmounted")

// Scope is the lifetime of one mounted component. Requests issued by the
// component run under Context(); Close cancels them and runs registered cleanups
// in reverse order. Results that arrive after Close must be dropped.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	cleanups []func()
	closed   bool
}

func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

func (s *Scope) Context() context.Context {
	return s.ctx
}

// Bind derives a request context that is cancelled when either ctx or the scope ends.
func (s *Scope) Bind(ctx context.Context) (context.Context, context.CancelFunc) {
	bound, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)
	return bound, func() {
		stop()
		cancel()
	}
}

// Defer registers fn to run on Close. On a closed scope fn runs immediately.
func (s *Scope) Defer(fn func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
	s.mu.Unlock()
}

func (s *Scope) Alive() bool {
	return s.ctx.Err() == nil
}

func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	s.cancel()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
