package authimpl

import (
	"slices"
	"sync"

	"github.com/orgball2608/photoshare-client/internal/auth"
	"github.com/orgball2608/photoshare-client/internal/domain"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Logger logger.Logger
}

// Provider is the in-process identity source. Notifications are delivered one at a
// time, in the order SignIn/SignOut were called.
type Provider struct {
	logger logger.Logger

	dispatch sync.Mutex

	mu      sync.Mutex
	current *domain.User
	subs    map[uint64]func(*domain.User)
	nextID  uint64
}

func New(opts Opts) *Provider {
	return &Provider{
		logger: opts.Logger.WithComponent("AuthSession"),
		subs:   make(map[uint64]func(*domain.User)),
	}
}

var _ auth.Session = (*Provider)(nil)

func (p *Provider) Current() *domain.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	return clone(p.current)
}

// Subscribe must not be called from inside a notification callback.
func (p *Provider) Subscribe(onChange func(*domain.User)) auth.Unsubscribe {
	p.dispatch.Lock()
	defer p.dispatch.Unlock()

	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = onChange
	current := clone(p.current)
	p.mu.Unlock()

	onChange(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
		})
	}
}

// SignIn replaces the current identity and notifies subscribers.
func (p *Provider) SignIn(user *domain.User) {
	p.publish(clone(user))
	if user != nil {
		p.logger.Info("Signed in", "uid", user.UID)
	}
}

func (p *Provider) SignOut() {
	p.publish(nil)
	p.logger.Info("Signed out")
}

// Subscribers returns the number of live subscriptions.
func (p *Provider) Subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}

func (p *Provider) publish(user *domain.User) {
	p.dispatch.Lock()
	defer p.dispatch.Unlock()

	p.mu.Lock()
	p.current = user
	ids := make([]uint64, 0, len(p.subs))
	for id := range p.subs {
		ids = append(ids, id)
	}
	p.mu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		p.mu.Lock()
		fn, ok := p.subs[id]
		p.mu.Unlock()
		if !ok {
			continue
		}
		fn(clone(user))
	}
}

func clone(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
