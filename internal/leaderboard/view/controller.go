package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/louisbranch/xpboard/internal/auth/token"
	"github.com/louisbranch/xpboard/internal/leaderboard"
)

// Fetcher loads a leaderboard snapshot with a bearer token.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, bearer string) (leaderboard.Snapshot, error)
}

// Observer receives every state the controller enters. Observers run on the
// controller goroutine and must not block for long.
type Observer func(State)

// Option configures a Controller.
type Option func(*Controller)

// WithTopSize sets the expected top-N size.
func WithTopSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.machine.TopSize = n
		}
	}
}

// WithFetchTimeout bounds each fetch. Zero leaves fetches bounded only by the
// Run context.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.fetchTimeout = d
		}
	}
}

// WithObserver registers an observer.
func WithObserver(fn Observer) Option {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

// Controller runs one long-lived leaderboard view. A single goroutine (Run)
// owns the state; fetches report back through the event channel.
type Controller struct {
	machine   Machine
	fetcher   Fetcher
	provider  token.Provider
	observers []Observer
	events    chan Event

	fetchTimeout time.Duration

	mu           sync.RWMutex
	state        State
	lastIdentity string

	cancelFetch context.CancelFunc
}

// NewController builds a controller around a fetcher and a token provider.
func NewController(fetcher Fetcher, provider token.Provider, opts ...Option) *Controller {
	c := &Controller{
		machine:  Machine{TopSize: leaderboard.DefaultTopSize},
		fetcher:  fetcher,
		provider: provider,
		events:   make(chan Event, 8),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Run processes events until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if c.fetcher == nil {
		return errors.New("leaderboard fetcher is required")
	}
	if c.provider == nil {
		return errors.New("token provider is required")
	}
	defer func() {
		if c.cancelFetch != nil {
			c.cancelFetch()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-c.events:
			c.apply(ctx, ev)
		}
	}
}

// Activate resolves the viewer identity and dispatches it. When the identity
// is unchanged since the last activation the view is refreshed instead; a read
// still in flight for that viewer is kept rather than restarted. Identity lookup failures other
// than ErrNotAuthenticated are returned after the view has gone idle.
func (c *Controller) Activate(ctx context.Context) error {
	identity, err := c.provider.Identity(ctx)
	subject := identity.Subject
	if err != nil {
		subject = ""
	}

	c.mu.Lock()
	unchanged := subject != "" && subject == c.lastIdentity
	c.lastIdentity = subject
	c.mu.Unlock()

	var ev Event = IdentityResolved{Identity: subject}
	if unchanged {
		ev = Refresh{}
	}
	if sendErr := c.dispatch(ctx, ev); sendErr != nil {
		return sendErr
	}
	if err != nil && !errors.Is(err, token.ErrNotAuthenticated) {
		return err
	}
	return nil
}

func (c *Controller) refresh(ctx context.Context) error {
	return c.dispatch(ctx, Refresh{})
}

func (c *Controller) dispatch(ctx context.Context, ev Event) error {
	select {
	case c.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) apply(ctx context.Context, ev Event) {
	prev := c.State()
	next, fetch := c.machine.Transition(prev, ev)

	c.mu.Lock()
	c.state = next
	c.mu.Unlock()

	if next.Status == StatusIdle && c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
	if fetch != nil {
		c.startFetch(ctx, *fetch)
	}
	if changed(prev, next) {
		for _, observe := range c.observers {
			observe(next)
		}
	}
}

func (c *Controller) startFetch(ctx context.Context, f Fetch) {
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	var (
		fetchCtx context.Context
		cancel   context.CancelFunc
	)
	if c.fetchTimeout > 0 {
		fetchCtx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
	} else {
		fetchCtx, cancel = context.WithCancel(ctx)
	}
	c.cancelFetch = cancel
	go func() {
		snapshot, err := c.load(fetchCtx)
		_ = c.dispatch(ctx, ResponseReceived{
			Seq:      f.Seq,
			Identity: f.Identity,
			Snapshot: snapshot,
			Err:      err,
		})
	}()
}

func (c *Controller) load(ctx context.Context) (leaderboard.Snapshot, error) {
	bearer, err := c.provider.Token(ctx)
	if err != nil {
		return leaderboard.Snapshot{}, leaderboard.Wrap(leaderboard.KindNotAuthenticated, "resolve bearer token", err)
	}
	return c.fetcher.FetchSnapshot(ctx, bearer)
}

func changed(prev, next State) bool {
	return prev.Status != next.Status || prev.Seq != next.Seq || prev.Identity != next.Identity
}
