package view

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/xpboard/internal/auth/token"
	"github.com/louisbranch/xpboard/internal/leaderboard"
)

type fakeProvider struct {
	mu       sync.Mutex
	identity string
	tokenErr error
}

func (f *fakeProvider) set(identity string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.identity = identity
}

func (f *fakeProvider) Identity(context.Context) (token.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.identity == "" {
		return token.Identity{}, token.ErrNotAuthenticated
	}
	return token.Identity{Subject: f.identity}, nil
}

func (f *fakeProvider) Token(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	if f.identity == "" {
		return "", token.ErrNotAuthenticated
	}
	return "tok-" + f.identity, nil
}

// fakeFetcher answers with a snapshot for the bearer's user. Bearers listed
// in hold block until their fetch context is canceled. A non-nil gate delays
// every answer until it is closed.
type fakeFetcher struct {
	mu    sync.Mutex
	calls []string
	hold  map[string]bool
	gate  chan struct{}
	err   error
}

func (f *fakeFetcher) FetchSnapshot(ctx context.Context, bearer string) (leaderboard.Snapshot, error) {
	f.mu.Lock()
	f.calls = append(f.calls, bearer)
	held := f.hold[bearer]
	gate := f.gate
	err := f.err
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return leaderboard.Snapshot{}, leaderboard.Wrap(leaderboard.KindNetworkFailure, "canceled", ctx.Err())
		}
	}

	if held {
		<-ctx.Done()
		return leaderboard.Snapshot{}, leaderboard.Wrap(leaderboard.KindNetworkFailure, "canceled", ctx.Err())
	}
	if err != nil {
		return leaderboard.Snapshot{}, err
	}
	return sampleSnapshot(bearer[len("tok-"):]), nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type stateRecorder struct {
	ch chan State
}

func newStateRecorder() *stateRecorder {
	return &stateRecorder{ch: make(chan State, 64)}
}

func (r *stateRecorder) observe(s State) {
	r.ch <- s
}

// waitFor returns the first observed state matching match, failing on timeout.
// Every state observed before the match is returned too.
func (r *stateRecorder) waitFor(t *testing.T, match func(State) bool) (State, []State) {
	t.Helper()
	var seen []State
	timeout := time.After(2 * time.Second)
	for {
		select {
		case s := <-r.ch:
			seen = append(seen, s)
			if match(s) {
				return s, seen
			}
		case <-timeout:
			t.Fatalf("timed out waiting for state; observed %d states", len(seen))
			return State{}, seen
		}
	}
}

func startController(t *testing.T, c *Controller) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return ctx
}
