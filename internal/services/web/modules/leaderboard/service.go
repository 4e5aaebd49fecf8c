package leaderboard

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/louisbranch/xpboard/internal/auth/token"
	"github.com/louisbranch/xpboard/internal/leaderboard"
	"github.com/louisbranch/xpboard/internal/leaderboard/view"
	"github.com/louisbranch/xpboard/internal/platform/timeouts"
)

type service struct {
	gateway LeaderboardGateway
	machine view.Machine
	timeout time.Duration
}

func newService(gateway LeaderboardGateway, topSize int) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	if topSize < 1 {
		topSize = leaderboard.DefaultTopSize
	}
	return service{
		gateway: gateway,
		machine: view.Machine{TopSize: topSize},
		timeout: timeouts.Upstream,
	}
}

// activate runs one view activation for the provider's viewer and returns the
// settled state: Idle when nobody is signed in, otherwise Loaded or Failed.
func (s service) activate(ctx context.Context, provider token.Provider) view.State {
	subject := ""
	if provider != nil {
		identity, err := provider.Identity(ctx)
		switch {
		case err == nil:
			subject = identity.Subject
		case !errors.Is(err, token.ErrNotAuthenticated):
			log.Printf("leaderboard identity lookup failed err=%v", err)
		}
	}

	state, fetch := s.machine.Transition(view.State{}, view.IdentityResolved{Identity: subject})
	if fetch == nil {
		return state
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	snapshot, err := s.load(fetchCtx, provider)
	next, _ := s.machine.Transition(state, view.ResponseReceived{
		Seq:      fetch.Seq,
		Identity: fetch.Identity,
		Snapshot: snapshot,
		Err:      err,
	})
	return next
}

func (s service) load(ctx context.Context, provider token.Provider) (leaderboard.Snapshot, error) {
	bearer, err := provider.Token(ctx)
	if err != nil {
		return leaderboard.Snapshot{}, leaderboard.Wrap(leaderboard.KindNotAuthenticated, "resolve bearer token", err)
	}
	return s.gateway.FetchSnapshot(ctx, bearer)
}
