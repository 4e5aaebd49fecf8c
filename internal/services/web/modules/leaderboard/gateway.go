package leaderboard

import (
	"context"

	"github.com/louisbranch/xpboard/internal/leaderboard"
)

// LeaderboardGateway loads a snapshot with the viewer's bearer token.
type LeaderboardGateway interface {
	FetchSnapshot(ctx context.Context, bearer string) (leaderboard.Snapshot, error)
}

// NewHTTPGateway returns fetcher as the module gateway, or the unavailable
// gateway when fetcher is nil.
func NewHTTPGateway(fetcher LeaderboardGateway) LeaderboardGateway {
	if fetcher == nil {
		return unavailableGateway{}
	}
	return fetcher
}
