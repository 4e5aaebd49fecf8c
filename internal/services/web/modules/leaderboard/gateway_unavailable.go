package leaderboard

import (
	"context"

	"github.com/louisbranch/xpboard/internal/leaderboard"
)

type unavailableGateway struct{}

func (unavailableGateway) FetchSnapshot(context.Context, string) (leaderboard.Snapshot, error) {
	return leaderboard.Snapshot{}, leaderboard.E(leaderboard.KindNetworkFailure, "leaderboard service is not configured")
}
