package leaderboard

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/louisbranch/xpboard/internal/leaderboard"
	"github.com/louisbranch/xpboard/internal/platform/requestctx"
	"github.com/louisbranch/xpboard/internal/services/web/platform/authn"
)

// fakeGateway implements LeaderboardGateway for tests with configurable
// return values and call tracking.
type fakeGateway struct {
	mu       sync.Mutex
	snapshot leaderboard.Snapshot
	err      error
	bearers  []string
}

func (f *fakeGateway) FetchSnapshot(_ context.Context, bearer string) (leaderboard.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bearers = append(f.bearers, bearer)
	if f.err != nil {
		return leaderboard.Snapshot{}, f.err
	}
	return f.snapshot, nil
}

func (f *fakeGateway) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.bearers))
	copy(out, f.bearers)
	return out
}

func snapshotFor(viewerID string, viewerScore int64, viewerRank int) leaderboard.Snapshot {
	top := make([]leaderboard.Player, 0, leaderboard.DefaultTopSize)
	for i := 0; i < leaderboard.DefaultTopSize; i++ {
		top = append(top, leaderboard.Player{
			ID:          fmt.Sprintf("user_%02d", i),
			DisplayName: fmt.Sprintf("player%02d", i),
			Score:       int64(5000 - i*100),
		})
	}
	viewer := leaderboard.Viewer{Player: leaderboard.Player{ID: viewerID, DisplayName: "viewer", Score: viewerScore}, Rank: viewerRank}
	if viewerRank >= 1 && viewerRank <= len(top) {
		viewer.Player = top[viewerRank-1]
	}
	return leaderboard.Snapshot{Top: top, Viewer: viewer}
}

func newTestHandler(gateway LeaderboardGateway) http.Handler {
	mount, err := NewWithGateway(gateway, Config{ResolveViewer: authn.ResolveViewer}).Mount()
	if err != nil {
		panic(err)
	}
	return mount.Handler
}

func signedInRequest(method, target, userID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if userID == "" {
		return req
	}
	return req.WithContext(requestctx.WithViewer(req.Context(), userID, "Viewer "+userID, "tok-"+userID))
}
