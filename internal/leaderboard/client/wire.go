package client

import (
	"fmt"
	"strings"

	"github.com/louisbranch/xpboard/internal/leaderboard"
)

// wirePlayer mirrors one entry of the API's "top25" list. Pointer fields
// distinguish a missing value from a zero value.
type wirePlayer struct {
	ClerkID  *string `json:"clerkId"`
	Username *string `json:"username"`
	XP       *int64  `json:"xp"`
}

type wireViewer struct {
	wirePlayer
	Rank *int `json:"rank"`
}

type wireSnapshot struct {
	Top         *[]wirePlayer `json:"top25"`
	CurrentUser *wireViewer   `json:"currentUser"`
}

func (w wireSnapshot) snapshot() (leaderboard.Snapshot, error) {
	if w.Top == nil {
		return leaderboard.Snapshot{}, leaderboard.E(leaderboard.KindBadResponse, "response is missing top25")
	}
	if w.CurrentUser == nil {
		return leaderboard.Snapshot{}, leaderboard.E(leaderboard.KindBadResponse, "response is missing currentUser")
	}
	top := make([]leaderboard.Player, 0, len(*w.Top))
	for idx, entry := range *w.Top {
		player, ok := entry.player()
		if !ok {
			return leaderboard.Snapshot{}, leaderboard.E(leaderboard.KindBadResponse, fmt.Sprintf("top25 entry %d is incomplete", idx+1))
		}
		top = append(top, player)
	}
	viewer, ok := w.CurrentUser.player()
	if !ok || w.CurrentUser.Rank == nil {
		return leaderboard.Snapshot{}, leaderboard.E(leaderboard.KindBadResponse, "currentUser is incomplete")
	}
	return leaderboard.Snapshot{
		Top:    top,
		Viewer: leaderboard.Viewer{Player: viewer, Rank: *w.CurrentUser.Rank},
	}, nil
}

func (w wirePlayer) player() (leaderboard.Player, bool) {
	if w.ClerkID == nil || strings.TrimSpace(*w.ClerkID) == "" || w.XP == nil {
		return leaderboard.Player{}, false
	}
	name := ""
	if w.Username != nil {
		name = strings.TrimSpace(*w.Username)
	}
	return leaderboard.Player{ID: *w.ClerkID, DisplayName: name, Score: *w.XP}, true
}
