// Package leaderboard holds the XP ranking model and the display rules derived
// from one fetched snapshot: top-N membership, positional ranks, and the score
// a viewer outside the top-N still needs.
package leaderboard

import (
	"fmt"
	"strings"
)

// DefaultTopSize is the number of leading players the leaderboard API returns.
const DefaultTopSize = 25

// Player is one ranked player. Rank is not stored; it is the player's
// 1-based position in an ordered list.
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Score       int64  `json:"score"`
}

// Viewer is the authenticated player reading the leaderboard together with
// their global rank, which may fall outside the top-N.
type Viewer struct {
	Player
	Rank int `json:"rank"`
}

// Snapshot is one fetched leaderboard result. It is never mutated after
// decoding; a re-fetch replaces it.
type Snapshot struct {
	Top    []Player `json:"top"`
	Viewer Viewer   `json:"viewer"`
}

// Validate checks the invariants the display rules depend on. topSize bounds
// the length of Top; values below one disable the bound.
func (s Snapshot) Validate(topSize int) error {
	if strings.TrimSpace(s.Viewer.ID) == "" {
		return E(KindBadResponse, "viewer id is required")
	}
	if s.Viewer.Rank < 1 {
		return E(KindBadResponse, fmt.Sprintf("viewer rank must be positive, got %d", s.Viewer.Rank))
	}
	if s.Viewer.Score < 0 {
		return E(KindBadResponse, "viewer score must not be negative")
	}
	if topSize > 0 && len(s.Top) > topSize {
		return E(KindBadResponse, fmt.Sprintf("top list has %d entries, want at most %d", len(s.Top), topSize))
	}
	seen := make(map[string]struct{}, len(s.Top))
	for idx, player := range s.Top {
		if strings.TrimSpace(player.ID) == "" {
			return E(KindBadResponse, fmt.Sprintf("top entry %d has no id", idx+1))
		}
		if _, dup := seen[player.ID]; dup {
			return E(KindBadResponse, fmt.Sprintf("top entry %d repeats id %q", idx+1, player.ID))
		}
		seen[player.ID] = struct{}{}
		if player.Score < 0 {
			return E(KindBadResponse, fmt.Sprintf("top entry %d has negative score", idx+1))
		}
		if idx > 0 && player.Score > s.Top[idx-1].Score {
			return E(KindBadResponse, fmt.Sprintf("top entry %d outranks entry %d", idx+1, idx))
		}
	}
	return nil
}

// ViewerIndex returns the viewer's 0-based index in Top, or -1 when the viewer
// is not among the top entries. Membership is decided by ID only.
func (s Snapshot) ViewerIndex() int {
	for idx, player := range s.Top {
		if player.ID == s.Viewer.ID {
			return idx
		}
	}
	return -1
}
