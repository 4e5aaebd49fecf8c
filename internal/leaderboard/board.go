package leaderboard

// Row is one rendered top-N line.
type Row struct {
	Rank     int    `json:"rank"`
	Player   Player `json:"player"`
	IsViewer bool   `json:"is_viewer"`
}

// Standing describes a viewer who is not among the top entries.
type Standing struct {
	Rank        int    `json:"rank"`
	DisplayName string `json:"display_name"`
	Score       int64  `json:"score"`
	// HasCutoff is false when the top list is empty and there is nothing to
	// measure the viewer against.
	HasCutoff bool  `json:"has_cutoff"`
	Cutoff    int64 `json:"cutoff"`
	Deficit   int64 `json:"deficit"`
	// Inconsistent marks a viewer reported outside the top list while scoring
	// above its last entry. Deficit is clamped to zero in that case.
	Inconsistent bool `json:"inconsistent,omitempty"`
}

// Board is the display model for one snapshot.
type Board struct {
	TopSize   int       `json:"top_size"`
	Rows      []Row     `json:"rows"`
	Viewer    Viewer    `json:"viewer"`
	ViewerRow int       `json:"viewer_row"`
	Standing  *Standing `json:"standing,omitempty"`
}

// InTop reports whether the viewer appears among the rows.
func (b Board) InTop() bool {
	return b.ViewerRow > 0
}

// Build derives the board for a snapshot. topSize is only used for wording
// ("top 25"); values below one fall back to DefaultTopSize.
func Build(s Snapshot, topSize int) Board {
	if topSize < 1 {
		topSize = DefaultTopSize
	}
	viewerIdx := s.ViewerIndex()
	rows := make([]Row, 0, len(s.Top))
	for idx, player := range s.Top {
		rows = append(rows, Row{
			Rank:     idx + 1,
			Player:   player,
			IsViewer: idx == viewerIdx,
		})
	}
	board := Board{
		TopSize:   topSize,
		Rows:      rows,
		Viewer:    s.Viewer,
		ViewerRow: viewerIdx + 1,
	}
	if viewerIdx < 0 {
		standing := standingFor(s)
		board.Standing = &standing
	}
	return board
}

func standingFor(s Snapshot) Standing {
	standing := Standing{
		Rank:        s.Viewer.Rank,
		DisplayName: s.Viewer.DisplayName,
		Score:       s.Viewer.Score,
	}
	if len(s.Top) == 0 {
		return standing
	}
	standing.HasCutoff = true
	standing.Cutoff = s.Top[len(s.Top)-1].Score
	deficit := standing.Cutoff - s.Viewer.Score
	if deficit < 0 {
		standing.Inconsistent = true
		deficit = 0
	}
	standing.Deficit = deficit
	return standing
}
