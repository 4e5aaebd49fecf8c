package render

import (
	"encoding/json"
	"io"

	"github.com/louisbranch/xpboard/internal/leaderboard"
	"github.com/louisbranch/xpboard/internal/leaderboard/view"
)

// StateDocument is the JSON form of a view state.
type StateDocument struct {
	Status   string             `json:"status"`
	Identity string             `json:"identity,omitempty"`
	Board    *leaderboard.Board `json:"board,omitempty"`
	// Summary is the localized standing line when the viewer is outside the
	// top list.
	Summary string         `json:"summary,omitempty"`
	Error   *ErrorDocument `json:"error,omitempty"`
}

// ErrorDocument describes a Failed state.
type ErrorDocument struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

// Document converts s using p for localized text.
func Document(p Localizer, s view.State) StateDocument {
	doc := StateDocument{Status: s.Status.String(), Identity: s.Identity}
	switch s.Status {
	case view.StatusLoaded:
		board := s.Board
		doc.Board = &board
		if board.Standing != nil {
			doc.Summary = StandingMessage(p, board.TopSize, *board.Standing)
		}
	case view.StatusFailed:
		kind := leaderboard.KindOf(s.Err)
		if kind == "" {
			kind = leaderboard.KindUnknown
		}
		doc.Error = &ErrorDocument{
			Kind:       string(kind),
			Message:    ErrorMessage(p, s.Err),
			StatusCode: leaderboard.StatusCodeOf(s.Err),
		}
		if s.Err != nil {
			doc.Error.Detail = s.Err.Error()
		}
	}
	return doc
}

// WriteJSON writes the document for s as indented JSON.
func WriteJSON(w io.Writer, p Localizer, s view.State) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Document(p, s))
}
