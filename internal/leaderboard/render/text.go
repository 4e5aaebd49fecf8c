// Package render writes leaderboard view states for terminals and JSON
// consumers.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/xpboard/internal/leaderboard"
	"github.com/louisbranch/xpboard/internal/leaderboard/view"
	"github.com/louisbranch/xpboard/internal/platform/i18n"
)

const viewerMarker = ">"

// Localizer formats catalog messages. *message.Printer implements it.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Text renders states as aligned plain text.
type Text struct {
	w       io.Writer
	printer *message.Printer
}

// NewText returns a renderer writing to w in the language tag.
func NewText(w io.Writer, tag language.Tag) *Text {
	return &Text{w: w, printer: i18n.Printer(tag)}
}

// Render writes one state.
func (t *Text) Render(s view.State) error {
	switch s.Status {
	case view.StatusIdle:
		_, err := fmt.Fprintln(t.w, t.printer.Sprintf("leaderboard.sign_in"))
		return err
	case view.StatusLoading:
		_, err := fmt.Fprintln(t.w, t.printer.Sprintf("leaderboard.loading"))
		return err
	case view.StatusFailed:
		return t.renderFailure(s.Err)
	case view.StatusLoaded:
		return t.renderBoard(s.Board)
	default:
		return fmt.Errorf("render: unknown status %s", s.Status)
	}
}

func (t *Text) renderFailure(err error) error {
	if _, werr := fmt.Fprintln(t.w, ErrorMessage(t.printer, err)); werr != nil {
		return werr
	}
	if err == nil {
		return nil
	}
	_, werr := fmt.Fprintf(t.w, "  %s\n", err)
	return werr
}

func (t *Text) renderBoard(b leaderboard.Board) error {
	p := t.printer
	var out strings.Builder
	fmt.Fprintf(&out, "%s · %s\n", p.Sprintf("leaderboard.title"), p.Sprintf("leaderboard.heading", b.TopSize))

	tw := tabwriter.NewWriter(&out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\t%s\t%s\t%s\n", p.Sprintf("leaderboard.col_rank"), p.Sprintf("leaderboard.col_player"), p.Sprintf("leaderboard.col_xp"))
	for _, row := range b.Rows {
		marker := ""
		name := DisplayName(p, row.Player.DisplayName)
		if row.IsViewer {
			marker = viewerMarker
			name = p.Sprintf("leaderboard.you", name)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", marker, row.Rank, name, p.Sprintf("leaderboard.xp", row.Player.Score))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(b.Rows) == 0 {
		fmt.Fprintln(&out, p.Sprintf("leaderboard.empty"))
	}

	if st := b.Standing; st != nil {
		fmt.Fprintf(&out, "\n%s\n", p.Sprintf("leaderboard.standing"))
		fmt.Fprintf(&out, "%s  %s  %s\n",
			p.Sprintf("leaderboard.rank", st.Rank),
			p.Sprintf("leaderboard.you", DisplayName(p, st.DisplayName)),
			p.Sprintf("leaderboard.xp", st.Score),
		)
		fmt.Fprintln(&out, StandingMessage(p, b.TopSize, *st))
	}

	_, err := io.WriteString(t.w, out.String())
	return err
}

// DisplayName substitutes a localized placeholder for blank names.
func DisplayName(p Localizer, name string) string {
	if strings.TrimSpace(name) == "" {
		return p.Sprintf("leaderboard.anonymous")
	}
	return name
}

// StandingMessage words the distance between the viewer and the top list.
func StandingMessage(p Localizer, topSize int, st leaderboard.Standing) string {
	switch {
	case !st.HasCutoff:
		return p.Sprintf("leaderboard.no_cutoff", topSize)
	case st.Deficit == 0:
		return p.Sprintf("leaderboard.level", topSize)
	default:
		return p.Sprintf("leaderboard.deficit", st.Deficit, topSize)
	}
}

// ErrorMessage returns the localized user-facing text for a failure.
func ErrorMessage(p Localizer, err error) string {
	switch leaderboard.KindOf(err) {
	case leaderboard.KindNotAuthenticated:
		return p.Sprintf("leaderboard.error.not_authenticated")
	case leaderboard.KindNetworkFailure:
		return p.Sprintf("leaderboard.error.network_failure")
	case leaderboard.KindBadResponse:
		return p.Sprintf("leaderboard.error.bad_response")
	default:
		return p.Sprintf("leaderboard.error.unknown")
	}
}
