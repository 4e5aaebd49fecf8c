package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/xpboard/internal/leaderboard"
	"github.com/louisbranch/xpboard/internal/leaderboard/render"
)

// LeaderboardSectionID is the element every leaderboard state renders into,
// so HTMX swaps replace one state with the next.
const LeaderboardSectionID = "leaderboard"

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

// LeaderboardLoading renders the placeholder that loads the board from
// boardURL once the page is on screen.
func LeaderboardLoading(loc Localizer, boardURL string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		url := templ.EscapeString(boardURL)
		var b strings.Builder
		fmt.Fprintf(&b, `<section id="%s" class="leaderboard is-loading" aria-busy="true" hx-get="%s" hx-trigger="load" hx-swap="outerHTML">`, LeaderboardSectionID, url)
		fmt.Fprintf(&b, `<p class="leaderboard-loading">%s</p>`, templ.EscapeString(T(loc, "leaderboard.loading")))
		fmt.Fprintf(&b, `<noscript><a href="%s">%s</a></noscript>`, url, templ.EscapeString(T(loc, "leaderboard.load_fallback")))
		b.WriteString(`</section>`)
		return writeString(w, b.String())
	})
}

// LeaderboardSignIn renders the prompt shown when nobody is signed in.
func LeaderboardSignIn(loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return writeString(w, fmt.Sprintf(`<section id="%s" class="leaderboard is-idle"><p class="leaderboard-sign-in">%s</p></section>`,
			LeaderboardSectionID, templ.EscapeString(T(loc, "leaderboard.sign_in"))))
	})
}

// LeaderboardFailure renders a failed load with a retry control.
func LeaderboardFailure(loc Localizer, message string, retryURL string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<section id="%s" class="leaderboard is-failed" role="alert">`, LeaderboardSectionID)
		fmt.Fprintf(&b, `<p class="leaderboard-error">%s</p>`, templ.EscapeString(message))
		if retryURL != "" {
			url := templ.EscapeString(retryURL)
			fmt.Fprintf(&b, `<a class="leaderboard-retry" href="%s" hx-get="%s" hx-target="#%s" hx-swap="outerHTML">%s</a>`,
				url, url, LeaderboardSectionID, templ.EscapeString(T(loc, "leaderboard.retry")))
		}
		b.WriteString(`</section>`)
		return writeString(w, b.String())
	})
}

// LeaderboardBoard renders the ranked rows and, for viewers outside the top
// list, their standing.
func LeaderboardBoard(loc Localizer, board leaderboard.Board) templ.Component {
	loc = orBaseLocale(loc)
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<section id="%s" class="leaderboard is-loaded">`, LeaderboardSectionID)
		fmt.Fprintf(&b, `<h1>%s</h1><h2>%s</h2>`,
			templ.EscapeString(T(loc, "leaderboard.title")),
			templ.EscapeString(T(loc, "leaderboard.heading", board.TopSize)))

		if len(board.Rows) == 0 {
			fmt.Fprintf(&b, `<p class="leaderboard-empty">%s</p>`, templ.EscapeString(T(loc, "leaderboard.empty")))
		} else {
			fmt.Fprintf(&b, `<table class="leaderboard-table"><thead><tr><th scope="col">%s</th><th scope="col">%s</th><th scope="col">%s</th></tr></thead><tbody>`,
				templ.EscapeString(T(loc, "leaderboard.col_rank")),
				templ.EscapeString(T(loc, "leaderboard.col_player")),
				templ.EscapeString(T(loc, "leaderboard.col_xp")))
			for _, row := range board.Rows {
				writeRow(&b, loc, row)
			}
			b.WriteString(`</tbody></table>`)
		}

		if st := board.Standing; st != nil {
			inconsistent := ""
			if st.Inconsistent {
				inconsistent = ` data-inconsistent="true"`
			}
			fmt.Fprintf(&b, `<aside id="leaderboard-standing" class="leaderboard-standing"%s>`, inconsistent)
			fmt.Fprintf(&b, `<h3>%s</h3>`, templ.EscapeString(T(loc, "leaderboard.standing")))
			fmt.Fprintf(&b, `<div class="leaderboard-row is-viewer"><span class="leaderboard-rank">%s</span><span class="leaderboard-player">%s</span><span class="leaderboard-xp">%s</span></div>`,
				templ.EscapeString(T(loc, "leaderboard.rank", st.Rank)),
				templ.EscapeString(T(loc, "leaderboard.you", render.DisplayName(loc, st.DisplayName))),
				templ.EscapeString(T(loc, "leaderboard.xp", st.Score)))
			fmt.Fprintf(&b, `<p class="leaderboard-deficit">%s</p>`, templ.EscapeString(render.StandingMessage(loc, board.TopSize, *st)))
			b.WriteString(`</aside>`)
		}

		b.WriteString(`</section>`)
		return writeString(w, b.String())
	})
}

func writeRow(b *strings.Builder, loc Localizer, row leaderboard.Row) {
	name := render.DisplayName(loc, row.Player.DisplayName)
	class := "leaderboard-row"
	current := ""
	if row.IsViewer {
		class += " is-viewer"
		current = ` aria-current="true"`
		name = T(loc, "leaderboard.you", name)
	}
	fmt.Fprintf(b, `<tr class="%s"%s data-player-id="%s"><td>%d</td><td>%s</td><td>%s</td></tr>`,
		class, current, templ.EscapeString(row.Player.ID), row.Rank,
		templ.EscapeString(name), templ.EscapeString(T(loc, "leaderboard.xp", row.Player.Score)))
}
