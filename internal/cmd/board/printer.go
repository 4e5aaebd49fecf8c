package board

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/xpboard/internal/leaderboard/render"
	"github.com/louisbranch/xpboard/internal/leaderboard/view"
	"github.com/louisbranch/xpboard/internal/platform/i18n"
)

// printer serializes state output; watch mode renders from the controller
// goroutine.
type printer struct {
	mu       sync.Mutex
	out      io.Writer
	text     *render.Text
	messages *message.Printer
	json     bool
	rendered int
}

func newPrinter(out io.Writer, tag language.Tag, asJSON bool) *printer {
	return &printer{
		out:      out,
		text:     render.NewText(out, tag),
		messages: i18n.Printer(tag),
		json:     asJSON,
	}
}

func (p *printer) render(s view.State) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		return render.WriteJSON(p.out, p.messages, s)
	}
	if p.rendered > 0 && s.Status == view.StatusLoading {
		if _, err := fmt.Fprintln(p.out); err != nil {
			return err
		}
	}
	p.rendered++
	return p.text.Render(s)
}
