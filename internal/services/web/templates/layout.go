package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/xpboard/internal/services/web/routepath"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// htmxConfig lets error responses swap in so failure fragments replace the
// loading state.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"[45]..","swap":true,"error":true}]}`

// PageContext provides shared layout context for pages.
type PageContext struct {
	Title       string
	Lang        string
	Loc         Localizer
	CurrentPath string
	// ViewerName is the signed-in viewer's display name, empty when anonymous.
	ViewerName string
}

type languageLink struct {
	tag   string
	label string
}

// Layout renders the document shell around the children in ctx.
func Layout(page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		children := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)

		appName := T(page.Loc, "core.app_name")
		title := appName
		if strings.TrimSpace(page.Title) != "" {
			title = page.Title + " | " + appName
		}
		lang := page.Lang
		if lang == "" {
			lang = "en-US"
		}

		var b strings.Builder
		fmt.Fprintf(&b, `<!doctype html><html lang="%s"><head><meta charset="utf-8">`, templ.EscapeString(lang))
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		fmt.Fprintf(&b, `<title>%s</title>`, templ.EscapeString(title))
		fmt.Fprintf(&b, `<meta name="htmx-config" content="%s">`, templ.EscapeString(htmxConfig))
		fmt.Fprintf(&b, `<script src="%s" defer></script>`, htmxScriptURL)
		b.WriteString(`</head><body><header class="app-header">`)
		fmt.Fprintf(&b, `<a class="app-name" href="%s">%s</a>`, routepath.Leaderboard, templ.EscapeString(appName))
		b.WriteString(`<nav class="app-lang">`)
		for _, link := range []languageLink{{tag: "en-US", label: "core.lang_en"}, {tag: "pt-BR", label: "core.lang_pt_br"}} {
			current := ""
			if link.tag == lang {
				current = ` aria-current="true"`
			}
			fmt.Fprintf(&b, `<a href="%s" hreflang="%s"%s>%s</a>`,
				templ.EscapeString(routepath.WithLang(currentPath(page), link.tag)),
				link.tag, current, templ.EscapeString(T(page.Loc, link.label)))
		}
		b.WriteString(`</nav>`)
		if page.ViewerName != "" {
			fmt.Fprintf(&b, `<span class="app-viewer">%s</span>`, templ.EscapeString(page.ViewerName))
		}
		b.WriteString(`</header><main id="main">`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := children.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func currentPath(page PageContext) string {
	if strings.TrimSpace(page.CurrentPath) == "" {
		return routepath.Leaderboard
	}
	return page.CurrentPath
}
