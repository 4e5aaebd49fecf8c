// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"

	module "github.com/louisbranch/xpboard/internal/services/web/module"
	"github.com/louisbranch/xpboard/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/xpboard/internal/services/web/platform/i18n"
	webtemplates "github.com/louisbranch/xpboard/internal/services/web/templates"
)

// RequestResolver resolves viewer and language state from a request.
type RequestResolver interface {
	ResolveRequestViewer(r *http.Request) module.Viewer
	ResolveRequestLanguage(r *http.Request) string
}

// ModulePage describes a module page response for both full-page and HTMX flows.
type ModulePage struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
}

// WriteModulePage writes the fragment alone for HTMX requests and inside the
// document layout otherwise. The body is buffered so a render failure never
// leaves a half-written page behind.
func WriteModulePage(w http.ResponseWriter, r *http.Request, resolver RequestResolver, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = templ.NopComponent
	}

	var resolveLanguage module.ResolveLanguage
	if resolver != nil {
		resolveLanguage = resolver.ResolveRequestLanguage
	}
	loc, lang := webi18n.ResolveLocalizer(w, r, resolveLanguage)
	ctx := httpx.RequestContext(r)

	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := fragment.Render(ctx, &buf); err != nil {
			return err
		}
		return httpx.WriteHTML(w, statusCode, buf.String())
	}

	viewer := module.Viewer{}
	if resolver != nil {
		viewer = resolver.ResolveRequestViewer(r)
	}
	currentPath := ""
	if r != nil && r.URL != nil {
		currentPath = r.URL.Path
	}
	layout := webtemplates.Layout(webtemplates.PageContext{
		Title:       page.Title,
		Lang:        lang,
		Loc:         loc,
		CurrentPath: currentPath,
		ViewerName:  viewer.DisplayName,
	})
	if err := layout.Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
		return err
	}
	return httpx.WriteHTML(w, statusCode, buf.String())
}
