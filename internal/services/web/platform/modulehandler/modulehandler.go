// Package modulehandler provides a composable base for web module handlers.
//
// Modules share handler infrastructure for viewer resolution, localization,
// page rendering, and error handling. Modules embed Base rather than
// duplicating it.
package modulehandler

import (
	"net/http"

	"github.com/a-h/templ"

	module "github.com/louisbranch/xpboard/internal/services/web/module"
	webi18n "github.com/louisbranch/xpboard/internal/services/web/platform/i18n"
	"github.com/louisbranch/xpboard/internal/services/web/platform/pagerender"
	"github.com/louisbranch/xpboard/internal/services/web/platform/weberror"
	webtemplates "github.com/louisbranch/xpboard/internal/services/web/templates"
)

// Base carries the shared request-scoped resolvers used by module handlers.
type Base struct {
	resolveViewer   module.ResolveViewer
	resolveLanguage module.ResolveLanguage
}

// NewBase builds a handler base from explicit resolver functions.
func NewBase(resolveViewer module.ResolveViewer, resolveLanguage module.ResolveLanguage) Base {
	return Base{
		resolveViewer:   resolveViewer,
		resolveLanguage: resolveLanguage,
	}
}

// ResolveRequestViewer resolves header viewer state for a request.
func (b Base) ResolveRequestViewer(r *http.Request) module.Viewer {
	if b.resolveViewer == nil || r == nil {
		return module.Viewer{}
	}
	return b.resolveViewer(r)
}

// ResolveRequestLanguage returns the effective request language.
func (b Base) ResolveRequestLanguage(r *http.Request) string {
	if b.resolveLanguage == nil {
		return ""
	}
	return b.resolveLanguage(r)
}

// RequestLocalizer resolves the localizer without touching the response.
// Page writes persist the language cookie.
func (b Base) RequestLocalizer(r *http.Request) (webtemplates.Localizer, string) {
	return webi18n.ResolveLocalizer(nil, r, b.resolveLanguage)
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b)
}

// WriteNotFound renders a 404 error page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, b)
}

// WritePage renders a module page (HTMX-aware) with the given title and
// content fragment.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, title string, statusCode int, fragment templ.Component) {
	if err := pagerender.WriteModulePage(w, r, b, pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		Fragment:   fragment,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}
