// Package i18n resolves the request localizer for web handlers.
package i18n

import (
	"net/http"
	"strings"

	platformi18n "github.com/louisbranch/xpboard/internal/platform/i18n"
	module "github.com/louisbranch/xpboard/internal/services/web/module"
	webtemplates "github.com/louisbranch/xpboard/internal/services/web/templates"
)

// Localizer aliases the template localizer contract.
type Localizer = webtemplates.Localizer

// ResolveLanguage is the default module.ResolveLanguage: the lang query
// parameter, then the language cookie, then Accept-Language.
func ResolveLanguage(r *http.Request) string {
	tag, _ := platformi18n.ResolveTag(r)
	return tag.String()
}

// ResolveLocalizer returns the request printer and language string, and
// persists a language chosen through the query parameter.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request, resolve module.ResolveLanguage) (Localizer, string) {
	tag, persist := platformi18n.ResolveTag(r)
	if resolve != nil {
		if resolved, ok := platformi18n.ParseTag(strings.TrimSpace(resolve(r))); ok {
			tag = resolved
		}
	}
	if persist && w != nil {
		platformi18n.SetLanguageCookie(w, tag)
	}
	return platformi18n.Printer(tag), tag.String()
}
