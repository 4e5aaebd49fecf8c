package templates

import (
	"golang.org/x/text/message"

	"github.com/louisbranch/xpboard/internal/leaderboard/render"
	platformi18n "github.com/louisbranch/xpboard/internal/platform/i18n"
)

// Localizer is the terminal renderer's contract, so HTML and text output
// format the same leaderboard message keys.
type Localizer = render.Localizer

// orBaseLocale returns loc, or the base-locale printer when loc is nil.
func orBaseLocale(loc Localizer) Localizer {
	if loc == nil {
		return platformi18n.Printer(platformi18n.DefaultTag())
	}
	return loc
}

// T formats a catalog key. Keys missing from the catalog print as their own
// format string.
func T(loc Localizer, key message.Reference, args ...any) string {
	return orBaseLocale(loc).Sprintf(key, args...)
}
