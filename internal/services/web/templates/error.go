package templates

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

// ErrorStateID marks the generic error content.
const ErrorStateID = "app-error-state"

// ErrorMessageKey returns the catalog key describing status.
func ErrorMessageKey(statusCode int) string {
	switch statusCode {
	case http.StatusUnauthorized:
		return "core.error.unauthorized"
	case http.StatusServiceUnavailable:
		return "core.error.unavailable"
	case http.StatusBadGateway:
		return "core.error.bad_gateway"
	case http.StatusNotFound:
		return "core.error.not_found"
	default:
		return "core.error.internal"
	}
}

// ErrorState renders a status-specific error message.
func ErrorState(loc Localizer, statusCode int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return writeString(w, fmt.Sprintf(`<section id="%s" class="app-error" data-status="%d"><p>%s</p></section>`,
			ErrorStateID, statusCode, templ.EscapeString(T(loc, ErrorMessageKey(statusCode)))))
	})
}
