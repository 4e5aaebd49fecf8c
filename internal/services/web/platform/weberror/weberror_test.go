package weberror

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/xpboard/internal/leaderboard"
	platformi18n "github.com/louisbranch/xpboard/internal/platform/i18n"
	apperrors "github.com/louisbranch/xpboard/internal/services/web/platform/errors"
)

func TestWriteModuleErrorRendersAppErrorPageForNotFound(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/leaderboard/missing", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindNotFound, "missing"), nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="app-error-state"`) || !strings.Contains(body, "Page not found.") {
		t.Fatalf("body missing app error state: %q", body)
	}
	if !strings.Contains(body, "<!doctype html>") {
		t.Fatalf("expected full page for non-htmx request")
	}
}

func TestWriteAppErrorRendersFragmentForHTMX(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/leaderboard/board?lang=pt-BR", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	WriteAppError(rr, req, http.StatusServiceUnavailable, nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<html") {
		t.Fatalf("expected fragment, got %q", body)
	}
	if !strings.Contains(body, `data-status="503"`) {
		t.Fatalf("body = %q, want 503 marker", body)
	}
}

func TestWriteAppErrorCoercesUnsupportedStatus(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteAppError(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusTeapot, nil)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestWriteModuleErrorDoesNotLeakInternalText(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/leaderboard/board", nil)
	rr := httptest.NewRecorder()
	cause := leaderboard.Wrap(leaderboard.KindNetworkFailure, "fetch leaderboard", errors.New("dial tcp 10.0.0.7:443: connection refused"))
	WriteModuleError(rr, req, apperrors.FromLeaderboard(cause), nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if body := rr.Body.String(); strings.Contains(body, "10.0.0.7") {
		t.Fatalf("body leaked internal error text: %q", body)
	}
}

func TestPublicMessage(t *testing.T) {
	t.Parallel()

	loc := platformi18n.Printer(platformi18n.DefaultTag())
	if got := PublicMessage(loc, nil); got != "" {
		t.Fatalf("PublicMessage(nil) = %q", got)
	}
	keyed := apperrors.EK(apperrors.KindUnavailable, "leaderboard.error.network_failure", "dial failed")
	if got := PublicMessage(loc, keyed); !strings.Contains(got, "Could not reach the leaderboard") {
		t.Fatalf("PublicMessage(keyed) = %q", got)
	}
	if got := PublicMessage(loc, errors.New("secret")); got != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("PublicMessage(plain) = %q", got)
	}
}
