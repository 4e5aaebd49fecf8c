package web

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/xpboard/internal/auth/token"
	"github.com/louisbranch/xpboard/internal/leaderboard"
	platformi18n "github.com/louisbranch/xpboard/internal/platform/i18n"
)

type fakeVerifier map[string]token.Identity

func (f fakeVerifier) Verify(raw string) (token.Identity, error) {
	identity, ok := f[raw]
	if !ok {
		return token.Identity{}, token.ErrInvalidToken
	}
	return identity, nil
}

type fakeGateway struct {
	snapshot leaderboard.Snapshot
}

func (f fakeGateway) FetchSnapshot(_ context.Context, bearer string) (leaderboard.Snapshot, error) {
	if bearer != "tok-ada" {
		return leaderboard.Snapshot{}, leaderboard.Error{Kind: leaderboard.KindBadResponse, StatusCode: http.StatusUnauthorized}
	}
	return f.snapshot, nil
}

func testHandler(t *testing.T, gateway leaderboard.Snapshot, withGateway bool) (http.Handler, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	cfg := Config{
		Verifier: fakeVerifier{"tok-ada": {Subject: "user_ada", Name: "Ada"}},
		Logger:   log.New(&logs, "", 0),
	}
	if withGateway {
		cfg.Gateway = fakeGateway{snapshot: gateway}
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return handler, &logs
}

func adaSnapshot() leaderboard.Snapshot {
	ada := leaderboard.Player{ID: "user_ada", DisplayName: "Ada", Score: 1200}
	return leaderboard.Snapshot{
		Top:    []leaderboard.Player{ada, {ID: "user_bo", DisplayName: "Bo", Score: 950}},
		Viewer: leaderboard.Viewer{Player: ada, Rank: 1},
	}
}

func TestHealthReportsGatewayState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		withGateway bool
		wantStatus  int
		wantBody    string
	}{
		{name: "configured", withGateway: true, wantStatus: http.StatusOK, wantBody: "ok"},
		{name: "missing gateway", withGateway: false, wantStatus: http.StatusServiceUnavailable, wantBody: "degraded"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			handler, _ := testHandler(t, adaSnapshot(), tc.withGateway)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			var body healthResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tc.wantBody {
				t.Fatalf("status body = %q, want %q", body.Status, tc.wantBody)
			}
		})
	}
}

func TestRootRedirectsToLeaderboard(t *testing.T) {
	t.Parallel()

	handler, _ := testHandler(t, adaSnapshot(), true)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != "/leaderboard?lang=pt-BR" {
		t.Fatalf("Location = %q", got)
	}
}

func TestUnknownPathRendersNotFoundPage(t *testing.T) {
	t.Parallel()

	handler, _ := testHandler(t, adaSnapshot(), true)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), `id="app-error-state"`) {
		t.Fatalf("body missing error state: %s", rr.Body.String())
	}
}

func TestBoardUsesVerifiedBearer(t *testing.T) {
	t.Parallel()

	handler, logs := testHandler(t, adaSnapshot(), true)

	req := httptest.NewRequest(http.MethodGet, "/leaderboard/board", nil)
	req.Header.Set("Authorization", "Bearer tok-ada")
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Ada (You)") || !strings.Contains(body, "1,200 XP") {
		t.Fatalf("body = %s", body)
	}
	if !strings.Contains(logs.String(), "http request method=GET path=/leaderboard/board status=200") {
		t.Fatalf("request log = %q", logs.String())
	}
}

func TestBoardFollowsLanguageCookie(t *testing.T) {
	t.Parallel()

	handler, _ := testHandler(t, adaSnapshot(), true)

	req := httptest.NewRequest(http.MethodGet, "/leaderboard/board", nil)
	req.Header.Set("Authorization", "Bearer tok-ada")
	req.Header.Set("Accept-Language", "en-US")
	req.AddCookie(&http.Cookie{Name: platformi18n.LangCookieName, Value: "pt-BR"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	body := rr.Body.String()
	if !strings.Contains(body, `lang="pt-BR"`) || !strings.Contains(body, "Ada (Você)") || !strings.Contains(body, "1.200 XP") {
		t.Fatalf("body = %s", body)
	}
}

func TestBoardTreatsInvalidTokenAsAnonymous(t *testing.T) {
	t.Parallel()

	handler, _ := testHandler(t, adaSnapshot(), true)

	req := httptest.NewRequest(http.MethodGet, "/leaderboard", nil)
	req.AddCookie(&http.Cookie{Name: "__session", Value: "forged"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(Config{}); err == nil {
		t.Fatalf("expected error for missing address")
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	server, err := NewServer(Config{HTTPAddr: "127.0.0.1:0"})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.ListenAndServe(ctx) }()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func TestListenAndServeRequiresServer(t *testing.T) {
	t.Parallel()

	var server *Server
	if err := server.ListenAndServe(context.Background()); err == nil {
		t.Fatalf("expected error for nil server")
	}
}

func TestNonGetRequestsAreRejected(t *testing.T) {
	t.Parallel()

	handler, _ := testHandler(t, adaSnapshot(), true)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/leaderboard/board", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
	if got := rr.Header().Get("Allow"); got != http.MethodGet {
		t.Fatalf("Allow = %q", got)
	}
}
