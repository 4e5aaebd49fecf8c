package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/louisbranch/xpboard/internal/leaderboard"
)

func TestHTTPStatusMapsKnownKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want int
	}{
		{kind: KindUnauthorized, want: http.StatusUnauthorized},
		{kind: KindUnavailable, want: http.StatusServiceUnavailable},
		{kind: KindBadGateway, want: http.StatusBadGateway},
		{kind: KindNotFound, want: http.StatusNotFound},
		{kind: KindUnknown, want: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := HTTPStatus(E(tc.kind, "x")); got != tc.want {
			t.Fatalf("HTTPStatus(%s) = %d, want %d", tc.kind, got, tc.want)
		}
	}
	if got := HTTPStatus(nil); got != http.StatusOK {
		t.Fatalf("HTTPStatus(nil) = %d, want %d", got, http.StatusOK)
	}
}

func TestHTTPStatusDefaultsToInternalError(t *testing.T) {
	t.Parallel()

	if got := HTTPStatus(errors.New("boom")); got != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", got, http.StatusInternalServerError)
	}
}

func TestErrorStringFallsBackToKindWhenMessageEmpty(t *testing.T) {
	t.Parallel()

	err := Error{Kind: KindUnavailable}
	if got := err.Error(); got != string(KindUnavailable) {
		t.Fatalf("Error() = %q, want %q", got, string(KindUnavailable))
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	if got := LocalizationKey(EK(KindNotFound, " core.error.not_found ", "missing")); got != "core.error.not_found" {
		t.Fatalf("LocalizationKey() = %q", got)
	}
	if got := LocalizationKey(errors.New("plain")); got != "" {
		t.Fatalf("LocalizationKey(plain) = %q, want empty", got)
	}
}

func TestFromLeaderboard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		wantKey string
	}{
		{name: "not authenticated", err: leaderboard.E(leaderboard.KindNotAuthenticated, "no token"), status: http.StatusUnauthorized, wantKey: "leaderboard.error.not_authenticated"},
		{name: "network", err: leaderboard.E(leaderboard.KindNetworkFailure, "refused"), status: http.StatusServiceUnavailable, wantKey: "leaderboard.error.network_failure"},
		{name: "upstream 500", err: leaderboard.Error{Kind: leaderboard.KindBadResponse, StatusCode: 500}, status: http.StatusBadGateway, wantKey: "leaderboard.error.bad_response"},
		{name: "upstream 401", err: leaderboard.Error{Kind: leaderboard.KindBadResponse, StatusCode: 401}, status: http.StatusUnauthorized, wantKey: "leaderboard.error.not_authenticated"},
		{name: "upstream 403", err: leaderboard.Error{Kind: leaderboard.KindBadResponse, StatusCode: 403}, status: http.StatusUnauthorized, wantKey: "leaderboard.error.not_authenticated"},
		{name: "malformed payload", err: leaderboard.E(leaderboard.KindBadResponse, "decode"), status: http.StatusBadGateway, wantKey: "leaderboard.error.bad_response"},
		{name: "untyped", err: errors.New("boom"), status: http.StatusInternalServerError, wantKey: "leaderboard.error.unknown"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			mapped := FromLeaderboard(tc.err)
			if got := HTTPStatus(mapped); got != tc.status {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tc.status)
			}
			if got := LocalizationKey(mapped); got != tc.wantKey {
				t.Fatalf("LocalizationKey() = %q, want %q", got, tc.wantKey)
			}
			if !errors.Is(mapped, tc.err) {
				t.Fatalf("mapped error does not wrap %v", tc.err)
			}
		})
	}
	if FromLeaderboard(nil) != nil {
		t.Fatal("FromLeaderboard(nil) != nil")
	}
}
