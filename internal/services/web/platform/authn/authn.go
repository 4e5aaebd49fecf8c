// Package authn resolves the signed-in viewer of a web request from a bearer
// token or the session cookie set by the sign-in provider.
package authn

import (
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/xpboard/internal/auth/token"
	"github.com/louisbranch/xpboard/internal/platform/requestctx"
	module "github.com/louisbranch/xpboard/internal/services/web/module"
	"github.com/louisbranch/xpboard/internal/services/web/platform/httpx"
)

// SessionCookieName is the cookie holding the session JWT.
const SessionCookieName = "__session"

// TokenVerifier checks a raw token and returns its identity.
type TokenVerifier interface {
	Verify(raw string) (token.Identity, error)
}

// RawToken returns the request's bearer token, preferring the Authorization
// header over the session cookie.
func RawToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		scheme, value, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(value)
		}
		return ""
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}

// Middleware attaches the verified viewer to the request context. Requests
// without a valid token continue anonymously.
func Middleware(verifier TokenVerifier) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := RawToken(r)
			if raw == "" || verifier == nil {
				next.ServeHTTP(w, r)
				return
			}
			identity, err := verifier.Verify(raw)
			if err != nil {
				log.Printf("authn rejected token path=%s request_id=%s err=%v", r.URL.Path, r.Header.Get("X-Request-ID"), err)
				next.ServeHTTP(w, r)
				return
			}
			ctx := requestctx.WithViewer(r.Context(), identity.Subject, identity.Name, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Provider returns the token provider for the request's viewer.
func Provider(r *http.Request) token.Provider {
	ctx := httpx.RequestContext(r)
	return token.NewVerified(token.Identity{
		Subject: requestctx.UserIDFromContext(ctx),
		Name:    requestctx.DisplayNameFromContext(ctx),
	}, requestctx.TokenFromContext(ctx))
}

// ResolveViewer returns the header viewer for the request.
func ResolveViewer(r *http.Request) module.Viewer {
	ctx := httpx.RequestContext(r)
	return module.Viewer{
		UserID:      requestctx.UserIDFromContext(ctx),
		DisplayName: requestctx.DisplayNameFromContext(ctx),
	}
}
