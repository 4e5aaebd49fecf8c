// Package web serves the XP leaderboard over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/xpboard/internal/platform/timeouts"
	"github.com/louisbranch/xpboard/internal/services/web/app"
	"github.com/louisbranch/xpboard/internal/services/web/modules"
	"github.com/louisbranch/xpboard/internal/services/web/modules/leaderboard"
	"github.com/louisbranch/xpboard/internal/services/web/platform/authn"
	"github.com/louisbranch/xpboard/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/xpboard/internal/services/web/platform/i18n"
	"github.com/louisbranch/xpboard/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/xpboard/internal/services/web/platform/observability"
	"github.com/louisbranch/xpboard/internal/services/web/routepath"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr string
	// Gateway fetches leaderboard snapshots. A nil gateway serves every
	// board request as unavailable.
	Gateway leaderboard.LeaderboardGateway
	// Verifier checks viewer tokens. A nil verifier treats every request as
	// anonymous.
	Verifier       authn.TokenVerifier
	TopSize        int
	TracerProvider trace.TracerProvider
	Logger         *log.Logger
}

// Server hosts the web HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

type healthResponse struct {
	Status string `json:"status"`
}

// NewHandler builds the root HTTP handler with the shared middleware chain.
func NewHandler(config Config) (http.Handler, error) {
	features := modules.DefaultModules(modules.Dependencies{
		LeaderboardGateway: config.Gateway,
		ResolveViewer:      authn.ResolveViewer,
		ResolveLanguage:    webi18n.ResolveLanguage,
		TopSize:            config.TopSize,
	})
	root, err := app.Compose(app.ComposeInput{Modules: features})
	if err != nil {
		return nil, fmt.Errorf("compose modules: %w", err)
	}

	base := modulehandler.NewBase(authn.ResolveViewer, webi18n.ResolveLanguage)
	root.HandleFunc(http.MethodGet+" "+routepath.Health, func(w http.ResponseWriter, r *http.Request) {
		status, body := http.StatusOK, healthResponse{Status: "ok"}
		if !app.Healthy(features) {
			status, body = http.StatusServiceUnavailable, healthResponse{Status: "degraded"}
		}
		_ = httpx.WriteJSON(w, status, body)
	})
	root.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", func(w http.ResponseWriter, r *http.Request) {
		target := routepath.Leaderboard
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusFound)
	})
	root.HandleFunc(routepath.Root, base.WriteNotFound)

	return httpx.Chain(root,
		httpx.RequestID(),
		httpx.RecoverPanic(),
		httpx.RequireMethod(http.MethodGet),
		observability.Trace(config.TracerProvider),
		observability.RequestLogger(config.Logger),
		authn.Middleware(config.Verifier),
	), nil
}

// NewServer builds a configured web server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(config)
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
