// Package leaderboard serves the XP leaderboard view.
package leaderboard

import (
	"net/http"

	module "github.com/louisbranch/xpboard/internal/services/web/module"
	"github.com/louisbranch/xpboard/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/xpboard/internal/services/web/routepath"
)

// Config carries the request resolvers and view parameters the module needs.
type Config struct {
	ResolveViewer   module.ResolveViewer
	ResolveLanguage module.ResolveLanguage
	// TopSize is the expected top-N size; zero uses the default.
	TopSize int
}

// Module provides the leaderboard routes.
type Module struct {
	gateway LeaderboardGateway
	config  Config
}

// New returns a leaderboard module without a configured gateway. Every fetch
// fails as unavailable.
func New(cfg Config) Module {
	return Module{config: cfg}
}

// NewWithGateway returns a leaderboard module backed by gateway.
func NewWithGateway(gateway LeaderboardGateway, cfg Config) Module {
	return Module{gateway: gateway, config: cfg}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "leaderboard" }

// Healthy reports whether the leaderboard gateway is configured.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires leaderboard route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	base := modulehandler.NewBase(m.config.ResolveViewer, m.config.ResolveLanguage)
	h := newHandlers(newService(m.gateway, m.config.TopSize), base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.LeaderboardPrefix, Handler: mux}, nil
}
