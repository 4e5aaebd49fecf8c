// Package modules defines web module registry helpers.
package modules

import (
	module "github.com/louisbranch/xpboard/internal/services/web/module"
	"github.com/louisbranch/xpboard/internal/services/web/modules/leaderboard"
)

// Dependencies carries the gateways and resolvers required to compose the
// web module registry.
type Dependencies struct {
	LeaderboardGateway leaderboard.LeaderboardGateway
	ResolveViewer      module.ResolveViewer
	ResolveLanguage    module.ResolveLanguage
	TopSize            int
}

// DefaultModules returns the stable web modules.
func DefaultModules(deps Dependencies) []module.Module {
	return []module.Module{
		leaderboard.NewWithGateway(leaderboard.NewHTTPGateway(deps.LeaderboardGateway), leaderboard.Config{
			ResolveViewer:   deps.ResolveViewer,
			ResolveLanguage: deps.ResolveLanguage,
			TopSize:         deps.TopSize,
		}),
	}
}
