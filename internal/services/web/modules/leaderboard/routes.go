package leaderboard

import (
	"net/http"

	"github.com/louisbranch/xpboard/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Leaderboard, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.LeaderboardPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.LeaderboardBoard, h.handleBoard)
	mux.HandleFunc(http.MethodGet+" "+routepath.LeaderboardJSON, h.handleBoardJSON)
	mux.HandleFunc(http.MethodGet+" "+routepath.LeaderboardPrefix+"{rest...}", h.WriteNotFound)
}
