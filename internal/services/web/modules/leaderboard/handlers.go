package leaderboard

import (
	"log"
	"net/http"

	"github.com/louisbranch/xpboard/internal/leaderboard"
	"github.com/louisbranch/xpboard/internal/leaderboard/render"
	"github.com/louisbranch/xpboard/internal/leaderboard/view"
	apperrors "github.com/louisbranch/xpboard/internal/services/web/platform/errors"
	"github.com/louisbranch/xpboard/internal/services/web/platform/authn"
	"github.com/louisbranch/xpboard/internal/services/web/platform/httpx"
	"github.com/louisbranch/xpboard/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/xpboard/internal/services/web/platform/weberror"
	"github.com/louisbranch/xpboard/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/xpboard/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

// handleIndex renders the page shell; the board itself loads through
// handleBoard so a slow upstream never blocks the first paint.
func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.RequestLocalizer(r)
	title := webtemplates.T(loc, "leaderboard.title")
	if !h.ResolveRequestViewer(r).SignedIn() {
		h.WritePage(w, r, title, http.StatusUnauthorized, webtemplates.LeaderboardSignIn(loc))
		return
	}
	h.WritePage(w, r, title, http.StatusOK, webtemplates.LeaderboardLoading(loc, routepath.LeaderboardBoard))
}

func (h handlers) handleBoard(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.RequestLocalizer(r)
	title := webtemplates.T(loc, "leaderboard.title")
	state := h.service.activate(httpx.RequestContext(r), authn.Provider(r))

	switch state.Status {
	case view.StatusLoaded:
		h.WritePage(w, r, title, http.StatusOK, webtemplates.LeaderboardBoard(loc, state.Board))
	case view.StatusFailed:
		appErr := apperrors.FromLeaderboard(state.Err)
		statusCode := apperrors.HTTPStatus(appErr)
		logFailure(r, state.Err, statusCode)
		retryURL := routepath.LeaderboardBoard
		if statusCode == http.StatusUnauthorized {
			retryURL = ""
		}
		h.WritePage(w, r, title, statusCode, webtemplates.LeaderboardFailure(loc, weberror.PublicMessage(loc, appErr), retryURL))
	default:
		h.WritePage(w, r, title, http.StatusUnauthorized, webtemplates.LeaderboardSignIn(loc))
	}
}

func (h handlers) handleBoardJSON(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.RequestLocalizer(r)
	state := h.service.activate(httpx.RequestContext(r), authn.Provider(r))
	doc := render.Document(loc, state)

	statusCode := http.StatusOK
	switch state.Status {
	case view.StatusIdle:
		statusCode = http.StatusUnauthorized
	case view.StatusFailed:
		appErr := apperrors.FromLeaderboard(state.Err)
		statusCode = apperrors.HTTPStatus(appErr)
		logFailure(r, state.Err, statusCode)
		if doc.Error != nil {
			doc.Error.Message = weberror.PublicMessage(loc, appErr)
			doc.Error.Detail = ""
		}
	}
	if err := httpx.WriteJSON(w, statusCode, doc); err != nil {
		log.Printf("leaderboard write json failed request_id=%s err=%v", r.Header.Get("X-Request-ID"), err)
	}
}

func logFailure(r *http.Request, err error, statusCode int) {
	log.Printf(
		"leaderboard fetch failed kind=%s upstream_status=%d status=%d request_id=%s err=%v",
		leaderboard.KindOf(err),
		leaderboard.StatusCodeOf(err),
		statusCode,
		r.Header.Get("X-Request-ID"),
		err,
	)
}
