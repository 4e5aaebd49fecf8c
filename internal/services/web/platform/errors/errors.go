// Package errors defines web typed application errors.
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/louisbranch/xpboard/internal/leaderboard"
)

// Kind classifies application failures for consistent HTTP mapping.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindUnauthorized Kind = "unauthorized"
	KindUnavailable  Kind = "unavailable"
	KindBadGateway   Kind = "bad_gateway"
	KindNotFound     Kind = "not_found"
)

// Error is a typed web application failure.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	Err     error
}

// Error renders the human-readable message.
func (e Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e Error) Unwrap() error {
	return e.Err
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// EK builds a typed Error with a localization key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// LocalizationKey returns the structured localization key when available.
func LocalizationKey(err error) string {
	if err == nil {
		return ""
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return ""
	}
	return strings.TrimSpace(appErr.Key)
}

// FromLeaderboard maps a leaderboard failure onto a web error. Upstream 401
// and 403 responses mean the forwarded token was rejected.
func FromLeaderboard(err error) error {
	if err == nil {
		return nil
	}
	var appErr Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	key := "leaderboard.error." + string(leaderboard.KindOf(err))
	switch leaderboard.KindOf(err) {
	case leaderboard.KindNotAuthenticated:
		return Error{Kind: KindUnauthorized, Key: key, Message: "viewer is not authenticated", Err: err}
	case leaderboard.KindNetworkFailure:
		return Error{Kind: KindUnavailable, Key: key, Message: "leaderboard is unreachable", Err: err}
	case leaderboard.KindBadResponse:
		switch leaderboard.StatusCodeOf(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return Error{Kind: KindUnauthorized, Key: "leaderboard.error.not_authenticated", Message: "leaderboard rejected the viewer token", Err: err}
		}
		return Error{Kind: KindBadGateway, Key: key, Message: "leaderboard returned a bad response", Err: err}
	default:
		return Error{Kind: KindUnknown, Key: "leaderboard.error.unknown", Message: "leaderboard failed", Err: err}
	}
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindBadGateway:
		return http.StatusBadGateway
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
