package leaderboard

import (
	"errors"
	"fmt"
)

// Kind classifies why a leaderboard could not be shown.
type Kind string

const (
	KindUnknown          Kind = "unknown"
	KindNotAuthenticated Kind = "not_authenticated"
	KindNetworkFailure   Kind = "network_failure"
	KindBadResponse      Kind = "bad_response"
)

// Error is a typed leaderboard failure.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Err        error
}

// Error renders the human-readable message.
func (e Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
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

// Wrap builds a typed Error around a cause.
func Wrap(kind Kind, message string, err error) error {
	return Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err, or KindUnknown for untyped errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var lbErr Error
	if errors.As(err, &lbErr) {
		return lbErr.Kind
	}
	return KindUnknown
}

// StatusCodeOf returns the upstream HTTP status attached to err, if any.
func StatusCodeOf(err error) int {
	var lbErr Error
	if errors.As(err, &lbErr) {
		return lbErr.StatusCode
	}
	return 0
}
