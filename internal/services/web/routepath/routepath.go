// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root              = "/"
	Health            = "/healthz"
	LeaderboardPrefix = "/leaderboard/"
	Leaderboard       = "/leaderboard"
	LeaderboardBoard  = "/leaderboard/board"
	LeaderboardJSON   = "/leaderboard/board.json"
)

// WithLang returns path with the lang query parameter set, or path unchanged
// when lang is blank.
func WithLang(path, lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return path
	}
	return path + "?" + url.Values{"lang": []string{lang}}.Encode()
}
