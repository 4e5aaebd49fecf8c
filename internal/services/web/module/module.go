// Package module defines the feature contract used by web composition.
package module

import "net/http"

// Viewer contains user-facing chrome data for the page header.
type Viewer struct {
	UserID      string
	DisplayName string
}

// SignedIn reports whether the viewer carries an identity.
func (v Viewer) SignedIn() bool {
	return v.UserID != ""
}

// ResolveViewer resolves header viewer state for a request.
type ResolveViewer func(*http.Request) Viewer

// ResolveLanguage returns the effective request language.
type ResolveLanguage func(*http.Request) string

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// HealthReporter is an optional interface for modules that can report their
// operational availability.
type HealthReporter interface {
	Healthy() bool
}
