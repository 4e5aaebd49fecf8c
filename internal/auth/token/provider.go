// Package token supplies the viewer identity and bearer token used to read the
// leaderboard. The issuing authentication service is opaque; this package only
// reads, verifies and forwards tokens it is handed.
package token

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotAuthenticated reports that no viewer is signed in.
var ErrNotAuthenticated = errors.New("not authenticated")

// Identity is the authenticated viewer.
type Identity struct {
	// Subject is the stable user id (the JWT "sub" claim).
	Subject string
	Name    string
}

// Provider resolves the current viewer and their bearer token.
type Provider interface {
	Identity(context.Context) (Identity, error)
	Token(context.Context) (string, error)
}

// Static serves a fixed token.
type Static struct {
	raw      string
	verifier Verifier
}

// NewStatic returns a provider for a fixed token. An empty token yields a
// provider that always reports ErrNotAuthenticated.
func NewStatic(raw string, verifier Verifier) Static {
	return Static{raw: strings.TrimSpace(raw), verifier: verifier}
}

// Identity verifies the token and returns its subject.
func (s Static) Identity(context.Context) (Identity, error) {
	if s.raw == "" {
		return Identity{}, ErrNotAuthenticated
	}
	return s.verifier.Verify(s.raw)
}

// Token returns the raw bearer token.
func (s Static) Token(context.Context) (string, error) {
	if s.raw == "" {
		return "", ErrNotAuthenticated
	}
	return s.raw, nil
}

// File reads the token from disk on every call so sign-in, sign-out and user
// switches are noticed without restarting. A missing or empty file means
// nobody is signed in.
type File struct {
	path     string
	verifier Verifier
}

// NewFile returns a provider backed by the token file at path.
func NewFile(path string, verifier Verifier) File {
	return File{path: strings.TrimSpace(path), verifier: verifier}
}

// Identity verifies the current file contents and returns the subject.
func (f File) Identity(ctx context.Context) (Identity, error) {
	raw, err := f.Token(ctx)
	if err != nil {
		return Identity{}, err
	}
	return f.verifier.Verify(raw)
}

// Token returns the current file contents.
func (f File) Token(context.Context) (string, error) {
	if f.path == "" {
		return "", ErrNotAuthenticated
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotAuthenticated
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return "", ErrNotAuthenticated
	}
	return raw, nil
}

// Verified is a provider for a token whose identity is already known, such as
// the bearer token of an authenticated web request.
type Verified struct {
	identity Identity
	raw      string
}

// NewVerified returns a provider for an already-verified token.
func NewVerified(identity Identity, raw string) Verified {
	return Verified{identity: identity, raw: strings.TrimSpace(raw)}
}

// Identity returns the verified identity.
func (v Verified) Identity(context.Context) (Identity, error) {
	if v.identity.Subject == "" || v.raw == "" {
		return Identity{}, ErrNotAuthenticated
	}
	return v.identity, nil
}

// Token returns the bearer token.
func (v Verified) Token(context.Context) (string, error) {
	if v.raw == "" {
		return "", ErrNotAuthenticated
	}
	return v.raw, nil
}
