package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken reports a token that failed verification.
var ErrInvalidToken = errors.New("invalid token")

// VerifierConfig selects how bearer tokens are checked.
type VerifierConfig struct {
	// HMACSecret verifies HS256/HS384/HS512 tokens.
	HMACSecret string
	// PublicKeyPEM verifies RSA, ECDSA or Ed25519 signed tokens.
	PublicKeyPEM string
	Issuer       string
	Audience     string
	Leeway       time.Duration
	// SkipVerify trusts the token without checking its signature. The
	// leaderboard API still verifies every forwarded token.
	SkipVerify bool
	Now        func() time.Time
}

// Verifier extracts the viewer identity from a bearer token.
type Verifier struct {
	key     any
	methods []string
	opts    []jwt.ParserOption
	skip    bool
	now     func() time.Time
}

type viewerClaims struct {
	jwt.RegisteredClaims
	Name     string `json:"name"`
	Username string `json:"username"`
}

// NewVerifier builds a Verifier. Exactly one of HMACSecret, PublicKeyPEM or
// SkipVerify must be set.
func NewVerifier(cfg VerifierConfig) (Verifier, error) {
	secret := strings.TrimSpace(cfg.HMACSecret)
	pemKey := strings.TrimSpace(cfg.PublicKeyPEM)
	configured := 0
	for _, set := range []bool{secret != "", pemKey != "", cfg.SkipVerify} {
		if set {
			configured++
		}
	}
	if configured == 0 {
		return Verifier{}, errors.New("token verification requires an HMAC secret, a public key, or explicit skip-verify")
	}
	if configured > 1 {
		return Verifier{}, errors.New("token verification accepts only one of HMAC secret, public key, or skip-verify")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	v := Verifier{skip: cfg.SkipVerify, now: now}
	switch {
	case secret != "":
		v.key = []byte(secret)
		v.methods = []string{"HS256", "HS384", "HS512"}
	case pemKey != "":
		key, methods, err := parsePublicKey([]byte(pemKey))
		if err != nil {
			return Verifier{}, err
		}
		v.key = key
		v.methods = methods
	}

	v.opts = []jwt.ParserOption{jwt.WithTimeFunc(now)}
	if len(v.methods) > 0 {
		v.opts = append(v.opts, jwt.WithValidMethods(v.methods))
	}
	if cfg.Leeway > 0 {
		v.opts = append(v.opts, jwt.WithLeeway(cfg.Leeway))
	}
	if issuer := strings.TrimSpace(cfg.Issuer); issuer != "" {
		v.opts = append(v.opts, jwt.WithIssuer(issuer))
	}
	if audience := strings.TrimSpace(cfg.Audience); audience != "" {
		v.opts = append(v.opts, jwt.WithAudience(audience))
	}
	return v, nil
}

// Verify checks raw and returns the identity it carries.
func (v Verifier) Verify(raw string) (Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identity{}, ErrNotAuthenticated
	}
	if v.skip {
		return v.inspect(raw)
	}
	if v.key == nil {
		return Identity{}, errors.New("token verifier is not configured")
	}

	var claims viewerClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	}, v.opts...)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return identityFromClaims(claims)
}

// inspect reads claims without checking the signature. Opaque tokens get a
// stable fingerprint identity so identity changes are still observable.
func (v Verifier) inspect(raw string) (Identity, error) {
	var claims viewerClaims
	_, _, err := jwt.NewParser().ParseUnverified(raw, &claims)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			sum := sha256.Sum256([]byte(raw))
			return Identity{Subject: "opaque:" + hex.EncodeToString(sum[:8])}, nil
		}
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.ExpiresAt != nil && !v.now().Before(claims.ExpiresAt.Time) {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, jwt.ErrTokenExpired)
	}
	return identityFromClaims(claims)
}

func identityFromClaims(claims viewerClaims) (Identity, error) {
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return Identity{}, fmt.Errorf("%w: subject claim is required", ErrInvalidToken)
	}
	name := strings.TrimSpace(claims.Name)
	if name == "" {
		name = strings.TrimSpace(claims.Username)
	}
	return Identity{Subject: subject, Name: name}, nil
}

func parsePublicKey(data []byte) (any, []string, error) {
	if key, err := jwt.ParseRSAPublicKeyFromPEM(data); err == nil {
		return key, []string{"RS256", "RS384", "RS512", "PS256", "PS384", "PS512"}, nil
	}
	if key, err := jwt.ParseECPublicKeyFromPEM(data); err == nil {
		return key, []string{"ES256", "ES384", "ES512"}, nil
	}
	if key, err := jwt.ParseEdPublicKeyFromPEM(data); err == nil {
		return key, []string{"EdDSA"}, nil
	}
	return nil, nil, errors.New("public key must be a PEM encoded RSA, ECDSA or Ed25519 key")
}
