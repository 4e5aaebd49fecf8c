package token

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Settings is the environment form of VerifierConfig.
type Settings struct {
	HMACSecret    string        `env:"XPBOARD_JWT_HMAC_SECRET"`
	PublicKeyFile string        `env:"XPBOARD_JWT_PUBLIC_KEY_FILE"`
	Issuer        string        `env:"XPBOARD_JWT_ISSUER"`
	Audience      string        `env:"XPBOARD_JWT_AUDIENCE"`
	Leeway        time.Duration `env:"XPBOARD_JWT_LEEWAY" envDefault:"30s"`
	SkipVerify    bool          `env:"XPBOARD_JWT_SKIP_VERIFY"`
}

// Configured reports whether a signing key or skip-verify was chosen.
func (s Settings) Configured() bool {
	return strings.TrimSpace(s.HMACSecret) != "" || strings.TrimSpace(s.PublicKeyFile) != "" || s.SkipVerify
}

// NewVerifier reads the public key file, if any, and builds a Verifier.
func (s Settings) NewVerifier() (Verifier, error) {
	cfg := VerifierConfig{
		HMACSecret: s.HMACSecret,
		Issuer:     s.Issuer,
		Audience:   s.Audience,
		Leeway:     s.Leeway,
		SkipVerify: s.SkipVerify,
	}
	if path := strings.TrimSpace(s.PublicKeyFile); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Verifier{}, fmt.Errorf("read jwt public key: %w", err)
		}
		cfg.PublicKeyPEM = string(data)
	}
	return NewVerifier(cfg)
}
