// Package web parses web command flags and launches the leaderboard web
// server.
package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/louisbranch/xpboard/internal/auth/token"
	"github.com/louisbranch/xpboard/internal/leaderboard/client"
	entrypoint "github.com/louisbranch/xpboard/internal/platform/cmd"
	"github.com/louisbranch/xpboard/internal/platform/config"
	"github.com/louisbranch/xpboard/internal/services/web"
)

// Config holds web command configuration.
type Config struct {
	HTTPAddr   string `env:"XPBOARD_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	APIBaseURL string `env:"XPBOARD_API_BASE_URL"`
	TopSize    int    `env:"XPBOARD_TOP_SIZE" envDefault:"25"`
	Token      token.Settings
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	if err := config.LoadDotenv(".env"); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Leaderboard API base URL")
	fs.IntVar(&cfg.TopSize, "top", cfg.TopSize, "Number of leading players returned by the API")
	fs.StringVar(&cfg.Token.HMACSecret, "jwt-hmac-secret", cfg.Token.HMACSecret, "HMAC secret for viewer tokens")
	fs.StringVar(&cfg.Token.PublicKeyFile, "jwt-public-key-file", cfg.Token.PublicKeyFile, "PEM public key for viewer tokens")
	fs.StringVar(&cfg.Token.Issuer, "jwt-issuer", cfg.Token.Issuer, "Required token issuer")
	fs.StringVar(&cfg.Token.Audience, "jwt-audience", cfg.Token.Audience, "Required token audience")
	fs.BoolVar(&cfg.Token.SkipVerify, "jwt-skip-verify", cfg.Token.SkipVerify, "Trust viewer tokens without checking signatures")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("leaderboard api base url is required")
	}
	if !c.Token.Configured() {
		return errors.New("viewer token verification is not configured: set a jwt hmac secret, a jwt public key file or jwt skip-verify")
	}
	if c.TopSize < 1 {
		return fmt.Errorf("top size must be positive, got %d", c.TopSize)
	}
	return nil
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		verifier, err := cfg.Token.NewVerifier()
		if err != nil {
			return fmt.Errorf("init token verifier: %w", err)
		}
		fetcher, err := client.New(client.Config{BaseURL: cfg.APIBaseURL})
		if err != nil {
			return fmt.Errorf("init leaderboard client: %w", err)
		}
		log.Printf("leaderboard api %s", fetcher.Endpoint())
		server, err := web.NewServer(web.Config{
			HTTPAddr: cfg.HTTPAddr,
			Gateway:  fetcher,
			Verifier: verifier,
			TopSize:  cfg.TopSize,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
