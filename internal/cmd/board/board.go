// Package board parses board command flags and prints the leaderboard to a
// terminal.
package board

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/louisbranch/xpboard/internal/auth/token"
	"github.com/louisbranch/xpboard/internal/leaderboard/client"
	"github.com/louisbranch/xpboard/internal/leaderboard/view"
	entrypoint "github.com/louisbranch/xpboard/internal/platform/cmd"
	"github.com/louisbranch/xpboard/internal/platform/config"
	"github.com/louisbranch/xpboard/internal/platform/i18n"
)

// Config holds board command configuration.
type Config struct {
	APIBaseURL string        `env:"XPBOARD_API_BASE_URL"`
	Token      string        `env:"XPBOARD_TOKEN"`
	TokenFile  string        `env:"XPBOARD_TOKEN_FILE"`
	TopSize    int           `env:"XPBOARD_TOP_SIZE" envDefault:"25"`
	Lang       string        `env:"XPBOARD_LANG"`
	Timeout    time.Duration `env:"XPBOARD_TIMEOUT" envDefault:"10s"`
	// Refresh re-reads the leaderboard on this interval. Zero prints once.
	Refresh time.Duration `env:"XPBOARD_REFRESH"`
	JSON    bool          `env:"XPBOARD_JSON"`
	Auth    token.Settings
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

	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Leaderboard API base URL")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "Bearer token for the viewer")
	fs.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "File holding the viewer bearer token")
	fs.IntVar(&cfg.TopSize, "top", cfg.TopSize, "Number of leading players returned by the API")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "Display language (en-US, pt-BR)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Timeout for a single read")
	fs.DurationVar(&cfg.Refresh, "refresh", cfg.Refresh, "Refresh interval; zero prints once and exits")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "Print JSON instead of text")
	fs.BoolVar(&cfg.Auth.SkipVerify, "jwt-skip-verify", cfg.Auth.SkipVerify, "Read token claims without checking signatures")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the command cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return errors.New("leaderboard api base url is required")
	}
	if c.TopSize < 1 {
		return fmt.Errorf("top size must be positive, got %d", c.TopSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Refresh < 0 {
		return fmt.Errorf("refresh must not be negative, got %s", c.Refresh)
	}
	return nil
}

// Run prints the leaderboard to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if out == nil {
		out = os.Stdout
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBoard, func(ctx context.Context) error {
		provider, err := newProvider(cfg)
		if err != nil {
			return err
		}
		fetcher, err := client.New(client.Config{BaseURL: cfg.APIBaseURL})
		if err != nil {
			return fmt.Errorf("init leaderboard client: %w", err)
		}
		p := newPrinter(out, localeTag(cfg.Lang), cfg.JSON)
		if cfg.Refresh > 0 {
			return watch(ctx, cfg, fetcher, provider, p)
		}
		return once(ctx, cfg, fetcher, provider, p)
	})
}

// newProvider reads the token from a file when one is named. Without
// verification settings the token's claims are trusted as-is.
func newProvider(cfg Config) (token.Provider, error) {
	settings := cfg.Auth
	if !settings.Configured() {
		settings.SkipVerify = true
	}
	verifier, err := settings.NewVerifier()
	if err != nil {
		return nil, fmt.Errorf("init token verifier: %w", err)
	}
	if path := strings.TrimSpace(cfg.TokenFile); path != "" {
		return token.NewFile(path, verifier), nil
	}
	return token.NewStatic(cfg.Token, verifier), nil
}

func once(ctx context.Context, cfg Config, fetcher view.Fetcher, provider token.Provider, p *printer) error {
	if _, err := provider.Identity(ctx); err != nil {
		if renderErr := p.render(view.State{Status: view.StatusIdle}); renderErr != nil {
			return renderErr
		}
		return fmt.Errorf("resolve viewer: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	states := make(chan view.State, 4)
	controller := view.NewController(fetcher, provider,
		view.WithTopSize(cfg.TopSize),
		view.WithObserver(func(s view.State) {
			select {
			case states <- s:
			default:
			}
		}),
	)
	done := make(chan error, 1)
	go func() { done <- controller.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	if err := controller.Activate(ctx); err != nil {
		return fmt.Errorf("activate leaderboard: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for leaderboard: %w", ctx.Err())
		case s := <-states:
			if s.Status == view.StatusLoading && p.json {
				continue
			}
			if err := p.render(s); err != nil {
				return err
			}
			switch s.Status {
			case view.StatusLoaded:
				return nil
			case view.StatusFailed:
				return fmt.Errorf("load leaderboard: %w", s.Err)
			case view.StatusIdle:
				return fmt.Errorf("load leaderboard: %w", token.ErrNotAuthenticated)
			}
		}
	}
}

func watch(ctx context.Context, cfg Config, fetcher *client.Client, provider token.Provider, p *printer) error {
	log.Printf("watching %s every %s", fetcher.Endpoint(), cfg.Refresh)
	controller := view.NewController(fetcher, provider,
		view.WithTopSize(cfg.TopSize),
		view.WithFetchTimeout(cfg.Timeout),
		view.WithObserver(func(s view.State) {
			if err := p.render(s); err != nil {
				log.Printf("render leaderboard: %v", err)
			}
		}),
	)
	done := make(chan error, 1)
	go func() { done <- controller.Run(ctx) }()

	activate := func() {
		if err := controller.Activate(ctx); err != nil && ctx.Err() == nil {
			log.Printf("activate leaderboard: %v", err)
		}
	}
	activate()

	ticker := time.NewTicker(cfg.Refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			<-done
			return nil
		case err := <-done:
			if ctx.Err() != nil {
				return nil
			}
			return err
		case <-ticker.C:
			activate()
		}
	}
}

// localeTag accepts BCP 47 tags and POSIX locales such as pt_BR.UTF-8,
// falling back to LANG when value is empty.
func localeTag(value string) language.Tag {
	if strings.TrimSpace(value) == "" {
		value = os.Getenv("LANG")
	}
	if idx := strings.IndexAny(value, ".@"); idx >= 0 {
		value = value[:idx]
	}
	tag, _ := i18n.ParseTag(strings.ReplaceAll(value, "_", "-"))
	return tag
}
