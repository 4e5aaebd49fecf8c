package web

import (
	"context"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/xpboard/internal/auth/token"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.TopSize != 25 {
		t.Fatalf("expected default top size, got %d", cfg.TopSize)
	}
	if cfg.Token.Leeway != 30*time.Second {
		t.Fatalf("expected default leeway, got %s", cfg.Token.Leeway)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("XPBOARD_WEB_HTTP_ADDR", "0.0.0.0:9000")
	t.Setenv("XPBOARD_API_BASE_URL", "https://api.example.com")
	t.Setenv("XPBOARD_JWT_HMAC_SECRET", "from-env")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "127.0.0.1:9002", "-jwt-issuer", "https://auth.example"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9002" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Fatalf("expected env api url, got %q", cfg.APIBaseURL)
	}
	if cfg.Token.HMACSecret != "from-env" || cfg.Token.Issuer != "https://auth.example" {
		t.Fatalf("unexpected token settings: %+v", cfg.Token)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{APIBaseURL: "https://api.example.com", TopSize: 25, Token: token.Settings{HMACSecret: "s"}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "api url", mutate: func(c *Config) { c.APIBaseURL = "" }, want: "api base url"},
		{name: "verifier", mutate: func(c *Config) { c.Token = token.Settings{} }, want: "verification is not configured"},
		{name: "top size", mutate: func(c *Config) { c.TopSize = 0 }, want: "top size"},
	}
	for _, tc := range tests {
		cfg := valid
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: validate error = %v, want %q", tc.name, err, tc.want)
		}
	}
}

func TestRunFailsFastWithoutVerifier(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Config{APIBaseURL: "https://api.example.com", TopSize: 25})
	if err == nil || !strings.Contains(err.Error(), "verification is not configured") {
		t.Fatalf("expected verifier error, got %v", err)
	}
}
