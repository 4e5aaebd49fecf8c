package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	BaseURL string `env:"XPBOARD_CMD_TEST_BASE_URL" envDefault:"http://127.0.0.1:3000"`
	TopSize int    `env:"XPBOARD_CMD_TEST_TOP" envDefault:"25"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("XPBOARD_CMD_TEST_BASE_URL", "http://env:9000")
	t.Setenv("XPBOARD_CMD_TEST_TOP", "10")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfgRef.BaseURL, "api", cfgRef.BaseURL, "api base url")
	fs.IntVar(&cfgRef.TopSize, "top", cfgRef.TopSize, "top size")

	if err := ParseArgs(fs, []string{"-api", "http://flag:9001"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfgRef.BaseURL != "http://flag:9001" {
		t.Fatalf("expected flag value for base url, got %q", cfgRef.BaseURL)
	}
	if cfgRef.TopSize != 10 {
		t.Fatalf("expected env top size, got %d", cfgRef.TopSize)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceWeb, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("XPBOARD_OTEL_ENDPOINT", "")
	want := errors.New("run failed")

	called := false
	err := RunWithTelemetry(context.Background(), ServiceBoard, func(context.Context) error {
		called = true
		return want
	})
	if !called {
		t.Fatal("run function was not called")
	}
	if !errors.Is(err, want) {
		t.Fatalf("RunWithTelemetry() error = %v, want %v", err, want)
	}
}
