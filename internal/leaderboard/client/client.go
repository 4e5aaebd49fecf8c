// Package client reads leaderboard snapshots from the leaderboard HTTP API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/xpboard/internal/leaderboard"
)

const (
	// DefaultPath is the leaderboard read endpoint.
	DefaultPath = "/api/leaderboard"

	defaultMaxAttempts   = 2
	defaultRetryInterval = 250 * time.Millisecond
	maxBodyBytes         = 1 << 20

	tracerName = "github.com/louisbranch/xpboard/internal/leaderboard/client"
)

// Config configures a Client.
type Config struct {
	// BaseURL is the API origin, for example https://api.example.com.
	BaseURL string
	// Path overrides DefaultPath.
	Path       string
	HTTPClient *http.Client
	// MaxAttempts bounds the total number of requests per fetch. Zero means
	// one initial attempt plus one retry.
	MaxAttempts uint
	// RetryInterval is the pause before a retry.
	RetryInterval time.Duration
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// Client fetches leaderboard snapshots.
type Client struct {
	endpoint      string
	http          *http.Client
	maxAttempts   uint
	retryInterval time.Duration
	tracer        trace.Tracer
	propagator    propagation.TextMapPropagator
}

// New validates cfg and returns a Client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, errors.New("leaderboard base url is required")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse leaderboard base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("leaderboard base url must be http or https, got %q", base)
	}
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = DefaultPath
	}
	endpoint := parsed.JoinPath(path)

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	attempts := cfg.MaxAttempts
	if attempts == 0 {
		attempts = defaultMaxAttempts
	}
	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Client{
		endpoint:      endpoint.String(),
		http:          httpClient,
		maxAttempts:   attempts,
		retryInterval: interval,
		tracer:        tp.Tracer(tracerName),
		propagator:    otel.GetTextMapPropagator(),
	}, nil
}

// Endpoint returns the resolved leaderboard URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchSnapshot performs one authenticated read. Transport failures and
// 502/503/504 responses are retried within the attempt budget; every other
// failure is returned immediately.
func (c *Client) FetchSnapshot(ctx context.Context, bearer string) (leaderboard.Snapshot, error) {
	bearer = strings.TrimSpace(bearer)
	if bearer == "" {
		return leaderboard.Snapshot{}, leaderboard.E(leaderboard.KindNotAuthenticated, "bearer token is required")
	}

	ctx, span := c.tracer.Start(ctx, "leaderboard.fetch", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	attempt := 0
	snapshot, err := backoff.Retry(ctx, func() (leaderboard.Snapshot, error) {
		attempt++
		snap, err := c.fetchOnce(ctx, bearer)
		if err != nil && !retryable(err) {
			return snap, backoff.Permanent(err)
		}
		return snap, err
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(c.retryInterval)),
		backoff.WithMaxTries(c.maxAttempts),
	)
	span.SetAttributes(attribute.Int("leaderboard.attempts", attempt))
	if err != nil {
		err = classify(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(leaderboard.KindOf(err)))
		return leaderboard.Snapshot{}, err
	}
	span.SetAttributes(
		attribute.Int("leaderboard.top_entries", len(snapshot.Top)),
		attribute.Int("leaderboard.viewer_rank", snapshot.Viewer.Rank),
	)
	return snapshot, nil
}

func (c *Client) fetchOnce(ctx context.Context, bearer string) (leaderboard.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return leaderboard.Snapshot{}, leaderboard.Wrap(leaderboard.KindNetworkFailure, "build leaderboard request", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return leaderboard.Snapshot{}, leaderboard.Wrap(leaderboard.KindNetworkFailure, "leaderboard request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		return leaderboard.Snapshot{}, leaderboard.Error{
			Kind:       leaderboard.KindBadResponse,
			Message:    "leaderboard responded with " + http.StatusText(resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	var payload wireSnapshot
	decoder := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	if err := decoder.Decode(&payload); err != nil {
		return leaderboard.Snapshot{}, leaderboard.Wrap(leaderboard.KindBadResponse, "decode leaderboard response", err)
	}
	return payload.snapshot()
}

func retryable(err error) bool {
	switch leaderboard.KindOf(err) {
	case leaderboard.KindNetworkFailure:
		return true
	case leaderboard.KindBadResponse:
		switch leaderboard.StatusCodeOf(err) {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
	}
	return false
}

// classify keeps typed errors and turns context failures from the retry loop
// into network failures.
func classify(ctx context.Context, err error) error {
	var lbErr leaderboard.Error
	if errors.As(err, &lbErr) {
		return lbErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return leaderboard.Wrap(leaderboard.KindNetworkFailure, "leaderboard request canceled", ctxErr)
	}
	return leaderboard.Wrap(leaderboard.KindNetworkFailure, "leaderboard request failed", err)
}
