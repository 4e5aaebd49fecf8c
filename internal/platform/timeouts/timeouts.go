// Package timeouts defines the timeout constants shared by xpboard commands.
package timeouts

import "time"

// Upstream caps one leaderboard activation, retries included.
const Upstream = 10 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
