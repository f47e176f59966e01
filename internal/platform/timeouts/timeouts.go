// Package timeouts defines the timeout constants shared by intercambio
// processes.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight requests during
// graceful shutdown.
const Shutdown = 5 * time.Second

// Telemetry limits how long exporters may take to flush on exit.
const Telemetry = 5 * time.Second
