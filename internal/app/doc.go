// Package app assembles the rate comparison server: configuration, logging,
// telemetry, services, middleware chain, and routes, plus the HTTP server
// lifecycle with graceful shutdown.
package app
