// Package httpserver wraps http.Server with listen-address validation,
// conservative timeouts and graceful shutdown.
package httpserver
