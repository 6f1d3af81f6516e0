// Package logger builds the service's structured logger on top of log/slog.
// Production environments get JSON records; every other environment gets
// human-readable text.
package logger
