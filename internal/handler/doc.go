// Package handler implements the HTTP handlers for the health, greeting and
// calculate endpoints, plus the request instrumentation wrapped around them.
package handler
