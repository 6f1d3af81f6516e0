// Package healthcheck probes a running instance's /health endpoint. It backs
// the healthcheck sub-command used by container runtimes.
package healthcheck
