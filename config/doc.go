// Package config loads the service configuration from an optional YAML file
// and environment variables. The listening port comes from PORT, matching the
// usual platform convention, and defaults to 3000.
package config
