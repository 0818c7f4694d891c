// Package config loads, parses and validates service configuration from
// defaults, an optional YAML file and BOUNDQ_-prefixed environment variables.
// It keeps configuration details separate from the queue and the HTTP layer.
package config
