package config

import (
	"time"

	"github.com/phrazzld/boundq/internal/queue"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Queue  QueueConfig  `mapstructure:"queue"  validate:"required"`
	Probe  ProbeConfig  `mapstructure:"probe"  validate:"required"`
	Auth   AuthConfig   `mapstructure:"auth"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// QueueConfig contains the settings of the probe queue.
type QueueConfig struct {
	// Concurrency is not validated: the queue clamps values below 1.
	Concurrency  int  `mapstructure:"concurrency"`
	AutoStart    bool `mapstructure:"auto_start"`
	EventHistory int  `mapstructure:"event_history" validate:"gte=0"`
}

// Options converts the settings into queue construction options.
func (c QueueConfig) Options() queue.Config {
	return queue.Config{
		Concurrency: c.Concurrency,
		AutoStart:   c.AutoStart,
	}
}

// ProbeConfig contains the settings of the HTTP probe worker.
type ProbeConfig struct {
	Method            string `mapstructure:"method"              validate:"required,oneof=HEAD GET"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"     validate:"gt=0"`
	UserAgent         string `mapstructure:"user_agent"          validate:"required"`
	ExpectStatusBelow int    `mapstructure:"expect_status_below" validate:"gte=100,lte=600"`
}

// Timeout returns the per-request timeout.
func (c ProbeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AuthConfig contains authentication settings. Authentication is disabled
// when JWTSecret is empty.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// Enabled reports whether API requests must carry a bearer token.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}

// TokenLifetime returns how long issued tokens stay valid.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}
