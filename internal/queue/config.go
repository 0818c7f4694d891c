package queue

// Config holds the construction options of a BoundedQueue.
type Config struct {
	// Concurrency is the maximum number of items in flight at once.
	// Values below 1 are clamped to 1.
	Concurrency int `mapstructure:"concurrency"`

	// AutoStart makes Enqueue and EnqueueMany schedule work immediately.
	// When false, work begins on Start or Resume.
	AutoStart bool `mapstructure:"auto_start"`
}

// DefaultConfig returns a Config with one slot and auto-start enabled.
func DefaultConfig() Config {
	return Config{
		Concurrency: 1,
		AutoStart:   true,
	}
}
