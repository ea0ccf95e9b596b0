package engine

import "time"

// Defaults applied when corresponding Config fields are unset.
const (
	defaultMaxQueueDepth = 32
	defaultMaxWait       = 30 * time.Second
)

// Config encapsulates the tunables for Engine construction.
type Config struct {
	// DefaultModel is used when a request omits the model id.
	DefaultModel string
	// MaxQueueDepth bounds the per-instance FIFO queue.
	MaxQueueDepth int
	// MaxWait bounds how long a call waits for a queue or in-flight slot.
	MaxWait time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxQueueDepth <= 0 {
		c.MaxQueueDepth = defaultMaxQueueDepth
	}
	if c.MaxWait <= 0 {
		c.MaxWait = defaultMaxWait
	}
	return c
}
