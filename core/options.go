package core

import (
	"time"

	"go.uber.org/zap"

	"github.com/0xRadioAc7iv/go-hdb/internal"
)

// Option configures an engine at Open.
type Option func(*internal.Config)

// WithCapacity sets the number of directory slots. It only matters when the
// hash file is created; an existing file must match it.
func WithCapacity(capacity uint32) Option {
	return func(c *internal.Config) {
		c.Capacity = capacity
	}
}

// WithSyncInterval sets how often the durability daemon flushes.
func WithSyncInterval(interval time.Duration) Option {
	return func(c *internal.Config) {
		c.SyncInterval = interval
	}
}

// WithLogger sets the logger the engine reports to. The default discards output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *internal.Config) {
		c.Logger = logger
	}
}
