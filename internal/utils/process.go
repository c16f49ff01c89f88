package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// InterruptContext returns a context that is cancelled when the process
// receives an interrupt (Ctrl+C) or termination signal (SIGTERM). Commands
// use it to close the engine cleanly instead of dying mid-write.
func InterruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
