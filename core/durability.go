package core

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// syncDiskInterval is the durability daemon. It flushes all three files every
// interval while holding the engine lock, and returns as soon as ctx is
// cancelled.
func (h *HDB) syncDiskInterval(ctx context.Context, interval time.Duration) {
	defer close(h.syncDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.mu.Lock()
			err := h.flush()
			h.mu.Unlock()

			if err != nil {
				h.log.Error("background flush failed", zap.Error(err))
			}

		case <-ctx.Done():
			return
		}
	}
}

// flush forces buffered writes of all three files to stable storage. The
// free-list contents are not rewritten here; see persist. Callers hold h.mu.
func (h *HDB) flush() error {
	var errs []error

	if err := h.dir.flush(); err != nil {
		errs = append(errs, ioError("sync hash file", err))
	}
	if err := h.data.sync(); err != nil {
		errs = append(errs, ioError("sync data file", err))
	}
	if err := h.free.sync(); err != nil {
		errs = append(errs, ioError("sync free-list file", err))
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	h.flushes.Add(1)
	return nil
}
