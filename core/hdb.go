package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/0xRadioAc7iv/go-hdb/internal"
	"github.com/0xRadioAc7iv/go-hdb/internal/lock"
	"github.com/0xRadioAc7iv/go-hdb/internal/record"
)

type HDB struct {
	lockFile *os.File
	dir      *directory
	data     *dataStore
	free     *freeList

	log *zap.Logger

	syncCancel context.CancelFunc
	syncDone   chan struct{}
	flushes    atomic.Uint64

	// mu is held for writing by Put, Delete, Sync, Close and the durability
	// daemon, and for reading by lookups.
	mu     sync.RWMutex
	closed bool
}

// Stats is a point-in-time summary of an open engine.
type Stats struct {
	Keys        int    // Live directory slots
	Capacity    uint32 // Total directory slots
	DataSize    int64  // Bytes in the data file
	FreeOffsets int    // Entries on the free list
	Flushes     uint64 // Completed flushes, background and explicit
}

// Open opens or creates the three files backing an engine and starts the
// durability daemon. On any failure every handle acquired so far is released
// and an error wrapping ErrInitialization is returned.
func Open(hashPath, dataPath, freeListPath string, opts ...Option) (_ *HDB, err error) {
	cfg := internal.DefaultConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	if cfg.Capacity < MinimumCapacity {
		return nil, initError("validate options", fmt.Errorf("capacity must be at least %d", MinimumCapacity))
	}
	if cfg.SyncInterval <= 0 {
		return nil, initError("validate options", errors.New("sync interval must be positive"))
	}

	h := &HDB{
		log:      cfg.Logger.With(zap.String("hash_file", hashPath)),
		syncDone: make(chan struct{}),
	}

	defer func() {
		if err != nil {
			h.closeFiles()
		}
	}()

	if h.lockFile, err = lock.LockFile(hashPath); err != nil {
		return nil, initError("lock hash file", err)
	}

	if h.dir, err = openDirectory(hashPath, cfg.Capacity, h.log); err != nil {
		return nil, initError("open hash file", err)
	}

	if h.data, err = openDataStore(dataPath); err != nil {
		return nil, initError("open data file", err)
	}

	if h.free, err = openFreeList(freeListPath, h.log); err != nil {
		return nil, initError("open free-list file", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	h.syncCancel = cancel
	go h.syncDiskInterval(ctx, cfg.SyncInterval)

	h.log.Info("hdb opened",
		zap.Uint32("capacity", cfg.Capacity),
		zap.Int64("data_size", h.data.size),
		zap.Int("free_offsets", h.free.len()),
		zap.Duration("sync_interval", cfg.SyncInterval),
	)

	return h, nil
}

func hashKey(key []byte) (uint32, error) {
	if len(key) == 0 {
		return 0, ErrKeyEmpty
	}

	hash := record.HashKey(key)
	if hash == 0 {
		return 0, ErrReservedHash
	}

	return hash, nil
}

// Put stores value under key. Whatever occupied the key's slot before, the
// same key or a colliding one, is deleted first so its bytes are reclaimed.
func (h *HDB) Put(key, value []byte) error {
	hash, err := hashKey(key)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}

	index, slot, found, err := h.dir.locate(hash)
	if err != nil {
		return ioError("read slot", err)
	}

	if !slot.IsEmpty() {
		if !found {
			h.log.Debug("evicting colliding key", zap.Uint32("slot", index), zap.Uint32("old_hash", slot.Hash), zap.Uint32("new_hash", hash))
		}

		if err := h.deleteSlot(index, slot); err != nil {
			return err
		}
	}

	offset, err := h.place(value)
	if err != nil {
		return err
	}

	if err := h.dir.write(hash, uint64(offset), uint64(len(value))); err != nil {
		return ioError("write slot", err)
	}

	return nil
}

// place writes value into the data file and returns its offset. The most
// recently freed offset is reused when it still marks a value boundary;
// anything else is discarded and the value appended.
func (h *HDB) place(value []byte) (int64, error) {
	offset, ok := h.free.pop()

	if ok {
		reusable, err := h.reusable(offset)
		if err != nil {
			return 0, ioError("read slots", err)
		}
		if !reusable {
			h.log.Debug("discarding stale free offset", zap.Int64("offset", offset), zap.Int64("data_size", h.data.size))
			ok = false
		}
	}

	if !ok {
		offset, err := h.data.append(value)
		if err != nil {
			return 0, ioError("append value", err)
		}
		return offset, nil
	}

	if err := h.data.insertAt(offset, value); err != nil {
		return 0, ioError("insert value", err)
	}

	if len(value) > 0 {
		delta := int64(len(value))
		if err := h.dir.adjustOffsets(func(o uint64) bool { return o >= uint64(offset) }, delta); err != nil {
			return 0, ioError("rewrite slot offsets", err)
		}
		h.free.adjust(func(o int64) bool { return o >= offset }, delta)
	}

	return offset, nil
}

// reusable reports whether a popped free offset is still a place a value can
// be inserted without splitting another one.
func (h *HDB) reusable(offset int64) (bool, error) {
	if offset < 0 || offset > h.data.size {
		return false, nil
	}
	if offset == h.data.size {
		return true, nil
	}
	return h.dir.isBoundary(uint64(offset))
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (h *HDB) Get(key []byte) ([]byte, error) {
	hash, err := hashKey(key)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil, ErrClosed
	}

	_, slot, found, err := h.dir.locate(hash)
	if err != nil {
		return nil, ioError("read slot", err)
	}
	if !found {
		return nil, ErrKeyNotFound
	}

	value, err := h.data.read(int64(slot.Offset), int64(slot.Length))
	if err != nil {
		return nil, ioError("read value", err)
	}

	return value, nil
}

// Exists reports whether key currently has a live slot.
func (h *HDB) Exists(key []byte) (bool, error) {
	hash, err := hashKey(key)
	if err != nil {
		return false, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return false, ErrClosed
	}

	_, _, found, err := h.dir.locate(hash)
	if err != nil {
		return false, ioError("read slot", err)
	}

	return found, nil
}

// Delete removes key and compacts the data file, or returns ErrKeyNotFound.
func (h *HDB) Delete(key []byte) error {
	hash, err := hashKey(key)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}

	index, slot, found, err := h.dir.locate(hash)
	if err != nil {
		return ioError("read slot", err)
	}
	if !found {
		return ErrKeyNotFound
	}

	return h.deleteSlot(index, slot)
}

// deleteSlot empties the slot, closes the gap its value leaves in the data
// file and records its offset on the free list. Callers hold h.mu.
func (h *HDB) deleteSlot(index uint32, slot record.Slot) error {
	if err := h.dir.clear(index); err != nil {
		return ioError("clear slot", err)
	}

	if err := h.data.removeAndCompact(int64(slot.Offset), int64(slot.Length)); err != nil {
		return ioError("compact data file", err)
	}

	if slot.Length > 0 {
		delta := -int64(slot.Length)
		if err := h.dir.adjustOffsets(func(o uint64) bool { return o > slot.Offset }, delta); err != nil {
			return ioError("rewrite slot offsets", err)
		}
		h.free.adjust(func(o int64) bool { return o > int64(slot.Offset) }, delta)
	}

	h.free.push(int64(slot.Offset))

	return nil
}

// Count returns the number of live directory slots.
func (h *HDB) Count() (int, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return 0, ErrClosed
	}

	slots, err := h.dir.liveSlots()
	if err != nil {
		return 0, ioError("scan slots", err)
	}

	return len(slots), nil
}

// Stats returns a snapshot of the engine's counters.
func (h *HDB) Stats() (Stats, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return Stats{}, ErrClosed
	}

	slots, err := h.dir.liveSlots()
	if err != nil {
		return Stats{}, ioError("scan slots", err)
	}

	return Stats{
		Keys:        len(slots),
		Capacity:    h.dir.capacity,
		DataSize:    h.data.size,
		FreeOffsets: h.free.len(),
		Flushes:     h.flushes.Load(),
	}, nil
}

// Sync writes the free list out and flushes all three files without waiting
// for the daemon.
func (h *HDB) Sync() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}

	if err := h.free.persist(); err != nil {
		return ioError("write free list", err)
	}

	return h.flush()
}

// Close stops the durability daemon and waits for it, then writes the free
// list, flushes and closes every file and releases the lock. Calling Close
// again returns nil.
func (h *HDB) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()

	h.syncCancel()
	<-h.syncDone

	h.mu.Lock()
	defer h.mu.Unlock()

	var errs []error

	if err := h.free.persist(); err != nil {
		errs = append(errs, ioError("write free list", err))
	}
	if err := h.flush(); err != nil {
		errs = append(errs, err)
	}
	if err := h.closeFiles(); err != nil {
		errs = append(errs, err)
	}

	h.log.Info("hdb closed")

	return errors.Join(errs...)
}

// closeFiles releases whatever handles are open. It tolerates a partially
// opened engine.
func (h *HDB) closeFiles() error {
	var errs []error

	if h.dir != nil {
		if err := h.dir.close(); err != nil {
			errs = append(errs, ioError("close hash file", err))
		}
		h.dir = nil
	}
	if h.data != nil {
		if err := h.data.close(); err != nil {
			errs = append(errs, ioError("close data file", err))
		}
		h.data = nil
	}
	if h.free != nil {
		if err := h.free.close(); err != nil {
			errs = append(errs, ioError("close free-list file", err))
		}
		h.free = nil
	}
	if h.lockFile != nil {
		if err := lock.UnlockFile(h.lockFile); err != nil {
			errs = append(errs, ioError("release lock", err))
		}
		h.lockFile = nil
	}

	return errors.Join(errs...)
}
