package core

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound is returned by Get and Delete when no live slot matches
	// the key's hash.
	ErrKeyNotFound = errors.New("key not found")

	// ErrStorageIO wraps every read, write, seek, truncate or sync failure.
	ErrStorageIO = errors.New("storage i/o failure")

	// ErrInitialization is returned by Open when an artifact cannot be
	// created, opened, locked or mapped.
	ErrInitialization = errors.New("initialization failure")

	ErrClosed       = errors.New("hdb closed")
	ErrKeyEmpty     = errors.New("key cannot be empty")
	ErrReservedHash = errors.New("key hashes to 0, which marks an empty slot")
)

func ioError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageIO, op, err)
}

func initError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInitialization, op, err)
}
