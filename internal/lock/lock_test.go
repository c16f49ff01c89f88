package lock_test

import (
	"path/filepath"
	"testing"

	"github.com/0xRadioAc7iv/go-hdb/internal/lock"
)

func TestLockFile(t *testing.T) {
	t.Run("second lock on the same path fails while the first is held", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hash.db")

		f, err := lock.LockFile(path)
		if err != nil {
			t.Fatalf("could not acquire initial lock: %v", err)
		}

		if _, err := lock.LockFile(path); err == nil {
			t.Error("second lock was not supposed to succeed")
		}

		if err := lock.UnlockFile(f); err != nil {
			t.Fatalf("unlock failed: %v", err)
		}
	})

	t.Run("lock can be re-acquired after release", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hash.db")

		f, err := lock.LockFile(path)
		if err != nil {
			t.Fatalf("could not acquire lock: %v", err)
		}
		if err := lock.UnlockFile(f); err != nil {
			t.Fatalf("unlock failed: %v", err)
		}

		f, err = lock.LockFile(path)
		if err != nil {
			t.Fatalf("lock was supposed to be available again: %v", err)
		}
		lock.UnlockFile(f)
	})

	t.Run("different paths lock independently", func(t *testing.T) {
		dir := t.TempDir()

		a, err := lock.LockFile(filepath.Join(dir, "a.db"))
		if err != nil {
			t.Fatal(err)
		}
		defer lock.UnlockFile(a)

		b, err := lock.LockFile(filepath.Join(dir, "b.db"))
		if err != nil {
			t.Fatalf("independent path should lock: %v", err)
		}
		defer lock.UnlockFile(b)
	})
}
