package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/0xRadioAc7iv/go-hdb/core"
)

func openBenchDB(t *testing.T, dir string) *core.HDB {
	t.Helper()

	db, err := core.Open(filepath.Join(dir, "hash.db"), filepath.Join(dir, "data.db"), filepath.Join(dir, "deleted.db"),
		core.WithSyncInterval(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func TestRun(t *testing.T) {
	t.Run("all phases complete", func(t *testing.T) {
		dir := t.TempDir()
		db := openBenchDB(t, dir)

		if err := run(context.Background(), db, 50); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatal(err)
		}

		// Every surviving key is removed by the Delete phase
		db = openBenchDB(t, dir)
		defer db.Close()

		stats, err := db.Stats()
		if err != nil {
			t.Fatal(err)
		}
		if stats.Keys != 0 || stats.DataSize != 0 {
			t.Fatalf("expected an empty store after the Delete phase, got %+v", stats)
		}
	})

	t.Run("errors are returned instead of exiting", func(t *testing.T) {
		db := openBenchDB(t, t.TempDir())
		db.Close()

		if err := run(context.Background(), db, 10); !errors.Is(err, core.ErrClosed) {
			t.Fatalf("expected ErrClosed, got %v", err)
		}
	})
}
