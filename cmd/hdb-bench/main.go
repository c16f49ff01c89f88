package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/0xRadioAc7iv/go-hdb/core"
	"github.com/0xRadioAc7iv/go-hdb/internal/utils"
)

type phase struct {
	name string
	run  func(db *core.HDB, key, value []byte) error
}

func main() {
	ops := flag.Int("ops", 1000, "Number of operations per phase")
	cfg := utils.HandleCLIInputs()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := core.Open(cfg.HashFile, cfg.DataFile, cfg.FreeListFile,
		core.WithCapacity(cfg.Capacity),
		core.WithSyncInterval(cfg.SyncInterval),
		core.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("could not open hdb", zap.Error(err))
	}

	ctx, stop := utils.InterruptContext(context.Background())
	defer stop()

	runErr := run(ctx, db, *ops)

	// Close before reporting so the free list is written even on failure
	if err := db.Close(); err != nil {
		logger.Error("close failed", zap.Error(err))
	}

	if runErr != nil {
		logger.Error("benchmark failed", zap.Error(runErr))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, db *core.HDB, ops int) error {
	fmt.Println("hdb Benchmark")
	fmt.Println("=============")
	fmt.Printf("Operations per phase: %d\n\n", ops)

	phases := []phase{
		{"Put", func(db *core.HDB, key, value []byte) error { return db.Put(key, value) }},
		{"Get", func(db *core.HDB, key, _ []byte) error { _, err := db.Get(key); return ignoreNotFound(err) }},
		{"Delete", func(db *core.HDB, key, _ []byte) error { return ignoreNotFound(db.Delete(key)) }},
	}

	for _, p := range phases {
		// Get and Delete measure against a freshly loaded dataset
		if p.name != "Put" {
			if err := preload(db, ops); err != nil {
				return fmt.Errorf("preload for %s: %w", p.name, err)
			}
		}

		done, duration, err := runPhase(ctx, db, p, ops)
		if err != nil {
			return fmt.Errorf("%s phase: %w", p.name, err)
		}

		fmt.Printf("%s operation benchmark completed: %d operations in %.6f seconds (%.2f ops/sec)\n",
			p.name, done, duration.Seconds(), float64(done)/duration.Seconds())

		if ctx.Err() != nil {
			fmt.Println("interrupted")
			return nil
		}
	}

	return nil
}

func runPhase(ctx context.Context, db *core.HDB, p phase, ops int) (int, time.Duration, error) {
	start := time.Now()

	done := 0
	for ; done < ops; done++ {
		if ctx.Err() != nil {
			break
		}

		key, value := pair(done)
		if err := p.run(db, key, value); err != nil {
			return done, time.Since(start), err
		}
	}

	return done, time.Since(start), nil
}

func preload(db *core.HDB, ops int) error {
	for i := 0; i < ops; i++ {
		key, value := pair(i)
		if err := db.Put(key, value); err != nil {
			return err
		}
	}
	return nil
}

func pair(i int) ([]byte, []byte) {
	return []byte(fmt.Sprintf("key%d", i)), []byte(fmt.Sprintf("value%d", i))
}

// Colliding keys evict each other, so misses are expected once ops exceeds
// the directory capacity.
func ignoreNotFound(err error) error {
	if errors.Is(err, core.ErrKeyNotFound) {
		return nil
	}
	return err
}
