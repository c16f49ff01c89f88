/*
	Basic Script that churns random puts, deletes and overwrites through an hdb
	instance to exercise compaction and free-list reuse.
*/

package main

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/0xRadioAc7iv/go-hdb/core"
	"github.com/0xRadioAc7iv/go-hdb/internal"
)

const (
	concurrency = 6

	// Fixed universe
	totalKeys   = 100
	totalValues = 100

	// Per-cycle behavior
	keysPerCycleWrite  = 20
	keysPerCycleDelete = 10
	cyclesPerWorker    = 500

	sleepBetweenCycles = 1 * time.Millisecond

	progressEvery = 100
)

func main() {
	start := time.Now()
	fmt.Println("Starting hdb churn-heavy load generator")

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer logger.Sync()

	db, err := core.Open(internal.DEFAULT_HASH_FILE, internal.DEFAULT_DATA_FILE, internal.DEFAULT_FREE_LIST_FILE,
		core.WithLogger(logger))
	if err != nil {
		fmt.Println("open error:", err)
		return
	}
	defer db.Close()

	keys := makeKeys(totalKeys)
	values := makeValues(totalValues)

	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(id, db, keys, values)
		}(i)
	}

	wg.Wait()

	stats, err := db.Stats()
	if err != nil {
		fmt.Println("stats error:", err)
		return
	}

	fmt.Printf("Load finished in %v\n", time.Since(start))
	fmt.Printf("slots used: %d/%d, data file: %d bytes, free offsets: %d\n",
		stats.Keys, stats.Capacity, stats.DataSize, stats.FreeOffsets)
}

func runWorker(id int, db *core.HDB, keys []string, values []string) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))

	for cycle := 1; cycle <= cyclesPerWorker; cycle++ {

		// ---- WRITE / OVERWRITE PHASE ----
		for i := 0; i < keysPerCycleWrite; i++ {
			key := keys[rng.Intn(len(keys))]
			val := values[rng.Intn(len(values))]

			if err := db.Put([]byte(key), []byte(val)); err != nil {
				fmt.Printf("[worker %d] PUT error: %v\n", id, err)
				return
			}
		}

		// ---- DELETE PHASE ----
		for i := 0; i < keysPerCycleDelete; i++ {
			key := keys[rng.Intn(len(keys))]

			// Misses are expected: keys are deleted at random
			if err := db.Delete([]byte(key)); err != nil && err != core.ErrKeyNotFound {
				fmt.Printf("[worker %d] DELETE error: %v\n", id, err)
				return
			}
		}

		// ---- REWRITE PHASE (forces compaction and reuse) ----
		for i := 0; i < keysPerCycleWrite/2; i++ {
			key := keys[rng.Intn(len(keys))]
			val := values[rng.Intn(len(values))]

			if err := db.Put([]byte(key), []byte(val)); err != nil {
				fmt.Printf("[worker %d] REWRITE error: %v\n", id, err)
				return
			}
		}

		if cycle%progressEvery == 0 {
			fmt.Printf("[worker %d] completed %d cycles\n", id, cycle)
		}

		if sleepBetweenCycles > 0 {
			time.Sleep(sleepBetweenCycles)
		}
	}
}

func makeKeys(n int) []string {
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = fmt.Sprintf("key-%03d", i)
	}
	return keys
}

func makeValues(n int) []string {
	values := make([]string, n)
	for i := 0; i < n; i++ {
		values[i] = fmt.Sprintf("value-%03d-xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx", i)
	}
	return values
}
