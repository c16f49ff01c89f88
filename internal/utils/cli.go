package utils

import (
	"flag"

	"github.com/0xRadioAc7iv/go-hdb/internal"
)

// HandleCLIInputs registers the flags shared by every hdb command, parses the
// command line and returns the resulting configuration. Commands with extra
// flags must register them before calling it.
func HandleCLIInputs() *internal.Config {
	cfg := internal.DefaultConfig()

	hashFile := flag.String("hash", internal.DEFAULT_HASH_FILE, "Path of the hash directory file")
	dataFile := flag.String("data", internal.DEFAULT_DATA_FILE, "Path of the data file")
	freeListFile := flag.String("deleted", internal.DEFAULT_FREE_LIST_FILE, "Path of the free-list file")
	capacity := flag.Uint("capacity", internal.DEFAULT_CAPACITY, "Number of directory slots (fixed once the hash file exists)")
	syncInterval := flag.Duration("sync", internal.DEFAULT_SYNC_INTERVAL, "Interval between background flushes")
	flag.Parse()

	cfg.HashFile = *hashFile
	cfg.DataFile = *dataFile
	cfg.FreeListFile = *freeListFile
	cfg.Capacity = uint32(*capacity)
	cfg.SyncInterval = *syncInterval

	return cfg
}
