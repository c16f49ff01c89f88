package internal

import (
	"time"

	"go.uber.org/zap"
)

// Config carries engine tuning plus the artifact paths used by the
// command-line tools. The engine itself receives paths positionally.
type Config struct {
	HashFile     string
	DataFile     string
	FreeListFile string

	Capacity     uint32
	SyncInterval time.Duration
	Logger       *zap.Logger
}

const DEFAULT_HASH_FILE = "hdb_hash.db"
const DEFAULT_DATA_FILE = "hdb_data.db"
const DEFAULT_FREE_LIST_FILE = "hdb_deleted.db"

const DEFAULT_CAPACITY = 128
const DEFAULT_SYNC_INTERVAL = 2 * time.Second

func DefaultConfig() *Config {
	return &Config{
		HashFile:     DEFAULT_HASH_FILE,
		DataFile:     DEFAULT_DATA_FILE,
		FreeListFile: DEFAULT_FREE_LIST_FILE,
		Capacity:     DEFAULT_CAPACITY,
		SyncInterval: DEFAULT_SYNC_INTERVAL,
		Logger:       zap.NewNop(),
	}
}
