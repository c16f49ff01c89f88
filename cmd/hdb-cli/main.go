package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/0xRadioAc7iv/go-hdb/core"
	"github.com/0xRadioAc7iv/go-hdb/internal/utils"
)

const helpString = `
Available Commands:

PUT <key> <value>   (alias: SET)
  Store a value for the given key.
  Overwrites the value if the key already exists.
  Quote values containing spaces, or pass them as trailing words.
  Response: ok

GET <key>
  Retrieve the value associated with the key.
  Response: value | nil

DELETE <key>
  Delete the key and its value.
  Response: ok | nil

EXISTS <key>
  Check if a key exists.
  Response: true | false

COUNT
  Return the number of occupied slots.
  Response: integer

STATS
  Show slot, data file and free-list usage.

SYNC
  Flush all files to disk now.
  Response: ok

HELP
  Show this help message.

EXIT
  Close the database and quit.
`

func main() {
	cfg := utils.HandleCLIInputs()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
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

	lines := make(chan string)
	go readLines(lines)

	fmt.Printf("Opened %v, %v, %v\n", cfg.HashFile, cfg.DataFile, cfg.FreeListFile)
	fmt.Println("Type commands. 'help' for information or 'exit' to quit.")

	run(ctx, db, lines)

	if err := db.Close(); err != nil {
		logger.Error("close failed", zap.Error(err))
		os.Exit(1)
	}
}

func readLines(lines chan<- string) {
	defer close(lines)

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		lines <- line
	}
}

func run(ctx context.Context, db *core.HDB, lines <-chan string) {
	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case line, ok := <-lines:
			if !ok {
				return
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			cmd, key, value, err := utils.SplitStringIntoCommandAndArguments(line)
			if err != nil {
				fmt.Println("parse error:", err)
				continue
			}

			if strings.EqualFold(cmd, "exit") {
				return
			}

			fmt.Println(execute(db, cmd, key, value))
		}
	}
}

func execute(db *core.HDB, cmd, key, value string) string {
	switch strings.ToLower(cmd) {
	case "put", "set":
		if key == "" {
			return "usage: PUT <key> <value>"
		}
		if err := db.Put([]byte(key), []byte(value)); err != nil {
			return "error: " + err.Error()
		}
		return "ok"

	case "get":
		val, err := db.Get([]byte(key))
		if errors.Is(err, core.ErrKeyNotFound) {
			return "nil"
		}
		if err != nil {
			return "error: " + err.Error()
		}
		return string(val)

	case "delete", "del":
		err := db.Delete([]byte(key))
		if errors.Is(err, core.ErrKeyNotFound) {
			return "nil"
		}
		if err != nil {
			return "error: " + err.Error()
		}
		return "ok"

	case "exists":
		ok, err := db.Exists([]byte(key))
		if err != nil {
			return "error: " + err.Error()
		}
		return strconv.FormatBool(ok)

	case "count":
		count, err := db.Count()
		if err != nil {
			return "error: " + err.Error()
		}
		return strconv.Itoa(count)

	case "stats":
		stats, err := db.Stats()
		if err != nil {
			return "error: " + err.Error()
		}
		return fmt.Sprintf("slots: %d/%d\ndata file: %d bytes\nfree offsets: %d\nflushes: %d",
			stats.Keys, stats.Capacity, stats.DataSize, stats.FreeOffsets, stats.Flushes)

	case "sync":
		if err := db.Sync(); err != nil {
			return "error: " + err.Error()
		}
		return "ok"

	case "help":
		return strings.TrimSpace(helpString)

	default:
		return "Invalid Command"
	}
}
