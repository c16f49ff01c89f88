package main

import (
	"path/filepath"
	"testing"

	"github.com/0xRadioAc7iv/go-hdb/core"
)

func TestExecute(t *testing.T) {
	dir := t.TempDir()

	db, err := core.Open(
		filepath.Join(dir, "hash.db"),
		filepath.Join(dir, "data.db"),
		filepath.Join(dir, "deleted.db"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	steps := []struct {
		cmd, key, value string
		want            string
	}{
		{"get", "city", "", "nil"},
		{"PUT", "city", "new york", "ok"},
		{"get", "city", "", "new york"},
		{"exists", "city", "", "true"},
		{"set", "alpha", "1", "ok"},
		{"count", "", "", "2"},
		{"delete", "city", "", "ok"},
		{"delete", "city", "", "nil"},
		{"exists", "city", "", "false"},
		{"sync", "", "", "ok"},
		{"put", "", "", "usage: PUT <key> <value>"},
		{"bogus", "", "", "Invalid Command"},
	}

	for _, s := range steps {
		if got := execute(db, s.cmd, s.key, s.value); got != s.want {
			t.Fatalf("%s %s %s: got %q, want %q", s.cmd, s.key, s.value, got, s.want)
		}
	}
}
