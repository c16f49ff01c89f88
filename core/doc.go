// Package core implements hdb, a persistent key/value store made of three
// files:
//
//   - a hash directory with a fixed number of 20-byte slots, each holding a
//     key hash and the location of its value
//   - a densely packed data file holding raw values
//   - a free list of data-file offsets released by deletes
//
// Keys are never stored. A key lives in slot hash(key) % capacity, and a
// second key landing in the same slot replaces the first.
//
// A background goroutine flushes all three files on a fixed interval.
//
// Example:
//
//	db, err := core.Open("hash.db", "data.db", "deleted.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	err = db.Put([]byte("foo"), []byte("bar"))
//	val, err := db.Get([]byte("foo"))
package core
