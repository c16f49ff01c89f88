package core

import (
	"fmt"
	"os"

	"github.com/0xRadioAc7iv/go-hdb/internal/utils"
)

// dataStore is the data file. Live values occupy disjoint ranges and, once
// an operation completes, the file has no holes: deletes shift the tail left
// and reuse of a freed offset shifts the tail right.
type dataStore struct {
	file *os.File
	size int64
}

func openDataStore(path string) (*dataStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	size, err := utils.FileSize(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &dataStore{file: f, size: size}, nil
}

// append writes value at the end of the file and returns its offset.
func (ds *dataStore) append(value []byte) (int64, error) {
	offset := ds.size

	n, err := ds.file.WriteAt(value, offset)
	if err != nil {
		return 0, err
	}

	ds.size += int64(n)
	return offset, nil
}

// insertAt opens a gap of len(value) bytes at offset by moving the tail of
// the file right, then writes value into it.
func (ds *dataStore) insertAt(offset int64, value []byte) error {
	if offset < 0 || offset > ds.size {
		return fmt.Errorf("insert offset %d outside data file of %d bytes", offset, ds.size)
	}

	length := int64(len(value))
	if err := ds.move(offset, offset+length, ds.size-offset); err != nil {
		return err
	}

	if _, err := ds.file.WriteAt(value, offset); err != nil {
		return err
	}

	ds.size += length
	return nil
}

// read returns exactly length bytes starting at offset, reading BlockSize
// bytes at a time.
func (ds *dataStore) read(offset, length int64) ([]byte, error) {
	if offset < 0 || offset+length > ds.size {
		return nil, fmt.Errorf("range [%d, %d) outside data file of %d bytes", offset, offset+length, ds.size)
	}

	value := make([]byte, length)

	var total int64
	for total < length {
		toRead := min(length-total, BlockSize)

		if _, err := ds.file.ReadAt(value[total:total+toRead], offset+total); err != nil {
			return nil, err
		}
		total += toRead
	}

	return value, nil
}

// removeAndCompact deletes [offset, offset+length) by shifting everything
// after it left and truncating the file.
func (ds *dataStore) removeAndCompact(offset, length int64) error {
	end := offset + length
	if offset < 0 || end > ds.size {
		return fmt.Errorf("range [%d, %d) outside data file of %d bytes", offset, end, ds.size)
	}

	if err := ds.move(end, offset, ds.size-end); err != nil {
		return err
	}

	if err := ds.file.Truncate(ds.size - length); err != nil {
		return err
	}

	ds.size -= length
	return nil
}

// move copies n bytes from src to dst. The ranges may overlap; chunks are
// copied front to back when moving left and back to front when moving right
// so no byte is overwritten before it has been read.
func (ds *dataStore) move(src, dst, n int64) error {
	if n <= 0 || src == dst {
		return nil
	}

	buf := make([]byte, min(n, MoveBufferSize))

	if dst < src {
		for done := int64(0); done < n; {
			chunk := min(n-done, int64(len(buf)))

			if _, err := ds.file.ReadAt(buf[:chunk], src+done); err != nil {
				return err
			}
			if _, err := ds.file.WriteAt(buf[:chunk], dst+done); err != nil {
				return err
			}
			done += chunk
		}
		return nil
	}

	for remaining := n; remaining > 0; {
		chunk := min(remaining, int64(len(buf)))
		remaining -= chunk

		if _, err := ds.file.ReadAt(buf[:chunk], src+remaining); err != nil {
			return err
		}
		if _, err := ds.file.WriteAt(buf[:chunk], dst+remaining); err != nil {
			return err
		}
	}

	return nil
}

func (ds *dataStore) sync() error {
	return ds.file.Sync()
}

func (ds *dataStore) close() error {
	return ds.file.Close()
}
