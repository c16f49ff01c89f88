package core

import (
	"os"

	"go.uber.org/zap"

	"github.com/0xRadioAc7iv/go-hdb/internal/record"
	"github.com/0xRadioAc7iv/go-hdb/internal/utils"
)

// freeList holds data-file offsets released by deletes. The in-memory slice
// is authoritative during a session; the file is rewritten wholesale by
// persist. Entries sit on value boundaries and move with the data around
// them, see adjust.
type freeList struct {
	file    *os.File
	offsets []int64
}

func openFreeList(path string, log *zap.Logger) (*freeList, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	size, err := utils.FileSize(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	data := make([]byte, size)
	if size > 0 {
		if _, err := f.ReadAt(data, 0); err != nil {
			f.Close()
			return nil, err
		}
	}

	offsets, err := record.DecodeOffsets(data)
	if err != nil {
		f.Close()
		return nil, err
	}

	valid := offsets[:0]
	for _, offset := range offsets {
		if offset < 0 {
			log.Warn("dropping negative free-list entry", zap.Int64("offset", offset))
			continue
		}
		valid = append(valid, offset)
	}

	return &freeList{file: f, offsets: valid}, nil
}

func (fl *freeList) push(offset int64) {
	fl.offsets = append(fl.offsets, offset)
}

// pop returns the most recently freed offset.
func (fl *freeList) pop() (int64, bool) {
	if len(fl.offsets) == 0 {
		return 0, false
	}

	last := len(fl.offsets) - 1
	offset := fl.offsets[last]
	fl.offsets = fl.offsets[:last]

	return offset, true
}

// adjust adds delta to every entry for which match returns true.
func (fl *freeList) adjust(match func(offset int64) bool, delta int64) {
	for i, offset := range fl.offsets {
		if match(offset) {
			fl.offsets[i] = offset + delta
		}
	}
}

func (fl *freeList) len() int {
	return len(fl.offsets)
}

// persist writes the in-memory offsets over the file and trims anything left
// from a longer previous list.
func (fl *freeList) persist() error {
	encoded, err := record.EncodeOffsets(fl.offsets)
	if err != nil {
		return err
	}

	if _, err := fl.file.WriteAt(encoded, 0); err != nil {
		return err
	}

	return utils.TruncateAt(fl.file, int64(len(encoded)))
}

func (fl *freeList) sync() error {
	return fl.file.Sync()
}

func (fl *freeList) close() error {
	return fl.file.Close()
}
