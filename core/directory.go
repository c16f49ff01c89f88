package core

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"go.uber.org/zap"

	"github.com/0xRadioAc7iv/go-hdb/internal/record"
	"github.com/0xRadioAc7iv/go-hdb/internal/utils"
)

// directory is the fixed-capacity hash directory. Slot i lives at byte
// i*SlotSizeBytes of the hash file, which is mapped into memory for the
// lifetime of the engine.
type directory struct {
	file     *os.File
	mm       mmap.MMap
	capacity uint32
}

func openDirectory(path string, capacity uint32, log *zap.Logger) (*directory, error) {
	existed := utils.PathExists(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	size, err := utils.FileSize(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	want := int64(capacity) * record.SlotSizeBytes

	switch {
	case size == 0:
		if existed {
			log.Info("hash file is empty, allocating slots", zap.String("path", path), zap.Uint32("capacity", capacity))
		} else {
			log.Info("hash file not found, creating one", zap.String("path", path), zap.Uint32("capacity", capacity))
		}

		// Zero-filled, so every slot starts empty
		if err := utils.TruncateAt(f, want); err != nil {
			f.Close()
			return nil, err
		}
	case size != want:
		f.Close()
		return nil, fmt.Errorf("%s is %d bytes, expected %d for %d slots", path, size, want, capacity)
	}

	mm, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &directory{file: f, mm: mm, capacity: capacity}, nil
}

func (d *directory) bucket(hash uint32) uint32 {
	return record.Bucket(hash, d.capacity)
}

func (d *directory) slotAt(index uint32) (record.Slot, error) {
	start := int(index) * record.SlotSizeBytes

	slot, err := record.DecodeSlotFromBytes(d.mm[start : start+record.SlotSizeBytes])
	if err != nil {
		return record.Slot{}, err
	}

	return *slot, nil
}

func (d *directory) putSlot(index uint32, slot record.Slot) error {
	encoded, err := record.EncodeSlotToBytes(&slot)
	if err != nil {
		return err
	}

	start := int(index) * record.SlotSizeBytes
	copy(d.mm[start:start+record.SlotSizeBytes], encoded)

	return nil
}

// locate returns the bucket for hash and the slot stored there. found is
// true only when the stored hash equals hash.
func (d *directory) locate(hash uint32) (index uint32, slot record.Slot, found bool, err error) {
	index = d.bucket(hash)

	slot, err = d.slotAt(index)
	if err != nil {
		return index, record.Slot{}, false, err
	}

	return index, slot, !slot.IsEmpty() && slot.Hash == hash, nil
}

// write overwrites the bucket for hash unconditionally.
func (d *directory) write(hash uint32, offset, length uint64) error {
	return d.putSlot(d.bucket(hash), record.Slot{
		Hash:   hash,
		Offset: offset,
		Length: length,
	})
}

// clear zeroes the hash of the slot, leaving its stale location behind.
func (d *directory) clear(index uint32) error {
	slot, err := d.slotAt(index)
	if err != nil {
		return err
	}

	slot.Hash = 0
	return d.putSlot(index, slot)
}

// adjustOffsets adds delta to the offset of every live slot whose offset
// satisfies match. Used after the data file shifts under existing values.
func (d *directory) adjustOffsets(match func(offset uint64) bool, delta int64) error {
	for i := uint32(0); i < d.capacity; i++ {
		slot, err := d.slotAt(i)
		if err != nil {
			return err
		}

		if slot.IsEmpty() || !match(slot.Offset) {
			continue
		}

		slot.Offset = uint64(int64(slot.Offset) + delta)
		if err := d.putSlot(i, slot); err != nil {
			return err
		}
	}

	return nil
}

// liveSlots returns every non-empty slot in index order.
func (d *directory) liveSlots() ([]record.Slot, error) {
	slots := []record.Slot{}

	for i := uint32(0); i < d.capacity; i++ {
		slot, err := d.slotAt(i)
		if err != nil {
			return nil, err
		}
		if !slot.IsEmpty() {
			slots = append(slots, slot)
		}
	}

	return slots, nil
}

// isBoundary reports whether offset is the start of some live value.
func (d *directory) isBoundary(offset uint64) (bool, error) {
	slots, err := d.liveSlots()
	if err != nil {
		return false, err
	}

	for _, slot := range slots {
		if slot.Offset == offset {
			return true, nil
		}
	}

	return false, nil
}

func (d *directory) flush() error {
	if err := d.mm.Flush(); err != nil {
		return err
	}
	return d.file.Sync()
}

func (d *directory) close() error {
	if err := d.mm.Unmap(); err != nil {
		d.file.Close()
		return err
	}
	return d.file.Close()
}
