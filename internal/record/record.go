package record

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// Slot is a single fixed-width entry of the hash directory.
//
// A zero Hash marks the slot as empty. Offset and Length are only meaningful
// while Hash is non-zero.
type Slot struct {
	Hash   uint32 // Hash of the key stored in this slot, 0 when empty
	Offset uint64 // Byte offset of the value in the data file
	Length uint64 // Byte length of the value
}

// Hash (4) + Offset (8) + Length (8)
const SlotSizeBytes = 20

// Width of a single free-list entry on disk
const OffsetSizeBytes = 8

var ErrShortSlot = errors.New("slot record shorter than 20 bytes")

// IsEmpty reports whether the slot holds no live entry.
func (s Slot) IsEmpty() bool {
	return s.Hash == 0
}

// End returns the offset just past the value referenced by the slot.
func (s Slot) End() uint64 {
	return s.Offset + s.Length
}

func EncodeSlotToBytes(slot *Slot) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Grow(SlotSizeBytes)

	if err := binary.Write(buf, binary.LittleEndian, slot.Hash); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, slot.Offset); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, slot.Length); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecodeSlotFromBytes reads the first SlotSizeBytes of data as a slot record.
func DecodeSlotFromBytes(data []byte) (*Slot, error) {
	if len(data) < SlotSizeBytes {
		return nil, ErrShortSlot
	}

	var hash uint32
	var offset uint64
	var length uint64

	buf := bytes.NewReader(data[:SlotSizeBytes])

	if err := binary.Read(buf, binary.LittleEndian, &hash); err != nil {
		return nil, err
	}
	if err := binary.Read(buf, binary.LittleEndian, &offset); err != nil {
		return nil, err
	}
	if err := binary.Read(buf, binary.LittleEndian, &length); err != nil {
		return nil, err
	}

	return &Slot{
		Hash:   hash,
		Offset: offset,
		Length: length,
	}, nil
}

// EncodeOffsets serializes free-list offsets as a flat array of
// little-endian int64 values, oldest first.
func EncodeOffsets(offsets []int64) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Grow(len(offsets) * OffsetSizeBytes)

	for _, off := range offsets {
		if err := binary.Write(buf, binary.LittleEndian, off); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// DecodeOffsets parses a free-list file. The entry count is inferred from the
// length of data; a trailing partial entry is ignored.
func DecodeOffsets(data []byte) ([]int64, error) {
	n := len(data) / OffsetSizeBytes
	offsets := make([]int64, n)

	buf := bytes.NewReader(data[:n*OffsetSizeBytes])
	for i := 0; i < n; i++ {
		if err := binary.Read(buf, binary.LittleEndian, &offsets[i]); err != nil {
			return nil, err
		}
	}

	return offsets, nil
}
