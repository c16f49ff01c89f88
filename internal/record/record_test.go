package record

import (
	"encoding/binary"
	"testing"
)

func TestEncodeDecodeSlot(t *testing.T) {
	original := &Slot{
		Hash:   308355629,
		Offset: 1 << 40,
		Length: 9,
	}

	encoded, err := EncodeSlotToBytes(original)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}

	if len(encoded) != SlotSizeBytes {
		t.Fatalf("encoded slot is %d bytes, want %d", len(encoded), SlotSizeBytes)
	}

	decoded, err := DecodeSlotFromBytes(encoded)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	if *decoded != *original {
		t.Errorf("slot mismatch: got %+v, want %+v", *decoded, *original)
	}
}

func TestDecodeSlotErrorsOnTruncatedData(t *testing.T) {
	encoded, _ := EncodeSlotToBytes(&Slot{Hash: 1, Offset: 2, Length: 3})

	for i := 0; i < len(encoded); i++ {
		if _, err := DecodeSlotFromBytes(encoded[:i]); err == nil {
			t.Fatalf("expected error when decoding truncated slot of length %d, got nil", i)
		}
	}
}

func TestDecodeSlotIgnoresTrailingBytes(t *testing.T) {
	encoded, _ := EncodeSlotToBytes(&Slot{Hash: 7, Offset: 8, Length: 9})
	encoded = append(encoded, 0xff, 0xff, 0xff)

	decoded, err := DecodeSlotFromBytes(encoded)
	if err != nil {
		t.Fatal(err)
	}

	if decoded.Hash != 7 || decoded.Offset != 8 || decoded.Length != 9 {
		t.Fatalf("unexpected slot %+v", *decoded)
	}
}

func TestSlotByteLayout(t *testing.T) {
	s := &Slot{Hash: 0x01020304, Offset: 5, Length: 6}

	encoded, err := EncodeSlotToBytes(s)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	// Expected bytes structure:
	// uint32 Hash
	// uint64 Offset
	// uint64 Length
	if got := binary.LittleEndian.Uint32(encoded[0:4]); got != s.Hash {
		t.Fatalf("Hash mismatch: got %v want %v", got, s.Hash)
	}
	if got := binary.LittleEndian.Uint64(encoded[4:12]); got != s.Offset {
		t.Fatalf("Offset mismatch: got %v want %v", got, s.Offset)
	}
	if got := binary.LittleEndian.Uint64(encoded[12:20]); got != s.Length {
		t.Fatalf("Length mismatch: got %v want %v", got, s.Length)
	}
}

func TestSlotHelpers(t *testing.T) {
	if !(Slot{}).IsEmpty() {
		t.Error("zero slot should be empty")
	}

	s := Slot{Hash: 1, Offset: 10, Length: 5}
	if s.IsEmpty() {
		t.Error("slot with non-zero hash should not be empty")
	}
	if s.End() != 15 {
		t.Errorf("End() = %d, want 15", s.End())
	}
}

func TestEncodeDecodeOffsets(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int64
	}{
		{"empty", []int64{}},
		{"single", []int64{42}},
		{"many", []int64{0, 9, 18, 1 << 33}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := EncodeOffsets(tt.offsets)
			if err != nil {
				t.Fatalf("EncodeOffsets failed: %v", err)
			}

			if len(encoded) != len(tt.offsets)*OffsetSizeBytes {
				t.Fatalf("encoded length %d, want %d", len(encoded), len(tt.offsets)*OffsetSizeBytes)
			}

			decoded, err := DecodeOffsets(encoded)
			if err != nil {
				t.Fatalf("DecodeOffsets failed: %v", err)
			}

			if len(decoded) != len(tt.offsets) {
				t.Fatalf("decoded %d offsets, want %d", len(decoded), len(tt.offsets))
			}
			for i := range decoded {
				if decoded[i] != tt.offsets[i] {
					t.Errorf("offset %d: got %d, want %d", i, decoded[i], tt.offsets[i])
				}
			}
		})
	}
}

func TestDecodeOffsetsIgnoresPartialEntry(t *testing.T) {
	encoded, _ := EncodeOffsets([]int64{3, 4})
	encoded = append(encoded, 1, 2, 3)

	decoded, err := DecodeOffsets(encoded)
	if err != nil {
		t.Fatal(err)
	}

	if len(decoded) != 2 || decoded[0] != 3 || decoded[1] != 4 {
		t.Fatalf("unexpected offsets %v", decoded)
	}
}
