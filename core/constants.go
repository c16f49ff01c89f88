package core

const (
	OneKilobyte = 1024
	OneMegabyte = 1024 * OneKilobyte

	// Values are read from the data file this many bytes at a time
	BlockSize = 1 * OneKilobyte

	// Chunk used when shifting data left on delete or right on reuse
	MoveBufferSize = 64 * OneKilobyte

	MinimumCapacity = 1
)
