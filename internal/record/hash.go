package record

const (
	hashSeed       = 31
	hashMultiplier = 37
	hashModulus    = 65521
)

// HashKey computes the 32-bit rolling multiplicative hash used to place keys
// in the directory. All arithmetic wraps at 32 bits, so the result is stable
// across platforms and matches files written by other implementations.
func HashKey(key []byte) uint32 {
	var hash uint32
	prime := uint32(hashSeed)

	for _, b := range key {
		hash = (hash * prime) ^ (uint32(b) * hashMultiplier)
		prime = (prime * hashMultiplier) % hashModulus
	}

	return hash
}

// Bucket maps a hash onto a directory slot index.
func Bucket(hash uint32, capacity uint32) uint32 {
	return hash % capacity
}
