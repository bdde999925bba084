package hash

import (
	"encoding/binary"

	xxhash "github.com/cespare/xxhash"
	murmur3 "github.com/spaolacci/murmur3"
)

// Hasher maps a key and a seed to a signed 32-bit hash.
// Implementations must be deterministic for identical (data, seed).
type Hasher func(data []byte, seed int32) int32

// MurmurHasher returns the x86 32-bit murmur3 hash of data, reinterpreted as signed.
func MurmurHasher(data []byte, seed int32) int32 {
	return int32(murmur3.Sum32WithSeed(data, uint32(seed)))
}

// XxHasher hashes the little-endian seed followed by data with xxhash64
// and folds the result into 32 bits.
func XxHasher(data []byte, seed int32) int32 {
	buf := make([]byte, 4+len(data))
	binary.LittleEndian.PutUint32(buf, uint32(seed))
	copy(buf[4:], data)
	sum := xxhash.Sum64(buf)
	return int32(uint32(sum) ^ uint32(sum>>32))
}
