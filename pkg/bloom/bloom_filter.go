package bloom

import (
	"fmt"
	"math"

	bitset "github.com/bits-and-blooms/bitset"
	hash "github.com/csci1270-fall-2023/bloomdb/pkg/hash"
)

// FixedBloomFilter is a bloom filter sized once for a capacity and error rate.
type FixedBloomFilter struct {
	capacity  int
	errorRate float64
	numBits   uint
	numHashes int
	count     int
	bits      *bitset.BitSet
	hasher    hash.Hasher
}

// NewFixedBloomFilter sizes a filter to hold capacity keys at errorRate,
// hashing with murmur3.
func NewFixedBloomFilter(capacity int, errorRate float64) (*FixedBloomFilter, error) {
	return NewFixedBloomFilterWithHasher(capacity, errorRate, hash.MurmurHasher)
}

// NewFixedBloomFilterWithHasher is NewFixedBloomFilter with a caller-supplied hash.
func NewFixedBloomFilterWithHasher(capacity int, errorRate float64, hasher hash.Hasher) (*FixedBloomFilter, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidParameter, capacity)
	}
	if !(errorRate > 0 && errorRate < 1) {
		return nil, fmt.Errorf("%w: error rate must be in (0, 1), got %v", ErrInvalidParameter, errorRate)
	}
	if hasher == nil {
		return nil, fmt.Errorf("%w: nil hasher", ErrInvalidParameter)
	}
	numBits, numHashes := sizeFilter(capacity, errorRate)
	if numBits == 0 || numHashes == 0 {
		return nil, fmt.Errorf("%w: capacity %d with error rate %v yields %d bits and %d hashes",
			ErrInvalidParameter, capacity, errorRate, numBits, numHashes)
	}
	// bitset.New hands back an empty set when the allocation fails.
	bits := bitset.New(numBits)
	if bits.Len() != numBits {
		return nil, fmt.Errorf("%w: cannot allocate %d bits for capacity %d",
			ErrInvalidParameter, numBits, capacity)
	}
	return &FixedBloomFilter{
		capacity:  capacity,
		errorRate: errorRate,
		numBits:   numBits,
		numHashes: numHashes,
		bits:      bits,
		hasher:    hasher,
	}, nil
}

// sizeFilter returns the optimal bit count and probe count:
//
//	m = ceil(-n * ln(p) / ln(2)^2)
//	k = round(ln(2) * m / n)
func sizeFilter(capacity int, errorRate float64) (uint, int) {
	n := float64(capacity)
	m := math.Ceil(-n * math.Log(errorRate) / (math.Ln2 * math.Ln2))
	if m >= math.MaxUint64 {
		return 0, 0
	}
	k := math.Round(math.Ln2 * m / n)
	return uint(m), int(k)
}

// Capacity returns the number of keys the filter was sized for.
func (filter *FixedBloomFilter) Capacity() int {
	return filter.capacity
}

// ErrorRate returns the target false-positive rate at capacity.
func (filter *FixedBloomFilter) ErrorRate() float64 {
	return filter.errorRate
}

// Get the number of bits.
func (filter *FixedBloomFilter) NumBits() uint {
	return filter.numBits
}

// Get the number of probes per key.
func (filter *FixedBloomFilter) NumHashes() int {
	return filter.numHashes
}

// BitCount returns how many bits are currently set.
func (filter *FixedBloomFilter) BitCount() uint {
	return filter.bits.Count()
}

// Len returns the number of keys added that were not already present.
func (filter *FixedBloomFilter) Len() int {
	return filter.count
}

// Full reports whether the filter has reached its capacity.
func (filter *FixedBloomFilter) Full() bool {
	return filter.count >= filter.capacity
}

// Add inserts key. Adding a key that already tests present is a no-op.
func (filter *FixedBloomFilter) Add(key []byte) {
	if filter.Contains(key) {
		return
	}
	filter.probe(key, func(pos uint) bool {
		filter.bits.Set(pos)
		return true
	})
	filter.count++
}

// Contains checks if the given key may have been added to the filter.
func (filter *FixedBloomFilter) Contains(key []byte) bool {
	return filter.probe(key, filter.bits.Test)
}

// AddString adds a string key.
func (filter *FixedBloomFilter) AddString(key string) {
	filter.Add([]byte(key))
}

// ContainsString tests a string key.
func (filter *FixedBloomFilter) ContainsString(key string) bool {
	return filter.Contains([]byte(key))
}

// probe walks the numHashes bit positions of key, stopping early when visit
// returns false. It reports whether every visit returned true.
//
// Positions follow (h1 + i*h2) mod numBits with h1 = hash(key, 0) and
// h2 = hash(key, h1). The sum is accumulated modulo numBits so nothing
// overflows.
func (filter *FixedBloomFilter) probe(key []byte, visit func(uint) bool) bool {
	raw1 := filter.hasher(key, 0)
	raw2 := filter.hasher(key, raw1)
	// Reduce after seeding h2 so the seed spans the full 32-bit space.
	h1 := reduce(raw1, filter.numBits)
	h2 := reduce(raw2, filter.numBits)
	if h2 == 0 {
		// Otherwise every probe lands on h1.
		h2 = 1 % filter.numBits
	}
	var step uint
	for i := 0; i < filter.numHashes; i++ {
		pos := h1 + step
		if pos >= filter.numBits {
			pos -= filter.numBits
		}
		if !visit(pos) {
			return false
		}
		step += h2
		if step >= filter.numBits {
			step -= filter.numBits
		}
	}
	return true
}

// reduce maps a signed hash into [0, n).
func reduce(h int32, n uint) uint {
	r := int64(h) % int64(n)
	if r < 0 {
		r += int64(n)
	}
	return uint(r)
}
