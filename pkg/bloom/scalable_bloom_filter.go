package bloom

import (
	"fmt"
	"math"

	"github.com/cloudwego/kitex/pkg/klog"
	config "github.com/csci1270-fall-2023/bloomdb/pkg/config"
)

// ScalableBloomFilter grows a chain of fixed filters as keys arrive.
//
// Each new filter holds expansionRate times the keys of the previous one at
// TighteningRatio times its error rate, so the summed false-positive rate of
// the chain stays close to the configured error rate however long it grows.
type ScalableBloomFilter struct {
	capacity      int
	errorRate     float64
	expansionRate int
	filters       []*FixedBloomFilter
}

// NewScalableBloomFilter creates a chain whose first filter holds capacity keys.
func NewScalableBloomFilter(capacity int, errorRate float64, expansionRate int) (*ScalableBloomFilter, error) {
	if expansionRate < 1 {
		return nil, fmt.Errorf("%w: expansion rate must be at least 1, got %d", ErrInvalidParameter, expansionRate)
	}
	first, err := NewFixedBloomFilter(capacity, errorRate*(1-config.TighteningRatio))
	if err != nil {
		return nil, err
	}
	return &ScalableBloomFilter{
		capacity:      capacity,
		errorRate:     errorRate,
		expansionRate: expansionRate,
		filters:       []*FixedBloomFilter{first},
	}, nil
}

// NewScalableBloomFilterFromOptions builds a filter from opts, filling zero
// fields with defaults.
func NewScalableBloomFilterFromOptions(opts config.Options) (*ScalableBloomFilter, error) {
	opts = opts.WithDefaults()
	return NewScalableBloomFilter(opts.Capacity, opts.ErrorRate, opts.ExpansionRate)
}

// Get the configured initial capacity.
func (sbf *ScalableBloomFilter) Capacity() int {
	return sbf.capacity
}

// Get the configured error rate.
func (sbf *ScalableBloomFilter) ErrorRate() float64 {
	return sbf.errorRate
}

// Get the expansion rate.
func (sbf *ScalableBloomFilter) ExpansionRate() int {
	return sbf.expansionRate
}

// Get the number of filters in the chain.
func (sbf *ScalableBloomFilter) NumFilters() int {
	return len(sbf.filters)
}

// Filters returns a copy of the chain, oldest first.
func (sbf *ScalableBloomFilter) Filters() []*FixedBloomFilter {
	filters := make([]*FixedBloomFilter, len(sbf.filters))
	copy(filters, sbf.filters)
	return filters
}

// Len returns the total number of keys added across the chain.
func (sbf *ScalableBloomFilter) Len() int {
	total := 0
	for _, filter := range sbf.filters {
		total += filter.Len()
	}
	return total
}

// Add inserts key, appending a new filter first if the newest one is full.
func (sbf *ScalableBloomFilter) Add(key []byte) {
	if sbf.Contains(key) {
		return
	}
	last := sbf.filters[len(sbf.filters)-1]
	if last.Full() {
		last = sbf.grow(last)
	}
	last.Add(key)
}

// Contains checks the newest filter first; recent keys are most likely there.
func (sbf *ScalableBloomFilter) Contains(key []byte) bool {
	for i := len(sbf.filters) - 1; i >= 0; i-- {
		if sbf.filters[i].Contains(key) {
			return true
		}
	}
	return false
}

// AddString adds a string key.
func (sbf *ScalableBloomFilter) AddString(key string) {
	sbf.Add([]byte(key))
}

// ContainsString tests a string key.
func (sbf *ScalableBloomFilter) ContainsString(key string) bool {
	return sbf.Contains([]byte(key))
}

// grow appends a successor to last and returns it.
//
// When the scaled capacity overflows or cannot be allocated, the successor
// keeps last's capacity. If even that fails, last is returned and keeps
// taking keys past its capacity.
func (sbf *ScalableBloomFilter) grow(last *FixedBloomFilter) *FixedBloomFilter {
	errorRate := last.ErrorRate() * config.TighteningRatio
	capacity := last.Capacity()
	if capacity <= math.MaxInt/sbf.expansionRate {
		capacity *= sbf.expansionRate
	}
	next, err := NewFixedBloomFilterWithHasher(capacity, errorRate, last.hasher)
	if err != nil && capacity != last.Capacity() {
		klog.Warnf("bloom: cannot grow scalable filter to capacity %d: %v; keeping capacity %d",
			capacity, err, last.Capacity())
		capacity = last.Capacity()
		next, err = NewFixedBloomFilterWithHasher(capacity, errorRate, last.hasher)
	}
	if err != nil {
		klog.Errorf("bloom: cannot grow scalable filter past %d filters: %v", len(sbf.filters), err)
		return last
	}
	sbf.filters = append(sbf.filters, next)
	klog.Debugf("bloom: scalable filter grew to %d filters (capacity=%d, error=%g, bits=%d, hashes=%d)",
		len(sbf.filters), capacity, errorRate, next.NumBits(), next.NumHashes())
	return next
}
