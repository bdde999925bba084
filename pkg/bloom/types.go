package bloom

import "errors"

// Filter is the contract shared by fixed and scalable bloom filters.
//
// Contains never reports false for a key passed to Add. It may report true
// for keys that were never added, with a probability bounded by the
// filter's configured error rate.
type Filter interface {
	Add(key []byte)
	Contains(key []byte) bool
	Len() int
}

var (
	// ErrInvalidParameter is returned by the constructors when capacity is not
	// positive, the error rate is outside (0, 1), the expansion rate is below 1,
	// or the derived bit array cannot be sized or allocated.
	ErrInvalidParameter = errors.New("bloom: invalid parameter")
)
