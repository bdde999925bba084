package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	require.Equal(t, DefaultCapacity, opts.Capacity)
	require.Equal(t, DefaultErrorRate, opts.ErrorRate)
	require.Equal(t, DefaultExpansionRate, opts.ExpansionRate)
}

func TestWithDefaults(t *testing.T) {
	opts := Options{}.WithDefaults()
	require.Equal(t, *DefaultOptions(), opts)

	opts = Options{Capacity: 50, ErrorRate: 0.05}.WithDefaults()
	require.Equal(t, 50, opts.Capacity)
	require.Equal(t, 0.05, opts.ErrorRate)
	require.Equal(t, DefaultExpansionRate, opts.ExpansionRate)

	// Invalid values pass through untouched.
	opts = Options{Capacity: -1, ErrorRate: 2, ExpansionRate: -3}.WithDefaults()
	require.Equal(t, Options{Capacity: -1, ErrorRate: 2, ExpansionRate: -3}, opts)
}
