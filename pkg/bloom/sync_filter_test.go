package bloom

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	errgroup "golang.org/x/sync/errgroup"
)

func TestSyncFilterConcurrentAccess(t *testing.T) {
	sbf, err := NewScalableBloomFilter(100, 0.01, 2)
	require.NoError(t, err)
	sf := NewSyncFilter(sbf)

	const writers, perWriter = 8, 500
	var group errgroup.Group
	for w := 0; w < writers; w++ {
		w := w
		group.Go(func() error {
			for i := 0; i < perWriter; i++ {
				key := []byte(fmt.Sprintf("writer-%d-key-%d", w, i))
				sf.Add(key)
				if !sf.Contains(key) {
					return fmt.Errorf("lost key %s", key)
				}
			}
			return nil
		})
		group.Go(func() error {
			for i := 0; i < perWriter; i++ {
				sf.Contains([]byte(fmt.Sprintf("reader-%d-%d", w, i)))
				sf.Len()
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())

	for w := 0; w < writers; w++ {
		for i := 0; i < perWriter; i++ {
			require.True(t, sf.Contains([]byte(fmt.Sprintf("writer-%d-key-%d", w, i))))
		}
	}
	require.LessOrEqual(t, sf.Len(), writers*perWriter)
	require.Greater(t, sbf.NumFilters(), 1)
}

func TestSyncFilterTestAndAdd(t *testing.T) {
	filter, err := NewFixedBloomFilter(100, 0.01)
	require.NoError(t, err)
	sf := NewSyncFilter(filter)

	require.False(t, sf.TestAndAdd([]byte("a")))
	require.True(t, sf.TestAndAdd([]byte("a")))
	require.Equal(t, 1, sf.Len())
	require.Same(t, filter, sf.Unwrap())
}

func TestSyncFilterTestAndAddConcurrent(t *testing.T) {
	filter, err := NewFixedBloomFilter(1000, 0.001)
	require.NoError(t, err)
	sf := NewSyncFilter(filter)

	// Exactly one caller sees the key as new.
	fresh := make(chan bool, 16)
	var group errgroup.Group
	for i := 0; i < 16; i++ {
		group.Go(func() error {
			fresh <- !sf.TestAndAdd([]byte("shared"))
			return nil
		})
	}
	require.NoError(t, group.Wait())
	close(fresh)

	count := 0
	for f := range fresh {
		if f {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestSyncFilterImplementsFilter(t *testing.T) {
	var i interface{} = &SyncFilter{}
	if _, ok := i.(Filter); !ok {
		t.Fatalf("does not implement Filter")
	}
}
