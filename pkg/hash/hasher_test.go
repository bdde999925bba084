package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMurmurHasherDeterministic(t *testing.T) {
	key := []byte("hello")
	require.Equal(t, MurmurHasher(key, 0), MurmurHasher(key, 0))
	require.Equal(t, MurmurHasher(key, 42), MurmurHasher(key, 42))
	require.NotEqual(t, MurmurHasher(key, 0), MurmurHasher(key, 1))
}

func TestMurmurHasherKnownValues(t *testing.T) {
	// Reference murmur3 x86_32 vectors.
	require.Equal(t, int32(0), MurmurHasher([]byte{}, 0))
	require.Equal(t, int32(0x514E28B7), MurmurHasher([]byte{}, 1))
	require.Equal(t, int32(613153351), MurmurHasher([]byte("hello"), 0))
}

func TestXxHasherSeedSensitive(t *testing.T) {
	key := []byte("hello")
	require.Equal(t, XxHasher(key, 7), XxHasher(key, 7))
	require.NotEqual(t, XxHasher(key, 0), XxHasher(key, 1))
	require.NotEqual(t, XxHasher([]byte("a"), 0), XxHasher([]byte("b"), 0))
}

func TestHasherType(t *testing.T) {
	hashers := []Hasher{MurmurHasher, XxHasher}
	for _, h := range hashers {
		require.Equal(t, h([]byte("key"), -5), h([]byte("key"), -5))
	}
}
