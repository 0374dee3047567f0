package pwhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashRoundTrip(t *testing.T) {
	ph, err := New(16, 1000)
	require.NoError(t, err)

	hash, err := ph.HashPassword("hunter2")
	require.NoError(t, err)

	require.NoError(t, ph.Validate("hunter2", hash))
	require.Error(t, ph.Validate("hunter3", hash))

	// same password hashes differently because of the random salt
	other, err := ph.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
	require.NoError(t, ph.Validate("hunter2", other))
}

func TestIterationsTravelWithHash(t *testing.T) {
	weak, err := New(16, 1000)
	require.NoError(t, err)
	strong, err := New(16, 10000)
	require.NoError(t, err)

	hash, err := weak.HashPassword("hunter2")
	require.NoError(t, err)

	// validation reads the iteration count from the hash, not the hasher
	require.NoError(t, strong.Validate("hunter2", hash))
}

func TestMalformedHash(t *testing.T) {
	ph, err := New(16, 1000)
	require.NoError(t, err)

	for _, encoded := range []string{"", "abc", "x$y", "notanumber$c2FsdA$ZGlnZXN0"} {
		assert.Error(t, ph.Validate("hunter2", encoded), encoded)
	}
}

func TestBadParams(t *testing.T) {
	_, err := New(4, 1000)
	require.Error(t, err)
	_, err = New(16, 10)
	require.Error(t, err)
}
