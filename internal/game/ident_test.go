package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestIDSourceLength(t *testing.T) {
	ids := NewSeededIDSource(1)
	assert.Len(t, ids.ID(RoomCodeLen), RoomCodeLen)
	assert.Len(t, ids.ID(PlayerIDLen), PlayerIDLen)
}

func TestIDSourceDeterministicWithSeed(t *testing.T) {
	a := NewSeededIDSource(42)
	b := NewSeededIDSource(42)
	for i := 0; i < 10; i++ {
		require.Equal(t, a.ID(PlayerIDLen), b.ID(PlayerIDLen))
	}
}

func TestIDSourceAlphabet(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ids := NewSeededIDSource(rapid.Int64().Draw(t, "seed"))
		n := rapid.IntRange(1, 32).Draw(t, "n")
		id := ids.ID(n)
		require.Len(t, id, n)
		for _, c := range id {
			require.Contains(t, idAlphabet, string(c))
		}
	})
}
