package merch

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedRoller_Roll(t *testing.T) {
	adjectives := []string{"sarcastic", "cozy"}
	audiences := []string{"nurse", "gamer"}
	objects := []string{"cactus", "coffee"}

	r, err := NewSeedRoller(adjectives, audiences, objects, rand.NewPCG(1, 2))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		parts := strings.Split(r.Roll(), " ")
		require.Len(t, parts, 3)
		assert.Contains(t, adjectives, parts[0])
		assert.Contains(t, audiences, parts[1])
		assert.Contains(t, objects, parts[2])
	}
}

func TestSeedRoller_DeterministicWithSameSource(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e"}
	r1, err := NewSeedRoller(words, words, words, rand.NewPCG(7, 7))
	require.NoError(t, err)
	r2, err := NewSeedRoller(words, words, words, rand.NewPCG(7, 7))
	require.NoError(t, err)

	assert.Equal(t, r1.Roll(), r2.Roll())
}

func TestNewSeedRoller_EmptyList(t *testing.T) {
	_, err := NewSeedRoller(nil, []string{"x"}, []string{"y"}, nil)
	assert.Error(t, err)
}
