package game_test

import (
	"testing"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBag(t *testing.T) {
	b := game.NewBag(42)
	for round := 0; round < 3; round++ {
		seen := make(map[shape.Kind]int)
		for i := 0; i < shape.KindCount; i++ {
			peek := b.Peek()
			k := b.Next()
			require.Equal(t, peek, k)
			seen[k]++
		}
		assert.Len(t, seen, shape.KindCount, "round %d", round)
	}
}

func TestUniform(t *testing.T) {
	a, b := game.NewUniform(7), game.NewUniform(7)
	for i := 0; i < 50; i++ {
		k := a.Peek()
		require.True(t, k.Valid())
		require.Equal(t, k, a.Next())
		require.Equal(t, k, b.Next(), "same seed, same sequence")
	}
}

func TestSequence(t *testing.T) {
	s := game.NewSequence(shape.I, shape.O)
	assert.Equal(t, shape.I, s.Peek())
	assert.Equal(t, shape.I, s.Next())
	assert.Equal(t, shape.O, s.Next())
	assert.Equal(t, shape.I, s.Next())

	assert.Panics(t, func() { game.NewSequence() })
}

func TestNewRandomizer(t *testing.T) {
	r, err := game.NewRandomizer("", 1)
	require.NoError(t, err)
	assert.IsType(t, &game.Uniform{}, r)

	r, err = game.NewRandomizer(game.RandomizerBag, 1)
	require.NoError(t, err)
	assert.IsType(t, &game.Bag{}, r)

	_, err = game.NewRandomizer("fair", 1)
	assert.ErrorContains(t, err, "unknown randomizer")
}
