package game_test

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	cases := []struct {
		lines, level int
	}{
		{0, 0},
		{9, 0},
		{10, 1},
		{19, 1},
		{55, 5},
		{100, 10},
		{250, 10},
		{-3, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.level, game.LevelFor(c.lines), "lines=%d", c.lines)
	}
}

func TestTickIntervalFor(t *testing.T) {
	assert.Equal(t, 700*time.Millisecond, game.TickIntervalFor(0))
	assert.Equal(t, 640*time.Millisecond, game.TickIntervalFor(1))
	assert.Equal(t, 160*time.Millisecond, game.TickIntervalFor(9))
	assert.Equal(t, 100*time.Millisecond, game.TickIntervalFor(10))
	assert.Equal(t, game.MinTickInterval, game.TickIntervalFor(20))
}

func TestLineClearScore(t *testing.T) {
	base := []int{0, 40, 100, 300, 1200}
	for level := 0; level <= game.MaxLevel; level++ {
		for n, points := range base {
			assert.Equal(t, points*(level+1), game.LineClearScore(n, level), "n=%d level=%d", n, level)
		}
	}
	assert.Equal(t, 1200, game.LineClearScore(6, 0), "more than four rows scores as four")
	assert.Zero(t, game.LineClearScore(-1, 3))
}
