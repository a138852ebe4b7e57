package autoplay_test

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/autoplay"
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/scheduler"
	"github.com/plus3/blockfall/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(kinds ...shape.Kind) *game.Session {
	clock := scheduler.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return game.NewSession(clock, game.NewSequence(kinds...))
}

// play feeds bot commands into s until pieces have spawned or the game ends.
func play(t *testing.T, s *game.Session, bot *autoplay.Bot, pieces int) {
	t.Helper()
	for i := 0; s.Pieces() <= pieces; i++ {
		require.Less(t, i, 1000, "bot made no progress")
		cmd, ok := bot.Next(s.Snapshot())
		if !ok {
			return
		}
		require.NoError(t, s.Apply(cmd))
	}
}

func TestEvaluate(t *testing.T) {
	bot := autoplay.NewBot(autoplay.Weights{Height: -1, Lines: 10, Holes: -2, Bumpiness: -0.5})

	b := board.New()
	assert.Zero(t, bot.Evaluate(b, 0))
	assert.Equal(t, 10.0, bot.Evaluate(b, 1))

	b.Set(0, board.Height-2, board.OccupiedBy(1))
	// One column of height 2 over a hole: height 2, one hole, bumpiness 2.
	assert.Equal(t, -2.0-2.0-1.0, bot.Evaluate(b, 0))
}

func TestBestPrefersFlatPlacement(t *testing.T) {
	bot := autoplay.NewBot(autoplay.DefaultWeights)
	b := board.New()
	for x := 0; x < board.Width; x++ {
		if x < 3 || x > 6 {
			b.Set(x, board.Height-1, board.OccupiedBy(1))
		}
	}

	best, ok := bot.Best(b, game.Spawn(shape.I))
	require.True(t, ok)
	assert.Equal(t, 0, best.Rotation)
	assert.Equal(t, 3, best.X, "fills the gap and clears the row")
}

func TestBestNoRoom(t *testing.T) {
	bot := autoplay.NewBot(autoplay.DefaultWeights)
	b := board.New()
	for y := 0; y < board.Height; y++ {
		for x := 0; x < board.Width-1; x++ {
			b.Set(x, y, board.OccupiedBy(1))
		}
	}
	_, ok := bot.Best(b, game.Spawn(shape.O))
	assert.False(t, ok)
}

func TestBotClearsLines(t *testing.T) {
	s := newSession(shape.O)
	bot := autoplay.NewBot(autoplay.DefaultWeights)

	play(t, s, bot, 5)

	assert.Equal(t, 2, s.Lines())
	assert.Equal(t, game.Falling, s.State())
	assert.Equal(t, [board.Width]int{}, s.Board().Heights())
}

func TestBotSurvives(t *testing.T) {
	s := newSession(shape.Kinds()...)
	bot := autoplay.NewBot(autoplay.DefaultWeights)

	play(t, s, bot, 70)

	assert.Equal(t, game.Falling, s.State())
	assert.Positive(t, s.Lines())
}

func TestBotIdleWhenPaused(t *testing.T) {
	s := newSession(shape.T)
	require.NoError(t, s.Apply(game.PauseToggle))

	_, ok := autoplay.NewBot(autoplay.DefaultWeights).Next(s.Snapshot())
	assert.False(t, ok)
}
