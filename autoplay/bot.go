// Package autoplay drives a session without a player.
package autoplay

import (
	"math"

	"github.com/google/uuid"
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/shape"
)

// MaxAttempts bounds the commands spent steering one piece before it is
// hard-dropped wherever it is.
const MaxAttempts = 24

// Weights score a resting board. Positive terms are rewarded.
type Weights struct {
	Height    float64
	Lines     float64
	Holes     float64
	Bumpiness float64
}

var DefaultWeights = Weights{
	Height:    -0.510066,
	Lines:     0.760666,
	Holes:     -0.35663,
	Bumpiness: -0.184483,
}

// Placement is where a piece should come to rest.
type Placement struct {
	Rotation int
	X        int
	Score    float64
}

// Bot picks the greedy best placement for each piece and steers towards it.
type Bot struct {
	Weights Weights

	session  uuid.UUID
	piece    int
	target   Placement
	attempts int
}

func NewBot(w Weights) *Bot {
	return &Bot{Weights: w}
}

// Next returns the next command to apply. It returns false when the
// session is not accepting piece commands.
func (b *Bot) Next(snap game.Snapshot) (game.Command, bool) {
	if snap.State != game.Falling {
		return 0, false
	}

	if snap.Session != b.session || snap.Pieces != b.piece {
		b.session, b.piece = snap.Session, snap.Pieces
		b.attempts = 0
		b.target, _ = b.Best(board.FromRows(snap.Board), snap.Piece)
	}

	b.attempts++
	if b.attempts > MaxAttempts {
		return game.HardDrop, true
	}

	p := snap.Piece
	switch {
	case p.Rotation != b.target.Rotation:
		return game.Rotate, true
	case p.X > b.target.X:
		return game.MoveLeft, true
	case p.X < b.target.X:
		return game.MoveRight, true
	default:
		return game.HardDrop, true
	}
}

// Best evaluates every rotation and column for p on b. It reports false if
// no placement fits.
func (b *Bot) Best(brd *board.Board, p game.Piece) (Placement, bool) {
	best := Placement{Rotation: p.Rotation, X: p.X, Score: math.Inf(-1)}
	found := false

	for rot := 0; rot < shape.RotationCount(p.Kind); rot++ {
		m := shape.Rotation(p.Kind, rot)
		for x := -m.Cols(); x <= board.Width; x++ {
			if brd.Collides(m, x, p.Y) {
				continue
			}
			y := game.HardDropTargetY(brd, m, x, p.Y)
			if y < 0 {
				// Resting above the board ends the game.
				continue
			}

			next := brd.Clone()
			next.Merge(m, x, y, p.Color)
			cleared := next.ClearFullLines()

			score := b.Evaluate(next, cleared)
			if score > best.Score {
				best = Placement{Rotation: rot, X: x, Score: score}
				found = true
			}
		}
	}
	return best, found
}

// Evaluate scores a board after a placement that cleared the given rows.
func (b *Bot) Evaluate(brd *board.Board, cleared int) float64 {
	heights := brd.Heights()
	aggregate, bumpiness := 0, 0
	for i, h := range heights {
		aggregate += h
		if i > 0 {
			bumpiness += abs(h - heights[i-1])
		}
	}

	w := b.Weights
	return w.Height*float64(aggregate) +
		w.Lines*float64(cleared) +
		w.Holes*float64(brd.Holes()) +
		w.Bumpiness*float64(bumpiness)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
