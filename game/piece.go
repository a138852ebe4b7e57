package game

import (
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/shape"
)

// SpawnY is the row new pieces start on, above the visible board.
const SpawnY = -2

// Piece is the live, falling tetromino.
type Piece struct {
	Kind     shape.Kind
	Rotation int
	X, Y     int
	Color    shape.Color
}

// Spawn places a new piece of kind horizontally centred above the board in
// its spawn orientation.
func Spawn(kind shape.Kind) Piece {
	m := shape.Rotation(kind, 0)
	return Piece{
		Kind:     kind,
		Rotation: 0,
		X:        (board.Width - m.Cols()) / 2,
		Y:        SpawnY,
		Color:    kind.Color(),
	}
}

// Matrix returns the occupancy shape for the piece's current orientation.
func (p Piece) Matrix() shape.Matrix {
	return shape.Rotation(p.Kind, p.Rotation)
}

// AboveBoard reports whether any cell of the piece sits on a row < 0.
func (p Piece) AboveBoard() bool {
	for r := range p.Matrix().Cells() {
		if p.Y+r < 0 {
			return true
		}
	}
	return false
}

// Move shifts the piece by (dx, dy) unless that would collide. It reports
// whether the piece moved.
func (p *Piece) Move(b *board.Board, dx, dy int) bool {
	if b.Collides(p.Matrix(), p.X+dx, p.Y+dy) {
		return false
	}
	p.X += dx
	p.Y += dy
	return true
}

// kickOffsets are the horizontal nudges tried when a rotation collides.
var kickOffsets = [...]int{-1, +1}

// RotateClockwise advances to the next orientation. A colliding rotation is
// retried one column left, then one column right; if both collide the piece
// is left unchanged. It reports whether the rotation was applied.
func (p *Piece) RotateClockwise(b *board.Board) bool {
	count := shape.RotationCount(p.Kind)
	if count <= 1 {
		return false
	}

	next := (p.Rotation + 1) % count
	m := shape.Rotation(p.Kind, next)
	if !b.Collides(m, p.X, p.Y) {
		p.Rotation = next
		return true
	}

	for _, dx := range kickOffsets {
		if !b.Collides(m, p.X+dx, p.Y) {
			p.Rotation = next
			p.X += dx
			return true
		}
	}
	return false
}

// HardDropTargetY returns the lowest y at which m can rest when dropped
// straight down from (x, y).
func HardDropTargetY(b *board.Board, m shape.Matrix, x, y int) int {
	if m.Count() == 0 {
		return y
	}
	for !b.Collides(m, x, y+1) {
		y++
	}
	return y
}
