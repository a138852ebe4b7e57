package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/shape"
)

// Snapshot is an immutable copy of everything a renderer needs.
type Snapshot struct {
	Session uuid.UUID
	Version uint64
	State   State

	// Board holds the locked cells only.
	Board  [board.Height]board.Row
	Piece  Piece
	Matrix shape.Matrix
	GhostY int
	Next   shape.Kind

	Score        int
	Level        int
	Lines        int
	Pieces       int
	TickInterval time.Duration
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Session:      s.id,
		Version:      s.version,
		State:        s.state,
		Board:        s.board.Rows(),
		Piece:        s.piece,
		Matrix:       s.piece.Matrix().Clone(),
		GhostY:       s.Ghost(),
		Next:         s.randomizer.Peek(),
		Score:        s.score,
		Level:        s.Level(),
		Lines:        s.lines,
		Pieces:       s.pieces,
		TickInterval: s.TickInterval(),
	}
}

func (s Snapshot) Paused() bool {
	return s.State == Paused
}

func (s Snapshot) Over() bool {
	return s.State == GameOver
}

// Cells composes the board with the ghost preview and the falling piece
// drawn on top. Parts of the piece above the board are left out.
func (s Snapshot) Cells() [board.Height]board.Row {
	cells := s.Board

	for r, c := range s.Matrix.Cells() {
		x, y := s.Piece.X+c, s.GhostY+r
		if inGrid(x, y) && cells[y][x].IsEmpty() {
			cells[y][x] = board.GhostCell()
		}
	}

	for r, c := range s.Matrix.Cells() {
		x, y := s.Piece.X+c, s.Piece.Y+r
		if inGrid(x, y) {
			cells[y][x] = board.OccupiedBy(s.Piece.Color)
		}
	}

	return cells
}

func inGrid(x, y int) bool {
	return x >= 0 && x < board.Width && y >= 0 && y < board.Height
}
