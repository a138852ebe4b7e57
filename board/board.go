package board

import (
	"strings"

	"github.com/plus3/blockfall/shape"
)

const (
	Width  = 10
	Height = 20
)

// Board is the fixed Width×Height playfield. Row 0 is the top.
// The zero value is an empty board.
type Board struct {
	rows [Height]Row
}

// New returns an empty board.
func New() *Board {
	return &Board{}
}

// FromRows builds a board holding a copy of rows. Ghost cells are dropped.
func FromRows(rows [Height]Row) *Board {
	b := &Board{rows: rows}
	for y := range b.rows {
		for x := range b.rows[y] {
			if b.rows[y][x].Kind == Ghost {
				b.rows[y][x] = Cell{}
			}
		}
	}
	return b
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// At returns the cell at (x, y). Positions outside the grid read as empty.
func (b *Board) At(x, y int) Cell {
	if !inBounds(x, y) {
		return Cell{}
	}
	return b.rows[y][x]
}

// Set writes a single cell. Ghost cells and out-of-range positions are
// rejected and reported as false.
func (b *Board) Set(x, y int, c Cell) bool {
	if !inBounds(x, y) || c.Kind == Ghost {
		return false
	}
	b.rows[y][x] = c
	return true
}

// Rows returns a copy of the grid.
func (b *Board) Rows() [Height]Row {
	return b.rows
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// RowFull reports whether row y is completely occupied.
func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= Height {
		return false
	}
	return b.rows[y].Full()
}

// Collides reports whether m placed with its top-left corner at (x, y) would
// leave the side walls, reach the floor, or overlap an occupied cell. Cells
// above the board (row < 0) only count against the walls.
func (b *Board) Collides(m shape.Matrix, x, y int) bool {
	for r, c := range m.Cells() {
		bx, by := x+c, y+r
		if bx < 0 || bx >= Width || by >= Height {
			return true
		}
		if by >= 0 && b.rows[by][bx].IsOccupied() {
			return true
		}
	}
	return false
}

// Merge writes color into every cell covered by m at (x, y), skipping cells
// that fall outside the grid.
func (b *Board) Merge(m shape.Matrix, x, y int, color shape.Color) {
	for r, c := range m.Cells() {
		bx, by := x+c, y+r
		if !inBounds(bx, by) {
			continue
		}
		b.rows[by][bx] = OccupiedBy(color)
	}
}

// ClearFullLines removes every full row, shifting the rows above down and
// inserting empty rows at the top. It returns the number of rows removed.
func (b *Board) ClearFullLines() int {
	cleared := 0
	for y := Height - 1; y >= 0; {
		if !b.rows[y].Full() {
			y--
			continue
		}

		// Same index is examined again since the row above moved into it.
		copy(b.rows[1:y+1], b.rows[:y])
		b.rows[0] = Row{}
		cleared++
	}
	return cleared
}

// Heights returns, per column, the number of rows from the floor up to and
// including the highest occupied cell.
func (b *Board) Heights() [Width]int {
	var heights [Width]int
	for x := 0; x < Width; x++ {
		for y := 0; y < Height; y++ {
			if b.rows[y][x].IsOccupied() {
				heights[x] = Height - y
				break
			}
		}
	}
	return heights
}

// Holes counts empty cells that have an occupied cell somewhere above them.
func (b *Board) Holes() int {
	holes := 0
	for x := 0; x < Width; x++ {
		covered := false
		for y := 0; y < Height; y++ {
			switch {
			case b.rows[y][x].IsOccupied():
				covered = true
			case covered:
				holes++
			}
		}
	}
	return holes
}

// String draws the board with '#' for occupied, '+' for ghost and '.' for empty.
func (b *Board) String() string {
	var sb strings.Builder
	for y, row := range b.rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			switch c.Kind {
			case Occupied:
				sb.WriteByte('#')
			case Ghost:
				sb.WriteByte('+')
			default:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
