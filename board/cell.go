package board

import "github.com/plus3/blockfall/shape"

// CellKind tags what a Cell holds.
type CellKind uint8

const (
	// Empty is the zero value so a zeroed Row is a blank row.
	Empty CellKind = iota
	Occupied
	// Ghost marks a landing preview. Boards never store it; only render
	// snapshots do.
	Ghost
)

func (k CellKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Occupied:
		return "occupied"
	case Ghost:
		return "ghost"
	default:
		return "unknown"
	}
}

// Cell is a single grid square. Color is meaningful only for Occupied cells.
type Cell struct {
	Kind  CellKind
	Color shape.Color
}

// OccupiedBy returns an occupied cell of the given color.
func OccupiedBy(color shape.Color) Cell {
	return Cell{Kind: Occupied, Color: color}
}

// GhostCell returns a landing preview cell.
func GhostCell() Cell {
	return Cell{Kind: Ghost, Color: shape.GhostColor}
}

func (c Cell) IsEmpty() bool {
	return c.Kind == Empty
}

func (c Cell) IsOccupied() bool {
	return c.Kind == Occupied
}

// Row is one horizontal line of the board.
type Row [Width]Cell

// Full reports whether every cell in the row is occupied.
func (r *Row) Full() bool {
	for _, c := range r {
		if !c.IsOccupied() {
			return false
		}
	}
	return true
}
