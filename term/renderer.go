package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/shape"
)

const (
	Title = "blockfall: arrows to move/rotate, Space to drop, P pause, Q quit"

	headerRow = 1
	boxTop    = 2
	boxLeft   = 0
	// Each board cell is two terminal columns wide.
	cellWidth = 2
)

var (
	blockRunes = []rune("██")
	ghostRunes = []rune("░░")
)

// Renderer draws snapshots onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	style  tcell.Style
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, style: tcell.StyleDefault}
}

func (r *Renderer) Render(snap game.Snapshot) error {
	r.screen.Clear()

	r.text(0, 0, Title, r.style)
	r.text(0, headerRow, fmt.Sprintf("Score: %d   Level: %d   Lines: %d", snap.Score, snap.Level, snap.Lines), r.style)
	r.frame()

	cells := snap.Cells()
	for y, row := range cells {
		for x, cell := range row {
			r.cell(x, y, cell)
		}
	}

	side := boxLeft + board.Width*cellWidth + 4
	r.text(side, boxTop+1, "Next: "+snap.Next.String(), r.style)

	footer := boxTop + board.Height + 3
	switch {
	case snap.Over():
		r.text(0, footer, "Game Over. Press Q to quit.", r.style.Bold(true))
	case snap.Paused():
		r.text(0, footer, "[Paused]", r.style)
	}

	r.screen.Show()
	return nil
}

func (r *Renderer) frame() {
	right := boxLeft + 1 + board.Width*cellWidth
	bottom := boxTop + board.Height + 1

	for x := boxLeft + 1; x < right; x++ {
		r.screen.SetContent(x, boxTop, '─', nil, r.style)
		r.screen.SetContent(x, bottom, '─', nil, r.style)
	}
	for y := boxTop + 1; y < bottom; y++ {
		r.screen.SetContent(boxLeft, y, '│', nil, r.style)
		r.screen.SetContent(right, y, '│', nil, r.style)
	}
	r.screen.SetContent(boxLeft, boxTop, '┌', nil, r.style)
	r.screen.SetContent(right, boxTop, '┐', nil, r.style)
	r.screen.SetContent(boxLeft, bottom, '└', nil, r.style)
	r.screen.SetContent(right, bottom, '┘', nil, r.style)
}

func (r *Renderer) cell(x, y int, c board.Cell) {
	var runes []rune
	var color shape.Color
	switch c.Kind {
	case board.Occupied:
		runes, color = blockRunes, c.Color
	case board.Ghost:
		runes, color = ghostRunes, shape.GhostColor
	default:
		return
	}

	style := r.style.Foreground(tcell.PaletteColor(int(color)))
	sx, sy := boxLeft+1+x*cellWidth, boxTop+1+y
	for i, ch := range runes {
		r.screen.SetContent(sx+i, sy, ch, nil, style)
	}
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
