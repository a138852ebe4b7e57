package gui

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/debugui"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/scheduler"
	"github.com/plus3/blockfall/shape"
)

const SidebarWidth = 180

var (
	backgroundColor = color.RGBA{0x10, 0x10, 0x14, 0xff}
	wellColor       = color.RGBA{0x1c, 0x1c, 0x24, 0xff}
)

// Overlay is drawn above the board and receives its own frame each Update.
type Overlay interface {
	Update()
	Draw(screen *ebiten.Image)
	Layout(outsideWidth, outsideHeight int)
	Toggle()
	Input() debugui.InputState
}

// Game adapts a session to ebiten.Game. Update is the single writer of the
// session, so no locking is needed.
type Game struct {
	session   *game.Session
	scheduler *scheduler.Scheduler
	keymap    *Keymap
	cellSize  int
	overlay   Overlay
}

// NewGame registers gravity for session on sched. overlay may be nil.
func NewGame(session *game.Session, sched *scheduler.Scheduler, keymap *Keymap, cellSize int, overlay Overlay) *Game {
	sched.Register(&game.GravitySystem{Session: session})
	return &Game{
		session:   session,
		scheduler: sched,
		keymap:    keymap,
		cellSize:  cellSize,
		overlay:   overlay,
	}
}

// Size returns the logical screen size in pixels.
func (g *Game) Size() (int, int) {
	return board.Width*g.cellSize + SidebarWidth, board.Height * g.cellSize
}

func (g *Game) Update() error {
	if g.overlay != nil && inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.overlay.Toggle()
	}
	if g.session.State() == game.GameOver && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Reset()
	}

	if !g.KeyboardCaptured() {
		for _, key := range g.keymap.Keys() {
			cmd, _ := g.keymap.Lookup(key)
			if !Fires(inpututil.KeyPressDuration(key), Repeats(cmd)) {
				continue
			}
			if err := g.session.Apply(cmd); err != nil {
				if errors.Is(err, game.ErrQuit) {
					return ebiten.Termination
				}
				return err
			}
		}
	}

	g.scheduler.Once()

	if g.overlay != nil {
		g.overlay.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	snap := g.session.Snapshot()
	size := float32(g.cellSize)
	vector.DrawFilledRect(screen, 0, 0, size*board.Width, size*board.Height, wellColor, false)

	for y, row := range snap.Cells() {
		for x, cell := range row {
			clr, ok := CellColor(cell)
			if !ok {
				continue
			}
			vector.DrawFilledRect(screen, float32(x)*size+1, float32(y)*size+1, size-2, size-2, clr, false)
		}
	}

	left := board.Width*g.cellSize + 12
	for i, line := range SidebarLines(snap) {
		ebitenutil.DebugPrintAt(screen, line, left, 12+i*16)
	}

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

// KeyboardCaptured reports whether the overlay owns keyboard focus. Bound
// keys are ignored while it does.
func (g *Game) KeyboardCaptured() bool {
	return g.overlay != nil && g.overlay.Input().WantCaptureKeyboard
}

// SetOverlay replaces the overlay. nil removes it.
func (g *Game) SetOverlay(o Overlay) {
	g.overlay = o
}

// Layout keeps the board at a fixed size. With an overlay the screen
// follows the window so the inspector windows have room.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.Size()
}

// CellColor returns the fill for a composed cell. Ghost cells are drawn
// translucent.
func CellColor(c board.Cell) (color.RGBA, bool) {
	switch c.Kind {
	case board.Occupied:
		return c.Color.RGBA(), true
	case board.Ghost:
		clr := shape.GhostColor.RGBA()
		clr.R, clr.G, clr.B, clr.A = clr.R/2, clr.G/2, clr.B/2, 0x80
		return clr, true
	default:
		return color.RGBA{}, false
	}
}

// SidebarLines is the text shown beside the board.
func SidebarLines(snap game.Snapshot) []string {
	lines := []string{
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Level: %d", snap.Level),
		fmt.Sprintf("Lines: %d", snap.Lines),
		fmt.Sprintf("Next:  %s", snap.Next),
	}
	switch {
	case snap.Over():
		lines = append(lines, "", "GAME OVER", "R to restart")
	case snap.Paused():
		lines = append(lines, "", "PAUSED")
	}
	return lines
}
