package term

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/logger"
)

// Terminal owns a tcell screen: it renders snapshots and turns key presses
// into commands.
type Terminal struct {
	*Renderer
	screen tcell.Screen
	keymap *Keymap
}

// Open initialises the controlling terminal.
func Open(keymap *Keymap) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	return NewTerminal(screen, keymap), nil
}

// NewTerminal wraps an already initialised screen.
func NewTerminal(screen tcell.Screen, keymap *Keymap) *Terminal {
	screen.HideCursor()
	return &Terminal{
		Renderer: NewRenderer(screen),
		screen:   screen,
		keymap:   keymap,
	}
}

// Close restores the terminal. Any Commands channel is closed shortly after.
func (t *Terminal) Close() {
	t.screen.Fini()
}

// Commands polls the screen for key events until ctx is done or the screen
// is closed. Unbound keys are dropped.
func (t *Terminal) Commands(ctx context.Context) <-chan game.Command {
	out := make(chan game.Command)
	go func() {
		defer close(out)
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}

			switch ev := ev.(type) {
			case *tcell.EventResize:
				t.screen.Sync()
			case *tcell.EventKey:
				cmd, ok := t.keymap.Lookup(ev)
				if !ok {
					logger.Log.Debugw("unbound key", "key", ev.Name())
					continue
				}
				select {
				case out <- cmd:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
