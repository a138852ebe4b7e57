package gui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/game"
)

const (
	// RepeatDelay and RepeatInterval are in ticks (1/60 s).
	RepeatDelay    = 12
	RepeatInterval = 3
)

// aliases maps terminal style key names onto ebiten keys.
var aliases = map[string]ebiten.Key{
	"left":      ebiten.KeyArrowLeft,
	"right":     ebiten.KeyArrowRight,
	"up":        ebiten.KeyArrowUp,
	"down":      ebiten.KeyArrowDown,
	"esc":       ebiten.KeyEscape,
	"enter":     ebiten.KeyEnter,
	"space":     ebiten.KeySpace,
	"tab":       ebiten.KeyTab,
	"backspace": ebiten.KeyBackspace,
}

// Keymap binds ebiten keys to commands.
type Keymap struct {
	bindings map[ebiten.Key]game.Command
}

// NewKeymap accepts the same names as the terminal keymap. Control chords
// have no window equivalent and are skipped.
func NewKeymap(bindings map[game.Command][]string) (*Keymap, error) {
	km := &Keymap{bindings: make(map[ebiten.Key]game.Command)}
	for cmd, names := range bindings {
		for _, name := range names {
			lower := strings.ToLower(name)
			if strings.HasPrefix(lower, "ctrl-") {
				continue
			}

			key, ok := aliases[lower]
			if !ok {
				if err := key.UnmarshalText([]byte(name)); err != nil {
					return nil, fmt.Errorf("unknown key %q for %s", name, cmd)
				}
			}
			km.bindings[key] = cmd
		}
	}
	return km, nil
}

func (km *Keymap) Lookup(key ebiten.Key) (game.Command, bool) {
	cmd, ok := km.bindings[key]
	return cmd, ok
}

// Keys returns every bound key ordered by command, then by key, so keys
// pressed in the same frame always apply in the same order.
func (km *Keymap) Keys() []ebiten.Key {
	keys := make([]ebiten.Key, 0, len(km.bindings))
	for k := range km.bindings {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b ebiten.Key) int {
		return cmp.Or(cmp.Compare(km.bindings[a], km.bindings[b]), cmp.Compare(a, b))
	})
	return keys
}

// Repeats reports whether holding the key for cmd should fire it again.
func Repeats(cmd game.Command) bool {
	switch cmd {
	case game.MoveLeft, game.MoveRight, game.SoftDrop:
		return true
	}
	return false
}

// Fires reports whether a key held for duration ticks triggers on this tick.
func Fires(duration int, repeat bool) bool {
	if duration == 1 {
		return true
	}
	if !repeat || duration <= RepeatDelay {
		return false
	}
	return (duration-RepeatDelay)%RepeatInterval == 0
}
