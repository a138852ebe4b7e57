package term

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/game"
)

// Keymap translates tcell key events into commands.
type Keymap struct {
	keys  map[tcell.Key]game.Command
	runes map[rune]game.Command
}

var keysByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// NewKeymap builds a keymap from key names per command. A name is either a
// single character, "Space", or a tcell key name such as "Left", "Esc" or
// "Ctrl-C". Names are case-insensitive and characters match either case.
func NewKeymap(bindings map[game.Command][]string) (*Keymap, error) {
	km := &Keymap{
		keys:  make(map[tcell.Key]game.Command),
		runes: make(map[rune]game.Command),
	}
	for cmd, names := range bindings {
		for _, name := range names {
			if err := km.bind(cmd, name); err != nil {
				return nil, err
			}
		}
	}
	return km, nil
}

func (km *Keymap) bind(cmd game.Command, name string) error {
	if strings.EqualFold(name, "space") {
		km.runes[' '] = cmd
		return nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		km.runes[unicode.ToLower(r)] = cmd
		return nil
	}
	k, ok := keysByName[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown key %q for %s", name, cmd)
	}
	km.keys[k] = cmd
	return nil
}

// Lookup returns the command bound to ev, if any.
func (km *Keymap) Lookup(ev *tcell.EventKey) (game.Command, bool) {
	if ev.Key() == tcell.KeyRune {
		cmd, ok := km.runes[unicode.ToLower(ev.Rune())]
		return cmd, ok
	}
	cmd, ok := km.keys[ev.Key()]
	return cmd, ok
}
