package game

import (
	"errors"
	"fmt"
)

// Command is an abstract player request. Frontends translate their own key
// events into commands; the session never sees raw input.
type Command uint8

const (
	MoveLeft Command = iota + 1
	MoveRight
	SoftDrop
	Rotate
	HardDrop
	PauseToggle
	Quit
)

// ErrQuit is returned by Session.Apply for the Quit command.
var ErrQuit = errors.New("quit requested")

var commandNames = map[Command]string{
	MoveLeft:    "move-left",
	MoveRight:   "move-right",
	SoftDrop:    "soft-drop",
	Rotate:      "rotate",
	HardDrop:    "hard-drop",
	PauseToggle: "pause-toggle",
	Quit:        "quit",
}

// Commands lists every command in declaration order.
func Commands() []Command {
	return []Command{MoveLeft, MoveRight, SoftDrop, Rotate, HardDrop, PauseToggle, Quit}
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// ParseCommand maps a command name such as "hard-drop" back to its value.
func ParseCommand(name string) (Command, error) {
	for c, n := range commandNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", name)
}
