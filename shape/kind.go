package shape

import (
	"fmt"
	"strings"
)

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	I Kind = iota
	O
	T
	J
	L
	S
	Z
)

// KindCount is the number of distinct piece kinds.
const KindCount = 7

var kindNames = [KindCount]string{"I", "O", "T", "J", "L", "S", "Z"}

// Kinds returns every kind in canonical order.
func Kinds() []Kind {
	return []Kind{I, O, T, J, L, S, Z}
}

// Valid reports whether k names a known piece.
func (k Kind) Valid() bool {
	return k >= 0 && k < KindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind accepts a single letter, case-insensitive.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown piece kind %q", s)
}

// Color returns the 256-color palette index the kind is drawn with.
func (k Kind) Color() Color {
	if !k.Valid() {
		return 0
	}
	return definitions[k].color
}

// Base returns a copy of the kind's spawn orientation.
func (k Kind) Base() Matrix {
	if !k.Valid() {
		return nil
	}
	return definitions[k].base.Clone()
}
