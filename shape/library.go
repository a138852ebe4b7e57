package shape

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// MaxRotations caps the rotation set of any kind.
const MaxRotations = 4

type definition struct {
	base  Matrix
	color Color
}

var definitions = [KindCount]definition{
	I: {base: Parse("1111"), color: 45},
	O: {base: Parse("11", "11"), color: 226},
	T: {base: Parse("010", "111"), color: 129},
	J: {base: Parse("100", "111"), color: 27},
	L: {base: Parse("001", "111"), color: 208},
	S: {base: Parse("011", "110"), color: 34},
	Z: {base: Parse("110", "011"), color: 196},
}

// rotations is filled once at package initialisation and never written again.
var rotations = buildRotations()

func buildRotations() *intmap.Map[Kind, []Matrix] {
	m := intmap.New[Kind, []Matrix](KindCount)
	for _, k := range Kinds() {
		m.Put(k, rotationSet(definitions[k].base))
	}
	return m
}

// rotationSet rotates base clockwise until a repeat shows up or the cap is reached.
func rotationSet(base Matrix) []Matrix {
	set := []Matrix{base.Clone()}
	for len(set) < MaxRotations {
		next := Rotate(set[len(set)-1])
		if slices.ContainsFunc(set, next.Equal) {
			break
		}
		set = append(set, next)
	}
	return set
}

// RotationsOf returns the distinct clockwise orientations of kind, starting with
// its spawn orientation. The returned matrices are shared and must not be modified.
// Unknown kinds yield nil.
func RotationsOf(kind Kind) []Matrix {
	set, ok := rotations.Get(kind)
	if !ok {
		return nil
	}
	return set
}

// RotationCount returns len(RotationsOf(kind)).
func RotationCount(kind Kind) int {
	return len(RotationsOf(kind))
}

// Rotation returns orientation index of kind, wrapping the index modulo the
// rotation count.
func Rotation(kind Kind, index int) Matrix {
	set := RotationsOf(kind)
	if len(set) == 0 {
		return nil
	}
	index %= len(set)
	if index < 0 {
		index += len(set)
	}
	return set[index]
}
