package shape_test

import (
	"fmt"

	"github.com/plus3/blockfall/shape"
)

// ExampleRotationsOf shows the distinct orientations of the S piece. Pieces
// with rotational symmetry stop as soon as an orientation repeats.
func ExampleRotationsOf() {
	for i, m := range shape.RotationsOf(shape.S) {
		fmt.Printf("rotation %d:\n%s\n", i, m)
	}

	// Output:
	// rotation 0:
	// .##
	// ##.
	// rotation 1:
	// #.
	// ##
	// .#
}
