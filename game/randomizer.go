package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/plus3/blockfall/shape"
)

// Randomizer chooses the kind of each spawned piece.
type Randomizer interface {
	// Next consumes and returns the upcoming kind.
	Next() shape.Kind
	// Peek returns what Next will return without consuming it.
	Peek() shape.Kind
}

const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// NewRandomizer builds a randomizer by name. A zero seed picks a random one.
func NewRandomizer(name string, seed uint64) (Randomizer, error) {
	if seed == 0 {
		seed = rand.Uint64()
	}
	switch name {
	case RandomizerUniform, "":
		return NewUniform(seed), nil
	case RandomizerBag:
		return NewBag(seed), nil
	default:
		return nil, fmt.Errorf("unknown randomizer %q", name)
	}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Uniform picks every kind with equal probability, independently.
type Uniform struct {
	rng  *rand.Rand
	next shape.Kind
}

func NewUniform(seed uint64) *Uniform {
	u := &Uniform{rng: newRand(seed)}
	u.next = u.draw()
	return u
}

func (u *Uniform) draw() shape.Kind {
	return shape.Kind(u.rng.IntN(shape.KindCount))
}

func (u *Uniform) Next() shape.Kind {
	k := u.next
	u.next = u.draw()
	return k
}

func (u *Uniform) Peek() shape.Kind {
	return u.next
}

// Bag deals all seven kinds in a shuffled order before reshuffling.
type Bag struct {
	rng *rand.Rand
	bag []shape.Kind
}

func NewBag(seed uint64) *Bag {
	return &Bag{rng: newRand(seed)}
}

func (b *Bag) refill() {
	b.bag = shape.Kinds()
	b.rng.Shuffle(len(b.bag), func(i, j int) {
		b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
	})
}

func (b *Bag) Next() shape.Kind {
	if len(b.bag) == 0 {
		b.refill()
	}
	k := b.bag[0]
	b.bag = b.bag[1:]
	return k
}

func (b *Bag) Peek() shape.Kind {
	if len(b.bag) == 0 {
		b.refill()
	}
	return b.bag[0]
}

// Sequence repeats a fixed list of kinds. It is meant for tests and replays.
type Sequence struct {
	kinds []shape.Kind
	pos   int
}

// NewSequence panics when given no kinds.
func NewSequence(kinds ...shape.Kind) *Sequence {
	if len(kinds) == 0 {
		panic("sequence needs at least one kind")
	}
	return &Sequence{kinds: kinds}
}

func (s *Sequence) Next() shape.Kind {
	k := s.kinds[s.pos]
	s.pos = (s.pos + 1) % len(s.kinds)
	return k
}

func (s *Sequence) Peek() shape.Kind {
	return s.kinds[s.pos]
}
