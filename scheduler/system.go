package scheduler

import "time"

// System is polled once per scheduler frame. Implementations decide for
// themselves whether enough time has passed to act.
type System interface {
	Execute(frame *Frame)
}

// Frame describes one poll of the scheduler.
type Frame struct {
	// Now is the clock reading taken at the start of the poll.
	Now time.Time
	// DeltaTime is the clock time elapsed since the previous poll; zero on
	// the first one.
	DeltaTime time.Duration
	// Index counts polls starting at 1.
	Index int64
}
