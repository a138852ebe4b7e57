package game

import "github.com/plus3/blockfall/scheduler"

// GravitySystem advances a session on every scheduler poll whose time has
// reached the session's tick deadline.
type GravitySystem struct {
	Session *Session
	Ticks   int64
}

func (g *GravitySystem) Execute(frame *scheduler.Frame) {
	if g.Session.Advance(frame.Now) {
		g.Ticks++
	}
}
