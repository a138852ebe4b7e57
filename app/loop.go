package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/logger"
	"github.com/plus3/blockfall/scheduler"
)

// Renderer draws a snapshot. It is only ever called from the loop goroutine.
type Renderer interface {
	Render(snap game.Snapshot) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(snap game.Snapshot) error

func (f RendererFunc) Render(snap game.Snapshot) error {
	return f(snap)
}

// Loop is the single writer of a session. Commands and gravity polls are
// serialised through Run so no transition ever overlaps another.
type Loop struct {
	session   *game.Session
	scheduler *scheduler.Scheduler
	renderer  Renderer
	interval  time.Duration

	gravity  *game.GravitySystem
	rendered uint64
	drawn    bool
}

// NewLoop wires gravity for session into sched. Other systems registered on
// sched run on the same polls.
func NewLoop(session *game.Session, sched *scheduler.Scheduler, renderer Renderer, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = scheduler.DefaultPollInterval
	}
	gravity := &game.GravitySystem{Session: session}
	sched.Register(gravity)

	return &Loop{
		session:   session,
		scheduler: sched,
		renderer:  renderer,
		interval:  interval,
		gravity:   gravity,
	}
}

func (l *Loop) Session() *game.Session {
	return l.session
}

func (l *Loop) Scheduler() *scheduler.Scheduler {
	return l.scheduler
}

// Ticks returns how many gravity ticks have fired.
func (l *Loop) Ticks() int64 {
	return l.gravity.Ticks
}

// Run renders the initial state, then applies commands from inputs and
// polls gravity until ctx is done, inputs is closed or Quit arrives. Quit
// yields game.ErrQuit.
func (l *Loop) Run(ctx context.Context, inputs <-chan game.Command) error {
	if err := l.render(); err != nil {
		return err
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case cmd, ok := <-inputs:
			if !ok {
				return nil
			}
			if err := l.Apply(cmd); err != nil {
				return err
			}

		case <-ticker.C:
			if err := l.Poll(); err != nil {
				return err
			}
		}
	}
}

// Apply runs one command and redraws if anything changed.
func (l *Loop) Apply(cmd game.Command) error {
	if err := l.session.Apply(cmd); err != nil {
		if !errors.Is(err, game.ErrQuit) {
			logger.Log.Warnw("command failed", "command", cmd.String(), "error", err)
		}
		return err
	}
	return l.render()
}

// Poll runs the scheduler once and redraws if anything changed.
func (l *Loop) Poll() error {
	l.scheduler.Once()
	return l.render()
}

func (l *Loop) render() error {
	if l.drawn && l.session.Version() == l.rendered {
		return nil
	}
	if err := l.renderer.Render(l.session.Snapshot()); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	l.rendered = l.session.Version()
	l.drawn = true
	return nil
}
