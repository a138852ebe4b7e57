package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/scheduler"
	"github.com/plus3/blockfall/shape"
)

// State is the externally visible phase of a session.
type State uint8

const (
	Falling State = iota
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Falling:
		return "falling"
	case Paused:
		return "paused"
	case GameOver:
		return "game-over"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Session owns one game: the board, the falling piece and the score. Every
// operation runs to completion before returning and a session must only be
// used from one goroutine.
type Session struct {
	id         uuid.UUID
	clock      scheduler.Clock
	randomizer Randomizer
	events     *Events

	board    *board.Board
	piece    Piece
	score    int
	lines    int
	pieces   int
	state    State
	deadline time.Time
	version  uint64
}

// NewSession starts a game with the first piece already spawned. A nil
// clock means the wall clock.
func NewSession(clock scheduler.Clock, randomizer Randomizer) *Session {
	if clock == nil {
		clock = scheduler.SystemClock{}
	}
	s := &Session{
		clock:      clock,
		randomizer: randomizer,
		events:     newEvents(),
	}
	s.start()
	s.events.Flush()
	return s
}

func (s *Session) start() {
	now := s.clock.Now()
	s.id = uuid.New()
	s.board = board.New()
	s.score = 0
	s.lines = 0
	s.pieces = 0
	s.state = Falling
	s.spawn(now)
	s.deadline = now.Add(s.TickInterval())
	s.version++
}

// Reset discards the current game and starts a new one under a new id.
// Listeners stay subscribed.
func (s *Session) Reset() {
	defer s.events.Flush()

	s.record(EventReset, s.clock.Now())
	s.start()
}

// Subscribe registers a listener for session events.
func (s *Session) Subscribe(l Listener) {
	s.events.Subscribe(l)
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Score() int {
	return s.score
}

// Lines returns the total number of rows cleared.
func (s *Session) Lines() int {
	return s.lines
}

// Pieces returns how many pieces have been spawned, the current one included.
func (s *Session) Pieces() int {
	return s.pieces
}

// Piece returns a copy of the falling piece.
func (s *Session) Piece() Piece {
	return s.piece
}

// Next returns the kind the next spawn will use.
func (s *Session) Next() shape.Kind {
	return s.randomizer.Peek()
}

// Deadline is the time the next gravity tick is due.
func (s *Session) Deadline() time.Time {
	return s.deadline
}

func (s *Session) Clock() scheduler.Clock {
	return s.clock
}

// Level is derived from Lines on every call.
func (s *Session) Level() int {
	return LevelFor(s.lines)
}

// TickInterval is derived from Level on every call.
func (s *Session) TickInterval() time.Duration {
	return TickIntervalFor(s.Level())
}

// Version increases on every state change. Renderers compare it to skip
// redundant redraws.
func (s *Session) Version() uint64 {
	return s.version
}

// Board returns a copy of the locked cells.
func (s *Session) Board() *board.Board {
	return s.board.Clone()
}

// Ghost returns the row the current piece would rest on if hard-dropped now.
func (s *Session) Ghost() int {
	return HardDropTargetY(s.board, s.piece.Matrix(), s.piece.X, s.piece.Y)
}

// Apply executes a command. Commands that cannot take effect are silently
// ignored. Quit does not change the session; it returns ErrQuit so the
// caller can stop.
func (s *Session) Apply(cmd Command) error {
	defer s.events.Flush()

	now := s.clock.Now()
	switch cmd {
	case Quit:
		return ErrQuit
	case PauseToggle:
		s.togglePause(now)
		return nil
	}

	if s.state != Falling {
		return nil
	}

	switch cmd {
	case MoveLeft:
		s.changed(s.piece.Move(s.board, -1, 0))
	case MoveRight:
		s.changed(s.piece.Move(s.board, +1, 0))
	case SoftDrop:
		if s.piece.Move(s.board, 0, +1) {
			s.score += SoftDropPoints
			s.version++
		}
	case Rotate:
		s.changed(s.piece.RotateClockwise(s.board))
	case HardDrop:
		s.piece.Y = s.Ghost()
		s.score += HardDropPoints
		s.lockAndSpawn(now)
		s.deadline = now.Add(s.TickInterval())
		s.version++
	default:
		return fmt.Errorf("unknown command %v", cmd)
	}
	return nil
}

func (s *Session) changed(ok bool) {
	if ok {
		s.version++
	}
}

func (s *Session) togglePause(now time.Time) {
	switch s.state {
	case Falling:
		s.state = Paused
		s.record(EventPaused, now)
	case Paused:
		s.state = Falling
		// Restart the interval so resuming does not cause a catch-up tick.
		s.deadline = now.Add(s.TickInterval())
		s.record(EventResumed, now)
	default:
		return
	}
	s.version++
}

// Advance runs the gravity transition if the session is falling and now has
// reached the deadline. It reports whether a tick fired.
func (s *Session) Advance(now time.Time) bool {
	if s.state != Falling || now.Before(s.deadline) {
		return false
	}
	defer s.events.Flush()

	s.tick(now)
	return true
}

// Tick runs the gravity transition immediately, regardless of the deadline.
// It is a no-op unless the session is falling.
func (s *Session) Tick() {
	if s.state != Falling {
		return
	}
	defer s.events.Flush()

	s.tick(s.clock.Now())
}

func (s *Session) tick(now time.Time) {
	if !s.piece.Move(s.board, 0, +1) {
		s.lockAndSpawn(now)
	}
	s.deadline = now.Add(s.TickInterval())
	s.version++
}

// lockAndSpawn merges the piece into the board, clears lines, scores them and
// spawns the next piece, ending the game if the piece overflowed the top or
// the new piece has no room.
func (s *Session) lockAndSpawn(now time.Time) {
	p := s.piece
	s.board.Merge(p.Matrix(), p.X, p.Y, p.Color)
	s.record(EventLocked, now)

	if p.AboveBoard() {
		s.gameOver(now)
		return
	}

	if cleared := s.board.ClearFullLines(); cleared > 0 {
		level := s.Level()
		points := LineClearScore(cleared, level)
		s.lines += cleared
		s.score += points

		ev := s.event(EventLinesCleared, now)
		ev.Cleared = cleared
		ev.Points = points
		s.events.Record(ev)

		if s.Level() > level {
			s.record(EventLevelUp, now)
		}
	}

	s.spawn(now)
	// Unreachable while SpawnY keeps every spawn shape above row 0.
	if s.board.Collides(s.piece.Matrix(), s.piece.X, s.piece.Y) {
		s.gameOver(now)
	}
}

func (s *Session) spawn(now time.Time) {
	s.piece = Spawn(s.randomizer.Next())
	s.pieces++
	s.record(EventSpawned, now)
}

func (s *Session) gameOver(now time.Time) {
	s.state = GameOver
	s.record(EventGameOver, now)
}

func (s *Session) event(t EventType, now time.Time) Event {
	return Event{
		Type:    t,
		Session: s.id,
		At:      now,
		Piece:   s.piece,
		Score:   s.score,
		Lines:   s.lines,
		Level:   s.Level(),
	}
}

func (s *Session) record(t EventType, now time.Time) {
	s.events.Record(s.event(t, now))
}
