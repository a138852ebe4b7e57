package game

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/scheduler"
	"github.com/plus3/blockfall/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestSession(kinds ...shape.Kind) (*Session, *scheduler.ManualClock) {
	clock := scheduler.NewManualClock(epoch)
	return NewSession(clock, NewSequence(kinds...)), clock
}

// fillRow occupies every column of row y except the listed gaps.
func fillRow(b *board.Board, y int, gaps ...int) {
	skip := make(map[int]bool, len(gaps))
	for _, g := range gaps {
		skip[g] = true
	}
	for x := 0; x < board.Width; x++ {
		if !skip[x] {
			b.Set(x, y, board.OccupiedBy(8))
		}
	}
}

type eventLog struct {
	types []EventType
	all   []Event
}

func (l *eventLog) OnEvent(ev Event) {
	l.types = append(l.types, ev.Type)
	l.all = append(l.all, ev)
}

func TestNewSession(t *testing.T) {
	s, _ := newTestSession(shape.T, shape.O)

	assert.Equal(t, Falling, s.State())
	assert.Equal(t, 1, s.Pieces())
	assert.Equal(t, shape.T, s.Piece().Kind)
	assert.Equal(t, shape.O, s.Next())
	assert.Equal(t, SpawnY, s.Piece().Y)
	assert.Equal(t, epoch.Add(700*time.Millisecond), s.Deadline())
	assert.Zero(t, s.Score())
	assert.NotEqual(t, uuid.Nil, s.ID())
	assert.Zero(t, s.events.Pending())
}

func TestSoftDrop(t *testing.T) {
	s, _ := newTestSession(shape.I)

	require.NoError(t, s.Apply(SoftDrop))
	assert.Equal(t, SpawnY+1, s.Piece().Y)
	assert.Equal(t, SoftDropPoints, s.Score())

	for s.Piece().Y < board.Height-1 {
		require.NoError(t, s.Apply(SoftDrop))
	}
	assert.Equal(t, 21, s.Score())

	t.Run("blocked soft drop neither scores nor locks", func(t *testing.T) {
		version := s.Version()
		require.NoError(t, s.Apply(SoftDrop))
		assert.Equal(t, 21, s.Score())
		assert.Equal(t, 1, s.Pieces())
		assert.Equal(t, version, s.Version())
	})

	t.Run("gravity locks the resting piece", func(t *testing.T) {
		s.Tick()
		assert.Equal(t, 2, s.Pieces())
		assert.Equal(t, board.OccupiedBy(shape.I.Color()), s.board.At(3, board.Height-1))
		assert.Equal(t, SpawnY, s.Piece().Y)

		require.NoError(t, s.Apply(SoftDrop))
		assert.Equal(t, SpawnY+1, s.Piece().Y)
	})
}

func TestHardDrop(t *testing.T) {
	s, clock := newTestSession(shape.I, shape.O)
	now := clock.Advance(300 * time.Millisecond)

	require.NoError(t, s.Apply(HardDrop))

	assert.Equal(t, HardDropPoints, s.Score())
	assert.Equal(t, 2, s.Pieces())
	assert.Equal(t, shape.O, s.Piece().Kind)
	for x := 3; x <= 6; x++ {
		assert.True(t, s.board.At(x, board.Height-1).IsOccupied(), "x=%d", x)
	}
	assert.Equal(t, now.Add(700*time.Millisecond), s.Deadline())
}

func TestMoveAndRotate(t *testing.T) {
	s, _ := newTestSession(shape.T)
	version := s.Version()

	require.NoError(t, s.Apply(MoveLeft))
	assert.Equal(t, 2, s.Piece().X)
	require.NoError(t, s.Apply(MoveRight))
	require.NoError(t, s.Apply(MoveRight))
	assert.Equal(t, 4, s.Piece().X)
	require.NoError(t, s.Apply(Rotate))
	assert.Equal(t, 1, s.Piece().Rotation)
	assert.Equal(t, version+4, s.Version())

	for i := 0; i < board.Width; i++ {
		require.NoError(t, s.Apply(MoveLeft))
	}
	assert.Zero(t, s.Piece().X)
	assert.Zero(t, s.Score(), "moves do not score")

	assert.Error(t, s.Apply(Command(42)))
}

func TestGravity(t *testing.T) {
	s, clock := newTestSession(shape.I)

	assert.False(t, s.Advance(clock.Advance(699*time.Millisecond)))
	assert.Equal(t, SpawnY, s.Piece().Y)

	now := clock.Advance(time.Millisecond)
	assert.True(t, s.Advance(now))
	assert.Equal(t, SpawnY+1, s.Piece().Y)
	assert.Equal(t, now.Add(700*time.Millisecond), s.Deadline())

	t.Run("through the scheduler", func(t *testing.T) {
		sched := scheduler.New(clock)
		gravity := &GravitySystem{Session: s}
		sched.Register(gravity)

		sched.Once()
		assert.Zero(t, gravity.Ticks)

		clock.Advance(700 * time.Millisecond)
		sched.Once()
		assert.EqualValues(t, 1, gravity.Ticks)
		assert.Equal(t, SpawnY+2, s.Piece().Y)
	})
}

func TestPause(t *testing.T) {
	s, clock := newTestSession(shape.I)
	log := &eventLog{}
	s.Subscribe(log)

	require.NoError(t, s.Apply(PauseToggle))
	assert.Equal(t, Paused, s.State())

	now := clock.Advance(5 * time.Second)
	assert.False(t, s.Advance(now), "gravity is frozen")
	s.Tick()
	require.NoError(t, s.Apply(MoveLeft))
	require.NoError(t, s.Apply(HardDrop))
	assert.Equal(t, Spawn(shape.I), s.Piece())
	assert.Zero(t, s.Score())

	require.NoError(t, s.Apply(PauseToggle))
	assert.Equal(t, Falling, s.State())
	assert.Equal(t, now.Add(700*time.Millisecond), s.Deadline(), "resume restarts the interval")
	assert.False(t, s.Advance(now))

	assert.Equal(t, []EventType{EventPaused, EventResumed}, log.types)
}

func TestQuit(t *testing.T) {
	s, _ := newTestSession(shape.I)
	assert.ErrorIs(t, s.Apply(Quit), ErrQuit)
	assert.Equal(t, Falling, s.State())

	require.NoError(t, s.Apply(PauseToggle))
	assert.ErrorIs(t, s.Apply(Quit), ErrQuit)
	assert.Equal(t, Paused, s.State())
}

func TestLineClearScoring(t *testing.T) {
	base := []int{0, 40, 100, 300, 1200}
	for _, level := range []int{0, 3} {
		for n := 1; n <= 4; n++ {
			s, _ := newTestSession(shape.I)
			s.lines = level * LinesPerLevel
			for y := board.Height - n; y < board.Height; y++ {
				fillRow(s.board, y, 0)
			}
			s.piece = Piece{Kind: shape.I, Rotation: 1, X: 0, Y: 0, Color: shape.I.Color()}

			require.NoError(t, s.Apply(HardDrop))

			assert.Equal(t, HardDropPoints+base[n]*(level+1), s.Score(), "n=%d level=%d", n, level)
			assert.Equal(t, level*LinesPerLevel+n, s.Lines())
			for y := board.Height - n; y < board.Height; y++ {
				assert.False(t, s.board.RowFull(y))
			}
		}
	}
}

func TestLevelUp(t *testing.T) {
	s, clock := newTestSession(shape.I)
	log := &eventLog{}
	s.Subscribe(log)
	s.lines = 9
	fillRow(s.board, board.Height-1, 3, 4, 5, 6)
	now := clock.Advance(100 * time.Millisecond)

	assert.Equal(t, 700*time.Millisecond, s.TickInterval())
	require.NoError(t, s.Apply(HardDrop))

	assert.Equal(t, 1, s.Level())
	assert.Equal(t, 640*time.Millisecond, s.TickInterval())
	assert.Equal(t, HardDropPoints+40, s.Score(), "clears score at the level before the clear")
	assert.Equal(t, now.Add(640*time.Millisecond), s.Deadline())
	assert.Equal(t, []EventType{EventLocked, EventLinesCleared, EventLevelUp, EventSpawned}, log.types)

	cleared := log.all[1]
	assert.Equal(t, 1, cleared.Cleared)
	assert.Equal(t, 40, cleared.Points)
	assert.Equal(t, s.ID(), cleared.Session)
	assert.Equal(t, now, cleared.At)
}

func TestLastCellClearsLine(t *testing.T) {
	s, _ := newTestSession(shape.I)
	fillRow(s.board, board.Height-1, 3, 4, 5, 6)
	fillRow(s.board, board.Height-2, 0, 3, 4, 5, 6)

	require.NoError(t, s.Apply(HardDrop))

	assert.Equal(t, 1, s.Lines())
	assert.Equal(t, 42, s.Score())
	assert.False(t, s.board.RowFull(board.Height-1))
	assert.True(t, s.board.At(1, board.Height-1).IsOccupied(), "row above shifted down")
	assert.True(t, s.board.At(0, board.Height-1).IsEmpty())
}

func TestGameOver(t *testing.T) {
	s, _ := newTestSession(shape.O)
	log := &eventLog{}
	s.Subscribe(log)
	for y := 0; y < board.Height; y++ {
		fillRow(s.board, y, 0)
	}
	id := s.ID()

	s.Tick()

	assert.Equal(t, GameOver, s.State())
	assert.Equal(t, []EventType{EventLocked, EventGameOver}, log.types)

	t.Run("further input is ignored", func(t *testing.T) {
		version := s.Version()
		require.NoError(t, s.Apply(MoveLeft))
		require.NoError(t, s.Apply(HardDrop))
		require.NoError(t, s.Apply(PauseToggle))
		assert.False(t, s.Advance(s.Deadline().Add(time.Hour)))
		assert.Equal(t, version, s.Version())
		assert.Equal(t, GameOver, s.State())
	})

	t.Run("reset starts over", func(t *testing.T) {
		s.Reset()
		assert.Equal(t, Falling, s.State())
		assert.NotEqual(t, id, s.ID())
		assert.Zero(t, s.Score())
		assert.Equal(t, 1, s.Pieces())
		assert.True(t, s.board.At(5, 5).IsEmpty())
		assert.Equal(t, EventSpawned, log.types[len(log.types)-1])
	})
}

func TestEventsAfterTransition(t *testing.T) {
	s, _ := newTestSession(shape.I)
	fillRow(s.board, board.Height-1, 3, 4, 5, 6)

	var seen []int
	s.Subscribe(ListenerFunc(func(ev Event) {
		seen = append(seen, s.Score())
	}))

	require.NoError(t, s.Apply(HardDrop))
	require.Len(t, seen, 3)
	for _, score := range seen {
		assert.Equal(t, 42, score, "listeners see the finished transition")
	}
}

func TestGhostIsPure(t *testing.T) {
	s, _ := newTestSession(shape.I)
	piece, version := s.Piece(), s.Version()

	assert.Equal(t, board.Height-1, s.Ghost())
	assert.Equal(t, piece, s.Piece())
	assert.Equal(t, version, s.Version())
}

func TestSnapshot(t *testing.T) {
	s, _ := newTestSession(shape.I, shape.Z)
	snap := s.Snapshot()

	assert.Equal(t, shape.Z, snap.Next)
	assert.Equal(t, board.Height-1, snap.GhostY)
	assert.False(t, snap.Paused())
	assert.False(t, snap.Over())

	cells := snap.Cells()
	for x := 3; x <= 6; x++ {
		assert.Equal(t, board.GhostCell(), cells[board.Height-1][x])
	}
	assert.True(t, s.board.At(3, board.Height-1).IsEmpty(), "ghost is not stored on the board")

	require.NoError(t, s.Apply(SoftDrop))
	require.NoError(t, s.Apply(SoftDrop))
	cells = s.Snapshot().Cells()
	assert.Equal(t, board.OccupiedBy(shape.I.Color()), cells[0][3])
	assert.Equal(t, board.GhostCell(), cells[board.Height-1][3])

	t.Run("snapshot is detached", func(t *testing.T) {
		snap := s.Snapshot()
		snap.Board[10][0] = board.OccupiedBy(1)
		snap.Matrix[0][0] = false
		assert.True(t, s.board.At(0, 10).IsEmpty())
		assert.True(t, s.Piece().Matrix()[0][0])
	})
}
