package scheduler

import (
	"context"
	"reflect"
	"time"
)

// DefaultPollInterval is the reference polling cadence.
const DefaultPollInterval = 10 * time.Millisecond

// Stats provides statistics about scheduler execution.
type Stats struct {
	SystemCount     int
	Polls           int64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler polls registered systems in registration order against a Clock.
// It is not safe for concurrent use; one goroutine owns it.
type Scheduler struct {
	clock       Clock
	systems     []System
	systemStats []*systemStatsInternal
	polls       int64
	last        time.Time
}

// New creates a scheduler reading time from clock. A nil clock means the
// wall clock.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{
		clock:   clock,
		systems: make([]System, 0),
	}
}

// Clock returns the clock frames are built from.
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// Register appends a system to the poll order.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once performs a single poll: it reads the clock, executes every system
// and returns the frame it built.
func (s *Scheduler) Once() *Frame {
	now := s.clock.Now()
	s.polls++

	frame := &Frame{Now: now, Index: s.polls}
	if !s.last.IsZero() {
		frame.DeltaTime = now.Sub(s.last)
	}
	s.last = now

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	return frame
}

// Run polls at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Once()
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *Stats {
	stats := &Stats{
		SystemCount: len(s.systems),
		Polls:       s.polls,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
