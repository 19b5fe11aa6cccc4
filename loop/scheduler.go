// Package loop drives a board.Engine from the host side: a scheduler that runs
// systems each frame and serializes every access to the engine, and a driver
// that owns the repeating gravity timer.
package loop

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/plus3/fallgrid/board"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Commands        int64
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

// Scheduler runs systems against one engine. All engine access made through
// the scheduler is serialized, so ticks and player commands arriving from
// different goroutines never overlap.
type Scheduler struct {
	mu          sync.Mutex
	engine      *board.Engine
	systems     []System
	systemStats []*systemStatsInternal
	frames      int64
	commands    int64
}

// NewScheduler creates a new scheduler for the given engine.
func NewScheduler(engine *board.Engine) *Scheduler {
	return &Scheduler{
		engine:  engine,
		systems: make([]System, 0),
	}
}

// Register adds a system. Systems run in registration order.
func (s *Scheduler) Register(system System) {
	s.mu.Lock()
	defer s.mu.Unlock()

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

// Once executes all registered systems once with the given delta time and
// applies the commands they queued. It reports whether the board changed.
func (s *Scheduler) Once(dt float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := newFrame(dt, s.engine)

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

	s.frames++
	s.commands += int64(frame.Commands.Len())
	return frame.Commands.Flush(s.engine)
}

// Apply runs a single command against the engine outside the frame cycle.
func (s *Scheduler) Apply(cmd board.Command) board.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commands++
	return s.engine.Apply(cmd)
}

// View calls fn with exclusive access to the engine. fn must not retain the
// engine after it returns.
func (s *Scheduler) View(fn func(*board.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.engine)
}

// Run executes all systems repeatedly at the given interval until the context
// is cancelled. No frame starts after Run has observed the cancellation.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	s.RunNotify(ctx, interval, nil)
}

// RunNotify is Run with a callback invoked after every frame that changed the
// board.
func (s *Scheduler) RunNotify(ctx context.Context, interval time.Duration, changed func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			// Both cases may be ready at once; cancellation wins.
			if ctx.Err() != nil {
				return
			}
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if s.Once(dt) && changed != nil {
				changed()
			}
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Commands:    s.commands,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
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
