package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/fallgrid/piece"
)

func TestRunPlaysGames(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	report := Run(ctx, Config{Duration: 200 * time.Millisecond, Seed: 42, Width: 6, Height: 6})

	require.NotEmpty(t, report.FrameTime.Samples)
	assert.Positive(t, report.Games, "a 6x6 grid should fill up many times")
	assert.Len(t, report.Scores.Samples, report.Games)
	assert.LessOrEqual(t, report.Scores.Min, report.Scores.Max)

	spawned := 0
	for _, kind := range piece.Kinds() {
		spawned += report.Spawns[kind]
	}
	assert.GreaterOrEqual(t, spawned, report.Locks)
	assert.GreaterOrEqual(t, spawned, report.Games)

	cleared := 0
	for lines, n := range report.Clears {
		assert.LessOrEqual(t, lines, 4)
		cleared += lines * n
	}
	assert.Equal(t, report.Lines, cleared)

	require.NotNil(t, report.Scheduler)
	assert.Equal(t, 3, report.Scheduler.SystemCount)
}

func TestStatsFinalize(t *testing.T) {
	s := Stats[time.Duration]{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats[int]
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	report := Run(ctx, Config{Duration: 20 * time.Millisecond, Seed: 7, Width: 6, Height: 8})

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "# fallgrid Stress Test Report")
	assert.Contains(t, out, "**Grid:** 6x8")
	assert.Contains(t, out, "**Seed:** 7")
	assert.Contains(t, out, "GravitySystem")
	for _, kind := range piece.Kinds() {
		assert.Contains(t, out, "- "+kind.String()+": ")
	}
}
