package board

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/fallgrid/piece"
)

// sequence returns a spawner that cycles through kinds.
func sequence(kinds ...piece.Kind) func() piece.Shape {
	i := 0
	return func() piece.Shape {
		k := kinds[i%len(kinds)]
		i++
		return piece.Canonical(k)
	}
}

func dropUntilLocked(t *testing.T, e *Engine) int {
	t.Helper()
	for moves := 0; moves <= e.Height(); moves++ {
		if e.MoveDown() == Locked {
			return moves
		}
	}
	t.Fatalf("piece did not lock within %d moves", e.Height())
	return 0
}

func TestNewEngine(t *testing.T) {
	e := New()
	assert.Equal(t, Idle, e.State())
	assert.False(t, e.Running())
	assert.Equal(t, DefaultWidth, e.Width())
	assert.Equal(t, DefaultHeight, e.Height())
	_, ok := e.Active()
	assert.False(t, ok)
	assert.Equal(t, Ignored, e.MoveDown())

	assert.Panics(t, func() { New(WithSize(0, 20)) })
}

func TestSpawnCentering(t *testing.T) {
	for _, kind := range piece.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			e := New(WithSpawner(sequence(kind)))
			e.Start()

			active, ok := e.Active()
			require.True(t, ok)
			assert.Equal(t, 10/2-active.Shape.Width()/2, active.X)
			assert.Equal(t, 0, active.Y)
			assert.Equal(t, kind, active.Shape.Kind())
			assert.Equal(t, Running, e.State())
		})
	}
}

func TestFits(t *testing.T) {
	e := New()
	e.grid.Set(3, 10, true)
	o := piece.Canonical(piece.O)

	t.Run("empty cells inside bounds", func(t *testing.T) {
		for x := 0; x <= 8; x++ {
			assert.True(t, e.Fits(o, x, 0), "x=%d", x)
		}
		assert.True(t, e.Fits(o, 0, 18))
		assert.True(t, e.Fits(o, 8, 18))
	})

	t.Run("outside bounds", func(t *testing.T) {
		assert.False(t, e.Fits(o, -1, 0))
		assert.False(t, e.Fits(o, 9, 0))
		assert.False(t, e.Fits(o, 0, -1))
		assert.False(t, e.Fits(o, 0, 19))
	})

	t.Run("overlapping a locked cell", func(t *testing.T) {
		assert.False(t, e.Fits(o, 2, 9))
		assert.False(t, e.Fits(o, 3, 10))
		assert.False(t, e.Fits(o, 2, 10))
		assert.True(t, e.Fits(o, 4, 10))
		assert.True(t, e.Fits(o, 3, 11))
	})

	t.Run("empty cells of the bounding box may overlap", func(t *testing.T) {
		// Row 2 of the T shape is empty.
		tee := piece.Canonical(piece.T)
		assert.True(t, e.Fits(tee, 2, 8))
		assert.True(t, e.Fits(tee, 0, 18))
		assert.False(t, e.Fits(tee, 0, 19))
	})
}

func TestDropOPieceToFloor(t *testing.T) {
	e := New(WithSpawner(sequence(piece.O)))
	e.Start()

	active, ok := e.Active()
	require.True(t, ok)
	require.Equal(t, 4, active.X)
	require.Equal(t, 0, active.Y)

	for i := 0; i < 18; i++ {
		require.Equal(t, Moved, e.MoveDown(), "drop %d", i+1)
	}
	active, _ = e.Active()
	assert.Equal(t, 18, active.Y)

	assert.Equal(t, Locked, e.MoveDown())

	grid := e.Grid()
	for row := 0; row < 20; row++ {
		for col := 0; col < 10; col++ {
			want := (row == 18 || row == 19) && (col == 4 || col == 5)
			assert.Equal(t, want, grid[row][col], "row %d col %d", row, col)
		}
	}

	assert.Equal(t, 0, e.Score())
	assert.Equal(t, 0, e.Lines())
	assert.True(t, e.Running())

	active, ok = e.Active()
	require.True(t, ok)
	assert.Equal(t, 4, active.X)
	assert.Equal(t, 0, active.Y)
}

func TestMoveSideways(t *testing.T) {
	e := New(WithSpawner(sequence(piece.O)))
	e.Start()

	for i := 0; i < 4; i++ {
		require.Equal(t, Moved, e.MoveLeft())
	}
	assert.Equal(t, Rejected, e.MoveLeft())
	active, _ := e.Active()
	assert.Equal(t, 0, active.X)

	for i := 0; i < 8; i++ {
		require.Equal(t, Moved, e.MoveRight())
	}
	assert.Equal(t, Rejected, e.MoveRight())
	active, _ = e.Active()
	assert.Equal(t, 8, active.X)
	assert.Equal(t, 0, active.Y)
}

func TestMoveBlockedByLockedCell(t *testing.T) {
	e := New(WithSpawner(sequence(piece.O)))
	e.Start()
	e.grid.Set(3, 1, true)

	assert.Equal(t, Rejected, e.MoveLeft())
	active, _ := e.Active()
	assert.Equal(t, 4, active.X)
}

func TestRotate(t *testing.T) {
	t.Run("turns in place", func(t *testing.T) {
		e := New(WithSpawner(sequence(piece.I)))
		e.Start()

		assert.Equal(t, Moved, e.Rotate())
		active, _ := e.Active()
		assert.Equal(t, 4, active.Shape.Width())
		assert.Equal(t, 1, active.Shape.Height())
		assert.Equal(t, 5, active.X)
		assert.Equal(t, 0, active.Y)
	})

	t.Run("refused at the wall", func(t *testing.T) {
		e := New(WithSpawner(sequence(piece.I)))
		e.Start()
		for e.MoveRight() == Moved {
		}
		active, _ := e.Active()
		require.Equal(t, 9, active.X)

		assert.Equal(t, Rejected, e.Rotate())
		after, _ := e.Active()
		assert.True(t, piece.Canonical(piece.I).Equal(after.Shape))
		assert.Equal(t, active.X, after.X)
	})

	t.Run("refused by a locked cell", func(t *testing.T) {
		e := New(WithSpawner(sequence(piece.T)))
		e.Start()
		// T spawns at x=4; its clockwise rotation needs (5,2).
		e.grid.Set(5, 2, true)

		assert.Equal(t, Rejected, e.Rotate())
		active, _ := e.Active()
		assert.True(t, piece.Canonical(piece.T).Equal(active.Shape))
	})

	t.Run("four turns restore the shape", func(t *testing.T) {
		e := New(WithSpawner(sequence(piece.L)))
		e.Start()
		e.MoveDown()
		e.MoveDown()
		for i := 0; i < 4; i++ {
			require.Equal(t, Moved, e.Rotate())
		}
		active, _ := e.Active()
		assert.True(t, piece.Canonical(piece.L).Equal(active.Shape))
	})
}

func TestScoring(t *testing.T) {
	tests := []struct {
		lines int
		score int
	}{
		{0, 0},
		{1, 100},
		{2, 400},
		{3, 900},
		{4, 1600},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d lines", tt.lines), func(t *testing.T) {
			e := New(WithSpawner(sequence(piece.I)))
			e.Start()

			// Fill the bottom rows except column 0, then drop the vertical I
			// into the gap.
			for row := 20 - tt.lines; row < 20; row++ {
				for col := 1; col < 10; col++ {
					e.grid.Set(col, row, true)
				}
			}
			for e.MoveLeft() == Moved {
			}

			dropUntilLocked(t, e)
			assert.Equal(t, tt.score, e.Score())
			assert.Equal(t, tt.lines, e.Lines())
			assert.Equal(t, tt.lines, e.Stats().Lines)
			if tt.lines > 0 {
				assert.Equal(t, 1, e.Stats().Clears(tt.lines))
			}
		})
	}
}

func TestScoreAccumulates(t *testing.T) {
	e := New(WithSpawner(sequence(piece.I)))
	e.Start()

	for _, lines := range []int{1, 2} {
		for row := 20 - lines; row < 20; row++ {
			for col := 1; col < 10; col++ {
				e.grid.Set(col, row, true)
			}
		}
		for e.MoveLeft() == Moved {
		}
		dropUntilLocked(t, e)

		// Remove what is left of the I so the next one falls to the floor.
		for row := 0; row < 20; row++ {
			e.grid.Set(0, row, false)
		}
	}

	assert.Equal(t, 500, e.Score())
	assert.Equal(t, 3, e.Lines())
}

func TestLockClearsRowsTwoAndFive(t *testing.T) {
	e := New(WithSpawner(sequence(piece.O)))
	e.Start()

	for row := 2; row < 20; row++ {
		if row == 2 || row == 5 {
			for col := 0; col < 10; col++ {
				e.grid.Set(col, row, true)
			}
			continue
		}
		e.grid.Set(0, row, true)
	}

	// Row 2 is full, so the O piece cannot leave rows 0 and 1.
	assert.Equal(t, Locked, e.MoveDown())
	assert.Equal(t, 400, e.Score())
	assert.Equal(t, 2, e.Lines())

	grid := e.Grid()
	for row := 0; row < 2; row++ {
		assert.Equal(t, make([]bool, 10), grid[row], "row %d", row)
	}
	// The locked O shifted from rows 0-1 to rows 2-3.
	for _, row := range []int{2, 3} {
		assert.True(t, grid[row][4])
		assert.True(t, grid[row][5])
	}
	// Former rows 3 and 4 moved down by one, rows 6 and below stayed.
	for row := 4; row < 20; row++ {
		assert.True(t, grid[row][0], "row %d", row)
		assert.False(t, grid[row][1], "row %d", row)
	}

	active, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, 0, active.Y)
}

func TestGameOver(t *testing.T) {
	t.Run("blocked first spawn", func(t *testing.T) {
		e := New(WithSize(10, 3), WithSpawner(sequence(piece.I)))
		e.Start()

		assert.Equal(t, GameOver, e.State())
		assert.False(t, e.Running())
		_, ok := e.Active()
		assert.False(t, ok)

		assert.Equal(t, Ignored, e.MoveDown())
		assert.Equal(t, Ignored, e.MoveLeft())
		assert.Equal(t, Ignored, e.Rotate())
		assert.Equal(t, 0, e.Score())
	})

	t.Run("blocked spawn after lock", func(t *testing.T) {
		var events []Event
		e := New(
			WithSpawner(sequence(piece.O)),
			WithListener(func(ev Event) { events = append(events, ev) }),
		)
		e.Start()
		e.grid.Set(4, 2, true)

		assert.Equal(t, Locked, e.MoveDown())
		assert.Equal(t, GameOver, e.State())
		_, ok := e.Active()
		assert.False(t, ok)

		frozen := e.Grid()
		assert.Equal(t, Ignored, e.MoveDown())
		assert.Equal(t, Ignored, e.MoveLeft())
		assert.Equal(t, Ignored, e.MoveRight())
		assert.Equal(t, Ignored, e.Rotate())
		assert.Equal(t, frozen, e.Grid())
		assert.Equal(t, 0, e.Score())

		require.Len(t, events, 3)
		assert.Equal(t, EventSpawned, events[0].Type)
		assert.Equal(t, EventLocked, events[1].Type)
		assert.Equal(t, piece.O, events[1].Kind)
		assert.Equal(t, EventGameOver, events[2].Type)
	})

	t.Run("restart after game over", func(t *testing.T) {
		e := New(WithSpawner(sequence(piece.O)))
		e.Start()
		e.grid.Set(4, 2, true)
		e.MoveDown()
		require.Equal(t, GameOver, e.State())

		e.Start()
		assert.Equal(t, Running, e.State())
		assert.Equal(t, 0, e.Score())
		active, ok := e.Active()
		require.True(t, ok)
		assert.Equal(t, 4, active.X)
		for _, row := range e.Grid() {
			assert.Equal(t, make([]bool, 10), row)
		}
	})
}

func TestStop(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		e := New(WithSpawner(sequence(piece.T)))
		e.Start()
		e.MoveDown()

		e.Stop()
		first := e.Snapshot()
		e.Stop()
		second := e.Snapshot()

		assert.Equal(t, first, second)
		assert.Equal(t, Idle, second.State)
	})

	t.Run("on a fresh engine", func(t *testing.T) {
		e := New()
		e.Stop()
		e.Stop()
		assert.Equal(t, Idle, e.State())
	})

	t.Run("commands become no-ops", func(t *testing.T) {
		e := New(WithSpawner(sequence(piece.J)))
		e.Start()
		e.Stop()
		before := e.Snapshot()

		for _, cmd := range []Command{Left, Right, Rotate, Down} {
			assert.Equal(t, Ignored, e.Apply(cmd), cmd.String())
		}
		assert.Equal(t, before, e.Snapshot())
	})
}

func TestApply(t *testing.T) {
	e := New(WithSpawner(sequence(piece.O)))
	e.Start()

	assert.Equal(t, Moved, e.Apply(Left))
	assert.Equal(t, Moved, e.Apply(Right))
	assert.Equal(t, Moved, e.Apply(Down))
	assert.Equal(t, Moved, e.Apply(Rotate))
	assert.Equal(t, Ignored, e.Apply(Command(0)))

	active, _ := e.Active()
	assert.Equal(t, 4, active.X)
	assert.Equal(t, 1, active.Y)
}

func TestStats(t *testing.T) {
	e := New(WithSpawner(sequence(piece.O, piece.I)))
	e.Start()

	dropUntilLocked(t, e)
	dropUntilLocked(t, e)

	stats := e.Stats()
	assert.Equal(t, 2, stats.Spawned(piece.O))
	assert.Equal(t, 1, stats.Spawned(piece.I))
	assert.Equal(t, 0, stats.Spawned(piece.T))
	assert.Equal(t, 3, stats.TotalSpawned())
	assert.Equal(t, 2, stats.Locks)
	assert.Equal(t, 0, stats.Lines)

	e.Start()
	assert.Equal(t, 1, e.Stats().TotalSpawned())
	assert.Equal(t, 0, e.Stats().Locks)
}

func TestSnapshotAt(t *testing.T) {
	e := New(WithSpawner(sequence(piece.T)))
	e.Start()
	e.grid.Set(0, 19, true)

	s := e.Snapshot()
	assert.Equal(t, CellFalling, s.At(5, 0))
	assert.Equal(t, CellEmpty, s.At(4, 0))
	assert.Equal(t, CellFalling, s.At(4, 1))
	assert.Equal(t, CellLocked, s.At(0, 19))
	assert.Equal(t, CellEmpty, s.At(-1, 0))
	assert.Equal(t, CellEmpty, s.At(0, 20))

	kind, ok := s.PieceKind()
	assert.True(t, ok)
	assert.Equal(t, piece.T, kind)

	// Snapshots do not alias engine state.
	s.Cells[0][0] = true
	assert.False(t, e.Grid()[0][0])
}

func TestSnapshotDropRow(t *testing.T) {
	e := New(WithSpawner(sequence(piece.O)))

	_, ok := e.Snapshot().DropRow()
	assert.False(t, ok, "no piece before start")

	e.Start()
	row, ok := e.Snapshot().DropRow()
	require.True(t, ok)
	assert.Equal(t, 18, row)

	e.grid.Set(5, 10, true)
	row, _ = e.Snapshot().DropRow()
	assert.Equal(t, 8, row)

	// DropRow agrees with where the piece actually locks.
	dropUntilLocked(t, e)
	assert.True(t, e.grid.Occupied(4, 9))
	assert.True(t, e.grid.Occupied(5, 8))
}
