package board

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRow(g *Grid, row int) {
	for col := 0; col < g.Width(); col++ {
		g.Set(col, row, true)
	}
}

// compactRows is a reference line clear: copy every non-full row downward in
// order and pad the top with empty rows.
func compactRows(rows [][]bool) ([][]bool, int) {
	height := len(rows)
	width := len(rows[0])

	kept := make([][]bool, 0, height)
	for _, row := range rows {
		full := true
		for _, occupied := range row {
			if !occupied {
				full = false
				break
			}
		}
		if !full {
			kept = append(kept, append([]bool(nil), row...))
		}
	}

	removed := height - len(kept)
	out := make([][]bool, 0, height)
	for i := 0; i < removed; i++ {
		out = append(out, make([]bool, width))
	}
	return append(out, kept...), removed
}

func TestClearFullRows(t *testing.T) {
	t.Run("rows 2 and 5", func(t *testing.T) {
		g := NewGrid(10, 20)
		for row := 0; row < g.Height(); row++ {
			if row == 2 || row == 5 {
				fillRow(g, row)
				continue
			}
			// One marker cell per partial row so shifts can be traced.
			g.Set(row%g.Width(), row, true)
		}

		removed := g.ClearFullRows()
		require.Equal(t, 2, removed)

		for row := 0; row < 2; row++ {
			for col := 0; col < g.Width(); col++ {
				assert.False(t, g.Occupied(col, row), "row %d col %d should be empty", row, col)
			}
		}

		for original := 0; original < 20; original++ {
			if original == 2 || original == 5 {
				continue
			}
			shift := 0
			if original < 2 {
				shift = 2
			} else if original < 5 {
				shift = 1
			}
			row := original + shift
			assert.True(t, g.Occupied(original%10, row), "marker of row %d expected at row %d", original, row)
			assert.False(t, g.RowFull(row))
		}
	})

	t.Run("adjacent full rows", func(t *testing.T) {
		g := NewGrid(4, 6)
		fillRow(g, 5)
		fillRow(g, 4)
		g.Set(1, 3, true)

		assert.Equal(t, 2, g.ClearFullRows())
		assert.True(t, g.Occupied(1, 5))
		for row := 0; row < 5; row++ {
			for col := 0; col < 4; col++ {
				assert.False(t, g.Occupied(col, row))
			}
		}
	})

	t.Run("every row full", func(t *testing.T) {
		g := NewGrid(3, 5)
		for row := 0; row < 5; row++ {
			fillRow(g, row)
		}
		assert.Equal(t, 5, g.ClearFullRows())
		assert.Equal(t, NewGrid(3, 5).Rows(), g.Rows())
	})

	t.Run("no full rows", func(t *testing.T) {
		g := NewGrid(3, 3)
		g.Set(0, 2, true)
		g.Set(2, 1, true)
		before := g.Rows()
		assert.Equal(t, 0, g.ClearFullRows())
		assert.Equal(t, before, g.Rows())
	})
}

// TestClearFullRowsMatchesCompaction checks that the bottom-up re-scan gives
// the same grid as an order-independent compaction.
func TestClearFullRowsMatchesCompaction(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 500; i++ {
		width := 1 + rng.IntN(10)
		height := 1 + rng.IntN(20)
		g := NewGrid(width, height)

		for row := 0; row < height; row++ {
			if rng.IntN(3) == 0 {
				fillRow(g, row)
				continue
			}
			for col := 0; col < width; col++ {
				g.Set(col, row, rng.IntN(2) == 0)
			}
		}

		want, wantRemoved := compactRows(g.Rows())
		removed := g.ClearFullRows()

		require.Equal(t, wantRemoved, removed, "iteration %d", i)
		require.Equal(t, want, g.Rows(), "iteration %d", i)
	}
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(10, 20)
	assert.True(t, g.InBounds(0, 0))
	assert.True(t, g.InBounds(9, 19))
	assert.False(t, g.InBounds(10, 0))
	assert.False(t, g.InBounds(0, 20))
	assert.False(t, g.InBounds(-1, 5))

	g.Set(-1, 0, true)
	g.Set(10, 0, true)
	assert.False(t, g.Occupied(-1, 0))
	assert.False(t, g.Occupied(10, 0))

	assert.Panics(t, func() { NewGrid(0, 20) })
	assert.Panics(t, func() { NewGrid(10, -1) })
}

func TestGridRowsIsCopy(t *testing.T) {
	g := NewGrid(2, 2)
	rows := g.Rows()
	rows[0][0] = true
	assert.False(t, g.Occupied(0, 0))
}
