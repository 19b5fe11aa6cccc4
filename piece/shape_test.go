package piece

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateClockwise(t *testing.T) {
	t.Run("full turn returns the original", func(t *testing.T) {
		for _, kind := range Kinds() {
			original := Canonical(kind)
			shape := original
			for i := 0; i < 4; i++ {
				shape = RotateClockwise(shape)
			}
			assert.True(t, original.Equal(shape), "kind %s:\n%s\n!=\n%s", kind, original, shape)
		}
	})

	t.Run("swaps bounding box", func(t *testing.T) {
		i := Canonical(I)
		require.Equal(t, 1, i.Width())
		require.Equal(t, 4, i.Height())

		rotated := i.Rotate()
		assert.Equal(t, 4, rotated.Width())
		assert.Equal(t, 1, rotated.Height())
		assert.Equal(t, "####", rotated.String())
	})

	t.Run("cell mapping", func(t *testing.T) {
		for _, kind := range Kinds() {
			s := Canonical(kind)
			r := s.Rotate()
			for row := 0; row < s.Height(); row++ {
				for col := 0; col < s.Width(); col++ {
					assert.Equal(t, s.Filled(row, col), r.Filled(col, s.Height()-1-row),
						"kind %s row %d col %d", kind, row, col)
				}
			}
		}
	})

	t.Run("J turns onto its side", func(t *testing.T) {
		assert.Equal(t, "###\n#..", Canonical(J).Rotate().String())
	})

	t.Run("T points right", func(t *testing.T) {
		assert.Equal(t, ".#.\n.##\n.#.", Canonical(T).Rotate().String())
	})

	t.Run("does not modify the input", func(t *testing.T) {
		before := Canonical(L).String()
		_ = Canonical(L).Rotate()
		assert.Equal(t, before, Canonical(L).String())
	})
}

func TestShapeEqual(t *testing.T) {
	assert.True(t, Canonical(O).Equal(Canonical(O).Rotate()))
	assert.False(t, Canonical(S).Equal(Canonical(Z)))
	assert.False(t, Canonical(J).Equal(Canonical(J).Rotate()))

	// Equality ignores the kind a shape came from.
	sideways := newShape(T, "1111")
	assert.True(t, Canonical(I).Rotate().Equal(sideways))
}

func TestShapeCells(t *testing.T) {
	var got [][2]int
	for row, col := range Canonical(T).Cells() {
		got = append(got, [2]int{row, col})
	}
	assert.Equal(t, [][2]int{{0, 1}, {1, 0}, {1, 1}, {1, 2}}, got)

	count := 0
	for range Canonical(I).Cells() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestShapeFilledOutOfBounds(t *testing.T) {
	o := Canonical(O)
	assert.False(t, o.Filled(-1, 0))
	assert.False(t, o.Filled(0, 2))
	assert.False(t, o.Filled(2, 0))
	assert.True(t, o.Filled(1, 1))
}
