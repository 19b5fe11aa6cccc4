// Package piece defines the seven falling-block shapes and the rotation and
// random selection rules the board engine builds on.
package piece

import (
	"iter"
	"strings"
)

// Kind identifies one of the seven canonical shapes.
type Kind uint8

const (
	O Kind = iota
	T
	Z
	S
	I
	J
	L
)

func (k Kind) String() string {
	switch k {
	case O:
		return "O"
	case T:
		return "T"
	case Z:
		return "Z"
	case S:
		return "S"
	case I:
		return "I"
	case J:
		return "J"
	case L:
		return "L"
	}
	return "?"
}

// Shape is one rotation state of a piece: an immutable rectangular matrix of
// filled and empty cells. Shapes are values; two shapes with the same cell
// pattern are equal regardless of kind.
type Shape struct {
	kind   Kind
	width  int
	height int
	cells  []bool // row-major, height*width
}

// newShape parses rows of '1' and '0' into a shape. All rows must have the same
// length.
func newShape(kind Kind, rows ...string) Shape {
	if len(rows) == 0 {
		panic("shape must have at least one row")
	}

	width := len(rows[0])
	cells := make([]bool, 0, width*len(rows))
	for _, row := range rows {
		if len(row) != width {
			panic("shape rows must have equal length")
		}
		for _, c := range row {
			cells = append(cells, c == '1')
		}
	}

	return Shape{
		kind:   kind,
		width:  width,
		height: len(rows),
		cells:  cells,
	}
}

// Kind returns the kind the shape was derived from.
func (s Shape) Kind() Kind {
	return s.kind
}

// Width returns the number of columns.
func (s Shape) Width() int {
	return s.width
}

// Height returns the number of rows.
func (s Shape) Height() int {
	return s.height
}

// Filled reports whether the cell at (row, col) is part of the shape.
// Coordinates outside the bounding box are empty.
func (s Shape) Filled(row, col int) bool {
	if row < 0 || row >= s.height || col < 0 || col >= s.width {
		return false
	}
	return s.cells[row*s.width+col]
}

// Cells returns an iterator over the (row, col) coordinates of filled cells in
// row-major order.
func (s Shape) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i, filled := range s.cells {
			if !filled {
				continue
			}
			if !yield(i/s.width, i%s.width) {
				return
			}
		}
	}
}

// Rotate returns the shape turned 90 degrees clockwise.
func (s Shape) Rotate() Shape {
	return RotateClockwise(s)
}

// Equal reports whether both shapes have the same dimensions and cell pattern.
func (s Shape) Equal(other Shape) bool {
	if s.width != other.width || s.height != other.height {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (s Shape) String() string {
	var b strings.Builder
	for row := 0; row < s.height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < s.width; col++ {
			if s.Filled(row, col) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

// RotateClockwise turns a shape of height H and width W into a shape of height
// W and width H where rotated[col][H-1-row] = original[row][col].
func RotateClockwise(s Shape) Shape {
	rotated := Shape{
		kind:   s.kind,
		width:  s.height,
		height: s.width,
		cells:  make([]bool, len(s.cells)),
	}

	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			rotated.cells[col*rotated.width+(s.height-1-row)] = s.cells[row*s.width+col]
		}
	}

	return rotated
}
