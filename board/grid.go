package board

// Grid is a fixed-size occupancy matrix indexed as [row][col], row 0 at the top.
type Grid struct {
	width  int
	height int
	rows   [][]bool
}

// NewGrid creates an empty grid. It panics on non-positive dimensions.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic("grid dimensions must be positive")
	}

	g := &Grid{
		width:  width,
		height: height,
		rows:   make([][]bool, height),
	}
	for row := range g.rows {
		g.rows[row] = make([]bool, width)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether (col, row) addresses a cell of the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

// Occupied reports whether the cell at (col, row) is filled. Cells outside the
// grid are reported as empty.
func (g *Grid) Occupied(col, row int) bool {
	if !g.InBounds(col, row) {
		return false
	}
	return g.rows[row][col]
}

// Set marks the cell at (col, row). Out of bounds writes are ignored.
func (g *Grid) Set(col, row int, occupied bool) {
	if !g.InBounds(col, row) {
		return
	}
	g.rows[row][col] = occupied
}

// Reset empties every cell.
func (g *Grid) Reset() {
	for _, row := range g.rows {
		clear(row)
	}
}

// RowFull reports whether every column of row is occupied.
func (g *Grid) RowFull(row int) bool {
	for _, occupied := range g.rows[row] {
		if !occupied {
			return false
		}
	}
	return true
}

// removeRow drops row, shifts every row above it down by one and inserts an
// empty row at the top.
func (g *Grid) removeRow(row int) {
	removed := g.rows[row]
	copy(g.rows[1:row+1], g.rows[:row])
	clear(removed)
	g.rows[0] = removed
}

// ClearFullRows removes every full row and returns how many were removed.
// Rows are scanned from the bottom up; after a removal the same index is
// examined again because the row above has shifted into it.
func (g *Grid) ClearFullRows() int {
	removed := 0
	for row := g.height - 1; row >= 0; {
		if g.RowFull(row) {
			g.removeRow(row)
			removed++
			continue
		}
		row--
	}
	return removed
}

// Rows returns a copy of the occupancy matrix.
func (g *Grid) Rows() [][]bool {
	out := make([][]bool, g.height)
	for row := range g.rows {
		out[row] = append([]bool(nil), g.rows[row]...)
	}
	return out
}
