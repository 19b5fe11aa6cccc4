package board

import "github.com/plus3/fallgrid/piece"

// Cell is what a renderer should draw at a grid position.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellLocked
	CellFalling
)

// Snapshot is an immutable copy of everything a host needs to draw a frame.
type Snapshot struct {
	Width  int
	Height int
	Cells  [][]bool // locked cells, [row][col]
	Piece  ActivePiece
	// HasPiece is false before the first spawn and after game over.
	HasPiece bool
	Score    int
	Lines    int
	State    State
}

// Snapshot captures the current frame.
func (e *Engine) Snapshot() Snapshot {
	active, ok := e.Active()
	return Snapshot{
		Width:    e.width,
		Height:   e.height,
		Cells:    e.grid.Rows(),
		Piece:    active,
		HasPiece: ok,
		Score:    e.score,
		Lines:    e.lines,
		State:    e.state,
	}
}

// At classifies the cell at (col, row). The falling piece takes precedence
// over locked cells.
func (s Snapshot) At(col, row int) Cell {
	if s.HasPiece && s.Piece.Shape.Filled(row-s.Piece.Y, col-s.Piece.X) {
		return CellFalling
	}
	if row >= 0 && row < len(s.Cells) && col >= 0 && col < len(s.Cells[row]) && s.Cells[row][col] {
		return CellLocked
	}
	return CellEmpty
}

// PieceKind returns the kind of the falling piece, if any.
func (s Snapshot) PieceKind() (piece.Kind, bool) {
	if !s.HasPiece {
		return 0, false
	}
	return s.Piece.Shape.Kind(), true
}

// DropRow returns the row the falling piece would lock at if it kept moving
// down from where it is now.
func (s Snapshot) DropRow() (int, bool) {
	if !s.HasPiece {
		return 0, false
	}
	y := s.Piece.Y
	for s.fits(s.Piece.Shape, s.Piece.X, y+1) {
		y++
	}
	return y, true
}

func (s Snapshot) fits(shape piece.Shape, x, y int) bool {
	for row, col := range shape.Cells() {
		gx, gy := x+col, y+row
		if gx < 0 || gx >= s.Width || gy < 0 || gy >= s.Height || s.Cells[gy][gx] {
			return false
		}
	}
	return true
}
