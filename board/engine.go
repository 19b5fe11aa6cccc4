// Package board implements the falling-block rules: it owns the grid and the
// active piece, validates moves and rotations, locks pieces, clears full rows
// and keeps score.
//
// An Engine is not safe for concurrent use. Hosts serialize ticks and
// commands, for example through loop.Scheduler.
package board

import "github.com/plus3/fallgrid/piece"

// ActivePiece is the falling shape and its top-left anchor in grid space.
type ActivePiece struct {
	Shape piece.Shape
	X, Y  int
}

// Engine is the board state machine.
type Engine struct {
	width    int
	height   int
	grid     *Grid
	active   ActivePiece
	hasPiece bool
	score    int
	lines    int
	state    State
	stats    *statsCounter
	spawner  func() piece.Shape
	listener func(Event)
}

// New creates an idle engine with an empty grid.
func New(opts ...Option) *Engine {
	e := &Engine{
		width:   DefaultWidth,
		height:  DefaultHeight,
		spawner: piece.Random,
		stats:   newStatsCounter(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.grid = NewGrid(e.width, e.height)
	return e
}

// Start clears the grid, resets score and counters and spawns the first
// piece. It may be called from any state.
func (e *Engine) Start() {
	e.grid.Reset()
	e.score = 0
	e.lines = 0
	e.stats.reset()
	e.hasPiece = false
	e.state = Running
	e.spawn()
}

// Stop halts the engine. Grid and score stay readable. Calling Stop on an
// idle engine does nothing.
func (e *Engine) Stop() {
	e.state = Idle
}

// MoveLeft shifts the active piece one column left if the target is free.
func (e *Engine) MoveLeft() Outcome {
	return e.translate(-1, 0)
}

// MoveRight shifts the active piece one column right if the target is free.
func (e *Engine) MoveRight() Outcome {
	return e.translate(1, 0)
}

// MoveDown is both the soft drop and the gravity step. It moves the piece one
// row down, or, if that is blocked, locks it, clears full rows, scores and
// spawns the next piece.
func (e *Engine) MoveDown() Outcome {
	if !e.playing() {
		return Ignored
	}

	if e.Fits(e.active.Shape, e.active.X, e.active.Y+1) {
		e.active.Y++
		return Moved
	}

	kind := e.active.Shape.Kind()
	e.lock()
	lines := e.grid.ClearFullRows()
	points := lines * lines * 100
	e.score += points
	e.lines += lines
	e.stats.locked(lines)
	e.emit(Event{Type: EventLocked, Kind: kind, Lines: lines, Points: points, Score: e.score})

	e.spawn()
	return Locked
}

// Rotate turns the active piece clockwise in place. A rotation that collides
// is refused; there is no wall kick.
func (e *Engine) Rotate() Outcome {
	if !e.playing() {
		return Ignored
	}

	rotated := piece.RotateClockwise(e.active.Shape)
	if !e.Fits(rotated, e.active.X, e.active.Y) {
		return Rejected
	}
	e.active.Shape = rotated
	return Moved
}

// Apply dispatches a command. Unknown commands are ignored.
func (e *Engine) Apply(cmd Command) Outcome {
	switch cmd {
	case Left:
		return e.MoveLeft()
	case Right:
		return e.MoveRight()
	case Rotate:
		return e.Rotate()
	case Down:
		return e.MoveDown()
	}
	return Ignored
}

// Fits reports whether shape anchored at (x, y) lies inside the grid without
// overlapping an occupied cell.
func (e *Engine) Fits(shape piece.Shape, x, y int) bool {
	for row, col := range shape.Cells() {
		gx, gy := x+col, y+row
		if !e.grid.InBounds(gx, gy) || e.grid.Occupied(gx, gy) {
			return false
		}
	}
	return true
}

func (e *Engine) playing() bool {
	return e.state == Running && e.hasPiece
}

func (e *Engine) translate(dx, dy int) Outcome {
	if !e.playing() {
		return Ignored
	}

	x, y := e.active.X+dx, e.active.Y+dy
	if !e.Fits(e.active.Shape, x, y) {
		return Rejected
	}
	e.active.X, e.active.Y = x, y
	return Moved
}

func (e *Engine) lock() {
	for row, col := range e.active.Shape.Cells() {
		e.grid.Set(e.active.X+col, e.active.Y+row, true)
	}
	e.hasPiece = false
}

func (e *Engine) spawn() {
	shape := e.spawner()
	x := e.width/2 - shape.Width()/2
	e.stats.spawned(shape.Kind())

	if !e.Fits(shape, x, 0) {
		e.hasPiece = false
		e.state = GameOver
		e.emit(Event{Type: EventGameOver, Score: e.score})
		return
	}

	e.active = ActivePiece{Shape: shape, X: x, Y: 0}
	e.hasPiece = true
	e.emit(Event{Type: EventSpawned, Kind: shape.Kind(), Score: e.score})
}

func (e *Engine) emit(ev Event) {
	if e.listener != nil {
		e.listener(ev)
	}
}

// Width returns the number of grid columns.
func (e *Engine) Width() int {
	return e.width
}

// Height returns the number of grid rows.
func (e *Engine) Height() int {
	return e.height
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Running reports whether the engine accepts ticks and commands.
func (e *Engine) Running() bool {
	return e.state == Running
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Lines returns the number of rows cleared since Start.
func (e *Engine) Lines() int {
	return e.lines
}

// Active returns the falling piece, if there is one.
func (e *Engine) Active() (ActivePiece, bool) {
	if !e.hasPiece {
		return ActivePiece{}, false
	}
	return e.active, true
}

// Grid returns a copy of the locked cells as [row][col].
func (e *Engine) Grid() [][]bool {
	return e.grid.Rows()
}

// Stats returns a copy of the current game's counters.
func (e *Engine) Stats() Stats {
	return e.stats.snapshot(e.height)
}
