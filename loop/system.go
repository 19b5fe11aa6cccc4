package loop

import "github.com/plus3/fallgrid/board"

// System is a behavior that runs once per frame. Systems inspect the board
// through the frame and queue commands instead of mutating it directly.
type System interface {
	Execute(frame *Frame)
}

// GravitySystem queues a downward step on every frame while the board is
// running. It is the automatic drop.
type GravitySystem struct{}

func (GravitySystem) Execute(frame *Frame) {
	if frame.Board.Running() {
		frame.Commands.Push(board.Down)
	}
}
