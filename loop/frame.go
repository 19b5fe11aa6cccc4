package loop

import "github.com/plus3/fallgrid/board"

// Frame is passed to every system during one scheduler step.
type Frame struct {
	DeltaTime float64
	Commands  *Commands
	// Board is read-only for systems; mutations go through Commands.
	Board *board.Engine
}

func newFrame(dt float64, engine *board.Engine) *Frame {
	return &Frame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Board:     engine,
	}
}
