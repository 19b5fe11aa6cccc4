package loop

import "github.com/plus3/fallgrid/board"

// Commands buffers board commands queued by systems during a frame. They are
// applied in order when the frame ends.
type Commands struct {
	queued []board.Command
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Push queues a board command.
func (c *Commands) Push(cmd board.Command) {
	c.queued = append(c.queued, cmd)
}

// Defer queues a function to run after all commands have been applied. When
// flushed by a Scheduler it runs under the scheduler lock and must not call
// back into the scheduler.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued board commands.
func (c *Commands) Len() int {
	return len(c.queued)
}

// Flush applies the queued commands to engine, runs the deferred functions and
// resets the buffer. It reports whether any command changed the board.
func (c *Commands) Flush(engine *board.Engine) bool {
	changed := false
	for _, cmd := range c.queued {
		if engine.Apply(cmd).Changed() {
			changed = true
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.queued = c.queued[:0]
	c.defers = c.defers[:0]
	return changed
}
