package board

// Command is one of the four discrete player actions.
type Command uint8

const (
	Left Command = iota + 1
	Right
	Rotate
	Down
)

func (c Command) String() string {
	switch c {
	case Left:
		return "left"
	case Right:
		return "right"
	case Rotate:
		return "rotate"
	case Down:
		return "down"
	}
	return "unknown"
}

// Outcome describes what a command did to the engine. Rejections are
// outcomes, not errors.
type Outcome uint8

const (
	// Ignored means the engine was not running.
	Ignored Outcome = iota
	// Rejected means the move or rotation would collide; nothing changed.
	Rejected
	// Moved means the active piece changed position or orientation.
	Moved
	// Locked means the piece could not fall further and was locked into the
	// grid. Line clearing, scoring and the next spawn have already happened.
	Locked
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Rejected:
		return "rejected"
	case Moved:
		return "moved"
	case Locked:
		return "locked"
	}
	return "unknown"
}

// Changed reports whether the outcome needs a redraw.
func (o Outcome) Changed() bool {
	return o == Moved || o == Locked
}
