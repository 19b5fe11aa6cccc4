package board

// State is the engine's lifecycle state.
type State uint8

const (
	Idle State = iota
	Running
	GameOver
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case GameOver:
		return "game over"
	}
	return "unknown"
}
