package board

import "github.com/plus3/fallgrid/piece"

const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Option configures an Engine.
type Option func(*Engine)

// WithSize sets the grid dimensions. It panics on non-positive values.
func WithSize(width, height int) Option {
	if width <= 0 || height <= 0 {
		panic("board size must be positive")
	}
	return func(e *Engine) {
		e.width = width
		e.height = height
	}
}

// WithSource draws spawned pieces from src instead of the process-wide source.
func WithSource(src piece.Source) Option {
	return func(e *Engine) {
		e.spawner = func() piece.Shape {
			return piece.RandomFrom(src)
		}
	}
}

// WithSpawner replaces the random selection policy entirely. Scripted
// scenarios use it to force a known piece sequence.
func WithSpawner(next func() piece.Shape) Option {
	return func(e *Engine) {
		e.spawner = next
	}
}

// WithListener registers a callback for engine events.
func WithListener(fn func(Event)) Option {
	return func(e *Engine) {
		e.listener = fn
	}
}
