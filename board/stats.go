package board

import (
	"github.com/kamstrup/intmap"

	"github.com/plus3/fallgrid/piece"
)

// statsCounter accumulates per-game counters.
type statsCounter struct {
	spawns *intmap.Map[piece.Kind, int]
	clears *intmap.Map[int, int]
	locks  int
	lines  int
}

func newStatsCounter() *statsCounter {
	return &statsCounter{
		spawns: intmap.New[piece.Kind, int](piece.Count),
		clears: intmap.New[int, int](4),
	}
}

func (c *statsCounter) reset() {
	c.spawns.Clear()
	c.clears.Clear()
	c.locks = 0
	c.lines = 0
}

func (c *statsCounter) spawned(kind piece.Kind) {
	n, _ := c.spawns.Get(kind)
	c.spawns.Put(kind, n+1)
}

func (c *statsCounter) locked(lines int) {
	c.locks++
	c.lines += lines
	if lines > 0 {
		n, _ := c.clears.Get(lines)
		c.clears.Put(lines, n+1)
	}
}

// snapshot copies the counters. Clear sizes range over 1..height.
func (c *statsCounter) snapshot(height int) Stats {
	s := Stats{
		spawns: make(map[piece.Kind]int, piece.Count),
		clears: make(map[int]int),
		Locks:  c.locks,
		Lines:  c.lines,
	}
	for _, kind := range piece.Kinds() {
		if n, ok := c.spawns.Get(kind); ok {
			s.spawns[kind] = n
		}
	}
	for lines := 1; lines <= height; lines++ {
		if n, ok := c.clears.Get(lines); ok {
			s.clears[lines] = n
		}
	}
	return s
}

// Stats is a copy of the current game's counters.
type Stats struct {
	spawns map[piece.Kind]int
	clears map[int]int

	// Locks is the number of pieces locked into the grid.
	Locks int
	// Lines is the total number of rows cleared.
	Lines int
}

// Spawned returns how many pieces of kind entered play, including a spawn
// that ended the game.
func (s Stats) Spawned(kind piece.Kind) int {
	return s.spawns[kind]
}

// TotalSpawned returns the number of spawn attempts across all kinds.
func (s Stats) TotalSpawned() int {
	total := 0
	for _, n := range s.spawns {
		total += n
	}
	return total
}

// Clears returns how many locks cleared exactly lines rows at once.
func (s Stats) Clears(lines int) int {
	return s.clears[lines]
}
