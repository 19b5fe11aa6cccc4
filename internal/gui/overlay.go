package gui

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/plus3/fallgrid/board"
	"github.com/plus3/fallgrid/loop"
	"github.com/plus3/fallgrid/piece"
)

// overlay is the F3 performance panel: frame rate, scheduler timings and the
// current game's piece counters.
type overlay struct {
	visible bool
	text    string
	frames  int
}

// refreshEvery is in ebiten ticks.
const refreshEvery = 30

func (o *overlay) update(driver *loop.Driver) {
	if !o.visible {
		return
	}
	o.frames++
	if o.text != "" && o.frames%refreshEvery != 0 {
		return
	}

	var stats board.Stats
	driver.Scheduler().View(func(e *board.Engine) { stats = e.Stats() })
	o.text = formatOverlay(ebiten.ActualFPS(), driver.Scheduler().GetStats(), stats)
}

func (o *overlay) draw(screen *ebiten.Image, x, y int) {
	if o.visible {
		ebitenutil.DebugPrintAt(screen, o.text, x, y)
	}
}

func formatOverlay(fps float64, sched *loop.SchedulerStats, stats board.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS %.0f\n", fps)
	fmt.Fprintf(&b, "ticks %d  cmds %d\n", sched.Frames, sched.Commands)
	for _, sys := range sched.Systems {
		fmt.Fprintf(&b, "%s avg %s\n", sys.Name, sys.AvgDuration)
	}
	fmt.Fprintf(&b, "locks %d\n", stats.Locks)
	for _, kind := range piece.Kinds() {
		fmt.Fprintf(&b, "%s:%d ", kind, stats.Spawned(kind))
	}
	return b.String()
}
