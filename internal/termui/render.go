// Package termui runs fallgrid in a terminal using tcell.
package termui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/fallgrid/board"
)

const (
	runeEmpty   = '.'
	runeLocked  = '#'
	runeFalling = '@'
)

// Render draws snap as text: the bordered grid followed by the score panel.
func Render(snap board.Snapshot, highScore int) []string {
	border := "+" + strings.Repeat("-", snap.Width) + "+"

	lines := make([]string, 0, snap.Height+6)
	lines = append(lines, border)

	var row strings.Builder
	for y := range snap.Height {
		row.Reset()
		row.WriteByte('|')
		for x := range snap.Width {
			switch snap.At(x, y) {
			case board.CellFalling:
				row.WriteRune(runeFalling)
			case board.CellLocked:
				row.WriteRune(runeLocked)
			default:
				row.WriteRune(runeEmpty)
			}
		}
		row.WriteByte('|')
		lines = append(lines, row.String())
	}

	lines = append(lines,
		border,
		fmt.Sprintf("score %d", snap.Score),
		fmt.Sprintf("high  %d", max(highScore, snap.Score)),
		fmt.Sprintf("lines %d", snap.Lines),
		status(snap.State),
	)
	return lines
}

func status(state board.State) string {
	switch state {
	case board.Running:
		return "running"
	case board.GameOver:
		return "game over (r: restart, q: quit)"
	}
	return "idle (r: start, q: quit)"
}

// Draw paints lines onto screen from the top-left corner and shows it.
func Draw(screen tcell.Screen, lines []string) {
	screen.Clear()
	for y, line := range lines {
		x := 0
		for _, r := range line {
			screen.SetContent(x, y, r, nil, styleFor(r))
			x++
		}
	}
	screen.Show()
}

func styleFor(r rune) tcell.Style {
	switch r {
	case runeLocked:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	case runeFalling:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case runeEmpty:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
	return tcell.StyleDefault
}
