package termui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/plus3/fallgrid/board"
)

// KeyCommand maps a key press to an engine command. Arrows, WASD and vi keys
// move; space drops one row.
func KeyCommand(ev *tcell.EventKey) (board.Command, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return board.Left, true
	case tcell.KeyRight:
		return board.Right, true
	case tcell.KeyUp:
		return board.Rotate, true
	case tcell.KeyDown:
		return board.Down, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'h':
			return board.Left, true
		case 'd', 'l':
			return board.Right, true
		case 'w', 'k':
			return board.Rotate, true
		case 's', 'j', ' ':
			return board.Down, true
		}
	}
	return 0, false
}

// IsQuit reports whether ev asks to leave the game.
func IsQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// IsRestart reports whether ev asks for a new game.
func IsRestart(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'r'
	}
	return false
}
