package tui

import (
	"github.com/gdamore/tcell/v2"

	"snakeify/game"
	"snakeify/game/types"
)

// ActionFor decodes a key press
func ActionFor(key tcell.Key, ch rune) game.Action {
	switch key {
	case tcell.KeyUp:
		return game.Turn(types.Up)
	case tcell.KeyDown:
		return game.Turn(types.Down)
	case tcell.KeyLeft:
		return game.Turn(types.Left)
	case tcell.KeyRight:
		return game.Turn(types.Right)
	case tcell.KeyEnter:
		return game.Action{Kind: game.ActionStart}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.Action{Kind: game.ActionQuit}
	case tcell.KeyRune:
		return runeAction(ch)
	}
	return game.Action{}
}

func runeAction(ch rune) game.Action {
	switch ch {
	case 'p', 'P', ' ':
		return game.Action{Kind: game.ActionTogglePause}
	case 'm', 'M':
		return game.Action{Kind: game.ActionMenu}
	case 'r', 'R':
		return game.Action{Kind: game.ActionRestart}
	case 'q', 'Q':
		return game.Action{Kind: game.ActionQuit}
	case 'w', 'k':
		return game.Turn(types.Up)
	case 's', 'j':
		return game.Turn(types.Down)
	case 'a', 'h':
		return game.Turn(types.Left)
	case 'd', 'l':
		return game.Turn(types.Right)
	}
	return game.Action{}
}
