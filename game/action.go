package game

import "snakeify/game/types"

// ActionKind is a frontend-independent input
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionTurn
	ActionTogglePause
	ActionStart
	ActionRestart
	ActionMenu
	ActionQuit
)

// Action is what keyboards and gestures are decoded into
type Action struct {
	Kind ActionKind
	Dir  types.Direction
}

func Turn(d types.Direction) Action {
	return Action{Kind: ActionTurn, Dir: d}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionTurn:
		return "turn " + a.Dir.String()
	case ActionTogglePause:
		return "pause"
	case ActionStart:
		return "start"
	case ActionRestart:
		return "restart"
	case ActionMenu:
		return "menu"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}
