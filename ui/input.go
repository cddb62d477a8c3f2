package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"snakeify/game"
	"snakeify/game/types"
)

var keyActions = []struct {
	key    int32
	action game.Action
}{
	{rl.KeyUp, game.Turn(types.Up)},
	{rl.KeyDown, game.Turn(types.Down)},
	{rl.KeyLeft, game.Turn(types.Left)},
	{rl.KeyRight, game.Turn(types.Right)},
	{rl.KeyW, game.Turn(types.Up)},
	{rl.KeyS, game.Turn(types.Down)},
	{rl.KeyA, game.Turn(types.Left)},
	{rl.KeyD, game.Turn(types.Right)},
	{rl.KeyP, game.Action{Kind: game.ActionTogglePause}},
	{rl.KeySpace, game.Action{Kind: game.ActionTogglePause}},
	{rl.KeyEnter, game.Action{Kind: game.ActionStart}},
	{rl.KeyR, game.Action{Kind: game.ActionRestart}},
	{rl.KeyM, game.Action{Kind: game.ActionMenu}},
	{rl.KeyEscape, game.Action{Kind: game.ActionQuit}},
	{rl.KeyQ, game.Action{Kind: game.ActionQuit}},
}

var swipeActions = []struct {
	gesture rl.Gestures
	dir     types.Direction
}{
	{rl.GestureSwipeUp, types.Up},
	{rl.GestureSwipeDown, types.Down},
	{rl.GestureSwipeLeft, types.Left},
	{rl.GestureSwipeRight, types.Right},
}

// PollActions returns the actions triggered since the previous frame, in
// key table order
func PollActions() []game.Action {
	var actions []game.Action
	for _, k := range keyActions {
		if rl.IsKeyPressed(k.key) {
			actions = append(actions, k.action)
		}
	}
	for _, s := range swipeActions {
		if rl.IsGestureDetected(s.gesture) {
			actions = append(actions, game.Turn(s.dir))
		}
	}
	if rl.IsGestureDetected(rl.GestureDoubletap) {
		actions = append(actions, game.Action{Kind: game.ActionStart})
	}
	return actions
}
