package ui

import (
	"context"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snakeify/game"
	"snakeify/render"
)

type Options struct {
	Title    string
	GridSize int
	CellSize int
	FPS      int32
}

// Run drives the game from the raylib frame loop until the window closes,
// a quit action arrives or ctx is cancelled.
func Run(ctx context.Context, g *game.Game, opts Options, logger *slog.Logger) error {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if logger == nil {
		logger = slog.Default()
	}

	width, height := WindowSize(opts.GridSize, opts.CellSize)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(width, height, opts.Title)
	rl.SetWindowMinSize(int(width), int(height))
	defer rl.CloseWindow()

	// Esc is handled as an action so the session can be saved first
	rl.SetExitKey(0)
	rl.SetTargetFPS(opts.FPS)

	renderer := NewRenderer(opts.CellSize)
	defer renderer.Close()
	swatches := render.NewSwatches()

	logger.Info("Window opened", "width", width, "height", height)

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}

		now := time.Now()
		for _, a := range PollActions() {
			if a.Kind == game.ActionQuit {
				logger.Info("Quit requested")
				return nil
			}
			if g.Handle(a, now) {
				logger.Debug("Action applied", "action", a, "state", g.State)
			}
		}

		g.Update(now)

		snap := g.Snapshot()
		renderer.Draw(render.Project(snap, opts.CellSize, swatches.Background(snap.Cover)))
	}
	return nil
}
