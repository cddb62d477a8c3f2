package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"snakeify/game"
	"snakeify/render"
)

// frameInterval paces drawing; ticks still follow the game's own ticker
const frameInterval = 16 * time.Millisecond

// Run drives g from terminal events until a quit key or ctx ends. The screen
// must be initialised by the caller.
func Run(ctx context.Context, screen tcell.Screen, g *game.Game, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	swatches := render.NewSwatches()
	renderer := NewRenderer(screen, swatches)
	draw := func() {
		snap := g.Snapshot()
		renderer.Draw(render.Project(snap, 1, swatches.Background(snap.Cover)))
	}
	draw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a := ActionFor(ev.Key(), ev.Rune())
				if a.Kind == game.ActionQuit {
					logger.Info("Quit requested")
					return nil
				}
				if g.Handle(a, time.Now()) {
					logger.Debug("Action applied", "action", a, "state", g.State)
					draw()
				}
			case *tcell.EventResize:
				screen.Sync()
				draw()
			}

		case now := <-ticker.C:
			if g.Update(now) {
				draw()
			}
		}
	}
}
