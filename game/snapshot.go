package game

import (
	"snakeify/catalog"
	"snakeify/game/entity"
	"snakeify/game/types"
	"snakeify/media"
)

// Snapshot is a copy of what renderers need, taken between ticks
type Snapshot struct {
	UUID      string
	State     types.State
	Paused    bool
	Grid      types.Grid
	Body      []entity.Segment
	Food      *entity.Food
	Direction types.Point
	Score     int
	HighScore int
	Current   *catalog.Track
	Next      *catalog.Track
	Cover     *media.Image
	Verdict   string
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		UUID:      g.UUID,
		State:     g.State,
		Paused:    g.Paused,
		Grid:      g.Grid,
		Direction: g.Direction,
		Score:     g.Score,
		HighScore: g.HighScore(),
		Current:   g.playback.Current(),
		Next:      g.playback.Next(),
		Cover:     g.Cover,
	}
	if g.Snake != nil {
		s.Body = g.Snake.Clone().Body
	}
	if g.Food != nil {
		food := *g.Food
		s.Food = &food
	}
	if g.State == types.StateGameOver {
		s.Verdict = Verdict(g.Score)
	}
	return s
}
