package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"snakeify/game"
	"snakeify/game/types"
)

type CellKind int

const (
	BodyCell CellKind = iota
	FoodCell
)

// Cell is one painted square
type Cell struct {
	Kind   CellKind
	Pos    types.Point
	Rect   Rect
	Visual Visual
	Fill   colorful.Color
}

// Frame is everything a frontend draws for one snapshot, in paint order
type Frame struct {
	Width, Height int
	CellSize      int
	Background    colorful.Color
	Text          colorful.Color

	Cells   []Cell
	HasHead bool
	HeadPos types.Point
	HeadDir types.Direction
	Head    [3]Vec

	State      types.State
	Paused     bool
	Score      int
	HighScore  int
	NowPlaying string
	UpNext     string
	Verdict    string
}

// Project maps a snapshot onto pixel space. Body segments are listed tail
// first so the head is painted last, followed by the food.
func Project(s game.Snapshot, cellSize int, bg colorful.Color) Frame {
	f := Frame{
		Width:      s.Grid.Width * cellSize,
		Height:     s.Grid.Height * cellSize,
		CellSize:   cellSize,
		Background: bg,
		Text:       TextOn(bg),
		State:      s.State,
		Paused:     s.Paused,
		Score:      s.Score,
		HighScore:  s.HighScore,
		Verdict:    s.Verdict,
	}
	if s.Current != nil {
		f.NowPlaying = s.Current.String()
	}
	if s.Next != nil {
		f.UpNext = s.Next.String()
	}

	for i := len(s.Body) - 1; i >= 1; i-- {
		seg := s.Body[i]
		f.Cells = append(f.Cells, Cell{
			Kind:   BodyCell,
			Pos:    seg.Pos,
			Rect:   CellRect(seg.Pos, cellSize),
			Visual: Resolve(seg.Image),
			Fill:   PlainFill,
		})
	}

	if len(s.Body) > 0 {
		f.HasHead = true
		f.HeadPos = s.Body[0].Pos
		f.HeadDir = types.DirectionOf(s.Direction)
		if f.HeadDir == types.None {
			f.HeadDir = types.Right
		}
		f.Head = HeadTriangle(CellRect(f.HeadPos, cellSize), f.HeadDir)
	}

	if s.Food != nil {
		f.Cells = append(f.Cells, Cell{
			Kind:   FoodCell,
			Pos:    s.Food.Pos,
			Rect:   CellRect(s.Food.Pos, cellSize),
			Visual: Resolve(s.Food.Image),
			Fill:   FoodFill,
		})
	}
	return f
}
