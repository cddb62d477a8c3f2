package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"snakeify/game/types"
	"snakeify/render"
)

const (
	cellWidth = 2 // terminal columns per grid cell
	boardTop  = 4
	boardLeft = 1
)

var headGlyphs = map[types.Direction]rune{
	types.Up:    '▲',
	types.Down:  '▼',
	types.Left:  '◀',
	types.Right: '▶',
}

// Renderer draws frames onto a tcell screen. Artwork cannot be shown in a
// terminal, so artwork cells are painted in the image's dominant colour.
type Renderer struct {
	screen   tcell.Screen
	swatches *render.Swatches
}

func NewRenderer(screen tcell.Screen, swatches *render.Swatches) *Renderer {
	if swatches == nil {
		swatches = render.NewSwatches()
	}
	return &Renderer{screen: screen, swatches: swatches}
}

// Draw paints f. Frames are projected with a cell size of one so rects are
// grid coordinates.
func (r *Renderer) Draw(f render.Frame) {
	r.screen.Clear()

	bg := style(f.Text, f.Background)
	cols := f.Width * cellWidth
	r.fill(boardLeft, boardTop, cols, f.Height, bg)
	r.box(boardLeft-1, boardTop-1, cols+2, f.Height+2, tcell.StyleDefault)

	for _, c := range f.Cells {
		r.drawCell(c)
	}
	if f.HasHead {
		glyph := headGlyphs[f.HeadDir]
		r.put(f.HeadPos, glyph, ' ', style(render.HeadColor, f.Background))
	}

	r.drawHUD(f, cols)
	switch {
	case f.State == types.StateMenu:
		r.overlay(f, cols, "SNAKEIFY", "ENTER TO START", "ARROWS TO STEER  Q TO QUIT")
	case f.State == types.StateGameOver:
		r.overlay(f, cols, "GAME OVER", f.Verdict, fmt.Sprintf("FINAL SCORE %d", f.Score), "R AGAIN  M MENU")
	case f.Paused:
		r.overlay(f, cols, "PAUSED", "P TO RESUME")
	}

	r.screen.Show()
}

func (r *Renderer) drawCell(c render.Cell) {
	fill := c.Fill
	if c.Visual.IsArtwork() {
		fill = r.swatches.For(c.Visual.Image, c.Fill)
	}
	st := style(render.TextOn(fill), fill)

	switch {
	case c.Kind == render.FoodCell:
		r.put(c.Pos, '(', ')', st)
	case c.Visual.IsArtwork():
		r.put(c.Pos, '▐', '▌', st)
	default:
		r.put(c.Pos, '[', ']', st)
	}
}

func (r *Renderer) drawHUD(f render.Frame, cols int) {
	text := tcell.StyleDefault.Bold(true)
	r.text(boardLeft, 0, fmt.Sprintf("SCORE %d", f.Score), text)
	best := fmt.Sprintf("BEST %d", f.HighScore)
	r.text(boardLeft+cols-len(best), 0, best, text)

	if f.NowPlaying != "" {
		r.text(boardLeft, 1, clip("♪ "+f.NowPlaying, cols), tcell.StyleDefault)
	}
	if f.UpNext != "" && f.State == types.StatePlaying {
		r.text(boardLeft, 2, clip("next "+f.UpNext, cols), tcell.StyleDefault.Dim(true))
	}
}

func (r *Renderer) overlay(f render.Frame, cols int, lines ...string) {
	st := style(render.HeadColor, render.FoodFill)
	top := boardTop + (f.Height-len(lines))/2
	for i, line := range lines {
		line = " " + clip(line, cols-2) + " "
		x := boardLeft + (cols-len([]rune(line)))/2
		r.text(x, top+i, line, st)
	}
}

func (r *Renderer) put(p types.Point, left, right rune, st tcell.Style) {
	x := boardLeft + p.X*cellWidth
	y := boardTop + p.Y
	r.screen.SetContent(x, y, left, nil, st)
	r.screen.SetContent(x+1, y, right, nil, st)
}

func (r *Renderer) fill(x, y, w, h int, st tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			r.screen.SetContent(col, row, ' ', nil, st)
		}
	}
}

func (r *Renderer) box(x, y, w, h int, st tcell.Style) {
	for col := x + 1; col < x+w-1; col++ {
		r.screen.SetContent(col, y, '─', nil, st)
		r.screen.SetContent(col, y+h-1, '─', nil, st)
	}
	for row := y + 1; row < y+h-1; row++ {
		r.screen.SetContent(x, row, '│', nil, st)
		r.screen.SetContent(x+w-1, row, '│', nil, st)
	}
	r.screen.SetContent(x, y, '┌', nil, st)
	r.screen.SetContent(x+w-1, y, '┐', nil, st)
	r.screen.SetContent(x, y+h-1, '└', nil, st)
	r.screen.SetContent(x+w-1, y+h-1, '┘', nil, st)
}

func (r *Renderer) text(x, y int, s string, st tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, st)
		x++
	}
}

func clip(s string, n int) string {
	runes := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// color converts to a terminal true colour
func color(c colorful.Color) tcell.Color {
	r, g, b := render.RGB8(c)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func style(fg, bg colorful.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(color(fg)).Background(color(bg))
}
