package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"snakeify/game/types"
	"snakeify/render"
)

const (
	borderPadding = 20 // around the board
	hudHeight     = 70 // above the board
	fontSize      = 20
	smallFont     = 14
)

type Renderer struct {
	cellSize     int32
	screenWidth  int32
	screenHeight int32
	offsetX      int32
	offsetY      int32
	textures     *textureCache
}

func NewRenderer(cellSize int) *Renderer {
	r := &Renderer{
		cellSize: int32(cellSize),
		textures: newTextureCache(),
	}
	r.UpdateDimensions()
	return r
}

// WindowSize returns the window that fits a grid of the given size
func WindowSize(gridSize, cellSize int) (int32, int32) {
	board := int32(gridSize * cellSize)
	return board + 2*borderPadding, board + hudHeight + 2*borderPadding
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())
}

// Draw paints one frame. It must run on the thread that owns the window.
func (r *Renderer) Draw(f render.Frame) {
	r.UpdateDimensions()

	// Center the board below the HUD
	r.offsetX = (r.screenWidth - int32(f.Width)) / 2
	r.offsetY = hudHeight + (r.screenHeight-hudHeight-int32(f.Height))/2

	rl.BeginDrawing()
	rl.ClearBackground(toRL(f.Background))

	r.drawBoard(f)
	for _, c := range f.Cells {
		r.drawCell(c)
	}
	if f.HasHead {
		rl.DrawTriangle(r.vec(f.Head[0]), r.vec(f.Head[1]), r.vec(f.Head[2]), toRL(render.HeadColor))
	}
	r.drawHUD(f)

	switch {
	case f.State == types.StateMenu:
		r.drawOverlay("SNAKEIFY", "PRESS ENTER TO START", "ARROWS OR SWIPES TO STEER")
	case f.State == types.StateGameOver:
		r.drawOverlay("GAME OVER", fmt.Sprintf("\"%s\"", f.Verdict), fmt.Sprintf("FINAL SCORE %d", f.Score), "ENTER OR R PLAY AGAIN   M MENU")
	case f.Paused:
		r.drawOverlay("PAUSED", "P TO RESUME")
	}

	rl.EndDrawing()
	r.textures.sweep()
}

func (r *Renderer) drawBoard(f render.Frame) {
	rl.DrawRectangle(r.offsetX, r.offsetY, int32(f.Width), int32(f.Height), rl.Fade(rl.White, 0.5))

	// Subtle grid
	line := rl.Fade(toRL(render.GridLine), 0.1)
	for i := int32(0); i <= int32(f.Width)/r.cellSize; i++ {
		x := r.offsetX + i*r.cellSize
		rl.DrawLine(x, r.offsetY, x, r.offsetY+int32(f.Height), line)
	}
	for i := int32(0); i <= int32(f.Height)/r.cellSize; i++ {
		y := r.offsetY + i*r.cellSize
		rl.DrawLine(r.offsetX, y, r.offsetX+int32(f.Width), y, line)
	}

	rl.DrawRectangleLinesEx(rl.Rectangle{
		X:      float32(r.offsetX - 4),
		Y:      float32(r.offsetY - 4),
		Width:  float32(f.Width + 8),
		Height: float32(f.Height + 8),
	}, 4, toRL(render.BorderColor))
}

func (r *Renderer) drawCell(c render.Cell) {
	dst := r.rect(c.Rect)

	if c.Visual.IsArtwork() {
		if tex, ok := r.textures.get(c.Visual.Image); ok {
			src := rl.Rectangle{Width: float32(tex.Width), Height: float32(tex.Height)}
			rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, rl.White)
			rl.DrawRectangleLinesEx(dst, render.BorderWidth, toRL(render.BorderColor))
			return
		}
	}

	rl.DrawRectangleRec(dst, toRL(c.Fill))
	rl.DrawRectangleLinesEx(dst, render.BorderWidth, toRL(render.BorderColor))
}

func (r *Renderer) drawHUD(f render.Frame) {
	text := toRL(f.Text)
	x := int32(borderPadding)

	rl.DrawText(fmt.Sprintf("SCORE %d", f.Score), x, 12, fontSize, text)
	best := fmt.Sprintf("BEST %d", f.HighScore)
	rl.DrawText(best, r.screenWidth-borderPadding-rl.MeasureText(best, fontSize), 12, fontSize, text)

	if f.NowPlaying != "" {
		rl.DrawText(r.fit("NOW PLAYING  "+f.NowPlaying, smallFont), x, 38, smallFont, text)
	}
	if f.UpNext != "" && f.State == types.StatePlaying {
		rl.DrawText(r.fit("UP NEXT  "+f.UpNext, smallFont), x, 54, smallFont, rl.Fade(text, 0.7))
	}
}

func (r *Renderer) drawOverlay(title string, lines ...string) {
	rl.DrawRectangle(0, 0, r.screenWidth, r.screenHeight, rl.Fade(rl.Black, 0.4))

	boxW := r.screenWidth - 2*borderPadding - 20
	boxH := int32(80 + len(lines)*30)
	boxX := (r.screenWidth - boxW) / 2
	boxY := (r.screenHeight - boxH) / 2

	rl.DrawRectangle(boxX+6, boxY+6, boxW, boxH, rl.Black)
	rl.DrawRectangle(boxX, boxY, boxW, boxH, toRL(render.FoodFill))
	rl.DrawRectangleLinesEx(rl.Rectangle{X: float32(boxX), Y: float32(boxY), Width: float32(boxW), Height: float32(boxH)}, 4, rl.Black)

	titleSize := int32(36)
	rl.DrawText(title, boxX+(boxW-rl.MeasureText(title, titleSize))/2, boxY+20, titleSize, rl.Black)
	for i, line := range lines {
		line = r.fit(line, smallFont+2)
		y := boxY + 70 + int32(i)*30
		rl.DrawText(line, boxX+(boxW-rl.MeasureText(line, smallFont+2))/2, y, smallFont+2, rl.Black)
	}
}

// fit truncates s to the window width
func (r *Renderer) fit(s string, size int32) string {
	limit := r.screenWidth - 2*borderPadding
	if rl.MeasureText(s, size) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && rl.MeasureText(string(runes)+"...", size) > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func (r *Renderer) rect(c render.Rect) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(r.offsetX + int32(c.X)),
		Y:      float32(r.offsetY + int32(c.Y)),
		Width:  float32(c.W),
		Height: float32(c.H),
	}
}

func (r *Renderer) vec(v render.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(r.offsetX) + v.X, Y: float32(r.offsetY) + v.Y}
}

// Close releases every texture
func (r *Renderer) Close() {
	r.textures.clear()
}

func toRL(c colorful.Color) rl.Color {
	red, green, blue := render.RGB8(c)
	return rl.NewColor(red, green, blue, 255)
}
