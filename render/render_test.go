package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snakeify/catalog"
	"snakeify/game"
	"snakeify/game/entity"
	"snakeify/game/types"
	"snakeify/media"
)

func solidPNG(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestResolve(t *testing.T) {
	assert.Equal(t, Plain, Resolve(nil).Kind)
	assert.Equal(t, Plain, Resolve(media.FailedImage("u", errors.New("404"))).Kind)

	img := media.NewImage("u", []byte("x"))
	v := Resolve(img)
	assert.Equal(t, Artwork, v.Kind)
	assert.Same(t, img, v.Image)
}

func TestHeadTriangleIsCounterClockwise(t *testing.T) {
	r := CellRect(types.Point{X: 2, Y: 3}, 20)
	for _, d := range []types.Direction{types.Up, types.Right, types.Down, types.Left} {
		t.Run(d.String(), func(t *testing.T) {
			tri := HeadTriangle(r, d)
			assert.Less(t, cross(tri), float32(0))
			for _, v := range tri {
				assert.GreaterOrEqual(t, v.X, float32(40))
				assert.LessOrEqual(t, v.X, float32(60))
				assert.GreaterOrEqual(t, v.Y, float32(60))
				assert.LessOrEqual(t, v.Y, float32(80))
			}
		})
	}
}

func TestHeadTrianglePointsAlongDirection(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 20, H: 20}
	tip := func(tri [3]Vec, want Vec) bool {
		for _, v := range tri {
			if v == want {
				return true
			}
		}
		return false
	}
	assert.True(t, tip(HeadTriangle(r, types.Right), Vec{20, 10}))
	assert.True(t, tip(HeadTriangle(r, types.Left), Vec{0, 10}))
	assert.True(t, tip(HeadTriangle(r, types.Up), Vec{10, 0}))
	assert.True(t, tip(HeadTriangle(r, types.Down), Vec{10, 20}))
}

func TestProject(t *testing.T) {
	art := media.NewImage("https://img/a/64", []byte("x"))
	pending := &media.Image{}
	snap := game.Snapshot{
		State: types.StatePlaying,
		Grid:  types.NewSquareGrid(20),
		Body: []entity.Segment{
			{Pos: types.Point{X: 5, Y: 5}, Image: art},
			{Pos: types.Point{X: 4, Y: 5}, Image: art},
			{Pos: types.Point{X: 3, Y: 5}},
		},
		Food:      &entity.Food{Pos: types.Point{X: 9, Y: 9}, Image: pending},
		Direction: types.Up.ToPoint(),
		Score:     2,
		Current:   &catalog.Track{Name: "Song", Artists: []catalog.Artist{{Name: "Band"}}},
	}

	f := Project(snap, 20, DefaultBackground)
	assert.Equal(t, 400, f.Width)
	assert.Equal(t, 400, f.Height)
	assert.Equal(t, "Band - Song", f.NowPlaying)
	assert.Equal(t, 2, f.Score)

	require.True(t, f.HasHead)
	assert.Equal(t, types.Up, f.HeadDir)
	assert.Equal(t, HeadTriangle(CellRect(types.Point{X: 5, Y: 5}, 20), types.Up), f.Head)

	require.Len(t, f.Cells, 3)
	assert.Equal(t, types.Point{X: 3, Y: 5}, f.Cells[0].Pos, "tail is painted first")
	assert.Equal(t, Plain, f.Cells[0].Visual.Kind)
	assert.Equal(t, Artwork, f.Cells[1].Visual.Kind)

	food := f.Cells[2]
	assert.Equal(t, FoodCell, food.Kind)
	assert.Equal(t, Plain, food.Visual.Kind)
	assert.Equal(t, FoodFill, food.Fill)
	assert.Equal(t, Rect{X: 180, Y: 180, W: 20, H: 20}, food.Rect)
}

func TestProjectMenu(t *testing.T) {
	f := Project(game.Snapshot{Grid: types.NewSquareGrid(10)}, 10, DefaultBackground)
	assert.False(t, f.HasHead)
	assert.Empty(t, f.Cells)
	assert.Equal(t, types.StateMenu, f.State)
}

func TestFoodFillHex(t *testing.T) {
	assert.Equal(t, "#ffde00", FoodFill.Hex())
}

func TestSwatches(t *testing.T) {
	sw := NewSwatches()
	assert.Equal(t, DefaultBackground, sw.Background(nil))

	cover := media.NewImage("https://img/cover", solidPNG(t, color.RGBA{R: 200, G: 20, B: 20, A: 255}))
	c := sw.Background(cover)
	r, g, b := RGB8(c)
	assert.InDelta(t, 200, int(r), 2)
	assert.InDelta(t, 20, int(g), 2)
	assert.InDelta(t, 20, int(b), 2)
	assert.Equal(t, PlainFill, TextOn(c))
	assert.Equal(t, c, sw.For(cover, FoodFill), "cached per url")

	broken := media.NewImage("https://img/broken", []byte("not an image"))
	assert.Equal(t, DefaultBackground, sw.Background(broken))
	assert.Equal(t, FoodFill, sw.For(broken, FoodFill))
	assert.Equal(t, HeadColor, TextOn(DefaultBackground))
}
