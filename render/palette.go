package render

import (
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"snakeify/media"
)

var (
	DefaultBackground = mustHex("#FFF4E0")
	HeadColor         = mustHex("#000000")
	BorderColor       = mustHex("#000000")
	PlainFill         = mustHex("#FFFFFF")
	FoodFill          = mustHex("#FFDE00")
	GridLine          = colorful.Color{R: 0, G: 0, B: 0}
)

// BorderWidth is the outline drawn around body and food cells
const BorderWidth = 2

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// TextOn returns black or white, whichever reads better on bg
func TextOn(bg colorful.Color) colorful.Color {
	_, l, _ := bg.Xyz()
	if l > 0.4 {
		return HeadColor
	}
	return PlainFill
}

// RGB8 converts to 8-bit channels
func RGB8(c colorful.Color) (r, g, b uint8) {
	return c.Clamped().RGB255()
}

// Swatches resolves the dominant colour of artwork, once per image
type Swatches struct {
	mu     sync.Mutex
	colors map[string]colorful.Color
	failed map[string]bool
}

func NewSwatches() *Swatches {
	return &Swatches{
		colors: make(map[string]colorful.Color),
		failed: make(map[string]bool),
	}
}

// For returns the colour of img, or fallback while the image is loading or
// when it cannot be decoded
func (s *Swatches) For(img *media.Image, fallback colorful.Color) colorful.Color {
	if !Resolve(img).IsArtwork() {
		return fallback
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	url := img.URL()
	if c, ok := s.colors[url]; ok {
		return c
	}
	if s.failed[url] {
		return fallback
	}
	data, _ := img.Bytes()
	c, err := media.DominantColor(data)
	if err != nil {
		s.failed[url] = true
		return fallback
	}
	s.colors[url] = c
	return c
}

// Background is the backdrop for the current cover
func (s *Swatches) Background(cover *media.Image) colorful.Color {
	return s.For(cover, DefaultBackground)
}
