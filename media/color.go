package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/lucasb-eyer/go-colorful"
)

// DominantColor decodes artwork and returns its mean colour, averaged in
// linear RGB. Large images are sampled on a coarse lattice.
func DominantColor(data []byte) (colorful.Color, error) {
	img, err := Decode(data)
	if err != nil {
		return colorful.Color{}, err
	}

	b := img.Bounds()
	if b.Empty() {
		return colorful.Color{}, fmt.Errorf("empty artwork")
	}
	step := max(1, max(b.Dx(), b.Dy())/64)

	var r, g, bl float64
	var n int
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			lr, lg, lb := c.LinearRgb()
			r += lr
			g += lg
			bl += lb
			n++
		}
	}
	if n == 0 {
		return colorful.Color{}, fmt.Errorf("artwork is fully transparent")
	}

	return colorful.LinearRgb(r/float64(n), g/float64(n), bl/float64(n)).Clamped(), nil
}

// Decode decodes JPEG or PNG artwork
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode artwork: %w", err)
	}
	return img, nil
}
