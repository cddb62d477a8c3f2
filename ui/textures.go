package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"snakeify/media"
)

type texture struct {
	tex  rl.Texture2D
	ok   bool
	used bool
}

// textureCache uploads artwork once per image handle. Handles not drawn
// during a frame are unloaded by sweep.
type textureCache struct {
	entries map[*media.Image]*texture
}

func newTextureCache() *textureCache {
	return &textureCache{entries: make(map[*media.Image]*texture)}
}

func (c *textureCache) get(img *media.Image) (rl.Texture2D, bool) {
	if e, ok := c.entries[img]; ok {
		e.used = true
		return e.tex, e.ok
	}

	e := &texture{used: true}
	c.entries[img] = e

	data, ok := img.Bytes()
	if !ok {
		return e.tex, false
	}
	decoded, err := media.Decode(data)
	if err != nil {
		return e.tex, false
	}

	image := rl.NewImageFromImage(decoded)
	e.tex = rl.LoadTextureFromImage(image)
	rl.UnloadImage(image)
	e.ok = e.tex.ID != 0
	return e.tex, e.ok
}

// sweep drops textures not used since the last sweep
func (c *textureCache) sweep() {
	for img, e := range c.entries {
		if !e.used {
			if e.ok {
				rl.UnloadTexture(e.tex)
			}
			delete(c.entries, img)
			continue
		}
		e.used = false
	}
}

func (c *textureCache) clear() {
	for img, e := range c.entries {
		if e.ok {
			rl.UnloadTexture(e.tex)
		}
		delete(c.entries, img)
	}
}
