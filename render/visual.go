package render

import "snakeify/media"

// VisualKind says how a cell is painted
type VisualKind int

const (
	Plain VisualKind = iota
	Artwork
)

// Visual is resolved once per frame from a segment's image handle
type Visual struct {
	Kind  VisualKind
	Image *media.Image
}

// Resolve picks Artwork only for an image whose bytes have arrived
func Resolve(img *media.Image) Visual {
	if img == nil || !img.Loaded() || img.Err() != nil {
		return Visual{Kind: Plain}
	}
	if _, ok := img.Bytes(); !ok {
		return Visual{Kind: Plain}
	}
	return Visual{Kind: Artwork, Image: img}
}

func (v Visual) IsArtwork() bool {
	return v.Kind == Artwork
}
