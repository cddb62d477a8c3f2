package entity

import (
	"snakeify/catalog"
	"snakeify/game/types"
	"snakeify/media"
)

// Food announces the upcoming track
type Food struct {
	Pos   types.Point
	Track *catalog.Track
	Image *media.Image
}
