package manager

import (
	"errors"

	"golang.org/x/exp/rand"

	"snakeify/catalog"
	"snakeify/game/entity"
	"snakeify/game/types"
	"snakeify/media"
)

// ErrGridFull is returned when every cell is covered by the snake
var ErrGridFull = errors.New("no free cell for food")

// spawnAttemptsPerCell bounds the random draws before falling back to a scan
const spawnAttemptsPerCell = 4

// ImageLoader starts an artwork load and returns its handle
type ImageLoader interface {
	LoadImage(url string) *media.Image
}

type FoodManager struct {
	grid         types.Grid
	rng          *rand.Rand
	images       ImageLoader
	collisionMgr *CollisionManager
}

func NewFoodManager(grid types.Grid, rng *rand.Rand, images ImageLoader, collisionMgr *CollisionManager) *FoodManager {
	return &FoodManager{
		grid:         grid,
		rng:          rng,
		images:       images,
		collisionMgr: collisionMgr,
	}
}

// Spawn places food on a uniformly chosen free cell bound to track, and starts
// loading the track's last artwork entry.
func (fm *FoodManager) Spawn(snake *entity.Snake, track *catalog.Track) (*entity.Food, error) {
	pos, err := fm.GenerateFood(snake)
	if err != nil {
		return nil, err
	}

	food := &entity.Food{Pos: pos, Track: track}
	if fm.images != nil && track != nil {
		food.Image = fm.images.LoadImage(track.Thumbnail())
	}
	return food, nil
}

// GenerateFood draws random cells until one is free. After a bounded number of
// misses it scans for free cells and picks one of them uniformly.
func (fm *FoodManager) GenerateFood(snake *entity.Snake) (types.Point, error) {
	cells := fm.grid.Cells()
	if cells == 0 {
		return types.Point{}, ErrGridFull
	}

	for i := 0; i < cells*spawnAttemptsPerCell; i++ {
		food := types.Point{
			X: fm.rng.Intn(fm.grid.Width),
			Y: fm.rng.Intn(fm.grid.Height),
		}
		if fm.collisionMgr.ValidateSpawnPosition(food, snake) {
			return food, nil
		}
	}

	free := make([]types.Point, 0, cells)
	for y := 0; y < fm.grid.Height; y++ {
		for x := 0; x < fm.grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if fm.collisionMgr.ValidateSpawnPosition(p, snake) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return types.Point{}, ErrGridFull
	}
	return free[fm.rng.Intn(len(free))], nil
}
