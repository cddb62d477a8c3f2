package manager

import (
	"snakeify/game/entity"
	"snakeify/game/types"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// Wrap maps a position that left the grid onto the opposite edge. Each axis
// wraps independently.
func (cm *CollisionManager) Wrap(pos types.Point) types.Point {
	if pos.X < 0 {
		pos.X = cm.grid.Width - 1
	}
	if pos.X >= cm.grid.Width {
		pos.X = 0
	}
	if pos.Y < 0 {
		pos.Y = cm.grid.Height - 1
	}
	if pos.Y >= cm.grid.Height {
		pos.Y = 0
	}
	return pos
}

// NextHead computes the wrapped cell the head moves to
func (cm *CollisionManager) NextHead(snake *entity.Snake, direction types.Point) types.Point {
	return cm.Wrap(snake.GetHead().Pos.Add(direction))
}

// IsSelfCollision checks pos against every segment, the tail included
func (cm *CollisionManager) IsSelfCollision(pos types.Point, snake *entity.Snake) bool {
	return snake.Occupies(pos)
}

// ValidateSpawnPosition checks if a position is free for food
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Point, snake *entity.Snake) bool {
	if !cm.grid.Contains(pos) {
		return false
	}
	return snake == nil || !snake.Occupies(pos)
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Point, food *entity.Food) bool {
	return food != nil && pos == food.Pos
}
