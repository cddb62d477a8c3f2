package types

import "time"

// Point is a cell coordinate on the grid
type Point struct {
	X, Y int
}

// Add returns p moved by the vector d
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// IsZero reports whether p is the zero vector
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// NewSquareGrid returns a size x size grid
func NewSquareGrid(size int) Grid {
	return Grid{Width: size, Height: size}
}

// Cells returns the number of cells on the grid
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Contains reports whether p lies inside the grid
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Center returns the middle cell
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

// Game constants
const (
	GridSize     = 20                     // Cells per side
	CellSize     = 20                     // Pixels per cell
	TickInterval = 150 * time.Millisecond // Simulation step
	FoodColor    = "#FFDE00"              // Food fill when no artwork is available
)
