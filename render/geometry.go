package render

import "snakeify/game/types"

type Vec struct {
	X, Y float32
}

type Rect struct {
	X, Y, W, H int
}

// CellRect is the pixel rectangle of a grid cell
func CellRect(p types.Point, size int) Rect {
	return Rect{X: p.X * size, Y: p.Y * size, W: size, H: size}
}

// HeadTriangle returns the head arrow inside r pointing along dir. The tip
// sits on the middle of the leading edge and the base spans the trailing
// edge. Vertices are counter-clockwise on screen.
func HeadTriangle(r Rect, dir types.Direction) [3]Vec {
	x, y := float32(r.X), float32(r.Y)
	w, h := float32(r.W), float32(r.H)

	var tri [3]Vec
	switch dir {
	case types.Left:
		tri = [3]Vec{{x + w, y}, {x, y + h/2}, {x + w, y + h}}
	case types.Down:
		tri = [3]Vec{{x, y}, {x + w/2, y + h}, {x + w, y}}
	case types.Up:
		tri = [3]Vec{{x, y + h}, {x + w/2, y}, {x + w, y + h}}
	default:
		tri = [3]Vec{{x, y}, {x + w, y + h/2}, {x, y + h}}
	}
	return CounterClockwise(tri)
}

// CounterClockwise orders the vertices counter-clockwise as seen on a y-down
// screen, the winding raylib does not cull
func CounterClockwise(tri [3]Vec) [3]Vec {
	if cross(tri) > 0 {
		tri[1], tri[2] = tri[2], tri[1]
	}
	return tri
}

func cross(tri [3]Vec) float32 {
	a, b, c := tri[0], tri[1], tri[2]
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
