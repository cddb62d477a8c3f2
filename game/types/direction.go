package types

// Direction is a cardinal direction
type Direction int

const (
	None Direction = iota
	Up
	Right
	Down
	Left
)

// ToPoint converts a Direction to a movement vector
func (d Direction) ToPoint() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 0, Y: 0}
	}
}

// Opposite returns the reverse direction
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	default:
		return d
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "none"
	}
}

// DirectionOf maps a unit vector back to its Direction, None for anything else
func DirectionOf(p Point) Direction {
	for _, d := range []Direction{Up, Right, Down, Left} {
		if d.ToPoint() == p {
			return d
		}
	}
	return None
}

// CanTurn reports whether d may become the pending direction. Only the
// reverse of the heading is rejected, so re-selecting the heading cancels a
// buffered turn.
func CanTurn(heading Point, d Direction) bool {
	if d == None {
		return false
	}
	return d != DirectionOf(heading).Opposite() || heading.IsZero()
}
