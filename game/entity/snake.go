package entity

import (
	"snakeify/catalog"
	"snakeify/game/types"
	"snakeify/media"
)

// Segment is one body cell. Artwork travels with the segment once assigned.
type Segment struct {
	Pos    types.Point
	Track  *catalog.Track
	ImgURL string
	Image  *media.Image
}

// Snake holds the body, head first
type Snake struct {
	Body []Segment
}

func NewSnake(startPos types.Point) *Snake {
	return &Snake{
		Body: []Segment{{Pos: startPos}},
	}
}

// Move prepends newHead
func (s *Snake) Move(newHead Segment) {
	s.Body = append(s.Body, Segment{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
}

func (s *Snake) RemoveTail() {
	if len(s.Body) > 0 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

func (s *Snake) GetHead() Segment {
	return s.Body[0]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Occupies reports whether any segment sits on pos
func (s *Snake) Occupies(pos types.Point) bool {
	for _, seg := range s.Body {
		if seg.Pos == pos {
			return true
		}
	}
	return false
}

// Positions returns the cell of every segment, head first
func (s *Snake) Positions() []types.Point {
	out := make([]types.Point, len(s.Body))
	for i, seg := range s.Body {
		out[i] = seg.Pos
	}
	return out
}

// Clone returns a copy that shares no body storage with s
func (s *Snake) Clone() *Snake {
	body := make([]Segment, len(s.Body))
	copy(body, s.Body)
	return &Snake{Body: body}
}
