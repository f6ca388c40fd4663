package geo

import "fmt"

type Segment struct {
	Start *Point
	End   *Point
}

func NewSegment(from, to *Point) *Segment {
	return &Segment{from, to}
}

func (s Segment) IsHorizontal() bool {
	return s.Start.Y == s.End.Y
}

func (s Segment) IsVertical() bool {
	return s.Start.X == s.End.X
}

func (s Segment) Length() float64 {
	return EuclideanDistance(s.Start.X, s.Start.Y, s.End.X, s.End.Y)
}

func (s Segment) Equals(other Segment) bool {
	return s.Start.Equals(other.Start) && s.End.Equals(other.End)
}

func (s Segment) ToString() string {
	return fmt.Sprintf("%v -> %v", s.Start.ToString(), s.End.ToString())
}
