package geo

import "math"

// EuclideanDistance short-circuits axis aligned pairs so grid lines measure exactly.
func EuclideanDistance(x1, y1, x2, y2 float64) float64 {
	switch {
	case x1 == x2:
		return math.Abs(y1 - y2)
	case y1 == y2:
		return math.Abs(x1 - x2)
	default:
		return math.Hypot(x1-x2, y1-y2)
	}
}
