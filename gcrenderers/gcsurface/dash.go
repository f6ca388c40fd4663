package gcsurface

import (
	"oss.terrastruct.com/gridclick/lib/geo"
)

// Resolvable returns pattern, or nil when one period of it is shorter than
// unit. Such a pattern cannot be shown on the device and would split every
// line into an unbounded number of pieces, so the line is stroked solid.
func Resolvable(pattern []float64, unit float64) []float64 {
	var total float64
	for _, d := range pattern {
		total += d
	}
	if total < unit {
		return nil
	}
	return pattern
}

// Dash splits a polyline into the "on" pieces of a dash pattern.
// The pattern restarts at the beginning of every polyline.
// An empty pattern, or one whose lengths sum to zero, returns the line unchanged.
func Dash(pl Polyline, pattern []float64) []geo.Points {
	pts := pl.Points
	if pl.Closed && len(pts) > 0 {
		pts = append(pts.Copy(), pts[0].Copy())
	}

	var total float64
	for _, d := range pattern {
		total += d
	}
	if len(pattern) == 0 || total <= 0 {
		return []geo.Points{pts}
	}
	if len(pattern)%2 == 1 {
		pattern = append(append([]float64(nil), pattern...), pattern...)
	}

	var out []geo.Points
	idx := 0
	remaining := pattern[0]
	on := true
	var piece geo.Points
	if len(pts) > 0 {
		piece = geo.Points{pts[0].Copy()}
	}

	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := a.DistanceTo(b)
		pos := 0.0
		for segLen-pos > remaining {
			pos += remaining
			p := a.Interpolate(b, pos/segLen)
			if on {
				piece = append(piece, p)
				if len(piece) > 1 {
					out = append(out, piece)
				}
				piece = nil
			} else {
				piece = geo.Points{p}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			remaining = pattern[idx]
		}
		remaining -= segLen - pos
		if on {
			piece = append(piece, b.Copy())
		}
	}
	if on && len(piece) > 1 {
		out = append(out, piece)
	}
	return out
}
