// Package gcsurface defines the 2D paint context the overlay renderer draws on.
//
// The contract mirrors an HTML canvas 2D context: paint properties are
// surface-wide and mutable, so callers bracket their work with Save and
// Restore. Implementations embed Painter for the state stack and Path for
// path construction, and only implement the paint operations themselves.
package gcsurface

import (
	"errors"
)

// ErrSurfaceUnavailable is returned when a surface can no longer accept paint commands.
var ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

type Surface interface {
	// Save pushes the current paint state. It fails with ErrSurfaceUnavailable
	// when the surface has been closed or was never set up.
	Save() error
	// Restore pops the last saved paint state. Unbalanced calls are ignored.
	Restore()

	SetLineWidth(width float64)
	SetStrokeColor(color string)
	SetFillColor(color string)
	// SetLineDash sets alternating dash and gap lengths. Empty means solid.
	SetLineDash(segments []float64)
	SetShadow(shadow Shadow)
	SetFont(font Font)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Rect(x, y, width, height float64)
	// Arc adds a circular arc around (x, y), angles in radians, clockwise in screen space.
	Arc(x, y, radius, startAngle, endAngle float64)
	ClosePath()

	Fill()
	Stroke()
	StrokeText(text string, x, y float64)
	FillText(text string, x, y float64)
}

// Available reports whether s can accept paint commands.
func Available(s Surface) bool {
	if s == nil {
		return false
	}
	if err := s.Save(); err != nil {
		return false
	}
	s.Restore()
	return true
}
