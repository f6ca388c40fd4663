// Package gcoverlay paints a selection rectangle, its grid and its click
// targets onto a gcsurface.Surface, and returns the exact points it drew so
// that automation clicks what the operator saw.
package gcoverlay

import (
	"fmt"
	"math"

	"oss.terrastruct.com/util-go/xdefer"

	"oss.terrastruct.com/gridclick/gcgrid"
	"oss.terrastruct.com/gridclick/gcrenderers/gcsurface"
	"oss.terrastruct.com/gridclick/gctarget"
	"oss.terrastruct.com/gridclick/lib/color"
	"oss.terrastruct.com/gridclick/lib/geo"
)

const (
	// grid lines are drawn thinner than the border they subdivide
	GRID_LINE_WIDTH_RATIO = 0.4
	GRID_DASH_RATIO       = 4
	GRID_GAP_RATIO        = 6
	POINT_RADIUS_RATIO    = 1.5

	SHADOW_BLUR = 3

	DEFAULT_MARKER_LINE_WIDTH = 2
	DEFAULT_FONT_SIZE         = 16
	DEFAULT_LABEL_LINE_WIDTH  = 2
	DEFAULT_FONT_FAMILY       = "sans-serif"
)

type RenderOpts struct {
	// Style falls back to the rectangle's own style, then to gctarget.DefaultRectangleStyle.
	Style *gctarget.RectangleStyle
	// Grid defaults to gcgrid.Default().
	Grid *gcgrid.Grid
}

type Result struct {
	Rectangle  gctarget.Rectangle `json:"rectangle"`
	GridPoints geo.Points         `json:"gridPoints"`
}

func resolveStyle(rect gctarget.Rectangle, opts *RenderOpts) gctarget.RectangleStyle {
	if opts != nil && opts.Style != nil {
		return *opts.Style
	}
	if rect.Style != nil {
		return *rect.Style
	}
	return gctarget.DefaultRectangleStyle
}

func resolveGrid(opts *RenderOpts) gcgrid.Grid {
	if opts != nil && opts.Grid != nil {
		return *opts.Grid
	}
	return gcgrid.Default()
}

// GridLineWidth is the stroke width of interior grid lines for a border of lineWidth.
func GridLineWidth(lineWidth float64) float64 {
	return lineWidth * GRID_LINE_WIDTH_RATIO
}

// GridLineDash is the dash pattern of interior grid lines for a border of lineWidth.
func GridLineDash(lineWidth float64) []float64 {
	w := GridLineWidth(lineWidth)
	return []float64{w * GRID_DASH_RATIO, w * GRID_GAP_RATIO}
}

// PointRadius is the radius of the marker drawn at every grid point.
func PointRadius(lineWidth float64) float64 {
	return lineWidth * POINT_RADIUS_RATIO
}

func begin(s gcsurface.Surface) error {
	if s == nil {
		return gcsurface.ErrSurfaceUnavailable
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("%w: %v", gcsurface.ErrSurfaceUnavailable, err)
	}
	return nil
}

// RenderRectangleWithGrid draws the grid lines, one marker per grid point and
// then the rectangle on top. A stroke color of none silences lines, markers and
// border alike since they all take their color from it.
func RenderRectangleWithGrid(s gcsurface.Surface, rect gctarget.Rectangle, opts *RenderOpts) (_ *Result, err error) {
	defer xdefer.Errorf(&err, "failed to render rectangle %v", rect)

	if err := begin(s); err != nil {
		return nil, err
	}
	defer s.Restore()

	style := resolveStyle(rect, opts)
	grid := resolveGrid(opts)
	box := rect.Box()

	// zero or negative sized rectangles are valid input but paint nothing
	if box.IsDegenerate() {
		return &Result{
			Rectangle:  rect,
			GridPoints: gcgrid.Points(box, grid),
		}, nil
	}

	s.SetLineWidth(style.LineWidth)
	if style.HasFill() {
		s.SetFillColor(style.FillColor)
	}
	if style.HasStroke() {
		s.SetStrokeColor(style.StrokeColor)
	}
	s.SetShadow(gcsurface.Shadow{
		Color: color.Black,
		Blur:  SHADOW_BLUR,
	})

	points := renderGrid(s, box, style, grid)

	s.BeginPath()
	s.Rect(rect.X, rect.Y, rect.Width, rect.Height)
	if style.HasFill() {
		s.Fill()
	}
	if style.HasStroke() {
		s.SetLineDash(nil)
		s.SetStrokeColor(style.StrokeColor)
		s.SetLineWidth(style.LineWidth)
		s.Stroke()
	}

	return &Result{
		Rectangle:  rect,
		GridPoints: points,
	}, nil
}

func renderGrid(s gcsurface.Surface, box *geo.Box, style gctarget.RectangleStyle, grid gcgrid.Grid) geo.Points {
	points := gcgrid.Points(box, grid)
	if !style.HasStroke() {
		return points
	}

	lines := gcgrid.InteriorLines(box, grid)
	if len(lines) > 0 {
		s.SetLineDash(GridLineDash(style.LineWidth))
		s.SetStrokeColor(style.StrokeColor)
		s.SetLineWidth(GridLineWidth(style.LineWidth))
		for _, l := range lines {
			s.BeginPath()
			s.MoveTo(l.Start.X, l.Start.Y)
			s.LineTo(l.End.X, l.End.Y)
			s.Stroke()
		}
	}

	radius := PointRadius(style.LineWidth)
	s.SetFillColor(style.StrokeColor)
	for _, p := range points {
		s.BeginPath()
		s.Arc(p.X, p.Y, radius, 0, 2*math.Pi)
		s.ClosePath()
		s.Fill()
	}
	if style.HasFill() {
		s.SetFillColor(style.FillColor)
	}
	return points
}

// DrawMarkerCross draws an "X" centered on (x, y) reaching size in every direction.
// lineWidth <= 0 means DEFAULT_MARKER_LINE_WIDTH.
func DrawMarkerCross(s gcsurface.Surface, x, y, size float64, strokeColor string, lineWidth float64) (err error) {
	defer xdefer.Errorf(&err, "failed to draw marker at (%v, %v)", x, y)

	if err := begin(s); err != nil {
		return err
	}
	defer s.Restore()

	if lineWidth <= 0 {
		lineWidth = DEFAULT_MARKER_LINE_WIDTH
	}
	s.SetStrokeColor(strokeColor)
	s.SetLineWidth(lineWidth)
	s.SetLineDash(nil)
	s.BeginPath()
	s.MoveTo(x-size, y-size)
	s.LineTo(x+size, y+size)
	s.MoveTo(x+size, y-size)
	s.LineTo(x-size, y+size)
	s.Stroke()
	return nil
}

// DrawLabel writes text with its baseline starting at (x, y). The outline is
// stroked first and filled on top, both in textColor, so it reads on any background.
// fontSize and lineWidth <= 0 take their defaults.
func DrawLabel(s gcsurface.Surface, text string, x, y float64, textColor string, fontSize, lineWidth float64) (err error) {
	defer xdefer.Errorf(&err, "failed to draw label %q", text)

	if err := begin(s); err != nil {
		return err
	}
	defer s.Restore()

	if fontSize <= 0 {
		fontSize = DEFAULT_FONT_SIZE
	}
	if lineWidth <= 0 {
		lineWidth = DEFAULT_LABEL_LINE_WIDTH
	}
	s.SetFont(gcsurface.Font{Family: DEFAULT_FONT_FAMILY, Size: fontSize})
	s.SetFillColor(textColor)
	s.SetLineWidth(lineWidth)
	s.SetStrokeColor(textColor)
	s.SetLineDash(nil)
	s.StrokeText(text, x, y)
	s.FillText(text, x, y)
	return nil
}
