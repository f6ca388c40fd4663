// Package gcascii implements a gcsurface.Surface over a grid of terminal cells.
//
// Each cell stands for CellWidth by CellHeight pixels. Strokes become line
// characters, fills become shading, and anything smaller than a couple of
// cells is drawn as a single "o" so grid points stay visible.
package gcascii

import (
	"bytes"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"oss.terrastruct.com/gridclick/gcrenderers/gcsurface"
	"oss.terrastruct.com/gridclick/lib/color"
	"oss.terrastruct.com/gridclick/lib/geo"
)

const (
	DEFAULT_CELL_WIDTH  = 8
	DEFAULT_CELL_HEIGHT = 16

	CHAR_BLANK       = " "
	CHAR_HORIZONTAL  = "-"
	CHAR_VERTICAL    = "|"
	CHAR_CROSS       = "+"
	CHAR_BACKSLASH   = "\\"
	CHAR_SLASH       = "/"
	CHAR_MARKER      = "o"
	CHAR_FILL        = "#"
	CHAR_TRANSLUCENT = "."
)

type Scale struct {
	CellWidth  float64
	CellHeight float64
}

func DefaultScale() Scale {
	return Scale{CellWidth: DEFAULT_CELL_WIDTH, CellHeight: DEFAULT_CELL_HEIGHT}
}

type Surface struct {
	gcsurface.Painter
	gcsurface.Path

	scale  Scale
	grid   [][]string
	styles [][]tcell.Style
	closed bool
}

var _ gcsurface.Surface = &Surface{}

// New returns a blank surface covering width by height pixels.
func New(width, height int, scale Scale) *Surface {
	if scale.CellWidth <= 0 || scale.CellHeight <= 0 {
		scale = DefaultScale()
	}
	cols := int(math.Ceil(float64(width) / scale.CellWidth))
	rows := int(math.Ceil(float64(height) / scale.CellHeight))

	grid := make([][]string, rows)
	styles := make([][]tcell.Style, rows)
	for i := range grid {
		grid[i] = make([]string, cols)
		styles[i] = make([]tcell.Style, cols)
		for j := range grid[i] {
			grid[i][j] = CHAR_BLANK
			styles[i][j] = tcell.StyleDefault
		}
	}
	return &Surface{
		Painter: gcsurface.NewPainter(),
		scale:   scale,
		grid:    grid,
		styles:  styles,
	}
}

func (s *Surface) Save() error {
	if s == nil || s.closed {
		return gcsurface.ErrSurfaceUnavailable
	}
	return s.Painter.Save()
}

func (s *Surface) Close() {
	s.closed = true
}

func (s *Surface) IsInBounds(col, row int) bool {
	return row >= 0 && row < len(s.grid) && col >= 0 && col < len(s.grid[row])
}

func (s *Surface) Get(col, row int) string {
	if s.IsInBounds(col, row) {
		return s.grid[row][col]
	}
	return ""
}

func (s *Surface) Width() int {
	if len(s.grid) > 0 {
		return len(s.grid[0])
	}
	return 0
}

func (s *Surface) Height() int {
	return len(s.grid)
}

func (s *Surface) set(col, row int, char string, style tcell.Style) {
	if s.IsInBounds(col, row) {
		s.grid[row][col] = char
		s.styles[row][col] = style
	}
}

// Cell maps a pixel coordinate to the cell containing it.
func (s *Surface) Cell(x, y float64) (col, row int) {
	return int(math.Floor(x / s.scale.CellWidth)), int(math.Floor(y / s.scale.CellHeight))
}

func (s *Surface) cellCenter(col, row int) *geo.Point {
	return geo.NewPoint((float64(col)+0.5)*s.scale.CellWidth, (float64(row)+0.5)*s.scale.CellHeight)
}

func style(c string) (tcell.Style, float64, bool) {
	if color.IsNone(c) {
		return tcell.StyleDefault, 0, false
	}
	rgba, err := color.Parse(c)
	if err != nil || rgba.A == 0 {
		return tcell.StyleDefault, 0, false
	}
	fg := tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
	return tcell.StyleDefault.Foreground(fg), float64(rgba.A) / 255, true
}

// Fill shades the cells whose centers fall inside the path. A translucent fill
// only shades blank cells so what is underneath stays readable.
func (s *Surface) Fill() {
	st, alpha, ok := style(s.State().FillColor)
	if !ok {
		return
	}
	polys := s.Flatten()
	if len(polys) == 0 {
		return
	}

	tl, br := bounds(polys)
	if br.X-tl.X <= 2*s.scale.CellWidth && br.Y-tl.Y <= 2*s.scale.CellHeight {
		col, row := s.Cell((tl.X+br.X)/2, (tl.Y+br.Y)/2)
		s.set(col, row, CHAR_MARKER, st)
		return
	}

	char := CHAR_FILL
	if alpha < 1 {
		char = CHAR_TRANSLUCENT
	}
	c0, r0 := s.Cell(tl.X, tl.Y)
	c1, r1 := s.Cell(br.X, br.Y)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if !s.IsInBounds(col, row) || !inside(polys, s.cellCenter(col, row)) {
				continue
			}
			if alpha < 1 && s.grid[row][col] != CHAR_BLANK {
				continue
			}
			s.set(col, row, char, st)
		}
	}
}

func (s *Surface) Stroke() {
	state := s.State()
	st, _, ok := style(state.StrokeColor)
	if !ok {
		return
	}
	dash := gcsurface.Resolvable(state.LineDash, math.Min(s.scale.CellWidth, s.scale.CellHeight))
	for _, pl := range s.Flatten() {
		for _, piece := range gcsurface.Dash(pl, dash) {
			for i := 1; i < len(piece); i++ {
				s.strokeSegment(piece[i-1], piece[i], st)
			}
		}
	}
}

func (s *Surface) strokeSegment(a, b *geo.Point, st tcell.Style) {
	char := lineChar(b.X-a.X, b.Y-a.Y)
	step := math.Min(s.scale.CellWidth, s.scale.CellHeight) / 4
	n := int(math.Ceil(a.DistanceTo(b) / step))
	if n < 1 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		p := a.Interpolate(b, float64(i)/float64(n))
		col, row := s.Cell(p.X, p.Y)
		s.set(col, row, mergeLine(s.Get(col, row), char), st)
	}
}

func lineChar(dx, dy float64) string {
	switch {
	case math.Abs(dx) >= 2*math.Abs(dy):
		return CHAR_HORIZONTAL
	case math.Abs(dy) >= 2*math.Abs(dx):
		return CHAR_VERTICAL
	case dx*dy > 0:
		return CHAR_BACKSLASH
	default:
		return CHAR_SLASH
	}
}

func mergeLine(existing, char string) string {
	if (existing == CHAR_HORIZONTAL && char == CHAR_VERTICAL) ||
		(existing == CHAR_VERTICAL && char == CHAR_HORIZONTAL) ||
		existing == CHAR_CROSS {
		return CHAR_CROSS
	}
	return char
}

// StrokeText writes the same characters as FillText, cells have no outline.
func (s *Surface) StrokeText(text string, x, y float64) {
	s.writeText(text, x, y, s.State().StrokeColor)
}

func (s *Surface) FillText(text string, x, y float64) {
	s.writeText(text, x, y, s.State().FillColor)
}

func (s *Surface) writeText(text string, x, y float64, c string) {
	st, _, ok := style(c)
	if !ok {
		return
	}
	col, row := s.Cell(x, y)
	i := 0
	for _, ch := range text {
		s.set(col+i, row, string(ch), st)
		i++
	}
}

// Blit copies every non blank cell onto screen with its top left at (x, y).
func (s *Surface) Blit(screen tcell.Screen, x, y int) {
	for row := range s.grid {
		for col, char := range s.grid[row] {
			if char == CHAR_BLANK {
				continue
			}
			r := []rune(char)
			screen.SetContent(x+col, y+row, r[0], r[1:], s.styles[row][col])
		}
	}
}

// Bytes closes the surface and returns its rows with trailing blanks trimmed.
func (s *Surface) Bytes() []byte {
	s.Close()

	lines := make([]string, 0, len(s.grid))
	for _, row := range s.grid {
		lines = append(lines, strings.TrimRight(strings.Join(row, ""), CHAR_BLANK))
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func bounds(polys []gcsurface.Polyline) (tl, br *geo.Point) {
	tl = geo.NewPoint(math.Inf(1), math.Inf(1))
	br = geo.NewPoint(math.Inf(-1), math.Inf(-1))
	for _, pl := range polys {
		for _, p := range pl.Points {
			tl.X = math.Min(tl.X, p.X)
			tl.Y = math.Min(tl.Y, p.Y)
			br.X = math.Max(br.X, p.X)
			br.Y = math.Max(br.Y, p.Y)
		}
	}
	return tl, br
}

// inside is an even-odd test across every subpath.
func inside(polys []gcsurface.Polyline, p *geo.Point) bool {
	in := false
	for _, pl := range polys {
		pts := pl.Points
		for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
			a, b := pts[i], pts[j]
			if (a.Y > p.Y) != (b.Y > p.Y) &&
				p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
				in = !in
			}
		}
	}
	return in
}
