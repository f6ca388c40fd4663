// Package gcsvg implements a gcsurface.Surface that produces a standalone SVG document.
package gcsvg

import (
	"bytes"
	"fmt"
	"math"

	"oss.terrastruct.com/gridclick/gcrenderers/gcsurface"
	"oss.terrastruct.com/gridclick/lib/color"
	"oss.terrastruct.com/gridclick/lib/svg"
)

type Surface struct {
	gcsurface.Painter
	gcsurface.Path

	width  int
	height int

	body    bytes.Buffer
	defs    bytes.Buffer
	filters map[gcsurface.Shadow]string
	closed  bool
}

var _ gcsurface.Surface = &Surface{}

func New(width, height int) *Surface {
	return &Surface{
		Painter: gcsurface.NewPainter(),
		width:   width,
		height:  height,
		filters: make(map[gcsurface.Shadow]string),
	}
}

func (s *Surface) Save() error {
	if s == nil || s.closed {
		return gcsurface.ErrSurfaceUnavailable
	}
	return s.Painter.Save()
}

// Close finalizes the surface. Further Save calls fail.
func (s *Surface) Close() {
	s.closed = true
}

// Bytes closes the surface and returns the finished document.
func (s *Surface) Bytes() []byte {
	s.Close()

	buf := &bytes.Buffer{}
	buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%d" height="%d" viewBox="0 0 %d %d">`,
		s.width, s.height, s.width, s.height)
	if s.defs.Len() > 0 {
		buf.WriteString("<defs>")
		buf.Write(s.defs.Bytes())
		buf.WriteString("</defs>")
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (s *Surface) Fill() {
	st := s.State()
	paint, ok := paintAttrs("fill", st.FillColor)
	if !ok {
		return
	}
	d := s.pathData()
	if d.Empty() {
		return
	}
	fmt.Fprintf(&s.body, `<path d="%s" %s stroke="none"%s />`, d.String(), paint, s.filterAttr(st.Shadow))
}

func (s *Surface) Stroke() {
	st := s.State()
	paint, ok := paintAttrs("stroke", st.StrokeColor)
	if !ok {
		return
	}
	d := s.pathData()
	if d.Empty() {
		return
	}
	dash := ""
	if v := svg.DashArray(st.LineDash); v != "" {
		dash = fmt.Sprintf(` stroke-dasharray="%s"`, v)
	}
	fmt.Fprintf(&s.body, `<path d="%s" fill="none" %s stroke-width="%s"%s%s />`,
		d.String(), paint, svg.Num(st.LineWidth), dash, s.filterAttr(st.Shadow))
}

func (s *Surface) StrokeText(text string, x, y float64) {
	st := s.State()
	paint, ok := paintAttrs("stroke", st.StrokeColor)
	if !ok {
		return
	}
	fmt.Fprintf(&s.body, `<text x="%s" y="%s" %s fill="none" %s stroke-width="%s"%s>%s</text>`,
		svg.Num(x), svg.Num(y), fontAttrs(st.Font), paint, svg.Num(st.LineWidth), s.filterAttr(st.Shadow), svg.EscapeText(text))
}

func (s *Surface) FillText(text string, x, y float64) {
	st := s.State()
	paint, ok := paintAttrs("fill", st.FillColor)
	if !ok {
		return
	}
	fmt.Fprintf(&s.body, `<text x="%s" y="%s" %s %s stroke="none"%s>%s</text>`,
		svg.Num(x), svg.Num(y), fontAttrs(st.Font), paint, s.filterAttr(st.Shadow), svg.EscapeText(text))
}

// paintAttrs renders a color as a paint attribute plus its opacity.
// Unparseable colors paint nothing, like a canvas ignoring an invalid style.
func paintAttrs(attr, c string) (string, bool) {
	if color.IsNone(c) {
		return "", false
	}
	hex, err := color.Hex(c)
	if err != nil {
		return "", false
	}
	opacity, _ := color.Opacity(c)
	if opacity <= 0 {
		return "", false
	}
	if opacity >= 1 {
		return fmt.Sprintf(`%s="%s"`, attr, hex), true
	}
	return fmt.Sprintf(`%s="%s" %s-opacity="%s"`, attr, hex, attr, svg.Num(opacity)), true
}

func fontAttrs(f gcsurface.Font) string {
	return fmt.Sprintf(`font-family="%s" font-size="%s"`, svg.EscapeText(f.Family), svg.Num(f.Size))
}

func (s *Surface) filterAttr(sh gcsurface.Shadow) string {
	if !sh.Visible() {
		return ""
	}
	id, ok := s.filters[sh]
	if !ok {
		id = fmt.Sprintf("shadow-%d", len(s.filters))
		s.filters[sh] = id
		defineShadowFilter(&s.defs, id, sh)
	}
	return fmt.Sprintf(` filter="url(#%s)"`, id)
}

// canvas shadowBlur is twice the gaussian standard deviation
func defineShadowFilter(buf *bytes.Buffer, id string, sh gcsurface.Shadow) {
	hex, err := color.Hex(sh.Color)
	if err != nil {
		hex = "#000000"
	}
	opacity, _ := color.Opacity(sh.Color)
	fmt.Fprintf(buf, `<filter id="%s" width="200%%" height="200%%" x="-50%%" y="-50%%">`+
		`<feGaussianBlur stdDeviation="%s" in="SourceAlpha" result="ShadowBlur"></feGaussianBlur>`+
		`<feOffset dx="%s" dy="%s" in="ShadowBlur" result="ShadowOffset"></feOffset>`+
		`<feFlood flood-color="%s" flood-opacity="%s" result="ShadowFlood"></feFlood>`+
		`<feComposite in="ShadowFlood" in2="ShadowOffset" operator="in" result="ShadowComposite"></feComposite>`+
		`<feMerge><feMergeNode in="ShadowComposite"></feMergeNode><feMergeNode in="SourceGraphic"></feMergeNode></feMerge>`+
		`</filter>`,
		id, svg.Num(sh.Blur/2), svg.Num(sh.OffsetX), svg.Num(sh.OffsetY), hex, svg.Num(opacity))
}

// pathData converts the current path into SVG commands. Arcs are kept as
// arcs, split so that no piece sweeps more than half a turn.
func (s *Surface) pathData() *svg.PathData {
	d := &svg.PathData{}
	open := false
	lineOrMove := func(x, y float64) {
		if open {
			d.L(x, y)
		} else {
			d.M(x, y)
			open = true
		}
	}

	for _, c := range s.Commands() {
		switch c.Op {
		case gcsurface.OpMoveTo:
			d.M(c.X, c.Y)
			open = true
		case gcsurface.OpLineTo:
			lineOrMove(c.X, c.Y)
		case gcsurface.OpRect:
			d.M(c.X, c.Y)
			d.L(c.X+c.Width, c.Y)
			d.L(c.X+c.Width, c.Y+c.Height)
			d.L(c.X, c.Y+c.Height)
			d.Z()
			d.M(c.X, c.Y)
			open = true
		case gcsurface.OpArc:
			sweep := gcsurface.Sweep(c.Start, c.End)
			lineOrMove(c.X+c.Radius*math.Cos(c.Start), c.Y+c.Radius*math.Sin(c.Start))
			if sweep == 0 || c.Radius == 0 {
				continue
			}
			n := int(math.Ceil(sweep / math.Pi))
			for i := 1; i <= n; i++ {
				a := c.Start + sweep*float64(i)/float64(n)
				d.A(c.Radius, false, true, c.X+c.Radius*math.Cos(a), c.Y+c.Radius*math.Sin(a))
			}
		case gcsurface.OpClosePath:
			if open {
				d.Z()
			}
		}
	}
	return d
}
