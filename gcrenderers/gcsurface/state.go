package gcsurface

import (
	"fmt"
	"math"

	"oss.terrastruct.com/gridclick/lib/color"
)

type Shadow struct {
	Color   string
	Blur    float64
	OffsetX float64
	OffsetY float64
}

// Visible reports whether painting with this shadow produces anything.
func (s Shadow) Visible() bool {
	return !color.IsNone(s.Color) && (s.Blur > 0 || s.OffsetX != 0 || s.OffsetY != 0)
}

type Font struct {
	Family string
	Size   float64
}

// CSS renders the font the way a canvas font property is written, e.g. "16px sans-serif".
func (f Font) CSS() string {
	return fmt.Sprintf("%vpx %s", f.Size, f.Family)
}

// PaintState is every property the paint operations read.
type PaintState struct {
	LineWidth   float64
	StrokeColor string
	FillColor   string
	LineDash    []float64
	Shadow      Shadow
	Font        Font
}

// DefaultPaintState matches a freshly created canvas context.
func DefaultPaintState() PaintState {
	return PaintState{
		LineWidth:   1,
		StrokeColor: "#000000",
		FillColor:   "#000000",
		Shadow:      Shadow{Color: "rgba(0, 0, 0, 0)"},
		Font:        Font{Family: "sans-serif", Size: 10},
	}
}

func (ps PaintState) Copy() PaintState {
	if ps.LineDash != nil {
		ps.LineDash = append([]float64(nil), ps.LineDash...)
	}
	return ps
}

func (ps PaintState) Equals(other PaintState) bool {
	if len(ps.LineDash) != len(other.LineDash) {
		return false
	}
	for i := range ps.LineDash {
		if ps.LineDash[i] != other.LineDash[i] {
			return false
		}
	}
	return ps.LineWidth == other.LineWidth &&
		ps.StrokeColor == other.StrokeColor &&
		ps.FillColor == other.FillColor &&
		ps.Shadow == other.Shadow &&
		ps.Font == other.Font
}

// Painter holds the current paint state and the save stack.
// The zero value is not ready, use NewPainter.
type Painter struct {
	state PaintState
	saved []PaintState
}

func NewPainter() Painter {
	return Painter{state: DefaultPaintState()}
}

func (p *Painter) State() PaintState {
	return p.state.Copy()
}

func (p *Painter) Depth() int {
	return len(p.saved)
}

func (p *Painter) Save() error {
	p.saved = append(p.saved, p.state.Copy())
	return nil
}

func (p *Painter) Restore() {
	if len(p.saved) == 0 {
		return
	}
	p.state = p.saved[len(p.saved)-1]
	p.saved = p.saved[:len(p.saved)-1]
}

func (p *Painter) SetLineWidth(width float64) {
	// canvas ignores non-positive and non-finite widths
	if width > 0 && !math.IsInf(width, 1) {
		p.state.LineWidth = width
	}
}

func (p *Painter) SetStrokeColor(c string) {
	p.state.StrokeColor = c
}

func (p *Painter) SetFillColor(c string) {
	p.state.FillColor = c
}

func (p *Painter) SetLineDash(segments []float64) {
	for _, s := range segments {
		if s < 0 {
			return
		}
	}
	if len(segments) == 0 {
		p.state.LineDash = nil
		return
	}
	dash := append([]float64(nil), segments...)
	if len(dash)%2 == 1 {
		dash = append(dash, dash...)
	}
	p.state.LineDash = dash
}

func (p *Painter) SetShadow(s Shadow) {
	p.state.Shadow = s
}

func (p *Painter) SetFont(f Font) {
	p.state.Font = f
}
