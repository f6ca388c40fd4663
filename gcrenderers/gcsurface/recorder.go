package gcsurface

import (
	"fmt"
	"strings"
)

// Call is one method invocation seen by a Recorder.
type Call struct {
	Method string
	Args   []interface{}
	// State is the paint state in effect when a paint operation ran. Zero for other calls.
	State PaintState
}

func (c Call) String() string {
	args := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		args = append(args, fmt.Sprintf("%v", a))
	}
	return fmt.Sprintf("%s(%s)", c.Method, strings.Join(args, ", "))
}

// Recorder is a Surface that paints nothing and remembers every call.
type Recorder struct {
	Painter
	Path

	Calls []Call
	// Unavailable makes Save fail, as a closed surface would.
	Unavailable bool
}

var _ Surface = &Recorder{}

func NewRecorder() *Recorder {
	return &Recorder{Painter: NewPainter()}
}

func (r *Recorder) record(method string, args ...interface{}) {
	r.Calls = append(r.Calls, Call{Method: method, Args: args})
}

func (r *Recorder) recordPaint(method string, args ...interface{}) {
	r.Calls = append(r.Calls, Call{Method: method, Args: args, State: r.State()})
}

func (r *Recorder) Save() error {
	if r == nil || r.Unavailable {
		return ErrSurfaceUnavailable
	}
	r.record("Save")
	return r.Painter.Save()
}

func (r *Recorder) Restore() {
	r.record("Restore")
	r.Painter.Restore()
}

func (r *Recorder) SetLineWidth(width float64) {
	r.record("SetLineWidth", width)
	r.Painter.SetLineWidth(width)
}

func (r *Recorder) SetStrokeColor(c string) {
	r.record("SetStrokeColor", c)
	r.Painter.SetStrokeColor(c)
}

func (r *Recorder) SetFillColor(c string) {
	r.record("SetFillColor", c)
	r.Painter.SetFillColor(c)
}

func (r *Recorder) SetLineDash(segments []float64) {
	r.record("SetLineDash", append([]float64(nil), segments...))
	r.Painter.SetLineDash(segments)
}

func (r *Recorder) SetShadow(s Shadow) {
	r.record("SetShadow", s)
	r.Painter.SetShadow(s)
}

func (r *Recorder) SetFont(f Font) {
	r.record("SetFont", f.CSS())
	r.Painter.SetFont(f)
}

func (r *Recorder) BeginPath() {
	r.record("BeginPath")
	r.Path.BeginPath()
}

func (r *Recorder) MoveTo(x, y float64) {
	r.record("MoveTo", x, y)
	r.Path.MoveTo(x, y)
}

func (r *Recorder) LineTo(x, y float64) {
	r.record("LineTo", x, y)
	r.Path.LineTo(x, y)
}

func (r *Recorder) Rect(x, y, width, height float64) {
	r.record("Rect", x, y, width, height)
	r.Path.Rect(x, y, width, height)
}

func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64) {
	r.record("Arc", x, y, radius, startAngle, endAngle)
	r.Path.Arc(x, y, radius, startAngle, endAngle)
}

func (r *Recorder) ClosePath() {
	r.record("ClosePath")
	r.Path.ClosePath()
}

func (r *Recorder) Fill() {
	r.recordPaint("Fill")
}

func (r *Recorder) Stroke() {
	r.recordPaint("Stroke")
}

func (r *Recorder) StrokeText(text string, x, y float64) {
	r.recordPaint("StrokeText", text, x, y)
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.recordPaint("FillText", text, x, y)
}

// Methods returns the method names of the recorded calls, in order.
func (r *Recorder) Methods() []string {
	out := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		out = append(out, c.Method)
	}
	return out
}

// Filter returns the calls to any of the given methods.
func (r *Recorder) Filter(methods ...string) []Call {
	var out []Call
	for _, c := range r.Calls {
		for _, m := range methods {
			if c.Method == m {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
