package gcsurface

import (
	"math"

	"oss.terrastruct.com/gridclick/lib/geo"
)

type Op int8

const (
	OpMoveTo Op = iota
	OpLineTo
	OpRect
	OpArc
	OpClosePath
)

// Command is one recorded path construction call. Unused fields are zero.
type Command struct {
	Op     Op
	X, Y   float64
	Width  float64
	Height float64
	Radius float64
	Start  float64
	End    float64
}

// Path records path construction calls until the next BeginPath.
type Path struct {
	commands []Command
}

func (p *Path) BeginPath() {
	p.commands = p.commands[:0]
}

func (p *Path) MoveTo(x, y float64) {
	p.commands = append(p.commands, Command{Op: OpMoveTo, X: x, Y: y})
}

func (p *Path) LineTo(x, y float64) {
	p.commands = append(p.commands, Command{Op: OpLineTo, X: x, Y: y})
}

func (p *Path) Rect(x, y, width, height float64) {
	p.commands = append(p.commands, Command{Op: OpRect, X: x, Y: y, Width: width, Height: height})
}

func (p *Path) Arc(x, y, radius, startAngle, endAngle float64) {
	if radius < 0 {
		return
	}
	p.commands = append(p.commands, Command{Op: OpArc, X: x, Y: y, Radius: radius, Start: startAngle, End: endAngle})
}

func (p *Path) ClosePath() {
	p.commands = append(p.commands, Command{Op: OpClosePath})
}

func (p *Path) Commands() []Command {
	return append([]Command(nil), p.commands...)
}

func (p *Path) Empty() bool {
	return len(p.commands) == 0
}

// Polyline is a flattened subpath.
type Polyline struct {
	Points geo.Points
	Closed bool
}

// Sweep normalizes a clockwise arc's angular extent into [0, 2π].
func Sweep(startAngle, endAngle float64) float64 {
	sweep := endAngle - startAngle
	if sweep >= 2*math.Pi {
		return 2 * math.Pi
	}
	sweep = math.Mod(sweep, 2*math.Pi)
	if sweep < 0 {
		sweep += 2 * math.Pi
	}
	return sweep
}

// ArcPoints approximates an arc with chords no longer than π/16 radians.
func ArcPoints(x, y, radius, startAngle, endAngle float64) geo.Points {
	sweep := Sweep(startAngle, endAngle)
	n := int(math.Ceil(sweep / (math.Pi / 16)))
	if n < 1 {
		n = 1
	}
	points := make(geo.Points, 0, n+1)
	for i := 0; i <= n; i++ {
		a := startAngle + sweep*float64(i)/float64(n)
		points = append(points, geo.NewPoint(x+radius*math.Cos(a), y+radius*math.Sin(a)))
	}
	return points
}

// Flatten converts the recorded commands into polylines following canvas
// subpath rules: LineTo without a subpath starts one, Rect adds a closed
// subpath, ClosePath closes the current one.
func (p *Path) Flatten() []Polyline {
	var out []Polyline
	var cur *Polyline

	flush := func() {
		if cur != nil && len(cur.Points) > 0 {
			out = append(out, *cur)
		}
		cur = nil
	}
	start := func(pt *geo.Point) {
		flush()
		cur = &Polyline{Points: geo.Points{pt}}
	}

	for _, c := range p.commands {
		switch c.Op {
		case OpMoveTo:
			start(geo.NewPoint(c.X, c.Y))
		case OpLineTo:
			if cur == nil {
				start(geo.NewPoint(c.X, c.Y))
				continue
			}
			cur.Points = append(cur.Points, geo.NewPoint(c.X, c.Y))
		case OpRect:
			flush()
			out = append(out, Polyline{
				Points: geo.Points{
					geo.NewPoint(c.X, c.Y),
					geo.NewPoint(c.X+c.Width, c.Y),
					geo.NewPoint(c.X+c.Width, c.Y+c.Height),
					geo.NewPoint(c.X, c.Y+c.Height),
				},
				Closed: true,
			})
			start(geo.NewPoint(c.X, c.Y))
		case OpArc:
			arc := ArcPoints(c.X, c.Y, c.Radius, c.Start, c.End)
			if cur == nil {
				start(arc[0])
			} else {
				cur.Points = append(cur.Points, arc[0])
			}
			cur.Points = append(cur.Points, arc[1:]...)
		case OpClosePath:
			if cur == nil {
				continue
			}
			first := cur.Points[0].Copy()
			cur.Closed = true
			flush()
			start(first)
		}
	}
	flush()

	// a lone MoveTo leaves a one point subpath that paints nothing
	kept := out[:0]
	for _, pl := range out {
		if len(pl.Points) > 1 {
			kept = append(kept, pl)
		}
	}
	return kept
}
