package svg

import (
	"fmt"
	"math"
	"strings"
)

// PathData accumulates SVG path commands in absolute coordinates.
type PathData struct {
	Commands []string
}

// TODO probably use math.Big
func chopPrecision(f float64) float64 {
	return math.Round(f*10000) / 10000
}

// Num formats a coordinate the way every command in this package does.
func Num(f float64) string {
	return fmt.Sprintf("%v", chopPrecision(f))
}

func (d *PathData) M(x, y float64) {
	d.Commands = append(d.Commands, fmt.Sprintf("M %v %v", chopPrecision(x), chopPrecision(y)))
}

func (d *PathData) L(x, y float64) {
	d.Commands = append(d.Commands, fmt.Sprintf("L %v %v", chopPrecision(x), chopPrecision(y)))
}

// A draws an elliptical arc with equal radii to (x, y).
func (d *PathData) A(r float64, largeArc, sweep bool, x, y float64) {
	d.Commands = append(d.Commands, fmt.Sprintf("A %v %v 0 %d %d %v %v",
		chopPrecision(r), chopPrecision(r), flag(largeArc), flag(sweep), chopPrecision(x), chopPrecision(y)))
}

func (d *PathData) Z() {
	d.Commands = append(d.Commands, "Z")
}

func (d *PathData) Empty() bool {
	return len(d.Commands) == 0
}

func (d *PathData) String() string {
	return strings.Join(d.Commands, " ")
}

// DashArray renders a stroke-dasharray value, or "" for a solid line.
func DashArray(segments []float64) string {
	if len(segments) == 0 {
		return ""
	}
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, Num(s))
	}
	return strings.Join(parts, ",")
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
