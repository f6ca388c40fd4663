package gcgrid

import (
	"fmt"
	"strings"
)

type Horizontal int8

const (
	Center Horizontal = iota
	Left
	Right
)

type Vertical int8

const (
	Middle Vertical = iota
	Top
	Bottom
)

// Alignment names where in its cell a grid point sits.
type Alignment string

const (
	TopLeft      Alignment = "topleft"
	TopCenter    Alignment = "topcenter"
	TopRight     Alignment = "topright"
	MiddleLeft   Alignment = "middleleft"
	MiddleCenter Alignment = "center"
	MiddleRight  Alignment = "middleright"
	BottomLeft   Alignment = "bottomleft"
	BottomCenter Alignment = "bottomcenter"
	BottomRight  Alignment = "bottomright"
)

type axes struct {
	h Horizontal
	v Vertical
}

var alignmentAxes = map[Alignment]axes{
	TopLeft:      {Left, Top},
	TopCenter:    {Center, Top},
	TopRight:     {Right, Top},
	MiddleLeft:   {Left, Middle},
	MiddleCenter: {Center, Middle},
	MiddleRight:  {Right, Middle},
	BottomLeft:   {Left, Bottom},
	BottomCenter: {Center, Bottom},
	BottomRight:  {Right, Bottom},
}

// Axes splits a into its horizontal and vertical components.
// Unknown names fall back to the zero values, Center and Middle.
func (a Alignment) Axes() (Horizontal, Vertical) {
	ax := alignmentAxes[a]
	return ax.h, ax.v
}

func (a Alignment) IsValid() bool {
	_, ok := alignmentAxes[a]
	return ok
}

// FromAxes is the inverse of Axes.
func FromAxes(h Horizontal, v Vertical) Alignment {
	for a, ax := range alignmentAxes {
		if ax.h == h && ax.v == v {
			return a
		}
	}
	return MiddleCenter
}

// Alignments lists every named alignment in row-major order of the 3x3 cell positions.
func Alignments() []Alignment {
	return []Alignment{
		TopLeft, TopCenter, TopRight,
		MiddleLeft, MiddleCenter, MiddleRight,
		BottomLeft, BottomCenter, BottomRight,
	}
}

// ParseAlignment is the strict counterpart of Alignment for user input.
// Case, dashes, underscores and spaces are ignored: "Top-Left" is TopLeft.
func ParseAlignment(s string) (Alignment, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	if norm == "middlecenter" {
		norm = string(MiddleCenter)
	}
	a := Alignment(norm)
	if !a.IsValid() {
		return MiddleCenter, fmt.Errorf("unknown alignment %q, expected one of %s", s, alignmentList())
	}
	return a, nil
}

func alignmentList() string {
	var names []string
	for _, a := range Alignments() {
		names = append(names, string(a))
	}
	return strings.Join(names, ", ")
}

func (h Horizontal) String() string {
	switch h {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "center"
	}
}

func (v Vertical) String() string {
	switch v {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "middle"
	}
}
