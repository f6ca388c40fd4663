// Package gctarget holds the values exchanged between the geometry engine,
// the overlay renderer and the automation layer.
package gctarget

import (
	"fmt"

	"oss.terrastruct.com/gridclick/lib/color"
	"oss.terrastruct.com/gridclick/lib/geo"
)

const DEFAULT_LINE_WIDTH = 3

// Rectangle is the region the operator selected. Position is the top-left corner.
type Rectangle struct {
	X      float64         `json:"x"`
	Y      float64         `json:"y"`
	Width  float64         `json:"width"`
	Height float64         `json:"height"`
	Style  *RectangleStyle `json:"style,omitempty"`
}

func NewRectangle(x, y, width, height float64) Rectangle {
	return Rectangle{X: x, Y: y, Width: width, Height: height}
}

func (r Rectangle) Box() *geo.Box {
	return geo.NewBox(geo.NewPoint(r.X, r.Y), r.Width, r.Height)
}

func (r Rectangle) String() string {
	return fmt.Sprintf("%v,%v,%v,%v", r.X, r.Y, r.Width, r.Height)
}

// RectangleStyle controls how a rectangle and its grid are painted.
// FillColor or StrokeColor set to "" or "none" disables that paint operation.
type RectangleStyle struct {
	FillColor   string  `json:"fillColor"`
	StrokeColor string  `json:"strokeColor"`
	LineWidth   float64 `json:"lineWidth"`
}

func (s RectangleStyle) HasFill() bool {
	return !color.IsNone(s.FillColor)
}

func (s RectangleStyle) HasStroke() bool {
	return !color.IsNone(s.StrokeColor)
}

var DefaultRectangleStyle = RectangleStyle{
	FillColor:   color.None,
	StrokeColor: color.Yellow,
	LineWidth:   DEFAULT_LINE_WIDTH,
}

// DefaultHomeStyle is used for the home point marker.
var DefaultHomeStyle = RectangleStyle{
	FillColor:   color.None,
	StrokeColor: color.Orange,
	LineWidth:   DEFAULT_LINE_WIDTH,
}
