// Package color resolves CSS color strings used by overlay styles.
package color

import (
	"fmt"
	stdcolor "image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

const (
	Empty = ""
	None  = "none"

	Black  = "black"
	Yellow = "yellow"
	Orange = "orange"
	White  = "white"
)

// IsNone reports whether colorString disables the paint operation it is attached to.
func IsNone(colorString string) bool {
	s := strings.TrimSpace(colorString)
	return s == Empty || strings.EqualFold(s, None)
}

// Parse converts any CSS color (named, hex, rgb(), hsl()) into a non-premultiplied color.
func Parse(colorString string) (stdcolor.NRGBA, error) {
	if IsNone(colorString) {
		return stdcolor.NRGBA{}, fmt.Errorf("color %q disables painting and cannot be parsed", colorString)
	}
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return stdcolor.NRGBA{}, err
	}
	return stdcolor.NRGBA{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: channel(c.A),
	}, nil
}

// WithAlpha parses colorString and scales its alpha by a (0..1).
func WithAlpha(colorString string, a float64) (stdcolor.NRGBA, error) {
	c, err := Parse(colorString)
	if err != nil {
		return c, err
	}
	c.A = channel(float64(c.A) / 255 * clamp01(a))
	return c, nil
}

// Hex normalizes colorString to #rrggbb, dropping alpha.
func Hex(colorString string) (string, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return "", err
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex(), nil
}

// Opacity returns the alpha channel of colorString in 0..1.
func Opacity(colorString string) (float64, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return 0, err
	}
	return clamp01(c.A), nil
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
