package gcpng_test

import (
	"bytes"
	stdcolor "image/color"
	"image/png"
	"testing"
	"time"

	tassert "github.com/stretchr/testify/assert"

	"oss.terrastruct.com/util-go/assert"

	"oss.terrastruct.com/gridclick/gcgrid"
	"oss.terrastruct.com/gridclick/gcrenderers/gcoverlay"
	"oss.terrastruct.com/gridclick/gcrenderers/gcpng"
	"oss.terrastruct.com/gridclick/gcrenderers/gcsurface"
	"oss.terrastruct.com/gridclick/gctarget"
)

func render(t *testing.T, style gctarget.RectangleStyle) *gcpng.Surface {
	s := gcpng.New(120, 70)
	grid := gcgrid.New(2, 2, gcgrid.MiddleCenter)
	res, err := gcoverlay.RenderRectangleWithGrid(s, gctarget.NewRectangle(10, 10, 100, 50), &gcoverlay.RenderOpts{
		Style: &style,
		Grid:  &grid,
	})
	assert.Success(t, err)
	tassert.Equal(t, 4, len(res.GridPoints))
	return s
}

func TestMarkers(t *testing.T) {
	t.Parallel()

	s := render(t, gctarget.DefaultRectangleStyle)

	yellow := stdcolor.NRGBA{R: 255, G: 255, A: 255}
	tassert.Equal(t, yellow, s.At(35, 22))
	tassert.Equal(t, yellow, s.At(85, 47))

	// far from anything
	tassert.Equal(t, uint8(0), s.At(115, 66).A)
	// default style has no fill
	tassert.Equal(t, uint8(0), s.At(20, 15).A)
}

func TestDashedGridLines(t *testing.T) {
	t.Parallel()

	s := render(t, gctarget.DefaultRectangleStyle)

	// the horizontal line at y=35 starts with a 4.8 dash then a 7.2 gap
	tassert.NotEqual(t, uint8(0), s.At(12, 35).A)
	tassert.Equal(t, uint8(0), s.At(17, 35).A)
}

func TestHairlineGrid(t *testing.T) {
	t.Parallel()

	// a dash period far below a pixel strokes solid instead of splitting
	// every line into billions of pieces
	start := time.Now()
	render(t, gctarget.RectangleStyle{FillColor: "none", StrokeColor: "red", LineWidth: 1e-7})
	tassert.True(t, time.Since(start) < 30*time.Second)
}

func TestFill(t *testing.T) {
	t.Parallel()

	s := render(t, gctarget.RectangleStyle{FillColor: "rgba(0, 0, 255, 0.5)", StrokeColor: "yellow", LineWidth: 3})
	c := s.At(20, 15)
	tassert.NotEqual(t, uint8(0), c.A)
	tassert.Greater(t, c.B, c.R)
}

func TestStrokeNone(t *testing.T) {
	t.Parallel()

	s := render(t, gctarget.RectangleStyle{FillColor: "none", StrokeColor: "none", LineWidth: 3})
	img := s.Image()
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatalf("expected a blank image, pixel %d has alpha %d", i/4, img.Pix[i])
		}
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()

	s := gcpng.New(60, 40)
	err := gcoverlay.DrawLabel(s, "W", 10, 30, "red", 0, 0)
	assert.Success(t, err)

	painted := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			if s.At(x, y).A != 0 {
				painted++
			}
		}
	}
	tassert.Greater(t, painted, 20)
	// glyphs sit on the baseline
	tassert.Equal(t, uint8(0), s.At(50, 38).A)
}

func TestEncodePNG(t *testing.T) {
	t.Parallel()

	s := render(t, gctarget.DefaultRectangleStyle)
	b, err := s.Bytes()
	assert.Success(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	assert.Success(t, err)
	tassert.Equal(t, 120, img.Bounds().Dx())
	tassert.Equal(t, 70, img.Bounds().Dy())
	tassert.Equal(t, stdcolor.NRGBA{R: 255, G: 255, A: 255}, stdcolor.NRGBAModel.Convert(img.At(35, 22)))

	tassert.False(t, gcsurface.Available(s))
	err = gcoverlay.DrawMarkerCross(s, 1, 1, 1, "red", 0)
	tassert.ErrorIs(t, err, gcsurface.ErrSurfaceUnavailable)
}
