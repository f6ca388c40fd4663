package gcsurface_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/gridclick/gcrenderers/gcsurface"
	"oss.terrastruct.com/gridclick/lib/geo"
)

func TestPainterSaveRestore(t *testing.T) {
	t.Parallel()

	p := gcsurface.NewPainter()
	before := p.State()

	assert.Nil(t, p.Save())
	p.SetLineWidth(7)
	p.SetStrokeColor("red")
	p.SetLineDash([]float64{1, 2})
	p.SetShadow(gcsurface.Shadow{Color: "black", Blur: 3})
	p.SetFont(gcsurface.Font{Family: "sans-serif", Size: 16})
	assert.Equal(t, 1, p.Depth())
	assert.Equal(t, []float64{1, 2}, p.State().LineDash)

	p.Restore()
	assert.Equal(t, 0, p.Depth())
	assert.True(t, before.Equals(p.State()))

	// unbalanced restores are ignored
	p.Restore()
	assert.True(t, before.Equals(p.State()))
}

func TestPainterSavedDashIsCopied(t *testing.T) {
	t.Parallel()

	p := gcsurface.NewPainter()
	dash := []float64{4, 6}
	p.SetLineDash(dash)
	assert.Nil(t, p.Save())
	dash[0] = 100
	p.SetLineDash(nil)
	p.Restore()
	assert.Equal(t, []float64{4, 6}, p.State().LineDash)
}

func TestPainterSetters(t *testing.T) {
	t.Parallel()

	p := gcsurface.NewPainter()
	p.SetLineWidth(0)
	p.SetLineWidth(-2)
	p.SetLineWidth(math.Inf(1))
	p.SetLineWidth(math.NaN())
	assert.Equal(t, 1.0, p.State().LineWidth)
	p.SetLineWidth(0.5)
	assert.Equal(t, 0.5, p.State().LineWidth)

	p.SetLineDash([]float64{3})
	assert.Equal(t, []float64{3, 3}, p.State().LineDash)
	p.SetLineDash([]float64{-1, 2})
	assert.Equal(t, []float64{3, 3}, p.State().LineDash, "negative dashes are ignored")
	p.SetLineDash([]float64{})
	assert.Nil(t, p.State().LineDash)

	assert.Equal(t, "16px sans-serif", gcsurface.Font{Family: "sans-serif", Size: 16}.CSS())
	assert.False(t, gcsurface.DefaultPaintState().Shadow.Visible())
	assert.True(t, gcsurface.Shadow{Color: "black", Blur: 3}.Visible())
	assert.False(t, gcsurface.Shadow{Color: "none", Blur: 3}.Visible())
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	var p gcsurface.Path
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.MoveTo(0, 5)
	p.LineTo(10, 5)
	p.Rect(20, 20, 10, 5)
	p.ClosePath()

	pls := p.Flatten()
	assert.Equal(t, 3, len(pls))
	assert.False(t, pls[0].Closed)
	assert.True(t, pls[0].Points.Equals(geo.Points{geo.NewPoint(0, 0), geo.NewPoint(10, 0)}))
	assert.True(t, pls[2].Closed)
	assert.Equal(t, 4, len(pls[2].Points))

	p.BeginPath()
	assert.True(t, p.Empty())
	p.MoveTo(1, 1)
	assert.Empty(t, p.Flatten(), "a lone MoveTo paints nothing")
}

func TestFlattenArc(t *testing.T) {
	t.Parallel()

	var p gcsurface.Path
	p.Arc(50, 50, 10, 0, 2*math.Pi)
	p.ClosePath()
	pls := p.Flatten()
	assert.Equal(t, 1, len(pls))
	assert.True(t, pls[0].Closed)
	assert.GreaterOrEqual(t, len(pls[0].Points), 33)
	for _, pt := range pls[0].Points {
		assert.InDelta(t, 10, pt.DistanceTo(geo.NewPoint(50, 50)), 1e-9)
	}

	assert.Equal(t, 2*math.Pi, gcsurface.Sweep(0, 2*math.Pi))
	assert.InDelta(t, 1.5*math.Pi, gcsurface.Sweep(0, -math.Pi/2), 1e-12)
}

func TestDash(t *testing.T) {
	t.Parallel()

	pl := gcsurface.Polyline{Points: geo.Points{geo.NewPoint(0, 0), geo.NewPoint(25, 0)}}
	pieces := gcsurface.Dash(pl, []float64{4, 6})
	assert.Equal(t, 3, len(pieces))
	assertPoints(t, geo.Points{geo.NewPoint(0, 0), geo.NewPoint(4, 0)}, pieces[0])
	assertPoints(t, geo.Points{geo.NewPoint(10, 0), geo.NewPoint(14, 0)}, pieces[1])
	assertPoints(t, geo.Points{geo.NewPoint(20, 0), geo.NewPoint(24, 0)}, pieces[2])

	solid := gcsurface.Dash(pl, nil)
	assert.Equal(t, 1, len(solid))
	assert.True(t, solid[0].Equals(pl.Points))
}

func TestResolvable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []float64{4, 6}, gcsurface.Resolvable([]float64{4, 6}, 1))
	assert.Equal(t, []float64{0.5, 0.5}, gcsurface.Resolvable([]float64{0.5, 0.5}, 1))
	assert.Nil(t, gcsurface.Resolvable([]float64{0.4, 0.4}, 1))
	assert.Nil(t, gcsurface.Resolvable([]float64{4.8, 7.2}, 16))
	assert.Nil(t, gcsurface.Resolvable(nil, 1))
}

func TestDashAcrossCorners(t *testing.T) {
	t.Parallel()

	pl := gcsurface.Polyline{
		Points: geo.Points{geo.NewPoint(0, 0), geo.NewPoint(3, 0), geo.NewPoint(3, 3)},
	}
	pieces := gcsurface.Dash(pl, []float64{4, 1})
	assert.Equal(t, 2, len(pieces))
	assertPoints(t, geo.Points{geo.NewPoint(0, 0), geo.NewPoint(3, 0), geo.NewPoint(3, 1)}, pieces[0])
	assertPoints(t, geo.Points{geo.NewPoint(3, 2), geo.NewPoint(3, 3)}, pieces[1])
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	r := gcsurface.NewRecorder()
	assert.True(t, gcsurface.Available(r))
	r.Calls = nil

	assert.Nil(t, r.Save())
	r.SetStrokeColor("red")
	r.BeginPath()
	r.MoveTo(0, 0)
	r.LineTo(1, 1)
	r.Stroke()
	r.Restore()

	assert.Equal(t, []string{"Save", "SetStrokeColor", "BeginPath", "MoveTo", "LineTo", "Stroke", "Restore"}, r.Methods())
	strokes := r.Filter("Stroke")
	assert.Equal(t, 1, len(strokes))
	assert.Equal(t, "red", strokes[0].State.StrokeColor)
	assert.Equal(t, "LineTo(1, 1)", r.Calls[4].String())

	r.Unavailable = true
	assert.ErrorIs(t, r.Save(), gcsurface.ErrSurfaceUnavailable)
	assert.False(t, gcsurface.Available(r))
	assert.False(t, gcsurface.Available(nil))
}

func assertPoints(t *testing.T, exp, got geo.Points) {
	t.Helper()
	if !assert.Equal(t, len(exp), len(got), got.ToString()) {
		return
	}
	for i := range exp {
		assert.InDelta(t, exp[i].X, got[i].X, 1e-9, got.ToString())
		assert.InDelta(t, exp[i].Y, got[i].Y, 1e-9, got.ToString())
	}
}
