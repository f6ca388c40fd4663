package gcgrid_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/gridclick/gcgrid"
	"oss.terrastruct.com/gridclick/lib/geo"
)

func TestPointsCount(t *testing.T) {
	t.Parallel()

	box := geo.NewBox(geo.NewPoint(3, 7), 120, 80)
	for rows := 1; rows <= 6; rows++ {
		for columns := 1; columns <= 6; columns++ {
			for _, a := range gcgrid.Alignments() {
				g := gcgrid.New(rows, columns, a)
				points := gcgrid.Points(box, g)
				assert.Equalf(t, rows*columns, len(points), "%v", g)
				assert.Equal(t, g.Len(), len(points))
			}
		}
	}
}

func TestPointsDefaultGridIsCenter(t *testing.T) {
	t.Parallel()

	box := geo.NewBox(geo.NewPoint(10, 20), 100, 40)
	points := gcgrid.Points(box, gcgrid.Default())
	assert.Equal(t, 1, len(points))
	assert.True(t, points[0].Equals(box.Center()))
	assert.Empty(t, gcgrid.InteriorLines(box, gcgrid.Default()))
}

func TestPoints2x2Center(t *testing.T) {
	t.Parallel()

	box := geo.NewBox(geo.NewPoint(0, 0), 100, 50)
	points := gcgrid.Points(box, gcgrid.New(2, 2, gcgrid.MiddleCenter))
	expected := geo.Points{
		geo.NewPoint(25, 12.5),
		geo.NewPoint(75, 12.5),
		geo.NewPoint(25, 37.5),
		geo.NewPoint(75, 37.5),
	}
	assert.True(t, expected.Equals(points), points.ToString())
}

func TestPointsCorners(t *testing.T) {
	t.Parallel()

	box := geo.NewBox(geo.NewPoint(5, 5), 90, 60)
	g := gcgrid.New(3, 3, gcgrid.TopLeft)
	cells := gcgrid.Cells(box, g)

	topLeft := gcgrid.Points(box, g)
	for i, cell := range cells {
		assert.True(t, topLeft[i].Equals(cell.TopLeft), "cell %d: %s", i, topLeft[i].ToString())
	}

	g.Alignment = gcgrid.BottomRight
	bottomRight := gcgrid.Points(box, g)
	for i, cell := range cells {
		assert.True(t, bottomRight[i].Equals(geo.NewPoint(cell.Right(), cell.Bottom())), "cell %d: %s", i, bottomRight[i].ToString())
	}
}

func TestPointsAlignmentAxes(t *testing.T) {
	t.Parallel()

	box := geo.NewBox(geo.NewPoint(0, 0), 10, 10)
	tcs := []struct {
		alignment gcgrid.Alignment
		exp       *geo.Point
	}{
		{gcgrid.TopLeft, geo.NewPoint(0, 0)},
		{gcgrid.TopCenter, geo.NewPoint(5, 0)},
		{gcgrid.TopRight, geo.NewPoint(10, 0)},
		{gcgrid.MiddleLeft, geo.NewPoint(0, 5)},
		{gcgrid.MiddleCenter, geo.NewPoint(5, 5)},
		{gcgrid.MiddleRight, geo.NewPoint(10, 5)},
		{gcgrid.BottomLeft, geo.NewPoint(0, 10)},
		{gcgrid.BottomCenter, geo.NewPoint(5, 10)},
		{gcgrid.BottomRight, geo.NewPoint(10, 10)},
		{"diagonal", geo.NewPoint(5, 5)},
		{"", geo.NewPoint(5, 5)},
		{"TopLeft", geo.NewPoint(5, 5)},
	}
	for _, tc := range tcs {
		tc := tc
		t.Run(fmt.Sprintf("%q", tc.alignment), func(t *testing.T) {
			t.Parallel()
			points := gcgrid.Points(box, gcgrid.New(1, 1, tc.alignment))
			assert.True(t, tc.exp.Equals(points[0]), points[0].ToString())
		})
	}
}

func TestPointsIdempotent(t *testing.T) {
	t.Parallel()

	box := geo.NewBox(geo.NewPoint(0.1, 0.2), 333.3, 77.7)
	g := gcgrid.New(7, 3, gcgrid.BottomCenter)
	assert.True(t, gcgrid.Points(box, g).Equals(gcgrid.Points(box, g)))
}

func TestPointsNonPositiveCounts(t *testing.T) {
	t.Parallel()

	box := geo.NewBox(geo.NewPoint(0, 0), 100, 50)
	for _, g := range []gcgrid.Grid{
		gcgrid.New(0, 0, gcgrid.MiddleCenter),
		gcgrid.New(-3, 1, gcgrid.MiddleCenter),
		gcgrid.New(1, -1, gcgrid.MiddleCenter),
	} {
		points := gcgrid.Points(box, g)
		assert.Equal(t, 1, len(points))
		assert.True(t, points[0].Equals(geo.NewPoint(50, 25)))
		assert.Empty(t, gcgrid.InteriorLines(box, g))
	}
}

func TestPointsDegenerate(t *testing.T) {
	t.Parallel()

	box := geo.NewBox(geo.NewPoint(12, 34), 0, 0)
	points := gcgrid.Points(box, gcgrid.New(3, 4, gcgrid.BottomRight))
	assert.Equal(t, 12, len(points))
	for _, p := range points {
		assert.True(t, p.Equals(geo.NewPoint(12, 34)))
	}

	// negative sizes mirror the grid instead of failing
	box = geo.NewBox(geo.NewPoint(100, 100), -100, -50)
	points = gcgrid.Points(box, gcgrid.New(1, 2, gcgrid.TopLeft))
	assert.True(t, geo.Points{geo.NewPoint(100, 100), geo.NewPoint(50, 100)}.Equals(points), points.ToString())
}

func TestInteriorLines(t *testing.T) {
	t.Parallel()

	box := geo.NewBox(geo.NewPoint(10, 20), 90, 60)
	lines := gcgrid.InteriorLines(box, gcgrid.New(3, 2, gcgrid.MiddleCenter))
	assert.Equal(t, 3, len(lines))

	exp := []*geo.Segment{
		geo.NewSegment(geo.NewPoint(10, 40), geo.NewPoint(100, 40)),
		geo.NewSegment(geo.NewPoint(10, 60), geo.NewPoint(100, 60)),
		geo.NewSegment(geo.NewPoint(55, 20), geo.NewPoint(55, 80)),
	}
	for i := range exp {
		assert.True(t, exp[i].Equals(*lines[i]), lines[i].ToString())
	}

	for rows := 1; rows <= 5; rows++ {
		for columns := 1; columns <= 5; columns++ {
			lines := gcgrid.InteriorLines(box, gcgrid.New(rows, columns, gcgrid.MiddleCenter))
			var horizontal, vertical int
			for _, l := range lines {
				if l.IsHorizontal() {
					horizontal++
				} else {
					vertical++
				}
			}
			assert.Equal(t, rows-1, horizontal)
			assert.Equal(t, columns-1, vertical)
		}
	}
}

func TestIndex(t *testing.T) {
	t.Parallel()

	box := geo.NewBox(geo.NewPoint(0, 0), 40, 30)
	g := gcgrid.New(3, 4, gcgrid.TopLeft)
	points := gcgrid.Points(box, g)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			i := g.Index(row, col)
			assert.True(t, points[i].Equals(geo.NewPoint(float64(col)*10, float64(row)*10)))
			r, c := g.Cell(i)
			assert.Equal(t, row, r)
			assert.Equal(t, col, c)
		}
	}
}
