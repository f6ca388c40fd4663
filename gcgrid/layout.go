package gcgrid

import (
	"oss.terrastruct.com/gridclick/lib/geo"
)

// Cells returns the rows*columns equal cells of box in row-major order.
func Cells(box *geo.Box, g Grid) []*geo.Box {
	g = g.Normalize()
	cellWidth := box.Width / float64(g.Columns)
	cellHeight := box.Height / float64(g.Rows)

	cells := make([]*geo.Box, 0, g.Rows*g.Columns)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			cellLeft := box.TopLeft.X + float64(col)*cellWidth
			cellTop := box.TopLeft.Y + float64(row)*cellHeight
			cells = append(cells, geo.NewBox(geo.NewPoint(cellLeft, cellTop), cellWidth, cellHeight))
		}
	}
	return cells
}

// Points picks one point per cell according to the grid's alignment.
// The result always holds exactly rows*columns points, row 0 first.
func Points(box *geo.Box, g Grid) geo.Points {
	h, v := g.Alignment.Axes()
	cells := Cells(box, g)

	points := make(geo.Points, 0, len(cells))
	for _, cell := range cells {
		points = append(points, alignInCell(cell, h, v))
	}
	return points
}

func alignInCell(cell *geo.Box, h Horizontal, v Vertical) *geo.Point {
	x := cell.TopLeft.X + cell.Width/2
	switch h {
	case Left:
		x = cell.TopLeft.X
	case Right:
		x = cell.TopLeft.X + cell.Width
	}

	y := cell.TopLeft.Y + cell.Height/2
	switch v {
	case Top:
		y = cell.TopLeft.Y
	case Bottom:
		y = cell.TopLeft.Y + cell.Height
	}
	return geo.NewPoint(x, y)
}

// InteriorLines returns the separators between cells, never the outer border:
// rows-1 horizontal segments top to bottom, then columns-1 vertical segments left to right.
func InteriorLines(box *geo.Box, g Grid) []*geo.Segment {
	g = g.Normalize()
	x, y := box.TopLeft.X, box.TopLeft.Y

	lines := make([]*geo.Segment, 0, g.Rows-1+g.Columns-1)
	for i := 1; i < g.Rows; i++ {
		rowY := y + float64(i)*box.Height/float64(g.Rows)
		lines = append(lines, geo.NewSegment(
			geo.NewPoint(x, rowY),
			geo.NewPoint(x+box.Width, rowY),
		))
	}
	for j := 1; j < g.Columns; j++ {
		columnX := x + float64(j)*box.Width/float64(g.Columns)
		lines = append(lines, geo.NewSegment(
			geo.NewPoint(columnX, y),
			geo.NewPoint(columnX, y+box.Height),
		))
	}
	return lines
}
