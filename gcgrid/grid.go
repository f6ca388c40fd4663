// Package gcgrid computes click targets and separator lines for a rows x columns
// subdivision of a rectangle. Everything here is a pure function of its inputs.
package gcgrid

import (
	"fmt"

	"oss.terrastruct.com/util-go/go2"
)

// MAX_DIMENSION bounds Rows and Columns accepted from user input. The engine
// itself allocates Rows*Columns points, so callers must keep the product small
// enough to fit in an int and in memory.
const MAX_DIMENSION = 1000

type Grid struct {
	Rows      int       `json:"rows"`
	Columns   int       `json:"columns"`
	Alignment Alignment `json:"alignment"`
}

// Default is a single cell with its point at the rectangle's center.
func Default() Grid {
	return Grid{Rows: 1, Columns: 1, Alignment: MiddleCenter}
}

func New(rows, columns int, alignment Alignment) Grid {
	return Grid{Rows: rows, Columns: columns, Alignment: alignment}
}

// Normalize coerces non-positive rows and columns to 1.
// The alignment is left untouched so that unknown names keep falling back to center.
func (g Grid) Normalize() Grid {
	g.Rows = go2.Max(g.Rows, 1)
	g.Columns = go2.Max(g.Columns, 1)
	return g
}

// Len is the number of points the grid yields.
func (g Grid) Len() int {
	g = g.Normalize()
	return g.Rows * g.Columns
}

// Index maps a cell to its position in the row-major point sequence.
func (g Grid) Index(row, col int) int {
	g = g.Normalize()
	return row*g.Columns + col
}

// Cell is the inverse of Index.
func (g Grid) Cell(i int) (row, col int) {
	g = g.Normalize()
	return i / g.Columns, i % g.Columns
}

func (g Grid) String() string {
	return fmt.Sprintf("%dx%d %s", g.Rows, g.Columns, g.Alignment)
}
