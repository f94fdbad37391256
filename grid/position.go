// Package grid provides the coordinate and rectangular-range types shared
// by all spreadsheet decoders: zero-based [Position] coordinates, inclusive
// [Dimensions] regions, and the [Range] cell container with dense and
// sparse storage behind one API.
package grid

import (
	"fmt"
	"strconv"
)

// Position is a zero-based (row, column) cell coordinate.
// Ordering is row-major: positions compare by row first, then column.
type Position struct {
	Row uint32
	Col uint32
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col uint32) Position { return Position{Row: row, Col: col} }

// Cmp compares p and q in row-major order, returning -1, 0, or +1.
func (p Position) Cmp(q Position) int {
	switch {
	case p.Row < q.Row:
		return -1
	case p.Row > q.Row:
		return 1
	case p.Col < q.Col:
		return -1
	case p.Col > q.Col:
		return 1
	}
	return 0
}

// String returns "(row,col)".
func (p Position) String() string {
	return "(" + strconv.FormatUint(uint64(p.Row), 10) + "," + strconv.FormatUint(uint64(p.Col), 10) + ")"
}

// InvalidDimensionsError reports a Dimensions constructed with start > end
// on either axis.  This is a contract violation by the caller, not an input
// error: decoders compute dimensions from parsed coordinates and must
// validate them before constructing.
type InvalidDimensionsError struct {
	Start, End Position
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("grid: invalid dimensions: start %v exceeds end %v", e.Start, e.End)
}

// Dimensions is a rectangular cell region, inclusive on both ends.
// Start ≤ End holds component-wise for every Dimensions built through
// NewDimensions; the zero Dimensions is the single cell (0,0).
type Dimensions struct {
	Start Position
	End   Position
}

// NewDimensions builds the region [start, end].  It rejects start.Row >
// end.Row or start.Col > end.Col with an *InvalidDimensionsError rather
// than silently swapping the corners.
func NewDimensions(start, end Position) (Dimensions, error) {
	if start.Row > end.Row || start.Col > end.Col {
		return Dimensions{}, &InvalidDimensionsError{Start: start, End: end}
	}
	return Dimensions{Start: start, End: end}, nil
}

// Width returns the number of columns in the region, always ≥ 1.
func (d Dimensions) Width() uint32 { return d.End.Col - d.Start.Col + 1 }

// Height returns the number of rows in the region, always ≥ 1.
func (d Dimensions) Height() uint32 { return d.End.Row - d.Start.Row + 1 }

// Len returns Width × Height, the number of addressable positions.
func (d Dimensions) Len() uint64 {
	return uint64(d.Width()) * uint64(d.Height())
}

// Contains reports whether (row, col) falls inside the region, inclusively
// on both axes.
func (d Dimensions) Contains(row, col uint32) bool {
	return row >= d.Start.Row && row <= d.End.Row &&
		col >= d.Start.Col && col <= d.End.Col
}

// ContainsPos is Contains for a Position.
func (d Dimensions) ContainsPos(p Position) bool {
	return d.Contains(p.Row, p.Col)
}

// String returns "start..end", e.g. "(0,0)..(2,3)".
func (d Dimensions) String() string {
	return d.Start.String() + ".." + d.End.String()
}
