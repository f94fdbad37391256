package grid

import (
	"iter"
	"slices"
)

// Cell pairs a Position with a decoder-produced value.  It is immutable
// once constructed; equality is value equality on both fields.
type Cell[T any] struct {
	Pos Position
	Val T
}

// NewCell is shorthand for Cell[T]{Pos: pos, Val: val}.
func NewCell[T any](pos Position, val T) Cell[T] {
	return Cell[T]{Pos: pos, Val: val}
}

// Range is a rectangular container of cells over a Dimensions region.
//
// Storage is one of two strategies chosen at construction and invisible to
// callers except through the absence rules of GetValue:
//
//   - dense ([NewDense]): every position in the region holds a concrete
//     stored value, so GetValue succeeds everywhere inside the region.
//   - sparse ([NewSparse]): only the supplied cells are stored, and the
//     region is their bounding box.  GetValue on an unpopulated position
//     inside the box reports absence — "no cell recorded", which decoders
//     keep distinct from "cell recorded as empty".
//
// Both strategies iterate their recorded cells in row-major order.
// The zero Range is empty: zero width, zero height, no cells.
type Range[T any] struct {
	dims  Dimensions
	valid bool      // false for the empty range; dims is meaningless then
	dense []T       // row-major grid, nil under sparse storage
	cells []Cell[T] // row-major sorted, nil under dense storage
}

// NewDense builds a dense range over dims.  fill produces the stored value
// for each position, visited in row-major order; a nil fill stores the zero
// value of T everywhere.  Every position in dims is recorded, so absence is
// represented by the default value, never by omission.
//
// dims.Len() values are allocated up front.  Decoders cap parsed
// coordinates at their format's maxima before constructing, so a corrupt
// dimension record cannot translate into an oversized allocation here.
func NewDense[T any](dims Dimensions, fill func(Position) T) Range[T] {
	data := make([]T, dims.Len())
	if fill != nil {
		i := 0
		for row := dims.Start.Row; ; row++ {
			for col := dims.Start.Col; ; col++ {
				data[i] = fill(Position{Row: row, Col: col})
				i++
				if col == dims.End.Col {
					break
				}
			}
			if row == dims.End.Row {
				break
			}
		}
	}
	return Range[T]{dims: dims, valid: true, dense: data}
}

// NewSparse builds a sparse range from an unordered sequence of cells.  Its
// dimensions are the minimal bounding box covering all supplied positions,
// so no cell can lie outside the region by construction.  An empty input
// yields the empty range.  When the same position appears more than once,
// the last occurrence wins.
//
// The input slice is not retained.
func NewSparse[T any](cells []Cell[T]) Range[T] {
	if len(cells) == 0 {
		return Range[T]{}
	}
	sorted := slices.Clone(cells)
	slices.SortStableFunc(sorted, func(a, b Cell[T]) int {
		return a.Pos.Cmp(b.Pos)
	})
	// Drop duplicate positions, keeping the later occurrence.
	out := sorted[:0]
	for i, c := range sorted {
		if i+1 < len(sorted) && sorted[i+1].Pos == c.Pos {
			continue
		}
		out = append(out, c)
	}
	dims := Dimensions{Start: out[0].Pos, End: out[0].Pos}
	for _, c := range out {
		if c.Pos.Col < dims.Start.Col {
			dims.Start.Col = c.Pos.Col
		}
		if c.Pos.Col > dims.End.Col {
			dims.End.Col = c.Pos.Col
		}
	}
	// Rows are already ordered after the sort.
	dims.Start.Row = out[0].Pos.Row
	dims.End.Row = out[len(out)-1].Pos.Row
	return Range[T]{dims: dims, valid: true, cells: out}
}

// IsEmpty reports whether the range holds no cells at all.
func (r Range[T]) IsEmpty() bool { return !r.valid }

// Dims returns the range's dimensions.  ok is false for the empty range,
// whose dimensions are degenerate (zero area).
func (r Range[T]) Dims() (Dimensions, bool) { return r.dims, r.valid }

// Width returns the number of columns spanned, 0 for the empty range.
func (r Range[T]) Width() uint32 {
	if !r.valid {
		return 0
	}
	return r.dims.Width()
}

// Height returns the number of rows spanned, 0 for the empty range.
func (r Range[T]) Height() uint32 {
	if !r.valid {
		return 0
	}
	return r.dims.Height()
}

// Size returns Width × Height.
func (r Range[T]) Size() uint64 {
	return uint64(r.Width()) * uint64(r.Height())
}

// CellCount returns the number of recorded cells: every position for dense
// storage, the supplied cells for sparse storage.
func (r Range[T]) CellCount() int {
	switch {
	case !r.valid:
		return 0
	case r.dense != nil:
		return len(r.dense)
	default:
		return len(r.cells)
	}
}

// GetValue returns the value recorded at pos.  ok is false when pos lies
// outside the dimensions, and — under sparse storage — when pos lies inside
// them but no cell was recorded there.  Out-of-range data is never
// fabricated.
func (r Range[T]) GetValue(pos Position) (T, bool) {
	var zero T
	if !r.valid || !r.dims.ContainsPos(pos) {
		return zero, false
	}
	if r.dense != nil {
		i := uint64(pos.Row-r.dims.Start.Row)*uint64(r.dims.Width()) +
			uint64(pos.Col-r.dims.Start.Col)
		return r.dense[i], true
	}
	i, found := slices.BinarySearchFunc(r.cells, pos, func(c Cell[T], p Position) int {
		return c.Pos.Cmp(p)
	})
	if !found {
		return zero, false
	}
	return r.cells[i].Val, true
}

// Get is GetValue for bare coordinates.
func (r Range[T]) Get(row, col uint32) (T, bool) {
	return r.GetValue(Position{Row: row, Col: col})
}

// Cells iterates over the recorded cells in row-major order.  The sequence
// is finite and restartable; both storage strategies yield the same
// ordering.
func (r Range[T]) Cells() iter.Seq2[Position, T] {
	return func(yield func(Position, T) bool) {
		if !r.valid {
			return
		}
		if r.dense != nil {
			i := 0
			for row := r.dims.Start.Row; ; row++ {
				for col := r.dims.Start.Col; ; col++ {
					if !yield(Position{Row: row, Col: col}, r.dense[i]) {
						return
					}
					i++
					if col == r.dims.End.Col {
						break
					}
				}
				if row == r.dims.End.Row {
					break
				}
			}
			return
		}
		for _, c := range r.cells {
			if !yield(c.Pos, c.Val) {
				return
			}
		}
	}
}

// Dense returns a dense copy of the range over the same dimensions.
// Unrecorded positions are filled with the zero value of T, collapsing the
// sparse "no cell recorded" state into the default value.  A dense range is
// returned unchanged; the conversion is a single pass over the recorded
// cells, linear in the region size.
func (r Range[T]) Dense() Range[T] {
	if !r.valid || r.dense != nil {
		return r
	}
	out := NewDense[T](r.dims, nil)
	w := uint64(r.dims.Width())
	for _, c := range r.cells {
		i := uint64(c.Pos.Row-r.dims.Start.Row)*w + uint64(c.Pos.Col-r.dims.Start.Col)
		out.dense[i] = c.Val
	}
	return out
}
