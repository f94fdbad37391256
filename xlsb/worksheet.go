package xlsb

import (
	"bytes"
	"fmt"
	"io"

	"github.com/skiftan/anysheet"
	"github.com/skiftan/anysheet/datefmt"
	"github.com/skiftan/anysheet/grid"
	"github.com/skiftan/anysheet/internal/biff12"
	"github.com/skiftan/anysheet/value"
)

// Sheet limits of the format.  Anything beyond them in the stream means
// corruption, not a very large sheet.
const (
	maxRow = 0xFFFFF // 1,048,576 rows
	maxCol = 0x3FFF  // 16,384 columns
)

// parseSheetPart decodes one worksheet part into its recorded cells and
// merged regions.  Cells come back in stream order; the caller builds the
// Range, which sorts and deduplicates.
//
// Blank cell records are kept as empty values so that "present but empty"
// stays distinguishable from "never recorded" in sparse ranges.
func parseSheetPart(data []byte, st *sharedStrings, classes map[int]datefmt.Class, date1904 bool) ([]grid.Cell[value.DataRef], []grid.Dimensions, error) {
	var (
		cells  []grid.Cell[value.DataRef]
		merges []grid.Dimensions
		row    uint32
	)
	corrupt := func(what string, err error) error {
		return &anysheet.XlsbError{Kind: anysheet.ErrCorrupt, Detail: what, Err: err}
	}

	sr := biff12.NewStreamReader(bytes.NewReader(data))
	for {
		id, payload, err := sr.Next()
		if err == io.EOF {
			return cells, merges, nil
		}
		if err != nil {
			return nil, nil, corrupt("worksheet part", err)
		}

		switch id {
		case biff12.Row:
			p := biff12.NewPayloadReader(payload)
			r, err := p.Uint32()
			if err != nil {
				return nil, nil, corrupt("ROW record", err)
			}
			if r > maxRow {
				return nil, nil, corrupt(fmt.Sprintf("row index %d out of range", r), nil)
			}
			row = r

		case biff12.Blank, biff12.Num, biff12.BoolErr, biff12.Bool, biff12.Float,
			biff12.String, biff12.FormulaString, biff12.FormulaFloat,
			biff12.FormulaBool, biff12.FormulaBoolErr:
			cell, err := parseCell(id, payload, row, st, classes, date1904)
			if err != nil {
				return nil, nil, err
			}
			cells = append(cells, cell)

		case biff12.MergeCell:
			dims, err := parseMergeCell(payload)
			if err != nil {
				return nil, nil, err
			}
			merges = append(merges, dims)
		}
	}
}

// parseCell decodes one cell record.  Every cell record starts with the
// column and a style reference (24-bit index plus flag byte); the style
// decides whether a numeric value is a plain number, a date, or a
// duration.
func parseCell(id int, payload []byte, row uint32, st *sharedStrings, classes map[int]datefmt.Class, date1904 bool) (grid.Cell[value.DataRef], error) {
	var zero grid.Cell[value.DataRef]
	corrupt := func(what string, err error) error {
		return &anysheet.XlsbError{Kind: anysheet.ErrCorrupt, Detail: what, Err: err}
	}

	p := biff12.NewPayloadReader(payload)
	col, err := p.Uint32()
	if err != nil {
		return zero, corrupt("cell record column", err)
	}
	if col > maxCol {
		return zero, corrupt(fmt.Sprintf("column index %d out of range", col), nil)
	}
	styleRef, err := p.Uint32()
	if err != nil {
		return zero, corrupt("cell record style", err)
	}
	xf := int(styleRef & 0xFFFFFF)

	numeric := func(f float64) value.DataRef {
		switch classes[xf] {
		case datefmt.ClassDateTime:
			return value.NewRefDateTime(value.NewExcelDateTime(f, value.SerialDateTime, date1904))
		case datefmt.ClassDuration:
			return value.NewRefDateTime(value.NewExcelDateTime(f, value.SerialDuration, date1904))
		default:
			return value.NewRefFloat(f)
		}
	}

	var v value.DataRef
	switch id {
	case biff12.Blank:
		v = value.EmptyRef()

	case biff12.Num:
		f, isInt, err := p.RkNumber()
		if err != nil {
			return zero, corrupt("NUM record", err)
		}
		if isInt && classes[xf] == datefmt.ClassNone {
			v = value.NewRefInt(int64(f))
		} else {
			v = numeric(f)
		}

	case biff12.Float, biff12.FormulaFloat:
		f, err := p.Double()
		if err != nil {
			return zero, corrupt("FLOAT record", err)
		}
		v = numeric(f)

	case biff12.Bool, biff12.FormulaBool:
		b, err := p.Uint8()
		if err != nil {
			return zero, corrupt("BOOL record", err)
		}
		v = value.NewRefBool(b != 0)

	case biff12.BoolErr, biff12.FormulaBoolErr:
		code, err := p.Uint8()
		if err != nil {
			return zero, corrupt("BOOLERR record", err)
		}
		v = value.NewRefCellError(value.CellErrorType(code))

	case biff12.String:
		idx, err := p.Uint32()
		if err != nil {
			return zero, corrupt("STRING record", err)
		}
		s, ok := st.get(idx)
		if !ok {
			return zero, corrupt(fmt.Sprintf("shared string index %d out of range (table has %d)", idx, st.len()), nil)
		}
		v = value.NewRefSharedString(s)

	case biff12.FormulaString:
		s, err := p.XLString()
		if err != nil {
			return zero, corrupt("FORMULA_STRING record", err)
		}
		v = value.NewRefString(s)
	}

	return grid.NewCell(grid.Pos(row, col), v), nil
}

// parseMergeCell decodes a MERGECELL record: rowFirst, rowLast, colFirst,
// colLast, all inclusive.
func parseMergeCell(payload []byte) (grid.Dimensions, error) {
	p := biff12.NewPayloadReader(payload)
	var bounds [4]uint32
	for i := range bounds {
		b, err := p.Uint32()
		if err != nil {
			return grid.Dimensions{}, &anysheet.XlsbError{Kind: anysheet.ErrCorrupt, Detail: "MERGECELL record", Err: err}
		}
		bounds[i] = b
	}
	dims, err := grid.NewDimensions(grid.Pos(bounds[0], bounds[2]), grid.Pos(bounds[1], bounds[3]))
	if err != nil {
		return grid.Dimensions{}, &anysheet.XlsbError{Kind: anysheet.ErrCorrupt, Detail: "MERGECELL record", Err: err}
	}
	return dims, nil
}
