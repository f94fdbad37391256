package xlsb

import (
	"bytes"
	"io"

	"github.com/skiftan/anysheet/datefmt"
	"github.com/skiftan/anysheet/internal/biff12"
)

// parseStyles decodes xl/styles.bin far enough to classify cell formats as
// dates or durations.  Custom number formats (FMT records) are collected
// first, then each XF inside the CELLXFS region is classified by its
// numFmtId.  Only dated XFs end up in the returned map; everything else
// stays a plain number.
func parseStyles(data []byte) (map[int]datefmt.Class, error) {
	fmts := map[int]string{}
	classes := map[int]datefmt.Class{}

	inCellXfs := false
	xfIndex := 0

	sr := biff12.NewStreamReader(bytes.NewReader(data))
	for {
		id, payload, err := sr.Next()
		if err == io.EOF {
			return classes, nil
		}
		if err != nil {
			return nil, err
		}

		switch id {
		case biff12.NumFmt:
			p := biff12.NewPayloadReader(payload)
			fmtID, err := p.Uint16()
			if err != nil {
				return nil, err
			}
			code, err := p.XLString()
			if err != nil {
				return nil, err
			}
			fmts[int(fmtID)] = code
		case biff12.CellXfs:
			inCellXfs = true
		case biff12.CellXfsEnd:
			inCellXfs = false
		case biff12.Xf:
			if !inCellXfs {
				continue // style XFs don't format cells
			}
			p := biff12.NewPayloadReader(payload)
			if err := p.Skip(2); err != nil { // ixfeParent
				return nil, err
			}
			numFmtID, err := p.Uint16()
			if err != nil {
				return nil, err
			}
			if c := datefmt.Classify(int(numFmtID), fmts[int(numFmtID)]); c != datefmt.ClassNone {
				classes[xfIndex] = c
			}
			xfIndex++
		}
	}
}
