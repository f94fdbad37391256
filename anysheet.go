package anysheet

import (
	"bytes"
	"io"
	"os"

	"github.com/skiftan/anysheet/grid"
	"github.com/skiftan/anysheet/value"
)

// AutoWorkbook is the auto-detecting facade over the registered decoders.
// Opening runs a fixed progression — unopened, detecting, then either
// opened or failed — and the two outcomes are terminal: a returned
// AutoWorkbook is always in the opened state with its decoder chosen, and
// a failure is returned as a *Error instead of a half-open session.
type AutoWorkbook struct {
	format FileFormat
	rd     Reader
	closer io.Closer // file handle when opened by name, else nil
}

// AutoWorkbook satisfies the same contract it dispatches to.
var _ Reader = (*AutoWorkbook)(nil)

// Open opens the named spreadsheet file, detecting its format.  The caller
// must Close the returned workbook to release the file handle.
func Open(name string) (*AutoWorkbook, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, NewIoError(err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, NewIoError(err)
	}
	wb, err := OpenReader(f, st.Size())
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	wb.closer = f
	return wb, nil
}

// OpenBytes opens a spreadsheet held in memory.
func OpenBytes(b []byte) (*AutoWorkbook, error) {
	return OpenReader(bytes.NewReader(b), int64(len(b)))
}

// OpenReader opens a spreadsheet from a finite, addressable byte source.
// size must be the total byte length of the data.
//
// Detection is two-phase: the leading bytes pick the candidate (Detect),
// then ZIP containers are resolved by their marker member (DetectArchive)
// and OLE2 containers are confirmed against their stream table
// (DetectCompound).  The matching registered decoder is then chosen, once;
// every failure along the way surfaces as a *Error.
func OpenReader(r io.ReaderAt, size int64) (*AutoWorkbook, error) {
	var prefix [PeekSize]byte
	n, err := r.ReadAt(prefix[:], 0)
	if err != nil && err != io.EOF {
		return nil, NewIoError(err)
	}

	format := Detect(prefix[:n])
	switch {
	case format == FormatUnknown && bytes.HasPrefix(prefix[:n], zipSignature):
		format, err = DetectArchive(r, size)
		if err != nil {
			return nil, generalize(err)
		}
	case format == FormatXls:
		format, err = DetectCompound(r)
		if err != nil {
			return nil, generalize(err)
		}
	}
	if format == FormatUnknown {
		return nil, NewMsgError("unrecognized spreadsheet format")
	}

	open, ok := decoderFor(format)
	if !ok {
		return nil, NewMsgError("no decoder registered for %s (missing import of the decoder package?)", format)
	}
	rd, err := open(r, size)
	if err != nil {
		return nil, generalize(err)
	}
	return &AutoWorkbook{format: format, rd: rd}, nil
}

// Format returns the detected file format.
func (wb *AutoWorkbook) Format() FileFormat { return wb.format }

// Metadata returns the workbook's sheet list in tab order.
func (wb *AutoWorkbook) Metadata() *Metadata { return wb.rd.Metadata() }

// SheetNames returns the sheet names in tab order.
func (wb *AutoWorkbook) SheetNames() []string { return wb.rd.SheetNames() }

// WorksheetRange returns the named sheet's cells.
func (wb *AutoWorkbook) WorksheetRange(name string) (*grid.Range[value.Data], error) {
	rng, err := wb.rd.WorksheetRange(name)
	if err != nil {
		return nil, wb.lift(err)
	}
	return rng, nil
}

// WorksheetRangeAt returns the cells of the sheet at the given zero-based
// tab position.
func (wb *AutoWorkbook) WorksheetRangeAt(idx int) (*grid.Range[value.Data], error) {
	rng, err := wb.rd.WorksheetRangeAt(idx)
	if err != nil {
		return nil, wb.lift(err)
	}
	return rng, nil
}

// WorksheetRangeRef returns the named sheet's cells by reference when the
// chosen decoder supports zero-copy access, and fails with a Msg error
// when it does not.
func (wb *AutoWorkbook) WorksheetRangeRef(name string) (*grid.Range[value.DataRef], error) {
	rr, ok := wb.rd.(ReaderRef)
	if !ok {
		return nil, NewMsgError("%s decoder does not support by-reference ranges", wb.format)
	}
	rng, err := rr.WorksheetRangeRef(name)
	if err != nil {
		return nil, wb.lift(err)
	}
	return rng, nil
}

// Close releases the underlying file handle.  It is a no-op for workbooks
// opened from memory or a caller-owned byte source.
func (wb *AutoWorkbook) Close() error {
	if wb.closer != nil {
		return wb.closer.Close()
	}
	return nil
}

// lift converts a decoder error to the unifying type, but passes
// sheet-lookup failures through untouched: a missing sheet is a usage
// error, not a decode failure.
func (wb *AutoWorkbook) lift(err error) error {
	if _, ok := err.(*SheetNotFoundError); ok {
		return err
	}
	return generalize(err)
}
