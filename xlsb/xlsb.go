// Package xlsb is the concrete decoder for Excel Binary Workbook (.xlsb)
// files.  It implements the anysheet Reader and ReaderRef contracts and
// registers itself with the auto-detecting facade, so a blank import is
// enough to make .xlsb files openable:
//
//	import _ "github.com/skiftan/anysheet/xlsb"
//
// The package can also be used directly:
//
//	wb, err := xlsb.Open("Book1.xlsb")
//	if err != nil { ... }
//	defer wb.Close()
//
//	rng, err := wb.WorksheetRange("Sheet1")
//
// Cell values are typed per the value package: floats whose cell format is
// a date format come back as value.ExcelDateTime serials, elapsed-time
// formats as duration serials, and shared-string cells as text.
// WorksheetRangeRef returns ranges whose string cells share the workbook's
// shared-string table instead of copying it.
package xlsb

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/skiftan/anysheet"
	"github.com/skiftan/anysheet/datefmt"
	"github.com/skiftan/anysheet/grid"
	"github.com/skiftan/anysheet/internal/biff12"
	"github.com/skiftan/anysheet/internal/ziputil"
	"github.com/skiftan/anysheet/value"
)

func init() {
	anysheet.RegisterDecoder(anysheet.FormatXlsb, func(r io.ReaderAt, size int64) (anysheet.Reader, error) {
		return OpenReader(r, size)
	})
}

// sheetEntry pairs a sheet's display name with its zip-internal part
// target, e.g. "worksheets/sheet1.bin".
type sheetEntry struct {
	name   string
	target string
}

// Workbook is an open .xlsb decoder session.  It owns the workbook
// metadata, the shared-string table, and the date-format classification of
// the style table for the session's lifetime.
type Workbook struct {
	zr       *zip.Reader
	closer   io.Closer // file handle when opened by name
	meta     *anysheet.Metadata
	sheets   []sheetEntry
	strings  *sharedStrings        // nil when the workbook has no shared strings
	classes  map[int]datefmt.Class // XF index → date class; only dated XFs present
	date1904 bool
}

// Open opens the named .xlsb file.  The caller must Close the returned
// Workbook to release the file handle.
func Open(name string) (*Workbook, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &anysheet.XlsbError{Kind: anysheet.ErrIo, Detail: "open " + name, Err: err}
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, &anysheet.XlsbError{Kind: anysheet.ErrIo, Detail: "stat " + name, Err: err}
	}
	wb, err := OpenReader(f, st.Size())
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	wb.closer = f
	return wb, nil
}

// OpenReader opens an .xlsb workbook from a finite byte source.  size must
// be the total byte length of the data.
func OpenReader(r io.ReaderAt, size int64) (*Workbook, error) {
	zr, err := ziputil.NewReader(r, size)
	if err != nil {
		return nil, &anysheet.XlsbError{Kind: anysheet.ErrBadSignature, Detail: "not a ZIP container", Err: err}
	}
	wb := &Workbook{zr: zr, meta: &anysheet.Metadata{}}
	if err := wb.parseWorkbook(); err != nil {
		return nil, err
	}
	if err := wb.parseSharedStrings(); err != nil {
		return nil, err
	}
	wb.parseStyles()
	return wb, nil
}

// Close releases the underlying file handle.  It is a no-op for workbooks
// opened from a caller-owned byte source.
func (wb *Workbook) Close() error {
	if wb.closer != nil {
		return wb.closer.Close()
	}
	return nil
}

// Date1904 reports whether the workbook uses the 1904 date system.
func (wb *Workbook) Date1904() bool { return wb.date1904 }

// Metadata returns the workbook's sheet list in tab order.
func (wb *Workbook) Metadata() *anysheet.Metadata { return wb.meta }

// SheetNames returns the sheet names in tab order.
func (wb *Workbook) SheetNames() []string { return wb.meta.SheetNames() }

// WorksheetRange returns the named sheet's cells as owned values.  The
// lookup is case-insensitive, matching how Excel treats sheet names.
func (wb *Workbook) WorksheetRange(name string) (*grid.Range[value.Data], error) {
	entry, ok := wb.findSheet(name)
	if !ok {
		return nil, &anysheet.SheetNotFoundError{Name: name, Index: -1}
	}
	return wb.sheetRange(entry)
}

// WorksheetRangeAt returns the cells of the sheet at the given zero-based
// tab position.
func (wb *Workbook) WorksheetRangeAt(idx int) (*grid.Range[value.Data], error) {
	if idx < 0 || idx >= len(wb.sheets) {
		return nil, &anysheet.SheetNotFoundError{Index: idx}
	}
	return wb.sheetRange(wb.sheets[idx])
}

// WorksheetRangeRef returns the named sheet's cells with string cells
// sharing the workbook's shared-string table.  The range is valid only
// while the Workbook is; use value.DataRef.ToData to keep values beyond
// that.
func (wb *Workbook) WorksheetRangeRef(name string) (*grid.Range[value.DataRef], error) {
	entry, ok := wb.findSheet(name)
	if !ok {
		return nil, &anysheet.SheetNotFoundError{Name: name, Index: -1}
	}
	cells, _, err := wb.sheetCells(entry)
	if err != nil {
		return nil, err
	}
	rng := grid.NewSparse(cells)
	return &rng, nil
}

// MergedRegions returns the merged-cell region list the named sheet
// declares.  Only the list is reported; cells carry the values the file
// stores (the anchor holds the value, satellites are blank).
func (wb *Workbook) MergedRegions(name string) ([]grid.Dimensions, error) {
	entry, ok := wb.findSheet(name)
	if !ok {
		return nil, &anysheet.SheetNotFoundError{Name: name, Index: -1}
	}
	data, err := wb.readPart(entry.target)
	if err != nil {
		return nil, err
	}
	_, merges, err := parseSheetPart(data, wb.strings, wb.classes, wb.date1904)
	if err != nil {
		return nil, err
	}
	return merges, nil
}

var _ anysheet.ReaderRef = (*Workbook)(nil)

// findSheet locates a sheet entry by case-insensitive name.
func (wb *Workbook) findSheet(name string) (sheetEntry, bool) {
	for _, s := range wb.sheets {
		if strings.EqualFold(s.name, name) {
			return s, true
		}
	}
	return sheetEntry{}, false
}

func (wb *Workbook) sheetRange(entry sheetEntry) (*grid.Range[value.Data], error) {
	refs, _, err := wb.sheetCells(entry)
	if err != nil {
		return nil, err
	}
	cells := make([]grid.Cell[value.Data], len(refs))
	for i, c := range refs {
		cells[i] = grid.NewCell(c.Pos, c.Val.ToData())
	}
	rng := grid.NewSparse(cells)
	return &rng, nil
}

func (wb *Workbook) sheetCells(entry sheetEntry) ([]grid.Cell[value.DataRef], []grid.Dimensions, error) {
	data, err := wb.readPart(entry.target)
	if err != nil {
		return nil, nil, err
	}
	return parseSheetPart(data, wb.strings, wb.classes, wb.date1904)
}

// readPart reads a sheet part, resolving the rels target against the xl/
// root.  Absolute targets keep their own path; relative ones live under
// xl/.
func (wb *Workbook) readPart(target string) ([]byte, error) {
	path := strings.TrimPrefix(target, "/")
	if !strings.HasPrefix(path, "xl/") {
		path = "xl/" + path
	}
	data, err := ziputil.ReadFile(wb.zr, path)
	if err != nil {
		return nil, &anysheet.XlsbError{Kind: anysheet.ErrMissingPart, Detail: path, Err: err}
	}
	return data, nil
}

// parseWorkbook reads xl/_rels/workbook.bin.rels and xl/workbook.bin to
// build the sheet list and date-system flag.
func (wb *Workbook) parseWorkbook() error {
	relsData, err := ziputil.ReadFile(wb.zr, "xl/_rels/workbook.bin.rels")
	if err != nil {
		return &anysheet.XlsbError{Kind: anysheet.ErrMissingPart, Detail: "xl/_rels/workbook.bin.rels", Err: err}
	}
	rels, err := parseRels(relsData)
	if err != nil {
		return err
	}

	data, err := ziputil.ReadFile(wb.zr, "xl/workbook.bin")
	if err != nil {
		return &anysheet.XlsbError{Kind: anysheet.ErrMissingPart, Detail: "xl/workbook.bin", Err: err}
	}

	sr := biff12.NewStreamReader(bytes.NewReader(data))
	for {
		id, payload, err := sr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &anysheet.XlsbError{Kind: anysheet.ErrCorrupt, Detail: "workbook part", Err: err}
		}

		switch id {
		case biff12.WorkbookPr:
			// First uint32 is a flags field; bit 3 is f1904DateSystem.
			if len(payload) >= 4 {
				p := biff12.NewPayloadReader(payload)
				flags, _ := p.Uint32()
				wb.date1904 = flags&0x08 != 0
			}
		case biff12.Sheet:
			if err := wb.addSheet(payload, rels); err != nil {
				return err
			}
		case biff12.SheetsEnd:
			return nil
		}
	}
}

// addSheet decodes one BrtBundleSh record: hsState flags, sheetId, relId,
// and the display name.
func (wb *Workbook) addSheet(payload []byte, rels map[string]string) error {
	p := biff12.NewPayloadReader(payload)
	corrupt := func(what string, err error) error {
		return &anysheet.XlsbError{Kind: anysheet.ErrCorrupt, Detail: "SHEET record: " + what, Err: err}
	}

	flags, err := p.Uint32()
	if err != nil {
		return corrupt("state flags", err)
	}
	if _, err := p.Uint32(); err != nil { // sheetId, unused
		return corrupt("sheetId", err)
	}
	relID, err := p.XLString()
	if err != nil {
		return corrupt("relId", err)
	}
	name, err := p.XLString()
	if err != nil {
		return corrupt("name", err)
	}
	target, ok := rels[relID]
	if !ok {
		return corrupt("relationship "+relID+" undefined", nil)
	}

	wb.sheets = append(wb.sheets, sheetEntry{name: name, target: target})
	wb.meta.AddSheet(anysheet.Sheet{
		Name:       name,
		Type:       sheetTypeFromTarget(target),
		Visibility: anysheet.SheetVisibility(flags & 0x03),
	})
	return nil
}

// sheetTypeFromTarget classifies a tab by the part path its relationship
// points at; the bundle record itself does not carry a type.
func sheetTypeFromTarget(target string) anysheet.SheetType {
	t := strings.TrimPrefix(strings.ToLower(target), "/xl/")
	switch {
	case strings.HasPrefix(t, "chartsheets/"):
		return anysheet.SheetTypeChartSheet
	case strings.HasPrefix(t, "dialogsheets/"):
		return anysheet.SheetTypeDialogSheet
	case strings.HasPrefix(t, "macrosheets/"):
		return anysheet.SheetTypeMacroSheet
	default:
		return anysheet.SheetTypeWorkSheet
	}
}

// parseSharedStrings reads xl/sharedStrings.bin when present.
func (wb *Workbook) parseSharedStrings() error {
	data, err := ziputil.ReadFile(wb.zr, "xl/sharedStrings.bin")
	if err != nil {
		// Optional part: the workbook simply has no shared strings.
		return nil
	}
	st, err := parseSharedStrings(data)
	if err != nil {
		return err
	}
	wb.strings = st
	return nil
}

// parseStyles reads xl/styles.bin when present.  Failures degrade to "no
// date information" rather than failing the open: a workbook with a
// missing or damaged styles part still yields all its raw values, just
// with dates left as plain floats.
func (wb *Workbook) parseStyles() {
	data, err := ziputil.ReadFile(wb.zr, "xl/styles.bin")
	if err != nil {
		return
	}
	classes, err := parseStyles(data)
	if err != nil {
		return
	}
	wb.classes = classes
}

// rels XML

type relationships struct {
	Relationships []relationship `xml:"Relationship"`
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Target string `xml:"Target,attr"`
}

// parseRels parses a .rels part into an Id → Target map.  Rels parts are
// plain XML even inside the otherwise binary .xlsb container.
func parseRels(data []byte) (map[string]string, error) {
	var rels relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, &anysheet.DeError{Kind: anysheet.ErrCorrupt, Detail: "workbook relationships", Err: err}
	}
	m := make(map[string]string, len(rels.Relationships))
	for _, r := range rels.Relationships {
		m[r.ID] = r.Target
	}
	return m, nil
}
