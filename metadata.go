package anysheet

import "fmt"

// SheetType is the kind of a workbook tab.
type SheetType uint8

const (
	// SheetTypeWorkSheet is an ordinary cell grid.
	SheetTypeWorkSheet SheetType = iota
	// SheetTypeChartSheet is a full-tab chart.
	SheetTypeChartSheet
	// SheetTypeDialogSheet is a legacy dialog tab.
	SheetTypeDialogSheet
	// SheetTypeMacroSheet is a legacy XLM macro tab.
	SheetTypeMacroSheet
)

// String returns the type's name, e.g. "worksheet".
func (t SheetType) String() string {
	switch t {
	case SheetTypeWorkSheet:
		return "worksheet"
	case SheetTypeChartSheet:
		return "chartsheet"
	case SheetTypeDialogSheet:
		return "dialogsheet"
	case SheetTypeMacroSheet:
		return "macrosheet"
	}
	return fmt.Sprintf("sheettype(%d)", uint8(t))
}

// SheetVisibility is the visibility level of a workbook tab.  The numeric
// values match the hsState field the OOXML formats store (0, 1, 2).
type SheetVisibility uint8

const (
	// SheetVisible means the tab is shown.
	SheetVisible SheetVisibility = 0
	// SheetHidden means the tab is hidden but can be unhidden through the
	// application UI.
	SheetHidden SheetVisibility = 1
	// SheetVeryHidden means the tab can only be unhidden programmatically.
	SheetVeryHidden SheetVisibility = 2
)

// String returns "visible", "hidden", or "veryhidden".
func (v SheetVisibility) String() string {
	switch v {
	case SheetVisible:
		return "visible"
	case SheetHidden:
		return "hidden"
	case SheetVeryHidden:
		return "veryhidden"
	}
	return fmt.Sprintf("visibility(%d)", uint8(v))
}

// Sheet is one workbook tab as declared by the source file.
type Sheet struct {
	Name       string
	Type       SheetType
	Visibility SheetVisibility
}

// Metadata is the workbook-level bookkeeping a decoder produces when it
// opens a file: the ordered sheet list.  Order is significant — it is the
// workbook's tab order — and nothing here ever reorders it.  Duplicate
// sheet names are kept as-is, since source workbooks may contain them.
type Metadata struct {
	sheets []Sheet
}

// AddSheet appends a sheet, preserving insertion order.
func (m *Metadata) AddSheet(s Sheet) {
	m.sheets = append(m.sheets, s)
}

// Sheets returns the sheets in tab order.  The slice is a copy; mutating
// it does not affect the metadata.
func (m *Metadata) Sheets() []Sheet {
	out := make([]Sheet, len(m.sheets))
	copy(out, m.sheets)
	return out
}

// SheetNames returns the sheet names in tab order.
func (m *Metadata) SheetNames() []string {
	names := make([]string, len(m.sheets))
	for i, s := range m.sheets {
		names[i] = s.Name
	}
	return names
}

// Len returns the number of sheets.
func (m *Metadata) Len() int { return len(m.sheets) }
