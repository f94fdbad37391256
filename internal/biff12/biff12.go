// Package biff12 provides the low-level primitives of the BIFF12 record
// format used by .xlsb parts: record-type constants, a record-stream
// reader, and a typed payload reader.
//
// Errors reported here are plain; the xlsb decoder maps them onto its
// format-error taxonomy at its boundary.
package biff12

// Record-type IDs, as defined by ECMA-376 for the Office binary workbook
// format.  Only the records the decoder consumes are listed.
const (
	// Workbook part.
	Sheets     = 0x018F
	SheetsEnd  = 0x0190
	WorkbookPr = 0x0199
	Sheet      = 0x019C

	// Worksheet part.  Row through FormulaBoolErr form the contiguous
	// cell-record block.
	Row            = 0x0000
	Blank          = 0x0001
	Num            = 0x0002
	BoolErr        = 0x0003
	Bool           = 0x0004
	Float          = 0x0005
	String         = 0x0007
	FormulaString  = 0x0008
	FormulaFloat   = 0x0009
	FormulaBool    = 0x000A
	FormulaBoolErr = 0x000B
	SheetData      = 0x0191
	SheetDataEnd   = 0x0192
	Dimension      = 0x0194
	MergeCell      = 0x01B0
	MergeCells     = 0x01B1
	MergeCellsEnd  = 0x01B2

	// Shared-strings part.
	Si     = 0x0013
	Sst    = 0x019F
	SstEnd = 0x01A0

	// Styles part.
	NumFmt          = 0x002C
	Xf              = 0x002F
	CellXfs         = 0x04E9
	CellXfsEnd      = 0x04EA
	CellStyleXfs    = 0x04F2
	CellStyleXfsEnd = 0x04F3
)
