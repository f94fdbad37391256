// Package xlsbtest builds .xlsb workbook fixtures in memory for tests.
// All fixtures are self-contained byte slices, so no testdata files are
// needed.  Builder methods panic on impossible inputs; a bad fixture is a
// bug in the test, not a condition to handle.
package xlsbtest

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Record IDs used by the builders.  They mirror the decoder's constants
// but are spelled here independently so a transposition in either place
// fails tests instead of canceling out.
const (
	idRow             = 0x0000
	idBlank           = 0x0001
	idNum             = 0x0002
	idBoolErr         = 0x0003
	idBool            = 0x0004
	idFloat           = 0x0005
	idString          = 0x0007
	idFormulaString   = 0x0008
	idWorksheet       = 0x0181
	idWorksheetEnd    = 0x0182
	idWorkbook        = 0x0183
	idWorkbookEnd     = 0x0184
	idSheets          = 0x018F
	idSheetsEnd       = 0x0190
	idSheetData       = 0x0191
	idSheetDataEnd    = 0x0192
	idDimension       = 0x0194
	idWorkbookPr      = 0x0199
	idSheet           = 0x019C
	idMergeCell       = 0x01B0
	idMergeCells      = 0x01B1
	idMergeCellsEnd   = 0x01B2
	idSi              = 0x0013
	idSst             = 0x019F
	idSstEnd          = 0x01A0
	idNumFmt          = 0x002C
	idXf              = 0x002F
	idCellXfs         = 0x04E9
	idCellXfsEnd      = 0x04EA
	idCellStyleXfs    = 0x04F2
	idCellStyleXfsEnd = 0x04F3
)

// WriteID writes a record type ID in the variable-length encoding: each
// byte contributes its full 8 bits, bit 7 of a byte doubles as the
// continuation flag.  Multi-byte IDs in the format are defined so that
// their low byte already has bit 7 set.
func WriteID(buf *bytes.Buffer, id int) {
	if id < 0x80 {
		buf.WriteByte(byte(id))
		return
	}
	buf.WriteByte(byte(id & 0xFF))
	buf.WriteByte(byte(id >> 8))
}

// WriteLen writes a record payload size as LEB128.
func WriteLen(buf *bytes.Buffer, n int) {
	for {
		b := n & 0x7F
		n >>= 7
		if n > 0 {
			buf.WriteByte(byte(b) | 0x80)
		} else {
			buf.WriteByte(byte(b))
			break
		}
	}
}

// WriteRec writes one complete record: ID, size, payload.
func WriteRec(buf *bytes.Buffer, id int, payload []byte) {
	WriteID(buf, id)
	WriteLen(buf, len(payload))
	buf.Write(payload)
}

// EncStr encodes s as a counted UTF-16LE string.
func EncStr(s string) []byte {
	runes := []rune(s)
	var sb bytes.Buffer
	_ = binary.Write(&sb, binary.LittleEndian, uint32(len(runes)))
	for _, r := range runes {
		_ = binary.Write(&sb, binary.LittleEndian, uint16(r))
	}
	return sb.Bytes()
}

// Le16 returns v as 2 little-endian bytes.
func Le16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

// Le32 returns v as 4 little-endian bytes.
func Le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// Le64f returns v as 8 little-endian bytes of its IEEE-754 encoding.
func Le64f(v float64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	return b
}

// RkInt encodes v as a packed integer numeric.
func RkInt(v int32) []byte {
	if v > 0x1FFFFFFF || v < -0x20000000 {
		panic(fmt.Sprintf("xlsbtest: %d does not fit a packed integer", v))
	}
	return Le32(uint32(v)<<2 | 0x02)
}

// RkInt100 encodes v/100 as a packed scaled integer.
func RkInt100(v int32) []byte {
	if v > 0x1FFFFFFF || v < -0x20000000 {
		panic(fmt.Sprintf("xlsbtest: %d does not fit a packed integer", v))
	}
	return Le32(uint32(v)<<2 | 0x03)
}

// RkFloat encodes v as a packed truncated double.  The low 34 bits of the
// encoding must be zero; halves and quarters qualify, arbitrary floats do
// not.
func RkFloat(v float64) []byte {
	bits := math.Float64bits(v)
	if bits&0x3FFFFFFFF != 0 {
		panic(fmt.Sprintf("xlsbtest: %v is not representable as a packed double", v))
	}
	return Le32(uint32(bits >> 32))
}

// SheetBuilder assembles one worksheet part record by record.
type SheetBuilder struct {
	buf    bytes.Buffer
	inData bool
}

// NewSheetBuilder starts a worksheet part.
func NewSheetBuilder() *SheetBuilder {
	b := &SheetBuilder{}
	WriteRec(&b.buf, idWorksheet, nil)
	return b
}

func (b *SheetBuilder) openData() {
	if !b.inData {
		WriteRec(&b.buf, idSheetData, nil)
		b.inData = true
	}
}

func (b *SheetBuilder) closeData() {
	if b.inData {
		WriteRec(&b.buf, idSheetDataEnd, nil)
		b.inData = false
	}
}

// Dimension writes the declared used range, all bounds inclusive.
func (b *SheetBuilder) Dimension(r1, r2, c1, c2 uint32) *SheetBuilder {
	var p bytes.Buffer
	p.Write(Le32(r1))
	p.Write(Le32(r2))
	p.Write(Le32(c1))
	p.Write(Le32(c2))
	WriteRec(&b.buf, idDimension, p.Bytes())
	return b
}

// Row starts a new row at index r.
func (b *SheetBuilder) Row(r uint32) *SheetBuilder {
	b.openData()
	WriteRec(&b.buf, idRow, Le32(r))
	return b
}

func (b *SheetBuilder) cell(id int, col, style uint32, body []byte) *SheetBuilder {
	b.openData()
	var p bytes.Buffer
	p.Write(Le32(col))
	p.Write(Le32(style))
	p.Write(body)
	WriteRec(&b.buf, id, p.Bytes())
	return b
}

// Blank writes an empty cell record.
func (b *SheetBuilder) Blank(col, style uint32) *SheetBuilder {
	return b.cell(idBlank, col, style, nil)
}

// Num writes a packed-numeric cell; rk comes from RkInt, RkInt100 or
// RkFloat.
func (b *SheetBuilder) Num(col, style uint32, rk []byte) *SheetBuilder {
	return b.cell(idNum, col, style, rk)
}

// Float writes a full-precision numeric cell.
func (b *SheetBuilder) Float(col, style uint32, v float64) *SheetBuilder {
	return b.cell(idFloat, col, style, Le64f(v))
}

// Bool writes a boolean cell.
func (b *SheetBuilder) Bool(col, style uint32, v bool) *SheetBuilder {
	body := []byte{0}
	if v {
		body[0] = 1
	}
	return b.cell(idBool, col, style, body)
}

// Err writes an error cell with the given error code byte.
func (b *SheetBuilder) Err(col, style uint32, code byte) *SheetBuilder {
	return b.cell(idBoolErr, col, style, []byte{code})
}

// SharedString writes a shared-string cell pointing at table index idx.
func (b *SheetBuilder) SharedString(col, style, idx uint32) *SheetBuilder {
	return b.cell(idString, col, style, Le32(idx))
}

// InlineString writes a formula-string cell carrying its text inline.
func (b *SheetBuilder) InlineString(col, style uint32, s string) *SheetBuilder {
	return b.cell(idFormulaString, col, style, EncStr(s))
}

// Merge declares a merged region, all bounds inclusive.
func (b *SheetBuilder) Merge(r1, r2, c1, c2 uint32) *SheetBuilder {
	b.closeData()
	WriteRec(&b.buf, idMergeCells, Le32(1))
	var p bytes.Buffer
	p.Write(Le32(r1))
	p.Write(Le32(r2))
	p.Write(Le32(c1))
	p.Write(Le32(c2))
	WriteRec(&b.buf, idMergeCell, p.Bytes())
	WriteRec(&b.buf, idMergeCellsEnd, nil)
	return b
}

// Raw appends an arbitrary record, for malformed-input tests.
func (b *SheetBuilder) Raw(id int, payload []byte) *SheetBuilder {
	WriteRec(&b.buf, id, payload)
	return b
}

// Bytes finishes the part and returns its record stream.
func (b *SheetBuilder) Bytes() []byte {
	b.closeData()
	var out bytes.Buffer
	out.Write(b.buf.Bytes())
	WriteRec(&out, idWorksheetEnd, nil)
	return out.Bytes()
}

// SSTBytes builds a shared-strings part holding strs in order.
func SSTBytes(strs []string) []byte {
	var buf bytes.Buffer
	head := make([]byte, 8)
	binary.LittleEndian.PutUint32(head[0:], uint32(len(strs)))
	binary.LittleEndian.PutUint32(head[4:], uint32(len(strs)))
	WriteRec(&buf, idSst, head)
	for _, s := range strs {
		WriteRec(&buf, idSi, append([]byte{0x00}, EncStr(s)...))
	}
	WriteRec(&buf, idSstEnd, nil)
	return buf.Bytes()
}

// StylesBytes builds a styles part.  numFmts maps custom format IDs to
// their code strings; xfFmtIDs lists the numFmtId of each cell XF in
// order, so xfFmtIDs[i] styles cells whose style reference is i.
func StylesBytes(numFmts map[uint16]string, xfFmtIDs []uint16) []byte {
	var buf bytes.Buffer
	for id, code := range numFmts {
		var p bytes.Buffer
		p.Write(Le16(id))
		p.Write(EncStr(code))
		WriteRec(&buf, idNumFmt, p.Bytes())
	}
	// A style XF outside CELLXFS; must not shift cell XF indexes.
	WriteRec(&buf, idCellStyleXfs, Le32(1))
	WriteRec(&buf, idXf, xfBytes(0))
	WriteRec(&buf, idCellStyleXfsEnd, nil)

	WriteRec(&buf, idCellXfs, Le32(uint32(len(xfFmtIDs))))
	for _, fmtID := range xfFmtIDs {
		WriteRec(&buf, idXf, xfBytes(fmtID))
	}
	WriteRec(&buf, idCellXfsEnd, nil)
	return buf.Bytes()
}

// xfBytes builds a minimal XF record: parent, numFmtId, font, fill,
// border, alignment byte, flags.
func xfBytes(numFmtID uint16) []byte {
	var p bytes.Buffer
	p.Write(Le16(0xFFFF)) // ixfeParent
	p.Write(Le16(numFmtID))
	p.Write(Le16(0)) // iFont
	p.Write(Le16(0)) // iFill
	p.Write(Le16(0)) // ixBorder
	p.Write([]byte{0, 0, 0, 0})
	return p.Bytes()
}

// Sheet is one tab of a workbook Fixture.
type Sheet struct {
	Name  string
	State uint32 // visibility: 0 visible, 1 hidden, 2 very hidden
	Part  []byte // worksheet part bytes, typically from SheetBuilder
	// Target overrides the part path; empty means worksheets/sheetN.bin.
	Target string
}

// Fixture describes a whole workbook.  Zero value plus at least one Sheet
// is a valid minimal workbook.
type Fixture struct {
	Date1904      bool
	Sheets        []Sheet
	SharedStrings []string          // nil omits the part entirely
	Styles        []byte            // nil omits the part entirely
	OmitRels      bool              // drop xl/_rels/workbook.bin.rels
	OmitWorkbook  bool              // drop xl/workbook.bin
	Extra         map[string][]byte // additional zip members
}

// Bytes assembles the fixture into .xlsb container bytes.
func (f *Fixture) Bytes() []byte {
	targets := make([]string, len(f.Sheets))
	for i, s := range f.Sheets {
		targets[i] = s.Target
		if targets[i] == "" {
			targets[i] = fmt.Sprintf("worksheets/sheet%d.bin", i+1)
		}
	}

	// xl/workbook.bin
	var wb bytes.Buffer
	WriteRec(&wb, idWorkbook, nil)
	if f.Date1904 {
		WriteRec(&wb, idWorkbookPr, Le32(0x08))
	}
	WriteRec(&wb, idSheets, nil)
	for i, s := range f.Sheets {
		var p bytes.Buffer
		p.Write(Le32(s.State))
		p.Write(Le32(uint32(i + 1))) // sheetId
		p.Write(EncStr(fmt.Sprintf("rId%d", i+1)))
		p.Write(EncStr(s.Name))
		WriteRec(&wb, idSheet, p.Bytes())
	}
	WriteRec(&wb, idSheetsEnd, nil)
	WriteRec(&wb, idWorkbookEnd, nil)

	// xl/_rels/workbook.bin.rels
	var rels bytes.Buffer
	rels.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	rels.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for i, target := range targets {
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="worksheet" Target="%s"/>`, i+1, target)
	}
	rels.WriteString(`</Relationships>`)

	var zipBuf bytes.Buffer
	zw := zip.NewWriter(&zipBuf)
	add := func(name string, data []byte) {
		w, err := zw.Create(name)
		if err != nil {
			panic(fmt.Sprintf("xlsbtest: zip create %s: %v", name, err))
		}
		if _, err := w.Write(data); err != nil {
			panic(fmt.Sprintf("xlsbtest: zip write %s: %v", name, err))
		}
	}

	if !f.OmitRels {
		add("xl/_rels/workbook.bin.rels", rels.Bytes())
	}
	if !f.OmitWorkbook {
		add("xl/workbook.bin", wb.Bytes())
	}
	if f.SharedStrings != nil {
		add("xl/sharedStrings.bin", SSTBytes(f.SharedStrings))
	}
	if f.Styles != nil {
		add("xl/styles.bin", f.Styles)
	}
	for i, s := range f.Sheets {
		if s.Part != nil {
			add("xl/"+targets[i], s.Part)
		}
	}
	for name, data := range f.Extra {
		add(name, data)
	}
	if err := zw.Close(); err != nil {
		panic(fmt.Sprintf("xlsbtest: zip close: %v", err))
	}
	return zipBuf.Bytes()
}
