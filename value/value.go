// Package value defines the typed cell values produced by spreadsheet
// decoders.
//
// [Data] is a closed sum type over the cell kinds that occur across the
// XLSX, XLS, XLSB, and ODS on-disk encodings: integers, IEEE floats, text,
// booleans, Excel serial date/times, ISO-8601 date/time and duration text,
// spreadsheet error codes, and the empty cell.  Exactly one variant is
// active at a time; the zero value is Empty.
//
// [DataRef] mirrors Data but allows its string variant to share a
// decoder-owned shared-string pool entry instead of carrying independent
// text.  Call [DataRef.ToData] to materialize a value that no longer pins
// the pool.
//
// [ExcelDateTime] wraps the raw floating-point serial number Excel uses to
// encode calendar dates and elapsed times, together with the 1904-epoch
// flag; AsTime and AsDuration convert it to the corresponding Go types.
package value

import (
	"fmt"
	"strconv"
)

// Kind identifies the active variant of a Data or DataRef.
type Kind uint8

const (
	// KindEmpty is an empty cell.  It is the zero value of Kind.
	KindEmpty Kind = iota
	// KindInt is a 64-bit signed integer.
	KindInt
	// KindFloat is a 64-bit IEEE float.
	KindFloat
	// KindString is owned text.
	KindString
	// KindSharedString is text shared with a decoder-owned string pool.
	// It occurs only in DataRef; Data never carries it.
	KindSharedString
	// KindBool is a boolean.
	KindBool
	// KindDateTime is an Excel serial date/time or duration.
	KindDateTime
	// KindDateTimeISO is ISO-8601 date/time text (ODS-style).
	KindDateTimeISO
	// KindDurationISO is ISO-8601 duration text (ODS-style).
	KindDurationISO
	// KindError is a spreadsheet-native error code such as #DIV/0!.
	KindError
)

// String returns the variant name, e.g. "Int" or "DateTimeISO".
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindSharedString:
		return "SharedString"
	case KindBool:
		return "Bool"
	case KindDateTime:
		return "DateTime"
	case KindDateTimeISO:
		return "DateTimeISO"
	case KindDurationISO:
		return "DurationISO"
	case KindError:
		return "Error"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// CellErrorType is a spreadsheet-native cell error code.
//
// The numeric values are the BErr byte codes shared by the BIFF and BIFF12
// binary formats (MS-XLSB §2.5.97.2); the XML formats spell the same errors
// as literal text.
type CellErrorType byte

const (
	// CellErrNull is #NULL! — the intersection of two ranges is empty.
	CellErrNull CellErrorType = 0x00
	// CellErrDiv0 is #DIV/0! — division by zero.
	CellErrDiv0 CellErrorType = 0x07
	// CellErrValue is #VALUE! — wrong type of operand.
	CellErrValue CellErrorType = 0x0F
	// CellErrRef is #REF! — illegal or deleted cell reference.
	CellErrRef CellErrorType = 0x17
	// CellErrName is #NAME? — unrecognised function or range name.
	CellErrName CellErrorType = 0x1D
	// CellErrNum is #NUM! — value range overflow.
	CellErrNum CellErrorType = 0x24
	// CellErrNA is #N/A — argument or function not available.
	CellErrNA CellErrorType = 0x2A
	// CellErrGettingData is #GETTING_DATA — async data still loading.
	CellErrGettingData CellErrorType = 0x2B
)

var cellErrorText = map[CellErrorType]string{
	CellErrNull:        "#NULL!",
	CellErrDiv0:        "#DIV/0!",
	CellErrValue:       "#VALUE!",
	CellErrRef:         "#REF!",
	CellErrName:        "#NAME?",
	CellErrNum:         "#NUM!",
	CellErrNA:          "#N/A",
	CellErrGettingData: "#GETTING_DATA",
}

// String returns the display form of the error, e.g. "#DIV/0!".
// Unknown codes render as a hex byte, e.g. "0xff".
func (e CellErrorType) String() string {
	if s, ok := cellErrorText[e]; ok {
		return s
	}
	return fmt.Sprintf("0x%02x", byte(e))
}

// CellErrorFromCode maps a BErr byte code to its CellErrorType.
// ok is false for codes outside the defined set.
func CellErrorFromCode(b byte) (CellErrorType, bool) {
	e := CellErrorType(b)
	_, ok := cellErrorText[e]
	return e, ok
}

// CellErrorFromText maps a display string such as "#REF!" back to its
// CellErrorType.  ok is false when the text is not a known error literal.
func CellErrorFromText(s string) (CellErrorType, bool) {
	for e, t := range cellErrorText {
		if t == s {
			return e, true
		}
	}
	return 0, false
}

// Data is an owned, typed cell value.  Exactly one variant is active; the
// zero value is the Empty variant.  Data is comparable: two values are equal
// iff they have the same active variant and equal payloads.
type Data struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
	dt   ExcelDateTime
	ce   CellErrorType
}

// Empty returns the empty-cell value.  It is identical to the zero Data.
func Empty() Data { return Data{} }

// NewInt returns an Int value.
func NewInt(v int64) Data { return Data{kind: KindInt, i: v} }

// NewFloat returns a Float value.
func NewFloat(v float64) Data { return Data{kind: KindFloat, f: v} }

// NewString returns a String value.
func NewString(v string) Data { return Data{kind: KindString, s: v} }

// NewBool returns a Bool value.
func NewBool(v bool) Data { return Data{kind: KindBool, b: v} }

// NewDateTime returns a DateTime value wrapping the given serial.
func NewDateTime(v ExcelDateTime) Data { return Data{kind: KindDateTime, dt: v} }

// NewDateTimeISO returns a DateTimeISO value holding ISO-8601 date/time text.
func NewDateTimeISO(v string) Data { return Data{kind: KindDateTimeISO, s: v} }

// NewDurationISO returns a DurationISO value holding ISO-8601 duration text.
func NewDurationISO(v string) Data { return Data{kind: KindDurationISO, s: v} }

// NewCellError returns an Error value.
func NewCellError(v CellErrorType) Data { return Data{kind: KindError, ce: v} }

// Kind returns the active variant tag.
func (d Data) Kind() Kind { return d.kind }

// IsEmpty reports whether the Empty variant is active.
func (d Data) IsEmpty() bool { return d.kind == KindEmpty }

// IsInt reports whether the Int variant is active.
func (d Data) IsInt() bool { return d.kind == KindInt }

// IsFloat reports whether the Float variant is active.
func (d Data) IsFloat() bool { return d.kind == KindFloat }

// IsString reports whether the String variant is active.
func (d Data) IsString() bool { return d.kind == KindString }

// IsBool reports whether the Bool variant is active.
func (d Data) IsBool() bool { return d.kind == KindBool }

// IsDateTime reports whether the DateTime variant is active.
func (d Data) IsDateTime() bool { return d.kind == KindDateTime }

// IsDateTimeISO reports whether the DateTimeISO variant is active.
func (d Data) IsDateTimeISO() bool { return d.kind == KindDateTimeISO }

// IsDurationISO reports whether the DurationISO variant is active.
func (d Data) IsDurationISO() bool { return d.kind == KindDurationISO }

// IsError reports whether the Error variant is active.
func (d Data) IsError() bool { return d.kind == KindError }

// GetInt returns the Int payload.  ok is true iff IsInt.
func (d Data) GetInt() (int64, bool) { return d.i, d.kind == KindInt }

// GetFloat returns the Float payload.  ok is true iff IsFloat.
func (d Data) GetFloat() (float64, bool) { return d.f, d.kind == KindFloat }

// GetString returns the String payload.  ok is true iff IsString.
func (d Data) GetString() (string, bool) {
	if d.kind != KindString {
		return "", false
	}
	return d.s, true
}

// GetBool returns the Bool payload.  ok is true iff IsBool.
func (d Data) GetBool() (bool, bool) { return d.b, d.kind == KindBool }

// GetDateTime returns the DateTime payload.  ok is true iff IsDateTime.
func (d Data) GetDateTime() (ExcelDateTime, bool) {
	return d.dt, d.kind == KindDateTime
}

// GetDateTimeISO returns the DateTimeISO payload.  ok is true iff
// IsDateTimeISO.
func (d Data) GetDateTimeISO() (string, bool) {
	if d.kind != KindDateTimeISO {
		return "", false
	}
	return d.s, true
}

// GetDurationISO returns the DurationISO payload.  ok is true iff
// IsDurationISO.
func (d Data) GetDurationISO() (string, bool) {
	if d.kind != KindDurationISO {
		return "", false
	}
	return d.s, true
}

// GetError returns the Error payload.  ok is true iff IsError.
func (d Data) GetError() (CellErrorType, bool) {
	return d.ce, d.kind == KindError
}

// AsF64 coerces the value to float64.  It succeeds for Int, Float, and
// DateTime (returning the raw serial number) and fails closed otherwise.
func (d Data) AsF64() (float64, bool) {
	return asF64(d.kind, d.i, d.f, d.dt)
}

// AsI64 coerces the value to int64.  It succeeds for Int, and for Float by
// truncating toward zero; every other variant fails closed.
func (d Data) AsI64() (int64, bool) {
	return asI64(d.kind, d.i, d.f)
}

// AsString returns the textual payload of the String, DateTimeISO, or
// DurationISO variants.  No other variant is coerced to text.
func (d Data) AsString() (string, bool) {
	return asString(d.kind, d.s)
}

// AsBool returns the Bool payload; every other variant fails closed.
func (d Data) AsBool() (bool, bool) { return d.b, d.kind == KindBool }

// String renders the active variant and its payload, e.g. `String("x")` or
// `Int(42)`.  The encoding is deterministic and distinct per variant, so a
// String holding "42" never renders like an Int holding 42.
func (d Data) String() string {
	return renderData(d.kind, d.i, d.f, d.s, d.b, d.dt, d.ce)
}

// shared coercion and rendering logic for Data and DataRef

func asF64(k Kind, i int64, f float64, dt ExcelDateTime) (float64, bool) {
	switch k {
	case KindInt:
		return float64(i), true
	case KindFloat:
		return f, true
	case KindDateTime:
		return dt.AsF64(), true
	}
	return 0, false
}

func asI64(k Kind, i int64, f float64) (int64, bool) {
	switch k {
	case KindInt:
		return i, true
	case KindFloat:
		// Truncation toward zero, not rounding.
		return int64(f), true
	}
	return 0, false
}

func asString(k Kind, s string) (string, bool) {
	switch k {
	case KindString, KindSharedString, KindDateTimeISO, KindDurationISO:
		return s, true
	}
	return "", false
}

func renderData(k Kind, i int64, f float64, s string, b bool, dt ExcelDateTime, ce CellErrorType) string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindInt:
		return "Int(" + strconv.FormatInt(i, 10) + ")"
	case KindFloat:
		return "Float(" + strconv.FormatFloat(f, 'g', -1, 64) + ")"
	case KindString:
		return "String(" + strconv.Quote(s) + ")"
	case KindSharedString:
		return "SharedString(" + strconv.Quote(s) + ")"
	case KindBool:
		return "Bool(" + strconv.FormatBool(b) + ")"
	case KindDateTime:
		return "DateTime(" + strconv.FormatFloat(dt.AsF64(), 'g', -1, 64) + ")"
	case KindDateTimeISO:
		return "DateTimeISO(" + strconv.Quote(s) + ")"
	case KindDurationISO:
		return "DurationISO(" + strconv.Quote(s) + ")"
	case KindError:
		return "Error(" + ce.String() + ")"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}
