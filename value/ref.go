package value

import "strings"

// DataRef is the reference-oriented counterpart of Data.  It mirrors every
// Data variant and adds SharedString, whose text is a view into a
// decoder-owned shared-string pool rather than independent data.
//
// A SharedString keeps the pool entry's backing array reachable for as long
// as the DataRef itself is reachable.  That is safe — Go strings are
// immutable — but it pins decoder memory: a handful of retained DataRefs can
// hold an entire shared-string table live.  ToData is the supported way to
// outlive the decoder; it copies the text so the pool can be collected.
type DataRef struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
	dt   ExcelDateTime
	ce   CellErrorType
}

// EmptyRef returns the empty-cell value.  It is identical to the zero
// DataRef.
func EmptyRef() DataRef { return DataRef{} }

// NewRefInt returns an Int value.
func NewRefInt(v int64) DataRef { return DataRef{kind: KindInt, i: v} }

// NewRefFloat returns a Float value.
func NewRefFloat(v float64) DataRef { return DataRef{kind: KindFloat, f: v} }

// NewRefString returns a String value carrying independent text.
func NewRefString(v string) DataRef { return DataRef{kind: KindString, s: v} }

// NewRefSharedString returns a SharedString value.  v must be an entry of a
// decoder-owned string pool; the returned DataRef shares it rather than
// copying.
func NewRefSharedString(v string) DataRef {
	return DataRef{kind: KindSharedString, s: v}
}

// NewRefBool returns a Bool value.
func NewRefBool(v bool) DataRef { return DataRef{kind: KindBool, b: v} }

// NewRefDateTime returns a DateTime value wrapping the given serial.
func NewRefDateTime(v ExcelDateTime) DataRef {
	return DataRef{kind: KindDateTime, dt: v}
}

// NewRefDateTimeISO returns a DateTimeISO value.
func NewRefDateTimeISO(v string) DataRef {
	return DataRef{kind: KindDateTimeISO, s: v}
}

// NewRefDurationISO returns a DurationISO value.
func NewRefDurationISO(v string) DataRef {
	return DataRef{kind: KindDurationISO, s: v}
}

// NewRefCellError returns an Error value.
func NewRefCellError(v CellErrorType) DataRef {
	return DataRef{kind: KindError, ce: v}
}

// Kind returns the active variant tag.
func (r DataRef) Kind() Kind { return r.kind }

// IsEmpty reports whether the Empty variant is active.
func (r DataRef) IsEmpty() bool { return r.kind == KindEmpty }

// IsInt reports whether the Int variant is active.
func (r DataRef) IsInt() bool { return r.kind == KindInt }

// IsFloat reports whether the Float variant is active.
func (r DataRef) IsFloat() bool { return r.kind == KindFloat }

// IsString reports whether the String or SharedString variant is active.
// The two spell the same logical kind; they differ only in ownership.
func (r DataRef) IsString() bool {
	return r.kind == KindString || r.kind == KindSharedString
}

// IsSharedString reports whether the text is pool-backed rather than owned.
func (r DataRef) IsSharedString() bool { return r.kind == KindSharedString }

// IsBool reports whether the Bool variant is active.
func (r DataRef) IsBool() bool { return r.kind == KindBool }

// IsDateTime reports whether the DateTime variant is active.
func (r DataRef) IsDateTime() bool { return r.kind == KindDateTime }

// IsDateTimeISO reports whether the DateTimeISO variant is active.
func (r DataRef) IsDateTimeISO() bool { return r.kind == KindDateTimeISO }

// IsDurationISO reports whether the DurationISO variant is active.
func (r DataRef) IsDurationISO() bool { return r.kind == KindDurationISO }

// IsError reports whether the Error variant is active.
func (r DataRef) IsError() bool { return r.kind == KindError }

// GetInt returns the Int payload.  ok is true iff IsInt.
func (r DataRef) GetInt() (int64, bool) { return r.i, r.kind == KindInt }

// GetFloat returns the Float payload.  ok is true iff IsFloat.
func (r DataRef) GetFloat() (float64, bool) { return r.f, r.kind == KindFloat }

// GetString returns the text of a String or SharedString.
func (r DataRef) GetString() (string, bool) {
	if !r.IsString() {
		return "", false
	}
	return r.s, true
}

// GetBool returns the Bool payload.  ok is true iff IsBool.
func (r DataRef) GetBool() (bool, bool) { return r.b, r.kind == KindBool }

// GetDateTime returns the DateTime payload.  ok is true iff IsDateTime.
func (r DataRef) GetDateTime() (ExcelDateTime, bool) {
	return r.dt, r.kind == KindDateTime
}

// GetDateTimeISO returns the DateTimeISO payload.  ok is true iff
// IsDateTimeISO.
func (r DataRef) GetDateTimeISO() (string, bool) {
	if r.kind != KindDateTimeISO {
		return "", false
	}
	return r.s, true
}

// GetDurationISO returns the DurationISO payload.  ok is true iff
// IsDurationISO.
func (r DataRef) GetDurationISO() (string, bool) {
	if r.kind != KindDurationISO {
		return "", false
	}
	return r.s, true
}

// GetError returns the Error payload.  ok is true iff IsError.
func (r DataRef) GetError() (CellErrorType, bool) {
	return r.ce, r.kind == KindError
}

// AsF64 coerces the value to float64.  It succeeds for Int, Float, and
// DateTime (returning the raw serial number) and fails closed otherwise.
func (r DataRef) AsF64() (float64, bool) {
	return asF64(r.kind, r.i, r.f, r.dt)
}

// AsI64 coerces the value to int64.  It succeeds for Int, and for Float by
// truncating toward zero; every other variant fails closed.
func (r DataRef) AsI64() (int64, bool) {
	return asI64(r.kind, r.i, r.f)
}

// AsString returns the textual payload of the String, SharedString,
// DateTimeISO, or DurationISO variants.
func (r DataRef) AsString() (string, bool) {
	return asString(r.kind, r.s)
}

// AsBool returns the Bool payload; every other variant fails closed.
func (r DataRef) AsBool() (bool, bool) { return r.b, r.kind == KindBool }

// ToData materializes an independent Data.  A SharedString becomes an owned
// String whose text is copied off the pool's backing array; every other
// variant carries over unchanged.  Predicate results are preserved: each
// Is* method of the result answers the same as it did on r.
func (r DataRef) ToData() Data {
	switch r.kind {
	case KindSharedString:
		return Data{kind: KindString, s: strings.Clone(r.s)}
	default:
		return Data{kind: r.kind, i: r.i, f: r.f, s: r.s, b: r.b, dt: r.dt, ce: r.ce}
	}
}

// String renders the active variant and its payload, in the same encoding
// as Data.String.
func (r DataRef) String() string {
	return renderData(r.kind, r.i, r.f, r.s, r.b, r.dt, r.ce)
}
