package anysheet

import "fmt"

// FormatErrorKind is the closed set of failure classes shared by the
// per-format error types.  Every decoder maps its failures onto these
// kinds so callers can branch on error class without parsing messages.
type FormatErrorKind uint8

const (
	// ErrBadSignature means the container's magic bytes are wrong for the
	// format the decoder expected.
	ErrBadSignature FormatErrorKind = iota
	// ErrMissingPart means a required archive member or compound-file
	// stream is absent.
	ErrMissingPart
	// ErrPassword means the content is password protected or encrypted.
	ErrPassword
	// ErrUnsupported means the input uses a feature the decoder does not
	// implement.  Distinct from ErrCorrupt: the input is well formed.
	ErrUnsupported
	// ErrCorrupt means the input is malformed or truncated.
	ErrCorrupt
	// ErrEncoding means character data could not be decoded.
	ErrEncoding
	// ErrIo is the catch-all for failures of the underlying byte source;
	// the detail carries the cause.
	ErrIo
)

// String returns the kind's name, e.g. "password" or "corrupt".
func (k FormatErrorKind) String() string {
	switch k {
	case ErrBadSignature:
		return "bad signature"
	case ErrMissingPart:
		return "missing part"
	case ErrPassword:
		return "password protected"
	case ErrUnsupported:
		return "unsupported"
	case ErrCorrupt:
		return "corrupt"
	case ErrEncoding:
		return "encoding"
	case ErrIo:
		return "io"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// formatErrorString builds the message shared by the per-format error
// types: "<format>: <kind>: <detail>: <cause>".
func formatErrorString(format string, kind FormatErrorKind, detail string, err error) string {
	s := format + ": " + kind.String()
	if detail != "" {
		s += ": " + detail
	}
	if err != nil {
		s += ": " + err.Error()
	}
	return s
}

// XlsxError is a failure reported by an XLSX decoder.
type XlsxError struct {
	Kind   FormatErrorKind
	Detail string
	Err    error // underlying cause, may be nil
}

func (e *XlsxError) Error() string {
	return formatErrorString("xlsx", e.Kind, e.Detail, e.Err)
}

func (e *XlsxError) Unwrap() error { return e.Err }

// ToError wraps e in the unifying *Error without losing the variant:
// errors.As on the result recovers e itself.
func (e *XlsxError) ToError() *Error { return &Error{err: e, format: FormatXlsx} }

// XlsError is a failure reported by a legacy XLS (BIFF) decoder.
type XlsError struct {
	Kind   FormatErrorKind
	Detail string
	Err    error
}

func (e *XlsError) Error() string {
	return formatErrorString("xls", e.Kind, e.Detail, e.Err)
}

func (e *XlsError) Unwrap() error { return e.Err }

// ToError wraps e in the unifying *Error without losing the variant.
func (e *XlsError) ToError() *Error { return &Error{err: e, format: FormatXls} }

// XlsbError is a failure reported by an XLSB decoder.
type XlsbError struct {
	Kind   FormatErrorKind
	Detail string
	Err    error
}

func (e *XlsbError) Error() string {
	return formatErrorString("xlsb", e.Kind, e.Detail, e.Err)
}

func (e *XlsbError) Unwrap() error { return e.Err }

// ToError wraps e in the unifying *Error without losing the variant.
func (e *XlsbError) ToError() *Error { return &Error{err: e, format: FormatXlsb} }

// OdsError is a failure reported by an ODS decoder.
type OdsError struct {
	Kind   FormatErrorKind
	Detail string
	Err    error
}

func (e *OdsError) Error() string {
	return formatErrorString("ods", e.Kind, e.Detail, e.Err)
}

func (e *OdsError) Unwrap() error { return e.Err }

// ToError wraps e in the unifying *Error without losing the variant.
func (e *OdsError) ToError() *Error { return &Error{err: e, format: FormatOds} }

// VbaError is a failure reported while probing or extracting a VBA project.
type VbaError struct {
	Kind   FormatErrorKind
	Detail string
	Err    error
}

func (e *VbaError) Error() string {
	return formatErrorString("vba", e.Kind, e.Detail, e.Err)
}

func (e *VbaError) Unwrap() error { return e.Err }

// ToError wraps e in the unifying *Error without losing the variant.
func (e *VbaError) ToError() *Error { return &Error{err: e} }

// DeError is a deserialization failure: well-formed container, malformed
// content (bad XML, bad record payloads, invalid UTF-16, ...).
type DeError struct {
	Kind   FormatErrorKind
	Detail string
	Err    error
}

func (e *DeError) Error() string {
	return formatErrorString("deserialize", e.Kind, e.Detail, e.Err)
}

func (e *DeError) Unwrap() error { return e.Err }

// ToError wraps e in the unifying *Error without losing the variant.
func (e *DeError) ToError() *Error { return &Error{err: e} }

// Error is the unifying error type of the reading core.  It carries exactly
// one of:
//
//   - a format-specific error (*XlsxError, *XlsError, *XlsbError,
//     *OdsError, *VbaError, *DeError), reachable through errors.As — the
//     wrapping is lossless, so matching recovers the original variant;
//   - an Io message, for failures of the underlying byte source; or
//   - a Msg message, for generic failures with no more specific home
//     (unknown format, no decoder linked).
type Error struct {
	err    error      // wrapped format error, nil for Io/Msg
	msg    string     // Io/Msg payload
	io     bool       // the message is an I/O failure
	format FileFormat // producing format, FormatUnknown for Io/Msg/Vba/De
}

// NewMsgError returns a generic Msg error.
func NewMsgError(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// NewIoError returns an Io error carrying the cause's message.
func NewIoError(err error) *Error {
	return &Error{msg: err.Error(), io: true}
}

func (e *Error) Error() string {
	switch {
	case e.err != nil:
		return e.err.Error()
	case e.io:
		return "io: " + e.msg
	default:
		return e.msg
	}
}

// Unwrap exposes the wrapped format error, so errors.As against *XlsxError
// and friends matches through an *Error.
func (e *Error) Unwrap() error { return e.err }

// Source returns the file format whose decoder produced the error, or
// FormatUnknown for Io, Msg, Vba, and De errors.
func (e *Error) Source() FileFormat { return e.format }

// IsIo reports whether this is the Io variant.
func (e *Error) IsIo() bool { return e.io }

// IsMsg reports whether this is the Msg variant.
func (e *Error) IsMsg() bool { return e.err == nil && !e.io }

// Msg returns the message of an Io or Msg error.  ok is false when the
// error wraps a format error instead.
func (e *Error) Msg() (string, bool) { return e.msg, e.err == nil }

// generalize converts any decoder error into the unifying *Error at the
// facade boundary.  Typed format errors keep their variant; anything else
// becomes an Io error.
func generalize(err error) *Error {
	switch e := err.(type) {
	case *Error:
		return e
	case *XlsxError:
		return e.ToError()
	case *XlsError:
		return e.ToError()
	case *XlsbError:
		return e.ToError()
	case *OdsError:
		return e.ToError()
	case *VbaError:
		return e.ToError()
	case *DeError:
		return e.ToError()
	default:
		return NewIoError(err)
	}
}

// SheetNotFoundError reports a request for a sheet that does not exist.
// It is a logical-usage error, deliberately distinct from the I/O and
// malformed-input classes above.
type SheetNotFoundError struct {
	Name  string // requested name; empty for by-index lookups
	Index int    // requested index; -1 for by-name lookups
}

func (e *SheetNotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("sheet %q not found", e.Name)
	}
	return fmt.Sprintf("sheet index %d out of range", e.Index)
}
