// Package datefmt classifies Excel number formats as date/time, duration,
// or plain numeric.
//
// Decoders need this classification to type raw cell floats: a float whose
// cell format is a date format is a date serial, one whose format is an
// elapsed-time format is a duration serial, and anything else is just a
// number.  Rendering of formatted display strings is out of scope; only the
// classification is provided.
//
// Built-in numFmtIds follow ECMA-376 §18.8.30.  Custom format strings are
// tokenized with [github.com/xuri/nfp] and classified from the resulting
// token stream.
package datefmt

import "github.com/xuri/nfp"

// Class is the date/time classification of a number format.
type Class uint8

const (
	// ClassNone marks a plain numeric or text format.
	ClassNone Class = iota
	// ClassDateTime marks a calendar date, time-of-day, or datetime format.
	ClassDateTime
	// ClassDuration marks an elapsed-time format such as [h]:mm:ss.
	ClassDuration
)

// String returns "none", "datetime", or "duration".
func (c Class) String() string {
	switch c {
	case ClassDateTime:
		return "datetime"
	case ClassDuration:
		return "duration"
	}
	return "none"
}

// Classify determines the class of the number format with the given
// numFmtId.  For built-in ids (id < 164) fmtStr is ignored; for custom ids
// fmtStr must be the format string from the workbook's styles part, and an
// empty fmtStr classifies as none.
func Classify(id int, fmtStr string) Class {
	switch {
	case id >= 14 && id <= 22:
		// 14-17 date, 18-21 time of day, 22 datetime.
		return ClassDateTime
	case id >= 27 && id <= 36:
		// Locale-specific CJK date formats.
		return ClassDateTime
	case id >= 45 && id <= 47:
		// Elapsed mm:ss, [h]:mm:ss, mmss.0.
		return ClassDuration
	case id >= 50 && id <= 58:
		// Locale-specific CJK date formats, variant set.
		return ClassDateTime
	}
	if id < 164 {
		return ClassNone
	}
	return classifyCustom(fmtStr)
}

// IsDateFormat reports whether the format is a date, time, or duration
// format, i.e. whether a float in a cell with this format is a serial
// number rather than a plain number.
func IsDateFormat(id int, fmtStr string) bool {
	return Classify(id, fmtStr) != ClassNone
}

// classifyCustom classifies a custom format string from its nfp token
// stream.  An elapsed token ([h], [mm], [ss]) anywhere makes the format a
// duration; otherwise any date/time token makes it a datetime.  Colour
// codes, conditions, and quoted literals never contribute — nfp has already
// separated them into their own token types, so no hand-rolled quote or
// bracket scanning is needed here.
func classifyCustom(fmtStr string) Class {
	if fmtStr == "" {
		return ClassNone
	}
	ps := nfp.NumberFormatParser()
	class := ClassNone
	for _, section := range ps.Parse(fmtStr) {
		for _, tok := range section.Items {
			switch tok.TType {
			case nfp.TokenTypeElapsedDateTimes:
				return ClassDuration
			case nfp.TokenTypeDateTimes:
				class = ClassDateTime
			}
		}
	}
	return class
}
