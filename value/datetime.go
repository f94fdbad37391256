package value

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// SerialKind distinguishes the two interpretations of an Excel serial
// number: a point on the calendar, or an elapsed amount of time.
type SerialKind uint8

const (
	// SerialDateTime marks a calendar date/time serial.
	SerialDateTime SerialKind = iota
	// SerialDuration marks an elapsed-time serial (e.g. a cell formatted
	// with [h]:mm:ss).
	SerialDuration
)

// ExcelDateTime is an Excel date/time or duration serial number.
//
// Excel encodes dates as fractional day counts since an epoch: day units in
// the integer part, time of day in the fraction.  Two epoch systems exist —
// the default 1900 system and the legacy Mac 1904 system — and the 1900
// system perpetuates the Lotus 1-2-3 bug that treats 1900 as a leap year.
// No timezone is represented.
type ExcelDateTime struct {
	serial   float64
	kind     SerialKind
	date1904 bool
}

// NewExcelDateTime wraps a raw serial number.  date1904 selects the 1904
// epoch system and must match the workbook's date-system flag.
func NewExcelDateTime(serial float64, kind SerialKind, date1904 bool) ExcelDateTime {
	return ExcelDateTime{serial: serial, kind: kind, date1904: date1904}
}

// AsF64 returns the raw serial number.
func (d ExcelDateTime) AsF64() float64 { return d.serial }

// IsDateTime reports whether the serial encodes a calendar date/time.
func (d ExcelDateTime) IsDateTime() bool { return d.kind == SerialDateTime }

// IsDuration reports whether the serial encodes an elapsed time.
func (d ExcelDateTime) IsDuration() bool { return d.kind == SerialDuration }

// Is1904 reports whether the serial uses the 1904 epoch system.
func (d ExcelDateTime) Is1904() bool { return d.date1904 }

// String renders the serial and kind, e.g. "41235.45578 (datetime)".
func (d ExcelDateTime) String() string {
	k := "datetime"
	if d.kind == SerialDuration {
		k = "duration"
	}
	return strconv.FormatFloat(d.serial, 'g', -1, 64) + " (" + k + ")"
}

// Excel dates only reach serial 2,958,465 (9999-12-31).  The bound below is
// one above the last valid 1900-system serial; the 1904 system is offset by
// 1462 days (four years including the 1904 leap day).
const (
	maxSerial1900 = 2_958_466
	maxSerial1904 = maxSerial1900 - 1462
)

// AsTime converts a calendar serial to a time.Time in UTC.
//
// In the 1900 system the Lotus 1-2-3 leap-year bug applies: serial 60 maps
// to the nonexistent 1900-02-29, so
//
//   - serial == 0  → midnight on 1900-01-01
//   - 1 ≤ serial ≤ 60 → no compensation (serial 60 yields 1900-03-01)
//   - serial ≥ 61 → one day is subtracted to skip the phantom leap day
//
// In the 1904 system serial 0 is 1904-01-01 and no compensation exists.
// The fractional day is rounded to whole seconds with the same half-second
// rule the rendering engines use, rolling over to the next day when the
// rounding lands exactly on midnight.
//
// AsTime fails for duration serials, NaN/Inf, negative serials, and serials
// past 9999-12-31.
func (d ExcelDateTime) AsTime() (time.Time, error) {
	if d.kind != SerialDateTime {
		return time.Time{}, fmt.Errorf("value: AsTime on duration serial %v", d.serial)
	}
	if math.IsNaN(d.serial) || math.IsInf(d.serial, 0) {
		return time.Time{}, fmt.Errorf("value: invalid serial %v", d.serial)
	}
	if d.serial < 0 {
		return time.Time{}, fmt.Errorf("value: negative serial %v not supported", d.serial)
	}

	fracSec, rollover := serialToFracSec(d.serial)

	if d.date1904 {
		if d.serial > maxSerial1904 {
			return time.Time{}, fmt.Errorf("value: serial %v exceeds maximum %d (1904 system)", d.serial, maxSerial1904)
		}
		base := time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
		days := int(d.serial) + rollover
		// AddDate for the day count: a Duration in nanoseconds overflows
		// int64 after ~106,751 days, well short of serial 9999-12-31.
		return base.AddDate(0, 0, days).Add(time.Duration(fracSec) * time.Second), nil
	}

	if d.serial > maxSerial1900 {
		return time.Time{}, fmt.Errorf("value: serial %v exceeds maximum %d", d.serial, maxSerial1900)
	}
	base := time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	days := int(d.serial) + rollover
	switch {
	case days == 0:
		return time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(fracSec) * time.Second), nil
	case days >= 61:
		return base.AddDate(0, 0, days-1).Add(time.Duration(fracSec) * time.Second), nil
	default:
		return base.AddDate(0, 0, days).Add(time.Duration(fracSec) * time.Second), nil
	}
}

// AsDuration converts a duration serial (fractional days of elapsed time)
// to a time.Duration, rounded to whole seconds with the same half-second
// rule as AsTime.  It fails for calendar serials, NaN/Inf, and serials
// whose nanosecond count would overflow int64 (about 106,751 days).
func (d ExcelDateTime) AsDuration() (time.Duration, error) {
	if d.kind != SerialDuration {
		return 0, fmt.Errorf("value: AsDuration on datetime serial %v", d.serial)
	}
	if math.IsNaN(d.serial) || math.IsInf(d.serial, 0) {
		return 0, fmt.Errorf("value: invalid serial %v", d.serial)
	}
	const maxDays = float64(math.MaxInt64) / float64(24*time.Hour)
	if d.serial > maxDays || d.serial < -maxDays {
		return 0, fmt.Errorf("value: duration serial %v overflows", d.serial)
	}
	neg := d.serial < 0
	abs := math.Abs(d.serial)
	fracSec, rollover := serialToFracSec(abs)
	days := int64(abs) + int64(rollover)
	dur := time.Duration(days)*24*time.Hour + time.Duration(fracSec)*time.Second
	if neg {
		dur = -dur
	}
	return dur, nil
}

// serialToFracSec converts the fractional-day part of a serial to a whole
// second count within the day (0–86399) plus a day-rollover amount.
//
// A small epsilon is added before rounding so that values stored with
// floating-point drift (e.g. 0.999999999 for midnight) land on the intended
// second; rounding that reaches exactly 86400 s rolls over to the next day
// instead of clamping.
func serialToFracSec(serial float64) (fracSec int64, rollover int) {
	const roundEpsilon = 1e-9
	fracDay := (serial - math.Trunc(serial)) + roundEpsilon
	const nanosPerDay = float64(24 * 60 * 60 * 1e9)
	durNanos := time.Duration(fracDay * nanosPerDay)
	ns := int(durNanos % time.Second)
	secs := int64(durNanos / time.Second)
	if ns > 500_000_000 {
		secs++
	}
	if secs < 0 {
		secs = 0
	}
	rollover = int(secs / 86400)
	return secs % 86400, rollover
}
