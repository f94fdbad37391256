package value_test

import (
	"testing"
	"time"

	"github.com/skiftan/anysheet/value"
)

func TestAsTime1900System(t *testing.T) {
	tests := []struct {
		name    string
		serial  float64
		want    time.Time
		wantErr bool
	}{
		{
			name:   "serial 0 gives 1900-01-01",
			serial: 0,
			want:   time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "serial 0 with time component",
			serial: 0.5,
			want:   time.Date(1900, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:   "serial 1 gives 1900-01-01",
			serial: 1,
			want:   time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "serial 59 gives 1900-02-28",
			serial: 59,
			want:   time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "serial 60 is the phantom leap day",
			serial: 60,
			want:   time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "serial 61 compensates for the Lotus bug",
			serial: 61,
			want:   time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			// pyxlsb: convert_date(41235.45578) == datetime(2012, 11, 22, 10, 56, 19)
			name:   "fractional day rounds to whole seconds",
			serial: 41235.45578,
			want:   time.Date(2012, 11, 22, 10, 56, 19, 0, time.UTC),
		},
		{
			// Beyond ~106,751 days a nanosecond Duration no longer holds
			// the offset, so day addition must not go through Duration.
			name:   "far future beyond Duration range",
			serial: 401769,
			want:   time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "last representable day",
			serial: 2958465,
			want:   time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "past 9999-12-31",
			serial:  2958467,
			wantErr: true,
		},
		{
			name:    "negative",
			serial:  -1,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dt := value.NewExcelDateTime(tc.serial, value.SerialDateTime, false)
			got, err := dt.AsTime()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("AsTime(%v) = %v, want error", tc.serial, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("AsTime(%v): %v", tc.serial, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("AsTime(%v) = %v, want %v", tc.serial, got, tc.want)
			}
		})
	}
}

func TestAsTime1904System(t *testing.T) {
	tests := []struct {
		name   string
		serial float64
		want   time.Time
	}{
		{"serial 0 is the 1904 epoch", 0, time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"serial 1", 1, time.Date(1904, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"no phantom leap day", 61, time.Date(1904, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"far future beyond Duration range", 400307, time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dt := value.NewExcelDateTime(tc.serial, value.SerialDateTime, true)
			got, err := dt.AsTime()
			if err != nil {
				t.Fatalf("AsTime(%v): %v", tc.serial, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("AsTime(%v) = %v, want %v", tc.serial, got, tc.want)
			}
		})
	}
}

func TestAsTimeRejectsDurationSerial(t *testing.T) {
	dt := value.NewExcelDateTime(1.5, value.SerialDuration, false)
	if _, err := dt.AsTime(); err == nil {
		t.Fatal("AsTime on duration serial succeeded")
	}
}

func TestAsDuration(t *testing.T) {
	tests := []struct {
		name   string
		serial float64
		want   time.Duration
	}{
		{"zero", 0, 0},
		{"half day", 0.5, 12 * time.Hour},
		{"36 hours", 1.5, 36 * time.Hour},
		{"negative", -0.25, -6 * time.Hour},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dt := value.NewExcelDateTime(tc.serial, value.SerialDuration, false)
			got, err := dt.AsDuration()
			if err != nil {
				t.Fatalf("AsDuration(%v): %v", tc.serial, err)
			}
			if got != tc.want {
				t.Errorf("AsDuration(%v) = %v, want %v", tc.serial, got, tc.want)
			}
		})
	}
}

func TestAsDurationRejectsDatetimeSerial(t *testing.T) {
	dt := value.NewExcelDateTime(1.5, value.SerialDateTime, false)
	if _, err := dt.AsDuration(); err == nil {
		t.Fatal("AsDuration on datetime serial succeeded")
	}
}

func TestExcelDateTimeAccessors(t *testing.T) {
	dt := value.NewExcelDateTime(41235.45578, value.SerialDateTime, false)
	if dt.AsF64() != 41235.45578 {
		t.Errorf("AsF64() = %v", dt.AsF64())
	}
	if !dt.IsDateTime() || dt.IsDuration() || dt.Is1904() {
		t.Error("kind accessors disagree with constructor")
	}
	if got := dt.String(); got != "41235.45578 (datetime)" {
		t.Errorf("String() = %q", got)
	}

	dur := value.NewExcelDateTime(2, value.SerialDuration, true)
	if dur.IsDateTime() || !dur.IsDuration() || !dur.Is1904() {
		t.Error("kind accessors disagree with constructor")
	}
	if got := dur.String(); got != "2 (duration)" {
		t.Errorf("String() = %q", got)
	}
}
