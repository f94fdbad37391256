package value_test

import (
	"testing"

	"github.com/skiftan/anysheet/value"
)

func TestDataZeroValueIsEmpty(t *testing.T) {
	var d value.Data
	if !d.IsEmpty() {
		t.Fatal("zero Data is not Empty")
	}
	if d != value.Empty() {
		t.Fatal("zero Data != Empty()")
	}
	if got := d.String(); got != "Empty" {
		t.Errorf("String() = %q, want %q", got, "Empty")
	}
}

// TestDataPredicates checks that each constructor answers true to exactly
// one Is predicate.
func TestDataPredicates(t *testing.T) {
	dt := value.NewExcelDateTime(1.5, value.SerialDateTime, false)

	tests := []struct {
		name string
		d    value.Data
		kind value.Kind
	}{
		{"empty", value.Empty(), value.KindEmpty},
		{"int", value.NewInt(42), value.KindInt},
		{"float", value.NewFloat(3.14), value.KindFloat},
		{"string", value.NewString("x"), value.KindString},
		{"bool", value.NewBool(true), value.KindBool},
		{"datetime", value.NewDateTime(dt), value.KindDateTime},
		{"datetime iso", value.NewDateTimeISO("2020-01-01T00:00:00"), value.KindDateTimeISO},
		{"duration iso", value.NewDurationISO("PT1H"), value.KindDurationISO},
		{"error", value.NewCellError(value.CellErrDiv0), value.KindError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.d.Kind() != tc.kind {
				t.Fatalf("Kind() = %v, want %v", tc.d.Kind(), tc.kind)
			}
			preds := map[value.Kind]bool{
				value.KindEmpty:       tc.d.IsEmpty(),
				value.KindInt:         tc.d.IsInt(),
				value.KindFloat:       tc.d.IsFloat(),
				value.KindString:      tc.d.IsString(),
				value.KindBool:        tc.d.IsBool(),
				value.KindDateTime:    tc.d.IsDateTime(),
				value.KindDateTimeISO: tc.d.IsDateTimeISO(),
				value.KindDurationISO: tc.d.IsDurationISO(),
				value.KindError:       tc.d.IsError(),
			}
			for k, got := range preds {
				if want := k == tc.kind; got != want {
					t.Errorf("predicate for %v = %v, want %v", k, got, want)
				}
			}
		})
	}
}

func TestDataGetters(t *testing.T) {
	if v, ok := value.NewInt(-7).GetInt(); !ok || v != -7 {
		t.Errorf("GetInt = %d, %v", v, ok)
	}
	if v, ok := value.NewFloat(2.5).GetFloat(); !ok || v != 2.5 {
		t.Errorf("GetFloat = %v, %v", v, ok)
	}
	if v, ok := value.NewString("hi").GetString(); !ok || v != "hi" {
		t.Errorf("GetString = %q, %v", v, ok)
	}
	if v, ok := value.NewBool(true).GetBool(); !ok || !v {
		t.Errorf("GetBool = %v, %v", v, ok)
	}
	if v, ok := value.NewCellError(value.CellErrNA).GetError(); !ok || v != value.CellErrNA {
		t.Errorf("GetError = %v, %v", v, ok)
	}

	// Mismatched getters fail closed.
	if _, ok := value.NewInt(1).GetFloat(); ok {
		t.Error("GetFloat on Int succeeded")
	}
	if _, ok := value.NewString("1").GetInt(); ok {
		t.Error("GetInt on String succeeded")
	}
	if _, ok := value.Empty().GetBool(); ok {
		t.Error("GetBool on Empty succeeded")
	}
}

func TestDataAsF64(t *testing.T) {
	tests := []struct {
		name string
		d    value.Data
		want float64
		ok   bool
	}{
		{"int", value.NewInt(42), 42.0, true},
		{"float", value.NewFloat(3.25), 3.25, true},
		{"datetime serial", value.NewDateTime(value.NewExcelDateTime(41235.45578, value.SerialDateTime, false)), 41235.45578, true},
		{"string", value.NewString("42"), 0, false},
		{"bool", value.NewBool(true), 0, false},
		{"empty", value.Empty(), 0, false},
		{"error", value.NewCellError(value.CellErrValue), 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.d.AsF64()
			if ok != tc.ok || got != tc.want {
				t.Errorf("AsF64() = %v, %v; want %v, %v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestDataAsI64(t *testing.T) {
	tests := []struct {
		name string
		d    value.Data
		want int64
		ok   bool
	}{
		{"int", value.NewInt(-5), -5, true},
		{"float truncates toward zero", value.NewFloat(3.9), 3, true},
		{"negative float truncates toward zero", value.NewFloat(-3.9), -3, true},
		{"datetime is not an int", value.NewDateTime(value.NewExcelDateTime(1, value.SerialDateTime, false)), 0, false},
		{"string", value.NewString("5"), 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.d.AsI64()
			if ok != tc.ok || got != tc.want {
				t.Errorf("AsI64() = %v, %v; want %v, %v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestDataAsString(t *testing.T) {
	tests := []struct {
		name string
		d    value.Data
		want string
		ok   bool
	}{
		{"string", value.NewString("abc"), "abc", true},
		{"datetime iso", value.NewDateTimeISO("2020-06-01"), "2020-06-01", true},
		{"duration iso", value.NewDurationISO("PT30M"), "PT30M", true},
		{"int is not stringified", value.NewInt(42), "", false},
		{"float is not stringified", value.NewFloat(1.5), "", false},
		{"bool is not stringified", value.NewBool(false), "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.d.AsString()
			if ok != tc.ok || got != tc.want {
				t.Errorf("AsString() = %q, %v; want %q, %v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestDataString(t *testing.T) {
	tests := []struct {
		d    value.Data
		want string
	}{
		{value.NewInt(42), "Int(42)"},
		{value.NewFloat(1.5), "Float(1.5)"},
		{value.NewString("42"), `String("42")`},
		{value.NewBool(true), "Bool(true)"},
		{value.NewCellError(value.CellErrDiv0), "Error(#DIV/0!)"},
		{value.NewDateTimeISO("2020-01-02"), `DateTimeISO("2020-01-02")`},
	}
	for _, tc := range tests {
		if got := tc.d.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestCellErrorCodes(t *testing.T) {
	tests := []struct {
		code byte
		text string
	}{
		{0x00, "#NULL!"},
		{0x07, "#DIV/0!"},
		{0x0F, "#VALUE!"},
		{0x17, "#REF!"},
		{0x1D, "#NAME?"},
		{0x24, "#NUM!"},
		{0x2A, "#N/A"},
		{0x2B, "#GETTING_DATA"},
	}
	for _, tc := range tests {
		e, ok := value.CellErrorFromCode(tc.code)
		if !ok {
			t.Errorf("CellErrorFromCode(0x%02X) not recognized", tc.code)
			continue
		}
		if e.String() != tc.text {
			t.Errorf("code 0x%02X renders %q, want %q", tc.code, e.String(), tc.text)
		}
		back, ok := value.CellErrorFromText(tc.text)
		if !ok || back != e {
			t.Errorf("CellErrorFromText(%q) = %v, %v; want %v", tc.text, back, ok, e)
		}
	}

	if _, ok := value.CellErrorFromCode(0x55); ok {
		t.Error("unknown code recognized")
	}
	if _, ok := value.CellErrorFromText("#BOGUS!"); ok {
		t.Error("unknown text recognized")
	}
}
