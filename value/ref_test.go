package value_test

import (
	"testing"

	"github.com/skiftan/anysheet/value"
)

func TestDataRefSharedString(t *testing.T) {
	r := value.NewRefSharedString("pooled")
	if !r.IsSharedString() {
		t.Fatal("IsSharedString() = false")
	}
	// Shared strings still count as strings for type checks.
	if !r.IsString() {
		t.Error("IsString() = false for shared string")
	}
	if got, ok := r.GetString(); !ok || got != "pooled" {
		t.Errorf("GetString() = %q, %v", got, ok)
	}
	if got, ok := r.AsString(); !ok || got != "pooled" {
		t.Errorf("AsString() = %q, %v", got, ok)
	}
	if got := r.String(); got != `SharedString("pooled")` {
		t.Errorf("String() = %q", got)
	}
}

func TestDataRefOwnedStringIsNotShared(t *testing.T) {
	r := value.NewRefString("own")
	if !r.IsString() || r.IsSharedString() {
		t.Errorf("IsString() = %v, IsSharedString() = %v", r.IsString(), r.IsSharedString())
	}
}

// TestToDataRoundTrip checks that ToData preserves kind and payload for
// every variant, with SharedString collapsing to an owned String.
func TestToDataRoundTrip(t *testing.T) {
	dt := value.NewExcelDateTime(2.5, value.SerialDuration, true)

	tests := []struct {
		name string
		ref  value.DataRef
		want value.Data
	}{
		{"empty", value.EmptyRef(), value.Empty()},
		{"int", value.NewRefInt(42), value.NewInt(42)},
		{"float", value.NewRefFloat(1.25), value.NewFloat(1.25)},
		{"string", value.NewRefString("a"), value.NewString("a")},
		{"shared string becomes owned string", value.NewRefSharedString("b"), value.NewString("b")},
		{"bool", value.NewRefBool(true), value.NewBool(true)},
		{"datetime", value.NewRefDateTime(dt), value.NewDateTime(dt)},
		{"datetime iso", value.NewRefDateTimeISO("2021-03-04"), value.NewDateTimeISO("2021-03-04")},
		{"duration iso", value.NewRefDurationISO("PT2H"), value.NewDurationISO("PT2H")},
		{"error", value.NewRefCellError(value.CellErrRef), value.NewCellError(value.CellErrRef)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ref.ToData(); got != tc.want {
				t.Errorf("ToData() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDataRefCoercions(t *testing.T) {
	if v, ok := value.NewRefInt(7).AsF64(); !ok || v != 7.0 {
		t.Errorf("AsF64 on Int = %v, %v", v, ok)
	}
	if v, ok := value.NewRefFloat(-2.9).AsI64(); !ok || v != -2 {
		t.Errorf("AsI64 on Float = %v, %v", v, ok)
	}
	if _, ok := value.NewRefBool(true).AsF64(); ok {
		t.Error("AsF64 on Bool succeeded")
	}
	if v, ok := value.NewRefBool(true).AsBool(); !ok || !v {
		t.Errorf("AsBool = %v, %v", v, ok)
	}
}
