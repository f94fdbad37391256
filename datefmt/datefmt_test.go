package datefmt_test

import (
	"testing"

	"github.com/skiftan/anysheet/datefmt"
)

func TestClassifyBuiltins(t *testing.T) {
	tests := []struct {
		name string
		id   int
		want datefmt.Class
	}{
		{"general", 0, datefmt.ClassNone},
		{"integer", 1, datefmt.ClassNone},
		{"percent", 9, datefmt.ClassNone},
		{"scientific", 11, datefmt.ClassNone},
		{"short date", 14, datefmt.ClassDateTime},
		{"long date", 17, datefmt.ClassDateTime},
		{"time of day", 18, datefmt.ClassDateTime},
		{"datetime", 22, datefmt.ClassDateTime},
		{"below cjk block", 26, datefmt.ClassNone},
		{"cjk date low", 27, datefmt.ClassDateTime},
		{"cjk date high", 36, datefmt.ClassDateTime},
		{"accounting", 44, datefmt.ClassNone},
		{"elapsed mm:ss", 45, datefmt.ClassDuration},
		{"elapsed [h]:mm:ss", 46, datefmt.ClassDuration},
		{"elapsed mmss.0", 47, datefmt.ClassDuration},
		{"scientific variant", 48, datefmt.ClassNone},
		{"text", 49, datefmt.ClassNone},
		{"cjk variant low", 50, datefmt.ClassDateTime},
		{"cjk variant high", 58, datefmt.ClassDateTime},
		{"above builtin blocks", 59, datefmt.ClassNone},
		{"reserved below custom", 163, datefmt.ClassNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := datefmt.Classify(tc.id, ""); got != tc.want {
				t.Errorf("Classify(%d, \"\") = %v, want %v", tc.id, got, tc.want)
			}
		})
	}
}

func TestClassifyCustom(t *testing.T) {
	tests := []struct {
		name   string
		fmtStr string
		want   datefmt.Class
	}{
		{"empty", "", datefmt.ClassNone},
		{"plain number", "0.00", datefmt.ClassNone},
		{"thousands", "#,##0", datefmt.ClassNone},
		{"currency", `"$"#,##0.00`, datefmt.ClassNone},
		{"date", "yyyy-mm-dd", datefmt.ClassDateTime},
		{"datetime", "dd/mm/yyyy hh:mm", datefmt.ClassDateTime},
		{"time only", "hh:mm:ss", datefmt.ClassDateTime},
		{"elapsed hours", "[h]:mm:ss", datefmt.ClassDuration},
		{"elapsed minutes", "[mm]:ss", datefmt.ClassDuration},
		{"quoted d is not a date", `0.0" d"`, datefmt.ClassNone},
		{"red condition is not a date", "[Red]0.00", datefmt.ClassNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := datefmt.Classify(164, tc.fmtStr); got != tc.want {
				t.Errorf("Classify(164, %q) = %v, want %v", tc.fmtStr, got, tc.want)
			}
		})
	}
}

func TestIsDateFormat(t *testing.T) {
	if !datefmt.IsDateFormat(14, "") {
		t.Error("IsDateFormat(14) = false")
	}
	if !datefmt.IsDateFormat(46, "") {
		t.Error("IsDateFormat(46) = false")
	}
	if datefmt.IsDateFormat(2, "") {
		t.Error("IsDateFormat(2) = true")
	}
	if !datefmt.IsDateFormat(200, "d-mmm-yy") {
		t.Error("IsDateFormat(200, d-mmm-yy) = false")
	}
}
