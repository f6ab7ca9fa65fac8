package sanitizer

import (
	"reflect"
	"testing"
)

func TestSanitizeDisplayName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims edges", "  Sharma Family  ", "Sharma Family"},
		{"collapses internal runs", "Oasis   The\tLawns", "Oasis The Lawns"},
		{"preserves casing", "Crystal HALL", "Crystal HALL"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeDisplayName(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSanitizeLabel(t *testing.T) {
	if got := SanitizeLabel("  Corporate   Dinner "); got != "corporate dinner" {
		t.Errorf("expected lowercase collapsed label, got %q", got)
	}
}

func TestSanitizeSliceDedupes(t *testing.T) {
	in := []string{" Paneer Tikka ", "paneer tikka", "", "Dal Makhani"}
	got := SanitizeSlice(in, SanitizeLabel)
	want := []string{"paneer tikka", "dal makhani"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestClampTaxPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{18, 18},
		{100, 100},
		{250, 100},
	}
	for _, tt := range tests {
		if got := ClampTaxPercent(tt.in); got != tt.want {
			t.Errorf("ClampTaxPercent(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestSanitizePhonePassesInvalidThrough(t *testing.T) {
	// Inputs failing the shape check come back unchanged for the validator
	// to reject.
	if got := SanitizePhone("not-a-phone"); got != "not-a-phone" {
		t.Errorf("expected pass-through, got %q", got)
	}
	if got := SanitizePhone(""); got != "" {
		t.Errorf("expected empty pass-through, got %q", got)
	}
}

func TestSanitizePhoneNormalizesE164(t *testing.T) {
	if got := SanitizePhone(" +919876543210 "); got != "+919876543210" {
		t.Errorf("expected E.164 output, got %q", got)
	}
}
