package snapcast

import (
	"errors"
	"testing"
	"time"
)

func TestParseClockDuration(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"90", 90},
		{"02:15", 135},
		{"1:02:03", 3723},
		{"0:00", 0},
		{"10:00:00", 36000},
	}
	for _, tc := range cases {
		got, err := ParseClockDuration(tc.in)
		if err != nil {
			t.Errorf("ParseClockDuration(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClockDuration(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseClockDurationRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "a:b", "-5", "1:2:3:4", "1:-2"} {
		if _, err := ParseClockDuration(in); err == nil {
			t.Errorf("ParseClockDuration(%q): expected error", in)
		}
	}
}

func TestFormatClockDuration(t *testing.T) {
	if got := FormatClockDuration(3723 * time.Second); got != "1:02:03" {
		t.Fatalf("FormatClockDuration = %q", got)
	}
	if got := FormatClockDuration(0); got != "0:00:00" {
		t.Fatalf("FormatClockDuration zero = %q", got)
	}
}

func TestConvertFieldValueDuration(t *testing.T) {
	got, err := ConvertFieldValue("media_duration", "1:02:03")
	if err != nil {
		t.Fatalf("ConvertFieldValue: %v", err)
	}
	if got != int64(3723) {
		t.Fatalf("converted = %v (%T)", got, got)
	}
}

func TestConvertFieldValuePubDate(t *testing.T) {
	got, err := ConvertFieldValue("pub_date", "2024-05-01 14:30")
	if err != nil {
		t.Fatalf("ConvertFieldValue: %v", err)
	}
	want := time.Date(2024, 5, 1, 14, 30, 0, 0, time.Local).UTC().Format(time.RFC3339)
	if got != want {
		t.Fatalf("converted = %v, want %v", got, want)
	}
}

func TestConvertFieldValuePubDateWithOffset(t *testing.T) {
	got, err := ConvertFieldValue("pub_date", "2024-05-01T14:30:00+02:00")
	if err != nil {
		t.Fatalf("ConvertFieldValue: %v", err)
	}
	if got != "2024-05-01T12:30:00Z" {
		t.Fatalf("converted = %v", got)
	}
}

func TestConvertFieldValuePassthrough(t *testing.T) {
	got, err := ConvertFieldValue("title", "A New Title")
	if err != nil {
		t.Fatalf("ConvertFieldValue: %v", err)
	}
	if got != "A New Title" {
		t.Fatalf("converted = %v", got)
	}
}

func TestValidateRef(t *testing.T) {
	for _, ref := range []string{"0", "7", "-1", "0b9c5c6e-8c7a-4b61-9f6e-0f1f4c9a2b3d"} {
		if err := ValidateRef(ref); err != nil {
			t.Errorf("ValidateRef(%q): %v", ref, err)
		}
	}
	for _, ref := range []string{"", "-2", "abc", "12ab"} {
		err := ValidateRef(ref)
		var invalid *InvalidIDError
		if !errors.As(err, &invalid) {
			t.Errorf("ValidateRef(%q): expected InvalidIDError, got %v", ref, err)
		}
	}
}
