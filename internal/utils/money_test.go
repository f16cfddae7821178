package utils

import "testing"

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(292.5); got != "292.50" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatRupee(t *testing.T) {
	cases := map[float64]string{
		0:         "Rs 0.00",
		75:        "Rs 75.00",
		1234.5:    "Rs 1,234.50",
		1234567.8: "Rs 1,234,567.80",
		-32.5:     "-Rs 32.50",
	}
	for in, want := range cases {
		if got := FormatRupee(in); got != want {
			t.Errorf("FormatRupee(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  New   Delhi\t"); got != "New Delhi" {
		t.Fatalf("got %q", got)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2026-10-14"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseDate("14/10/2026"); err == nil {
		t.Fatalf("expected error for non ISO date")
	}
}
