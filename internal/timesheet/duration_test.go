package timesheet

import "testing"

func TestParseHours(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"2,5", 150},
		{"2.5", 150},
		{"1.6", 96},
		{"8", 480},
		{"0", 0},
		{"-2", 0},
		{" 1,25 ", 75},
		{"0.1", 6},
	}
	for _, tt := range tests {
		if got := ParseHours(tt.in); got != tt.want {
			t.Errorf("ParseHours(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, ""},
		{-30, ""},
		{120, "2"},
		{60, "1"},
		{90, "1.5"},
		{95, "1.6"},
		{6, "0.1"},
		{480, "8"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.in); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRoundTripSixMinuteMultiples(t *testing.T) {
	// Tenth-of-an-hour granularity survives the display round trip exactly.
	for m := 0; m <= 600; m += 6 {
		if got := ParseHours(FormatMinutes(m)); got != m {
			t.Errorf("ParseHours(FormatMinutes(%d)) = %d, want %d", m, got, m)
		}
	}
}

func TestRoundTripLossyOffGrid(t *testing.T) {
	// 95 minutes is not representable at one decimal hour; it displays as
	// "1.6" and re-parses as 96.
	if got := FormatMinutes(95); got != "1.6" {
		t.Fatalf("FormatMinutes(95) = %q, want %q", got, "1.6")
	}
	if got := ParseHours("1.6"); got != 96 {
		t.Fatalf("ParseHours(%q) = %d, want 96", "1.6", got)
	}
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"PT8H", 480},
		{"PT30M", 30},
		{"PT7H30M", 450},
		{"", 0},
		{"garbage", 0},
		{"PT45S", 0},
		{"PT1H30M20S", 90},
	}
	for _, tt := range tests {
		if got := ParseISODuration(tt.in); got != tt.want {
			t.Errorf("ParseISODuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
