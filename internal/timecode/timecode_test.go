package timecode

import (
	"errors"
	"math"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{1, "00:00:01,000"},
		{3.5, "00:00:03,500"},
		{3725.4, "01:02:05,400"},
		{59.999, "00:00:59,999"},
		{86400, "24:00:00,000"},
		{-2.5, "00:00:00,000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := Format(tt.seconds)
			if got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		ts   string
		want float64
	}{
		{"00:00:00,000", 0},
		{"00:00:01,000", 1},
		{"00:00:03,500", 3.5},
		{"01:02:05,400", 3725.4},
		{"23:59:59,999", 86399.999},
	}

	for _, tt := range tests {
		t.Run(tt.ts, func(t *testing.T) {
			got, err := Parse(tt.ts)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.ts, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Parse(%q) = %v, want %v", tt.ts, got, tt.want)
			}
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"1:02:03,400",
		"01:02:03.400",
		"01:02:03,40",
		"01:02:03",
		"garbage",
		"01:02:03,400 extra",
	}

	for _, ts := range bad {
		if _, err := Parse(ts); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", ts)
		} else if !errors.Is(err, ErrFormat) {
			t.Errorf("Parse(%q) error = %v, want ErrFormat", ts, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, seconds := range []float64{0, 0.001, 1.5, 61.25, 3599.999, 3725.4, 7261.001} {
		got, err := Parse(Format(seconds))
		if err != nil {
			t.Fatalf("round trip of %v failed: %v", seconds, err)
		}
		if math.Abs(got-seconds) > 0.0005 {
			t.Errorf("round trip of %v = %v", seconds, got)
		}
	}
}

func TestShortLabel(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{615, "10:15"},
		{3660, "61:00"}, // minutes not wrapped at 60
	}

	for _, tt := range tests {
		if got := ShortLabel(tt.seconds); got != tt.want {
			t.Errorf("ShortLabel(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestMarkerInterval(t *testing.T) {
	tests := []struct {
		zoom float64
		want float64
	}{
		{0.5, 60},
		{0.8, 60},
		{1.0, 30},
		{1.2, 30},
		{1.5, 10},
		{2.0, 10},
		{2.5, 5},
		{3.0, 5},
		{4.0, 1},
		{5.0, 1},
	}

	for _, tt := range tests {
		if got := MarkerInterval(tt.zoom); got != tt.want {
			t.Errorf("MarkerInterval(%v) = %v, want %v", tt.zoom, got, tt.want)
		}
	}
}

func TestFromFields(t *testing.T) {
	if got := FromFields(1, 2, 5, 400); math.Abs(got-3725.4) > 1e-9 {
		t.Errorf("FromFields(1,2,5,400) = %v, want 3725.4", got)
	}
}
