package editor

import (
	"math"
	"strings"
	"testing"
)

func TestTimeFieldsValidate(t *testing.T) {
	tests := []struct {
		name    string
		fields  TimeFields
		wantErr string
	}{
		{"zero", TimeFields{}, ""},
		{"max", TimeFields{23, 59, 59, 999}, ""},
		{"hours high", TimeFields{24, 0, 0, 0}, "hours"},
		{"minutes high", TimeFields{0, 60, 0, 0}, "minutes"},
		{"seconds high", TimeFields{0, 0, 60, 0}, "seconds"},
		{"millis high", TimeFields{0, 0, 0, 1000}, "milliseconds"},
		{"negative", TimeFields{0, -1, 0, 0}, "minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fields.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestFieldsFromSecondsRoundTrip(t *testing.T) {
	for _, seconds := range []float64{0, 0.4, 5.25, 65.001, 3725.4, 86399.999} {
		f := FieldsFromSeconds(seconds)
		if err := f.Validate(); err != nil {
			t.Errorf("fields for %v invalid: %v", seconds, err)
		}
		if got := f.TotalSeconds(); math.Abs(got-seconds) > 0.0005 {
			t.Errorf("round trip of %v = %v", seconds, got)
		}
	}
}

func TestFieldEditDurationPreview(t *testing.T) {
	edit := FieldEdit{
		Start: TimeFields{0, 0, 2, 0},
		End:   TimeFields{0, 0, 5, 500},
	}
	if d := edit.Duration(); d != 3.5 {
		t.Errorf("duration = %v, want 3.5", d)
	}

	// end before start floors at zero rather than going negative
	backwards := FieldEdit{
		Start: TimeFields{0, 0, 5, 0},
		End:   TimeFields{0, 0, 2, 0},
	}
	if d := backwards.Duration(); d != 0 {
		t.Errorf("backwards duration = %v, want 0", d)
	}
}

func TestFieldEditWarningsBelowMinimum(t *testing.T) {
	edit := FieldEdit{
		Start: TimeFields{0, 0, 2, 0},
		End:   TimeFields{0, 0, 2, 200},
	}

	warnings := edit.Warnings(0.5)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if !strings.Contains(warnings[0], "below") {
		t.Errorf("warning text = %q", warnings[0])
	}

	ok := FieldEdit{
		Start: TimeFields{0, 0, 2, 0},
		End:   TimeFields{0, 0, 3, 0},
	}
	if w := ok.Warnings(0.5); len(w) != 0 {
		t.Errorf("unexpected warnings: %v", w)
	}
}
