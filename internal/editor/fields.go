package editor

import (
	"fmt"

	"github.com/ryokoh/cueline/internal/timecode"
)

// one boundary of the structured timestamp editor
type TimeFields struct {
	Hours        int
	Minutes      int
	Seconds      int
	Milliseconds int
}

func (f TimeFields) Validate() error {
	if f.Hours < 0 || f.Hours > 23 {
		return fmt.Errorf("hours %d out of range 0-23", f.Hours)
	}
	if f.Minutes < 0 || f.Minutes > 59 {
		return fmt.Errorf("minutes %d out of range 0-59", f.Minutes)
	}
	if f.Seconds < 0 || f.Seconds > 59 {
		return fmt.Errorf("seconds %d out of range 0-59", f.Seconds)
	}
	if f.Milliseconds < 0 || f.Milliseconds > 999 {
		return fmt.Errorf("milliseconds %d out of range 0-999", f.Milliseconds)
	}
	return nil
}

func (f TimeFields) TotalSeconds() float64 {
	return timecode.FromFields(f.Hours, f.Minutes, f.Seconds, f.Milliseconds)
}

// splits a seconds value into editor fields
func FieldsFromSeconds(seconds float64) TimeFields {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int(seconds*1000 + 0.5)
	return TimeFields{
		Hours:        totalMillis / 3600000,
		Minutes:      (totalMillis / 60000) % 60,
		Seconds:      (totalMillis / 1000) % 60,
		Milliseconds: totalMillis % 1000,
	}
}

// a pending change from the timestamp editor
type FieldEdit struct {
	Start TimeFields
	End   TimeFields
	Text  string
}

// duration preview shown while editing, floored at zero
func (e FieldEdit) Duration() float64 {
	d := e.End.TotalSeconds() - e.Start.TotalSeconds()
	if d < 0 {
		return 0
	}
	return d
}

func (e FieldEdit) Validate() error {
	if err := e.Start.Validate(); err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	if err := e.End.Validate(); err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	return nil
}

// non-blocking validation warnings. A duration below the minimum is
// flagged but deliberately still applicable.
func (e FieldEdit) Warnings(minDuration float64) []string {
	var warnings []string
	if e.Duration() < minDuration {
		warnings = append(warnings, fmt.Sprintf(
			"duration %.3fs is below the %.1fs minimum", e.Duration(), minDuration))
	}
	return warnings
}
