// Package timecode converts between seconds and the SRT timestamp format.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// reported when a timestamp string does not match HH:MM:SS,mmm
var ErrFormat = errors.New("malformed timestamp")

var timestampRegex = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2}),(\d{3})$`)

// formats seconds as HH:MM:SS,mmm. Hours are total elapsed time, not
// wall clock, so they are never wrapped. Negative input clamps to zero.
func Format(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	totalMillis := int(math.Round(seconds * 1000))
	hours := totalMillis / 3600000
	minutes := (totalMillis / 60000) % 60
	secs := (totalMillis / 1000) % 60
	millis := totalMillis % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// parses an SRT timestamp into seconds
func Parse(ts string) (float64, error) {
	matches := timestampRegex.FindStringSubmatch(ts)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrFormat, ts)
	}

	hours, _ := strconv.Atoi(matches[1])
	minutes, _ := strconv.Atoi(matches[2])
	secs, _ := strconv.Atoi(matches[3])
	millis, _ := strconv.Atoi(matches[4])

	return FromFields(hours, minutes, secs, millis), nil
}

// composes seconds from individual timestamp fields
func FromFields(hours, minutes, secs, millis int) float64 {
	return float64(hours)*3600 +
		float64(minutes)*60 +
		float64(secs) +
		float64(millis)/1000
}

// formats seconds as MM:SS for timeline ruler ticks. Minutes are not
// wrapped at 60.
func ShortLabel(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	minutes := int(seconds) / 60
	secs := int(seconds) % 60

	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// marker spacing in seconds for a given zoom level. The breakpoints are a
// deliberate discrete table, kept stable so tick density stays familiar.
func MarkerInterval(zoom float64) float64 {
	switch {
	case zoom <= 0.8:
		return 60
	case zoom <= 1.2:
		return 30
	case zoom <= 2:
		return 10
	case zoom <= 3:
		return 5
	default:
		return 1
	}
}
