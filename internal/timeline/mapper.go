// Package timeline maps between wall-clock seconds and pixel coordinates
// on a zoomable, scrollable timeline. The mapping functions are pure; the
// View struct carries the transient per-session state. No rendering
// happens here: callers get plain geometry and draw it however they like.
package timeline

const (
	// pixels per second before zoom is applied
	DefaultScale = 10.0

	MinZoom = 0.5
	MaxZoom = 5.0

	// canvas floor so the timeline is usable before media metadata loads
	MinCanvasWidth = 5000.0

	// fraction of the viewport treated as the auto-scroll edge zone
	edgeMargin = 0.1
)

func SecondsToX(seconds, scale, zoom float64) float64 {
	return seconds * scale * zoom
}

func XToSeconds(x, scale, zoom float64) float64 {
	return x / (scale * zoom)
}

// full canvas width for a media duration, never below MinCanvasWidth
func TotalWidth(durationSeconds, scale, zoom float64) float64 {
	w := durationSeconds * scale * zoom
	if w < MinCanvasWidth {
		return MinCanvasWidth
	}
	return w
}

// clamps a scroll offset to [0, max(0, totalWidth-viewportWidth)]
func ClampOffset(desired, totalWidth, viewportWidth float64) float64 {
	max := totalWidth - viewportWidth
	if max < 0 {
		max = 0
	}
	if desired < 0 {
		return 0
	}
	if desired > max {
		return max
	}
	return desired
}

func clampZoom(zoom float64) float64 {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// multiplies zoom by factor (clamped to [MinZoom, MaxZoom]) and solves for
// the offset that keeps the time at the viewport's horizontal center in
// place after rescaling
func ZoomAround(zoom, factor, offset, viewportWidth, totalWidth float64) (float64, float64) {
	newZoom := clampZoom(zoom * factor)
	if totalWidth <= 0 || zoom <= 0 {
		return newZoom, 0
	}

	centerRatio := (offset + viewportWidth/2) / totalWidth
	newTotal := totalWidth * (newZoom / zoom)
	newOffset := centerRatio*newTotal - viewportWidth/2

	return newZoom, ClampOffset(newOffset, newTotal, viewportWidth)
}

// returns the scroll position that centers the cursor when it has drifted
// into the 10% edge zones of the viewport. ok is false when the cursor is
// comfortably visible and no scroll is needed.
func AutoScrollTarget(cursorX, scrollLeft, viewportWidth float64) (float64, bool) {
	margin := viewportWidth * edgeMargin
	if cursorX >= scrollLeft+margin && cursorX <= scrollLeft+viewportWidth-margin {
		return 0, false
	}

	target := cursorX - viewportWidth/2
	if target < 0 {
		target = 0
	}
	return target, true
}
