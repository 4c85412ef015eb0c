package timeline

import (
	"strings"

	"github.com/ryokoh/cueline/internal/cue"
	"github.com/ryokoh/cueline/internal/timecode"
)

// transient per-session timeline state, never persisted
type View struct {
	Scale         float64
	Zoom          float64
	Offset        float64
	ViewportWidth float64
	TotalWidth    float64
}

func NewView(viewportWidth float64) View {
	return View{
		Scale:         DefaultScale,
		Zoom:          1,
		ViewportWidth: viewportWidth,
		TotalWidth:    MinCanvasWidth,
	}
}

func (v *View) PixelsPerSecond() float64 {
	return v.Scale * v.Zoom
}

// recomputes the canvas width for a media duration and re-clamps the
// offset against it
func (v *View) SetDuration(durationSeconds float64) {
	v.TotalWidth = TotalWidth(durationSeconds, v.Scale, v.Zoom)
	v.Offset = ClampOffset(v.Offset, v.TotalWidth, v.ViewportWidth)
}

func (v *View) SetViewportWidth(width float64) {
	v.ViewportWidth = width
	v.Offset = ClampOffset(v.Offset, v.TotalWidth, v.ViewportWidth)
}

func (v *View) Scroll(desired float64) {
	v.Offset = ClampOffset(desired, v.TotalWidth, v.ViewportWidth)
}

// zooms by factor around the viewport center, then refreshes the canvas
// width for the given duration
func (v *View) ZoomBy(factor, durationSeconds float64) {
	v.Zoom, v.Offset = ZoomAround(v.Zoom, factor, v.Offset, v.ViewportWidth, v.TotalWidth)
	v.SetDuration(durationSeconds)
}

// ruler tick at a pixel position
type Marker struct {
	X     float64 `json:"x"`
	Label string  `json:"label"`
}

// ruler ticks for a media duration, spaced by the zoom-dependent interval
func Markers(durationSeconds, scale, zoom float64) []Marker {
	if durationSeconds <= 0 {
		return nil
	}

	interval := timecode.MarkerInterval(zoom)
	markers := make([]Marker, 0, int(durationSeconds/interval)+1)
	for t := 0.0; t <= durationSeconds; t += interval {
		markers = append(markers, Marker{
			X:     SecondsToX(t, scale, zoom),
			Label: timecode.ShortLabel(t),
		})
	}
	return markers
}

// cue rectangle on the timeline
type Block struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Width  float64 `json:"width"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// pixel geometry for every cue; activeIndex marks the highlighted block
func Blocks(cues cue.List, scale, zoom float64, activeIndex int) []Block {
	blocks := make([]Block, len(cues))
	for i := range cues {
		x := SecondsToX(cues[i].StartSeconds, scale, zoom)
		width := SecondsToX(cues[i].EndSeconds, scale, zoom) - x
		blocks[i] = Block{
			Index:  i,
			X:      x,
			Width:  width,
			Label:  TruncateLabel(cues[i].Text, width),
			Active: i == activeIndex,
		}
	}
	return blocks
}

// shortens cue text to what fits in a block, at a rough 6px per character
func TruncateLabel(text string, width float64) string {
	maxChars := int(width / 6)
	runes := []rune(strings.ReplaceAll(text, "\n", " "))
	if len(runes) <= maxChars {
		return string(runes)
	}

	keep := maxChars - 3
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + "..."
}
