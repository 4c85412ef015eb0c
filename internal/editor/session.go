package editor

import (
	"fmt"
	"strings"

	"github.com/ryokoh/cueline/internal/cue"
	"github.com/ryokoh/cueline/internal/timecode"
	"github.com/ryokoh/cueline/internal/timeline"
)

const (
	DefaultMinCueDuration = 0.5
	DefaultInsertDuration = 3.0
	DefaultInsertText     = "New subtitle"
)

// Session is the explicit application state: the cue list, the timeline
// view, playback position, the active cue, and the gesture controller.
// Components receive it by reference instead of reaching into a global.
//
// The session is not safe for concurrent use; callers that drive it from
// multiple goroutines (the HTTP server) serialize access themselves.
type Session struct {
	Cues cue.List
	View timeline.View

	MinCueDuration float64
	InsertDuration float64
	InsertText     string

	// media clock, fed by the owner of the playable resource
	Playhead float64
	Playing  bool
	Duration float64

	ActiveIndex int

	gestures    Controller
	forceScroll bool

	// fired only when the active cue index changes, never per tick
	OnActiveCue func(prev, next int)
}

func NewSession(viewportWidth float64) *Session {
	return &Session{
		View:           timeline.NewView(viewportWidth),
		MinCueDuration: DefaultMinCueDuration,
		InsertDuration: DefaultInsertDuration,
		InsertText:     DefaultInsertText,
		ActiveIndex:    -1,
	}
}

// replaces the cue list wholesale. Any in-progress gesture is cancelled
// so stale callbacks cannot mutate the new list.
func (s *Session) LoadSRT(content string) {
	s.gestures.Reset()
	s.Cues = cue.Parse(content)
	s.setActive(-1)
	if s.Duration == 0 {
		s.View.SetDuration(s.Cues.Duration())
	}
}

func (s *Session) ExportSRT() string {
	return cue.Serialize(s.Cues)
}

// records the real media duration once metadata is available
func (s *Session) SetMediaDuration(seconds float64) {
	s.Duration = seconds
	s.View.SetDuration(seconds)
}

// media duration when known, otherwise the end of the last cue
func (s *Session) TimelineDuration() float64 {
	if s.Duration > 0 {
		return s.Duration
	}
	return s.Cues.Duration()
}

// direct playback reposition; marks the next tick as a deliberate jump so
// auto-scroll runs even during playback
func (s *Session) Seek(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	s.Playhead = seconds
	s.forceScroll = true
}

// seeks to a cue's start and makes it current
func (s *Session) JumpToCue(index int) bool {
	if index < 0 || index >= len(s.Cues) {
		return false
	}
	s.Seek(s.Cues[index].StartSeconds)
	s.tickResolve(index)
	return true
}

func (s *Session) JumpPrev() bool {
	if s.ActiveIndex > 0 {
		return s.JumpToCue(s.ActiveIndex - 1)
	}
	return false
}

func (s *Session) JumpNext() bool {
	if s.ActiveIndex >= 0 && s.ActiveIndex < len(s.Cues)-1 {
		return s.JumpToCue(s.ActiveIndex + 1)
	}
	return false
}

func (s *Session) Replay() bool {
	if s.ActiveIndex >= 0 {
		return s.JumpToCue(s.ActiveIndex)
	}
	return false
}

// outcome of one playback tick
type TickResult struct {
	ActiveIndex  int
	CursorX      float64
	ScrollTarget float64
	Scrolled     bool
}

// Tick is the periodic cursor re-sync (and the timeupdate path): it
// advances the playhead, resolves the active cue, and decides whether the
// viewport should auto-scroll to follow the cursor. Auto-scroll is
// suppressed while media plays unless a deliberate seek set the transient
// force flag, which is consumed here.
func (s *Session) Tick(currentTime float64, playing bool) TickResult {
	s.Playhead = currentTime
	s.Playing = playing

	// the active cue is left alone mid-drag; the dragged cue's times are
	// moving under the pointer and highlighting churn would be noise
	if !s.gestures.DraggingCue() {
		s.tickResolve(cue.NoForcedIndex)
	}

	cursorX := timeline.SecondsToX(s.Playhead, s.View.Scale, s.View.Zoom)
	result := TickResult{ActiveIndex: s.ActiveIndex, CursorX: cursorX}

	force := s.forceScroll
	s.forceScroll = false
	if playing && !force {
		return result
	}

	if target, ok := timeline.AutoScrollTarget(cursorX, s.View.Offset, s.View.ViewportWidth); ok {
		s.View.Scroll(target)
		result.ScrollTarget = s.View.Offset
		result.Scrolled = true
	}
	return result
}

func (s *Session) tickResolve(forced int) {
	next := cue.Resolve(s.Cues, s.Playhead, forced)
	if next != s.ActiveIndex {
		s.setActive(next)
	}
}

func (s *Session) setActive(next int) {
	prev := s.ActiveIndex
	s.ActiveIndex = next
	if prev != next && s.OnActiveCue != nil {
		s.OnActiveCue(prev, next)
	}
}

// playhead position formatted for the timeline readout
func (s *Session) PlayheadLabel() string {
	return strings.Replace(timecode.Format(s.Playhead), ",", ".", 1)
}

// creates a cue at the clicked time with the default duration and text,
// returning its index. Fails (-1) while another gesture holds the list.
func (s *Session) InsertAt(clickSeconds float64) int {
	if !s.gestures.Idle() {
		return -1
	}
	if clickSeconds < 0 {
		clickSeconds = 0
	}
	idx := s.Cues.Insert(clickSeconds, s.InsertDuration, s.InsertText)

	// the active index may have shifted under the insertion
	if s.ActiveIndex >= idx {
		s.ActiveIndex++
	}
	return idx
}

// reports whether a pointer gesture currently holds the cue list. A
// field edit does not count: it is cancellable and holds no snapshot.
func (s *Session) PointerGestureActive() bool {
	return s.gestures.Panning() || s.gestures.DraggingCue()
}

// deletes a cue. Deletion is irreversible within the session, so it
// requires the caller to pass an explicit confirmation. Refused while a
// pointer gesture holds the list: removing a cue would shift the indices
// under the gesture's snapshot.
func (s *Session) Delete(index int, confirmed bool) bool {
	if !confirmed {
		return false
	}
	if s.PointerGestureActive() {
		return false
	}
	s.gestures.EndFieldEdit()
	if !s.Cues.Remove(index) {
		return false
	}
	if s.ActiveIndex == index {
		s.setActive(-1)
	} else if s.ActiveIndex > index {
		s.ActiveIndex--
	}
	return true
}

func (s *Session) SetCueText(index int, text string) bool {
	return s.Cues.SetText(index, text)
}

// applies a structured timestamp edit to the cue under edit. Field range
// violations reject the edit; a below-minimum duration only warns.
func (s *Session) ApplyFieldEdit(index int, edit FieldEdit) ([]string, error) {
	if index < 0 || index >= len(s.Cues) {
		return nil, fmt.Errorf("cue %d does not exist", index)
	}
	if s.PointerGestureActive() {
		return nil, fmt.Errorf("cue %d is held by an active gesture", index)
	}
	if err := edit.Validate(); err != nil {
		return nil, err
	}

	s.Cues[index].SetTimeRange(edit.Start.TotalSeconds(), edit.End.TotalSeconds())
	s.Cues[index].Text = edit.Text
	s.gestures.EndFieldEdit()

	return edit.Warnings(s.MinCueDuration), nil
}

// gesture entry points, all guarded on the controller's Idle state

func (s *Session) BeginPan(pointerX float64) bool {
	return s.gestures.BeginPan(pointerX, s.View.Offset)
}

func (s *Session) BeginCueDrag(index int, part DragPart, pointerX float64) bool {
	return s.gestures.BeginCueDrag(s.Cues, index, part, pointerX)
}

func (s *Session) BeginFieldEdit(index int) bool {
	return s.gestures.BeginFieldEdit(s.Cues, index)
}

func (s *Session) CancelFieldEdit() {
	s.gestures.EndFieldEdit()
}

// routes a pointer move to whichever gesture is active. Reports whether
// anything changed and therefore needs a re-render.
func (s *Session) PointerMove(pointerX float64) bool {
	if desired, ok := s.gestures.MovePan(pointerX); ok {
		s.View.Scroll(desired)
		return true
	}
	return s.gestures.MoveCueDrag(s.Cues, pointerX, s.View.PixelsPerSecond(), s.MinCueDuration)
}

// global pointer-up: drags track the pointer even outside the timeline,
// so release always lands here regardless of where the pointer is
func (s *Session) PointerUp() {
	s.gestures.Release()
}

func (s *Session) Gestures() *Controller {
	return &s.gestures
}

func (s *Session) ZoomBy(factor float64) {
	s.View.ZoomBy(factor, s.TimelineDuration())
}

// time under a click at content-relative pixel x
func (s *Session) TimeAtX(x float64) float64 {
	return timeline.XToSeconds(x, s.View.Scale, s.View.Zoom)
}

// renderable snapshot of the whole timeline
type Frame struct {
	Markers    []timeline.Marker
	Blocks     []timeline.Block
	CursorX    float64
	Offset     float64
	TotalWidth float64
	Zoom       float64
}

func (s *Session) Frame() Frame {
	return Frame{
		Markers:    timeline.Markers(s.TimelineDuration(), s.View.Scale, s.View.Zoom),
		Blocks:     timeline.Blocks(s.Cues, s.View.Scale, s.View.Zoom, s.ActiveIndex),
		CursorX:    timeline.SecondsToX(s.Playhead, s.View.Scale, s.View.Zoom),
		Offset:     s.View.Offset,
		TotalWidth: s.View.TotalWidth,
		Zoom:       s.View.Zoom,
	}
}
