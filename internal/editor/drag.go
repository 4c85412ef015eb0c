// Package editor implements the interactive editing layer: the pointer
// gesture state machine for drag-based time editing, the structured
// timestamp field editor, and the session tying cues, timeline view and
// playback state together.
package editor

import (
	"github.com/ryokoh/cueline/internal/cue"
)

// region of a cue block a drag acts on
type DragPart string

const (
	PartStartEdge DragPart = "start"
	PartEndEdge   DragPart = "end"
	PartWholeBody DragPart = "body"
)

type gestureState int

const (
	stateIdle gestureState = iota
	statePanning
	stateDraggingCue
	stateEditingFields
)

// Controller is the gesture state machine. At most one gesture is active
// at a time: a timeline pan, a cue drag, or a field edit. Entry into any
// gesture is guarded on the Idle state; a new gesture attempted while
// another is active is ignored.
type Controller struct {
	state gestureState

	// cue drag: the snapshot of the original times lets every pointer
	// move be computed from the drag origin, so per-frame rounding never
	// accumulates
	cueIndex      int
	part          DragPart
	startPointerX float64
	originalStart float64
	originalEnd   float64

	// timeline pan
	panStartX      float64
	panStartOffset float64

	editIndex int
}

func (c *Controller) Idle() bool          { return c.state == stateIdle }
func (c *Controller) Panning() bool       { return c.state == statePanning }
func (c *Controller) DraggingCue() bool   { return c.state == stateDraggingCue }
func (c *Controller) EditingFields() bool { return c.state == stateEditingFields }

// index under edit or drag, -1 when neither is active
func (c *Controller) TargetIndex() int {
	switch c.state {
	case stateDraggingCue:
		return c.cueIndex
	case stateEditingFields:
		return c.editIndex
	default:
		return -1
	}
}

func (c *Controller) BeginPan(pointerX, currentOffset float64) bool {
	if c.state != stateIdle {
		return false
	}
	c.state = statePanning
	c.panStartX = pointerX
	c.panStartOffset = currentOffset
	return true
}

// desired scroll offset for the current pointer position; the caller
// clamps it into the view
func (c *Controller) MovePan(pointerX float64) (float64, bool) {
	if c.state != statePanning {
		return 0, false
	}
	return c.panStartOffset + (c.panStartX - pointerX), true
}

func (c *Controller) BeginCueDrag(cues cue.List, index int, part DragPart, pointerX float64) bool {
	if c.state != stateIdle {
		return false
	}
	if index < 0 || index >= len(cues) {
		return false
	}

	c.state = stateDraggingCue
	c.cueIndex = index
	c.part = part
	c.startPointerX = pointerX
	c.originalStart = cues[index].StartSeconds
	c.originalEnd = cues[index].EndSeconds
	return true
}

// applies the pointer position to the dragged cue. The new range always
// derives from the drag-start snapshot plus the total delta. Returns false
// when no cue drag is active or the index has gone stale.
func (c *Controller) MoveCueDrag(cues cue.List, pointerX, pixelsPerSecond, minDuration float64) bool {
	if c.state != stateDraggingCue {
		return false
	}
	if c.cueIndex < 0 || c.cueIndex >= len(cues) {
		return false
	}

	delta := (pointerX - c.startPointerX) / pixelsPerSecond

	newStart := c.originalStart
	newEnd := c.originalEnd

	switch c.part {
	case PartStartEdge:
		newStart = c.originalStart + delta
		if newStart < 0 {
			newStart = 0
		}
		if newEnd-newStart < minDuration {
			newStart = newEnd - minDuration
		}
	case PartEndEdge:
		newEnd = c.originalEnd + delta
		if newEnd < 0 {
			newEnd = 0
		}
		if newEnd-newStart < minDuration {
			newEnd = newStart + minDuration
		}
	case PartWholeBody:
		// the shared delta is floored so the start cannot cross zero;
		// both ends shift together and the duration is preserved
		if delta < -c.originalStart {
			delta = -c.originalStart
		}
		newStart = c.originalStart + delta
		newEnd = c.originalEnd + delta
	}

	cues[c.cueIndex].SetTimeRange(newStart, newEnd)
	return true
}

func (c *Controller) BeginFieldEdit(cues cue.List, index int) bool {
	if c.state != stateIdle {
		return false
	}
	if index < 0 || index >= len(cues) {
		return false
	}
	c.state = stateEditingFields
	c.editIndex = index
	return true
}

func (c *Controller) EndFieldEdit() {
	if c.state == stateEditingFields {
		c.state = stateIdle
	}
}

// pointer release: ends an active pan or cue drag. Field editing is
// closed explicitly, not by pointer-up.
func (c *Controller) Release() {
	if c.state == statePanning || c.state == stateDraggingCue {
		c.state = stateIdle
	}
}

// cancels whatever is active; used when the cue list is replaced
// wholesale so no stale gesture mutates the new list
func (c *Controller) Reset() {
	c.state = stateIdle
	c.cueIndex = 0
	c.editIndex = 0
}
