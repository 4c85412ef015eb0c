// Package cue holds the ordered subtitle cue list and its editing
// operations. Every cue carries both the canonical SRT timestamp strings
// and the derived float seconds; mutations always update both together.
package cue

import (
	"sort"
	"strings"

	"github.com/ryokoh/cueline/internal/timecode"
)

// single subtitle entry
type Cue struct {
	Number       int
	Start        string
	End          string
	StartSeconds float64
	EndSeconds   float64
	Text         string
}

// builds a cue from a time range in seconds
func New(number int, startSeconds, endSeconds float64, text string) Cue {
	return Cue{
		Number:       number,
		Start:        timecode.Format(startSeconds),
		End:          timecode.Format(endSeconds),
		StartSeconds: startSeconds,
		EndSeconds:   endSeconds,
		Text:         text,
	}
}

// updates both time representations. Ordering and minimum duration are the
// caller's responsibility; the drag controller clamps before calling.
func (c *Cue) SetTimeRange(startSeconds, endSeconds float64) {
	c.StartSeconds = startSeconds
	c.EndSeconds = endSeconds
	c.Start = timecode.Format(startSeconds)
	c.End = timecode.Format(endSeconds)
}

func (c *Cue) Duration() float64 {
	return c.EndSeconds - c.StartSeconds
}

// reports whether t falls inside the cue's range, inclusive on both ends
func (c *Cue) Contains(t float64) bool {
	return t >= c.StartSeconds && t <= c.EndSeconds
}

// ordered sequence of cues
type List []Cue

// reassigns dense 1-based numbers in list order
func (l List) Renumber() {
	for i := range l {
		l[i].Number = i + 1
	}
}

// sorts by ascending start time and renumbers
func (l List) SortByStart() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].StartSeconds < l[j].StartSeconds
	})
	l.Renumber()
}

// creates a cue covering [atSeconds, atSeconds+duration], places it in
// sorted position, renumbers, and returns the insertion index
func (l *List) Insert(atSeconds, duration float64, text string) int {
	c := New(0, atSeconds, atSeconds+duration, text)

	pos := sort.Search(len(*l), func(i int) bool {
		return (*l)[i].StartSeconds > atSeconds
	})

	*l = append(*l, Cue{})
	copy((*l)[pos+1:], (*l)[pos:])
	(*l)[pos] = c
	l.Renumber()

	return pos
}

// deletes the cue at index and renumbers the remainder. A stale or out of
// range index is a no-op.
func (l *List) Remove(index int) bool {
	if index < 0 || index >= len(*l) {
		return false
	}
	*l = append((*l)[:index], (*l)[index+1:]...)
	l.Renumber()
	return true
}

func (l List) SetText(index int, text string) bool {
	if index < 0 || index >= len(l) {
		return false
	}
	l[index].Text = text
	return true
}

// returns indexes of cues whose text contains term, case-insensitive.
// An empty term matches everything.
func (l List) Search(term string) []int {
	term = strings.ToLower(strings.TrimSpace(term))
	matches := make([]int, 0, len(l))
	for i := range l {
		if term == "" || strings.Contains(strings.ToLower(l[i].Text), term) {
			matches = append(matches, i)
		}
	}
	return matches
}

// end time of the last cue in list order, zero for an empty list
func (l List) Duration() float64 {
	var max float64
	for i := range l {
		if l[i].EndSeconds > max {
			max = l[i].EndSeconds
		}
	}
	return max
}
