package server

import (
	"github.com/ryokoh/cueline/internal/cue"
	"github.com/ryokoh/cueline/internal/editor"
	"github.com/ryokoh/cueline/internal/timeline"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type LoadRequest struct {
	Content string `json:"content"`
}

type LoadResponse struct {
	Cues int `json:"cues"`
}

type CueResponse struct {
	Number       int     `json:"number"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
	Text         string  `json:"text"`
	Active       bool    `json:"active"`
}

type CuesResponse struct {
	Cues []CueResponse `json:"cues"`
}

type InsertRequest struct {
	AtSeconds float64 `json:"at_seconds"`
}

type InsertResponse struct {
	Index int `json:"index"`
}

type TimeFieldsRequest struct {
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
	Seconds      int `json:"seconds"`
	Milliseconds int `json:"milliseconds"`
}

type EditRequest struct {
	Start TimeFieldsRequest `json:"start"`
	End   TimeFieldsRequest `json:"end"`
	Text  string            `json:"text"`
}

type EditResponse struct {
	Warnings []string `json:"warnings"`
}

type TextRequest struct {
	Text string `json:"text"`
}

type PanRequest struct {
	PointerX float64 `json:"pointer_x"`
}

type DragRequest struct {
	Index    int     `json:"index"`
	Part     string  `json:"part"`
	PointerX float64 `json:"pointer_x"`
}

type MoveRequest struct {
	PointerX float64 `json:"pointer_x"`
}

type MoveResponse struct {
	Changed bool `json:"changed"`
}

type ZoomRequest struct {
	Factor float64 `json:"factor"`
}

type SeekRequest struct {
	Seconds float64 `json:"seconds"`
}

type TickRequest struct {
	CurrentTime float64 `json:"current_time"`
	Playing     bool    `json:"playing"`
}

type TickResponse struct {
	ActiveIndex  int     `json:"active_index"`
	CursorX      float64 `json:"cursor_x"`
	ScrollTarget float64 `json:"scroll_target"`
	Scrolled     bool    `json:"scrolled"`
	Label        string  `json:"label"`
}

type SearchResponse struct {
	Indices []int `json:"indices"`
}

type FrameResponse struct {
	Markers    []timeline.Marker `json:"markers"`
	Blocks     []timeline.Block  `json:"blocks"`
	CursorX    float64           `json:"cursor_x"`
	Offset     float64           `json:"offset"`
	TotalWidth float64           `json:"total_width"`
	Zoom       float64           `json:"zoom"`
}

func cueToResponse(c cue.Cue, active bool) CueResponse {
	return CueResponse{
		Number:       c.Number,
		Start:        c.Start,
		End:          c.End,
		StartSeconds: c.StartSeconds,
		EndSeconds:   c.EndSeconds,
		Text:         c.Text,
		Active:       active,
	}
}

func frameToResponse(f editor.Frame) FrameResponse {
	return FrameResponse{
		Markers:    f.Markers,
		Blocks:     f.Blocks,
		CursorX:    f.CursorX,
		Offset:     f.Offset,
		TotalWidth: f.TotalWidth,
		Zoom:       f.Zoom,
	}
}
