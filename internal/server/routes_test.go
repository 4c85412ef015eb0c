package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ryokoh/cueline/internal/editor"
	"github.com/ryokoh/cueline/internal/logging"
)

const sampleSRT = "1\n00:00:01,000 --> 00:00:03,000\nfirst line\n\n2\n00:00:05,000 --> 00:00:08,000\nsecond line\n"

func newTestRouter(t *testing.T) (http.Handler, *Editor) {
	t.Helper()
	session := editor.NewSession(600)
	session.SetMediaDuration(60)
	ed := NewEditor(session)
	router := NewRouter(ServerConfig{
		Addr:   ":0",
		Editor: ed,
		Logger: logging.NewLogger(false),
	})
	return router, ed
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func loadSample(t *testing.T, router http.Handler) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/subtitles/load", LoadRequest{Content: sampleSRT})
	if rec.Code != http.StatusOK {
		t.Fatalf("load status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing request id header")
	}
}

func TestLoadAndList(t *testing.T) {
	router, _ := newTestRouter(t)
	loadSample(t, router)

	rec := doJSON(t, router, http.MethodGet, "/subtitles", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp CuesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Cues) != 2 {
		t.Fatalf("got %d cues, want 2", len(resp.Cues))
	}
	if resp.Cues[0].Text != "first line" || resp.Cues[0].Start != "00:00:01,000" {
		t.Errorf("cues[0] = %+v", resp.Cues[0])
	}
}

func TestExport(t *testing.T) {
	router, _ := newTestRouter(t)
	loadSample(t, router)

	rec := doJSON(t, router, http.MethodGet, "/subtitles/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/x-subrip" {
		t.Errorf("content type = %q", got)
	}
	if !strings.Contains(rec.Body.String(), "00:00:01,000 --> 00:00:03,000") {
		t.Errorf("export body = %q", rec.Body.String())
	}
}

func TestInsert(t *testing.T) {
	router, _ := newTestRouter(t)
	loadSample(t, router)

	rec := doJSON(t, router, http.MethodPost, "/subtitles", InsertRequest{AtSeconds: 10})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp InsertResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Index != 2 {
		t.Errorf("index = %d, want 2", resp.Index)
	}
}

func TestInsertRejectedDuringGesture(t *testing.T) {
	router, ed := newTestRouter(t)
	loadSample(t, router)

	ed.With(func(s *editor.Session) {
		if !s.BeginPan(100) {
			t.Fatal("pan not started")
		}
	})

	rec := doJSON(t, router, http.MethodPost, "/subtitles", InsertRequest{AtSeconds: 10})
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestEditFields(t *testing.T) {
	router, _ := newTestRouter(t)
	loadSample(t, router)

	req := EditRequest{
		Start: TimeFieldsRequest{Seconds: 1},
		End:   TimeFieldsRequest{Seconds: 1, Milliseconds: 200},
		Text:  "edited",
	}
	rec := doJSON(t, router, http.MethodPut, "/subtitles/0", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp EditResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// 0.2s duration is below the minimum, applied with a warning
	if len(resp.Warnings) != 1 {
		t.Errorf("warnings = %v, want one", resp.Warnings)
	}

	list := doJSON(t, router, http.MethodGet, "/subtitles", nil)
	var cues CuesResponse
	if err := json.Unmarshal(list.Body.Bytes(), &cues); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cues.Cues[0].Text != "edited" || cues.Cues[0].End != "00:00:01,200" {
		t.Errorf("cues[0] = %+v", cues.Cues[0])
	}
}

func TestEditRejectsInvalidFields(t *testing.T) {
	router, _ := newTestRouter(t)
	loadSample(t, router)

	req := EditRequest{
		Start: TimeFieldsRequest{Minutes: 75},
		End:   TimeFieldsRequest{Seconds: 5},
		Text:  "x",
	}
	rec := doJSON(t, router, http.MethodPut, "/subtitles/0", req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	router, _ := newTestRouter(t)
	loadSample(t, router)

	rec := doJSON(t, router, http.MethodDelete, "/subtitles/0", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unconfirmed delete status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/subtitles/0?confirm=true", nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("confirmed delete status = %d, want 204", rec.Code)
	}

	list := doJSON(t, router, http.MethodGet, "/subtitles", nil)
	var cues CuesResponse
	if err := json.Unmarshal(list.Body.Bytes(), &cues); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cues.Cues) != 1 || cues.Cues[0].Number != 1 {
		t.Errorf("cues after delete = %+v", cues.Cues)
	}
}

func TestDeleteAndEditConflictDuringDrag(t *testing.T) {
	router, _ := newTestRouter(t)
	loadSample(t, router)

	rec := doJSON(t, router, http.MethodPost, "/gestures/drag", DragRequest{Index: 1, Part: "body", PointerX: 0})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("drag begin status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodDelete, "/subtitles/0?confirm=true", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("delete during drag status = %d, want 409", rec.Code)
	}

	req := EditRequest{
		Start: TimeFieldsRequest{Seconds: 2},
		End:   TimeFieldsRequest{Seconds: 4},
		Text:  "x",
	}
	rec = doJSON(t, router, http.MethodPut, "/subtitles/0", req)
	if rec.Code != http.StatusConflict {
		t.Errorf("edit during drag status = %d, want 409", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/gestures/up", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("pointer up status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/subtitles/0?confirm=true", nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete after release status = %d, want 204", rec.Code)
	}
}

func TestDragWorkflow(t *testing.T) {
	router, _ := newTestRouter(t)
	loadSample(t, router)

	rec := doJSON(t, router, http.MethodPost, "/gestures/drag", DragRequest{Index: 0, Part: "end", PointerX: 30})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("drag begin status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/gestures/move", MoveRequest{PointerX: 50})
	if rec.Code != http.StatusOK {
		t.Fatalf("move status = %d", rec.Code)
	}
	var moved MoveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &moved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !moved.Changed {
		t.Error("move reported no change")
	}

	rec = doJSON(t, router, http.MethodPost, "/gestures/up", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("pointer up status = %d", rec.Code)
	}

	// end edge moved 20px right at 10 px/s
	list := doJSON(t, router, http.MethodGet, "/subtitles", nil)
	var cues CuesResponse
	if err := json.Unmarshal(list.Body.Bytes(), &cues); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cues.Cues[0].End != "00:00:05,000" {
		t.Errorf("end = %q, want 00:00:05,000", cues.Cues[0].End)
	}
}

func TestDragRejectsUnknownPart(t *testing.T) {
	router, _ := newTestRouter(t)
	loadSample(t, router)

	rec := doJSON(t, router, http.MethodPost, "/gestures/drag", DragRequest{Index: 0, Part: "middle", PointerX: 30})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestTick(t *testing.T) {
	router, _ := newTestRouter(t)
	loadSample(t, router)

	rec := doJSON(t, router, http.MethodPost, "/playback/tick", TickRequest{CurrentTime: 6.0, Playing: true})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp TickResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ActiveIndex != 1 {
		t.Errorf("active index = %d, want 1", resp.ActiveIndex)
	}
	if resp.CursorX != 60 {
		t.Errorf("cursor x = %v, want 60", resp.CursorX)
	}
	if resp.Label != "00:00:06.000" {
		t.Errorf("label = %q", resp.Label)
	}
}

func TestSearch(t *testing.T) {
	router, _ := newTestRouter(t)
	loadSample(t, router)

	rec := doJSON(t, router, http.MethodGet, "/subtitles/search?q=second", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Indices) != 1 || resp.Indices[0] != 1 {
		t.Errorf("indices = %v, want [1]", resp.Indices)
	}
}

func TestFrame(t *testing.T) {
	router, _ := newTestRouter(t)
	loadSample(t, router)

	rec := doJSON(t, router, http.MethodGet, "/timeline/frame", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp FrameResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Blocks) != 2 {
		t.Errorf("blocks = %d, want 2", len(resp.Blocks))
	}
	if len(resp.Markers) == 0 {
		t.Error("no markers in frame")
	}
	if resp.TotalWidth < 5000 {
		t.Errorf("total width = %v, want canvas floor", resp.TotalWidth)
	}
}

func TestZoomValidation(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/timeline/zoom", ZoomRequest{Factor: 0})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, "/timeline/zoom", ZoomRequest{Factor: 1.1})
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
