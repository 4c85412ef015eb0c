package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ryokoh/cueline/internal/logging"
)

func newTestClient(baseURL string) *Client {
	c := NewClient(baseURL, logging.NewLogger(false))
	c.pollInterval = 5 * time.Millisecond
	return c
}

func writeMediaFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("not really video"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "clip.mp4" {
			t.Errorf("filename = %q, want clip.mp4", header.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"file_id": "f-123"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	fileID, err := client.Upload(context.Background(), writeMediaFixture(t))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if fileID != "f-123" {
		t.Errorf("fileID = %q, want f-123", fileID)
	}
}

func TestUploadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "disk full", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Upload(context.Background(), writeMediaFixture(t))
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	var remoteErr *Error
	if !errors.As(err, &remoteErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if remoteErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", remoteErr.StatusCode)
	}
	if !remoteErr.IsRetryable() {
		t.Error("500 should be retryable")
	}
}

func TestClientErrorNotRetryable(t *testing.T) {
	err := &Error{StatusCode: http.StatusBadRequest, Body: "missing file_id"}
	if err.IsRetryable() {
		t.Error("400 should not be retryable")
	}
}

func TestStartTranscription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/transcribe" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.FormValue("file_id"); got != "f-123" {
			t.Errorf("file_id = %q", got)
		}
		if got := r.FormValue("whisper_mode"); got != "whisper" {
			t.Errorf("whisper_mode = %q", got)
		}
		if got := r.FormValue("lang"); got != "ja" {
			t.Errorf("lang = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "t-9", "status": "pending"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	task, err := client.StartTranscription(context.Background(), "f-123", Options{
		Language: "ja",
		Model:    "small",
		Device:   "cuda",
	})
	if err != nil {
		t.Fatalf("StartTranscription: %v", err)
	}
	if task.ID != "t-9" {
		t.Errorf("task ID = %q, want t-9", task.ID)
	}
	if task.Terminal() {
		t.Error("pending task reported as terminal")
	}
}

func TestTranscribeFullWorkflow(t *testing.T) {
	const srt = "1\n00:00:01,000 -> placeholder"
	var polls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/upload":
			w.Write([]byte(`{"file_id": "f-1"}`))
		case "/api/transcribe":
			w.Write([]byte(`{"id": "t-1", "status": "pending"}`))
		case "/api/tasks/t-1":
			switch polls.Add(1) {
			case 1:
				w.Write([]byte(`{"id": "t-1", "status": "pending", "progress": 0}`))
			case 2:
				w.Write([]byte(`{"id": "t-1", "status": "processing", "progress": 0.5}`))
			default:
				w.Write([]byte(`{"id": "t-1", "status": "completed", "progress": 1, "result_url": "/api/results/t-1"}`))
			}
		case "/api/results/t-1":
			w.Write([]byte(srt))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer server.Close()

	var progress []float64
	client := newTestClient(server.URL)
	got, err := client.Transcribe(context.Background(), writeMediaFixture(t), Options{Language: "en"},
		func(p float64) { progress = append(progress, p) })
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got != srt {
		t.Errorf("result = %q, want %q", got, srt)
	}
	if len(progress) < 3 {
		t.Fatalf("progress callbacks = %d, want at least 3", len(progress))
	}
	if progress[len(progress)-1] != 1 {
		t.Errorf("final progress = %v, want 1", progress[len(progress)-1])
	}
}

func TestTranscribeFailedTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/upload":
			w.Write([]byte(`{"file_id": "f-1"}`))
		case "/api/transcribe":
			w.Write([]byte(`{"id": "t-1", "status": "pending"}`))
		case "/api/tasks/t-1":
			w.Write([]byte(`{"id": "t-1", "status": "failed", "error": "out of memory"}`))
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Transcribe(context.Background(), writeMediaFixture(t), Options{}, nil)
	if err == nil || err.Error() != "transcription failed: out of memory" {
		t.Fatalf("err = %v, want failure with service message", err)
	}
}

func TestTranscribeCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/upload":
			w.Write([]byte(`{"file_id": "f-1"}`))
		case "/api/transcribe":
			w.Write([]byte(`{"id": "t-1", "status": "pending"}`))
		case "/api/tasks/t-1":
			w.Write([]byte(`{"id": "t-1", "status": "processing", "progress": 0.1}`))
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	client := newTestClient(server.URL)
	_, err := client.Transcribe(ctx, writeMediaFixture(t), Options{}, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context deadline", err)
	}
}

func TestTranscribeRetriesServerErrorDuringPoll(t *testing.T) {
	var polls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/upload":
			w.Write([]byte(`{"file_id": "f-1"}`))
		case "/api/transcribe":
			w.Write([]byte(`{"id": "t-1", "status": "pending"}`))
		case "/api/tasks/t-1":
			if polls.Add(1) == 1 {
				http.Error(w, "busy", http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`{"id": "t-1", "status": "completed", "result_url": "/api/results/t-1"}`))
		case "/api/results/t-1":
			w.Write([]byte("done"))
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	got, err := client.Transcribe(context.Background(), writeMediaFixture(t), Options{}, nil)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got != "done" {
		t.Errorf("result = %q, want done", got)
	}
}
