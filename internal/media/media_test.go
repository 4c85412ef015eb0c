package media

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"movie.mp4", true},
		{"MOVIE.MKV", true},
		{"clip.webm", true},
		{"song.mp3", false},
		{"notes.txt", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsVideoFile(tt.path); got != tt.want {
			t.Errorf("IsVideoFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"voice.WAV", true},
		{"track.flac", true},
		{"movie.mp4", false},
		{"readme.md", false},
	}
	for _, tt := range tests {
		if got := IsAudioFile(tt.path); got != tt.want {
			t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsMediaFile(t *testing.T) {
	if !IsMediaFile("a.mp4") || !IsMediaFile("a.mp3") {
		t.Error("media extensions not recognized")
	}
	if IsMediaFile("a.srt") {
		t.Error("subtitle file reported as media")
	}
}

func TestDurationMissingFile(t *testing.T) {
	if _, err := Duration("/nonexistent/clip.mp4"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExtractAudioMissingInput(t *testing.T) {
	err := ExtractAudio(context.Background(), "/nonexistent/clip.mp4", "/tmp/out.mp3", DefaultAudioOptions())
	if err == nil {
		t.Error("expected error for missing input")
	}
}

func TestExtractAudioCancelledContext(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.mp3")
	if err := os.WriteFile(in, []byte("not real audio"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.mp3")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := ExtractAudio(ctx, in, out, DefaultAudioOptions()); err == nil {
		t.Error("expected error with cancelled context")
	}
	if _, err := os.Stat(out); err == nil {
		t.Error("output produced despite cancellation")
	}
}

func TestDefaultAudioOptions(t *testing.T) {
	opts := DefaultAudioOptions()
	if opts.Format != "mp3" || opts.SampleRate != 16000 || opts.Channels != 1 {
		t.Errorf("unexpected defaults: %+v", opts)
	}
}
