// Package transcribe turns media files into cue lists. The default
// provider is the self-hosted transcription service; OpenAI Whisper and
// Gemini are direct alternatives for when no service is running.
package transcribe

import (
	"context"
	"fmt"
	"strings"

	"github.com/ryokoh/cueline/internal/cue"
	"github.com/ryokoh/cueline/internal/logging"
)

// transcription result
type Result struct {
	Cues     cue.List
	Language string
	Duration float64
}

// interface for media transcription
type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath string) (*Result, error)
}

// transcription backend
type Provider string

const (
	ProviderService Provider = "service"
	ProviderOpenAI  Provider = "openai"
	ProviderGemini  Provider = "gemini"
)

// transcription options
type Options struct {
	Language string
	Model    string
	Device   string // service only: cpu or cuda
	Endpoint string // service only: base URL
	APIKey   string // openai / gemini
	Prompt   string
}

// creates a transcriber for the given provider
func Factory(ctx context.Context, provider Provider, opts Options, logger *logging.Logger) (Transcriber, error) {
	switch provider {
	case ProviderService:
		return NewServiceTranscriber(opts, logger)
	case ProviderOpenAI:
		return NewOpenAITranscriber(opts)
	case ProviderGemini:
		return NewGeminiTranscriber(ctx, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// timedText is the common shape both API providers produce before cue
// numbering is applied
type timedText struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// converts raw timed segments into a numbered cue list, dropping
// empty-text segments
func segmentsToCues(segments []timedText) cue.List {
	var cues cue.List
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		cues = append(cues, cue.New(len(cues)+1, seg.Start, seg.End, text))
	}
	return cues
}
