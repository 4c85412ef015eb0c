package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ryokoh/cueline/internal/cue"
	"github.com/ryokoh/cueline/internal/media"
)

// implements Transcriber using the OpenAI Audio API
type OpenAITranscriber struct {
	client  openai.Client
	model   string
	options Options
}

// verbose_json response structure from Whisper
type whisperVerboseResponse struct {
	Text     string      `json:"text"`
	Segments []timedText `json:"segments"`
	Language string      `json:"language"`
	Duration float64     `json:"duration"`
}

func NewOpenAITranscriber(opts Options) (*OpenAITranscriber, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}

	return &OpenAITranscriber{
		client:  openai.NewClient(option.WithAPIKey(opts.APIKey)),
		model:   model,
		options: opts,
	}, nil
}

func (t *OpenAITranscriber) Transcribe(ctx context.Context, mediaPath string) (*Result, error) {
	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("media file not found: %s", mediaPath)
	}

	file, err := os.Open(mediaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open media file: %w", err)
	}
	defer file.Close()

	duration, _ := media.Duration(mediaPath)

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(t.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"segment"},
	}
	if t.options.Language != "" {
		params.Language = openai.String(t.options.Language)
	}
	if t.options.Prompt != "" {
		params.Prompt = openai.String(t.options.Prompt)
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	cues, err := parseVerboseJSON(resp.RawJSON(), duration)
	if err != nil {
		// segment timing missing; keep the text as one full-length cue
		cues = cue.List{cue.New(1, 0, duration, strings.TrimSpace(resp.Text))}
	}

	return &Result{
		Cues:     cues,
		Language: t.options.Language,
		Duration: duration,
	}, nil
}

func parseVerboseJSON(rawJSON string, fallbackDuration float64) (cue.List, error) {
	if rawJSON == "" {
		return nil, fmt.Errorf("empty response")
	}

	var resp whisperVerboseResponse
	if err := json.Unmarshal([]byte(rawJSON), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse verbose_json response: %w", err)
	}

	if len(resp.Segments) == 0 {
		if resp.Text == "" {
			return nil, fmt.Errorf("no segments or text in response")
		}
		dur := fallbackDuration
		if resp.Duration > 0 {
			dur = resp.Duration
		}
		return cue.List{cue.New(1, 0, dur, strings.TrimSpace(resp.Text))}, nil
	}

	return segmentsToCues(resp.Segments), nil
}
