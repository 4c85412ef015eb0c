package transcribe

import (
	"context"
	"fmt"

	"github.com/ryokoh/cueline/internal/cue"
	"github.com/ryokoh/cueline/internal/logging"
	"github.com/ryokoh/cueline/internal/remote"
)

// ServiceTranscriber runs jobs against the self-hosted transcription
// service and parses the SRT text it returns.
type ServiceTranscriber struct {
	client  *remote.Client
	options Options
	logger  *logging.Logger

	// OnProgress, if set, receives progress values in [0, 1] as the
	// job is polled.
	OnProgress func(float64)
}

func NewServiceTranscriber(opts Options, logger *logging.Logger) (*ServiceTranscriber, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("service endpoint is required")
	}
	return &ServiceTranscriber{
		client:  remote.NewClient(opts.Endpoint, logger),
		options: opts,
		logger:  logger,
	}, nil
}

func (t *ServiceTranscriber) Transcribe(ctx context.Context, mediaPath string) (*Result, error) {
	srt, err := t.client.Transcribe(ctx, mediaPath, remote.Options{
		Language: t.options.Language,
		Model:    t.options.Model,
		Device:   t.options.Device,
	}, t.OnProgress)
	if err != nil {
		return nil, err
	}

	cues := cue.Parse(srt)
	t.logger.Infow("transcription received", "cues", len(cues))

	return &Result{
		Cues:     cues,
		Language: t.options.Language,
		Duration: cues.Duration(),
	}, nil
}
