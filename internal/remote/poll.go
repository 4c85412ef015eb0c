package remote

import (
	"context"
	"fmt"
	"time"
)

// Transcribe runs the whole workflow against the service: upload the
// media file, start a job, poll until it reaches a terminal state, and
// return the SRT text of a completed job. onProgress, if non-nil, is
// called with each observed progress value.
func (c *Client) Transcribe(ctx context.Context, mediaPath string, opts Options, onProgress func(float64)) (string, error) {
	fileID, err := c.Upload(ctx, mediaPath)
	if err != nil {
		return "", err
	}

	task, err := c.StartTranscription(ctx, fileID, opts)
	if err != nil {
		return "", err
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		status, err := c.TaskStatus(ctx, task.ID)
		if err != nil {
			// the service may not have registered the task yet;
			// transient server errors also resolve on the next tick
			if re, ok := err.(*Error); ok && re.IsRetryable() {
				c.logger.Debugw("status poll failed, retrying", "task_id", task.ID, "status_code", re.StatusCode)
				continue
			}
			return "", err
		}

		if onProgress != nil {
			onProgress(status.Progress)
		}

		switch status.Status {
		case StatusCompleted:
			return c.FetchResult(ctx, status.ResultURL)
		case StatusFailed:
			if status.Message != "" {
				return "", fmt.Errorf("transcription failed: %s", status.Message)
			}
			return "", fmt.Errorf("transcription failed")
		}
	}
}
