// Package remote is the client for the transcription service: upload a
// media file, start a job, poll it, fetch the resulting SRT text. The
// service itself is a black box behind a small HTTP contract.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ryokoh/cueline/internal/logging"
)

// task lifecycle states reported by the service
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Error is a non-success response from the service
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("transcription service: HTTP %d: %s", e.StatusCode, e.Body)
}

// server errors may clear up on retry; client errors are permanent
func (e *Error) IsRetryable() bool {
	return e.StatusCode >= 500
}

type TaskStatus struct {
	ID        string  `json:"id"`
	Status    string  `json:"status"`
	Progress  float64 `json:"progress"`
	ResultURL string  `json:"result_url"`
	Message   string  `json:"error"`
}

func (t TaskStatus) Terminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusFailed
}

type Client struct {
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
	logger       *logging.Logger
}

func NewClient(baseURL string, logger *logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		pollInterval: 2 * time.Second,
		logger:       logger,
	}
}

// sends a media file as multipart form data, returning the server-side
// file id
func (c *Client) Upload(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("read upload file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &body)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp struct {
		FileID string `json:"file_id"`
	}
	if err := c.do(req, &resp); err != nil {
		return "", err
	}

	c.logger.Infow("file uploaded", "file_id", resp.FileID)
	return resp.FileID, nil
}

// transcription job parameters, persisted in user configuration
type Options struct {
	Language string
	Model    string
	Device   string
}

// asks the service to start transcribing an uploaded file
func (c *Client) StartTranscription(ctx context.Context, fileID string, opts Options) (TaskStatus, error) {
	form := url.Values{}
	form.Set("file_id", fileID)
	form.Set("lang", opts.Language)
	form.Set("whisper_mode", "whisper")
	form.Set("whisper_model", opts.Model)
	form.Set("device", opts.Device)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/transcribe", strings.NewReader(form.Encode()))
	if err != nil {
		return TaskStatus{}, fmt.Errorf("create transcribe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var status TaskStatus
	if err := c.do(req, &status); err != nil {
		return TaskStatus{}, err
	}

	c.logger.Infow("transcription started", "task_id", status.ID)
	return status, nil
}

func (c *Client) TaskStatus(ctx context.Context, taskID string) (TaskStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/tasks/"+taskID, nil)
	if err != nil {
		return TaskStatus{}, fmt.Errorf("create status request: %w", err)
	}

	var status TaskStatus
	if err := c.do(req, &status); err != nil {
		return TaskStatus{}, err
	}
	return status, nil
}

// downloads the raw SRT text of a completed task
func (c *Client) FetchResult(ctx context.Context, resultURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+resultURL, nil)
	if err != nil {
		return "", fmt.Errorf("create result request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch result: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read result body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &Error{StatusCode: resp.StatusCode, Body: string(data)}
	}
	return string(data), nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
