package extend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Config carries the per-run vendor settings. Values are resolved once per
// request and never mutated during processing.
type Config struct {
	BaseURL     string
	APIToken    string
	ProcessorID string
}

// ProcessorRun is the vendor's view of one synchronous extraction run.
type ProcessorRun struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output map[string]any  `json:"output"`
	Raw    json.RawMessage `json:"-"`
}

// OutputValue returns the structured field mapping the processor produced.
func (r *ProcessorRun) OutputValue() (map[string]any, bool) {
	if r.Output == nil {
		return nil, false
	}
	value, ok := r.Output["value"].(map[string]any)
	return value, ok
}

type Client struct {
	httpClient *http.Client
	validate   func(map[string]any) error
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		validate:   validateAgainstPassportSchema,
	}
}

// Extract uploads the document and runs the configured processor against it in
// one synchronous attempt. No retries; the caller surfaces the error as-is.
func (c *Client) Extract(ctx context.Context, cfg Config, filename string, file io.Reader) (*ProcessorRun, error) {
	if strings.TrimSpace(cfg.APIToken) == "" {
		return nil, fmt.Errorf("%w: empty api token", ErrAuth)
	}
	if strings.TrimSpace(cfg.ProcessorID) == "" {
		return nil, fmt.Errorf("%w: empty processor id", ErrProcessorNotFound)
	}

	fileID, err := c.UploadFile(ctx, cfg, filename, file)
	if err != nil {
		return nil, err
	}
	return c.RunProcessor(ctx, cfg, fileID)
}

// UploadFile sends the document to the vendor and returns its file id.
func (c *Client) UploadFile(ctx context.Context, cfg Config, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("%w: build multipart form: %v", ErrUpload, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("%w: read upload: %v", ErrUpload, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: finalize multipart form: %v", ErrUpload, err)
	}

	url := strings.TrimRight(cfg.BaseURL, "/") + "/files"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("%w: build upload request: %v", ErrUpload, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+cfg.APIToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read upload response: %v", ErrUpload, err)
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: status %d: %s", ErrAuth, resp.StatusCode, string(raw))
	case resp.StatusCode >= 300:
		return "", fmt.Errorf("%w: status %d: %s", ErrUpload, resp.StatusCode, string(raw))
	}

	var parsed struct {
		File struct {
			ID string `json:"id"`
		} `json:"file"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: parse upload response: %v", ErrUpload, err)
	}
	if parsed.File.ID == "" {
		return "", fmt.Errorf("%w: upload response carried no file id", ErrUpload)
	}
	return parsed.File.ID, nil
}

// RunProcessor creates a synchronous processor run for an already uploaded file.
func (c *Client) RunProcessor(ctx context.Context, cfg Config, fileID string) (*ProcessorRun, error) {
	reqBody := map[string]any{
		"processorId": cfg.ProcessorID,
		"file":        map[string]any{"fileId": fileID},
		"sync":        true,
		"config": map[string]any{
			"type":          configType,
			"baseProcessor": baseProcessor,
			"baseVersion":   baseVersion,
			"schema":        BuildPassportJSONSchema(),
			"advancedOptions": map[string]any{
				"citationsEnabled":             true,
				"chunkingOptions":              map[string]any{},
				"advancedFigureParsingEnabled": true,
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal run request: %v", ErrExtraction, err)
	}

	url := strings.TrimRight(cfg.BaseURL, "/") + "/processor_runs"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: build run request: %v", ErrExtraction, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read run response: %v", ErrExtraction, err)
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d: %s", ErrAuth, resp.StatusCode, string(raw))
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %q: %s", ErrProcessorNotFound, cfg.ProcessorID, string(raw))
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %d: %s", ErrExtraction, resp.StatusCode, string(raw))
	}

	var parsed struct {
		ProcessorRun ProcessorRun `json:"processorRun"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parse run response: %v", ErrExtraction, err)
	}
	run := parsed.ProcessorRun
	run.Raw = raw

	if run.Status != "" && !strings.EqualFold(run.Status, "PROCESSED") {
		return nil, fmt.Errorf("%w: run %s finished with status %s", ErrExtraction, run.ID, run.Status)
	}
	value, ok := run.OutputValue()
	if !ok || len(value) == 0 {
		return nil, fmt.Errorf("%w: run %s produced no output", ErrExtraction, run.ID)
	}
	if c.validate != nil {
		if err := c.validate(value); err != nil {
			return nil, fmt.Errorf("%w: output does not match passport schema: %v", ErrExtraction, err)
		}
	}
	return &run, nil
}
