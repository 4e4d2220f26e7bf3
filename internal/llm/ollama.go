package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	ollamaBackend = "ollama"
	// Replies for one date batch are small; anything past this is garbage.
	maxResponseBytes = 1 << 20
	defaultBackoff   = 250 * time.Millisecond
)

type ollamaClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
	backoff  time.Duration
}

// NewOllamaClient creates an LLMClient that talks to an Ollama server.
// Connection failures, timeouts, 429 and 5xx replies are retried up to
// cfg.MaxRetries times with linear backoff.
func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &ollamaClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
		observer: observer,
		backoff:  defaultBackoff,
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

type ollamaTags struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// statusError is a non-200 reply from the server.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("ollama returned status %d: %s", e.code, e.body)
}

func (e *statusError) transient() bool {
	return e.code == http.StatusTooManyRequests || e.code >= http.StatusInternalServerError
}

func (c *ollamaClient) Name() string {
	return ollamaBackend + "/" + c.cfg.Model
}

func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	task := c.cfg.Task(req.Task)

	resp, err := c.generate(ctx, req.Task, ollamaRequest{
		Model:  c.cfg.Model,
		System: req.SystemPrompt,
		Prompt: req.UserPrompt,
		Options: ollamaOptions{
			Temperature: task.Temperature,
			NumPredict:  task.MaxTokens,
		},
	})
	c.report(req.Task, start, err)
	if err != nil {
		return nil, err
	}

	model := resp.Model
	if model == "" {
		model = c.cfg.Model
	}
	return &GenerateResponse{
		Text:      resp.Response,
		Model:     model,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

func (c *ollamaClient) generate(ctx context.Context, task TaskType, body ollamaRequest) (*ollamaResponse, error) {
	timeout := time.Duration(c.cfg.TaskTimeout(task)) * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, c.backoff*time.Duration(attempt)); err != nil {
				break
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		resp, err := c.post(attemptCtx, body)
		cancel()
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil || !transient(err) {
			break
		}
	}
	return nil, c.classify(ctx, lastErr)
}

func (c *ollamaClient) post(ctx context.Context, body ollamaRequest) (*ollamaResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/api/generate", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, &statusError{code: httpResp.StatusCode, body: strings.TrimSpace(string(raw))}
	}

	var resp ollamaResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding ollama response: %v", ErrInvalidOutput, err)
	}
	return &resp, nil
}

// Available reports whether the server answers and has the configured model
// pulled.
func (c *ollamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}

	var tags ollamaTags
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&tags); err != nil {
		return false
	}
	for _, m := range tags.Models {
		if m.Name == c.cfg.Model || strings.HasPrefix(m.Name, c.cfg.Model+":") {
			return true
		}
	}
	return false
}

func (c *ollamaClient) classify(ctx context.Context, err error) error {
	var se *statusError
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return ctx.Err()
	case ctx.Err() != nil, errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, ErrInvalidOutput):
		return err
	case isConnectionError(err):
		return ErrOllamaUnavailable
	case errors.As(err, &se) && !se.transient():
		return se
	}
	return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
}

func (c *ollamaClient) report(task TaskType, start time.Time, err error) {
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      task,
		Backend:   ollamaBackend,
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
}

func transient(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.transient()
	}
	return !errors.Is(err, ErrInvalidOutput)
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
