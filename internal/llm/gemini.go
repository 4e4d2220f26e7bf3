package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiClient implements LLMClient against the hosted Gemini API.
type geminiClient struct {
	cfg      GeminiConfig
	observer Observer
}

// NewGeminiClient creates an LLMClient backed by Gemini. The genai client is
// built per call so a missing key fails fast without touching the network.
func NewGeminiClient(cfg GeminiConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &geminiClient{cfg: cfg, observer: observer}
}

func (c *geminiClient) Name() string {
	return "gemini/" + c.cfg.Model
}

func (c *geminiClient) Available(context.Context) bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	if strings.TrimSpace(c.cfg.APIKey) == "" {
		c.report(req.Task, start, ErrMissingCredential)
		return nil, ErrMissingCredential
	}

	if c.cfg.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	cc := &genai.ClientConfig{
		APIKey:  c.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.cfg.Endpoint != "" {
		cc.HTTPOptions.BaseURL = c.cfg.Endpoint
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		err = fmt.Errorf("creating gemini client: %w", err)
		c.report(req.Task, start, err)
		return nil, err
	}

	resp, err := client.Models.GenerateContent(ctx, c.modelName(), genai.Text(req.UserPrompt), c.generationConfig(req))
	if err != nil {
		err = c.classify(ctx, err)
		c.report(req.Task, start, err)
		return nil, err
	}

	text := responseText(resp)
	if text == "" {
		err := fmt.Errorf("%w: empty gemini response", ErrInvalidOutput)
		c.report(req.Task, start, err)
		return nil, err
	}

	c.report(req.Task, start, nil)
	return &GenerateResponse{
		Text:      text,
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

func (c *geminiClient) generationConfig(req GenerateRequest) *genai.GenerateContentConfig {
	task := DefaultTasks()[req.Task]
	temp := float32(task.Temperature)
	gc := &genai.GenerateContentConfig{Temperature: &temp}
	if task.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(task.MaxTokens)
	}
	if req.SystemPrompt != "" {
		gc.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}
	return gc
}

func (c *geminiClient) modelName() string {
	if strings.HasPrefix(c.cfg.Model, "models/") {
		return c.cfg.Model
	}
	return "models/" + c.cfg.Model
}

func (c *geminiClient) classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return ctx.Err()
		}
		return ErrTimeout
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: gemini rejected the api key (status %d)", ErrMissingCredential, apiErr.Code)
		case http.StatusServiceUnavailable, http.StatusTooManyRequests:
			return fmt.Errorf("%w: gemini status %d", ErrRetryExhausted, apiErr.Code)
		}
		return fmt.Errorf("gemini returned status %d: %s", apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("calling gemini: %w", err)
}

func (c *geminiClient) report(task TaskType, start time.Time, err error) {
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      task,
		Backend:   "gemini",
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range cand.Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}
