package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/alexanderramin/ganttsheet/internal/llm"
)

// FakeLLM is a scripted llm.LLMClient. Unavailable makes Available report
// false. When Answer is set each prompt value
// line is mapped through it; otherwise Response is returned verbatim.
type FakeLLM struct {
	Response    string
	Err         error
	Answer      func(value string) string
	Unavailable bool

	mu      sync.Mutex
	prompts []string
}

func (f *FakeLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, req.UserPrompt)
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	if f.Answer == nil {
		return &llm.GenerateResponse{Text: f.Response, Model: "fake"}, nil
	}

	var out []string
	for _, v := range PromptValues(req.UserPrompt) {
		out = append(out, f.Answer(v))
	}
	return &llm.GenerateResponse{Text: strings.Join(out, "\n"), Model: "fake"}, nil
}

func (f *FakeLLM) Available(context.Context) bool { return !f.Unavailable }

func (f *FakeLLM) Name() string { return "fake/test" }

// Calls reports how many Generate calls were made.
func (f *FakeLLM) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// Prompts returns a copy of the user prompts received so far.
func (f *FakeLLM) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// PromptValues extracts the value lines from a standardization prompt. The
// first line is the instruction.
func PromptValues(prompt string) []string {
	lines := strings.Split(strings.TrimRight(prompt, "\n"), "\n")
	if len(lines) <= 1 {
		return nil
	}
	return lines[1:]
}
