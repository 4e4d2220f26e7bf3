package standardize

import (
	"context"

	"github.com/alexanderramin/ganttsheet/internal/dates"
	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/alexanderramin/ganttsheet/internal/llm"
	"github.com/rs/zerolog"
)

// LLMStandardizer sends distinct non-blank values to a language model in one
// request.
type LLMStandardizer struct {
	client llm.LLMClient
	log    zerolog.Logger
}

func NewLLMStandardizer(client llm.LLMClient, log zerolog.Logger) *LLMStandardizer {
	return &LLMStandardizer{client: client, log: log}
}

func (s *LLMStandardizer) Standardize(ctx context.Context, values []domain.CellValue) Result {
	raw := Coerce(values)
	distinct := uniqueNonBlank(raw)
	if len(distinct) == 0 {
		return Result{Values: raw}
	}

	mapped, err := s.resolve(ctx, distinct)
	if err != nil {
		s.log.Warn().Err(err).
			Str("backend", s.client.Name()).
			Int("values", len(distinct)).
			Msg("date standardization degraded")
		return degraded(values)
	}

	out := make([]string, len(raw))
	for i, r := range raw {
		if r != "" {
			out[i] = mapped[r]
		}
	}
	return Result{Values: out}
}

// resolve returns raw → answer for every value in distinct. Answers that are
// neither a strict ISO date nor the invalid marker are replaced by the marker.
func (s *LLMStandardizer) resolve(ctx context.Context, distinct []string) (map[string]string, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskStandardizeDates,
		SystemPrompt: systemPrompt,
		UserPrompt:   buildUserPrompt(distinct),
	})
	if err != nil {
		return nil, err
	}

	lines, err := llm.ExtractLines(resp.Text, len(distinct))
	if err != nil {
		return nil, err
	}

	mapped := make(map[string]string, len(distinct))
	for i, v := range distinct {
		answer := lines[i]
		if _, ok := dates.ParseStandardized(answer); !ok {
			answer = dates.Invalid
		}
		mapped[v] = answer
	}
	return mapped, nil
}

// Available reports whether the backend can take requests.
func (s *LLMStandardizer) Available(ctx context.Context) bool {
	return s.client.Available(ctx)
}

// Backend names the model behind the standardizer.
func (s *LLMStandardizer) Backend() string {
	return s.client.Name()
}
