package llm

import (
	"fmt"
	"strings"
)

// ExtractLines splits a newline-delimited LLM answer into trimmed lines.
// Markdown code fences are dropped and surrounding blank lines are ignored.
// When want is positive the line count must match exactly.
func ExtractLines(raw string, want int) ([]string, error) {
	cleaned := strings.TrimSpace(stripCodeFences(raw))
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidOutput)
	}

	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		lines = append(lines, strings.TrimSpace(strings.TrimSuffix(line, "\r")))
	}
	if want > 0 && len(lines) != want {
		return nil, fmt.Errorf("%w: expected %d lines, got %d", ErrInvalidOutput, want, len(lines))
	}
	return lines, nil
}

// stripCodeFences removes markdown code fence lines (``` or ```text) while
// keeping the fenced content.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		result = append(result, line)
	}
	return strings.Join(result, "\n")
}
