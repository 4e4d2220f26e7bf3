package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLines_Plain(t *testing.T) {
	lines, err := ExtractLines("2024-01-01\ninvalid\n2024-02-29\n", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "invalid", "2024-02-29"}, lines)
}

func TestExtractLines_FencedWithCRLF(t *testing.T) {
	raw := "```text\r\n2024-01-01\r\n2024-01-02\r\n```"
	lines, err := ExtractLines(raw, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, lines)
}

func TestExtractLines_KeepsInteriorBlankLines(t *testing.T) {
	lines, err := ExtractLines("\n2024-01-01\n\n2024-01-03\n\n", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "", "2024-01-03"}, lines)
}

func TestExtractLines_CountMismatch(t *testing.T) {
	_, err := ExtractLines("2024-01-01\n2024-01-02", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractLines_AnyCountWhenUnconstrained(t *testing.T) {
	lines, err := ExtractLines("a\nb", 0)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestExtractLines_Empty(t *testing.T) {
	_, err := ExtractLines("```\n```", 1)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}
