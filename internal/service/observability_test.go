package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineObservers(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, combineObservers(nil))
	assert.IsType(t, NoopUseCaseObserver{}, combineObservers([]UseCaseObserver{nil}))

	single := &captureUseCaseObserver{}
	assert.Same(t, single, combineObservers([]UseCaseObserver{nil, single}))

	a, b := &captureUseCaseObserver{}, &captureUseCaseObserver{}
	combined := combineObservers([]UseCaseObserver{a, nil, b})
	combined.ObserveUseCase(context.Background(), UseCaseEvent{Name: "build-tasks"})

	require.Len(t, a.events, 1)
	require.Len(t, b.events, 1)
	assert.Equal(t, "build-tasks", b.events[0].Name)
}

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(zerolog.New(&buf))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "export-workbook",
		Duration: 1500 * time.Millisecond,
		Success:  false,
		Err:      errors.New("disk full"),
		Fields:   map[string]any{"tasks": 3},
	})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "service_use_case", line["message"])
	assert.Equal(t, "export-workbook", line["use_case"])
	assert.Equal(t, "disk full", line["error"])
	assert.EqualValues(t, 1500, line["duration_ms"])
	assert.EqualValues(t, 3, line["tasks"])
	assert.Equal(t, false, line["success"])
}
