package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/smarttemp/pkg/config"
	"github.com/ilkoid/smarttemp/pkg/events"
	"github.com/ilkoid/smarttemp/pkg/llm"
)

// failingProvider имитирует недоступный живой бэкенд.
type failingProvider struct{}

func (failingProvider) Chat(_ context.Context, _ llm.ChatRequest) (string, error) {
	return "", errors.New("connection refused")
}

// stubProvider имитирует живой бэкенд с фиксированным ответом.
type stubProvider struct {
	response string
	lastReq  llm.ChatRequest
}

func (s *stubProvider) Chat(_ context.Context, req llm.ChatRequest) (string, error) {
	s.lastReq = req
	return s.response, nil
}

func mockEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New(config.Default())
	require.NoError(t, err)
	return eng
}

// TestAnalyze проверяет связку классификатор → скейлер.
func TestAnalyze(t *testing.T) {
	eng := mockEngine(t)
	cfg := config.Default()

	analysis := eng.Analyze("What is the capital of Brazil?")

	assert.Equal(t, "factual", analysis.Category)
	assert.Greater(t, analysis.Confidence, 0.0)
	assert.LessOrEqual(t, analysis.Confidence, 1.0)

	// temp = base + (1 - confidence) * scale_factor
	expected := cfg.Engine.BaseTempFor("factual") +
		(1-analysis.Confidence)*cfg.Engine.ScaleFactor
	assert.InDelta(t, expected, analysis.Temperature, 1e-9)

	assert.NotEmpty(t, analysis.Scores)
}

// TestAnalyzeCreativeHotterThanFactual: творческий промпт получает
// более высокую температуру, чем фактический.
func TestAnalyzeCreativeHotterThanFactual(t *testing.T) {
	eng := mockEngine(t)

	factual := eng.Analyze("What is the capital of Brazil?")
	creative := eng.Analyze("Write a creative story about a dragon")

	assert.Equal(t, "factual", factual.Category)
	assert.Equal(t, "creative", creative.Category)
	assert.Greater(t, creative.Temperature, factual.Temperature)
}

// TestGenerateMockMode: в mock режиме пайплайн работает без сети.
func TestGenerateMockMode(t *testing.T) {
	eng := mockEngine(t)

	outcome, err := eng.Generate(context.Background(), "What is the capital of Brazil?")
	require.NoError(t, err)

	assert.Equal(t, SourceMock, outcome.Source)
	assert.Equal(t, "factual", outcome.Category)
	assert.NotEmpty(t, outcome.Response)
	assert.Greater(t, outcome.Elapsed.Nanoseconds(), int64(0))
}

// TestGenerateLiveSuccess: при рабочем бэкенде ответ идёт из live источника,
// а в запросе стоит температура из анализа.
func TestGenerateLiveSuccess(t *testing.T) {
	eng := mockEngine(t)
	stub := &stubProvider{response: "Brasília is the capital of Brazil."}
	eng.live = stub

	outcome, err := eng.Generate(context.Background(), "What is the capital of Brazil?")
	require.NoError(t, err)

	assert.Equal(t, SourceLive, outcome.Source)
	assert.Equal(t, stub.response, outcome.Response)
	assert.InDelta(t, outcome.Temperature, stub.lastReq.Temperature, 1e-9)
	assert.Equal(t, "llama2", stub.lastReq.Model)
	assert.Equal(t, 500, stub.lastReq.MaxTokens)
}

// TestGenerateFallbackToMock: отказ живого бэкенда не фейлит пайплайн,
// ответ приходит из mock генератора.
func TestGenerateFallbackToMock(t *testing.T) {
	eng := mockEngine(t)
	eng.live = failingProvider{}

	outcome, err := eng.Generate(context.Background(), "Write a poem about rain")
	require.NoError(t, err)

	assert.Equal(t, SourceMock, outcome.Source)
	assert.NotEmpty(t, outcome.Response)
	assert.True(t, strings.Contains(outcome.Response, "Creative"),
		"high-temperature mock response expected, got:\n%s", outcome.Response)
}

// TestGenerateEvents проверяет поток событий пайплайна при fallback.
func TestGenerateEvents(t *testing.T) {
	eng := mockEngine(t)
	eng.live = failingProvider{}

	emitter := events.NewChanEmitter(16)
	eng.SetEmitter(emitter)

	_, err := eng.Generate(context.Background(), "compare apples and oranges")
	require.NoError(t, err)
	emitter.Close()

	var types []events.EventType
	for ev := range emitter.Subscribe().Events() {
		types = append(types, ev.Type)
	}

	assert.Equal(t, []events.EventType{
		events.EventAnalysis,
		events.EventGenerating,
		events.EventFallback,
		events.EventResponse,
	}, types)
}

// TestGenerateCancelledContext: отменённый родительский контекст —
// единственный случай ошибки наружу.
func TestGenerateCancelledContext(t *testing.T) {
	eng := mockEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.Generate(ctx, "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
