// Package engine связывает пайплайн: классификатор → скейлер → бэкенд.
//
// Один вызов — один промпт, никакого разделяемого состояния между
// запросами. Единственный retry-механизм — переключение на mock
// генератор при недоступности живого бэкенда.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/ilkoid/smarttemp/pkg/classifier"
	"github.com/ilkoid/smarttemp/pkg/config"
	"github.com/ilkoid/smarttemp/pkg/events"
	"github.com/ilkoid/smarttemp/pkg/factory"
	"github.com/ilkoid/smarttemp/pkg/llm"
	"github.com/ilkoid/smarttemp/pkg/llm/mock"
	"github.com/ilkoid/smarttemp/pkg/scaler"
	"github.com/ilkoid/smarttemp/pkg/utils"
)

// Источник ответа в Outcome.
const (
	SourceLive = "live" // Ответ от живого бэкенда
	SourceMock = "mock" // Синтетический ответ fallback-генератора
)

// Analysis — результат этапа классификатор → скейлер.
//
// Чистые данные без I/O; создаётся заново на каждый промпт.
type Analysis struct {
	Prompt      string             `json:"prompt"`
	Category    string             `json:"category"`
	Confidence  float64            `json:"confidence"`
	Temperature float64            `json:"temperature"`
	Scores      map[string]float64 `json:"scores"`
}

// Outcome — полный результат пайплайна: анализ плюс сгенерированный ответ.
//
// Source явно различает живой и mock путь — presentation-слой обязан
// показать индикатор, если живой бэкенд был недоступен.
type Outcome struct {
	Analysis
	Response string        `json:"response"`
	Source   string        `json:"source"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Engine — оркестратор пайплайна.
//
// Создаётся один раз из конфигурации; Analyze и Generate
// можно вызывать из любых горутин.
type Engine struct {
	classifier *classifier.Engine
	scaler     *scaler.Scaler
	live       llm.Provider
	mock       llm.Provider
	backend    config.BackendConfig
	emitter    events.Emitter
}

// New создаёт движок из конфигурации.
//
// При backend.mock_mode живой провайдер не создаётся вовсе —
// конфигурация с заведомо недоступным endpoint остаётся рабочей.
func New(cfg *config.AppConfig) (*Engine, error) {
	e := &Engine{
		classifier: classifier.New(cfg.Engine),
		scaler:     scaler.New(cfg.Engine),
		mock:       mock.New(),
		backend:    cfg.Backend,
	}

	if !cfg.Backend.MockMode {
		live, err := factory.NewLLMProvider(cfg.Backend)
		if err != nil {
			return nil, fmt.Errorf("create llm provider: %w", err)
		}
		e.live = live
	}

	return e, nil
}

// SetEmitter подключает эмиттер событий пайплайна.
//
// Опционально: без эмиттера движок работает молча.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	e.emitter = emitter
}

// Analyze выполняет классификацию и вычисляет температуру.
//
// Чистая функция над конфигурацией движка: без сети, без ошибок.
func (e *Engine) Analyze(prompt string) Analysis {
	result := e.classifier.Classify(prompt)
	temp := e.scaler.Scale(result.Category, result.Confidence)

	return Analysis{
		Prompt:      prompt,
		Category:    result.Category,
		Confidence:  result.Confidence,
		Temperature: temp,
		Scores:      result.Scores,
	}
}

// Generate выполняет полный пайплайн: анализ → генерация ответа.
//
// Живой бэкенд вызывается с таймаутом backend.timeout; любая ошибка
// (недоступность, таймаут, кривой ответ) переключает на mock генератор.
// Пайплайн не фейлится: худший исход — Outcome с Source == SourceMock.
func (e *Engine) Generate(ctx context.Context, prompt string) (Outcome, error) {
	startTime := time.Now()
	analysis := e.Analyze(prompt)

	e.emit(ctx, events.EventAnalysis, events.AnalysisData{
		Prompt:      prompt,
		Category:    analysis.Category,
		Confidence:  analysis.Confidence,
		Temperature: analysis.Temperature,
	})

	req := e.buildRequest(prompt, llm.WithTemperature(analysis.Temperature))

	response, source, err := e.generate(ctx, req)
	if err != nil {
		// Отменённый родительский контекст — единственный случай,
		// когда пайплайн возвращает ошибку наружу.
		e.emit(ctx, events.EventError, events.ErrorData{Err: err})
		return Outcome{}, err
	}

	outcome := Outcome{
		Analysis: analysis,
		Response: response,
		Source:   source,
		Elapsed:  time.Since(startTime),
	}

	e.emit(ctx, events.EventResponse, events.ResponseData{
		Content: outcome.Response,
		Source:  outcome.Source,
		Elapsed: outcome.Elapsed,
	})

	return outcome, nil
}

// generate пробует живой бэкенд и падает обратно на mock.
func (e *Engine) generate(ctx context.Context, req llm.ChatRequest) (string, string, error) {
	if e.live != nil {
		e.emit(ctx, events.EventGenerating, events.GeneratingData{
			Model:       req.Model,
			Temperature: req.Temperature,
		})

		callCtx, cancel := context.WithTimeout(ctx, e.backend.Timeout)
		response, err := e.live.Chat(callCtx, req)
		cancel()

		if err == nil {
			return response, SourceLive, nil
		}

		if ctx.Err() != nil {
			return "", "", ctx.Err()
		}

		utils.Warn("live backend failed, falling back to mock", "error", err)
		e.emit(ctx, events.EventFallback, events.FallbackData{Reason: err.Error()})
	}

	response, err := e.mock.Chat(ctx, req)
	if err != nil {
		return "", "", err
	}
	return response, SourceMock, nil
}

// buildRequest собирает ChatRequest с параметрами из конфигурации
// и переданными опциями.
func (e *Engine) buildRequest(prompt string, opts ...llm.GenerateOption) llm.ChatRequest {
	options := llm.GenerateOptions{
		Model:     e.backend.ModelName,
		MaxTokens: e.backend.MaxTokens,
	}
	options.Apply(opts...)

	return llm.ChatRequest{
		Model:       options.Model,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
	}
}

// emit отправляет событие если эмиттер подключён.
func (e *Engine) emit(ctx context.Context, t events.EventType, data events.EventData) {
	if e.emitter == nil {
		return
	}
	e.emitter.Emit(ctx, events.Event{
		Type:      t,
		Data:      data,
		Timestamp: time.Now(),
	})
}
