// Package openai реализует адаптер llm.Provider для OpenAI-совместимых API.
//
// Через custom BaseURL работает и с Ollama (/v1), и с облачными
// провайдерами (OpenAI, Zai, DeepSeek).
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ilkoid/smarttemp/pkg/config"
	"github.com/ilkoid/smarttemp/pkg/llm"
	"github.com/ilkoid/smarttemp/pkg/utils"
	openai "github.com/sashabaranov/go-openai"
)

// Client реализует интерфейс llm.Provider.
type Client struct {
	api       *openai.Client
	model     string
	maxTokens int
}

// NewClient создает клиент на основе конфигурации бэкенда.
//
// Все настройки из конфигурации, никакого хардкода.
func NewClient(backend config.BackendConfig) *Client {
	cfg := openai.DefaultConfig(backend.APIKey)
	if backend.BaseURL != "" {
		cfg.BaseURL = backend.BaseURL
	}

	return &Client{
		api:       openai.NewClientWithConfig(cfg),
		model:     backend.ModelName,
		maxTokens: backend.MaxTokens,
	}
}

// Chat выполняет запрос к API и возвращает текст ответа.
//
// Temperature из запроса прокидывается в API как есть — это весь смысл
// пайплайна. Пустые Model/MaxTokens заменяются значениями из конфигурации.
//
// Ошибки возвращаются, не паникуем. Сетевые ошибки и таймауты
// оборачиваются в llm.ErrBackendUnavailable.
func (c *Client) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	startTime := time.Now()

	model := req.Model
	if model == "" {
		model = c.model
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	utils.Debug("LLM request started",
		"model", model,
		"temperature", fmt.Sprintf("%.3f", req.Temperature),
		"messages_count", len(req.Messages))

	// Конвертируем наши сообщения в формат OpenAI SDK
	openaiMsgs := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		openaiMsgs[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    openaiMsgs,
		Temperature: float32(req.Temperature),
		MaxTokens:   maxTokens,
	})
	if err != nil {
		utils.Error("LLM API request failed",
			"error", err,
			"model", model,
			"duration_ms", time.Since(startTime).Milliseconds())
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", fmt.Errorf("%w: %v", llm.ErrBackendUnavailable, err)
		}
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	content := resp.Choices[0].Message.Content

	utils.Info("LLM response received",
		"model", model,
		"content_length", len(content),
		"duration_ms", time.Since(startTime).Milliseconds())

	return content, nil
}

// Ping проверяет доступность бэкенда через список моделей.
//
// Лёгкий GET без генерации — аналог health check.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("%w: %v", llm.ErrBackendUnavailable, err)
	}
	return nil
}

// Compile-time проверки интерфейсов.
var (
	_ llm.Provider = (*Client)(nil)
	_ llm.Pinger   = (*Client)(nil)
)
