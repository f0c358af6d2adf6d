package factory

import (
	"fmt"

	"github.com/ilkoid/smarttemp/pkg/config"
	"github.com/ilkoid/smarttemp/pkg/llm"
	"github.com/ilkoid/smarttemp/pkg/llm/mock"
	"github.com/ilkoid/smarttemp/pkg/llm/openai"
)

// NewLLMProvider создает провайдера на основе конфигурации бэкенда.
//
// Все OpenAI-совместимые провайдеры (включая Ollama через /v1)
// обслуживаются одним адаптером с разным BaseURL.
func NewLLMProvider(backend config.BackendConfig) (llm.Provider, error) {
	switch backend.Provider {
	case "ollama", "openai", "zai", "deepseek":
		return openai.NewClient(backend), nil

	case "mock":
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s", backend.Provider)
	}
}
