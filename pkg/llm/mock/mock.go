// Package mock реализует детерминированный генератор ответов без сети.
//
// Используется как fallback когда живой бэкенд недоступен, и как
// основной провайдер в mock режиме (config backend.mock_mode: true).
// Текст ответа подбирается по температуре запроса: низкая — сухой
// фактический шаблон, высокая — "творческий".
package mock

import (
	"context"
	"fmt"

	"github.com/ilkoid/smarttemp/pkg/llm"
)

// Пороги температуры для выбора шаблона ответа.
const (
	factualBelow    = 0.3
	analyticalBelow = 0.6
)

// Generator — mock-провайдер. Не содержит состояния, никогда не ходит в сеть.
type Generator struct{}

// New создаёт mock-генератор.
func New() *Generator {
	return &Generator{}
}

// Chat синтезирует ответ по температуре запроса.
//
// Детерминирован: одинаковый запрос всегда даёт одинаковый ответ.
// Единственная возможная ошибка — отменённый контекст.
func (g *Generator) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	prompt := req.UserPrompt()
	temp := req.Temperature

	switch {
	case temp < factualBelow:
		return factualResponse(prompt, temp), nil
	case temp < analyticalBelow:
		return analyticalResponse(prompt, temp), nil
	default:
		return creativeResponse(prompt, temp), nil
	}
}

func factualResponse(prompt string, temp float64) string {
	return fmt.Sprintf(`**Factual Response** (Temperature: %.2f)

Based on your query about %q, here are the key facts:

- Primary Information: relevant data points and specific details
- Supporting Context: additional background information
- Related Facts: connected information for comprehensive understanding

*This response uses a low temperature setting for maximum precision and accuracy.*`, temp, prompt)
}

func analyticalResponse(prompt string, temp float64) string {
	return fmt.Sprintf(`**Analytical Response** (Temperature: %.2f)

Regarding %q, here is a structured analysis:

**Key Perspectives:**
- One approach considers the practical implications and immediate factors
- Another viewpoint examines the theoretical foundations and broader context

**Conclusion:**
The evidence suggests a balanced approach that weighs multiple dimensions
while maintaining logical coherence.

*This medium-temperature response provides analysis while staying focused.*`, temp, prompt)
}

func creativeResponse(prompt string, temp float64) string {
	return fmt.Sprintf(`**Creative Response** (Temperature: %.2f)

Ah, %q — what an inspiring concept to explore!

Imagine a world where ideas branch into possibilities we have never
considered. The very essence of your question sparks a cascade of
connections, weaving together threads of insight and imagination,
inviting us to see familiar things in extraordinary ways.

*This high-temperature response embraces creative exploration and novel perspectives.*`, temp, prompt)
}

// Compile-time проверка интерфейса.
var _ llm.Provider = (*Generator)(nil)
