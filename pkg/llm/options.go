// Functional options для параметров генерации.
//
// Значения по умолчанию приходят из config.yaml, опции позволяют
// переопределить их на конкретный вызов.
package llm

// GenerateOptions — параметры генерации одного запроса.
type GenerateOptions struct {
	// Model — идентификатор модели в API
	Model string

	// Temperature управляет случайностью ответа (0.0 = детерминизм)
	Temperature float64

	// MaxTokens ограничивает длину ответа
	MaxTokens int
}

// GenerateOption — функциональная опция для GenerateOptions.
type GenerateOption func(*GenerateOptions)

// Apply применяет опции поверх текущих значений.
func (o *GenerateOptions) Apply(opts ...GenerateOption) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithModel переопределяет модель для генерации.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithTemperature переопределяет температуру для генерации.
//
// Именно через эту опцию движок передаёт вычисленную температуру.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// WithMaxTokens переопределяет лимит токенов ответа.
func WithMaxTokens(tokens int) GenerateOption {
	return func(o *GenerateOptions) {
		o.MaxTokens = tokens
	}
}
