// Базовые типы — универсальный язык общения с моделями.
package llm

// ChatRequest — унифицированный запрос к любой модели.
type ChatRequest struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Messages    []Message
}

// Message — одно текстовое сообщение диалога.
type Message struct {
	Role    string // "system", "user", "assistant"
	Content string
}

// Константы ролей для удобства.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// UserPrompt возвращает текст последнего user-сообщения запроса.
//
// Нужен mock-генератору, чтобы процитировать промпт в ответе.
func (r ChatRequest) UserPrompt() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == RoleUser {
			return r.Messages[i].Content
		}
	}
	return ""
}
