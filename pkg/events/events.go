// Package events — Port & Adapter слой между движком и UI.
//
// Port — интерфейсы Emitter и Subscriber, определённые здесь.
// Adapter — конкретный UI (TUI, Web, CLI), который подписывается на события.
// Движок зависит только от Emitter и ничего не знает о presentation-слое.
package events

import (
	"context"
	"time"
)

// EventType представляет тип события пайплайна.
type EventType string

const (
	// EventAnalysis — классификация завершена, температура вычислена.
	EventAnalysis EventType = "analysis"

	// EventGenerating — запрос к бэкенду отправлен.
	EventGenerating EventType = "generating"

	// EventFallback — живой бэкенд не ответил, включён mock режим.
	EventFallback EventType = "fallback"

	// EventResponse — ответ получен (живой или mock).
	EventResponse EventType = "response"

	// EventError — ошибка пайплайна.
	EventError EventType = "error"
)

// EventData — sealed interface для данных события.
//
// Только типы из этого пакета реализуют интерфейс,
// что даёт compile-time гарантию соответствия Type и Data.
type EventData interface {
	eventData()
}

// AnalysisData — данные EventAnalysis.
type AnalysisData struct {
	Prompt      string
	Category    string
	Confidence  float64
	Temperature float64
}

func (AnalysisData) eventData() {}

// GeneratingData — данные EventGenerating.
type GeneratingData struct {
	Model       string
	Temperature float64
}

func (GeneratingData) eventData() {}

// FallbackData — данные EventFallback.
type FallbackData struct {
	Reason string // Текст ошибки бэкенда
}

func (FallbackData) eventData() {}

// ResponseData — данные EventResponse.
type ResponseData struct {
	Content string
	Source  string // "live" или "mock"
	Elapsed time.Duration
}

func (ResponseData) eventData() {}

// ErrorData — данные EventError.
type ErrorData struct {
	Err error
}

func (ErrorData) eventData() {}

// Event — одно событие пайплайна.
type Event struct {
	Type      EventType
	Data      EventData
	Timestamp time.Time
}

// Emitter — Port для отправки событий.
//
// Инвертирует зависимость: движок зависит от интерфейса,
// а не от конкретного UI.
type Emitter interface {
	// Emit отправляет событие. Уважает отмену контекста.
	Emit(ctx context.Context, event Event)
}

// Subscriber позволяет читать события из канала.
type Subscriber interface {
	// Events возвращает read-only канал событий.
	// Канал закрывается при закрытии эмиттера.
	Events() <-chan Event

	// Close освобождает ресурсы подписчика.
	Close()
}
