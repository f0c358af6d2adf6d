// Интерфейс Провайдера, через который работает всё приложение.

package llm

import "context"

// Provider — контракт для любого генерирующего бэкенда.
//
// Живой API-клиент и mock-генератор реализуют один и тот же интерфейс,
// поэтому fallback — это просто замена провайдера, а не особый путь кода.
type Provider interface {
	// Chat отправляет запрос и возвращает текстовый ответ.
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

// Pinger — опциональная проверка доступности бэкенда.
//
// Реализуется живыми клиентами; mock-генератору проверять нечего.
type Pinger interface {
	// Ping возвращает nil если бэкенд отвечает.
	Ping(ctx context.Context) error
}
