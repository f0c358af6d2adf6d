package llm

import "errors"

// ErrBackendUnavailable — бэкенд недоступен или не ответил вовремя.
//
// Для вызывающего кода это сигнал перейти в mock режим,
// не фатальная ошибка.
var ErrBackendUnavailable = errors.New("generation backend unavailable")
