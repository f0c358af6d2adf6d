// Package classifier выполняет rule-based классификацию промптов.
//
// Категория определяется по вхождению ключевых подстрок из конфигурации.
// Никакого ML: это детерминированная эвристика, confidence — не вероятность,
// а монотонная функция от количества совпавших ключевых слов.
package classifier

import (
	"strings"

	"github.com/ilkoid/smarttemp/pkg/config"
)

// SourceKeyword — маркер источника результата (всегда эвристика).
const SourceKeyword = "keyword"

// confidenceK — параметр кривой насыщения confidence.
//
// confidence = score / (score + confidenceK):
// 1 совпадение → ~0.74, 2 → ~0.85, 3 → ~0.90.
// Больше совпадений → выше уверенность, предел 1.0.
const confidenceK = 0.35

// Result — итог классификации одного промпта.
//
// Создаётся заново на каждый вызов Classify и не мутируется.
type Result struct {
	Category   string             // Имя категории из конфигурации
	Confidence float64            // Эвристический скор в [0, 1]
	Scores     map[string]float64 // Скор каждой категории (для отображения)
	Source     string             // SourceKeyword
}

// Engine выполняет классификацию.
//
// Stateless и безопасен для конкурентного использования:
// правила фиксируются при создании.
type Engine struct {
	rules             []config.CategoryDef
	fallback          string
	defaultConfidence float64
}

// New создаёт классификатор из конфигурации движка.
//
// Порядок cfg.Categories определяет приоритет: при совпадениях в нескольких
// категориях побеждает объявленная раньше.
func New(cfg config.EngineConfig) *Engine {
	return &Engine{
		rules:             cfg.Categories,
		fallback:          cfg.FallbackCategory,
		defaultConfidence: cfg.DefaultConfidence,
	}
}

// Classify определяет категорию промпта.
//
// Алгоритм:
//  1. Промпт приводится к lowercase
//  2. Для каждой категории считается число совпавших ключевых подстрок
//  3. Первая по порядку объявления категория с >=1 совпадением побеждает
//  4. Confidence = score/(score+k) от числа совпадений победителя
//
// Пустой или полностью пробельный промпт, как и промпт без единого
// совпадения, даёт fallback-категорию с дефолтной уверенностью.
// Функция чистая, ошибок не возвращает.
func (e *Engine) Classify(prompt string) Result {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return e.fallbackResult(nil)
	}

	lower := strings.ToLower(trimmed)

	scores := make(map[string]float64, len(e.rules))
	winner := ""
	winnerMatches := 0

	for _, rule := range e.rules {
		matches := countMatches(lower, rule.Keywords)
		scores[rule.Name] = normalizeConfidence(matches)

		// Первое совпадение по порядку объявления — победитель.
		// Дальнейшие категории только заполняют Scores.
		if winner == "" && matches > 0 {
			winner = rule.Name
			winnerMatches = matches
		}
	}

	if winner == "" {
		return e.fallbackResult(scores)
	}

	return Result{
		Category:   winner,
		Confidence: normalizeConfidence(winnerMatches),
		Scores:     scores,
		Source:     SourceKeyword,
	}
}

// fallbackResult возвращает результат для промптов без совпадений.
func (e *Engine) fallbackResult(scores map[string]float64) Result {
	if scores == nil {
		scores = make(map[string]float64)
	}
	return Result{
		Category:   e.fallback,
		Confidence: e.defaultConfidence,
		Scores:     scores,
		Source:     SourceKeyword,
	}
}

// countMatches считает ключевые слова категории, встречающиеся в промпте.
//
// Поиск по подстроке: "how to" совпадает внутри "explain how to cook".
// Ключевые слова ожидаются в lowercase (из конфигурации).
func countMatches(lowerPrompt string, keywords []string) int {
	matches := 0
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lowerPrompt, strings.ToLower(kw)) {
			matches++
		}
	}
	return matches
}

// normalizeConfidence переводит число совпадений в скор [0, 1].
//
// Кривая с насыщением: каждый следующий матч добавляет меньше предыдущего.
func normalizeConfidence(matches int) float64 {
	if matches <= 0 {
		return 0
	}
	score := float64(matches)
	c := score / (score + confidenceK)
	if c > 1.0 {
		return 1.0
	}
	return c
}
