// Package scaler вычисляет температуру сэмплирования по категории и уверенности.
//
// Формула: temperature = base_temp[category] + (1 - confidence) * scale_factor.
// Чем ниже уверенность классификатора, тем выше температура — модель получает
// больше свободы на неоднозначных промптах.
package scaler

import (
	"github.com/ilkoid/smarttemp/pkg/config"
	"github.com/ilkoid/smarttemp/pkg/utils"
)

// Scaler — детерминированный калькулятор температуры.
//
// Все константы берутся из конфигурации при создании, никакого хардкода
// в бизнес-логике.
type Scaler struct {
	baseTemps    map[string]float64
	fallbackTemp float64
	scaleFactor  float64
	min          float64
	max          float64
}

// New создаёт Scaler из конфигурации движка.
func New(cfg config.EngineConfig) *Scaler {
	baseTemps := make(map[string]float64, len(cfg.Categories))
	for _, cat := range cfg.Categories {
		baseTemps[cat.Name] = cat.BaseTemp
	}

	return &Scaler{
		baseTemps:    baseTemps,
		fallbackTemp: cfg.BaseTempFor(cfg.FallbackCategory),
		scaleFactor:  cfg.ScaleFactor,
		min:          cfg.TempMin,
		max:          cfg.TempMax,
	}
}

// Scale вычисляет температуру для пары (категория, уверенность).
//
// Гарантии:
//   - результат всегда в [min, max]
//   - confidence == 1 → ровно base_temp категории (после clamp)
//   - confidence == 0 → clamp(base_temp + scale_factor)
//
// Confidence вне [0, 1] не ошибка: значение зажимается в диапазон,
// в лог пишется предупреждение. Неизвестная категория получает
// base_temp fallback-категории.
func (s *Scaler) Scale(category string, confidence float64) float64 {
	if confidence < 0 || confidence > 1 {
		utils.Warn("confidence out of range, clamping",
			"category", category,
			"confidence", confidence)
		confidence = clamp(confidence, 0, 1)
	}

	base, ok := s.baseTemps[category]
	if !ok {
		utils.Warn("unknown category, using fallback base temp", "category", category)
		base = s.fallbackTemp
	}

	temp := base + (1-confidence)*s.scaleFactor
	return clamp(temp, s.min, s.max)
}

// Range возвращает границы clamp — нужны presentation-слою для шкал.
func (s *Scaler) Range() (min, max float64) {
	return s.min, s.max
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
