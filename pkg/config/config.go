package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig — корневая структура конфигурации.
// Зеркалит структуру config.yaml.
type AppConfig struct {
	Backend BackendConfig `yaml:"backend"`
	Engine  EngineConfig  `yaml:"engine"`
	Server  ServerConfig  `yaml:"server"`
	History HistoryConfig `yaml:"history"`
	App     AppSpecific   `yaml:"app"`
}

// BackendConfig — настройки генерирующего бэкенда.
type BackendConfig struct {
	Provider  string        `yaml:"provider"`   // "ollama", "openai", "zai", "deepseek", "mock"
	ModelName string        `yaml:"model_name"` // Реальное имя модели в API
	APIKey    string        `yaml:"api_key"`    // Поддерживает ${VAR}
	BaseURL   string        `yaml:"base_url"`   // OpenAI-совместимый endpoint
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`   // Go умеет парсить строки вида "30s", "1m"
	MockMode  bool          `yaml:"mock_mode"` // Принудительный mock режим без обращения к API
}

// CategoryDef — одна категория промпта.
//
// Порядок объявления в YAML определяет приоритет классификатора:
// при совпадении ключевых слов в нескольких категориях побеждает
// та, что объявлена раньше.
type CategoryDef struct {
	Name     string   `yaml:"name"`
	BaseTemp float64  `yaml:"base_temp"` // Оптимальная температура при высокой уверенности
	Keywords []string `yaml:"keywords"`  // Подстроки для поиска в промпте (lowercase)
}

// EngineConfig — настройки пайплайна классификатор → скейлер.
type EngineConfig struct {
	Categories        []CategoryDef `yaml:"categories"`
	ScaleFactor       float64       `yaml:"scale_factor"`       // Вклад (1 - confidence) в температуру
	TempMin           float64       `yaml:"temp_min"`           // Нижняя граница clamp
	TempMax           float64       `yaml:"temp_max"`           // Верхняя граница clamp
	FallbackCategory  string        `yaml:"fallback_category"`  // Категория когда ничего не совпало
	DefaultConfidence float64       `yaml:"default_confidence"` // Уверенность для fallback результата
}

// ServerConfig — настройки web-сервера.
type ServerConfig struct {
	Addr string `yaml:"addr"` // Например ":8080"
}

// HistoryConfig — настройки хранилища истории.
type HistoryConfig struct {
	Path  string `yaml:"path"`  // Путь к SQLite файлу, ":memory:" для тестов
	Limit int    `yaml:"limit"` // Дефолтный размер выборки Recent
}

// AppSpecific — общие настройки приложения.
type AppSpecific struct {
	Debug       bool   `yaml:"debug"`
	ColorScheme string `yaml:"color_scheme"` // Схема TUI: "default", "dark", "dracula"
}

// GetDefaults возвращает копию с заполненными дефолтными значениями.
func (c *BackendConfig) GetDefaults() BackendConfig {
	result := *c

	if result.Provider == "" {
		result.Provider = "ollama"
	}
	if result.BaseURL == "" && result.Provider == "ollama" {
		// Ollama отдаёт OpenAI-совместимый API на /v1
		result.BaseURL = "http://localhost:11434/v1"
	}
	if result.ModelName == "" {
		result.ModelName = "llama2"
	}
	if result.MaxTokens == 0 {
		result.MaxTokens = 500
	}
	if result.Timeout == 0 {
		result.Timeout = 30 * time.Second
	}

	return result
}

// GetDefaults возвращает копию с заполненными дефолтными значениями.
//
// Пустой список категорий заменяется на DefaultCategories() —
// набор из шести категорий с подобранными base_temp.
func (c *EngineConfig) GetDefaults() EngineConfig {
	result := *c

	if len(result.Categories) == 0 {
		result.Categories = DefaultCategories()
	}
	if result.ScaleFactor == 0 {
		result.ScaleFactor = 0.3
	}
	if result.TempMin == 0 {
		result.TempMin = 0.1
	}
	if result.TempMax == 0 {
		result.TempMax = 1.0
	}
	if result.FallbackCategory == "" {
		result.FallbackCategory = "analytical"
	}
	if result.DefaultConfidence == 0 {
		result.DefaultConfidence = 0.5
	}

	return result
}

// GetDefaults возвращает копию с заполненными дефолтными значениями.
func (c *HistoryConfig) GetDefaults() HistoryConfig {
	result := *c

	if result.Path == "" {
		result.Path = "smarttemp-history.db"
	}
	if result.Limit == 0 {
		result.Limit = 50
	}

	return result
}

// DefaultCategories возвращает встроенный набор категорий.
//
// Порядок списка = приоритет классификатора: более "точные" категории
// (factual, instructional) стоят раньше более широких (philosophical).
func DefaultCategories() []CategoryDef {
	return []CategoryDef{
		{
			Name:     "factual",
			BaseTemp: 0.1,
			Keywords: []string{"what", "when", "where", "who", "capital", "population", "how many", "height", "definition"},
		},
		{
			Name:     "creative",
			BaseTemp: 0.9,
			Keywords: []string{"write", "story", "poem", "creative", "imagine", "create", "invent", "fiction"},
		},
		{
			Name:     "instructional",
			BaseTemp: 0.3,
			Keywords: []string{"how to", "make", "cook", "step", "instructions", "tutorial", "guide", "recipe"},
		},
		{
			Name:     "analytical",
			BaseTemp: 0.5,
			Keywords: []string{"compare", "analyze", "explain", "difference", "similar", "contrast", "pros and cons"},
		},
		{
			Name:     "personal",
			BaseTemp: 0.6,
			Keywords: []string{"advice", "should i", "help me", "improve", "better", "suggest", "recommend"},
		},
		{
			Name:     "philosophical",
			BaseTemp: 0.7,
			Keywords: []string{"why", "meaning", "purpose", "exist", "ethical", "consciousness"},
		},
	}
}

// Default возвращает конфигурацию целиком из дефолтных значений.
//
// Используется утилитами когда config.yaml отсутствует:
// mock режим включён, поэтому всё работает без живого бэкенда.
func Default() *AppConfig {
	cfg := &AppConfig{}
	cfg.Backend = cfg.Backend.GetDefaults()
	cfg.Backend.MockMode = true
	cfg.Engine = cfg.Engine.GetDefaults()
	cfg.History = cfg.History.GetDefaults()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	return cfg
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Подставляем переменные окружения.
	// os.ExpandEnv заменяет ${VAR} или $VAR на значение из системы.
	contentWithEnv := os.ExpandEnv(string(rawBytes))

	// 4. Парсим YAML в структуру
	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	// 5. Заполняем дефолты до валидации, чтобы пустой конфиг оставался рабочим
	cfg.Backend = cfg.Backend.GetDefaults()
	cfg.Engine = cfg.Engine.GetDefaults()
	cfg.History = cfg.History.GetDefaults()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}

	// 6. Валидируем критические настройки
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault читает конфиг по пути, а при отсутствии файла
// возвращает Default() вместо ошибки.
func LoadOrDefault(path string) (*AppConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// validate проверяет обязательные поля.
func (c *AppConfig) validate() error {
	if c.Engine.TempMin >= c.Engine.TempMax {
		return fmt.Errorf("engine.temp_min (%.2f) must be below engine.temp_max (%.2f)",
			c.Engine.TempMin, c.Engine.TempMax)
	}
	if c.Engine.ScaleFactor < 0 {
		return fmt.Errorf("engine.scale_factor must not be negative")
	}

	seen := make(map[string]bool, len(c.Engine.Categories))
	for _, cat := range c.Engine.Categories {
		if cat.Name == "" {
			return fmt.Errorf("engine.categories: category without a name")
		}
		if seen[cat.Name] {
			return fmt.Errorf("engine.categories: duplicate category '%s'", cat.Name)
		}
		seen[cat.Name] = true
	}

	if !seen[c.Engine.FallbackCategory] {
		return fmt.Errorf("engine.fallback_category '%s' is not defined in categories",
			c.Engine.FallbackCategory)
	}

	if c.Engine.DefaultConfidence < 0 || c.Engine.DefaultConfidence > 1 {
		return fmt.Errorf("engine.default_confidence must be within [0, 1]")
	}

	return nil
}

// BaseTempFor возвращает base_temp категории по имени.
//
// Для неизвестной категории возвращает base_temp fallback-категории.
func (c *EngineConfig) BaseTempFor(category string) float64 {
	var fallbackTemp float64
	for _, cat := range c.Categories {
		if cat.Name == category {
			return cat.BaseTemp
		}
		if cat.Name == c.FallbackCategory {
			fallbackTemp = cat.BaseTemp
		}
	}
	return fallbackTemp
}
