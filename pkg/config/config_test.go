package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig сохраняет YAML во временный файл и возвращает путь.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadFullConfig проверяет загрузку полного конфига.
func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
backend:
  provider: openai
  model_name: gpt-4o-mini
  base_url: https://api.openai.com/v1
  max_tokens: 256
  timeout: 45s
  mock_mode: true

engine:
  scale_factor: 0.2
  temp_min: 0.15
  temp_max: 0.95
  fallback_category: general
  default_confidence: 0.4
  categories:
    - name: general
      base_temp: 0.5
      keywords: [anything]

server:
  addr: ":9090"

history:
  path: test.db
  limit: 10

app:
  debug: true
  color_scheme: dracula
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Backend.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Backend.ModelName)
	assert.Equal(t, 256, cfg.Backend.MaxTokens)
	assert.Equal(t, 45*time.Second, cfg.Backend.Timeout)
	assert.True(t, cfg.Backend.MockMode)

	assert.Equal(t, 0.2, cfg.Engine.ScaleFactor)
	assert.Equal(t, 0.15, cfg.Engine.TempMin)
	assert.Equal(t, 0.95, cfg.Engine.TempMax)
	assert.Equal(t, "general", cfg.Engine.FallbackCategory)
	require.Len(t, cfg.Engine.Categories, 1)
	assert.Equal(t, "general", cfg.Engine.Categories[0].Name)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "test.db", cfg.History.Path)
	assert.Equal(t, 10, cfg.History.Limit)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, "dracula", cfg.App.ColorScheme)
}

// TestLoadEmptyConfigGetsDefaults: пустой файл полностью рабочий за счёт дефолтов.
func TestLoadEmptyConfigGetsDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.Backend.Provider)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Backend.BaseURL)
	assert.Equal(t, "llama2", cfg.Backend.ModelName)
	assert.Equal(t, 500, cfg.Backend.MaxTokens)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)

	assert.Len(t, cfg.Engine.Categories, 6)
	assert.Equal(t, 0.3, cfg.Engine.ScaleFactor)
	assert.Equal(t, 0.1, cfg.Engine.TempMin)
	assert.Equal(t, 1.0, cfg.Engine.TempMax)
	assert.Equal(t, "analytical", cfg.Engine.FallbackCategory)
	assert.Equal(t, 0.5, cfg.Engine.DefaultConfidence)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "smarttemp-history.db", cfg.History.Path)
	assert.Equal(t, 50, cfg.History.Limit)
}

// TestLoadExpandsEnv проверяет подстановку ${VAR} из окружения.
func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("SMARTTEMP_TEST_KEY", "sk-secret-value")

	path := writeConfig(t, `
backend:
  api_key: ${SMARTTEMP_TEST_KEY}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-secret-value", cfg.Backend.APIKey)
}

// TestLoadMissingFile проверяет ошибку при отсутствии файла.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// TestLoadOrDefault: отсутствующий файл — не ошибка, а Default() с mock режимом.
func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.Backend.MockMode, "default config must not dial a live backend")
	assert.Len(t, cfg.Engine.Categories, 6)
}

// TestLoadValidation проверяет отказ на некорректных конфигах.
func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		errPart string
	}{
		{
			name: "temp_min above temp_max",
			yaml: `
engine:
  temp_min: 0.9
  temp_max: 0.2
`,
			errPart: "temp_min",
		},
		{
			name: "duplicate category",
			yaml: `
engine:
  fallback_category: a
  categories:
    - name: a
      base_temp: 0.3
      keywords: [x]
    - name: a
      base_temp: 0.5
      keywords: [y]
`,
			errPart: "duplicate",
		},
		{
			name: "unknown fallback category",
			yaml: `
engine:
  fallback_category: ghost
  categories:
    - name: real
      base_temp: 0.5
      keywords: [x]
`,
			errPart: "fallback_category",
		},
		{
			name: "category without a name",
			yaml: `
engine:
  fallback_category: ok
  categories:
    - name: ok
      base_temp: 0.5
      keywords: [x]
    - base_temp: 0.7
      keywords: [y]
`,
			errPart: "without a name",
		},
		{
			name:    "broken yaml",
			yaml:    "backend: [not a mapping",
			errPart: "yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

// TestBaseTempFor проверяет поиск base_temp по имени категории.
func TestBaseTempFor(t *testing.T) {
	empty := EngineConfig{}
	cfg := empty.GetDefaults()

	assert.Equal(t, 0.1, cfg.BaseTempFor("factual"))
	assert.Equal(t, 0.9, cfg.BaseTempFor("creative"))
	// Неизвестная категория падает на fallback (analytical = 0.5)
	assert.Equal(t, 0.5, cfg.BaseTempFor("nonexistent"))
}
