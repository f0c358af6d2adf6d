// Color schemes для TUI.
//
// Схема выбирается в config.yaml (app.color_scheme), кастомизация
// без изменения кода.
package tui

import "github.com/charmbracelet/lipgloss"

// ColorScheme определяет цвета элементов TUI.
//
// Каждое поле — lipgloss.Color (hex, ANSI или named color).
type ColorScheme struct {
	StatusBackground lipgloss.Color // Фон статус-бара
	StatusForeground lipgloss.Color // Текст статус-бара

	SystemMessage lipgloss.Color // Служебные сообщения
	UserMessage   lipgloss.Color // Сообщения пользователя
	AIMessage     lipgloss.Color // Ответы модели
	ErrorMessage  lipgloss.Color // Ошибки
	Analysis      lipgloss.Color // Строка анализа (категория/температура)
	MockBadge     lipgloss.Color // Индикатор mock режима
}

// ColorSchemes — предустановленные цветовые схемы.
var ColorSchemes = map[string]ColorScheme{
	"default": {
		StatusBackground: lipgloss.Color("235"),
		StatusForeground: lipgloss.Color("252"),
		SystemMessage:    lipgloss.Color("242"),
		UserMessage:      lipgloss.Color("226"),
		AIMessage:        lipgloss.Color("86"),
		ErrorMessage:     lipgloss.Color("196"),
		Analysis:         lipgloss.Color("99"),
		MockBadge:        lipgloss.Color("208"),
	},
	"dark": {
		StatusBackground: lipgloss.Color("0"),
		StatusForeground: lipgloss.Color("15"),
		SystemMessage:    lipgloss.Color("8"),
		UserMessage:      lipgloss.Color("11"),
		AIMessage:        lipgloss.Color("14"),
		ErrorMessage:     lipgloss.Color("9"),
		Analysis:         lipgloss.Color("13"),
		MockBadge:        lipgloss.Color("3"),
	},
	"dracula": {
		StatusBackground: lipgloss.Color("#282a36"),
		StatusForeground: lipgloss.Color("#f8f8f2"),
		SystemMessage:    lipgloss.Color("#6272a4"),
		UserMessage:      lipgloss.Color("#f1fa8c"),
		AIMessage:        lipgloss.Color("#8be9fd"),
		ErrorMessage:     lipgloss.Color("#ff5555"),
		Analysis:         lipgloss.Color("#bd93f9"),
		MockBadge:        lipgloss.Color("#ffb86c"),
	},
}

// GetColorScheme возвращает схему по имени, default как fallback.
func GetColorScheme(name string) ColorScheme {
	if scheme, ok := ColorSchemes[name]; ok {
		return scheme
	}
	return ColorSchemes["default"]
}
