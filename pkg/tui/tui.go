// Package tui предоставляет терминальный интерфейс для smarttemp.
//
// # Layout
//
//	┌─────────────────────────────────────────────────┐
//	│ SmartTemp | Model: llama2 | Mode: LIVE          │ ← Status Bar
//	├─────────────────────────────────────────────────┤
//	│  [14:32:15] User: What is the capital of Peru?  │
//	│  Analysis: factual conf=0.85 temp=0.15          │
//	│  [14:32:16] AI: Lima is the capital...          │
//	│                                                 │
//	│  Main Area (auto-scroll)                        │
//	├─────────────────────────────────────────────────┤
//	│ > user input here                               │ ← Input Area
//	└─────────────────────────────────────────────────┘
//
// UI не содержит бизнес-логики: подписывается на events.Subscriber
// и отдаёт ввод через OnInput callback.
package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/ilkoid/smarttemp/pkg/events"
)

// Config конфигурирует TUI. Все поля опциональны.
type Config struct {
	// Colors — цветовая схема
	Colors ColorScheme

	// Title — заголовок в статус-баре
	Title string

	// ModelName — имя модели в статус-баре
	ModelName string

	// MockMode — показать "Mode: MOCK" в статус-баре
	MockMode bool

	// InputPrompt — приглашение ввода
	InputPrompt string

	// MaxMessages — лимит строк в логе (0 = безлимит)
	MaxMessages int

	// ShowTimestamp — показывать время у сообщений
	ShowTimestamp bool
}

// eventMsg оборачивает событие пайплайна в tea.Msg.
type eventMsg events.Event

// Tui — Bubble Tea модель приложения.
//
// Thread-safe: ввод обрабатывается в горутинах, лог под мьютексом.
type Tui struct {
	config     Config
	subscriber events.Subscriber
	onInput    func(input string)

	viewport viewport.Model
	textarea textarea.Model

	mu           sync.RWMutex
	messages     []string
	ready        bool
	isProcessing bool
	mockSeen     bool // Был ли хоть один fallback за сессию
}

// New создаёт TUI, подписанный на события пайплайна.
func New(subscriber events.Subscriber, config Config) *Tui {
	if config.Title == "" {
		config.Title = "SmartTemp"
	}
	if config.InputPrompt == "" {
		config.InputPrompt = "> "
	}
	if config.Colors.StatusForeground == "" {
		config.Colors = GetColorScheme("default")
	}

	ta := textarea.New()
	ta.Placeholder = "Enter any prompt..."
	ta.Focus()
	ta.Prompt = config.InputPrompt
	ta.CharLimit = 500
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	vp := viewport.New(0, 0)

	t := &Tui{
		config:     config,
		subscriber: subscriber,
		viewport:   vp,
		textarea:   ta,
		messages:   []string{},
	}
	t.appendMessage(t.systemStyle("SmartTemp initialized. Temperature adjusts to your prompt."), false)
	return t
}

// OnInput устанавливает callback для пользовательского ввода.
//
// Вызывается на каждый Enter; callback запускается в отдельной горутине.
func (t *Tui) OnInput(handler func(input string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onInput = handler
}

// Run запускает TUI (блокирующий вызов).
func (t *Tui) Run() error {
	p := tea.NewProgram(t)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// ===== BUBBLE TEA MODEL INTERFACE =====

// Init реализует tea.Model.
func (t *Tui) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, t.waitForEvent())
}

// Update реализует tea.Model.
func (t *Tui) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	t.textarea, tiCmd = t.textarea.Update(msg)
	t.viewport, vpCmd = t.viewport.Update(msg)

	switch msg := msg.(type) {
	case eventMsg:
		return t.handlePipelineEvent(events.Event(msg))

	case tea.WindowSizeMsg:
		return t.handleWindowSize(msg)

	case tea.KeyMsg:
		return t.handleKeyPress(msg)
	}

	return t, tea.Batch(tiCmd, vpCmd)
}

// View реализует tea.Model.
func (t *Tui) View() string {
	return fmt.Sprintf("%s\n%s\n%s",
		t.renderStatusBar(),
		t.viewport.View(),
		t.textarea.View(),
	)
}

// ===== EVENT HANDLING =====

// waitForEvent читает одно событие из подписки.
func (t *Tui) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-t.subscriber.Events()
		if !ok {
			return tea.Quit()
		}
		return eventMsg(event)
	}
}

// handlePipelineEvent обрабатывает события движка.
func (t *Tui) handlePipelineEvent(event events.Event) (tea.Model, tea.Cmd) {
	switch event.Type {
	case events.EventAnalysis:
		if data, ok := event.Data.(events.AnalysisData); ok {
			line := fmt.Sprintf("Analysis: %s conf=%.2f temp=%.2f",
				data.Category, data.Confidence, data.Temperature)
			t.appendMessage(t.analysisStyle(line), false)
		}

	case events.EventGenerating:
		t.mu.Lock()
		t.isProcessing = true
		t.mu.Unlock()
		t.appendMessage(t.systemStyle("Generating..."), false)

	case events.EventFallback:
		if data, ok := event.Data.(events.FallbackData); ok {
			t.mu.Lock()
			t.mockSeen = true
			t.mu.Unlock()
			t.appendMessage(t.mockStyle("Backend unavailable, switching to mock: "+data.Reason), false)
		}

	case events.EventResponse:
		if data, ok := event.Data.(events.ResponseData); ok {
			prefix := t.aiStyle("AI: ")
			if data.Source == "mock" {
				prefix = t.mockStyle("[MOCK] ") + prefix
			}
			t.appendMessage(prefix+data.Content, true)
			t.appendMessage(t.systemStyle(fmt.Sprintf("(%s, %dms)", data.Source, data.Elapsed.Milliseconds())), false)
		}
		t.mu.Lock()
		t.isProcessing = false
		t.mu.Unlock()
		t.textarea.Focus()

	case events.EventError:
		if data, ok := event.Data.(events.ErrorData); ok {
			t.appendMessage(t.errorStyle("ERROR: "+data.Err.Error()), true)
		}
		t.mu.Lock()
		t.isProcessing = false
		t.mu.Unlock()
		t.textarea.Focus()
	}

	return t, t.waitForEvent()
}

// handleWindowSize пересчитывает layout под размер терминала.
func (t *Tui) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	headerHeight := 1
	footerHeight := t.textarea.Height() + 1

	vpHeight := msg.Height - headerHeight - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	vpWidth := msg.Width
	if vpWidth < 20 {
		vpWidth = 20
	}

	t.viewport.Width = vpWidth
	t.viewport.Height = vpHeight
	t.textarea.SetWidth(vpWidth)

	if !t.ready {
		t.ready = true
		t.refreshViewport()
	}

	return t, nil
}

// handleKeyPress обрабатывает клавиатуру.
func (t *Tui) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return t, tea.Quit

	case tea.KeyEnter:
		input := strings.TrimSpace(t.textarea.Value())
		if input == "" {
			return t, nil
		}

		t.textarea.Reset()
		t.appendMessage(t.userStyle("User: ")+input, true)

		t.mu.RLock()
		handler := t.onInput
		processing := t.isProcessing
		t.mu.RUnlock()

		// Один запрос за раз — пайплайн синхронный
		if handler != nil && !processing {
			go handler(input)
		}
	}

	return t, nil
}

// ===== INTERNAL =====

// renderStatusBar рендерит статус-бар.
func (t *Tui) renderStatusBar() string {
	mode := "LIVE"
	t.mu.RLock()
	if t.config.MockMode || t.mockSeen {
		mode = "MOCK"
	}
	t.mu.RUnlock()

	text := fmt.Sprintf(" %s | Model: %s | Mode: %s ", t.config.Title, t.config.ModelName, mode)
	style := lipgloss.NewStyle().
		Background(t.config.Colors.StatusBackground).
		Foreground(t.config.Colors.StatusForeground)
	return style.Render(text)
}

// appendMessage добавляет строку в лог и обновляет viewport.
func (t *Tui) appendMessage(msg string, showTimestamp bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	line := msg
	if showTimestamp && t.config.ShowTimestamp {
		line = fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg)
	}

	t.messages = append(t.messages, line)

	if t.config.MaxMessages > 0 && len(t.messages) > t.config.MaxMessages {
		t.messages = t.messages[len(t.messages)-t.config.MaxMessages:]
	}

	t.refreshViewportLocked()
}

// refreshViewport перерисовывает содержимое viewport.
func (t *Tui) refreshViewport() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.refreshViewportLocked()
}

// refreshViewportLocked — версия без захвата мьютекса (он уже взят).
func (t *Tui) refreshViewportLocked() {
	content := strings.Join(t.messages, "\n")
	if t.viewport.Width > 0 {
		content = wordwrap.String(content, t.viewport.Width)
	}
	t.viewport.SetContent(content)
	t.viewport.GotoBottom()
}

// Стили сообщений.

func (t *Tui) systemStyle(s string) string {
	return lipgloss.NewStyle().Foreground(t.config.Colors.SystemMessage).Render(s)
}

func (t *Tui) userStyle(s string) string {
	return lipgloss.NewStyle().Foreground(t.config.Colors.UserMessage).Render(s)
}

func (t *Tui) aiStyle(s string) string {
	return lipgloss.NewStyle().Foreground(t.config.Colors.AIMessage).Render(s)
}

func (t *Tui) errorStyle(s string) string {
	return lipgloss.NewStyle().Foreground(t.config.Colors.ErrorMessage).Render(s)
}

func (t *Tui) analysisStyle(s string) string {
	return lipgloss.NewStyle().Foreground(t.config.Colors.Analysis).Render(s)
}

func (t *Tui) mockStyle(s string) string {
	return lipgloss.NewStyle().Foreground(t.config.Colors.MockBadge).Render(s)
}

// Compile-time проверка tea.Model.
var _ tea.Model = (*Tui)(nil)
