// Package tui is a keystroke driven prompt that re-plans the template match
// after every edit.
package tui

import (
	"strings"

	"github.com/bastiangx/cadprompt/internal/render"
	"github.com/bastiangx/cadprompt/pkg/match"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SubmitFunc receives the text the user committed and its final match.
// Unmatched text is a valid submission.
type SubmitFunc func(text string, res match.Result)

// Config holds the model settings.
type Config struct {
	ShowPreview bool
	MaxInput    int
	Styles      render.Styles
	OnSubmit    SubmitFunc
}

// planMsg carries the result for one input snapshot.
type planMsg struct {
	input  string
	result match.Result
}

// Model is the bubbletea model of the prompt.
type Model struct {
	engine   match.Engine
	cfg      Config
	input    textinput.Model
	result   match.Result
	selected int
	quitting bool
}

const helpText = "tab: accept  ↑/↓: choose  enter: send  esc: quit"

// New creates a focused prompt over engine.
func New(engine match.Engine, cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Describe a part... (try \"Generate a\")"
	ti.Prompt = "cad> "
	ti.PromptStyle = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	if cfg.MaxInput > 0 {
		ti.CharLimit = cfg.MaxInput
	}
	ti.Width = 80
	ti.Focus()

	return Model{
		engine:   engine,
		cfg:      cfg,
		input:    ti,
		result:   engine.Plan(""),
		selected: 0,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// plan computes the match for the current text off the update loop.
func (m Model) plan() tea.Cmd {
	input := m.input.Value()
	engine := m.engine
	return func() tea.Msg {
		return planMsg{input: input, result: engine.Plan(input)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planMsg:
		// Results for an older snapshot of the text are dropped.
		if msg.input != m.input.Value() {
			return m, nil
		}
		m.result = msg.result
		m.selected = 0
		return m, nil

	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyUp, tea.KeyShiftTab:
			m.move(-1)
			return m, nil
		case tea.KeyDown:
			m.move(1)
			return m, nil
		case tea.KeyTab:
			return m.accept()
		case tea.KeyEnter:
			return m.submit()
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		return m, tea.Batch(cmd, m.plan())
	}
	return m, cmd
}

func (m *Model) move(delta int) {
	n := len(m.result.Suggestions)
	if n == 0 {
		return
	}
	m.selected = (m.selected + delta + n) % n
}

// accept replaces the text with the built prefix plus the chosen suggestion.
func (m Model) accept() (tea.Model, tea.Cmd) {
	if len(m.result.Suggestions) == 0 || m.result.Prefix+m.result.Value != m.input.Value() {
		return m, nil
	}
	choice := m.result.Suggestions[m.selected]
	m.input.SetValue(match.Apply(m.result, choice))
	m.input.CursorEnd()
	return m, m.plan()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}
	res := m.engine.Plan(text)
	if m.cfg.OnSubmit != nil {
		m.cfg.OnSubmit(text, res)
	}
	m.input.Reset()
	m.result = m.engine.Plan("")
	m.selected = 0

	line := "sent: " + text
	if res.Matched() {
		line += "  [" + res.TemplateID() + "]"
	}
	return m, tea.Println(line)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	st := m.cfg.Styles
	lines := []string{m.input.View()}
	if m.cfg.ShowPreview {
		if preview := render.Preview(m.result, st); preview != "" {
			lines = append(lines, "  "+preview)
		}
	}
	lines = append(lines, "  "+render.Status(m.result, st))
	if errLine := render.ErrorLine(m.result, st); errLine != "" {
		lines = append(lines, "  "+errLine)
	}
	if len(m.result.Suggestions) > 0 {
		lines = append(lines, render.Suggestions(m.result.Suggestions, m.selected, st))
	}
	lines = append(lines, "", st.Muted.Render(helpText))
	return strings.Join(lines, "\n") + "\n"
}

// Result returns the match for the current text.
func (m Model) Result() match.Result {
	return m.result
}

// Value returns the current text.
func (m Model) Value() string {
	return m.input.Value()
}

// Run starts the prompt on the terminal.
func Run(engine match.Engine, cfg Config) error {
	_, err := tea.NewProgram(New(engine, cfg)).Run()
	return err
}
