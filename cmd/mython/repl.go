package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mython-lang/mython/mython"
)

var (
	accentColor  = lipgloss.Color("#3B82F6")
	successColor = lipgloss.Color("#10B981")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput  textinput.Model
	session    *mython.Session
	capture    *mython.CaptureContext
	pending    []string
	history    []historyEntry
	cmdHistory []string
	historyIdx int
	width      int
	height     int
	quitting   bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
}

func newREPLModel() replModel {
	ti := textinput.New()
	ti.Placeholder = "type a statement..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "mython> "

	capture := &mython.CaptureContext{}

	return replModel{
		textInput:  ti,
		session:    mython.NewSession(capture),
		capture:    capture,
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}
}

func runREPL() error {
	_, err := tea.NewProgram(newREPLModel()).Run()
	return err
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = nil
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
				}
				m.textInput.SetValue(m.cmdHistory[len(m.cmdHistory)-1-m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx > 0 {
				m.historyIdx--
				m.textInput.SetValue(m.cmdHistory[len(m.cmdHistory)-1-m.historyIdx])
				m.textInput.CursorEnd()
			} else {
				m.historyIdx = -1
				m.textInput.SetValue("")
			}
			return m, nil

		case key.Matches(msg, keys.Enter):
			line := m.textInput.Value()
			m.textInput.SetValue("")
			m.historyIdx = -1
			if strings.TrimSpace(line) != "" {
				m.cmdHistory = append(m.cmdHistory, line)
			}
			m.consumeLine(line)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// consumeLine feeds one input line into the pending block. Block openers
// (lines ending in a colon) and every line after them accumulate until a
// blank line closes the block and submits it.
func (m *replModel) consumeLine(line string) {
	if len(m.pending) > 0 {
		if strings.TrimSpace(line) == "" {
			m.submit(strings.Join(m.pending, "\n") + "\n")
			m.pending = nil
			return
		}
		m.pending = append(m.pending, line)
		return
	}
	if strings.TrimSpace(line) == "" {
		return
	}
	if strings.HasSuffix(strings.TrimRight(line, " "), ":") {
		m.pending = []string{line}
		return
	}
	m.submit(line + "\n")
}

func (m *replModel) submit(source string) {
	err := m.session.Eval(source)
	output := m.capture.String()
	m.capture.Reset()

	entry := historyEntry{input: strings.TrimRight(source, "\n")}
	if err != nil {
		entry.output = err.Error()
		entry.isErr = true
	} else {
		entry.output = strings.TrimRight(output, "\n")
	}
	m.history = append(m.history, entry)
}

func (m replModel) View() string {
	if m.quitting {
		return mutedStyle.Render("bye") + "\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Mython REPL"))
	b.WriteString(mutedStyle.Render("  ctrl+c quit · ctrl+l clear"))
	b.WriteString("\n\n")

	for _, entry := range m.history {
		for _, line := range strings.Split(entry.input, "\n") {
			b.WriteString(promptStyle.Render("mython> "))
			b.WriteString(line)
			b.WriteString("\n")
		}
		if entry.output != "" {
			style := resultStyle
			if entry.isErr {
				style = errorStyle
			}
			for _, line := range strings.Split(entry.output, "\n") {
				b.WriteString(style.Render(line))
				b.WriteString("\n")
			}
		}
	}

	if len(m.pending) > 0 {
		for _, line := range m.pending {
			b.WriteString(promptStyle.Render("mython> "))
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString(mutedStyle.Render(fmt.Sprintf("... %d pending line(s), empty line runs the block", len(m.pending))))
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	return b.String()
}
