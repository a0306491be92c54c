package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	report  *report
	opts    checkOptions
	spinner spinner.Model
	runs    int
	running bool
}

type checkedMsg struct {
	report *report
}

func newInteractiveModel(opts checkOptions) *interactiveModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return &interactiveModel{opts: opts, spinner: s, running: true}
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runCheck)
}

func (m *interactiveModel) runCheck() tea.Msg {
	return checkedMsg{report: check(m.opts)}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			if !m.running {
				m.running = true
				return m, tea.Batch(m.spinner.Tick, m.runCheck)
			}
		}

	case checkedMsg:
		m.report = msg.report
		m.running = false
		m.runs++

	case spinner.TickMsg:
		if m.running {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("NPlug Proxy Check"))
	b.WriteString(" ")
	b.WriteString(m.opts.proxyPath)
	b.WriteString("\n\n")

	if m.running {
		b.WriteString(m.spinner.View())
		b.WriteString(" Resolving plugin factory...\n")
		return b.String()
	}

	for _, s := range m.report.steps {
		b.WriteString(renderStep(s, true))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("run %d • r rerun • q quit", m.runs)))
	return b.String()
}

func runInteractive(opts checkOptions) error {
	p := tea.NewProgram(newInteractiveModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
