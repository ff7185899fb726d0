// Package tui hosts the interactive triage program.
package tui

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/redline/internal/core/align"
	"github.com/colonyops/redline/internal/core/comparison"
	"github.com/colonyops/redline/internal/core/config"
	"github.com/colonyops/redline/internal/core/styles"
	coretriage "github.com/colonyops/redline/internal/core/triage"
	"github.com/colonyops/redline/internal/redline"
	"github.com/colonyops/redline/internal/tui/components"
	"github.com/colonyops/redline/internal/tui/views/triage"
)

// Options configures the triage TUI.
type Options struct {
	Report    comparison.Report
	Config    *config.Config
	Memo      *align.Memo
	BuildInfo redline.BuildInfo
	Category  string // initial category filter; empty means all
}

// Model is the root Bubble Tea model for a triage session.
type Model struct {
	triage    triage.View
	keys      triage.KeyMap
	help      *components.HelpDialog
	report    comparison.Report
	buildInfo redline.BuildInfo
	width     int
	height    int
	quitting  bool
}

// New creates the root model and mounts the triage view.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		def := config.DefaultConfig()
		cfg = &def
	}

	keys := triage.NewKeyMap(cfg.Keys.Next, cfg.Keys.Previous)
	view := triage.New(opts.Report.Differences, opts.Memo, triage.Options{
		Title:         opts.Report.DisplayTitle(),
		MaxTokens:     cfg.Align.MaxTokens,
		HideUnchanged: cfg.TUI.HideUnchanged,
		Keys:          keys,
	})
	if opts.Category != "" {
		view.Controller().SetCategoryFilter(opts.Category)
	}
	view.SetSize(80, 24)
	view.Mount()

	return Model{
		triage:    view,
		keys:      keys,
		report:    opts.Report,
		buildInfo: opts.BuildInfo,
		width:     80,
		height:    24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.triage.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.triage.SetSize(msg.Width, msg.Height-1)
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}

		if m.help != nil {
			switch msg.String() {
			case "esc", "?", "q":
				m.help = nil
			}
			return m, nil
		}

		switch {
		case msg.String() == "q" || msg.String() == "esc":
			return m.quit()
		case key.Matches(msg, m.keys.Help):
			m.help = components.NewHelpDialog("Keyboard shortcuts", m.keys.HelpSections())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.triage, cmd = m.triage.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, m.triage.View(), m.renderStatusBar())
	if m.help != nil {
		content = m.help.Overlay(content, m.width, m.height)
	}

	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.help = nil
	m.triage.Unmount()
	return m, tea.Quit
}

// Close releases the triage subscription. It is safe to call after the
// program quit.
func (m *Model) Close() {
	m.triage.Unmount()
}

// Controller exposes the triage controller for inspection after the program
// exits.
func (m Model) Controller() *coretriage.Controller {
	return m.triage.Controller()
}

func (m Model) renderStatusBar() string {
	left := fmt.Sprintf(" %s", m.report.ID)
	right := "redline"
	if m.buildInfo.Version != "" {
		right += " " + m.buildInfo.Version
	}
	right += " "

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return styles.StatusBarStyle.Width(max(m.width, 1)).Render(left + fmt.Sprintf("%*s", gap, "") + right)
}
