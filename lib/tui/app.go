// Package tui provides an interactive terminal dashboard for a pool registry.
// It uses BubbleTea for the application framework and polls the registry for
// snapshots on a fixed interval.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-i2p/scratchpool/lib/registry"
)

// DefaultRefreshInterval is used when Config.RefreshInterval is not positive.
const DefaultRefreshInterval = time.Second

// Tab represents a UI tab.
type Tab int

const (
	TabPools Tab = iota
	TabSummary
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabPools:
		return "Pools"
	case TabSummary:
		return "Summary"
	default:
		return "Unknown"
	}
}

// Source is what the dashboard watches. *registry.Registry satisfies it.
type Source interface {
	ID() string
	Snapshot() []registry.Entry
}

// Config holds TUI configuration.
type Config struct {
	// RefreshInterval is how often to take a new snapshot.
	RefreshInterval time.Duration
}

// Model is the main TUI application model.
type Model struct {
	source  Source
	refresh time.Duration

	// Current state
	activeTab   Tab
	width       int
	height      int
	ready       bool
	lastRefresh time.Time
	pools       int

	// Sub-models
	spinner    spinner.Model
	poolsView  PoolsModel
	statusView StatusModel
}

// New creates a new TUI model watching source.
func New(source Source, cfg Config) Model {
	refresh := cfg.RefreshInterval
	if refresh <= 0 {
		refresh = DefaultRefreshInterval
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		source:     source,
		refresh:    refresh,
		activeTab:  TabPools,
		spinner:    s,
		poolsView:  NewPoolsModel(),
		statusView: NewStatusModel(source.ID(), time.Now()),
	}
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.refreshData,
		tea.SetWindowTitle("scratchpool"),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keys
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Tab):
			m.activeTab = (m.activeTab + 1) % tabCount
		case key.Matches(msg, keys.ShiftTab):
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case key.Matches(msg, keys.Refresh):
			cmds = append(cmds, m.refreshData)
		case key.Matches(msg, keys.Pools):
			m.activeTab = TabPools
		case key.Matches(msg, keys.Summary):
			m.activeTab = TabSummary
		}

		if m.activeTab == TabPools {
			var cmd tea.Cmd
			m.poolsView, cmd = m.poolsView.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := m.height - 4 // Header + footer
		m.poolsView.SetDimensions(m.width, contentHeight)
		m.statusView.SetDimensions(m.width, contentHeight)

	case refreshMsg:
		m.lastRefresh = msg.at
		m.pools = len(msg.entries)
		m.poolsView.SetData(msg.entries)
		m.statusView.SetData(msg.entries)
		cmds = append(cmds, tea.Tick(m.refresh, func(t time.Time) tea.Msg {
			return tickMsg(t)
		}))

	case tickMsg:
		cmds = append(cmds, m.refreshData)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return fmt.Sprintf("%s Loading...", m.spinner.View())
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.activeTab {
	case TabPools:
		b.WriteString(m.poolsView.View())
	case TabSummary:
		b.WriteString(m.statusView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the tab bar.
func (m Model) renderHeader() string {
	var renderedTabs []string
	for tab := range tabCount {
		style := styles.TabInactive
		if tab == m.activeTab {
			style = styles.TabActive
		}
		renderedTabs = append(renderedTabs, style.Render(tab.String()))
	}

	title := styles.Title.Render("scratchpool")
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", tabBar)
}

// renderFooter renders the help text.
func (m Model) renderFooter() string {
	var helpItems []string
	if m.activeTab == TabPools {
		helpItems = append(helpItems, "↑↓ navigate")
	}
	helpItems = append(helpItems, "tab switch", "r refresh", "q quit")

	help := strings.Join(helpItems, " • ")

	var statusInfo string
	if !m.lastRefresh.IsZero() {
		statusInfo = fmt.Sprintf("Pools: %d | %s", m.pools, m.lastRefresh.Format(time.TimeOnly))
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		styles.HelpText.Render(help),
		strings.Repeat(" ", max(0, m.width-lipgloss.Width(help)-lipgloss.Width(statusInfo)-2)),
		styles.StatusText.Render(statusInfo),
	)
}

// refreshData takes a snapshot of the source.
func (m Model) refreshData() tea.Msg {
	return refreshMsg{entries: m.source.Snapshot(), at: time.Now()}
}
