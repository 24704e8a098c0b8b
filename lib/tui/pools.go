package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-i2p/scratchpool/lib/pool"
	"github.com/go-i2p/scratchpool/lib/registry"
)

const poolRowFormat = "%-32s %-12s %6s %10s %7s %8s %9s %8s"

// PoolsModel is the model for the pools view.
type PoolsModel struct {
	entries []registry.Entry
	loaded  bool
	cursor  int
	width   int
	height  int
}

// NewPoolsModel creates a new pools view model.
func NewPoolsModel() PoolsModel {
	return PoolsModel{}
}

// SetData updates the pool entries.
func (m *PoolsModel) SetData(entries []registry.Entry) {
	m.entries = entries
	m.loaded = true
	// Reset cursor if out of bounds
	if m.cursor >= len(m.entries) {
		m.cursor = max(0, len(m.entries)-1)
	}
}

// SetDimensions sets the view dimensions.
func (m *PoolsModel) SetDimensions(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the pools view.
func (m PoolsModel) Update(msg tea.KeyMsg) (PoolsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	}
	return m, nil
}

// View renders the pools view.
func (m PoolsModel) View() string {
	if !m.loaded {
		return styles.Muted.Render("Loading pools...")
	}

	if len(m.entries) == 0 {
		return renderEmptyState(m.width, m.height, "No Pools Yet",
			"Pools are created on first use.",
			[]string{"Waiting for the workload to rent a container"})
	}

	var b strings.Builder

	header := fmt.Sprintf(poolRowFormat, "POOL", "KIND", "IDLE", "RENTS", "HIT%", "MISSES", "REJECTED", "DROPPED")
	b.WriteString(styles.TableHeader.Render(header))
	b.WriteString("\n")

	for i, e := range m.entries {
		s := e.Stats
		rate := hitRate(s)
		row := fmt.Sprintf(poolRowFormat,
			truncate(s.Name, 32),
			e.Kind,
			fmt.Sprintf("%d", s.Idle),
			fmt.Sprintf("%d", s.Rents),
			HitRateStyle(rate, s.Rents).Render(fmt.Sprintf("%.1f", rate*100)),
			fmt.Sprintf("%d", s.Misses),
			fmt.Sprintf("%d", s.Rejected),
			fmt.Sprintf("%d", s.Dropped),
		)

		if i == m.cursor {
			row = styles.Selected.Render(row)
		} else {
			row = styles.TableRow.Render(row)
		}

		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(fmt.Sprintf("Total: %d pools", len(m.entries))))

	return b.String()
}

// SelectedPool returns the entry under the cursor.
func (m PoolsModel) SelectedPool() *registry.Entry {
	if m.cursor >= 0 && m.cursor < len(m.entries) {
		return &m.entries[m.cursor]
	}
	return nil
}

// hitRate is the fraction of rents served from idle items.
func hitRate(s pool.Stats) float64 {
	if s.Rents == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Rents)
}
