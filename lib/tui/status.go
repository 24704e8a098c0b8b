package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/go-i2p/scratchpool/lib/registry"
	"github.com/go-i2p/scratchpool/version"
)

// StatusModel is the model for the summary view.
type StatusModel struct {
	registryID string
	started    time.Time
	entries    []registry.Entry
	loaded     bool
	width      int
	height     int
}

// NewStatusModel creates a new summary view model.
func NewStatusModel(registryID string, started time.Time) StatusModel {
	return StatusModel{registryID: registryID, started: started}
}

// SetData updates the pool entries the totals are computed from.
func (m *StatusModel) SetData(entries []registry.Entry) {
	m.entries = entries
	m.loaded = true
}

// SetDimensions sets the view dimensions.
func (m *StatusModel) SetDimensions(width, height int) {
	m.width = width
	m.height = height
}

// Totals aggregates the counters of every pool.
type Totals struct {
	Pools    int
	Idle     int
	Rents    uint64
	Hits     uint64
	Misses   uint64
	Returns  uint64
	Rejected uint64
	Dropped  uint64
}

// totals sums the current entries.
func (m StatusModel) totals() Totals {
	return Totals{
		Pools:    len(m.entries),
		Idle:     lo.SumBy(m.entries, func(e registry.Entry) int { return e.Stats.Idle }),
		Rents:    lo.SumBy(m.entries, func(e registry.Entry) uint64 { return e.Stats.Rents }),
		Hits:     lo.SumBy(m.entries, func(e registry.Entry) uint64 { return e.Stats.Hits }),
		Misses:   lo.SumBy(m.entries, func(e registry.Entry) uint64 { return e.Stats.Misses }),
		Returns:  lo.SumBy(m.entries, func(e registry.Entry) uint64 { return e.Stats.Returns }),
		Rejected: lo.SumBy(m.entries, func(e registry.Entry) uint64 { return e.Stats.Rejected }),
		Dropped:  lo.SumBy(m.entries, func(e registry.Entry) uint64 { return e.Stats.Dropped }),
	}
}

// View renders the summary view.
func (m StatusModel) View() string {
	if !m.loaded {
		return styles.Muted.Render("Loading summary...")
	}

	var b strings.Builder

	mainBox := styles.Box.Width(60)

	mainContent := lipgloss.JoinVertical(lipgloss.Left,
		styles.BoxTitle.Render("Registry"),
		"",
		m.statusRow("ID", truncate(m.registryID, 36)),
		m.statusRow("Version", version.Full()),
		m.statusRow("Uptime", time.Since(m.started).Truncate(time.Second).String()),
		m.statusRow("Pools", fmt.Sprintf("%d", len(m.entries))),
	)

	b.WriteString(mainBox.Render(mainContent))
	b.WriteString("\n\n")

	t := m.totals()
	rate := 0.0
	if t.Rents > 0 {
		rate = float64(t.Hits) / float64(t.Rents)
	}

	trafficContent := lipgloss.JoinVertical(lipgloss.Left,
		styles.BoxTitle.Render("Traffic"),
		"",
		m.statusRow("Idle", fmt.Sprintf("%d", t.Idle)),
		m.statusRow("Rents", fmt.Sprintf("%d", t.Rents)),
		m.statusRow("Hit rate", HitRateStyle(rate, t.Rents).Render(fmt.Sprintf("%.1f%%", rate*100))),
		m.statusRow("Returns", fmt.Sprintf("%d", t.Returns)),
		m.statusRow("Rejected", m.warnIfNonZero(t.Rejected)),
		m.statusRow("Dropped", m.warnIfNonZero(t.Dropped)),
	)

	b.WriteString(mainBox.Render(trafficContent))

	return b.String()
}

// statusRow formats a status row with label and value.
func (m StatusModel) statusRow(label, value string) string {
	labelStyle := styles.Muted.Width(15)
	return labelStyle.Render(label+":") + " " + value
}

func (m StatusModel) warnIfNonZero(n uint64) string {
	if n == 0 {
		return styles.Muted.Render("0")
	}
	return styles.Warning.Render(fmt.Sprintf("%d", n))
}
