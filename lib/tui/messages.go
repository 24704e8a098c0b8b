package tui

import (
	"time"

	"github.com/go-i2p/scratchpool/lib/registry"
)

// refreshMsg carries a fresh registry snapshot.
type refreshMsg struct {
	entries []registry.Entry
	at      time.Time
}

// tickMsg triggers a data refresh.
type tickMsg time.Time
