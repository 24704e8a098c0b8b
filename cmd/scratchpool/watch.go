package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sourcegraph/conc"

	"github.com/go-i2p/scratchpool/lib/registry"
	"github.com/go-i2p/scratchpool/lib/tui"
	"github.com/go-i2p/scratchpool/lib/workload"
)

// handleWatch handles the "watch" subcommand. It runs the workload in the
// background and shows the registry in an interactive dashboard until the
// user quits or ctx is cancelled.
func handleWatch(ctx context.Context, logger *slog.Logger, reg *registry.Registry, cfg workload.Config, pause, refresh time.Duration, opts ...tea.ProgramOption) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg conc.WaitGroup
	wg.Go(func() {
		runWorkloadLoop(ctx, logger, reg, cfg, pause)
	})

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(tui.New(reg, tui.Config{RefreshInterval: refresh}), opts...)
	_, err := p.Run()

	cancel()
	wg.Wait()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fail(logger, "dashboard failed", err)
	}
	return 0
}
