// scratchpool exercises and monitors pools of reusable scratch containers.
//
// Usage:
//
//	scratchpool [flags] bench     Run the configured workload once and print results
//	scratchpool [flags] serve     Run the workload repeatedly and expose metrics
//	scratchpool [flags] watch     Run the workload repeatedly and show a live dashboard
//	scratchpool [flags] config    Print the effective configuration
//	scratchpool [flags] config save <path>
//
// Flags:
//
//	-config string
//	    Path to configuration file (default "~/.scratchpool/config.toml")
//	-json
//	    Print bench results as JSON (default when stdout is not a terminal)
//	-metrics-listen string
//	    Metrics listen address (overrides config)
//	-pause duration
//	    Pause between workload runs in serve and watch mode (default 1s)
//	-refresh duration
//	    Dashboard refresh interval in watch mode (default 1s)
//	-v
//	    Enable verbose logging
//	-version
//	    Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-i2p/scratchpool/lib/config"
	"github.com/go-i2p/scratchpool/lib/registry"
	"github.com/go-i2p/scratchpool/lib/tui"
	"github.com/go-i2p/scratchpool/lib/workload"
	"github.com/go-i2p/scratchpool/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the parsed command line.
type options struct {
	configPath    string
	asJSON        bool
	metricsListen string
	pause         time.Duration
	refresh       time.Duration
	verbose       bool
	showVersion   bool
	args          []string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	defaultConfigPath := filepath.Join(homeDir, ".scratchpool", "config.toml")

	opts := &options{}
	fs := flag.NewFlagSet("scratchpool", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "Path to configuration file (.toml, .yaml or .yml)")
	fs.BoolVar(&opts.asJSON, "json", false, "Print bench results as JSON (default when stdout is not a terminal)")
	fs.StringVar(&opts.metricsListen, "metrics-listen", "", "Metrics listen address (overrides config)")
	fs.DurationVar(&opts.pause, "pause", time.Second, "Pause between workload runs in serve and watch mode")
	fs.DurationVar(&opts.refresh, "refresh", tui.DefaultRefreshInterval, "Dashboard refresh interval in watch mode")
	fs.BoolVar(&opts.verbose, "v", false, "Enable verbose logging")
	fs.BoolVar(&opts.showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "scratchpool - reusable scratch container pools\n\n")
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  scratchpool [flags] bench              Run the workload once and print results\n")
		fmt.Fprintf(stderr, "  scratchpool [flags] serve              Run the workload repeatedly and expose metrics\n")
		fmt.Fprintf(stderr, "  scratchpool [flags] watch              Run the workload repeatedly and show a live dashboard\n")
		fmt.Fprintf(stderr, "  scratchpool [flags] config             Print the effective configuration\n")
		fmt.Fprintf(stderr, "  scratchpool [flags] config save <path> Write the effective configuration\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.args = fs.Args()
	return opts, nil
}

func run(args []string, stdout *os.File, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	// Handle version flag
	if opts.showVersion {
		fmt.Fprintf(stdout, "scratchpool version %s\n", version.Full())
		return 0
	}

	if len(opts.args) == 0 {
		fmt.Fprintln(stderr, "missing command: bench, serve, watch or config")
		return 2
	}

	// Load configuration, then apply command-line overrides
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		printError(stderr, "failed to load config", err)
		return 1
	}
	if opts.metricsListen != "" {
		cfg.Metrics.Listen = opts.metricsListen
		if err := cfg.Validate(); err != nil {
			printError(stderr, "invalid -metrics-listen", err)
			return 1
		}
	}

	// The dashboard owns the terminal, so console logging is off in watch mode.
	console := stderr
	if opts.args[0] == "watch" {
		console = io.Discard
	}
	logger, cleanup, err := newLogger(cfg.Log, opts.verbose, console)
	if err != nil {
		printError(stderr, "failed to set up logging", err)
		return 1
	}
	defer cleanup()

	switch cmd := opts.args[0]; cmd {
	case "config":
		return handleConfig(opts.args[1:], cfg, stdout, logger)
	case "bench", "serve", "watch":
		if err := registry.InitDefault(cfg.Pools); err != nil {
			return fail(logger, "failed to create registry", err)
		}
		reg := registry.Default()
		logger.Debug("registry ready", "registry", reg.ID(), "version", version.Full())

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		switch cmd {
		case "bench":
			return handleBench(ctx, logger, reg, cfg.Workload, wantJSON(opts.asJSON, stdout), stdout)
		case "watch":
			return handleWatch(ctx, logger, reg, cfg.Workload, opts.pause, opts.refresh, tea.WithAltScreen())
		default:
			return handleServe(ctx, logger, reg, cfg, opts.pause)
		}
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		return 2
	}
}

// handleConfig handles the "config" subcommand.
func handleConfig(args []string, cfg *config.Config, stdout io.Writer, logger *slog.Logger) int {
	if len(args) == 0 {
		data, err := cfg.Marshal(false)
		if err != nil {
			return fail(logger, "failed to encode config", err)
		}
		_, _ = stdout.Write(data)
		return 0
	}

	if args[0] != "save" || len(args) != 2 {
		logger.Error("usage: scratchpool config save <path>")
		return 2
	}
	if err := config.SaveConfig(cfg, args[1]); err != nil {
		return fail(logger, "failed to save config", err, "path", args[1])
	}
	logger.Info("saved config", "path", args[1])
	return 0
}

// handleBench handles the "bench" subcommand.
func handleBench(ctx context.Context, logger *slog.Logger, reg *registry.Registry, cfg workload.Config, asJSON bool, stdout io.Writer) int {
	results, err := workload.Run(ctx, reg, cfg)
	if err != nil {
		if !workload.IsInterrupted(err) {
			return fail(logger, "workload failed", err)
		}
		logger.Warn("workload interrupted, printing partial results", "completed", len(results))
	}

	if err := writeResults(stdout, results, asJSON); err != nil {
		return fail(logger, "failed to write results", err)
	}
	return 0
}
