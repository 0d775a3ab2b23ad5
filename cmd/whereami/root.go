package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chess10kp/whereami/internal/config"
	"github.com/chess10kp/whereami/internal/core"
	"github.com/chess10kp/whereami/internal/dispatch"
	"github.com/chess10kp/whereami/internal/hypr"
	"github.com/chess10kp/whereami/internal/lock"
	"github.com/chess10kp/whereami/internal/logger"
	"github.com/chess10kp/whereami/internal/registry"
	"github.com/chess10kp/whereami/internal/search"
	"github.com/chess10kp/whereami/internal/ui"
)

// newCommander is replaced in tests.
var newCommander = func(path string) hypr.Commander {
	return hypr.NewExecCommander(path)
}

type globalOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "whereami",
		Short: "Fuzzy window switcher for Hyprland",
		Long: `whereami lists every open Hyprland window, filters them as you type and
jumps to the workspace of the one you pick.

Keys (configurable in the [keys] section):
  up/down     move the selection
  enter       focus the selected window and exit
  delete      close the selected window
  esc         exit without doing anything`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSwitcher(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, off), overrides [log] level")

	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}

// loadConfig loads the config, applies flag overrides and validates the result.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// setupLogging points the global logger at the configured file. The
// returned func closes it.
func setupLogging(cfg *config.Config) (func(), error) {
	if cfg.Log.File == "" {
		logger.Init(cfg.Log.Level, cfg.Log.Pretty, io.Discard)
		return func() {}, nil
	}
	f, err := logger.OpenFile(cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Pretty, f)
	return func() { f.Close() }, nil
}

func focusMode(cfg *config.Config) dispatch.FocusMode {
	if cfg.Behavior.FocusMode == config.FocusModeWindow {
		return dispatch.FocusWindow
	}
	return dispatch.FocusWorkspace
}

func newPoller(cfg *config.Config, wm *hypr.Hyprctl) *registry.Poller {
	return registry.NewPoller(wm, registry.Options{
		SelfTitle:       cfg.Window.Title,
		SortByWorkspace: cfg.Behavior.SortByWorkspace,
	})
}

func searchOptions(cfg *config.Config) search.Options {
	return search.Options{
		CaseSensitive: cfg.Search.CaseSensitive,
		MaxResults:    cfg.Search.MaxResults,
	}
}

func runSwitcher(ctx context.Context, opts *globalOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	log := logger.Component("main")

	lk, err := lock.Acquire(cfg.Lock.Path)
	if err != nil {
		var conflict *lock.ConflictError
		if errors.As(err, &conflict) {
			log.Warn().Int("pid", conflict.PID).Str("path", conflict.Path).Msg("already running")
		}
		return err
	}
	defer lk.Release()

	wm := hypr.NewHyprctl(newCommander(cfg.Hyprctl.Command))
	ranker, err := search.NewRanker(searchOptions(cfg), cfg.Search.CacheSize)
	if err != nil {
		return err
	}

	engine := core.NewEngine(ranker, core.Options{WrapNavigation: cfg.Behavior.WrapNavigation})
	runner := core.NewRunner(newPoller(cfg, wm), dispatch.New(wm, focusMode(cfg)))

	if requested := cfg.Behavior.RefreshInterval; int64(requested) < config.MinRefreshInterval.Milliseconds() {
		log.Warn().Int("requested_ms", requested).Dur("using", cfg.RefreshInterval()).Msg("refresh_interval raised to floor")
	}
	log.Info().
		Str("lock", lk.Path()).
		Dur("refresh", cfg.RefreshInterval()).
		Str("focus_mode", cfg.Behavior.FocusMode).
		Msg("starting")

	program := tea.NewProgram(
		ui.New(ctx, engine, runner, cfg),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, tea.ErrInterrupted) {
		return fmt.Errorf("terminal UI failed: %w", err)
	}

	stats := ranker.Stats()
	log.Info().
		Int64("cache_hits", stats.Hits).
		Int64("cache_misses", stats.Misses).
		Msg("exiting")
	return nil
}
