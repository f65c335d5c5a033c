package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/wineboard/internal/config"
	"github.com/jask/wineboard/internal/dataset"
	"github.com/jask/wineboard/internal/prefs"
	"github.com/jask/wineboard/internal/service"
	"github.com/jask/wineboard/internal/tui"
)

var (
	configPath string

	// RootCmd launches the dashboard.
	RootCmd = &cobra.Command{
		Use:   "wineboard",
		Short: "Terminal dashboard for the red wine quality and food pairing datasets",
		Long: `wineboard explores two CSV datasets in the terminal:

  • Red wine quality: preview, quality histogram, alcohol by quality,
    correlation heatmap, feature vs quality with an OLS trend, summary table
  • Wine & food pairing: preview, quality histogram, quality by wine type,
    top cuisines by mean quality, and an interactive wine type/cuisine filter

Data paths and display settings come from wineboard.toml or WINEBOARD_*
environment variables.

Examples:
  # Open the dashboard
  wineboard

  # Print summary statistics without the TUI
  wineboard describe wine

  # Write every chart as PNG
  wineboard export --out charts`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: teardown,
		RunE:              runDashboard,
	}

	// set by setup for the running command
	cfg      config.Config
	closeLog = func() {}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $WINEBOARD_CONFIG, ./wineboard.toml or ~/.config/wineboard/config.toml)")
	RootCmd.SuggestionsMinimumDistance = 2

	RootCmd.AddCommand(describeCmd)
	RootCmd.AddCommand(exportCmd)
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = c
	closer, err := setupLogging(cfg.Log.Path)
	if err != nil {
		return err
	}
	closeLog = closer
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	closeLog()
	closeLog = func() {}
}

// setupLogging routes the standard logger to path. The TUI owns stdout and
// stderr, so logs never go to the terminal.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "wineboard")
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	return func() {
		log.SetOutput(io.Discard)
		_ = f.Close()
	}, nil
}

// newServices builds both dashboards over one shared loader.
func newServices(c config.Config) (*dataset.Loader, *service.WineQualityService, *service.PairingService) {
	loader := dataset.NewLoader(c.DelimiterRune())
	opts := service.OptionsFromConfig(c)
	wine := &service.WineQualityService{Loader: loader, Path: c.Data.WineQualityPath, Opts: opts}
	pairings := &service.PairingService{Loader: loader, Path: c.Data.PairingsPath, Opts: opts}
	return loader, wine, pairings
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	loader, wine, pairings := newServices(cfg)
	defer pairings.Close()

	opts := tui.Options{
		Title:       cfg.UI.Title,
		ChartWidth:  cfg.UI.ChartWidth,
		ChartHeight: cfg.UI.ChartHeight,
	}
	if cfg.Data.Watch {
		changes, err := dataset.Watch(ctx, loader, cfg.Data.WineQualityPath, cfg.Data.PairingsPath)
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			opts.Changes = changes
		}
	}

	sessionPath, err := prefs.DefaultPath()
	if err != nil {
		log.Printf("session disabled: %v", err)
	} else if s, err := prefs.Load(sessionPath); err != nil {
		log.Printf("session: %v", err)
	} else {
		opts.Session = s
	}

	log.Printf("starting: wine=%s pairings=%s store=%s", cfg.Data.WineQualityPath, cfg.Data.PairingsPath, cfg.Store.Driver)
	app := tui.New(ctx, tui.Services{Wine: wine, Pairing: pairings}, opts)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if sessionPath != "" {
		if err := prefs.Save(sessionPath, app.Session()); err != nil {
			log.Printf("save session: %v", err)
		}
	}
	return nil
}
