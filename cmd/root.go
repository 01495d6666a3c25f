package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/optimscale/internal/config"
	"github.com/theirongolddev/optimscale/internal/dataset"
	"github.com/theirongolddev/optimscale/internal/logging"
	"github.com/theirongolddev/optimscale/internal/scenario"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "optimscale",
	Short: "Scenario planning for startup metrics",
	Long: "Explore burn, cash, runway and revenue trends, drag the latest value\n" +
		"of a metric and watch its linear or quadratic projection follow.",
	RunE:         runTUI,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file, \"-\" for stderr (default "+config.LogPath()+")")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error, disabled")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// env is the state every command starts from.
type env struct {
	cfg     config.Config
	cfgPath string
	log     zerolog.Logger
	closer  io.Closer
}

func (e *env) Close() {
	if e.closer != nil {
		_ = e.closer.Close()
	}
}

// loadEnv reads the config file and opens the logger, with command-line
// flags taking precedence over the file.
func loadEnv() (*env, error) {
	path := flagConfig
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}

	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("config", path).Msg("config loaded")
	return &env{cfg: cfg, cfgPath: path, log: log, closer: closer}, nil
}

// dashboard loads the configured dataset into a fresh dashboard.
func (e *env) dashboard() (*scenario.Dashboard, error) {
	ds, err := e.cfg.LoadDataset()
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	progress("  Loaded %d metrics over %d periods\n", len(ds.Metrics), len(ds.Periods))
	return scenario.NewDashboard(ds, e.log), nil
}

// chart returns the dashboard chart for metric, defaulting to the
// marketing spend chart.
func chart(d *scenario.Dashboard, args []string) (*scenario.Chart, error) {
	key := dataset.MarketingKey
	if len(args) > 0 {
		key = args[0]
	}
	c, err := d.Chart(key)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, d.Dataset().Keys())
	}
	return c, nil
}

func progress(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
