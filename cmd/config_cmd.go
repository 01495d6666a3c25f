// Package cmd implements the optimscale CLI commands.
package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/theirongolddev/optimscale/internal/cli"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()
	cfg := e.cfg

	fmt.Printf("  Config file: %s\n", e.cfgPath)
	if _, err := os.Stat(e.cfgPath); err == nil {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	dataset := cfg.General.Dataset
	if dataset == "" {
		dataset = "built-in"
	}
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = "default"
	}

	fmt.Println("  [General]")
	fmt.Print(cli.RenderKeyValues([][2]string{
		{"Fit degree", strconv.Itoa(cfg.General.Degree)},
		{"Spend horizon", strconv.Itoa(cfg.General.Horizon)},
		{"Spend history", strconv.Itoa(cfg.General.MarketingHistory)},
		{"Dataset", dataset},
		{"Export dir", cfg.General.ExportDir},
	}))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Print(cli.RenderKeyValues([][2]string{
		{"Theme", cfg.Appearance.Theme},
		{"Layout", cfg.Appearance.Layout},
	}))
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Print(cli.RenderKeyValues([][2]string{
		{"Level", cfg.Log.Level},
		{"Format", cfg.Log.Format},
		{"File", logFile},
	}))
	fmt.Println()

	if len(cfg.Metrics) > 0 {
		keys := make([]string, 0, len(cfg.Metrics))
		for k := range cfg.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Println("  [Metrics]")
		for _, k := range keys {
			o := cfg.Metrics[k]
			var pairs [][2]string
			if o.Precision != nil {
				pairs = append(pairs, [2]string{k + ".precision", strconv.Itoa(*o.Precision)})
			}
			if o.DragSensitivity != nil {
				pairs = append(pairs, [2]string{k + ".drag_sensitivity", strconv.FormatFloat(*o.DragSensitivity, 'f', -1, 64)})
			}
			if o.Degree != nil {
				pairs = append(pairs, [2]string{k + ".degree", strconv.Itoa(*o.Degree)})
			}
			if o.Horizon != nil {
				pairs = append(pairs, [2]string{k + ".horizon", strconv.Itoa(*o.Horizon)})
			}
			if o.Lookahead != nil {
				pairs = append(pairs, [2]string{k + ".lookahead", strconv.Itoa(*o.Lookahead)})
			}
			fmt.Print(cli.RenderKeyValues(pairs))
		}
		fmt.Println()
	}

	fmt.Println("  Run `optimscale setup` to reconfigure.")
	return nil
}
