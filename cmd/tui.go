package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/optimscale/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	dash, err := e.dashboard()
	if err != nil {
		return err
	}

	_, statErr := os.Stat(e.cfgPath)
	firstRun := os.IsNotExist(statErr)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(dash, tui.Options{
		Config:     e.cfg,
		ConfigPath: e.cfgPath,
		Logger:     e.log,
		FirstRun:   firstRun,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	e.log.Info().Bool("first_run", firstRun).Msg("dashboard started")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
