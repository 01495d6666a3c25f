package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/optimscale/internal/config"
	"github.com/theirongolddev/optimscale/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	// Load existing config or defaults
	cfg := e.cfg
	vals := tui.NewSetupValues(cfg)
	if err := tui.NewSetupForm(vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	vals.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.SaveTo(e.cfgPath, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	e.log.Info().Str("path", e.cfgPath).Msg("config saved")

	fmt.Println()
	fmt.Printf("  Saved to %s\n", e.cfgPath)
	fmt.Println("  Run `optimscale setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
