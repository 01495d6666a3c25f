package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/theirongolddev/optimscale/internal/export"

	"github.com/spf13/cobra"
)

var (
	flagFormat string
	flagOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export [metric]",
	Short: "Write a chart CSV, a PDF report or a SQLite snapshot",
	Long: "csv writes one metric (default: marketing spend). pdf and sqlite\n" +
		"capture every chart; sqlite appends to an archive across runs.",
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagFormat, "format", "f", "csv", "Output format: csv, sqlite or pdf")
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output path (default: export_dir from config)")
	exportCmd.Flags().StringVar(&flagVariant, "variant", "", "Series variant (default: the metric's first)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	dash, err := e.dashboard()
	if err != nil {
		return err
	}
	c, err := chart(dash, args)
	if err != nil {
		return err
	}
	if flagVariant != "" {
		if err := dash.SetVariant(c.Key(), flagVariant); err != nil {
			return fmt.Errorf("selecting variant: %w", err)
		}
	}

	out := func(name string) string {
		if flagOut != "" {
			return flagOut
		}
		return filepath.Join(e.cfg.General.ExportDir, name)
	}

	var path string
	switch flagFormat {
	case "csv":
		path = out(export.CSVName(c))
		err = export.WriteCSV(path, c)
	case "pdf":
		path = out(export.PDFName)
		progress("  Rendering %d charts...\n", len(dash.Charts()))
		err = export.WritePDF(path, export.Capture(dash, time.Now()))
	case "sqlite":
		path = out(export.ArchiveName)
		err = archive(path, export.Capture(dash, time.Now()))
	default:
		return fmt.Errorf("unknown format %q (want csv, sqlite or pdf)", flagFormat)
	}
	if err != nil {
		return fmt.Errorf("exporting %s: %w", flagFormat, err)
	}

	e.log.Info().Str("format", flagFormat).Str("path", path).Msg("exported")
	fmt.Printf("  Saved %s\n", path)
	return nil
}

// archive appends snap to the archive at path and reports its size.
func archive(path string, snap export.Snapshot) error {
	a, err := export.OpenArchive(path)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	id, err := a.Save(snap)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	n, err := a.SnapshotCount()
	if err != nil {
		return fmt.Errorf("counting snapshots: %w", err)
	}
	progress("  Snapshot #%d archived (%d total)\n", id, n)
	return nil
}
