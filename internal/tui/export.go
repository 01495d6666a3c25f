package tui

import (
	"fmt"
	"path/filepath"

	"github.com/theirongolddev/optimscale/internal/export"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	pdfName     = export.PDFName
	archiveName = export.ArchiveName
)

// exportDoneMsg reports a finished background export.
type exportDoneMsg struct {
	kind string
	path string
	err  error
}

func (a App) exportPath(name string) string {
	dir := a.cfg.General.ExportDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}

// capture freezes the dashboard so background exports never read charts
// the update loop is mutating.
func (a App) capture() export.Snapshot {
	return export.Capture(a.dash, a.now())
}

// exportCSV writes the focused chart's combined series synchronously; it
// is a few hundred bytes.
func (a *App) exportCSV() {
	c := a.focusedChart()
	if c == nil {
		return
	}
	path := a.exportPath(export.CSVName(c))
	if err := export.WriteCSV(path, c); err != nil {
		a.log.Error().Err(err).Str("metric", c.Key()).Msg("csv export failed")
		a.setFlash(fmt.Sprintf("CSV export failed: %v", err), true)
		return
	}
	a.log.Info().Str("metric", c.Key()).Str("path", path).Msg("exported")
	a.setFlash("Saved "+path, false)
}

func exportPDFCmd(path string, snap export.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return exportDoneMsg{kind: "PDF", path: path, err: export.WritePDF(path, snap)}
	}
}

func exportSQLiteCmd(path string, snap export.Snapshot) tea.Cmd {
	return func() tea.Msg {
		_, err := export.WriteSQLite(path, snap)
		return exportDoneMsg{kind: "SQLite", path: path, err: err}
	}
}
