package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/optimscale/internal/scenario"
)

// CSVName is the default file name of a chart's CSV export.
func CSVName(c *scenario.Chart) string {
	return strings.ReplaceAll(c.Title(), " ", "_") + "_Data.csv"
}

// WriteCSV writes the combined series of c to path.
func WriteCSV(path string, c *scenario.Chart) error {
	data, err := c.CSV()
	if err != nil {
		return fmt.Errorf("encoding csv: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // exports are meant to be shared
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
