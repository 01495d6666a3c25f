package scenario

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSV renders the combined series as "Period,<title>" rows.
func (c *Chart) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Period", c.spec.Title}); err != nil {
		return nil, err
	}
	for _, p := range c.Combined() {
		if err := w.Write([]string{p.Period, strconv.FormatFloat(p.Value, 'f', -1, 64)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
