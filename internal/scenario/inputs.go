package scenario

// InputRow is one column of the spend spreadsheet.
type InputRow struct {
	Period    string
	Value     float64
	GrowthPct float64
	Change    float64
	HasPrev   bool
}

// SpendInputs derives the spreadsheet rows from the live historical
// segment, so the table follows drags.
func SpendInputs(c *Chart) []InputRow {
	rows := make([]InputRow, len(c.historical))
	for i, p := range c.historical {
		rows[i] = InputRow{Period: p.Period, Value: p.Value}
		if i == 0 {
			continue
		}
		prev := c.historical[i-1].Value
		rows[i].HasPrev = true
		rows[i].Change = p.Value - prev
		if prev != 0 {
			rows[i].GrowthPct = (p.Value - prev) / prev * 100
		}
	}
	return rows
}
