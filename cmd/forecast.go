package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/optimscale/internal/calendar"
	"github.com/theirongolddev/optimscale/internal/cli"
	"github.com/theirongolddev/optimscale/internal/forecast"
	"github.com/theirongolddev/optimscale/internal/model"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagVariant   string
	flagDegree    int
	flagCount     int
	flagPrecision int
)

var forecastCmd = &cobra.Command{
	Use:   "forecast [metric]",
	Short: "Fit a metric's history and print the projection",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().StringVar(&flagVariant, "variant", "", "Series variant (default: the metric's first)")
	forecastCmd.Flags().IntVar(&flagDegree, "degree", 0, "Fit degree, 1 linear or 2 quadratic (default: the metric's)")
	forecastCmd.Flags().IntVar(&flagCount, "count", -1, "Points to project (default: fill the metric's horizon)")
	forecastCmd.Flags().IntVar(&flagPrecision, "precision", -1, "Decimal places (default: the metric's)")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, args []string) error {
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

	spec := c.Spec()
	degree := forecast.Degree(spec.Degree)
	if flagDegree != 0 {
		degree = forecast.Degree(flagDegree)
	}
	count := len(c.Predicted())
	if flagCount >= 0 {
		count = flagCount
	}
	precision := spec.Precision
	if flagPrecision >= 0 {
		precision = flagPrecision
	}

	hist := c.Historical()
	m, pred, err := forecast.Forecast(hist, degree, count, forecast.Precision(precision), calendar.Monthly{})
	if err != nil {
		return fmt.Errorf("forecasting %s: %w", spec.Key, err)
	}
	e.log.Debug().Str("metric", spec.Key).Stringer("degree", degree).Int("count", count).Msg("forecast")

	withChange := true
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w < 60 {
			withChange = false
		}
	}

	headers := []string{"Period", spec.Title, "Kind"}
	if withChange {
		headers = append(headers, "Change")
	}
	var rows [][]string
	prev := 0.0
	for i, p := range append(model.Clone(hist), pred...) {
		kind := "history"
		if i >= len(hist) {
			kind = "projected"
		}
		if i == len(hist) && i > 0 {
			rows = append(rows, cli.SeparatorRow)
		}
		row := []string{p.Period, cli.FormatValue(p.Value, spec.Unit, precision), kind}
		if withChange {
			change := "—"
			if i > 0 {
				change = cli.FormatDelta(p.Value, prev, spec.Unit, precision)
			}
			row = append(row, change)
		}
		rows = append(rows, row)
		prev = p.Value
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s fit", spec.Title, degree)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: headers,
		Rows:    rows,
		Footer:  fmt.Sprintf("variant %s", dash.Variant(c.Key())),
	}))
	fmt.Println()
	fmt.Print(cli.RenderKeyValues([][2]string{
		{"Model", m.String()},
		{"R²", fmt.Sprintf("%.3f", forecast.RSquared(m, hist))},
		{"Trend", cli.RenderSparkline(append(model.Values(hist), model.Values(pred)...), len(hist))},
	}))
	fmt.Println()
	return nil
}
