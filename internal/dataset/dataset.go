// Package dataset loads the mock series the dashboard is seeded with.
package dataset

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/theirongolddev/optimscale/internal/model"

	"gopkg.in/yaml.v3"
)

// MarketingKey is the metric rendered as the draggable spend chart.
const MarketingKey = "marketing"

//go:embed datasets.yaml
var builtin []byte

// Dataset is every seed series plus the model-input tables.
type Dataset struct {
	Periods    []string   `yaml:"periods" validate:"required,min=1,unique"`
	Metrics    []Metric   `yaml:"metrics" validate:"required,min=1,dive"`
	Canvas     Canvas     `yaml:"canvas"`
	Strategies []Strategy `yaml:"strategies" validate:"dive"`
}

// Metric is one chart's configuration and its selectable seed variants.
type Metric struct {
	model.MetricSpec `yaml:",inline"`
	Variants         []Variant `yaml:"variants" validate:"required,min=1,dive"`
}

// Variant is one dropdown option of a metric.
type Variant struct {
	Name   string    `yaml:"name" validate:"required"`
	Values []float64 `yaml:"values" validate:"required"`
}

// Canvas is the business canvas table: one row per category, one value per column.
type Canvas struct {
	Columns []string    `yaml:"columns"`
	Rows    []CanvasRow `yaml:"rows" validate:"dive"`
}

type CanvasRow struct {
	Category string    `yaml:"category" validate:"required"`
	Values   []float64 `yaml:"values"`
}

// Strategy is a marketing strategy line with its last close and monthly plan.
type Strategy struct {
	Category  string    `yaml:"category" validate:"required"`
	LastClose float64   `yaml:"last_close"`
	Values    []float64 `yaml:"values"`
}

// Builtin returns the embedded dataset.
func Builtin() (*Dataset, error) {
	return Parse(builtin)
}

// Load reads a dataset file in the embedded format.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML dataset.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if err := model.Validate(&ds); err != nil {
		return nil, fmt.Errorf("validating dataset: %w", err)
	}

	seen := make(map[string]bool, len(ds.Metrics))
	for _, m := range ds.Metrics {
		if seen[m.Key] {
			return nil, fmt.Errorf("validating dataset: duplicate metric %q", m.Key)
		}
		seen[m.Key] = true
		for _, v := range m.Variants {
			if len(v.Values) != len(ds.Periods) {
				return nil, fmt.Errorf("validating dataset: %s/%s has %d values for %d periods",
					m.Key, v.Name, len(v.Values), len(ds.Periods))
			}
		}
	}
	for _, row := range ds.Canvas.Rows {
		if len(row.Values) != len(ds.Canvas.Columns) {
			return nil, fmt.Errorf("validating dataset: canvas row %q has %d values for %d columns",
				row.Category, len(row.Values), len(ds.Canvas.Columns))
		}
	}
	return &ds, nil
}

// Metric looks up a metric by key.
func (d *Dataset) Metric(key string) (*Metric, bool) {
	for i := range d.Metrics {
		if d.Metrics[i].Key == key {
			return &d.Metrics[i], true
		}
	}
	return nil, false
}

// Keys returns the metric keys in file order.
func (d *Dataset) Keys() []string {
	out := make([]string, len(d.Metrics))
	for i, m := range d.Metrics {
		out[i] = m.Key
	}
	return out
}

// Series returns the named variant of a metric as points labelled with
// the dataset periods.
func (d *Dataset) Series(key, variant string) ([]model.Point, error) {
	m, ok := d.Metric(key)
	if !ok {
		return nil, fmt.Errorf("unknown metric %q", key)
	}
	v, ok := m.Variant(variant)
	if !ok {
		return nil, fmt.Errorf("metric %q has no variant %q", key, variant)
	}
	pts := make([]model.Point, len(v.Values))
	for i, val := range v.Values {
		pts[i] = model.Point{Period: d.Periods[i], Value: val}
	}
	return pts, nil
}

// Variant looks up a variant by name.
func (m *Metric) Variant(name string) (Variant, bool) {
	for _, v := range m.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// VariantNames lists the variant names in file order. The first is the default.
func (m *Metric) VariantNames() []string {
	out := make([]string, len(m.Variants))
	for i, v := range m.Variants {
		out[i] = v.Name
	}
	return out
}
