package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/theirongolddev/optimscale/internal/dataset"
	"github.com/theirongolddev/optimscale/internal/model"
)

// MetricOverride replaces individual fields of a metric's dataset spec.
// Nil fields keep the dataset value.
type MetricOverride struct {
	Precision       *int     `toml:"precision,omitempty" validate:"omitempty,gte=0,lte=8"`
	DragSensitivity *float64 `toml:"drag_sensitivity,omitempty" validate:"omitempty,gt=0"`
	Degree          *int     `toml:"degree,omitempty" validate:"omitempty,oneof=1 2"`
	Horizon         *int     `toml:"horizon,omitempty" validate:"omitempty,gte=0,lte=120"`
	Lookahead       *int     `toml:"lookahead,omitempty" validate:"omitempty,gte=0,lte=120"`
}

// Resolve layers the general settings and the override for spec.Key over spec.
func (c Config) Resolve(spec model.MetricSpec) model.MetricSpec {
	spec.Degree = c.General.Degree
	if spec.Key == dataset.MarketingKey {
		spec.Horizon = c.General.Horizon
		spec.History = c.General.MarketingHistory
	}

	o, ok := c.Metrics[spec.Key]
	if !ok {
		return spec
	}
	if o.Precision != nil {
		spec.Precision = *o.Precision
	}
	if o.DragSensitivity != nil {
		spec.DragSensitivity = *o.DragSensitivity
	}
	if o.Degree != nil {
		spec.Degree = *o.Degree
	}
	if o.Horizon != nil {
		spec.Horizon = *o.Horizon
	}
	if o.Lookahead != nil {
		spec.Lookahead = *o.Lookahead
	}
	return spec
}

// Apply resolves every metric of ds in place. Overrides naming a metric
// that ds does not have are rejected.
func (c Config) Apply(ds *dataset.Dataset) error {
	keys := make([]string, 0, len(c.Metrics))
	for k := range c.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := ds.Metric(k); !ok {
			return fmt.Errorf("config [metrics.%s]: unknown metric", k)
		}
	}

	for i := range ds.Metrics {
		spec := c.Resolve(ds.Metrics[i].MetricSpec)
		if err := model.Validate(&spec); err != nil {
			return fmt.Errorf("config [metrics.%s]: %w", spec.Key, err)
		}
		ds.Metrics[i].MetricSpec = spec
	}
	return nil
}

// LoadDataset returns the configured dataset file, or the embedded one
// when none is set, with the config applied.
func (c Config) LoadDataset() (*dataset.Dataset, error) {
	var (
		ds  *dataset.Dataset
		err error
	)
	if c.General.Dataset != "" {
		ds, err = dataset.Load(os.ExpandEnv(c.General.Dataset))
	} else {
		ds, err = dataset.Builtin()
	}
	if err != nil {
		return nil, err
	}
	if err := c.Apply(ds); err != nil {
		return nil, err
	}
	return ds, nil
}
