package model

// Unit controls how a metric's values are displayed.
type Unit string

const (
	UnitCurrency Unit = "currency" // whole dollars
	UnitMillions Unit = "millions" // dollars in millions
	UnitRatio    Unit = "ratio"
	UnitPercent  Unit = "percent"
	UnitYears    Unit = "years"
	UnitCount    Unit = "count"
)

// MetricSpec is the per-series configuration passed alongside a series.
// Formatting and drag behavior come from here, never from the title.
type MetricSpec struct {
	Key             string  `yaml:"key" toml:"-" validate:"required"`
	Title           string  `yaml:"title" toml:"-" validate:"required"`
	Unit            Unit    `yaml:"unit" toml:"-" validate:"oneof=currency millions ratio percent years count"`
	Precision       int     `yaml:"precision" toml:"precision" validate:"gte=0,lte=8"`
	DragSensitivity float64 `yaml:"drag_sensitivity" toml:"drag_sensitivity" validate:"gt=0"`
	Degree          int     `yaml:"degree" toml:"degree" validate:"oneof=1 2"`
	Horizon         int     `yaml:"horizon" toml:"horizon" validate:"gte=0,lte=120"` // 0 = history + lookahead
	Lookahead       int     `yaml:"lookahead" toml:"lookahead" validate:"gte=0,lte=120"`
	History         int     `yaml:"history" toml:"history" validate:"gte=0"` // 0 = use every point in range
}
