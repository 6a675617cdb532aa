package config

import "slices"

var defaultConfig = Config{
	Layout: Layout{
		Type:          "horizontal",
		DefaultWidth:  0.5,
		DefaultHeight: 1.0,
		Widths:        []float64{0.33333333, 0.5, 0.66666667, 1.0},
		Heights:       []float64{0.33333333, 0.5, 0.66666667, 1.0},
		GapsInner:     0,
		GapsOuter:     0,
	},
	Outputs: []Output{},
	Animations: Animations{
		Enabled:     true,
		FrequencyMS: 16,
		Default: Curve{
			Enabled:    true,
			DurationMS: 300,
			Var:        &Bezier{Order: 3, Points: []float64{0.215, 0.61, 0.355, 1.0}},
		},
	},
	Gestures: Gestures{
		ScrollSensitivity:   1.0,
		TilingDragThreshold: 9,
	},
	Transactions: Transactions{
		TimeoutMS: 200,
	},
	Jump: Jump{
		Keys:       "1234",
		Color:      "#FFFFFFFF",
		Background: "#285577FF",
		Scale:      0.5,
	},
	Store: Memory{
		Path: "",
	},
}

// Default returns a copy of the configuration written on first start.
func Default() Config {
	cfg := defaultConfig
	cfg.Layout.Widths = slices.Clone(cfg.Layout.Widths)
	cfg.Layout.Heights = slices.Clone(cfg.Layout.Heights)
	cfg.Outputs = []Output{}
	return cfg
}

type Config struct {
	Layout       Layout       `json:"layout" yaml:"layout" toml:"layout"`
	Outputs      []Output     `json:"outputs" yaml:"outputs" toml:"outputs"`
	Animations   Animations   `json:"animations" yaml:"animations" toml:"animations"`
	Gestures     Gestures     `json:"gestures" yaml:"gestures" toml:"gestures"`
	Transactions Transactions `json:"transactions" yaml:"transactions" toml:"transactions"`
	Debug        Debug        `json:"debug" yaml:"debug" toml:"debug"`
	Jump         Jump         `json:"jump" yaml:"jump" toml:"jump"`
	Store        Memory       `json:"store" yaml:"store" toml:"store"`
}

type Layout struct {
	Type          string    `json:"type" yaml:"type" toml:"type"` // [horizontal, vertical]
	DefaultWidth  float64   `json:"default_width" yaml:"default_width" toml:"default_width"`
	DefaultHeight float64   `json:"default_height" yaml:"default_height" toml:"default_height"`
	Widths        []float64 `json:"widths" yaml:"widths" toml:"widths"`
	Heights       []float64 `json:"heights" yaml:"heights" toml:"heights"`
	GapsInner     float64   `json:"gaps_inner" yaml:"gaps_inner" toml:"gaps_inner"`
	GapsOuter     float64   `json:"gaps_outer" yaml:"gaps_outer" toml:"gaps_outer"`
}

type Output struct {
	Name          string    `json:"name" yaml:"name" toml:"name"`
	LayoutType    string    `json:"layout_type,omitempty" yaml:"layout_type,omitempty" toml:"layout_type,omitempty"`
	DefaultWidth  float64   `json:"default_width,omitempty" yaml:"default_width,omitempty" toml:"default_width,omitempty"`
	DefaultHeight float64   `json:"default_height,omitempty" yaml:"default_height,omitempty" toml:"default_height,omitempty"`
	Widths        []float64 `json:"widths,omitempty" yaml:"widths,omitempty" toml:"widths,omitempty"`
	Heights       []float64 `json:"heights,omitempty" yaml:"heights,omitempty" toml:"heights,omitempty"`
}

type Animations struct {
	Enabled     bool  `json:"enabled" yaml:"enabled" toml:"enabled"`
	FrequencyMS int   `json:"frequency_ms" yaml:"frequency_ms" toml:"frequency_ms"`
	Default     Curve `json:"default" yaml:"default" toml:"default"`
	// Unset curves fall back to the default curve.
	WindowOpen *Curve `json:"window_open,omitempty" yaml:"window_open,omitempty" toml:"window_open,omitempty"`
	WindowMove *Curve `json:"window_move,omitempty" yaml:"window_move,omitempty" toml:"window_move,omitempty"`
	WindowSize *Curve `json:"window_size,omitempty" yaml:"window_size,omitempty" toml:"window_size,omitempty"`
}

type Curve struct {
	Enabled    bool    `json:"enabled" yaml:"enabled" toml:"enabled"`
	DurationMS uint32  `json:"duration_ms" yaml:"duration_ms" toml:"duration_ms"`
	Var        *Bezier `json:"var,omitempty" yaml:"var,omitempty" toml:"var,omitempty"`
	Off        *Offset `json:"off,omitempty" yaml:"off,omitempty" toml:"off,omitempty"`
}

type Bezier struct {
	Order  int       `json:"order" yaml:"order" toml:"order"`
	Points []float64 `json:"points" yaml:"points" toml:"points"`
}

type Offset struct {
	Scale  float64   `json:"scale" yaml:"scale" toml:"scale"`
	Order  int       `json:"order" yaml:"order" toml:"order"`
	Points []float64 `json:"points" yaml:"points" toml:"points"`
}

type Gestures struct {
	ScrollSensitivity   float64 `json:"scroll_sensitivity" yaml:"scroll_sensitivity" toml:"scroll_sensitivity"`
	TilingDragThreshold float64 `json:"tiling_drag_threshold" yaml:"tiling_drag_threshold" toml:"tiling_drag_threshold"`
}

type Transactions struct {
	TimeoutMS int `json:"timeout_ms" yaml:"timeout_ms" toml:"timeout_ms"`
}

type Debug struct {
	NoAtomic   bool `json:"noatomic" yaml:"noatomic" toml:"noatomic"`
	TxnWait    bool `json:"txn_wait" yaml:"txn_wait" toml:"txn_wait"`
	TxnTimings bool `json:"txn_timings" yaml:"txn_timings" toml:"txn_timings"`
}

type Jump struct {
	Keys       string  `json:"keys" yaml:"keys" toml:"keys"`
	Color      string  `json:"color" yaml:"color" toml:"color"`
	Background string  `json:"background" yaml:"background" toml:"background"`
	Scale      float64 `json:"scale" yaml:"scale" toml:"scale"`
}

type Memory struct {
	// Path of the SQLite database remembering fractions; empty disables it.
	Path string `json:"path" yaml:"path" toml:"path"`
}
