package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

func TestDrivers(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.yml", "config.json", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			filePath := filepath.Join(t.TempDir(), name)
			driver, err := NewDriver(filePath)
			if err != nil {
				t.Fatal(err)
			}

			store, err := NewStore(driver)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := os.Stat(filePath); err != nil {
				t.Fatalf("default config not written: %v", err)
			}

			cfg, err := store.GetConfig()
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Layout.Type != "horizontal" || cfg.Jump.Keys != "1234" || len(cfg.Layout.Widths) != 4 {
				t.Fatalf("read back %+v", cfg)
			}

			err = store.UpdateConfig(func(cfg Config) (Config, error) {
				cfg.Layout.Type = "vertical"
				cfg.Outputs = append(cfg.Outputs, Output{Name: "HDMI-1", DefaultWidth: 0.75})
				cfg.Animations.WindowOpen = &Curve{Enabled: true, DurationMS: 100}
				return cfg, nil
			})
			if err != nil {
				t.Fatal(err)
			}

			cfg, err = store.GetConfig()
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Layout.Type != "vertical" {
				t.Fatalf("layout type %q", cfg.Layout.Type)
			}
			if len(cfg.Outputs) != 1 || cfg.Outputs[0].DefaultWidth != 0.75 {
				t.Fatalf("outputs %+v", cfg.Outputs)
			}
			if cfg.Animations.WindowOpen == nil || cfg.Animations.WindowOpen.DurationMS != 100 {
				t.Fatalf("window_open %+v", cfg.Animations.WindowOpen)
			}
			if _, err := os.Stat(filePath + ".tmp"); !os.IsNotExist(err) {
				t.Fatal("temporary file left behind")
			}
		})
	}
}

func TestNewDriverUnknownFormat(t *testing.T) {
	if _, err := NewDriver("config.ini"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("got %v", err)
	}
}

func TestUpdateConfigError(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "config.yaml")
	store, err := NewStore(NewYAML(filePath))
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	err = store.UpdateConfig(func(cfg Config) (Config, error) {
		cfg.Jump.Keys = "asdf"
		return cfg, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
	cfg, err := store.GetConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Jump.Keys != "1234" {
		t.Fatal("failed update was written")
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(filePath, []byte("layout:\n  default_width: 0.6\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewYAML(filePath).Read()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout.DefaultWidth != 0.6 {
		t.Fatalf("default width %v", cfg.Layout.DefaultWidth)
	}
	if cfg.Jump.Keys != "1234" || cfg.Transactions.TimeoutMS != 200 {
		t.Fatal("missing keys were not defaulted")
	}
}

func TestSettings(t *testing.T) {
	cfg := Default()
	cfg.Outputs = []Output{{Name: "DP-1", LayoutType: "vertical", Widths: []float64{0.5, 1}}}
	cfg.Jump.Scale = 4
	cfg.Jump.Color = "#ff0000"
	cfg.Debug.NoAtomic = true
	cfg.Transactions.TimeoutMS = 50
	cfg.Animations.WindowMove = &Curve{Enabled: true, DurationMS: 100, Var: &Bezier{Order: 3, Points: []float64{1}}}

	s, err := cfg.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if s.Tree.LayoutType != tree.LayoutHoriz || s.Tree.DefaultWidth != 0.5 {
		t.Errorf("tree defaults %+v", s.Tree)
	}
	if o := s.Tree.Outputs["DP-1"]; o.LayoutType != tree.LayoutVert || len(o.Widths) != 2 {
		t.Errorf("output options %+v", o)
	}
	if s.Jump.Scale != 1 || s.Jump.Color != 0xFF0000FF || s.Jump.Keys != "1234" {
		t.Errorf("jump options %+v", s.Jump)
	}
	if !s.Txn.NoAtomic || s.Txn.Timeout != 50*time.Millisecond {
		t.Errorf("txn options %+v", s.Txn)
	}
	if s.Anim.Default == nil || s.Anim.Frequency != 16*time.Millisecond {
		t.Errorf("animation config %+v", s.Anim)
	}
	if s.Anim.WindowMove != nil {
		t.Error("mismatched curve was kept")
	}
}

func TestSettingsErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *Config)
	}{
		{"layout type", func(cfg *Config) { cfg.Layout.Type = "diagonal" }},
		{"output layout type", func(cfg *Config) { cfg.Outputs = []Output{{Name: "x", LayoutType: "diagonal"}} }},
		{"jump color", func(cfg *Config) { cfg.Jump.Color = "red" }},
		{"jump background", func(cfg *Config) { cfg.Jump.Background = "#12" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if _, err := cfg.Settings(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
