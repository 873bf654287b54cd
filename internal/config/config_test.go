package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/qcviz/internal/ease"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FrameRate != 20 {
		t.Errorf("expected frame rate 20, got %d", cfg.FrameRate)
	}
	if cfg.Pair != [2]int{0, 1} {
		t.Errorf("expected pair (0, 1), got %v", cfg.Pair)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		cfg, err := GetPreset(name)
		if err != nil {
			t.Fatalf("preset %s: %v", name, err)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
		if _, err := cfg.Timeline(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	_, err := GetPreset("nonexistent")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	got := strings.Join(ListPresets(), ",")
	if got != "cinematic,default,preview,smooth" {
		t.Errorf("unexpected presets %s", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }, "frame_rate"},
		{"unknown easing", func(c *Config) { c.Easing = "bounce" }, "easing"},
		{"empty palette", func(c *Config) { c.Palette = nil }, "palette"},
		{"oversized palette", func(c *Config) { c.Palette = make([]string, 251) }, "palette: must have at most 250"},
		{"blank colour", func(c *Config) { c.Palette = []string{"green", ""} }, "palette[1]"},
		{"saturation above one", func(c *Config) { c.Entanglement.Saturation = 1.5 }, "entanglement.saturation"},
		{"zero threshold", func(c *Config) { c.Geometry.AngleThreshold = 0 }, "geometry.angle_threshold"},
		{"tiny canvas", func(c *Config) { c.Render.Width = 2 }, "render.width"},
		{"same pair", func(c *Config) { c.Pair = [2]int{1, 1} }, "pair"},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tt.name, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.field) {
			t.Errorf("%s: expected %q in %q", tt.name, tt.field, err.Error())
		}
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qcviz.yaml")

	cfg := DefaultConfig()
	cfg.FrameRate = 12
	cfg.Easing = "sine"
	cfg.Palette = []string{"red", "#00ff00"}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.FrameRate != 12 || got.Easing != "sine" || len(got.Palette) != 2 {
		t.Errorf("round trip lost fields: %+v", got)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "frame_rate: 5\nentanglement:\n  penalty: 0.25\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FrameRate != 5 {
		t.Errorf("expected frame rate 5, got %d", cfg.FrameRate)
	}
	if cfg.Entanglement.Penalty != 0.25 || cfg.Entanglement.Saturation != 0.9 {
		t.Errorf("expected penalty override over defaults, got %+v", cfg.Entanglement)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("frame_rate: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestConversions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Easing = "smoothstep"
	cfg.Entanglement.Penalty = 0.2
	cfg.Geometry.AngleThreshold = 1e-3

	tl, err := cfg.Timeline()
	if err != nil {
		t.Fatal(err)
	}
	if tl.Easing(0.5) != ease.SmoothStep(0.5) || tl.Easing(0.25) != ease.SmoothStep(0.25) {
		t.Error("expected smoothstep easing")
	}

	p := cfg.Projector(2)
	if p.Pair.Params.PenaltyWeight != 0.2 {
		t.Errorf("expected penalty 0.2, got %f", p.Pair.Params.PenaltyWeight)
	}
	if p.Sphere.Interp.Threshold != 1e-3 || !p.WithPair {
		t.Errorf("unexpected projector %+v", p)
	}
}
