package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/qcviz/internal/bloch"
	"github.com/san-kum/qcviz/internal/ease"
	"github.com/san-kum/qcviz/internal/entangle"
	"github.com/san-kum/qcviz/internal/timeline"
)

const (
	DefaultOutputDir = "output"
	DefaultWidth     = 60
	DefaultHeight    = 24
	DefaultTheme     = "quantum"

	// DefaultHighlight is the score above which the entanglement view draws
	// the second vector in red.
	DefaultHighlight = 0.3
	// DefaultLabel is the score above which the entanglement value is printed.
	DefaultLabel = 0.1
)

type Config struct {
	FrameRate    int                `yaml:"frame_rate" validate:"gte=1,lte=240"`
	Easing       string             `yaml:"easing" validate:"omitempty,oneof=linear smoothstep sine"`
	Qubit        int                `yaml:"qubit" validate:"gte=0"`
	Pair         [2]int             `yaml:"pair" validate:"dive,gte=0"`
	// Palette entries share the 256-colour GIF palette with the theme.
	Palette      []string           `yaml:"palette" validate:"min=1,max=250,dive,required"`
	OutputDir    string             `yaml:"output_dir" validate:"required"`
	Entanglement EntanglementConfig `yaml:"entanglement"`
	Geometry     GeometryConfig     `yaml:"geometry"`
	Render       RenderConfig       `yaml:"render"`
}

type EntanglementConfig struct {
	Saturation float64 `yaml:"saturation" validate:"gt=0,lte=1"`
	Penalty    float64 `yaml:"penalty" validate:"gte=0"`
	Highlight  float64 `yaml:"highlight" validate:"gte=0,lte=1"`
	Label      float64 `yaml:"label" validate:"gte=0,lte=1"`
}

type GeometryConfig struct {
	AngleThreshold float64 `yaml:"angle_threshold" validate:"gt=0,lt=1"`
}

type RenderConfig struct {
	Width  int    `yaml:"width" validate:"gte=16,lte=400"`
	Height int    `yaml:"height" validate:"gte=8,lte=200"`
	Theme  string `yaml:"theme" validate:"required"`
}

func DefaultConfig() *Config {
	return &Config{
		FrameRate: timeline.DefaultFrameRate,
		Easing:    "linear",
		Qubit:     0,
		Pair:      [2]int{0, 1},
		Palette:   append([]string(nil), timeline.DefaultPalette...),
		OutputDir: DefaultOutputDir,
		Entanglement: EntanglementConfig{
			Saturation: entangle.DefaultSaturationThreshold,
			Penalty:    entangle.DefaultPenaltyWeight,
			Highlight:  DefaultHighlight,
			Label:      DefaultLabel,
		},
		Geometry: GeometryConfig{AngleThreshold: bloch.DefaultAngleThreshold},
		Render: RenderConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Theme:  DefaultTheme,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Timeline returns the assembler settings.
func (c *Config) Timeline() (timeline.Config, error) {
	f, err := ease.ByName(c.Easing)
	if err != nil {
		return timeline.Config{}, err
	}
	return timeline.Config{
		FrameRate: c.FrameRate,
		Palette:   c.Palette,
		Easing:    f,
	}, nil
}

func (c *Config) EntanglementParams() entangle.Params {
	p := entangle.DefaultParams()
	p.SaturationThreshold = c.Entanglement.Saturation
	p.PenaltyWeight = c.Entanglement.Penalty
	return p
}

func (c *Config) Interpolator() bloch.Interpolator {
	return bloch.NewInterpolator(c.Geometry.AngleThreshold)
}

// Projector returns the combined projector for a circuit of qubits qubits
// using the configured qubit, pair and heuristic settings.
func (c *Config) Projector(qubits int) timeline.Combined {
	p := timeline.NewCombined(c.Qubit, qubits)
	p.Sphere.Interp = c.Interpolator()
	p.Pair.Q0, p.Pair.Q1 = c.Pair[0], c.Pair[1]
	p.Pair.Params = c.EntanglementParams()
	p.Pair.Interp = c.Interpolator()
	return p
}
