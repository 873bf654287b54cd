package config

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

// Presets are applied over DefaultConfig.
var Presets = map[string]func(*Config){
	"default": func(*Config) {},
	"preview": func(c *Config) {
		c.FrameRate = 8
		c.Render.Width, c.Render.Height = 40, 16
	},
	"smooth": func(c *Config) {
		c.FrameRate = 30
		c.Easing = "smoothstep"
	},
	"cinematic": func(c *Config) {
		c.FrameRate = 60
		c.Easing = "sine"
		c.Render.Width, c.Render.Height = 100, 40
		c.Render.Theme = "ocean"
	},
}

func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
