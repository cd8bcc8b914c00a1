// Package config loads orb hardware configuration from YAML and carries
// the built-in presets for the shipped orb kits.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SPI selects the SPI transport for the hardware driver.
type SPI struct {
	Port string `yaml:"port"` // spireg name; empty picks the first port
}

// Config is the full runtime configuration. Zero-valued fields fall back
// to the preset, then to hard defaults.
type Config struct {
	Preset     string  `yaml:"preset,omitempty"` // "pico" | "mini"
	RingCounts []int   `yaml:"ring_counts,omitempty"`
	Pin        int     `yaml:"pin,omitempty"`
	StatusLEDs int     `yaml:"status_leds,omitempty"`
	Brightness float64 `yaml:"brightness,omitempty"`
	FPS        int     `yaml:"fps,omitempty"`
	Driver     string  `yaml:"driver,omitempty"` // "sim" | "spi"
	SPI        SPI     `yaml:"spi,omitempty"`
}

// Preset is one shipped hardware profile.
type Preset struct {
	RingCounts []int
	Pin        int
	StatusLEDs int
	Brightness float64
}

// presets mirrors the shipped orb kits: the Pico orb and the smaller mini.
var presets = map[string]Preset{
	"pico": {RingCounts: []int{24, 12, 6, 1}, Pin: 16, StatusLEDs: 0, Brightness: 20},
	"mini": {RingCounts: []int{12, 6, 1}, Pin: 19, StatusLEDs: 0, Brightness: 40},
}

// Presets returns the known preset names.
func Presets() []string {
	out := make([]string, 0, len(presets))
	for name := range presets {
		out = append(out, name)
	}
	return out
}

// Lookup returns the named preset.
func Lookup(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q (have %v)", name, Presets())
	}
	return p, nil
}

// Load reads YAML from path and resolves it against its preset.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	if err := c.Resolve(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes the configuration as YAML.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Resolve fills unset fields from the named preset (when given) and hard
// defaults. Explicit values always win over preset values.
func (c *Config) Resolve() error {
	if c.Preset != "" {
		p, err := Lookup(c.Preset)
		if err != nil {
			return err
		}
		if c.RingCounts == nil {
			c.RingCounts = append([]int{}, p.RingCounts...)
		}
		if c.Pin == 0 {
			c.Pin = p.Pin
		}
		if c.StatusLEDs == 0 {
			c.StatusLEDs = p.StatusLEDs
		}
		if c.Brightness == 0 {
			c.Brightness = p.Brightness
		}
	}
	if c.RingCounts == nil {
		return fmt.Errorf("ring_counts must be set directly or via a preset")
	}
	if c.Pin == 0 {
		c.Pin = 16
	}
	if c.Brightness == 0 {
		c.Brightness = 20
	}
	if c.FPS == 0 {
		c.FPS = 30
	}
	if c.Driver == "" {
		c.Driver = "sim"
	}
	return nil
}
