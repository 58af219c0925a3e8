// Package config handles scenetool configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/simplescene/pkg/formats"
)

// Config holds all tool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	OBJ     OBJConfig     `yaml:"obj"`
	Report  ReportConfig  `yaml:"report"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// OBJConfig holds the coordinate conversion applied to OBJ vertices.
type OBJConfig struct {
	Scale float32  `yaml:"scale"`
	Axes  []string `yaml:"axes"` // Source axis for output x, y, z
}

// ReportConfig holds report rendering settings.
type ReportConfig struct {
	Title string `yaml:"title"`
	HTML  bool   `yaml:"html"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		OBJ: OBJConfig{
			Scale: formats.BlenderAxisMap.Scale,
			Axes:  []string{"x", "z", "y"},
		},
		Report: ReportConfig{
			Title: "Scene report",
			HTML:  false,
		},
	}
}

// AxisMap converts the OBJ section into a parser policy.
func (c OBJConfig) AxisMap() (formats.AxisMap, error) {
	if len(c.Axes) != 3 {
		return formats.AxisMap{}, fmt.Errorf("obj.axes: expected 3 entries, got %d", len(c.Axes))
	}
	m := formats.AxisMap{Scale: c.Scale}
	seen := make(map[formats.Axis]bool)
	for i, s := range c.Axes {
		a, err := formats.ParseAxis(s)
		if err != nil {
			return formats.AxisMap{}, fmt.Errorf("obj.axes[%d]: %w", i, err)
		}
		if seen[a] {
			return formats.AxisMap{}, fmt.Errorf("obj.axes: axis %s used twice", a)
		}
		seen[a] = true
		m.Order[i] = a
	}
	return m, nil
}
