// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package config loads the command line tool's settings.
package config

import (
	"github.com/luisantonioa/dom3mapgen"
	"github.com/luisantonioa/dom3mapgen/internal/logger"
)

// Config holds all tool settings.
type Config struct {
	Map     dom3mapgen.Config `yaml:"map"`
	Output  OutputConfig      `yaml:"output"`
	Logging logger.Config     `yaml:"logging"`
}

// OutputConfig holds where and what to write.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	// SVG also writes a vector preview next to the map image.
	SVG bool `yaml:"svg"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Map: dom3mapgen.DefaultConfig(),
		Output: OutputConfig{
			Dir: ".",
		},
		Logging: logger.Config{
			Level:   "info",
			Console: true,
		},
	}
}
