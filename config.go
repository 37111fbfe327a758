// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package dom3mapgen

import (
	"errors"
	"fmt"
	"math"

	"github.com/luisantonioa/dom3mapgen/border"
	"github.com/luisantonioa/dom3mapgen/mapfile"
	"github.com/luisantonioa/dom3mapgen/sampler"
	"github.com/luisantonioa/dom3mapgen/terrain"
)

// Config holds every input of one generation run. A run is fully determined by its
// Config.
type Config struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	Provinces        int `yaml:"provinces"`
	SeaProvinces     int `yaml:"sea_provinces"`
	ForestProvinces  int `yaml:"forest_provinces"`
	Mountains        int `yaml:"mountains"`
	RelaxationPasses int `yaml:"relaxation_passes"`

	Seed int64 `yaml:"seed"`

	Title             string `yaml:"title"`
	Description       string `yaml:"description"`
	// Wraparound must be true: provinces are always built on the torus.
	Wraparound        bool   `yaml:"wraparound"`
	NameProvinces     bool   `yaml:"name_provinces"`
	ShowProvinceCount bool   `yaml:"show_province_count"`

	Separation         float64 `yaml:"separation"`
	Margin             float64 `yaml:"margin"`
	AdaptiveSeparation bool    `yaml:"adaptive_separation"`
	MinSeparation      float64 `yaml:"min_separation"`

	MinJaggedLength   float64 `yaml:"min_jagged_length"`
	NoisyTradeoff     float64 `yaml:"noisy_tradeoff"`
	TeleportThreshold int     `yaml:"teleport_threshold"`
	NoStartThreshold  int     `yaml:"nostart_threshold"`
}

func DefaultConfig() Config {
	return Config{
		Width:             1024,
		Height:            1024,
		Provinces:         150,
		SeaProvinces:      15,
		ForestProvinces:   15,
		RelaxationPasses:  2,
		Title:             "Random Map",
		Description:       "A randomly generated wrap-around map.",
		Wraparound:        true,
		Separation:        sampler.DefaultSeparation,
		Margin:            sampler.DefaultMargin,
		MinSeparation:     sampler.DefaultSeparation / 2,
		MinJaggedLength:   border.DefaultMinLength,
		NoisyTradeoff:     border.DefaultTradeoff,
		TeleportThreshold: terrain.DefaultTeleportThreshold,
		NoStartThreshold:  mapfile.DefaultNoStartThreshold,
	}
}

// Validate reports every problem with c.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(finitePositive(c.Width) && finitePositive(c.Height),
		"map size must be positive, got %vx%v", c.Width, c.Height)
	check(c.Wraparound, "flat maps are not supported, wraparound must be set")
	check(c.Width <= 0xffff && c.Height <= 0xffff,
		"map size %vx%v exceeds the image format limit", c.Width, c.Height)
	check(c.Provinces >= 3, "at least 3 provinces required, got %d", c.Provinces)
	check(c.SeaProvinces >= 0, "sea provinces must not be negative, got %d", c.SeaProvinces)
	check(c.ForestProvinces >= 0, "forest provinces must not be negative, got %d", c.ForestProvinces)
	check(c.Mountains >= 0, "mountains must not be negative, got %d", c.Mountains)
	check(c.SeaProvinces+c.ForestProvinces+c.Mountains <= c.Provinces,
		"sea, forest and mountain provinces (%d) exceed province count %d",
		c.SeaProvinces+c.ForestProvinces+c.Mountains, c.Provinces)
	check(c.RelaxationPasses >= 0, "relaxation passes must not be negative, got %d", c.RelaxationPasses)
	check(finitePositive(c.Separation), "separation must be positive, got %v", c.Separation)
	check(c.Margin >= 0, "margin must not be negative, got %v", c.Margin)
	check(!c.AdaptiveSeparation || (c.MinSeparation > 0 && c.MinSeparation <= c.Separation),
		"min separation must be in (0, %v], got %v", c.Separation, c.MinSeparation)
	check(finitePositive(c.MinJaggedLength), "minimum jagged length must be positive, got %v", c.MinJaggedLength)
	check(c.NoisyTradeoff > 0 && c.NoisyTradeoff < 1, "noisy tradeoff must be in (0, 1), got %v", c.NoisyTradeoff)
	check(c.TeleportThreshold >= 0, "teleport threshold must not be negative, got %d", c.TeleportThreshold)
	check(c.NoStartThreshold >= 0, "nostart threshold must not be negative, got %d", c.NoStartThreshold)

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("dom3mapgen: invalid config: %w", err)
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
