// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package config

import "flag"

// Flags holds command line overrides. Only flags set on the command line override the
// loaded configuration.
type Flags struct {
	ConfigPath string
	EnvFile    string
	// WriteConfig, when set, names a file to receive the effective configuration.
	WriteConfig string

	debug     bool
	seed      int64
	provinces int
	sea       int
	forest    int
	mountains int
	passes    int
	width     float64
	height    float64
	title     string
	names     bool
	out       string
	svg       bool

	fs *flag.FlagSet
}

// NewFlags registers the tool's flags on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.StringVar(&f.EnvFile, "env", ".env", "Path to env file")
	fs.StringVar(&f.WriteConfig, "write-config", "", "Write the effective config to this path")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.Int64Var(&f.seed, "seed", 0, "Random seed")
	fs.IntVar(&f.provinces, "provinces", 0, "Number of provinces")
	fs.IntVar(&f.sea, "sea", 0, "Number of sea provinces")
	fs.IntVar(&f.forest, "forest", 0, "Number of forest provinces")
	fs.IntVar(&f.mountains, "mountains", 0, "Number of mountain provinces")
	fs.IntVar(&f.passes, "passes", 0, "Relaxation passes")
	fs.Float64Var(&f.width, "width", 0, "Map width in pixels")
	fs.Float64Var(&f.height, "height", 0, "Map height in pixels")
	fs.StringVar(&f.title, "title", "", "Map title, also the output file name")
	fs.BoolVar(&f.names, "names", false, "Name provinces")
	fs.StringVar(&f.out, "out", "", "Output directory")
	fs.BoolVar(&f.svg, "svg", false, "Also write an SVG preview")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			if f.debug {
				cfg.Logging.Level = "debug"
			}
		case "seed":
			cfg.Map.Seed = f.seed
		case "provinces":
			cfg.Map.Provinces = f.provinces
		case "sea":
			cfg.Map.SeaProvinces = f.sea
		case "forest":
			cfg.Map.ForestProvinces = f.forest
		case "mountains":
			cfg.Map.Mountains = f.mountains
		case "passes":
			cfg.Map.RelaxationPasses = f.passes
		case "width":
			cfg.Map.Width = f.width
		case "height":
			cfg.Map.Height = f.height
		case "title":
			cfg.Map.Title = f.title
		case "names":
			cfg.Map.NameProvinces = f.names
		case "out":
			cfg.Output.Dir = f.out
		case "svg":
			cfg.Output.SVG = f.svg
		}
	})
}
