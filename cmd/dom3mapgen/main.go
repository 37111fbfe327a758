// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Command dom3mapgen writes a random wrap-around map: a .map file and its .tga image.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/luisantonioa/dom3mapgen"
	"github.com/luisantonioa/dom3mapgen/internal/config"
	"github.com/luisantonioa/dom3mapgen/internal/logger"
)

func main() {
	flags := config.NewFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if flags.WriteConfig != "" {
		if err := cfg.SaveTo(flags.WriteConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	if err := run(cfg, log); err != nil {
		log.Error("generation failed", zap.Error(err))
		logger.Sync(log)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	start := time.Now()
	m, err := dom3mapgen.Generate(cfg.Map, dom3mapgen.WithLogger(log))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return err
	}
	path, err := m.Save(cfg.Output.Dir)
	if err != nil {
		return err
	}
	log.Info("map written", zap.String("path", path), zap.Duration("elapsed", time.Since(start)))

	if cfg.Output.SVG {
		svgPath := filepath.Join(cfg.Output.Dir, m.Filename()+".svg")
		f, err := os.Create(svgPath)
		if err != nil {
			return err
		}
		if err := m.WriteSVG(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Info("preview written", zap.String("path", svgPath))
	}
	return nil
}
