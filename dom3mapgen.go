// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package dom3mapgen generates wrap-around province maps: seeded sites, a relaxed
// Voronoi tessellation of the torus, a province graph with jagged borders, and terrain.
package dom3mapgen

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/golang/geo/r2"
	"github.com/luisantonioa/dom3mapgen/border"
	"github.com/luisantonioa/dom3mapgen/mapfile"
	"github.com/luisantonioa/dom3mapgen/names"
	"github.com/luisantonioa/dom3mapgen/province"
	"github.com/luisantonioa/dom3mapgen/render"
	"github.com/luisantonioa/dom3mapgen/sampler"
	"github.com/luisantonioa/dom3mapgen/terrain"
	"github.com/luisantonioa/dom3mapgen/torus"
	"github.com/luisantonioa/dom3mapgen/voronoi"
	"go.uber.org/zap"
)

// Map is the result of one run.
type Map struct {
	Config Config
	Bounds torus.Bounds
	// Points holds the province sites in province order; Points[i] is province i+1.
	Points  []r2.Point
	Diagram *voronoi.Diagram
	Graph   *province.Graph
	Borders *border.Cache
	Terrain terrain.Map
	// Elevation is indexed by id-1.
	Elevation []float64
	Names     map[int]string
}

// Generate runs the whole pipeline with one random source seeded from cfg.Seed.
func Generate(cfg Config, setters ...Option) (*Map, error) {
	opts := Options{
		Logger: zap.NewNop(),
		Eps:    defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := opts.Logger.With(zap.Int64("seed", cfg.Seed))
	b, err := torus.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	//nolint:gosec // Deterministic generation needs a seeded source.
	rng := rand.New(rand.NewSource(cfg.Seed))

	s := sampler.New(cfg.Provinces, b)
	s.Separation = cfg.Separation
	s.Margin = cfg.Margin
	s.Adaptive = cfg.AdaptiveSeparation
	s.MinSeparation = cfg.MinSeparation
	points, err := s.Sample(rng)
	if err != nil {
		return nil, fmt.Errorf("dom3mapgen: sample points: %w", err)
	}
	log.Info("points sampled", zap.Int("points", len(points)), zap.Float64("separation", s.Separation))

	d, g, err := tessellate(points, b, opts.Eps)
	if err != nil {
		return nil, err
	}
	for pass := 0; pass < cfg.RelaxationPasses; pass++ {
		points = province.Relax(g)
		if d, g, err = tessellate(points, b, opts.Eps); err != nil {
			return nil, fmt.Errorf("dom3mapgen: relaxation pass %d: %w", pass+1, err)
		}
		log.Info("relaxation pass", zap.Int("pass", pass+1))
	}
	log.Info("provinces built", zap.Int("provinces", g.Len()))
	log.Debug("diagram edges", zap.Int("edges", len(d.Edges)), zap.Int("unresolved", g.Skipped))

	syn := border.NewSynthesizer(b, rng)
	syn.Tradeoff = cfg.NoisyTradeoff
	syn.MinLength = cfg.MinJaggedLength
	st, err := syn.Synthesize(d)
	if err != nil {
		return nil, fmt.Errorf("dom3mapgen: synthesize borders: %w", err)
	}
	log.Info("borders synthesised", zap.Int("paths", syn.Cache.Len()))
	log.Debug("border edges", zap.Int("visible", st.Edges), zap.Int("cache hits", st.Hits),
		zap.Int("hidden", st.Hidden), zap.Int("unresolved", st.Unresolved))

	cl := terrain.NewClassifier(cfg.SeaProvinces, cfg.ForestProvinces)
	cl.TeleportThreshold = cfg.TeleportThreshold
	tm, err := cl.Classify(g, rng)
	if err != nil {
		return nil, fmt.Errorf("dom3mapgen: classify terrain: %w", err)
	}
	elevation := terrain.NewElevationField(rng.Int63(), b).Provinces(g)
	if err := terrain.PlaceMountains(tm, elevation, cfg.Mountains); err != nil {
		return nil, fmt.Errorf("dom3mapgen: place mountains: %w", err)
	}
	log.Info("terrain classified",
		zap.Int("sea", tm.Count(terrain.Sea)),
		zap.Int("deep", tm.Count(terrain.Deep)),
		zap.Int("forest", tm.Count(terrain.Forest)),
		zap.Int("mountain", tm.Count(terrain.Mountain)),
	)

	m := &Map{
		Config:    cfg,
		Bounds:    b,
		Points:    points,
		Diagram:   d,
		Graph:     g,
		Borders:   syn.Cache,
		Terrain:   tm,
		Elevation: elevation,
	}
	if cfg.NameProvinces {
		sea := make([]bool, g.Len())
		for id := 1; id <= g.Len(); id++ {
			sea[id-1] = tm[id].Has(terrain.Sea)
		}
		m.Names = make(map[int]string, g.Len())
		for i, name := range names.Generate(rng, sea) {
			m.Names[i+1] = name
		}
	}
	return m, nil
}

// tessellate computes the diagram of points and their ghost copies and builds the
// province graph from it.
func tessellate(points []r2.Point, b torus.Bounds, eps float64) (*voronoi.Diagram, *province.Graph, error) {
	d, err := voronoi.NewDiagram(b.Ghosts(points), voronoi.WithEps(eps))
	if err != nil {
		return nil, nil, fmt.Errorf("dom3mapgen: voronoi: %w", err)
	}
	g, err := province.Build(d, points, b)
	if err != nil {
		return nil, nil, fmt.Errorf("dom3mapgen: build provinces: %w", err)
	}
	return d, g, nil
}

// Filename returns the base name shared by the map file and its image.
func (m *Map) Filename() string {
	return mapfile.SanitizeFilename(m.Config.Title)
}

// MapFile returns the text map file description of m.
func (m *Map) MapFile() *mapfile.Map {
	desc := m.Config.Description
	if m.Config.ShowProvinceCount {
		sea := m.Terrain.Count(terrain.Sea)
		desc = mapfile.DescribeCounts(desc, m.Graph.Len()-sea, sea)
	}
	neighbours := make([][]int, m.Graph.Len())
	for id := 1; id <= m.Graph.Len(); id++ {
		neighbours[id-1] = m.Graph.Neighbours(id)
	}
	return &mapfile.Map{
		Title:            m.Config.Title,
		ImageFile:        m.Filename() + ".tga",
		Wraparound:       m.Config.Wraparound,
		Description:      desc,
		Provinces:        m.Graph.Len(),
		Names:            m.Names,
		Terrain:          m.Terrain,
		Neighbours:       neighbours,
		NoStartThreshold: m.Config.NoStartThreshold,
	}
}

func (m *Map) Scene() render.Scene {
	return render.Scene{Graph: m.Graph, Terrain: m.Terrain, Borders: m.Borders}
}

// Render rasterises the map with the default palette.
func (m *Map) Render() (*image.RGBA, error) {
	return render.Rasterize(m.Scene(), render.DefaultPalette())
}

func (m *Map) WriteSVG(w io.Writer) error {
	return render.WriteSVG(w, m.Scene(), render.DefaultPalette())
}

// Save writes the map file and its TGA image into dir and returns the map file path.
func (m *Map) Save(dir string) (string, error) {
	img, err := m.Render()
	if err != nil {
		return "", err
	}
	base := filepath.Join(dir, m.Filename())
	if err := writeFile(base+".tga", func(w io.Writer) error {
		return render.EncodeTGA(w, img)
	}); err != nil {
		return "", err
	}
	if err := writeFile(base+".map", m.MapFile().Write); err != nil {
		return "", err
	}
	return base + ".map", nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dom3mapgen: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("dom3mapgen: write %s: %w", filepath.Base(path), err)
	}
	return nil
}
