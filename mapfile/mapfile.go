// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package mapfile writes the text map file that accompanies the map image.
package mapfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/luisantonioa/dom3mapgen/terrain"
)

const (
	DefaultNoStartThreshold = 3
)

type Map struct {
	Title       string
	ImageFile   string
	Wraparound  bool
	Description string
	// Provinces is the number of provinces; ids run from 1 to Provinces.
	Provinces int
	Names     map[int]string
	Terrain   terrain.Map
	// Neighbours is indexed by id-1.
	Neighbours [][]int
	// NoStartThreshold is the largest number of same-domain neighbours that still
	// marks a province as unsuitable for a start.
	NoStartThreshold int
}

func (m *Map) neighbours(id int) []int {
	if id-1 >= len(m.Neighbours) {
		return nil
	}
	return m.Neighbours[id-1]
}

// NoStart reports whether province id has no neighbours, or at most NoStartThreshold
// neighbours on the same side of the coast.
func (m *Map) NoStart(id int) bool {
	nb := m.neighbours(id)
	if len(nb) == 0 {
		return true
	}
	sea := m.Terrain[id].Has(terrain.Sea)
	same := 0
	for _, q := range nb {
		if m.Terrain[q].Has(terrain.Sea) == sea {
			same++
		}
	}
	return same <= m.NoStartThreshold
}

// Write serialises m. Double quotes inside quoted values become single quotes.
func (m *Map) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "#dom2title %s\n", m.Title)
	fmt.Fprintf(bw, "#imagefile %s\n", m.ImageFile)
	if m.Wraparound {
		fmt.Fprintln(bw, "#wraparound")
	}
	fmt.Fprintf(bw, "#description \"%s\"\n", quote(m.Description))
	fmt.Fprintln(bw)

	for id := 1; id <= m.Provinces; id++ {
		if name, ok := m.Names[id]; ok && name != "" {
			fmt.Fprintf(bw, "#landname %d \"%s\"\n", id, quote(name))
		}
		fmt.Fprintf(bw, "#terrain %d %d\n", id, uint32(m.Terrain[id]))
	}

	for id := 1; id <= m.Provinces; id++ {
		for _, q := range m.neighbours(id) {
			if q > id {
				fmt.Fprintf(bw, "#neighbour %d %d\n", id, q)
			}
		}
	}

	for id := 1; id <= m.Provinces; id++ {
		if m.NoStart(id) {
			fmt.Fprintf(bw, "#nostart %d\n", id)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("mapfile: write: %w", err)
	}
	return nil
}

func quote(s string) string {
	return strings.ReplaceAll(s, `"`, "'")
}

// SanitizeFilename turns a map title into a base filename by replacing characters that
// are not allowed in paths with '_'.
func SanitizeFilename(title string) string {
	name := strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(`<>:"/\|?*`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" || name == "." || name == ".." {
		return "map"
	}
	return name
}

// DescribeCounts appends the province counts to desc on a new line.
func DescribeCounts(desc string, land, sea int) string {
	return fmt.Sprintf("%s\nLand Provinces: %d, Sea Provinces: %d, Total Provinces: %d",
		desc, land, sea, land+sea)
}
