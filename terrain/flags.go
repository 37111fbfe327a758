// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package terrain

import (
	"strconv"
	"strings"
)

// Flags is the terrain bit set written to the map file.
type Flags uint32

const (
	Small Flags = 1 << iota
	Large
	Sea
	SomeWater
	Mountain
	Swamp
	Waste
	Forest
	Farm
	NoStart
	ManySites
	Deep
	Cave
	FireSite
	AirSite
	WaterSite
	EarthSite
	AstralSite
	DeathSite
	NatureSite
	BloodSite
	PriestSite
	EdgeMount
)

var flagNames = []string{
	"Small", "Large", "Sea", "SomeWater", "Mountain", "Swamp", "Waste", "Forest", "Farm",
	"NoStart", "ManySites", "Deep", "Cave", "FireSite", "AirSite", "WaterSite", "EarthSite",
	"AstralSite", "DeathSite", "NatureSite", "BloodSite", "PriestSite", "EdgeMount",
}

func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

func (f Flags) String() string {
	if f == 0 {
		return "Plain"
	}
	var parts []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
			f &^= 1 << i
		}
	}
	if f != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(f), 16))
	}
	return strings.Join(parts, "|")
}

// Map holds the flags of every province by id.
type Map map[int]Flags

func (m Map) Count(flag Flags) int {
	n := 0
	for _, f := range m {
		if f.Has(flag) {
			n++
		}
	}
	return n
}
