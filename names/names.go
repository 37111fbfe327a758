// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package names generates province names from syllable tables.
package names

import (
	"math/rand"
	"strconv"
)

var (
	prefixes = []string{
		"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black", "Silver", "Red", "White",
		"Dark", "Bright", "High", "Low", "Old", "Far", "Long", "Broad", "Gold", "Frost",
		"Storm", "Thorn", "Elm", "Oak", "Pine", "Copper", "Raven", "Wolf", "Grey", "Amber",
	}
	landSuffixes = []string{
		"haven", "ford", "hollow", "wick", "bridge", "gate", "keep", "stead", "wood", "field",
		"dale", "crest", "vale", "moor", "ridge", "watch", "fall", "reach", "helm", "march",
	}
	seaSuffixes = []string{
		"water", "deep", "sound", "mere", "tide", "gulf", "strait", "shoal", "bay", "reach",
	}
)

const maxAttempts = 64

// Generate returns one unique name per province; sea[i] selects the sea tables for
// province i+1.
func Generate(rng *rand.Rand, sea []bool) []string {
	used := make(map[string]bool, len(sea))
	out := make([]string, len(sea))
	for i, isSea := range sea {
		suffixes := landSuffixes
		if isSea {
			suffixes = seaSuffixes
		}

		var name string
		for attempt := 0; ; attempt++ {
			name = prefixes[rng.Intn(len(prefixes))] + suffixes[rng.Intn(len(suffixes))]
			if attempt >= maxAttempts {
				name += " " + strconv.Itoa(i+1)
			}
			if !used[name] {
				break
			}
		}
		used[name] = true
		out[i] = name
	}
	return out
}
