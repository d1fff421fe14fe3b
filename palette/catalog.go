package palette
// Defines the fixed catalog of hand-authored palettes.

import (
  "fmt"
  "sort"
  "strings"
)

// Reserved palette selection names.
const (
  SelectionNone     = "none"
  SelectionAuto     = "auto"
  SelectionAdaptive = "adaptive"
)

// Each catalog entry mixes warm and cool hues so that the warmth-biased matcher has usable
// candidates across the whole luminance range.
var catalogEntries = map[string][]string{
  "autumn": {
    "#2b1d16", "#5c3a21", "#8a5a2b", "#b07b3c", "#d9a05b",
    "#e8c07d", "#7a6648", "#44553e", "#2e4047", "#89302a",
  },
  "ember": {
    "#1a1214", "#471f1c", "#7d2f23", "#b0492c", "#d97941",
    "#edb06a", "#f4d9a6", "#54413b", "#33333d", "#1f2a38", "#812d3c",
  },
  "meadow": {
    "#23301f", "#3d5030", "#607a42", "#87a05c", "#b5c482",
    "#e2d9a2", "#c9a86a", "#8d6b4b", "#5d4a3c", "#41585e",
  },
  "sea": {
    "#101c26", "#1c3644", "#2d5567", "#41798c", "#6aa3ae",
    "#a3cbc9", "#e0e5d0", "#c2a878", "#8c6f50", "#4e4338", "#27343c",
  },
  "dusk": {
    "#1d1726", "#372c47", "#564266", "#7c5a7e", "#a8718a",
    "#cf8f8c", "#e8b793", "#f2d9ac", "#4b5468", "#2c3a52",
  },
  "vintage": {
    "#27211b", "#4a3c2e", "#6e5a40", "#937854", "#b89a6a",
    "#d8bd8f", "#ecdbb6", "#7e7460", "#596156", "#3b4a4a", "#704a3a", "#9c6045",
  },
}

var catalog map[string]*Palette

func init() {
  catalog = make(map[string]*Palette, len(catalogEntries))
  for name, entries := range catalogEntries {
    p, err := FromHex(name, entries)
    if err != nil { panic(fmt.Sprintf("invalid catalog palette %q: %v", name, err)) }
    catalog[name] = p
  }
}

// Names returns the sorted names of all catalog palettes.
func Names() []string {
  names := make([]string, 0, len(catalog))
  for name := range catalog {
    names = append(names, name)
  }
  sort.Strings(names)
  return names
}

// ByName returns the catalog palette of the given name. The reserved names "none" and "auto"
// are not valid palette names here; resolve them at the call site first.
func ByName(name string) (*Palette, error) {
  p, ok := catalog[strings.ToLower(name)]
  if !ok { return nil, fmt.Errorf("Unknown palette: %q", name) }
  return p, nil
}

// All returns every catalog palette, sorted by name. Used by the auto-detection scorer.
func All() []*Palette {
  names := Names()
  out := make([]*Palette, len(names))
  for i, name := range names {
    out[i] = catalog[name]
  }
  return out
}
