/*
Package palette provides the curated color palettes of the paint pipeline, the luminance- and
warmth-biased palette matcher, and functions for loading color sequences from various input
formats without having to take care of the details.

Paint Creator is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package palette

import (
  "errors"
  "fmt"
  "image/color"
  "strings"
)

// Swatch is one reference color of a palette. Luminance and warmth are memoized once per
// palette selection to avoid recomputation per pixel.
type Swatch struct {
  R, G, B    byte
  Luminance  float64
  Warmth     float64
}

// Palette is an ordered list of reference swatches. Palette values are immutable after
// creation and can be shared freely between pipeline runs.
type Palette struct {
  name      string
  swatches  []Swatch
}

// New creates a palette from RGB colors. Swatch metadata is computed once here.
func New(name string, colors []color.NRGBA) *Palette {
  p := &Palette{name: name, swatches: make([]Swatch, len(colors))}
  for i, c := range colors {
    p.swatches[i] = makeSwatch(c.R, c.G, c.B)
  }
  return p
}

// FromHex creates a palette from hex-coded RGB swatches of form "#rrggbb" or "rrggbb".
func FromHex(name string, entries []string) (*Palette, error) {
  if len(entries) == 0 { return nil, errors.New("No palette entries specified") }
  p := &Palette{name: name, swatches: make([]Swatch, len(entries))}
  for i, e := range entries {
    r, g, b, err := parseHexColor(e)
    if err != nil { return nil, fmt.Errorf("Palette entry %d: %v", i, err) }
    p.swatches[i] = makeSwatch(r, g, b)
  }
  return p, nil
}

// Name returns the palette name.
func (p *Palette) Name() string {
  return p.name
}

// Len returns the number of swatches in the palette.
func (p *Palette) Len() int {
  return len(p.swatches)
}

// Swatch returns the swatch at the given index.
func (p *Palette) Swatch(index int) Swatch {
  return p.swatches[index]
}

// Colors returns the palette as a plain color table.
func (p *Palette) Colors() color.Palette {
  pal := make(color.Palette, len(p.swatches))
  for i, s := range p.swatches {
    pal[i] = color.NRGBA{s.R, s.G, s.B, 255}
  }
  return pal
}


// Used internally. Creates a swatch with memoized luminance and warmth.
func makeSwatch(r, g, b byte) Swatch {
  return Swatch{
    R: r, G: g, B: b,
    Luminance: 0.299 * float64(r) + 0.587 * float64(g) + 0.114 * float64(b),
    Warmth:    float64(r) - float64(b),
  }
}

// Used internally. Parses a hex-coded RGB triple.
func parseHexColor(s string) (r, g, b byte, err error) {
  s = strings.TrimPrefix(strings.TrimSpace(s), "#")
  if len(s) != 6 {
    err = fmt.Errorf("not a hex color: %q", s)
    return
  }
  var rv, gv, bv int
  _, err = fmt.Sscanf(s, "%02x%02x%02x", &rv, &gv, &bv)
  if err != nil {
    err = fmt.Errorf("not a hex color: %q", s)
    return
  }
  return byte(rv), byte(gv), byte(bv), nil
}
