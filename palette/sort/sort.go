/*
Package sort provides functionality for ordering color tables by a selected characteristic.
Imported palettes are normalized through this package so that hand-authored and file-loaded
swatch lists share a predictable ordering.
*/
package sort

import (
  "image/color"
  "math"
  "sort"
)

// Available sort types and flags.
const (
  // Don't sort colors. Only useful in combination with sort flags.
  SORT_BY_NONE        = 0x00
  // Sort by the perceived lightness aspect of a color.
  SORT_BY_LIGHTNESS   = 0x01
  // Sort by the saturation aspect of a color.
  SORT_BY_SATURATION  = 0x02
  // Sort by the hue aspect of a color.
  SORT_BY_HUE         = 0x03
  // Sort by red color component.
  SORT_BY_RED         = 0x04
  // Sort by green color component.
  SORT_BY_GREEN       = 0x05
  // Sort by blue color component.
  SORT_BY_BLUE        = 0x06

  // Sort colors in reversed order
  SORT_REVERSED       = 0x100
)

type sortEntry struct {
  index int       // the original color index
  value float64   // the value to sort by
}

type sortTable []sortEntry

// Sort orders the specified color table according to sortFlags, which may be composed of one
// of the SORT_BY_xxx constants and optional SORT_xxx flags. Returns a new color table; the
// input is not modified.
func Sort(pal color.Palette, sortFlags int) color.Palette {
  palOut := make(color.Palette, len(pal))
  copy(palOut, pal)
  if len(pal) < 2 || sortFlags == SORT_BY_NONE { return palOut }

  stype := sortFlags & 0xff
  reversed := sortFlags & SORT_REVERSED != 0

  var stable sortTable
  switch stype {
    case SORT_BY_LIGHTNESS:   stable = createSortTable(pal, lightness)
    case SORT_BY_SATURATION:  stable = createSortTable(pal, saturation)
    case SORT_BY_HUE:         stable = createSortTable(pal, hue)
    case SORT_BY_RED:         stable = createSortTable(pal, red)
    case SORT_BY_GREEN:       stable = createSortTable(pal, green)
    case SORT_BY_BLUE:        stable = createSortTable(pal, blue)
    default:                  return palOut
  }

  sort.SliceStable(stable, func(i, j int) bool { return stable[i].value < stable[j].value })
  if reversed {
    for i, j := 0, len(stable) - 1; i < j; i, j = i + 1, j - 1 {
      stable[i], stable[j] = stable[j], stable[i]
    }
  }

  for i, entry := range stable {
    palOut[i] = pal[entry.index]
  }
  return palOut
}


// Used internally. Builds the table of sort keys for the given color table.
func createSortTable(pal color.Palette, value func(color.Color) float64) sortTable {
  stable := make(sortTable, len(pal))
  for i, col := range pal {
    stable[i] = sortEntry{index: i, value: value(col)}
  }
  return stable
}

// Used internally. Returns color components normalized to range [0.0, 1.0].
func normalizeColor(col color.Color) (r, g, b float64) {
  pr, pg, pb, _ := col.RGBA()
  r = float64(pr >> 8) / 255.0
  g = float64(pg >> 8) / 255.0
  b = float64(pb >> 8) / 255.0
  return
}

// Returns perceived lightness value of the color, mapped to range [0.0, 1.0]
func lightness(col color.Color) float64 {
  r, g, b := normalizeColor(col)
  r *= r * 0.299
  g *= g * 0.587
  b *= b * 0.114
  return math.Sqrt(r + g + b)
}

// Returns saturation value of the color, mapped to range [0.0, 1.0]
func saturation(col color.Color) float64 {
  r, g, b := normalizeColor(col)
  cmin := r; if g < cmin { cmin = g }; if b < cmin { cmin = b }
  cmax := r; if g > cmax { cmax = g }; if b > cmax { cmax = b }
  csum := cmax + cmin
  cdelta := cmax - cmin

  var s float64 = 0.0
  if cdelta != 0.0 {
    if csum / 2.0 < 0.5 {
      s = cdelta / csum
    } else {
      s = cdelta / (2.0 - csum)
    }
  }
  return s
}

// Returns hue value of the color, mapped to range [0.0, 1.0]
func hue(col color.Color) float64 {
  r, g, b := normalizeColor(col)
  cmin := r; if g < cmin { cmin = g }; if b < cmin { cmin = b }
  cmax := r; if g > cmax { cmax = g }; if b > cmax { cmax = b }
  cdelta := cmax - cmin

  var h float64 = 0.0
  if cdelta != 0.0 {
    cdelta2 := cdelta / 2.0
    dr := ((cmax - r) / 6.0 + cdelta2) / cdelta
    dg := ((cmax - g) / 6.0 + cdelta2) / cdelta
    db := ((cmax - b) / 6.0 + cdelta2) / cdelta
    switch cmax {
      case r:   h = db - dg
      case g:   h = 1.0/3.0 + dr - db
      default:  h = 2.0/3.0 + dg - dr
    }
    if h < 0.0 { h += 1.0 }
    if h > 1.0 { h -= 1.0 }
  }
  return h
}

// Returns red component of the color, mapped to range [0.0, 1.0]
func red(col color.Color) float64 {
  r, _, _ := normalizeColor(col)
  return r
}

// Returns green component of the color, mapped to range [0.0, 1.0]
func green(col color.Color) float64 {
  _, g, _ := normalizeColor(col)
  return g
}

// Returns blue component of the color, mapped to range [0.0, 1.0]
func blue(col color.Color) float64 {
  _, _, b := normalizeColor(col)
  return b
}
