package paint
/*
Implements filter "posterize":
Options:
- levels: int [3, 16] (8)
- detail: float [0.0, 1.0] (0.5)
*/

import (
  "fmt"
  "math"
  "strings"
)

const (
  filterNamePosterize = "posterize"

  // Face and skin pixels are quantized with extra levels to avoid hard banding on skin.
  posterizeSkinBonus  = 2
  posterizeSkinCap    = 12
)

type FilterPosterize struct {
  options     optionsMap
  opt_levels  string
  opt_detail  string
}

// Register filter for use in the paint pipeline.
func init() {
  registerFilter(filterNamePosterize, NewFilterPosterize)
}


// Creates a new Posterize filter.
func NewFilterPosterize() PaintFilter {
  f := FilterPosterize{options: make(optionsMap), opt_levels: "levels", opt_detail: "detail"}
  f.SetOption(f.opt_levels, "8")
  f.SetOption(f.opt_detail, "0.5")
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterPosterize) GetName() string {
  return filterNamePosterize
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterPosterize) GetOption(key string) interface{} {
  v, ok := f.options[strings.ToLower(key)]
  if !ok { return nil }
  return v
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterPosterize) SetOption(key, value string) error {
  key = strings.ToLower(key)
  switch key {
    case f.opt_levels:
      v, err := parseIntRange(value, 3, 16)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
    case f.opt_detail:
      v, err := parseFloatRange(value, 0.0, 1.0)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
  }
  return nil
}

// Process applies the filter effect to the specified buffer and returns the transformed buffer.
func (f *FilterPosterize) Process(buf *Buffer, params *Params) (*Buffer, error) {
  levels := f.GetOption(f.opt_levels).(int)
  detail := f.GetOption(f.opt_detail).(float64)
  out := buf.Clone()
  Posterize(out, levels, detail, params.Regions)
  return out, nil
}


// quantizeChannel quantizes a single channel value to the given number of levels.
// The quantization law is round(round(value/step) * step) with step = 255/(levels-1).
func quantizeChannel(value byte, levels int) byte {
  if levels < 2 { return value }
  step := 255.0 / float64(levels - 1)
  return clampByte(math.Round(math.Round(float64(value) / step) * step))
}

// posterizePass quantizes all pixels of the buffer in place. Pixels inside a face region or
// matching the RGB skin heuristic receive min(levels+2, 12) levels.
func posterizePass(buf *Buffer, levels int, regions []Region) {
  width, height := buf.Width(), buf.Height()
  skinLevels := levels + posterizeSkinBonus
  if skinLevels > posterizeSkinCap { skinLevels = posterizeSkinCap }

  for y := 0; y < height; y++ {
    for x := 0; x < width; x++ {
      ofs := buf.Offset(x, y)
      r, g, b := buf.Pix[ofs], buf.Pix[ofs+1], buf.Pix[ofs+2]

      n := levels
      if regionAt(regions, x, y) || isSkinRGB(r, g, b) { n = skinLevels }

      buf.Pix[ofs] = quantizeChannel(r, n)
      buf.Pix[ofs+1] = quantizeChannel(g, n)
      buf.Pix[ofs+2] = quantizeChannel(b, n)
    }
  }
}

// Posterize quantizes the buffer channels to a fixed number of levels, in place. With a low
// detail setting a cleanup pass follows: a radius-1 box blur and a second posterize with the
// same levels remove single-pixel quantization noise. With a high detail setting the level
// count is raised instead, up to two extra levels proportional to the detail value.
func Posterize(buf *Buffer, levels int, detail float64, regions []Region) {
  if levels < 2 { return }

  if detail > 0.5 {
    boost := int(math.Round((detail - 0.5) * 4.0))
    if boost > 2 { boost = 2 }
    posterizePass(buf, levels + boost, regions)
    return
  }

  posterizePass(buf, levels, regions)
  blurred := BoxBlur(buf, 1)
  copy(buf.Pix, blurred.Pix)
  posterizePass(buf, levels, regions)
}
