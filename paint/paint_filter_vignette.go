package paint
/*
Implements filter "vignette":
Options:
- strength: float [0.0, 1.0] (0.3)
*/

import (
  "fmt"
  "math"
  "strings"
)

const (
  filterNameVignette = "vignette"
)

type FilterVignette struct {
  options       optionsMap
  opt_strength  string
}

// Register filter for use in the paint pipeline.
func init() {
  registerFilter(filterNameVignette, NewFilterVignette)
}


// Creates a new Vignette filter.
func NewFilterVignette() PaintFilter {
  f := FilterVignette{options: make(optionsMap), opt_strength: "strength"}
  f.SetOption(f.opt_strength, "0.3")
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterVignette) GetName() string {
  return filterNameVignette
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterVignette) GetOption(key string) interface{} {
  v, ok := f.options[strings.ToLower(key)]
  if !ok { return nil }
  return v
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterVignette) SetOption(key, value string) error {
  key = strings.ToLower(key)
  if key == f.opt_strength {
    v, err := parseFloatRange(value, 0.0, 1.0)
    if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
    f.options[key] = v
  }
  return nil
}

// Process applies the filter effect to the specified buffer and returns the transformed buffer.
func (f *FilterVignette) Process(buf *Buffer, params *Params) (*Buffer, error) {
  strength := f.GetOption(f.opt_strength).(float64)
  out := buf.Clone()
  Vignette(out, strength)
  return out, nil
}


// Vignette darkens the buffer radially from the image center, in place. The darkening factor is
// 1 - (dist/maxDist)^2 * strength, where dist is the Euclidean distance from the center and
// maxDist the distance to a corner. A strength of zero leaves the buffer untouched.
func Vignette(buf *Buffer, strength float64) {
  if strength <= 0.0 { return }
  width, height := buf.Width(), buf.Height()

  cx := float64(width) / 2.0
  cy := float64(height) / 2.0
  maxDist := math.Sqrt(cx * cx + cy * cy)
  if maxDist <= 0.0 { return }

  for y := 0; y < height; y++ {
    dy := float64(y) - cy
    for x := 0; x < width; x++ {
      dx := float64(x) - cx
      dist := math.Sqrt(dx * dx + dy * dy) / maxDist
      factor := 1.0 - dist * dist * strength
      if factor < 0.0 { factor = 0.0 }

      ofs := buf.Offset(x, y)
      buf.Pix[ofs] = clampByte(float64(buf.Pix[ofs]) * factor)
      buf.Pix[ofs+1] = clampByte(float64(buf.Pix[ofs+1]) * factor)
      buf.Pix[ofs+2] = clampByte(float64(buf.Pix[ofs+2]) * factor)
    }
  }
}
