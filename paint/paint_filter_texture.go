package paint
/*
Implements filter "texture":
Options:
- strength: float [0.0, 1.0] (0.3)
*/

import (
  "fmt"
  "math"
  "strings"
)

const (
  filterNameTexture = "texture"
)

type FilterTexture struct {
  options       optionsMap
  opt_strength  string
}

// Register filter for use in the paint pipeline.
func init() {
  registerFilter(filterNameTexture, NewFilterTexture)
}


// Creates a new Texture filter.
func NewFilterTexture() PaintFilter {
  f := FilterTexture{options: make(optionsMap), opt_strength: "strength"}
  f.SetOption(f.opt_strength, "0.3")
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterTexture) GetName() string {
  return filterNameTexture
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterTexture) GetOption(key string) interface{} {
  v, ok := f.options[strings.ToLower(key)]
  if !ok { return nil }
  return v
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterTexture) SetOption(key, value string) error {
  key = strings.ToLower(key)
  if key == f.opt_strength {
    v, err := parseFloatRange(value, 0.0, 1.0)
    if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
    f.options[key] = v
  }
  return nil
}

// Process applies the filter effect to the specified buffer and returns the transformed buffer.
func (f *FilterTexture) Process(buf *Buffer, params *Params) (*Buffer, error) {
  strength := f.GetOption(f.opt_strength).(float64)
  out := buf.Clone()
  OverlayTexture(out, strength)
  return out, nil
}


// OverlayTexture adds a procedural canvas weave to the buffer, in place. The perturbation is
// the sum of two orthogonal sine threads with periods of roughly three to four pixels and two
// low-frequency undulation terms; no per-pixel random noise is involved. The value is scaled by
// the strength setting and added identically to all three color channels.
func OverlayTexture(buf *Buffer, strength float64) {
  if strength <= 0.0 { return }
  width, height := buf.Width(), buf.Height()

  for y := 0; y < height; y++ {
    fy := float64(y)
    threadY := math.Sin(fy * 1.9)
    waveY := math.Sin(fy * 0.038)
    for x := 0; x < width; x++ {
      fx := float64(x)
      weave := (math.Sin(fx * 1.8) + threadY) * 2.0
      wave := (math.Sin(fx * 0.045) + waveY) * 3.0
      adj := (weave + wave) * strength

      ofs := buf.Offset(x, y)
      buf.Pix[ofs] = clampByte(float64(buf.Pix[ofs]) + adj)
      buf.Pix[ofs+1] = clampByte(float64(buf.Pix[ofs+1]) + adj)
      buf.Pix[ofs+2] = clampByte(float64(buf.Pix[ofs+2]) + adj)
    }
  }
}
