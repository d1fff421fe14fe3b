package paint
/*
Implements filter "bilateral":
Options:
- radius: int [1, 8] (3)
- sigmaspace: float [0.1, 16.0] (2.0)
- sigmacolor: float [1.0, 255.0] (30.0)
*/

import (
  "fmt"
  "math"
  "strings"
)

const (
  filterNameBilateral = "bilateral"

  // Face regions widen the sampling radius and tighten the color sigma to reduce noise on skin
  // without softening the open scene.
  faceRadiusBonus     = 2
  faceColorSigmaRatio = 0.7
)

type FilterBilateral struct {
  options         optionsMap
  opt_radius      string
  opt_sigmaSpace  string
  opt_sigmaColor  string
}

// Register filter for use in the paint pipeline.
func init() {
  registerFilter(filterNameBilateral, NewFilterBilateral)
}


// Creates a new Bilateral filter.
func NewFilterBilateral() PaintFilter {
  f := FilterBilateral{options: make(optionsMap), opt_radius: "radius", opt_sigmaSpace: "sigmaspace", opt_sigmaColor: "sigmacolor"}
  f.SetOption(f.opt_radius, "3")
  f.SetOption(f.opt_sigmaSpace, "2.0")
  f.SetOption(f.opt_sigmaColor, "30.0")
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterBilateral) GetName() string {
  return filterNameBilateral
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterBilateral) GetOption(key string) interface{} {
  v, ok := f.options[strings.ToLower(key)]
  if !ok { return nil }
  return v
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterBilateral) SetOption(key, value string) error {
  key = strings.ToLower(key)
  switch key {
    case f.opt_radius:
      v, err := parseIntRange(value, 1, 8)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
    case f.opt_sigmaSpace:
      v, err := parseFloatRange(value, 0.1, 16.0)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
    case f.opt_sigmaColor:
      v, err := parseFloatRange(value, 1.0, 255.0)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
  }
  return nil
}

// Process applies the filter effect to the specified buffer and returns the transformed buffer.
func (f *FilterBilateral) Process(buf *Buffer, params *Params) (*Buffer, error) {
  radius := f.GetOption(f.opt_radius).(int)
  sigmaSpace := f.GetOption(f.opt_sigmaSpace).(float64)
  sigmaColor := f.GetOption(f.opt_sigmaColor).(float64)
  return Bilateral(buf, radius, sigmaSpace, sigmaColor, params.Regions)
}


// Bilateral applies an edge-preserving pre-blur to the buffer and returns a new buffer.
// Neighbors are weighted by both spatial distance and Euclidean RGB distance from the center
// pixel. Pixels inside a face region sample a wider radius with a tightened color sigma.
// Sampling at the buffer borders clamps coordinates to the edges.
func Bilateral(src *Buffer, radius int, sigmaSpace, sigmaColor float64, regions []Region) (*Buffer, error) {
  if radius < 1 { radius = 1 }
  width, height := src.Width(), src.Height()
  dst := NewBuffer(width, height)

  spaceDenom := 2.0 * sigmaSpace * sigmaSpace
  err := processRows(height, func(y0, y1 int) error {
    for y := y0; y < y1; y++ {
      for x := 0; x < width; x++ {
        r := radius
        colorDenom := 2.0 * sigmaColor * sigmaColor
        if regionAt(regions, x, y) {
          r += faceRadiusBonus
          cs := sigmaColor * faceColorSigmaRatio
          colorDenom = 2.0 * cs * cs
        }

        ofs := src.Offset(x, y)
        cr := float64(src.Pix[ofs])
        cg := float64(src.Pix[ofs+1])
        cb := float64(src.Pix[ofs+2])

        var sumR, sumG, sumB, sumW float64
        for dy := -r; dy <= r; dy++ {
          sy := src.clampY(y + dy)
          for dx := -r; dx <= r; dx++ {
            sx := src.clampX(x + dx)
            sofs := src.Offset(sx, sy)
            sr := float64(src.Pix[sofs])
            sg := float64(src.Pix[sofs+1])
            sb := float64(src.Pix[sofs+2])

            dr := sr - cr
            dg := sg - cg
            db := sb - cb
            colorDist2 := dr * dr + dg * dg + db * db
            spaceDist2 := float64(dx * dx + dy * dy)
            // the center pixel contributes maximal weight, so the sum is always > 0
            w := math.Exp(-spaceDist2 / spaceDenom) * math.Exp(-colorDist2 / colorDenom)

            sumR += sr * w
            sumG += sg * w
            sumB += sb * w
            sumW += w
          }
        }

        dofs := dst.Offset(x, y)
        dst.Pix[dofs] = clampByte(sumR / sumW)
        dst.Pix[dofs+1] = clampByte(sumG / sumW)
        dst.Pix[dofs+2] = clampByte(sumB / sumW)
        dst.Pix[dofs+3] = src.Pix[ofs+3]
      }
    }
    return nil
  })
  if err != nil { return nil, err }
  return dst, nil
}
