package paint
/*
Implements filter "detail":
Options:
- amount: float [0.0, 1.0] (0.5)
*/

import (
  "fmt"
  "math"
  "strings"
)

const (
  filterNameDetail = "detail"

  // High-pass values at or below this magnitude are treated as sensor noise.
  detailNoiseThreshold = 8.0
  detailNoiseScale     = 0.1
  // Face regions receive a boosted detail adjustment.
  detailFaceBoost      = 1.4
)

type FilterDetail struct {
  options     optionsMap
  opt_amount  string
}

// Register filter for use in the paint pipeline.
func init() {
  registerFilter(filterNameDetail, NewFilterDetail)
}


// Creates a new Detail filter.
func NewFilterDetail() PaintFilter {
  f := FilterDetail{options: make(optionsMap), opt_amount: "amount"}
  f.SetOption(f.opt_amount, "0.5")
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterDetail) GetName() string {
  return filterNameDetail
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterDetail) GetOption(key string) interface{} {
  v, ok := f.options[strings.ToLower(key)]
  if !ok { return nil }
  return v
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterDetail) SetOption(key, value string) error {
  key = strings.ToLower(key)
  if key == f.opt_amount {
    v, err := parseFloatRange(value, 0.0, 1.0)
    if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
    f.options[key] = v
  }
  return nil
}

// Process applies the filter effect to the specified buffer and returns the transformed buffer.
// When used as a standalone chain filter the buffer itself doubles as the detail source.
func (f *FilterDetail) Process(buf *Buffer, params *Params) (*Buffer, error) {
  amount := f.GetOption(f.opt_amount).(float64)
  out := buf.Clone()
  RecoverDetail(out, buf, amount, params.Regions)
  return out, nil
}


// RecoverDetail reinjects luminance detail from the pre-paint original into the painted buffer,
// in place. The detail signal is the difference between a box-blurred copy of the original
// luminance and the original luminance itself, with a blur radius scaled inversely with the
// detail setting. Small magnitudes are attenuated as noise; larger values pass through a
// saturating nonlinearity to avoid amplifying outliers. The adjustment is applied identically
// to all three color channels and boosted inside face regions.
func RecoverDetail(painted, original *Buffer, detail float64, regions []Region) {
  if detail <= 0.0 { return }
  width, height := painted.Width(), painted.Height()
  if original.Width() != width || original.Height() != height { return }

  radius := 1 + int((1.0 - detail) * 3.0)

  lum := make([]float64, width * height)
  for i := 0; i < width * height; i++ {
    lum[i] = Luminance(original.Pix[i*4], original.Pix[i*4+1], original.Pix[i*4+2])
  }
  blurred := blurPlane(lum, width, height, radius)

  scale := detail * 0.5
  for y := 0; y < height; y++ {
    for x := 0; x < width; x++ {
      i := y * width + x
      d := blurred[i] - lum[i]
      if math.Abs(d) <= detailNoiseThreshold {
        d *= detailNoiseScale
      } else {
        d *= 1.0 - math.Exp(-math.Abs(d) / 30.0)
      }
      adj := d * scale
      if regionAt(regions, x, y) { adj *= detailFaceBoost }

      ofs := i * 4
      painted.Pix[ofs] = clampByte(float64(painted.Pix[ofs]) + adj)
      painted.Pix[ofs+1] = clampByte(float64(painted.Pix[ofs+1]) + adj)
      painted.Pix[ofs+2] = clampByte(float64(painted.Pix[ofs+2]) + adj)
    }
  }
}
