package paint
/*
Implements filter "oilpaint":
Options:
- radius: int [2, 12] (4)
*/

import (
  "fmt"
  "strings"
)

const (
  filterNameOilPaint = "oilpaint"

  // Face regions use a reduced radius to preserve facial detail while remaining painterly.
  faceRadiusFactor   = 0.5
  faceRadiusMinimum  = 2
)

type FilterOilPaint struct {
  options     optionsMap
  opt_radius  string
}

// Register filter for use in the paint pipeline.
func init() {
  registerFilter(filterNameOilPaint, NewFilterOilPaint)
}


// Creates a new OilPaint filter.
func NewFilterOilPaint() PaintFilter {
  f := FilterOilPaint{options: make(optionsMap), opt_radius: "radius"}
  f.SetOption(f.opt_radius, "4")
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterOilPaint) GetName() string {
  return filterNameOilPaint
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterOilPaint) GetOption(key string) interface{} {
  v, ok := f.options[strings.ToLower(key)]
  if !ok { return nil }
  return v
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterOilPaint) SetOption(key, value string) error {
  key = strings.ToLower(key)
  if key == f.opt_radius {
    v, err := parseIntRange(value, 2, 12)
    if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
    f.options[key] = v
  }
  return nil
}

// Process applies the filter effect to the specified buffer and returns the transformed buffer.
func (f *FilterOilPaint) Process(buf *Buffer, params *Params) (*Buffer, error) {
  radius := f.GetOption(f.opt_radius).(int)
  return OilPaint(buf, radius, params.Regions)
}


// integralImage holds per-channel summed-area tables of pixel values and squared pixel values,
// used to derive region means and population variances in constant time.
type integralImage struct {
  sum     []float64
  sumSq   []float64
  width   int
  height  int
}

// Used internally. Builds the summed-area tables for the given buffer.
func buildIntegralImage(src *Buffer) *integralImage {
  width, height := src.Width(), src.Height()
  iw := width + 1
  ii := &integralImage{
    sum:    make([]float64, iw * (height + 1) * 3),
    sumSq:  make([]float64, iw * (height + 1) * 3),
    width:  width,
    height: height,
  }

  for y := 1; y <= height; y++ {
    for x := 1; x <= width; x++ {
      ofs := src.Offset(x - 1, y - 1)
      for ch := 0; ch < 3; ch++ {
        val := float64(src.Pix[ofs+ch])
        idx := (y * iw + x) * 3 + ch
        idxUp := ((y - 1) * iw + x) * 3 + ch
        idxLeft := (y * iw + x - 1) * 3 + ch
        idxDiag := ((y - 1) * iw + x - 1) * 3 + ch

        ii.sum[idx] = val + ii.sum[idxUp] + ii.sum[idxLeft] - ii.sum[idxDiag]
        ii.sumSq[idx] = val * val + ii.sumSq[idxUp] + ii.sumSq[idxLeft] - ii.sumSq[idxDiag]
      }
    }
  }
  return ii
}

// Used internally. Returns mean and population variance per channel for the rectangle spanning
// (x1, y1) to (x2, y2), both inclusive. Coordinates are clamped to the raster.
func (ii *integralImage) regionStats(x1, y1, x2, y2 int) (mean, variance [3]float64) {
  if x1 < 0 { x1 = 0 }
  if y1 < 0 { y1 = 0 }
  if x2 >= ii.width { x2 = ii.width - 1 }
  if y2 >= ii.height { y2 = ii.height - 1 }

  iw := ii.width + 1
  x1++; y1++; x2++; y2++
  area := float64((x2 - x1 + 1) * (y2 - y1 + 1))
  if area <= 0.0 { return }

  for ch := 0; ch < 3; ch++ {
    idxBR := (y2 * iw + x2) * 3 + ch
    idxBL := (y2 * iw + x1 - 1) * 3 + ch
    idxTR := ((y1 - 1) * iw + x2) * 3 + ch
    idxTL := ((y1 - 1) * iw + x1 - 1) * 3 + ch

    sum := ii.sum[idxBR] - ii.sum[idxBL] - ii.sum[idxTR] + ii.sum[idxTL]
    sumSq := ii.sumSq[idxBR] - ii.sumSq[idxBL] - ii.sumSq[idxTR] + ii.sumSq[idxTL]

    mean[ch] = sum / area
    v := sumSq / area - mean[ch] * mean[ch]
    if v < 0.0 { v = 0.0 }
    variance[ch] = v
  }
  return
}

// OilPaint applies the region-variance painter to the buffer and returns a new buffer.
// The radius neighborhood of each pixel is partitioned into four quadrants that all share the
// center pixel as their corner. The output pixel is the mean color of the quadrant with the
// lowest summed per-channel population variance; ties resolve in declaration order TL, TR, BL, BR.
// This deliberately deviates from a textbook Kuwahara filter: quadrant corners overlap and no
// per-quadrant standard deviation normalization takes place.
func OilPaint(src *Buffer, radius int, regions []Region) (*Buffer, error) {
  if radius < 2 { radius = 2 }
  width, height := src.Width(), src.Height()
  dst := NewBuffer(width, height)
  ii := buildIntegralImage(src)

  faceRadius := int(float64(radius) * faceRadiusFactor)
  if faceRadius < faceRadiusMinimum { faceRadius = faceRadiusMinimum }

  err := processRows(height, func(y0, y1 int) error {
    for y := y0; y < y1; y++ {
      for x := 0; x < width; x++ {
        r := radius
        if regionAt(regions, x, y) { r = faceRadius }

        // quadrants in tie-break order: top-left, top-right, bottom-left, bottom-right
        quads := [4][4]int{
          {x - r, y - r, x, y},
          {x, y - r, x + r, y},
          {x - r, y, x, y + r},
          {x, y, x + r, y + r},
        }

        var best [3]float64
        bestVariance := -1.0
        for _, q := range quads {
          mean, variance := ii.regionStats(q[0], q[1], q[2], q[3])
          total := variance[0] + variance[1] + variance[2]
          if bestVariance < 0.0 || total < bestVariance {
            bestVariance = total
            best = mean
          }
        }

        ofs := dst.Offset(x, y)
        dst.Pix[ofs] = clampByte(best[0])
        dst.Pix[ofs+1] = clampByte(best[1])
        dst.Pix[ofs+2] = clampByte(best[2])
        dst.Pix[ofs+3] = src.Pix[src.Offset(x, y)+3]
      }
    }
    return nil
  })
  if err != nil { return nil, err }
  return dst, nil
}
