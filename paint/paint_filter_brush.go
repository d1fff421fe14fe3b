package paint
/*
Implements filter "brush":
Options:
- size: int [2, 8] (4)
*/

import (
  "fmt"
  "math"
  "strings"
)

const (
  filterNameBrush = "brush"

  // Epsilon denominator for degenerate gradients. Near-zero gradients collapse the stroke
  // direction to (0, 0), turning the smear into a single-sample average.
  brushGradientEpsilon = 0.001
)

type FilterBrush struct {
  options   optionsMap
  opt_size  string
}

// Register filter for use in the paint pipeline.
func init() {
  registerFilter(filterNameBrush, NewFilterBrush)
}


// Creates a new Brush filter.
func NewFilterBrush() PaintFilter {
  f := FilterBrush{options: make(optionsMap), opt_size: "size"}
  f.SetOption(f.opt_size, "4")
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterBrush) GetName() string {
  return filterNameBrush
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterBrush) GetOption(key string) interface{} {
  v, ok := f.options[strings.ToLower(key)]
  if !ok { return nil }
  return v
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterBrush) SetOption(key, value string) error {
  key = strings.ToLower(key)
  if key == f.opt_size {
    v, err := parseIntRange(value, 2, 8)
    if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
    f.options[key] = v
  }
  return nil
}

// Process applies the filter effect to the specified buffer and returns the transformed buffer.
func (f *FilterBrush) Process(buf *Buffer, params *Params) (*Buffer, error) {
  size := f.GetOption(f.opt_size).(int)
  return Brushstroke(buf, size)
}


// Brushstroke simulates directional paint strokes and returns a new buffer. For each interior
// pixel the channel-summed finite-difference gradient is computed; color samples are then
// averaged along the perpendicular unit direction within +/- size steps, rounded to the nearest
// pixel and clamped to the buffer bounds. Border rows and columns are passed through unmodified.
func Brushstroke(src *Buffer, size int) (*Buffer, error) {
  width, height := src.Width(), src.Height()
  dst := src.Clone()
  if width < 3 || height < 3 { return dst, nil }

  err := processRows(height - 2, func(y0, y1 int) error {
    for y := y0 + 1; y < y1 + 1; y++ {
      for x := 1; x < width - 1; x++ {
        left := src.Offset(x - 1, y)
        right := src.Offset(x + 1, y)
        up := src.Offset(x, y - 1)
        down := src.Offset(x, y + 1)

        var gx, gy float64
        for ch := 0; ch < 3; ch++ {
          gx += float64(src.Pix[right+ch]) - float64(src.Pix[left+ch])
          gy += float64(src.Pix[down+ch]) - float64(src.Pix[up+ch])
        }

        mag := math.Sqrt(gx * gx + gy * gy) + brushGradientEpsilon
        // stroke direction is perpendicular to the gradient
        dirX := -gy / mag
        dirY := gx / mag

        var sumR, sumG, sumB float64
        count := 0
        for t := -size; t <= size; t++ {
          sx := src.clampX(x + int(math.Round(dirX * float64(t))))
          sy := src.clampY(y + int(math.Round(dirY * float64(t))))
          sofs := src.Offset(sx, sy)
          sumR += float64(src.Pix[sofs])
          sumG += float64(src.Pix[sofs+1])
          sumB += float64(src.Pix[sofs+2])
          count++
        }

        ofs := dst.Offset(x, y)
        n := float64(count)
        dst.Pix[ofs] = clampByte(sumR / n)
        dst.Pix[ofs+1] = clampByte(sumG / n)
        dst.Pix[ofs+2] = clampByte(sumB / n)
      }
    }
    return nil
  })
  if err != nil { return nil, err }
  return dst, nil
}
