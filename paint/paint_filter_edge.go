package paint
/*
Implements filter "edges":
Options:
- strength: float [0.0, 1.0] (0.5)
- finedetail: bool (false)
- detail: float [0.0, 1.0] (0.5)
*/

import (
  "fmt"
  "math"
  "strings"
)

const (
  filterNameEdges = "edges"

  // Edge values at or below the threshold leave the pixel untouched.
  edgeThreshold = 0.15
  edgeAlphaGain = 2.5
)

// Outline colors chosen by the warmth of the underlying pixel.
var (
  edgeColorWarm    = [3]byte{82, 46, 28}   // dark sienna
  edgeColorCool    = [3]byte{20, 56, 60}   // dark teal
  edgeColorNeutral = [3]byte{58, 44, 38}   // dark sepia
)

type FilterEdges struct {
  options         optionsMap
  opt_strength    string
  opt_fineDetail  string
  opt_detail      string
}

// Register filter for use in the paint pipeline.
func init() {
  registerFilter(filterNameEdges, NewFilterEdges)
}


// Creates a new Edges filter.
func NewFilterEdges() PaintFilter {
  f := FilterEdges{options: make(optionsMap), opt_strength: "strength", opt_fineDetail: "finedetail", opt_detail: "detail"}
  f.SetOption(f.opt_strength, "0.5")
  f.SetOption(f.opt_fineDetail, "false")
  f.SetOption(f.opt_detail, "0.5")
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterEdges) GetName() string {
  return filterNameEdges
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterEdges) GetOption(key string) interface{} {
  v, ok := f.options[strings.ToLower(key)]
  if !ok { return nil }
  return v
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterEdges) SetOption(key, value string) error {
  key = strings.ToLower(key)
  switch key {
    case f.opt_strength, f.opt_detail:
      v, err := parseFloatRange(value, 0.0, 1.0)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
    case f.opt_fineDetail:
      v, err := parseBool(value)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
  }
  return nil
}

// Process applies the filter effect to the specified buffer and returns the transformed buffer.
func (f *FilterEdges) Process(buf *Buffer, params *Params) (*Buffer, error) {
  strength := f.GetOption(f.opt_strength).(float64)
  fineDetail := f.GetOption(f.opt_fineDetail).(bool)
  detail := f.GetOption(f.opt_detail).(float64)
  out := buf.Clone()
  DrawEdges(out, strength, detail, fineDetail)
  return out, nil
}


// edgeMap computes the normalized edge intensity map of the buffer. The map combines the Sobel
// gradient magnitude with an optional 4-neighbor Laplacian fine-detail term whose weight scales
// with the detail setting. Border pixels are left at zero. The map is normalized by the observed
// maximum; a zero maximum skips normalization.
func edgeMap(buf *Buffer, detail float64, fineDetail bool) []float64 {
  width, height := buf.Width(), buf.Height()
  gray := make([]float64, width * height)
  for i := 0; i < width * height; i++ {
    gray[i] = Luminance(buf.Pix[i*4], buf.Pix[i*4+1], buf.Pix[i*4+2])
  }

  edges := make([]float64, width * height)
  fineWeight := 0.3 + detail * 0.4
  maxVal := 0.0
  for y := 1; y < height - 1; y++ {
    for x := 1; x < width - 1; x++ {
      tl := gray[(y-1)*width+x-1]
      tc := gray[(y-1)*width+x]
      tr := gray[(y-1)*width+x+1]
      ml := gray[y*width+x-1]
      mc := gray[y*width+x]
      mr := gray[y*width+x+1]
      bl := gray[(y+1)*width+x-1]
      bc := gray[(y+1)*width+x]
      br := gray[(y+1)*width+x+1]

      gx := -tl - 2.0*ml - bl + tr + 2.0*mr + br
      gy := -tl - 2.0*tc - tr + bl + 2.0*bc + br
      v := math.Sqrt(gx*gx + gy*gy)

      if fineDetail {
        lap := tc + ml + mr + bc - 4.0*mc
        v += math.Abs(lap) * fineWeight
      }

      edges[y*width+x] = v
      if v > maxVal { maxVal = v }
    }
  }

  if maxVal > 0.0 {
    for i := range edges {
      edges[i] /= maxVal
    }
  }
  return edges
}

// DrawEdges composites colorized outlines onto the buffer, in place. Edge intensities above the
// threshold are blended with a fixed outline color chosen by the warmth of the underlying pixel:
// warm pixels receive a dark sienna outline, cool pixels a dark teal one and neutral pixels a
// dark sepia one.
func DrawEdges(buf *Buffer, strength, detail float64, fineDetail bool) {
  if strength <= 0.0 { return }
  width, height := buf.Width(), buf.Height()
  edges := edgeMap(buf, detail, fineDetail)

  for y := 0; y < height; y++ {
    for x := 0; x < width; x++ {
      e := edges[y*width+x]
      if e <= edgeThreshold { continue }

      alpha := (e - edgeThreshold) * edgeAlphaGain
      if alpha > 1.0 { alpha = 1.0 }
      alpha *= strength

      ofs := buf.Offset(x, y)
      warmth := Warmth(buf.Pix[ofs], buf.Pix[ofs+1], buf.Pix[ofs+2])
      col := edgeColorNeutral
      if warmth > 20.0 {
        col = edgeColorWarm
      } else if warmth < -20.0 {
        col = edgeColorCool
      }

      for ch := 0; ch < 3; ch++ {
        v := float64(buf.Pix[ofs+ch]) * (1.0 - alpha) + float64(col[ch]) * alpha
        buf.Pix[ofs+ch] = clampByte(v)
      }
    }
  }
}
