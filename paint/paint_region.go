package paint
// Defines face region hints and the skin detection heuristics shared by several filter stages.

// Region is an axis-aligned rectangle in buffer pixel coordinates, supplied by an external
// face detector as a non-owning hint. Regions may overlap; stages use first-match containment.
type Region struct {
  X       int
  Y       int
  Width   int
  Height  int
}

// Contains reports whether pixel (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
  return x >= r.X && x < r.X + r.Width && y >= r.Y && y < r.Y + r.Height
}

// Area returns the region area in pixels. Degenerate rectangles yield 0.
func (r Region) Area() int {
  if r.Width <= 0 || r.Height <= 0 { return 0 }
  return r.Width * r.Height
}

// Scale returns the region rescaled by the given ratio, e.g. the ratio between detection-time
// and processing-time raster dimensions.
func (r Region) Scale(ratio float64) Region {
  return Region{
    X:      int(float64(r.X) * ratio + 0.5),
    Y:      int(float64(r.Y) * ratio + 0.5),
    Width:  int(float64(r.Width) * ratio + 0.5),
    Height: int(float64(r.Height) * ratio + 0.5),
  }
}

// ScaleRegions rescales a list of regions by the given ratio. A ratio of 1.0 returns a plain copy.
func ScaleRegions(regions []Region, ratio float64) []Region {
  out := make([]Region, len(regions))
  for i, r := range regions {
    if ratio == 1.0 {
      out[i] = r
    } else {
      out[i] = r.Scale(ratio)
    }
  }
  return out
}

// regionAt reports whether pixel (x, y) lies inside any of the given regions. The check stops
// at the first match.
func regionAt(regions []Region, x, y int) bool {
  for _, r := range regions {
    if r.Contains(x, y) { return true }
  }
  return false
}

// regionAreaFraction returns the summed region area relative to the total pixel count of a
// width x height raster. Overlapping regions are summed, not unioned.
func regionAreaFraction(regions []Region, width, height int) float64 {
  total := width * height
  if total <= 0 { return 0.0 }
  area := 0
  for _, r := range regions {
    area += r.Area()
  }
  return float64(area) / float64(total)
}

// isSkinRGB is the posterizer's skin heuristic operating directly on RGB channels.
func isSkinRGB(r, g, b byte) bool {
  return r > g && g > b && int(r) - int(b) > 30 && r > 80 && r < 240
}

// isSkinHSL is the color grader's skin heuristic. It combines an HSL check against the warm
// wrap-around hue band with RGB channel relations.
func isSkinHSL(r, g, b byte, h, s, l float64) bool {
  if l <= 0.15 || l >= 0.9 { return false }
  if s <= 0.1 { return false }
  // warm hue band wraps around zero
  if h > 0.14 && h < 0.95 { return false }
  return r > g && r > b && int(r) - int(g) > 10
}
