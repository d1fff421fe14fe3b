package paint
// Defines the parameter set that controls one pipeline run.

import (
  "fmt"
)

// Params bundles all tunable settings of a pipeline run. A Params value is treated as
// immutable for the duration of the run.
type Params struct {
  // Intensity is the final blend weight against the unfiltered source, in range [0, 1].
  Intensity           float64
  // PosterizeLevels is the number of quantization levels per channel, in range [3, 16].
  PosterizeLevels     int
  // EdgeStrength scales the colorized outline compositing, in range [0, 1].
  EdgeStrength        float64
  // BrushSize is the directional smear length in pixels, in range [2, 8].
  BrushSize           int
  // Warmth scales the hue-aware color grading toward warm tones, in range [0, 1].
  Warmth              float64
  // Saturation scales the global saturation treatment, in range [0, 1].
  Saturation          float64
  // TextureStrength scales the procedural canvas weave overlay, in range [0, 1].
  TextureStrength     float64
  // DetailPreservation controls high-pass detail recovery and posterizer cleanup, in range [0, 1].
  DetailPreservation  float64
  // Regions holds face region hints in processing-time buffer coordinates.
  Regions             []Region
}

// DefaultParams returns the parameter set used when a job specifies nothing else.
func DefaultParams() Params {
  return Params{
    Intensity:          0.8,
    PosterizeLevels:    8,
    EdgeStrength:       0.5,
    BrushSize:          4,
    Warmth:             0.5,
    Saturation:         0.5,
    TextureStrength:    0.0,
    DetailPreservation: 0.5,
  }
}

// Validate checks all parameter ranges and returns a descriptive error for the first violation.
func (p *Params) Validate() error {
  if p.Intensity < 0.0 || p.Intensity > 1.0 {
    return fmt.Errorf("intensity not in range [0, 1]: %v", p.Intensity)
  }
  if p.PosterizeLevels < 3 || p.PosterizeLevels > 16 {
    return fmt.Errorf("posterize levels not in range [3, 16]: %d", p.PosterizeLevels)
  }
  if p.EdgeStrength < 0.0 || p.EdgeStrength > 1.0 {
    return fmt.Errorf("edge strength not in range [0, 1]: %v", p.EdgeStrength)
  }
  if p.BrushSize < 2 || p.BrushSize > 8 {
    return fmt.Errorf("brush size not in range [2, 8]: %d", p.BrushSize)
  }
  if p.Warmth < 0.0 || p.Warmth > 1.0 {
    return fmt.Errorf("warmth not in range [0, 1]: %v", p.Warmth)
  }
  if p.Saturation < 0.0 || p.Saturation > 1.0 {
    return fmt.Errorf("saturation not in range [0, 1]: %v", p.Saturation)
  }
  if p.TextureStrength < 0.0 || p.TextureStrength > 1.0 {
    return fmt.Errorf("texture strength not in range [0, 1]: %v", p.TextureStrength)
  }
  if p.DetailPreservation < 0.0 || p.DetailPreservation > 1.0 {
    return fmt.Errorf("detail preservation not in range [0, 1]: %v", p.DetailPreservation)
  }
  return nil
}
