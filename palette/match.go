package palette
// Implements the luminance-weighted nearest-color search with warmth bias and dithering, and
// the palette auto-detection scoring.

import (
  "github.com/InfinityTools/paintcreator/paint"
)

// Matching distance weights. Luminance dominates the search; raw channel differences and the
// warmth bias act as tie breakers.
const (
  weightLuminance = 3.0
  weightChannels  = 0.4
  weightWarmth    = 0.08

  // Separation threshold of the dithering decision. When the nearest swatch separates clearly
  // from the runner-up the match is deterministic; contested matches dither between both to
  // break hard banding at palette boundaries.
  ditherThreshold = 0.88
  ditherGain      = 1.5
  ditherMaxChance = 0.5
)

// MatchColor returns the indices of the best and second-best swatch for the given color along
// with their distances. The second index is -1 for single-entry palettes.
func (p *Palette) MatchColor(r, g, b byte) (best, second int, bestDist, secondDist float64) {
  lum := paint.Luminance(r, g, b)
  desiredWarmth := (lum / 255.0 - 0.4) * 80.0

  best, second = -1, -1
  bestDist, secondDist = 0.0, 0.0
  for i, s := range p.swatches {
    dl := lum - s.Luminance
    dr := float64(r) - float64(s.R)
    dg := float64(g) - float64(s.G)
    db := float64(b) - float64(s.B)
    dw := s.Warmth - desiredWarmth

    dist := weightLuminance * dl * dl +
            weightChannels * (dr * dr + dg * dg + db * db) +
            weightWarmth * dw * dw

    if best < 0 || dist < bestDist {
      second, secondDist = best, bestDist
      best, bestDist = i, dist
    } else if second < 0 || dist < secondDist {
      second, secondDist = i, dist
    }
  }
  return
}

// MapPixel maps the pixel at (x, y) onto the palette and returns the selected swatch color.
// The selection is fully deterministic: contested matches draw their dithering decision from a
// hash of pixel position and input color rather than a stateful random source, so identical
// inputs always produce identical outputs.
func (p *Palette) MapPixel(x, y int, r, g, b byte) (byte, byte, byte) {
  best, second, bestDist, secondDist := p.MatchColor(r, g, b)
  if best < 0 { return r, g, b }

  pick := p.swatches[best]
  if second >= 0 && secondDist > 0.0 {
    // closeness 1.0 means the nearest swatch separates perfectly (e.g. an exact color match);
    // closeness 0.0 means both candidates are equally distant
    closeness := 1.0 - bestDist / secondDist
    if closeness <= ditherThreshold {
      chance := (ditherThreshold - closeness) * ditherGain
      if chance > ditherMaxChance { chance = ditherMaxChance }
      if hashUnit(x, y, r, g, b) < chance {
        pick = p.swatches[second]
      }
    }
  }
  return pick.R, pick.G, pick.B
}


// Used internally. Derives a deterministic pseudo-random value in [0, 1) from pixel position
// and color, using 32-bit FNV-1a.
func hashUnit(x, y int, r, g, b byte) float64 {
  const (
    fnvOffset = 2166136261
    fnvPrime  = 16777619
  )
  h := uint32(fnvOffset)
  for _, v := range [...]byte{byte(x), byte(x >> 8), byte(y), byte(y >> 8), r, g, b} {
    h ^= uint32(v)
    h *= fnvPrime
  }
  return float64(h) / 4294967296.0
}


// Auto-detection samples roughly this many pixels across the shorter image dimension.
const autoDetectSamples = 120

// Score rates how well the palette fits the given buffer: the mean squared unweighted RGB
// distance from each sampled pixel to its nearest swatch. Lower is better. Samples lie on a
// regular grid; the stride is chosen from the shorter buffer dimension.
func (p *Palette) Score(buf *paint.Buffer) float64 {
  width, height := buf.Width(), buf.Height()
  shorter := width
  if height < shorter { shorter = height }
  stride := shorter / autoDetectSamples
  if stride < 1 { stride = 1 }

  var total float64
  samples := 0
  for y := 0; y < height; y += stride {
    for x := 0; x < width; x += stride {
      ofs := buf.Offset(x, y)
      r := float64(buf.Pix[ofs])
      g := float64(buf.Pix[ofs+1])
      b := float64(buf.Pix[ofs+2])

      nearest := -1.0
      for _, s := range p.swatches {
        dr := r - float64(s.R)
        dg := g - float64(s.G)
        db := b - float64(s.B)
        d := dr * dr + dg * dg + db * db
        if nearest < 0.0 || d < nearest { nearest = d }
      }
      if nearest >= 0.0 {
        total += nearest
        samples++
      }
    }
  }
  if samples == 0 { return 0.0 }
  return total / float64(samples)
}

// AutoDetect picks the candidate palette with the lowest score for the given buffer. Returns
// nil when no candidates are supplied.
func AutoDetect(buf *paint.Buffer, candidates []*Palette) *Palette {
  var pick *Palette
  bestScore := 0.0
  for _, p := range candidates {
    score := p.Score(buf)
    if pick == nil || score < bestScore {
      pick = p
      bestScore = score
    }
  }
  return pick
}
