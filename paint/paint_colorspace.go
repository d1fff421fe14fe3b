package paint
// Provides color space conversions and hue classification used by the color-related filter stages.

import (
  "math"
)

// HueCategory is a coarse classification bucket derived from HSL hue and saturation.
// The color grader branches its treatment rules on this value.
type HueCategory int

const (
  HUE_SKIN_WARM HueCategory = iota
  HUE_YELLOW_GOLD
  HUE_GREEN
  HUE_TEAL_CYAN
  HUE_BLUE
  HUE_PURPLE
  HUE_MAGENTA_PINK
  HUE_NEUTRAL
)

// Luminance returns the perceived luminance of an RGB triple in range [0, 255].
func Luminance(r, g, b byte) float64 {
  return 0.299 * float64(r) + 0.587 * float64(g) + 0.114 * float64(b)
}

// Warmth returns the warmth measure of an RGB triple, i.e. red minus blue.
func Warmth(r, g, b byte) float64 {
  return float64(r) - float64(b)
}

// RGBToHSL converts RGB byte values into hue, saturation and lightness, each in range [0, 1].
func RGBToHSL(r, g, b byte) (h, s, l float64) {
  fr, fg, fb := float64(r) / 255.0, float64(g) / 255.0, float64(b) / 255.0
  cmin := fr; if fg < cmin { cmin = fg }; if fb < cmin { cmin = fb }
  cmax := fr; if fg > cmax { cmax = fg }; if fb > cmax { cmax = fb }
  csum := cmax + cmin
  cdelta := cmax - cmin
  cdelta2 := cdelta / 2.0

  l = csum / 2.0

  if cdelta != 0.0 {
    if l < 0.5 {
      s = cdelta / csum
    } else {
      s = cdelta / (2.0 - csum)
    }

    dr := ((cmax - fr) / 6.0 + cdelta2) / cdelta
    dg := ((cmax - fg) / 6.0 + cdelta2) / cdelta
    db := ((cmax - fb) / 6.0 + cdelta2) / cdelta

    switch cmax {
      case fr:  h = db - dg
      case fg:  h = 1.0/3.0 + dr - db
      default:  h = 2.0/3.0 + dg - dr
    }

    if h < 0.0 {
      h += 1.0
    }
    if h > 1.0 {
      h -= 1.0
    }
  }
  return
}

// HSLToRGB converts HSL values back to RGB values in range [0, 1].
func HSLToRGB(h, s, l float64) (r, g, b float64) {
  if s == 0.0 {
    r, g, b = l, l, l
  } else {
    var f2 float64
    if l < 0.5 {
      f2 = l * (1.0 + s)
    } else {
      f2 = (l + s) - (s * l)
    }
    f1 := 2.0 * l - f2
    f21sub := f2 - f1

    // red
    t := h + 1.0/3.0
    if t < 0.0 { t += 1.0 }
    if t > 1.0 { t -= 1.0 }
    switch {
      case 6.0 * t < 1.0: r = f1 + f21sub * 6.0 * t
      case 2.0 * t < 1.0: r = f2
      case 3.0 * t < 2.0: r = f1 + f21sub * (2.0/3.0 - t) * 6.0
      default:            r = f1
    }
    if r < 0.0 { r = 0.0 }
    if r > 1.0 { r = 1.0 }

    // green
    t = h
    switch {
      case 6.0 * t < 1.0: g = f1 + f21sub * 6.0 * t
      case 2.0 * t < 1.0: g = f2
      case 3.0 * t < 2.0: g = f1 + f21sub * (2.0/3.0 - t) * 6.0
      default:            g = f1
    }
    if g < 0.0 { g = 0.0 }
    if g > 1.0 { g = 1.0 }

    // blue
    t = h - 1.0/3.0
    if t < 0.0 { t += 1.0 }
    if t > 1.0 { t -= 1.0 }
    switch {
      case 6.0 * t < 1.0: b = f1 + f21sub * 6.0 * t
      case 2.0 * t < 1.0: b = f2
      case 3.0 * t < 2.0: b = f1 + f21sub * (2.0/3.0 - t) * 6.0
      default:            b = f1
    }
    if b < 0.0 { b = 0.0 }
    if b > 1.0 { b = 1.0 }
  }
  return
}

// hslToBytes converts HSL values directly into RGB byte values.
func hslToBytes(h, s, l float64) (r, g, b byte) {
  fr, fg, fb := HSLToRGB(h, s, l)
  return byte(fr * 255.0 + 0.5), byte(fg * 255.0 + 0.5), byte(fb * 255.0 + 0.5)
}

// wrapHue wraps a hue value into the circular range [0, 1).
func wrapHue(h float64) float64 {
  h = math.Mod(h, 1.0)
  if h < 0.0 { h += 1.0 }
  return h
}

// lerpHue interpolates between two hue values along the shortest arc of the circular hue domain.
func lerpHue(from, to, amount float64) float64 {
  from = wrapHue(from)
  to = wrapHue(to)
  delta := to - from
  if delta > 0.5 {
    delta -= 1.0
  } else if delta < -0.5 {
    delta += 1.0
  }
  return wrapHue(from + delta * amount)
}

// Categorize assigns a HueCategory based on hue and saturation. Colors with saturation
// below 0.08 are considered neutral regardless of hue.
func Categorize(h, s float64) HueCategory {
  if s < 0.08 { return HUE_NEUTRAL }
  deg := wrapHue(h) * 360.0
  switch {
    case deg < 40.0:   return HUE_SKIN_WARM
    case deg < 70.0:   return HUE_YELLOW_GOLD
    case deg < 150.0:  return HUE_GREEN
    case deg < 200.0:  return HUE_TEAL_CYAN
    case deg < 260.0:  return HUE_BLUE
    case deg < 290.0:  return HUE_PURPLE
    case deg < 330.0:  return HUE_MAGENTA_PINK
    default:           return HUE_SKIN_WARM  // reds wrap back into the warm band
  }
}
