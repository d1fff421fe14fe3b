package paint
/*
Implements filter "grade":
Options:
- warmth: float [0.0, 1.0] (0.5)
- saturation: float [0.0, 1.0] (0.5)
*/

import (
  "fmt"
  "strings"
)

const (
  filterNameGrade = "grade"

  // Hue targets on the circular [0, 1) hue domain.
  hueTeal       = 0.49
  hueSalmon     = 0.03
  hueAmber      = 0.07
  hueWarmPink   = 0.97
  hueCoolBlue   = 0.62
  hueShadowTeal = 0.5
  hueGolden     = 0.11
  hueGold       = 0.12
  hueSage       = 0.25
  hueSlightTeal = 0.55
  hueDusty      = 0.78
  hueSlightWarm = 0.08

  // Warmth strength is dampened on close-up portraits, i.e. when the summed face box area
  // exceeds a quarter of the total pixel count.
  skinDampenFactor    = 0.78
  skinDampenThreshold = 0.25
)

type FilterGrade struct {
  options         optionsMap
  opt_warmth      string
  opt_saturation  string
}

// Register filter for use in the paint pipeline.
func init() {
  registerFilter(filterNameGrade, NewFilterGrade)
}


// Creates a new Grade filter.
func NewFilterGrade() PaintFilter {
  f := FilterGrade{options: make(optionsMap), opt_warmth: "warmth", opt_saturation: "saturation"}
  f.SetOption(f.opt_warmth, "0.5")
  f.SetOption(f.opt_saturation, "0.5")
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterGrade) GetName() string {
  return filterNameGrade
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterGrade) GetOption(key string) interface{} {
  v, ok := f.options[strings.ToLower(key)]
  if !ok { return nil }
  return v
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterGrade) SetOption(key, value string) error {
  key = strings.ToLower(key)
  switch key {
    case f.opt_warmth, f.opt_saturation:
      v, err := parseFloatRange(value, 0.0, 1.0)
      if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
      f.options[key] = v
  }
  return nil
}

// Process applies the filter effect to the specified buffer and returns the transformed buffer.
func (f *FilterGrade) Process(buf *Buffer, params *Params) (*Buffer, error) {
  warmth := f.GetOption(f.opt_warmth).(float64)
  saturation := f.GetOption(f.opt_saturation).(float64)
  out := buf.Clone()
  GradeColors(out, warmth, saturation, params.Regions)
  return out, nil
}


// gradeSkin applies the luminance-banded skin treatment and returns adjusted HSL values.
// All hue interpolation follows the shortest arc on the circular hue domain.
func gradeSkin(h, s, l, strength float64) (float64, float64, float64) {
  switch {
    case l < 0.2:
      // deep shadow leans toward teal
      h = lerpHue(h, hueTeal, 0.3 * strength)
    case l < 0.35:
      // transition band blends the teal target into salmon
      t := (l - 0.2) / 0.15
      h = lerpHue(h, lerpHue(hueTeal, hueSalmon, t), 0.35 * strength)
    case l < 0.65:
      h = lerpHue(h, hueSalmon, 0.4 * strength)
    case l < 0.85:
      h = lerpHue(h, hueAmber, 0.35 * strength)
      l += 0.03 * strength
    default:
      h = lerpHue(h, hueWarmPink, 0.3 * strength)
      s *= 0.4
  }
  return h, s, l
}

// gradeScene applies the luminance-banded non-skin treatment and returns adjusted HSL values.
func gradeScene(h, s, l, strength float64, cat HueCategory) (float64, float64, float64) {
  switch {
    case l < 0.12:
      h = lerpHue(h, hueCoolBlue, 0.3 * strength)
    case l < 0.3:
      h = lerpHue(h, hueShadowTeal, 0.25 * strength)
    case l < 0.7:
      switch cat {
        case HUE_SKIN_WARM:     h = lerpHue(h, hueAmber, 0.35 * strength)
        case HUE_YELLOW_GOLD:   h = lerpHue(h, hueGold, 0.4 * strength)
        case HUE_GREEN:         h = lerpHue(h, hueSage, 0.35 * strength)
        case HUE_TEAL_CYAN:     s *= 1.0 + 0.15 * strength
        case HUE_BLUE:          h = lerpHue(h, hueSlightTeal, 0.2 * strength)
        case HUE_PURPLE:        h = lerpHue(h, hueDusty, 0.3 * strength); s *= 0.85
        case HUE_MAGENTA_PINK:  s *= 1.0 - 0.3 * strength
        default:                h = lerpHue(h, hueSlightWarm, 0.1 * strength)
      }
    case l < 0.88:
      switch cat {
        case HUE_TEAL_CYAN, HUE_BLUE, HUE_PURPLE:
          s *= 1.0 - 0.15 * strength
        default:
          h = lerpHue(h, hueGolden, 0.3 * strength)
      }
    default:
      h = lerpHue(h, hueGolden, 0.35 * strength)
      s *= 0.35
  }
  return h, s, l
}

// GradeColors applies the hue-aware color grading to the buffer, in place. Every pixel is
// classified into a HueCategory and a skin likeness; skin and non-skin pixels receive separate
// luminance-banded treatments. A close-up portrait (summed face box area above a quarter of the
// raster) dampens the warmth strength globally. A final saturation scale of
// saturationMod*0.4+0.6 is applied after the category logic, and all HSL components are wrapped
// or clamped to [0, 1] before conversion back to RGB.
func GradeColors(buf *Buffer, warmth, saturation float64, regions []Region) {
  width, height := buf.Width(), buf.Height()

  dampen := 1.0
  if regionAreaFraction(regions, width, height) > skinDampenThreshold {
    dampen = skinDampenFactor
  }
  satScale := saturation * 0.4 + 0.6

  for y := 0; y < height; y++ {
    for x := 0; x < width; x++ {
      ofs := buf.Offset(x, y)
      r, g, b := buf.Pix[ofs], buf.Pix[ofs+1], buf.Pix[ofs+2]
      h, s, l := RGBToHSL(r, g, b)

      if regionAt(regions, x, y) || isSkinHSL(r, g, b, h, s, l) {
        h, s, l = gradeSkin(h, s, l, warmth * dampen)
      } else {
        h, s, l = gradeScene(h, s, l, warmth, Categorize(h, s))
      }

      s *= satScale

      h = wrapHue(h)
      s = clampUnit(s)
      l = clampUnit(l)
      buf.Pix[ofs], buf.Pix[ofs+1], buf.Pix[ofs+2] = hslToBytes(h, s, l)
    }
  }
}
