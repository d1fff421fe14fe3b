package paint
// Implements the reduced-cost frame renderer used for real-time video playback.

import (
  "image"
  "math"

  "golang.org/x/image/draw"
)

const (
  // Linear working scale of the video path. Frames are processed at reduced resolution and
  // upsampled onto the full-resolution canvas afterwards.
  videoWorkScale = 0.55

  // Luminance gradient threshold of the video edge pass. Comparisons run on squared values,
  // deferring the square root per candidate pixel.
  videoEdgeThreshold  = 42.0
  videoEdgeDarkening  = 0.75

  videoHazeAmount     = 0.04
  videoVignetteAmount = 0.25
)

// FrameRenderer is the fast path for video frames. It trades fidelity for throughput: no
// bilateral or brushstroke pass, a single inlined per-pixel recombination of the quantize,
// grade and palette stages, and fixed compositing operators on the upsampled result.
// A renderer instance is driven by a playback clock; a render call is skipped, not queued,
// while a previous render for the same timestamp has not been retired.
type FrameRenderer struct {
  params     Params
  mapper     ColorMapper
  lastStamp  float64
  pending    bool
}

// NewFrameRenderer creates a frame renderer for the given parameter set.
func NewFrameRenderer(params Params) *FrameRenderer {
  return &FrameRenderer{params: params}
}

// SetColorMapper attaches a palette mapper to the renderer. A nil mapper disables palette
// matching in the inline pass.
func (fr *FrameRenderer) SetColorMapper(m ColorMapper) {
  fr.mapper = m
}

// SetRegions replaces the face region hints, rescaled by the given detection ratio.
func (fr *FrameRenderer) SetRegions(regions []Region, ratio float64) {
  fr.params.Regions = ScaleRegions(regions, ratio)
}

// Retire marks the most recent rendered frame as consumed, allowing a new render for the same
// timestamp to fire.
func (fr *FrameRenderer) Retire() {
  fr.pending = false
}

// RenderFrame renders one stylized video frame and returns it together with a flag indicating
// whether the render fired. A render is skipped when the previous render for this timestamp has
// not been retired yet. The input frame is not modified.
func (fr *FrameRenderer) RenderFrame(frame *Buffer, stamp float64) (*Buffer, bool) {
  if fr.pending && stamp == fr.lastStamp { return nil, false }
  fr.lastStamp = stamp
  fr.pending = true

  width, height := frame.Width(), frame.Height()
  sw := int(float64(width) * videoWorkScale)
  sh := int(float64(height) * videoWorkScale)
  if sw < 1 { sw = 1 }
  if sh < 1 { sh = 1 }

  small := scaleBuffer(frame, sw, sh)
  fr.fastPass(small)
  out := scaleBuffer(small, width, height)

  fr.composite(out)

  if len(fr.params.Regions) > 0 {
    out = fr.separateSubject(out, frame)
  }
  return out, true
}

// Used internally. The inlined per-pixel stage sequence of the video path: 3x3 blur, luminance
// band color shift, quantization, S-curve contrast and palette match, followed by a squared
// gradient edge darkening pass.
func (fr *FrameRenderer) fastPass(buf *Buffer) {
  width, height := buf.Width(), buf.Height()
  src := buf.Clone()
  levels := fr.params.PosterizeLevels

  lum := make([]float64, width * height)

  for y := 0; y < height; y++ {
    for x := 0; x < width; x++ {
      // 3x3 blur
      var sumR, sumG, sumB float64
      for dy := -1; dy <= 1; dy++ {
        sy := src.clampY(y + dy)
        for dx := -1; dx <= 1; dx++ {
          sofs := src.Offset(src.clampX(x + dx), sy)
          sumR += float64(src.Pix[sofs])
          sumG += float64(src.Pix[sofs+1])
          sumB += float64(src.Pix[sofs+2])
        }
      }
      r := sumR / 9.0
      g := sumG / 9.0
      b := sumB / 9.0

      // luminance band color shift
      l := 0.299 * r + 0.587 * g + 0.114 * b
      switch {
        case l < 80.0:
          r *= 0.96; b *= 1.06
        case l < 180.0:
          r *= 1.05; g *= 1.01; b *= 0.95
        default:
          r *= 1.03; b *= 0.94
      }

      // quantize and S-curve contrast
      rb := quantizeChannel(clampByte(r), levels)
      gb := quantizeChannel(clampByte(g), levels)
      bb := quantizeChannel(clampByte(b), levels)
      r = sCurve(float64(rb))
      g = sCurve(float64(gb))
      b = sCurve(float64(bb))

      ofs := buf.Offset(x, y)
      buf.Pix[ofs] = clampByte(r)
      buf.Pix[ofs+1] = clampByte(g)
      buf.Pix[ofs+2] = clampByte(b)

      if fr.mapper != nil {
        mr, mg, mb := fr.mapper.MapPixel(x, y, buf.Pix[ofs], buf.Pix[ofs+1], buf.Pix[ofs+2])
        buf.Pix[ofs], buf.Pix[ofs+1], buf.Pix[ofs+2] = mr, mg, mb
      }

      lum[y*width+x] = l
    }
  }

  // edge darkening on the blurred luminance plane; squared magnitudes only
  thr2 := videoEdgeThreshold * videoEdgeThreshold
  for y := 1; y < height - 1; y++ {
    for x := 1; x < width - 1; x++ {
      gx := lum[y*width+x+1] - lum[y*width+x-1]
      gy := lum[(y+1)*width+x] - lum[(y-1)*width+x]
      if gx * gx + gy * gy <= thr2 { continue }
      ofs := buf.Offset(x, y)
      buf.Pix[ofs] = clampByte(float64(buf.Pix[ofs]) * videoEdgeDarkening)
      buf.Pix[ofs+1] = clampByte(float64(buf.Pix[ofs+1]) * videoEdgeDarkening)
      buf.Pix[ofs+2] = clampByte(float64(buf.Pix[ofs+2]) * videoEdgeDarkening)
    }
  }
}

// Used internally. Fixed compositing operators on the upsampled frame: haze, split-tone and
// vignette.
func (fr *FrameRenderer) composite(buf *Buffer) {
  width, height := buf.Width(), buf.Height()
  for y := 0; y < height; y++ {
    for x := 0; x < width; x++ {
      ofs := buf.Offset(x, y)
      r := float64(buf.Pix[ofs])
      g := float64(buf.Pix[ofs+1])
      b := float64(buf.Pix[ofs+2])

      // haze
      r += (255.0 - r) * videoHazeAmount
      g += (255.0 - g) * videoHazeAmount
      b += (255.0 - b) * videoHazeAmount

      // split-tone: teal shadows, warm highlights
      l := 0.299 * r + 0.587 * g + 0.114 * b
      if l < 128.0 {
        t := 1.0 - l / 128.0
        g += 3.0 * t
        b += 6.0 * t
      } else {
        t := (l - 128.0) / 127.0
        r += 6.0 * t
        g += 2.0 * t
      }

      buf.Pix[ofs] = clampByte(r)
      buf.Pix[ofs+1] = clampByte(g)
      buf.Pix[ofs+2] = clampByte(b)
    }
  }
  Vignette(buf, videoVignetteAmount)
}

// Used internally. Composites the stylized frame over a softly blurred background variant,
// using a feathered elliptical subject mask covering head, shoulders and torso, to visually
// separate the subject from the backdrop.
func (fr *FrameRenderer) separateSubject(styled, frame *Buffer) *Buffer {
  width, height := styled.Width(), styled.Height()
  mask := make([]float64, width * height)

  for _, reg := range fr.params.Regions {
    cx := float64(reg.X) + float64(reg.Width) / 2.0
    cy := float64(reg.Y) + float64(reg.Height) / 2.0
    w := float64(reg.Width)
    h := float64(reg.Height)

    fillEllipse(mask, width, height, cx, cy, w * 0.62, h * 0.7)                 // head
    fillEllipse(mask, width, height, cx, cy + h * 0.9, w * 1.15, h * 0.55)      // shoulders
    fillEllipse(mask, width, height, cx, cy + h * 1.8, w * 1.5, h * 1.1)        // torso
  }

  feather := width / 24
  if feather < 4 { feather = 4 }
  mask = gaussPlane(mask, width, height, feather)

  background := BoxBlur(fr.gradeBackground(styled), 4)

  out := NewBuffer(width, height)
  for i := 0; i < width * height; i++ {
    m := clampUnit(mask[i])
    inv := 1.0 - m
    out.Pix[i*4] = clampByte(float64(styled.Pix[i*4]) * m + float64(background.Pix[i*4]) * inv)
    out.Pix[i*4+1] = clampByte(float64(styled.Pix[i*4+1]) * m + float64(background.Pix[i*4+1]) * inv)
    out.Pix[i*4+2] = clampByte(float64(styled.Pix[i*4+2]) * m + float64(background.Pix[i*4+2]) * inv)
    out.Pix[i*4+3] = frame.Pix[i*4+3]
  }
  return out
}

// Used internally. Produces the slightly desaturated background variant of a styled frame.
func (fr *FrameRenderer) gradeBackground(styled *Buffer) *Buffer {
  out := styled.Clone()
  for i := 0; i < len(out.Pix); i += 4 {
    r := float64(out.Pix[i])
    g := float64(out.Pix[i+1])
    b := float64(out.Pix[i+2])
    l := 0.299 * r + 0.587 * g + 0.114 * b
    out.Pix[i] = clampByte(r * 0.8 + l * 0.2)
    out.Pix[i+1] = clampByte(g * 0.8 + l * 0.2)
    out.Pix[i+2] = clampByte(b * 0.8 + l * 0.2)
  }
  return out
}

// fillEllipse marks the interior of an axis-aligned ellipse in the mask plane.
func fillEllipse(mask []float64, width, height int, cx, cy, rx, ry float64) {
  if rx <= 0.0 || ry <= 0.0 { return }
  y0 := int(math.Max(0, cy - ry))
  y1 := int(math.Min(float64(height - 1), cy + ry))
  x0 := int(math.Max(0, cx - rx))
  x1 := int(math.Min(float64(width - 1), cx + rx))

  for y := y0; y <= y1; y++ {
    dy := (float64(y) - cy) / ry
    for x := x0; x <= x1; x++ {
      dx := (float64(x) - cx) / rx
      if dx * dx + dy * dy <= 1.0 {
        mask[y*width+x] = 1.0
      }
    }
  }
}

// sCurve applies a Hermite contrast curve to a channel value in range [0, 255], blended at half
// strength with the input.
func sCurve(v float64) float64 {
  f := v / 255.0
  f = f * f * (3.0 - 2.0 * f)
  return v * 0.5 + f * 255.0 * 0.5
}

// scaleBuffer resizes a buffer to the given dimensions using bilinear interpolation.
func scaleBuffer(src *Buffer, width, height int) *Buffer {
  if width == src.Width() && height == src.Height() { return src.Clone() }
  img := src.ToImage()
  dst := image.NewNRGBA(image.Rect(0, 0, width, height))
  draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
  out := &Buffer{width: width, height: height, Pix: make([]byte, len(dst.Pix))}
  copy(out.Pix, dst.Pix)
  return out
}
