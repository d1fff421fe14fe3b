package paint

import (
  "bytes"
  "context"
  "testing"
)

func init() {
  // keep test runs single-threaded and reproducible across machines
  SetMultiThreaded(false)
}

// uniformBuffer creates a buffer filled with a single opaque color.
func uniformBuffer(width, height int, r, g, b byte) *Buffer {
  buf := NewBuffer(width, height)
  for i := 0; i < len(buf.Pix); i += 4 {
    buf.Pix[i] = r
    buf.Pix[i+1] = g
    buf.Pix[i+2] = b
    buf.Pix[i+3] = 255
  }
  return buf
}

// patternBuffer creates a buffer with a deterministic per-pixel color pattern.
func patternBuffer(width, height int) *Buffer {
  buf := NewBuffer(width, height)
  for y := 0; y < height; y++ {
    for x := 0; x < width; x++ {
      ofs := buf.Offset(x, y)
      buf.Pix[ofs] = byte((x * 17) ^ (y * 31))
      buf.Pix[ofs+1] = byte(x * 43 + y * 13)
      buf.Pix[ofs+2] = byte((x * 7) ^ (y * 11))
      buf.Pix[ofs+3] = 255
    }
  }
  return buf
}


func TestParamsValidate(t *testing.T) {
  if err := func() error { p := DefaultParams(); return p.Validate() }(); err != nil {
    t.Fatalf("default params rejected: %v", err)
  }

  for _, tc := range []struct {
    name    string
    modify  func(p *Params)
  }{
    {"intensity low", func(p *Params) { p.Intensity = -0.1 }},
    {"intensity high", func(p *Params) { p.Intensity = 1.1 }},
    {"levels low", func(p *Params) { p.PosterizeLevels = 2 }},
    {"levels high", func(p *Params) { p.PosterizeLevels = 17 }},
    {"edges high", func(p *Params) { p.EdgeStrength = 2.0 }},
    {"brush low", func(p *Params) { p.BrushSize = 1 }},
    {"brush high", func(p *Params) { p.BrushSize = 9 }},
    {"warmth low", func(p *Params) { p.Warmth = -0.5 }},
    {"saturation high", func(p *Params) { p.Saturation = 1.5 }},
    {"texture low", func(p *Params) { p.TextureStrength = -1.0 }},
    {"detail high", func(p *Params) { p.DetailPreservation = 1.01 }},
  } {
    t.Run(tc.name, func(t *testing.T) {
      p := DefaultParams()
      tc.modify(&p)
      if err := p.Validate(); err == nil {
        t.Fatalf("expected validation error")
      }
    })
  }
}


func TestQuantizeChannel(t *testing.T) {
  // step = 255/4 = 63.75: 128/63.75 rounds to 2, 2*63.75 rounds back to 128
  if got := quantizeChannel(128, 5); got != 128 {
    t.Errorf("quantizeChannel(128, 5) = %d, want 128", got)
  }
  if got := quantizeChannel(0, 5); got != 0 {
    t.Errorf("quantizeChannel(0, 5) = %d, want 0", got)
  }
  if got := quantizeChannel(255, 5); got != 255 {
    t.Errorf("quantizeChannel(255, 5) = %d, want 255", got)
  }
  // levels=4: step=85
  if got := quantizeChannel(127, 4); got != 85 {
    t.Errorf("quantizeChannel(127, 4) = %d, want 85", got)
  }
  if got := quantizeChannel(128, 4); got != 170 {
    t.Errorf("quantizeChannel(128, 4) = %d, want 170", got)
  }
}

func TestQuantizeChannelIdempotent(t *testing.T) {
  for levels := 3; levels <= 16; levels++ {
    for v := 0; v < 256; v++ {
      q := quantizeChannel(byte(v), levels)
      if q2 := quantizeChannel(q, levels); q2 != q {
        t.Fatalf("levels=%d value=%d: quantize(quantize) = %d, want %d", levels, v, q2, q)
      }
    }
  }
}

func TestPosterizeSkinLevels(t *testing.T) {
  // (200, 150, 100) matches the RGB skin heuristic and receives levels+2 quantization levels
  if !isSkinRGB(200, 150, 100) {
    t.Fatalf("expected skin classification for (200, 150, 100)")
  }
  buf := uniformBuffer(4, 4, 200, 150, 100)
  Posterize(buf, 8, 0.5, nil)

  want := [3]byte{quantizeChannel(200, 10), quantizeChannel(150, 10), quantizeChannel(100, 10)}
  ofs := buf.Offset(1, 1)
  got := [3]byte{buf.Pix[ofs], buf.Pix[ofs+1], buf.Pix[ofs+2]}
  if got != want {
    t.Errorf("skin pixel quantized to %v, want %v", got, want)
  }
}

func TestPosterizeSkinLevelCap(t *testing.T) {
  buf := uniformBuffer(2, 2, 200, 150, 100)
  Posterize(buf, 14, 0.5, nil)
  // levels plus the skin bonus exceeds the cap of 12
  want := [3]byte{quantizeChannel(200, 12), quantizeChannel(150, 12), quantizeChannel(100, 12)}
  got := [3]byte{buf.Pix[0], buf.Pix[1], buf.Pix[2]}
  if got != want {
    t.Errorf("capped skin pixel quantized to %v, want %v", got, want)
  }
}


func TestVignetteZeroStrength(t *testing.T) {
  buf := patternBuffer(12, 9)
  ref := buf.Clone()
  Vignette(buf, 0.0)
  if !bytes.Equal(buf.Pix, ref.Pix) {
    t.Errorf("zero strength vignette modified the buffer")
  }
}

func TestVignetteDarkensCorners(t *testing.T) {
  buf := uniformBuffer(9, 9, 200, 200, 200)
  Vignette(buf, 1.0)
  corner := buf.Pix[buf.Offset(0, 0)]
  center := buf.Pix[buf.Offset(4, 4)]
  if corner >= center {
    t.Errorf("corner %d not darker than center %d", corner, center)
  }
  if a := buf.Pix[buf.Offset(0, 0) + 3]; a != 255 {
    t.Errorf("vignette modified alpha: %d", a)
  }
}


func TestOilPaintConstantColor(t *testing.T) {
  buf := uniformBuffer(16, 16, 90, 120, 200)
  out, err := OilPaint(buf, 4, nil)
  if err != nil {
    t.Fatalf("OilPaint: %v", err)
  }
  if !bytes.Equal(out.Pix, buf.Pix) {
    t.Errorf("constant color image changed by oil paint filter")
  }
}


func TestBrushstrokeBorder(t *testing.T) {
  buf := patternBuffer(16, 12)
  out, err := Brushstroke(buf, 4)
  if err != nil {
    t.Fatalf("Brushstroke: %v", err)
  }
  for x := 0; x < 16; x++ {
    for _, y := range []int{0, 11} {
      ofs := buf.Offset(x, y)
      for ch := 0; ch < 4; ch++ {
        if out.Pix[ofs+ch] != buf.Pix[ofs+ch] {
          t.Fatalf("border pixel (%d, %d) channel %d modified", x, y, ch)
        }
      }
    }
  }
}

func TestBrushstrokeTinyImage(t *testing.T) {
  buf := patternBuffer(2, 2)
  out, err := Brushstroke(buf, 4)
  if err != nil {
    t.Fatalf("Brushstroke: %v", err)
  }
  if !bytes.Equal(out.Pix, buf.Pix) {
    t.Errorf("tiny image not passed through unmodified")
  }
}


func TestGradeColorsStaysInRange(t *testing.T) {
  // every luminance band and category must come out with hue, saturation and lightness
  // wrapped or clamped to [0, 1], and the alpha channel untouched
  buf := patternBuffer(32, 32)
  GradeColors(buf, 1.0, 1.0, nil)
  for i := 0; i < len(buf.Pix); i += 4 {
    h, s, l := RGBToHSL(buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2])
    if h < 0.0 || h > 1.0 || s < 0.0 || s > 1.0 || l < 0.0 || l > 1.0 {
      t.Fatalf("pixel %d graded out of range: h=%v s=%v l=%v", i/4, h, s, l)
    }
    if buf.Pix[i+3] != 255 {
      t.Fatalf("alpha modified at index %d", i+3)
    }
  }
}

func TestGradeColorsEmptyRegionList(t *testing.T) {
  // an empty region list must behave exactly like no region list at all
  a := patternBuffer(16, 16)
  b := patternBuffer(16, 16)
  GradeColors(a, 0.8, 0.5, nil)
  GradeColors(b, 0.8, 0.5, []Region{})
  if !bytes.Equal(a.Pix, b.Pix) {
    t.Errorf("empty region list grades differently from nil")
  }
}

func TestGradeColorsPortraitDampen(t *testing.T) {
  // a face box covering more than a quarter of the raster dampens the warmth treatment
  small := []Region{{X: 0, Y: 0, Width: 2, Height: 2}}
  large := []Region{{X: 0, Y: 0, Width: 8, Height: 8}}

  a := uniformBuffer(8, 8, 50, 200, 100)
  b := uniformBuffer(8, 8, 50, 200, 100)
  GradeColors(a, 1.0, 0.5, small)
  GradeColors(b, 1.0, 0.5, large)

  // pixel (0, 0) lies inside a face region in both runs, only the dampen factor differs
  if bytes.Equal(a.Pix[:3], b.Pix[:3]) {
    t.Errorf("dampened and undampened grading produced identical results: %v", a.Pix[:3])
  }
}


func TestBlendBuffers(t *testing.T) {
  buf := uniformBuffer(4, 4, 200, 100, 50)
  base := uniformBuffer(4, 4, 0, 0, 0)

  full := buf.Clone()
  BlendBuffers(full, base, 1.0)
  if !bytes.Equal(full.Pix, buf.Pix) {
    t.Errorf("weight 1.0 altered the buffer")
  }

  none := buf.Clone()
  BlendBuffers(none, base, 0.0)
  if !bytes.Equal(none.Pix, base.Pix) {
    t.Errorf("weight 0.0 did not restore the base")
  }

  half := buf.Clone()
  BlendBuffers(half, base, 0.5)
  if half.Pix[0] != 100 {
    t.Errorf("weight 0.5 red channel = %d, want 100", half.Pix[0])
  }
}


func TestRegionHelpers(t *testing.T) {
  r := Region{X: 2, Y: 3, Width: 4, Height: 5}
  if !r.Contains(2, 3) || !r.Contains(5, 7) {
    t.Errorf("region does not contain its own corners")
  }
  if r.Contains(6, 3) || r.Contains(2, 8) {
    t.Errorf("region contains points outside its bounds")
  }
  if r.Area() != 20 {
    t.Errorf("Area() = %d, want 20", r.Area())
  }

  scaled := r.Scale(0.5)
  if scaled.X != 1 || scaled.Y != 1 || scaled.Width != 2 || scaled.Height != 2 {
    t.Errorf("Scale(0.5) = %+v", scaled)
  }

  if got := ScaleRegions([]Region{r}, 1.0); len(got) != 1 || got[0] != r {
    t.Errorf("ScaleRegions with ratio 1.0 altered the input: %+v", got)
  }
}

func TestSkinHeuristics(t *testing.T) {
  for _, tc := range []struct {
    name      string
    r, g, b   byte
    want      bool
  }{
    {"light skin", 220, 170, 130, true},
    {"dark skin", 120, 80, 60, true},
    {"gray", 128, 128, 128, false},
    {"blue", 40, 60, 200, false},
    {"near white", 250, 245, 240, false},
  } {
    t.Run(tc.name, func(t *testing.T) {
      if got := isSkinRGB(tc.r, tc.g, tc.b); got != tc.want {
        t.Errorf("isSkinRGB(%d, %d, %d) = %v, want %v", tc.r, tc.g, tc.b, got, tc.want)
      }
    })
  }
}


func TestColorspaceRoundTrip(t *testing.T) {
  for _, c := range [][3]byte{
    {0, 0, 0}, {255, 255, 255}, {255, 0, 0}, {0, 255, 0}, {0, 0, 255},
    {200, 150, 100}, {12, 200, 97}, {128, 128, 128},
  } {
    h, s, l := RGBToHSL(c[0], c[1], c[2])
    r, g, b := hslToBytes(h, s, l)
    const tolerance = 1
    if absInt(int(r) - int(c[0])) > tolerance || absInt(int(g) - int(c[1])) > tolerance || absInt(int(b) - int(c[2])) > tolerance {
      t.Errorf("round trip %v -> (%d, %d, %d)", c, r, g, b)
    }
  }
}

func absInt(v int) int {
  if v < 0 { return -v }
  return v
}

func TestCategorize(t *testing.T) {
  for _, tc := range []struct {
    name  string
    h, s  float64
    want  HueCategory
  }{
    {"neutral gray", 0.0, 0.05, HUE_NEUTRAL},
    {"green", 0.3, 0.8, HUE_GREEN},
    {"blue", 0.62, 0.8, HUE_BLUE},
  } {
    t.Run(tc.name, func(t *testing.T) {
      if got := Categorize(tc.h, tc.s); got != tc.want {
        t.Errorf("Categorize(%v, %v) = %v, want %v", tc.h, tc.s, got, tc.want)
      }
    })
  }
}


func TestCreateFilter(t *testing.T) {
  for _, name := range []string{"bilateral", "oilpaint", "brush", "detail", "posterize", "grade", "edges", "texture", "vignette"} {
    f := CreateFilter(name)
    if f == nil {
      t.Fatalf("CreateFilter(%q) returned nil", name)
    }
    if f.GetName() != name {
      t.Errorf("filter name = %q, want %q", f.GetName(), name)
    }
  }
  if f := CreateFilter("does-not-exist"); f != nil {
    t.Errorf("unknown filter name returned %v", f)
  }
}

func TestFilterOptionValidation(t *testing.T) {
  f := CreateFilter("posterize")
  if err := f.SetOption("levels", "12"); err != nil {
    t.Fatalf("valid option rejected: %v", err)
  }
  if err := f.SetOption("levels", "99"); err == nil {
    t.Errorf("out of range option accepted")
  }
  if err := f.SetOption("levels", "abc"); err == nil {
    t.Errorf("non-numeric option accepted")
  }
}

func TestApplyFilters(t *testing.T) {
  params := DefaultParams()
  buf := patternBuffer(8, 8)
  f := CreateFilter("vignette")
  f.SetOption("strength", "0.0")

  out, err := ApplyFilters(buf, []PaintFilter{f}, &params)
  if err != nil {
    t.Fatalf("ApplyFilters: %v", err)
  }
  if !bytes.Equal(out.Pix, buf.Pix) {
    t.Errorf("no-op filter chain altered the buffer")
  }
}


func TestPipelineInvalidParams(t *testing.T) {
  params := DefaultParams()
  params.BrushSize = 99
  p := NewPipeline(params)
  if p.Error() == nil {
    t.Fatalf("expected error state for invalid parameters")
  }
  if _, err := p.Run(context.Background(), uniformBuffer(4, 4, 128, 128, 128)); err == nil {
    t.Errorf("Run succeeded despite error state")
  }
}

func TestPipelineEmptyInput(t *testing.T) {
  p := NewPipeline(DefaultParams())
  if _, err := p.Run(context.Background(), nil); err == nil {
    t.Errorf("Run accepted a nil buffer")
  }
}

func TestPipelineCancellation(t *testing.T) {
  ctx, cancel := context.WithCancel(context.Background())
  cancel()
  p := NewPipeline(DefaultParams())
  if _, err := p.Run(ctx, uniformBuffer(8, 8, 128, 128, 128)); err == nil {
    t.Errorf("Run ignored a cancelled context")
  }
}

func TestPipelineDeterministic(t *testing.T) {
  src := patternBuffer(16, 16)
  run := func() *Buffer {
    p := NewPipeline(DefaultParams())
    out, err := p.Run(context.Background(), src)
    if err != nil {
      t.Fatalf("Run: %v", err)
    }
    return out
  }
  a, b := run(), run()
  if !bytes.Equal(a.Pix, b.Pix) {
    t.Errorf("two identical runs produced different output")
  }
}

func TestPipelinePreservesInput(t *testing.T) {
  src := patternBuffer(16, 16)
  ref := src.Clone()
  p := NewPipeline(DefaultParams())
  out, err := p.Run(context.Background(), src)
  if err != nil {
    t.Fatalf("Run: %v", err)
  }
  if !bytes.Equal(src.Pix, ref.Pix) {
    t.Errorf("Run modified the input buffer")
  }
  if out.Width() != src.Width() || out.Height() != src.Height() {
    t.Errorf("output dimensions %dx%d, want %dx%d", out.Width(), out.Height(), src.Width(), src.Height())
  }
}

func TestPipelineUniformGray(t *testing.T) {
  // a small uniform mid-gray image with default parameters at full intensity must come out
  // uniform gray again, with no radial or directional artifacts
  params := DefaultParams()
  params.Intensity = 1.0
  p := NewPipeline(params)
  out, err := p.Run(context.Background(), uniformBuffer(4, 4, 128, 128, 128))
  if err != nil {
    t.Fatalf("Run: %v", err)
  }
  r, g, b := out.Pix[0], out.Pix[1], out.Pix[2]
  if r != g || g != b {
    t.Errorf("gray input left the gray axis: (%d, %d, %d)", r, g, b)
  }
  for y := 0; y < 4; y++ {
    for x := 0; x < 4; x++ {
      ofs := out.Offset(x, y)
      if out.Pix[ofs] != r || out.Pix[ofs+1] != g || out.Pix[ofs+2] != b {
        t.Fatalf("pixel (%d, %d) = (%d, %d, %d) differs from (0, 0) = (%d, %d, %d)",
                 x, y, out.Pix[ofs], out.Pix[ofs+1], out.Pix[ofs+2], r, g, b)
      }
    }
  }
}

func TestPipelineProgressMonotonic(t *testing.T) {
  p := NewPipeline(DefaultParams())
  last := -1.0
  p.SetProgressFunc(func(label string, fraction float64) {
    if fraction < last {
      t.Errorf("fraction decreased: %v after %v (%s)", fraction, last, label)
    }
    last = fraction
  })
  if _, err := p.Run(context.Background(), uniformBuffer(16, 16, 128, 128, 128)); err != nil {
    t.Fatalf("Run: %v", err)
  }
  if last != 1.0 {
    t.Errorf("final progress fraction = %v, want 1.0", last)
  }
}
