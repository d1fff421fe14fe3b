/*
Package paint implements a deterministic, parameterized stylization pipeline that converts a
photograph or video frame into a painted rendering: softened, quantized, edge-outlined and
optionally remapped onto a curated color palette, with extra fidelity inside detected face
regions.

Paint Creator is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package paint

import (
  "context"
  "errors"
  "image"

  "github.com/InfinityTools/go-logging"
)

// Filter radius and sigma defaults of the pre-blur stage.
const (
  bilateralRadius      = 3
  bilateralSigmaSpace  = 2.0
  bilateralSigmaColor  = 30.0
)

// ProgressFunc receives a human-readable stage label and a monotonically increasing fraction
// in range [0, 1] between pipeline stages.
type ProgressFunc func(label string, fraction float64)

// ColorMapper remaps single pixels onto a fixed color set. It is implemented by the palette
// package; the pipeline itself stays agnostic of palette bookkeeping.
type ColorMapper interface {
  // MapPixel returns the mapped color for the pixel at (x, y). Implementations must be
  // deterministic for identical inputs.
  MapPixel(x, y int, r, g, b byte) (mr, mg, mb byte)
}

// Pipeline sequences all stylization stages over a pixel buffer. A Pipeline instance owns its
// buffers exclusively; independent invocations share no mutable state. The zero value is not
// usable, construct instances through NewPipeline.
type Pipeline struct {
  params    Params
  mapper    ColorMapper
  progress  ProgressFunc
  err       error
}

// NewPipeline creates a pipeline for the given parameter set. An invalid parameter set puts the
// pipeline into an error state that can be queried with Error().
func NewPipeline(params Params) *Pipeline {
  p := &Pipeline{params: params}
  if err := params.Validate(); err != nil {
    p.err = err
  }
  return p
}

// Error returns the error state of the most recent operation on the Pipeline.
func (p *Pipeline) Error() error {
  return p.err
}

// ClearError clears the error state from the last Pipeline operation. This function must be
// called for subsequent operations to work correctly.
func (p *Pipeline) ClearError() {
  p.err = nil
}

// GetParams returns the parameter set of the pipeline.
func (p *Pipeline) GetParams() Params {
  return p.params
}

// SetColorMapper attaches a palette mapper to the pipeline. A nil mapper disables the palette
// matching stage.
func (p *Pipeline) SetColorMapper(m ColorMapper) {
  p.mapper = m
}

// SetProgressFunc attaches a progress callback that is invoked between stages.
func (p *Pipeline) SetProgressFunc(fn ProgressFunc) {
  p.progress = fn
}

// SetRegions replaces the face region hints of the pipeline. The ratio parameter rescales
// regions from detection-time raster coordinates into processing-time coordinates; pass 1.0
// when both rasters have identical dimensions.
func (p *Pipeline) SetRegions(regions []Region, ratio float64) {
  p.params.Regions = ScaleRegions(regions, ratio)
}

// Used internally. Reports progress and yields to the host by honoring context cancellation
// between stages. In-flight pixel math of a single stage is not preemptible.
func (p *Pipeline) stage(ctx context.Context, label string, fraction float64) error {
  if err := ctx.Err(); err != nil { return err }
  logging.Logf("%s\n", label)
  if p.progress != nil {
    p.progress(label, fraction)
  }
  return nil
}

// Run executes the full pipeline over the given buffer and returns a new buffer of identical
// dimensions. The input buffer is never modified; a defensive copy preserves the original for
// detail recovery and the final intensity blend. Face detection failures degrade to an empty
// region list, which is a fully supported input.
func (p *Pipeline) Run(ctx context.Context, src *Buffer) (*Buffer, error) {
  if p.err != nil { return nil, p.err }
  if src == nil || src.Width() < 1 || src.Height() < 1 {
    p.err = errors.New("empty input buffer")
    return nil, p.err
  }

  original := src.Clone()
  regions := p.params.Regions
  detail := p.params.DetailPreservation
  fineEdges := detail > 0.6

  if err := p.stage(ctx, "Smoothing", 0.0); err != nil { return nil, err }
  buf, err := Bilateral(src, bilateralRadius, bilateralSigmaSpace, bilateralSigmaColor, regions)
  if err != nil { p.err = err; return nil, err }

  if err := p.stage(ctx, "Painting", 0.1); err != nil { return nil, err }
  buf, err = OilPaint(buf, p.params.BrushSize, regions)
  if err != nil { p.err = err; return nil, err }

  if err := p.stage(ctx, "Brushing", 0.25); err != nil { return nil, err }
  buf, err = Brushstroke(buf, p.params.BrushSize)
  if err != nil { p.err = err; return nil, err }

  if detail > 0.4 {
    if err := p.stage(ctx, "Recovering detail", 0.4); err != nil { return nil, err }
    RecoverDetail(buf, original, detail, regions)
  }

  if err := p.stage(ctx, "Posterizing", 0.5); err != nil { return nil, err }
  Posterize(buf, p.params.PosterizeLevels, detail, regions)

  if err := p.stage(ctx, "Grading colors", 0.6); err != nil { return nil, err }
  GradeColors(buf, p.params.Warmth, p.params.Saturation, regions)

  if p.mapper != nil {
    if err := p.stage(ctx, "Matching palette", 0.7); err != nil { return nil, err }
    applyColorMapper(buf, p.mapper)
  }

  if err := p.stage(ctx, "Outlining", 0.8); err != nil { return nil, err }
  DrawEdges(buf, p.params.EdgeStrength, detail, fineEdges)

  if err := p.stage(ctx, "Texturing", 0.88); err != nil { return nil, err }
  OverlayTexture(buf, p.params.TextureStrength)

  if err := p.stage(ctx, "Vignette", 0.92); err != nil { return nil, err }
  Vignette(buf, p.params.TextureStrength * 0.5)

  if err := p.stage(ctx, "Compositing", 0.96); err != nil { return nil, err }
  BlendBuffers(buf, original, p.params.Intensity)

  if p.progress != nil {
    p.progress("Done", 1.0)
  }
  return buf, nil
}

// RunImage is a convenience wrapper around Run for callers working with image types.
func (p *Pipeline) RunImage(ctx context.Context, img image.Image) (*image.NRGBA, error) {
  if img == nil || img.Bounds().Dx() < 1 || img.Bounds().Dy() < 1 {
    p.err = errors.New("empty input image")
    return nil, p.err
  }
  out, err := p.Run(ctx, FromImage(img))
  if err != nil { return nil, err }
  return out.ToImage(), nil
}

// BlendBuffers blends buf against base by the given weight, in place: a weight of 1 keeps buf,
// a weight of 0 restores base. This is the only step that may touch the alpha channel.
func BlendBuffers(buf, base *Buffer, weight float64) {
  if weight >= 1.0 { return }
  weight = clampUnit(weight)
  inv := 1.0 - weight
  for i := range buf.Pix {
    buf.Pix[i] = clampByte(float64(buf.Pix[i]) * weight + float64(base.Pix[i]) * inv)
  }
}

// applyColorMapper remaps every pixel of the buffer through the attached palette mapper.
func applyColorMapper(buf *Buffer, m ColorMapper) {
  width, height := buf.Width(), buf.Height()
  for y := 0; y < height; y++ {
    for x := 0; x < width; x++ {
      ofs := buf.Offset(x, y)
      r, g, b := m.MapPixel(x, y, buf.Pix[ofs], buf.Pix[ofs+1], buf.Pix[ofs+2])
      buf.Pix[ofs], buf.Pix[ofs+1], buf.Pix[ofs+2] = r, g, b
    }
  }
}
