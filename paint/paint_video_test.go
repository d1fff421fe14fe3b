package paint

import (
  "bytes"
  "testing"
)

func TestFrameRendererTimestampDedup(t *testing.T) {
  fr := NewFrameRenderer(DefaultParams())
  frame := patternBuffer(16, 16)

  out, ok := fr.RenderFrame(frame, 0.0)
  if !ok || out == nil {
    t.Fatalf("first render did not fire")
  }

  // same timestamp while the previous render is still pending
  if _, ok := fr.RenderFrame(frame, 0.0); ok {
    t.Errorf("duplicate timestamp fired before Retire")
  }

  fr.Retire()
  if _, ok := fr.RenderFrame(frame, 0.0); !ok {
    t.Errorf("render did not fire after Retire")
  }
}

func TestFrameRendererAdvancingClock(t *testing.T) {
  fr := NewFrameRenderer(DefaultParams())
  frame := patternBuffer(16, 16)

  if _, ok := fr.RenderFrame(frame, 0.0); !ok {
    t.Fatalf("first render did not fire")
  }
  // an advanced clock always fires, retired or not
  if _, ok := fr.RenderFrame(frame, 1.0 / 30.0); !ok {
    t.Errorf("advanced timestamp did not fire")
  }
}

func TestFrameRendererOutputDimensions(t *testing.T) {
  fr := NewFrameRenderer(DefaultParams())
  frame := patternBuffer(20, 14)

  out, ok := fr.RenderFrame(frame, 0.0)
  if !ok {
    t.Fatalf("render did not fire")
  }
  if out.Width() != 20 || out.Height() != 14 {
    t.Errorf("output dimensions %dx%d, want 20x14", out.Width(), out.Height())
  }
}

func TestFrameRendererPreservesInput(t *testing.T) {
  fr := NewFrameRenderer(DefaultParams())
  frame := patternBuffer(16, 16)
  ref := frame.Clone()

  if _, ok := fr.RenderFrame(frame, 0.0); !ok {
    t.Fatalf("render did not fire")
  }
  if !bytes.Equal(frame.Pix, ref.Pix) {
    t.Errorf("RenderFrame modified the input frame")
  }
}

func TestFrameRendererSubjectSeparation(t *testing.T) {
  fr := NewFrameRenderer(DefaultParams())
  fr.SetRegions([]Region{{X: 8, Y: 4, Width: 8, Height: 8}}, 1.0)
  frame := patternBuffer(24, 24)

  out, ok := fr.RenderFrame(frame, 0.0)
  if !ok {
    t.Fatalf("render did not fire")
  }
  if out.Width() != 24 || out.Height() != 24 {
    t.Fatalf("output dimensions %dx%d, want 24x24", out.Width(), out.Height())
  }
  for i := 3; i < len(out.Pix); i += 4 {
    if out.Pix[i] != 255 {
      t.Fatalf("alpha modified at index %d", i)
    }
  }
}

func TestGaussPlaneFeather(t *testing.T) {
  // an impulse must spread into a symmetric falloff that peaks at the impulse position
  const size = 17
  plane := make([]float64, size * size)
  plane[8*size+8] = 1.0

  out := gaussPlane(plane, size, size, 2)
  center := out[8*size+8]
  for d := 1; d <= 4; d++ {
    left := out[8*size+8-d]
    right := out[8*size+8+d]
    if left != right {
      t.Errorf("asymmetric falloff at distance %d: %v vs %v", d, left, right)
    }
    if left >= center {
      t.Errorf("falloff at distance %d not below the peak: %v >= %v", d, left, center)
    }
  }
}

func TestFrameRendererDeterministic(t *testing.T) {
  frame := patternBuffer(16, 16)
  render := func() *Buffer {
    fr := NewFrameRenderer(DefaultParams())
    out, ok := fr.RenderFrame(frame, 0.0)
    if !ok {
      t.Fatalf("render did not fire")
    }
    return out
  }
  a, b := render(), render()
  if !bytes.Equal(a.Pix, b.Pix) {
    t.Errorf("two identical renders produced different output")
  }
}
