package palette

import (
  "testing"

  "github.com/InfinityTools/paintcreator/paint"
)

// uniformBuffer creates a paint buffer filled with a single opaque color.
func uniformBuffer(width, height int, r, g, b byte) *paint.Buffer {
  buf := paint.NewBuffer(width, height)
  for i := 0; i < len(buf.Pix); i += 4 {
    buf.Pix[i] = r
    buf.Pix[i+1] = g
    buf.Pix[i+2] = b
    buf.Pix[i+3] = 255
  }
  return buf
}

func testPalette(t *testing.T, entries ...string) *Palette {
  t.Helper()
  p, err := FromHex("test", entries)
  if err != nil {
    t.Fatalf("FromHex: %v", err)
  }
  return p
}


func TestMatchColorOrdering(t *testing.T) {
  p := testPalette(t, "#000000", "#808080", "#ffffff")
  best, second, bestDist, secondDist := p.MatchColor(10, 10, 10)
  if best != 0 {
    t.Errorf("best = %d, want 0", best)
  }
  if second != 1 {
    t.Errorf("second = %d, want 1", second)
  }
  if bestDist > secondDist {
    t.Errorf("bestDist %v > secondDist %v", bestDist, secondDist)
  }
}

func TestMatchColorSingleSwatch(t *testing.T) {
  p := testPalette(t, "#804020")
  best, second, _, _ := p.MatchColor(128, 128, 128)
  if best != 0 {
    t.Errorf("best = %d, want 0", best)
  }
  if second != -1 {
    t.Errorf("second = %d, want -1", second)
  }
}

func TestMapPixelExactSwatch(t *testing.T) {
  // an exact color match separates perfectly and must never dither
  p := testPalette(t, "#000000", "#804020", "#ffffff")
  for y := 0; y < 32; y++ {
    for x := 0; x < 32; x++ {
      r, g, b := p.MapPixel(x, y, 0x80, 0x40, 0x20)
      if r != 0x80 || g != 0x40 || b != 0x20 {
        t.Fatalf("pixel (%d, %d) mapped to (%d, %d, %d)", x, y, r, g, b)
      }
    }
  }
}

func TestMapPixelDeterministic(t *testing.T) {
  p := testPalette(t, "#203040", "#405060", "#a0b0c0", "#e0e0d0")
  for y := 0; y < 16; y++ {
    for x := 0; x < 16; x++ {
      in := [3]byte{byte(x * 16), byte(y * 16), byte((x + y) * 8)}
      r1, g1, b1 := p.MapPixel(x, y, in[0], in[1], in[2])
      r2, g2, b2 := p.MapPixel(x, y, in[0], in[1], in[2])
      if r1 != r2 || g1 != g2 || b1 != b2 {
        t.Fatalf("pixel (%d, %d) not deterministic", x, y)
      }
    }
  }
}

func TestMapPixelReturnsSwatchColor(t *testing.T) {
  p := testPalette(t, "#203040", "#405060", "#a0b0c0")
  members := make(map[[3]byte]bool)
  for i := 0; i < p.Len(); i++ {
    s := p.Swatch(i)
    members[[3]byte{s.R, s.G, s.B}] = true
  }
  for y := 0; y < 8; y++ {
    for x := 0; x < 8; x++ {
      r, g, b := p.MapPixel(x, y, byte(x * 30), byte(y * 30), 128)
      if !members[[3]byte{r, g, b}] {
        t.Fatalf("pixel (%d, %d) mapped outside the palette: (%d, %d, %d)", x, y, r, g, b)
      }
    }
  }
}


func TestScoreExactColors(t *testing.T) {
  p := testPalette(t, "#804020", "#ffffff")
  buf := uniformBuffer(16, 16, 0x80, 0x40, 0x20)
  if score := p.Score(buf); score != 0.0 {
    t.Errorf("Score = %v, want 0", score)
  }
}

func TestScoreDistantColors(t *testing.T) {
  p := testPalette(t, "#000000")
  buf := uniformBuffer(16, 16, 255, 255, 255)
  want := 3.0 * 255.0 * 255.0
  if score := p.Score(buf); score != want {
    t.Errorf("Score = %v, want %v", score, want)
  }
}

func TestAutoDetect(t *testing.T) {
  matching := testPalette(t, "#804020", "#906030")
  other := testPalette(t, "#0000ff", "#00ff00")
  buf := uniformBuffer(16, 16, 0x80, 0x40, 0x20)

  pick := AutoDetect(buf, []*Palette{other, matching})
  if pick != matching {
    t.Errorf("AutoDetect picked %v", pick)
  }
}

func TestAutoDetectNoCandidates(t *testing.T) {
  buf := uniformBuffer(4, 4, 128, 128, 128)
  if pick := AutoDetect(buf, nil); pick != nil {
    t.Errorf("AutoDetect without candidates = %v, want nil", pick)
  }
}
