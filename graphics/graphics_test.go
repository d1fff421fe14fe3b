package graphics

import (
  "bytes"
  "image"
  "image/color"
  "image/png"
  "testing"
)

func encodePNG(t *testing.T, width, height int) *bytes.Reader {
  t.Helper()
  img := image.NewNRGBA(image.Rect(0, 0, width, height))
  for y := 0; y < height; y++ {
    for x := 0; x < width; x++ {
      img.SetNRGBA(x, y, color.NRGBA{byte(x), byte(y), 128, 255})
    }
  }
  var out bytes.Buffer
  if err := png.Encode(&out, img); err != nil {
    t.Fatalf("png.Encode: %v", err)
  }
  return bytes.NewReader(out.Bytes())
}


func TestImportPNG(t *testing.T) {
  g := Import(encodePNG(t, 64, 48))
  if g.Error() != nil {
    t.Fatalf("Import: %v", g.Error())
  }
  if g.GetFormat() != TYPE_PNG {
    t.Errorf("format = %d, want TYPE_PNG", g.GetFormat())
  }
  if g.GetRatio() != 1.0 {
    t.Errorf("ratio = %v, want 1.0", g.GetRatio())
  }
  if b := g.GetImage().Bounds(); b.Dx() != 64 || b.Dy() != 48 {
    t.Errorf("dimensions = %dx%d, want 64x48", b.Dx(), b.Dy())
  }
  if buf := g.GetBuffer(); buf == nil || buf.Width() != 64 || buf.Height() != 48 {
    t.Errorf("buffer conversion failed")
  }
}

func TestImportAppliesCeiling(t *testing.T) {
  g := Import(encodePNG(t, 2400, 1200))
  if g.Error() != nil {
    t.Fatalf("Import: %v", g.Error())
  }
  if g.GetRatio() != 0.5 {
    t.Errorf("ratio = %v, want 0.5", g.GetRatio())
  }
  if b := g.GetImage().Bounds(); b.Dx() != 1200 || b.Dy() != 600 {
    t.Errorf("dimensions = %dx%d, want 1200x600", b.Dx(), b.Dy())
  }
}

func TestImportUnknownFormat(t *testing.T) {
  g := Import(bytes.NewReader([]byte("certainly not an image")))
  if g.Error() == nil {
    t.Fatalf("expected error for unrecognized input")
  }
  if g.GetFormat() != TYPE_UNKNOWN {
    t.Errorf("format = %d, want TYPE_UNKNOWN", g.GetFormat())
  }
  if g.GetImage() != nil {
    t.Errorf("GetImage() not nil in error state")
  }
}

func TestImportNilSource(t *testing.T) {
  if g := Import(nil); g.Error() == nil {
    t.Errorf("expected error for nil source")
  }
}


func TestExportRoundTrip(t *testing.T) {
  img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
  var out bytes.Buffer
  if err := Export(&out, img, TYPE_PNG); err != nil {
    t.Fatalf("Export: %v", err)
  }
  decoded, err := png.Decode(bytes.NewReader(out.Bytes()))
  if err != nil {
    t.Fatalf("png.Decode: %v", err)
  }
  if b := decoded.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
    t.Errorf("decoded dimensions = %dx%d, want 8x8", b.Dx(), b.Dy())
  }
}

func TestExportUnsupportedFormat(t *testing.T) {
  img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
  var out bytes.Buffer
  if err := Export(&out, img, TYPE_UNKNOWN); err == nil {
    t.Errorf("expected error for unsupported format")
  }
  if out.Len() != 0 {
    t.Errorf("unsupported export wrote %d bytes", out.Len())
  }
}

func TestExportNilArguments(t *testing.T) {
  if err := Export(nil, image.NewNRGBA(image.Rect(0, 0, 2, 2)), TYPE_PNG); err == nil {
    t.Errorf("nil writer accepted")
  }
  var out bytes.Buffer
  if err := Export(&out, nil, TYPE_PNG); err == nil {
    t.Errorf("nil image accepted")
  }
}


func TestFormatByExt(t *testing.T) {
  for _, tc := range []struct {
    ext   string
    want  int
  }{
    {".png", TYPE_PNG},
    {"png", TYPE_PNG},
    {".jpeg", TYPE_JPG},
    {"jpg", TYPE_JPG},
    {".bmp", TYPE_BMP},
    {".gif", TYPE_GIF},
    {".tiff", TYPE_UNKNOWN},
    {"", TYPE_UNKNOWN},
  } {
    if got := FormatByExt(tc.ext); got != tc.want {
      t.Errorf("FormatByExt(%q) = %d, want %d", tc.ext, got, tc.want)
    }
  }
}
