package paint
// Defines the pixel buffer structure shared by all filter stages.

import (
  "image"
  "image/draw"
)

// Buffer is a fixed-size raster of interleaved RGBA byte channels, row-major with origin at the top left.
// Every filter stage reads and writes Buffer instances. Alpha is passed through unchanged by all stages
// except the final compositing step.
type Buffer struct {
  width   int
  height  int
  Pix     []byte
}

// NewBuffer creates an empty buffer of the given dimensions. Dimensions are clamped to a minimum of 1.
func NewBuffer(width, height int) *Buffer {
  if width < 1 { width = 1 }
  if height < 1 { height = 1 }
  return &Buffer{width: width, height: height, Pix: make([]byte, width * height * 4)}
}

// FromImage converts an arbitrary image into a new Buffer with straight (non-premultiplied) alpha.
func FromImage(img image.Image) *Buffer {
  if img == nil { return NewBuffer(1, 1) }
  b := img.Bounds()
  nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
  draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
  buf := &Buffer{width: b.Dx(), height: b.Dy(), Pix: make([]byte, len(nrgba.Pix))}
  copy(buf.Pix, nrgba.Pix)
  return buf
}

// Width returns the buffer width in pixels.
func (buf *Buffer) Width() int {
  return buf.width
}

// Height returns the buffer height in pixels.
func (buf *Buffer) Height() int {
  return buf.height
}

// Clone returns a deep copy of the buffer. Filter stages use this to double-buffer between
// read-only input and write-only output.
func (buf *Buffer) Clone() *Buffer {
  out := &Buffer{width: buf.width, height: buf.height, Pix: make([]byte, len(buf.Pix))}
  copy(out.Pix, buf.Pix)
  return out
}

// Offset returns the index of the first channel of pixel (x, y) within Pix.
func (buf *Buffer) Offset(x, y int) int {
  return (y * buf.width + x) * 4
}

// ToImage converts the buffer back into an image with straight alpha.
func (buf *Buffer) ToImage() *image.NRGBA {
  img := image.NewNRGBA(image.Rect(0, 0, buf.width, buf.height))
  copy(img.Pix, buf.Pix)
  return img
}

// clampX returns x clamped to the valid horizontal pixel range of the buffer.
func (buf *Buffer) clampX(x int) int {
  if x < 0 { return 0 }
  if x >= buf.width { return buf.width - 1 }
  return x
}

// clampY returns y clamped to the valid vertical pixel range of the buffer.
func (buf *Buffer) clampY(y int) int {
  if y < 0 { return 0 }
  if y >= buf.height { return buf.height - 1 }
  return y
}


// clampByte converts a float value into a byte, saturating at the range limits. Arithmetic results
// are always clamped before being written back, never wrapped.
func clampByte(v float64) byte {
  if v < 0.0 { return 0 }
  if v > 255.0 { return 255 }
  return byte(v + 0.5)
}

// clampUnit clamps a float value to the range [0, 1].
func clampUnit(v float64) float64 {
  if v < 0.0 { return 0.0 }
  if v > 1.0 { return 1.0 }
  return v
}
