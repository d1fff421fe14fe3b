/*
Package graphics provides functions for loading and saving single-image graphics resources
without having to take care of the details, including the input size ceiling of the paint
pipeline.
*/
package graphics

import (
  "errors"
  "image"
  "image/gif"
  "image/jpeg"
  "image/png"
  "io"

  "github.com/InfinityTools/go-logging"
  "github.com/InfinityTools/paintcreator/paint"
  "golang.org/x/image/bmp"
  "golang.org/x/image/draw"
)

// Can be used to identify the imported image format
const (
  TYPE_UNKNOWN = -1
  TYPE_BMP  = iota
  TYPE_GIF
  TYPE_JPG
  TYPE_PNG
)

// Inputs larger than this on the longest side are downscaled before processing. This is a
// throughput ceiling, not a correctness requirement; face regions must be rescaled by the
// same ratio.
const MaxDimension = 1200

// The main graphics structure.
type Graphics struct {
  img     image.Image   // the imported, possibly downscaled image
  format  int           // see TYPE_xxx constants
  ratio   float64       // downscale ratio between processing and import dimensions
  err     error
}


// Import imports a graphics resource pointed to by the ReadSeeker interface. Images larger
// than MaxDimension on the longest side are downscaled; the applied ratio can be queried with
// GetRatio() and must be used to rescale externally detected face regions.
//
// Use function Error() to check if Import returned successfully.
func Import(rs io.ReadSeeker) *Graphics {
  g := Graphics{format: TYPE_UNKNOWN, ratio: 1.0}
  if rs == nil { g.err = errors.New("No source specified"); return &g }

  (&g).importImage(rs)
  return &g
}

// Error returns the error state of the most recent operation on the Graphics.
func (g *Graphics) Error() error {
  return g.err
}

// ClearError clears the error state from the last Graphics operation. This function must be
// called for subsequent operations to work correctly.
func (g *Graphics) ClearError() {
  g.err = nil
}

// GetImage returns the imported image. Returns nil while in error state.
func (g *Graphics) GetImage() image.Image {
  if g.err != nil { return nil }
  return g.img
}

// GetFormat returns the format of the imported image (see TYPE_xxx constants).
func (g *Graphics) GetFormat() int {
  return g.format
}

// GetRatio returns the downscale ratio between processing-time and import-time dimensions.
// A value of 1.0 means the image was imported unchanged.
func (g *Graphics) GetRatio() float64 {
  return g.ratio
}

// GetBuffer converts the imported image into a pixel buffer for the paint pipeline.
// Returns nil while in error state.
func (g *Graphics) GetBuffer() *paint.Buffer {
  if g.err != nil { return nil }
  return paint.FromImage(g.img)
}


// Used internally. Decodes the image and applies the size ceiling.
func (g *Graphics) importImage(rs io.ReadSeeker) {
  hdr := make([]byte, 4)
  _, err := rs.Read(hdr)
  if err != nil { g.err = err; return }
  _, err = rs.Seek(0, io.SeekStart)
  if err != nil { g.err = err; return }

  var img image.Image
  switch {
    case string(hdr[:2]) == "BM":
      img, err = bmp.Decode(rs)
      g.format = TYPE_BMP
    case string(hdr[:3]) == "GIF":
      img, err = gif.Decode(rs)
      g.format = TYPE_GIF
    case string(hdr[1:4]) == "PNG":
      img, err = png.Decode(rs)
      g.format = TYPE_PNG
    case hdr[0] == 0xff && hdr[1] == 0xd8:
      img, err = jpeg.Decode(rs)
      g.format = TYPE_JPG
    default:
      err = errors.New("Unrecognized graphics file format")
  }
  if err != nil { g.format = TYPE_UNKNOWN; g.err = err; return }

  b := img.Bounds()
  if b.Dx() < 1 || b.Dy() < 1 {
    g.err = errors.New("Empty graphics resource")
    return
  }

  g.img, g.ratio = fitToCeiling(img, MaxDimension)
  if g.ratio != 1.0 {
    logging.Logf("Input downscaled by factor %.3f to %dx%d\n", g.ratio, g.img.Bounds().Dx(), g.img.Bounds().Dy())
  }
}

// Used internally. Downscales the image so that the longest side does not exceed the given
// limit. Returns the image and the applied ratio.
func fitToCeiling(img image.Image, limit int) (image.Image, float64) {
  b := img.Bounds()
  longest := b.Dx()
  if b.Dy() > longest { longest = b.Dy() }
  if longest <= limit { return img, 1.0 }

  ratio := float64(limit) / float64(longest)
  w := int(float64(b.Dx()) * ratio + 0.5)
  h := int(float64(b.Dy()) * ratio + 0.5)
  if w < 1 { w = 1 }
  if h < 1 { h = 1 }

  dst := image.NewNRGBA(image.Rect(0, 0, w, h))
  draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
  return dst, ratio
}


// Export encodes the given image into the specified format and writes it to the Writer.
// Unsupported formats return an error before anything is written.
func Export(w io.Writer, img image.Image, format int) error {
  if w == nil { return errors.New("No target specified") }
  if img == nil { return errors.New("No image specified") }

  switch format {
    case TYPE_PNG:
      return png.Encode(w, img)
    case TYPE_JPG:
      return jpeg.Encode(w, img, &jpeg.Options{Quality: 92})
    case TYPE_BMP:
      return bmp.Encode(w, img)
    case TYPE_GIF:
      return gif.Encode(w, img, nil)
  }
  return errors.New("Unsupported output format")
}

// FormatByExt maps a file name extension to a TYPE_xxx constant. Unknown extensions map to
// TYPE_UNKNOWN.
func FormatByExt(ext string) int {
  switch ext {
    case ".png", "png":                   return TYPE_PNG
    case ".jpg", "jpg", ".jpeg", "jpeg":  return TYPE_JPG
    case ".bmp", "bmp":                   return TYPE_BMP
    case ".gif", "gif":                   return TYPE_GIF
  }
  return TYPE_UNKNOWN
}
