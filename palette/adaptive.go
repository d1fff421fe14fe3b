package palette
// Provides adaptive palette generation from image content.

import (
  "errors"

  "github.com/InfinityTools/go-imagequant"
  "github.com/InfinityTools/go-logging"
  "github.com/InfinityTools/paintcreator/paint"
  "github.com/InfinityTools/paintcreator/palette/sort"
)

const (
  adaptiveName        = "adaptive"
  adaptiveSwatchCount = 12
  adaptiveSpeed       = 5
)

// Adaptive derives a palette from the dominant colors of the given buffer. Unlike the
// hand-authored catalog entries an adaptive palette is rebuilt per source image.
func Adaptive(buf *paint.Buffer) (*Palette, error) {
  logging.Logln("Generating adaptive palette")

  att := imagequant.CreateAttributes()
  defer att.Release()

  err := att.SetMaxColors(adaptiveSwatchCount)
  if err != nil { return nil, err }
  err = att.SetQuality(0, 100)  // minquality 0 ensures a successful quantization
  if err != nil { return nil, err }
  err = att.SetSpeed(adaptiveSpeed)
  if err != nil { return nil, err }

  qimg := att.CreateImage(buf.ToImage(), 0.0)
  if qimg == nil { return nil, errors.New("Unable to process source image") }

  hist := att.CreateHistogram()
  err = att.AddImageToHistogram(hist, qimg)
  if err != nil { return nil, err }

  res, err := att.QuantizeHistogram(hist)
  if err != nil { return nil, err }

  palSrc := att.GetPalette(res)
  if len(palSrc) == 0 { return nil, errors.New("Error generating adaptive palette") }

  return fromColorTable(adaptiveName, palSrc, sort.SORT_BY_LIGHTNESS)
}
