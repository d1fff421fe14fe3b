/*
Package facedet locates faces in an image so that the paint pipeline can treat them more
carefully than the rest of the scene. Detection is best effort: a Detector that could not be
initialized, or that finds nothing, reports an empty region list rather than an error, and the
pipeline falls back to its color based skin heuristics.
*/
package facedet

import (
  "image"
  "os"

  pigo "github.com/esimov/pigo/core"
  "github.com/InfinityTools/go-logging"
  "github.com/InfinityTools/paintcreator/paint"
)

// Detection tuning. Confidence below qThreshold is discarded, overlapping candidates are
// merged by intersection over union.
const (
  detectQThreshold   = 10.0
  detectIoUThreshold = 0.2
  detectShiftFactor  = 0.1
  detectScaleFactor  = 1.1
  detectMinSizePct   = 5
)

// Detector finds face regions in pixel buffers. Implementations never fail at detection
// time; an unusable detector simply returns no regions.
type Detector interface {
  // Ready returns whether the detector has been initialized successfully.
  Ready() bool
  // Detect returns the face regions found in the buffer. The slice is empty when the
  // detector is not ready or no face was found.
  Detect(buf *paint.Buffer) []paint.Region
}

// pigoDetector implements Detector on top of the pigo cascade classifier.
type pigoDetector struct {
  classifier  *pigo.Pigo
}

// New creates a Detector backed by the cascade file at the given path. A missing or invalid
// cascade is logged and yields a permanently not-ready detector. It is safe to use the
// returned Detector either way.
func New(cascadePath string) Detector {
  d := pigoDetector{}
  if len(cascadePath) == 0 { return &d }

  data, err := os.ReadFile(cascadePath)
  if err != nil {
    logging.Warnf("Face detection unavailable: %v\n", err)
    return &d
  }
  classifier, err := pigo.NewPigo().Unpack(data)
  if err != nil {
    logging.Warnf("Face detection unavailable: could not parse cascade file: %v\n", err)
    return &d
  }
  d.classifier = classifier
  return &d
}

// Ready returns whether the cascade classifier is loaded.
func (d *pigoDetector) Ready() bool {
  return d.classifier != nil
}

// Detect runs the cascade over the buffer and returns the clustered face regions.
func (d *pigoDetector) Detect(buf *paint.Buffer) []paint.Region {
  if d.classifier == nil || buf == nil { return nil }

  cols, rows := buf.Width(), buf.Height()
  if cols < 8 || rows < 8 { return nil }

  minDim := cols
  if rows < minDim { minDim = rows }
  minSize := minDim * detectMinSizePct / 100
  if minSize < 20 { minSize = 20 }

  cParams := pigo.CascadeParams{
    MinSize:     minSize,
    MaxSize:     minDim,
    ShiftFactor: detectShiftFactor,
    ScaleFactor: detectScaleFactor,
    ImageParams: pigo.ImageParams{
      Pixels: pigo.RgbToGrayscale(buf.ToImage()),
      Rows:   rows,
      Cols:   cols,
      Dim:    cols,
    },
  }

  dets := d.classifier.RunCascade(cParams, 0.0)
  dets = d.classifier.ClusterDetections(dets, detectIoUThreshold)

  regions := make([]paint.Region, 0, len(dets))
  for _, det := range dets {
    if det.Q < detectQThreshold { continue }
    r := detectionToRegion(det, cols, rows)
    if r.Width > 0 && r.Height > 0 { regions = append(regions, r) }
  }
  if len(regions) > 0 {
    logging.Logf("Detected %d face region(s)\n", len(regions))
  }
  return regions
}

// Used internally. Converts a pigo detection quadruplet into a clamped region rectangle.
func detectionToRegion(det pigo.Detection, cols, rows int) paint.Region {
  half := det.Scale / 2
  rect := image.Rect(det.Col-half, det.Row-half, det.Col+half, det.Row+half)
  rect = rect.Intersect(image.Rect(0, 0, cols, rows))
  return paint.Region{X: rect.Min.X, Y: rect.Min.Y, Width: rect.Dx(), Height: rect.Dy()}
}
