package main
// Implements the paint video stream (PVS) output format. A stream starts with an
// uncompressed header, followed by a single zstd stream of length-framed raw frame blocks.

import (
  "encoding/binary"
  "fmt"
  "io"
  "math"

  "github.com/InfinityTools/paintcreator/paint"
  "github.com/klauspost/compress/zstd"
)

// Stream layout:
//   signature       4 bytes   "PVS1"
//   width           uint32
//   height          uint32
//   frame count     uint32
//   fps (millihz)   uint32
// followed by one zstd stream containing, per frame:
//   timestamp       uint64    IEEE 754 bits, seconds
//   payload length  uint32
//   payload         interleaved RGBA rows, top to bottom
// All integers are stored in big endian byte order.
const streamSignature = "PVS1"

type StreamWriter struct {
  width   int
  height  int
  frames  int
  written int
  zenc    *zstd.Encoder
}

// NewStreamWriter writes the stream header and prepares the compressed frame section.
// Frame dimensions and count are fixed for the lifetime of the stream.
func NewStreamWriter(w io.Writer, width, height, frames int, fps float64) (*StreamWriter, error) {
  if width < 1 || height < 1 { return nil, fmt.Errorf("Invalid frame dimensions: %dx%d", width, height) }
  if frames < 1 { return nil, fmt.Errorf("Invalid frame count: %d", frames) }
  if fps <= 0.0 { return nil, fmt.Errorf("Invalid frame rate: %v", fps) }

  if _, err := w.Write([]byte(streamSignature)); err != nil { return nil, err }
  header := []uint32{ uint32(width), uint32(height), uint32(frames), uint32(fps * 1000.0) }
  for _, v := range header {
    if err := binary.Write(w, binary.BigEndian, v); err != nil { return nil, err }
  }

  zenc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
  if err != nil { return nil, err }

  return &StreamWriter{width: width, height: height, frames: frames, zenc: zenc}, nil
}

// WriteFrame appends one rendered frame to the stream. Frames must match the header dimensions
// and arrive in playback order.
func (sw *StreamWriter) WriteFrame(buf *paint.Buffer, stamp float64) error {
  if sw.written >= sw.frames { return fmt.Errorf("Stream is full: %d frames written", sw.written) }
  if buf.Width() != sw.width || buf.Height() != sw.height {
    return fmt.Errorf("Frame %d: dimensions %dx%d do not match stream dimensions %dx%d",
                      sw.written, buf.Width(), buf.Height(), sw.width, sw.height)
  }

  if err := binary.Write(sw.zenc, binary.BigEndian, math.Float64bits(stamp)); err != nil { return err }
  if err := binary.Write(sw.zenc, binary.BigEndian, uint32(len(buf.Pix))); err != nil { return err }
  if _, err := sw.zenc.Write(buf.Pix); err != nil { return err }
  sw.written++
  return nil
}

// Close flushes the compressed frame section. Closing a stream with fewer frames than announced
// in the header is an error.
func (sw *StreamWriter) Close() error {
  err := sw.zenc.Close()
  if err != nil { return err }
  if sw.written != sw.frames {
    return fmt.Errorf("Incomplete stream: %d of %d frames written", sw.written, sw.frames)
  }
  return nil
}
