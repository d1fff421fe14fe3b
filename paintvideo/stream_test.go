package main

import (
  "bytes"
  "encoding/binary"
  "io"
  "math"
  "testing"

  "github.com/InfinityTools/paintcreator/paint"
  "github.com/klauspost/compress/zstd"
)

func testFrame(width, height int, seed byte) *paint.Buffer {
  buf := paint.NewBuffer(width, height)
  for i := 0; i < len(buf.Pix); i += 4 {
    buf.Pix[i] = seed
    buf.Pix[i+1] = seed + 1
    buf.Pix[i+2] = seed + 2
    buf.Pix[i+3] = 255
  }
  return buf
}


func TestStreamRoundTrip(t *testing.T) {
  var out bytes.Buffer
  sw, err := NewStreamWriter(&out, 8, 6, 3, 24.0)
  if err != nil {
    t.Fatalf("NewStreamWriter: %v", err)
  }

  frames := []*paint.Buffer{testFrame(8, 6, 10), testFrame(8, 6, 20), testFrame(8, 6, 30)}
  for i, f := range frames {
    stamp := float64(i) / 24.0
    if err := sw.WriteFrame(f, stamp); err != nil {
      t.Fatalf("WriteFrame %d: %v", i, err)
    }
  }
  if err := sw.Close(); err != nil {
    t.Fatalf("Close: %v", err)
  }

  // header
  data := out.Bytes()
  if string(data[:4]) != streamSignature {
    t.Fatalf("signature = %q, want %q", data[:4], streamSignature)
  }
  hdr := data[4:20]
  if w := binary.BigEndian.Uint32(hdr[0:]); w != 8 {
    t.Errorf("width = %d, want 8", w)
  }
  if h := binary.BigEndian.Uint32(hdr[4:]); h != 6 {
    t.Errorf("height = %d, want 6", h)
  }
  if n := binary.BigEndian.Uint32(hdr[8:]); n != 3 {
    t.Errorf("frame count = %d, want 3", n)
  }
  if f := binary.BigEndian.Uint32(hdr[12:]); f != 24000 {
    t.Errorf("fps = %d millihertz, want 24000", f)
  }

  // frame section
  dec, err := zstd.NewReader(bytes.NewReader(data[20:]))
  if err != nil {
    t.Fatalf("zstd.NewReader: %v", err)
  }
  defer dec.Close()

  for i, f := range frames {
    var bits uint64
    if err := binary.Read(dec, binary.BigEndian, &bits); err != nil {
      t.Fatalf("frame %d timestamp: %v", i, err)
    }
    if stamp := math.Float64frombits(bits); stamp != float64(i) / 24.0 {
      t.Errorf("frame %d timestamp = %v, want %v", i, stamp, float64(i) / 24.0)
    }
    var length uint32
    if err := binary.Read(dec, binary.BigEndian, &length); err != nil {
      t.Fatalf("frame %d length: %v", i, err)
    }
    if int(length) != len(f.Pix) {
      t.Fatalf("frame %d payload length = %d, want %d", i, length, len(f.Pix))
    }
    payload := make([]byte, length)
    if _, err := io.ReadFull(dec, payload); err != nil {
      t.Fatalf("frame %d payload: %v", i, err)
    }
    if !bytes.Equal(payload, f.Pix) {
      t.Errorf("frame %d payload does not match input", i)
    }
  }
}

func TestStreamWriterValidation(t *testing.T) {
  var out bytes.Buffer
  if _, err := NewStreamWriter(&out, 0, 6, 1, 30.0); err == nil {
    t.Errorf("zero width accepted")
  }
  if _, err := NewStreamWriter(&out, 8, 6, 0, 30.0); err == nil {
    t.Errorf("zero frame count accepted")
  }
  if _, err := NewStreamWriter(&out, 8, 6, 1, 0.0); err == nil {
    t.Errorf("zero frame rate accepted")
  }
}

func TestStreamWriterDimensionMismatch(t *testing.T) {
  var out bytes.Buffer
  sw, err := NewStreamWriter(&out, 8, 6, 1, 30.0)
  if err != nil {
    t.Fatalf("NewStreamWriter: %v", err)
  }
  if err := sw.WriteFrame(testFrame(4, 4, 0), 0.0); err == nil {
    t.Errorf("mismatched frame dimensions accepted")
  }
}

func TestStreamWriterIncomplete(t *testing.T) {
  var out bytes.Buffer
  sw, err := NewStreamWriter(&out, 8, 6, 2, 30.0)
  if err != nil {
    t.Fatalf("NewStreamWriter: %v", err)
  }
  if err := sw.WriteFrame(testFrame(8, 6, 0), 0.0); err != nil {
    t.Fatalf("WriteFrame: %v", err)
  }
  if err := sw.Close(); err == nil {
    t.Errorf("incomplete stream closed without error")
  }
}

func TestStreamWriterFull(t *testing.T) {
  var out bytes.Buffer
  sw, err := NewStreamWriter(&out, 8, 6, 1, 30.0)
  if err != nil {
    t.Fatalf("NewStreamWriter: %v", err)
  }
  if err := sw.WriteFrame(testFrame(8, 6, 0), 0.0); err != nil {
    t.Fatalf("WriteFrame: %v", err)
  }
  if err := sw.WriteFrame(testFrame(8, 6, 1), 1.0); err == nil {
    t.Errorf("frame beyond the announced count accepted")
  }
}
