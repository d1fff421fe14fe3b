package facedet

import (
  "path/filepath"
  "testing"

  "github.com/InfinityTools/paintcreator/paint"
)

func TestNewWithoutCascade(t *testing.T) {
  d := New("")
  if d == nil {
    t.Fatalf("New returned nil")
  }
  if d.Ready() {
    t.Errorf("detector without cascade reports ready")
  }
}

func TestNewMissingCascadeFile(t *testing.T) {
  d := New(filepath.Join(t.TempDir(), "does-not-exist"))
  if d.Ready() {
    t.Errorf("detector with missing cascade reports ready")
  }
  if regions := d.Detect(paint.NewBuffer(64, 64)); len(regions) != 0 {
    t.Errorf("not-ready detector returned regions: %v", regions)
  }
}

func TestDetectDegradesToEmpty(t *testing.T) {
  d := New("")
  for _, tc := range []struct {
    name  string
    buf   *paint.Buffer
  }{
    {"nil buffer", nil},
    {"tiny buffer", paint.NewBuffer(4, 4)},
    {"normal buffer", paint.NewBuffer(128, 96)},
  } {
    t.Run(tc.name, func(t *testing.T) {
      if regions := d.Detect(tc.buf); len(regions) != 0 {
        t.Errorf("expected empty region list, got %v", regions)
      }
    })
  }
}
