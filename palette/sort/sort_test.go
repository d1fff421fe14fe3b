package sort

import (
  "image/color"
  "testing"
)

func gray(v byte) color.NRGBA {
  return color.NRGBA{v, v, v, 255}
}

func TestSortByLightness(t *testing.T) {
  pal := color.Palette{gray(200), gray(0), gray(100)}
  out := Sort(pal, SORT_BY_LIGHTNESS)
  want := []byte{0, 100, 200}
  for i, w := range want {
    r, _, _, _ := out[i].RGBA()
    if byte(r >> 8) != w {
      t.Errorf("index %d = %d, want %d", i, r >> 8, w)
    }
  }
  // input must stay untouched
  r, _, _, _ := pal[0].RGBA()
  if byte(r >> 8) != 200 {
    t.Errorf("input palette modified")
  }
}

func TestSortReversed(t *testing.T) {
  pal := color.Palette{gray(0), gray(200), gray(100)}
  out := Sort(pal, SORT_BY_LIGHTNESS | SORT_REVERSED)
  want := []byte{200, 100, 0}
  for i, w := range want {
    r, _, _, _ := out[i].RGBA()
    if byte(r >> 8) != w {
      t.Errorf("index %d = %d, want %d", i, r >> 8, w)
    }
  }
}

func TestSortByRed(t *testing.T) {
  pal := color.Palette{
    color.NRGBA{30, 200, 0, 255},
    color.NRGBA{10, 100, 0, 255},
    color.NRGBA{20, 50, 0, 255},
  }
  out := Sort(pal, SORT_BY_RED)
  want := []byte{10, 20, 30}
  for i, w := range want {
    r, _, _, _ := out[i].RGBA()
    if byte(r >> 8) != w {
      t.Errorf("index %d red = %d, want %d", i, r >> 8, w)
    }
  }
}

func TestSortByNone(t *testing.T) {
  pal := color.Palette{gray(200), gray(0)}
  out := Sort(pal, SORT_BY_NONE)
  r, _, _, _ := out[0].RGBA()
  if byte(r >> 8) != 200 {
    t.Errorf("SORT_BY_NONE reordered the palette")
  }
}
