package palette

import (
  "strings"
  "testing"
)

func TestFromHex(t *testing.T) {
  p, err := FromHex("test", []string{"#ff0000", "00ff00", "#0000ff"})
  if err != nil {
    t.Fatalf("FromHex: %v", err)
  }
  if p.Len() != 3 {
    t.Fatalf("Len() = %d, want 3", p.Len())
  }
  s := p.Swatch(0)
  if s.R != 255 || s.G != 0 || s.B != 0 {
    t.Errorf("swatch 0 = (%d, %d, %d), want (255, 0, 0)", s.R, s.G, s.B)
  }
  if s.Warmth != 255.0 {
    t.Errorf("red swatch warmth = %v, want 255", s.Warmth)
  }
}

func TestFromHexInvalid(t *testing.T) {
  for _, tc := range []struct {
    name     string
    entries  []string
  }{
    {"empty list", nil},
    {"too short", []string{"#fff"}},
    {"not hex", []string{"#zzzzzz"}},
    {"garbage", []string{"hello!"}},
  } {
    t.Run(tc.name, func(t *testing.T) {
      if _, err := FromHex("test", tc.entries); err == nil {
        t.Errorf("expected error for %v", tc.entries)
      }
    })
  }
}

func TestSwatchMetadata(t *testing.T) {
  p, err := FromHex("test", []string{"#c89664"})
  if err != nil {
    t.Fatalf("FromHex: %v", err)
  }
  s := p.Swatch(0)
  wantLum := 0.299 * 200.0 + 0.587 * 150.0 + 0.114 * 100.0
  if s.Luminance != wantLum {
    t.Errorf("Luminance = %v, want %v", s.Luminance, wantLum)
  }
  if s.Warmth != 100.0 {
    t.Errorf("Warmth = %v, want 100", s.Warmth)
  }
}

func TestCatalog(t *testing.T) {
  names := Names()
  if len(names) == 0 {
    t.Fatalf("empty palette catalog")
  }
  for i := 1; i < len(names); i++ {
    if names[i-1] >= names[i] {
      t.Errorf("catalog names not sorted: %q before %q", names[i-1], names[i])
    }
  }
  for _, name := range names {
    p, err := ByName(name)
    if err != nil {
      t.Fatalf("ByName(%q): %v", name, err)
    }
    if p.Name() != name {
      t.Errorf("palette name %q, want %q", p.Name(), name)
    }
    if p.Len() < 8 || p.Len() > 16 {
      t.Errorf("palette %q has %d swatches", name, p.Len())
    }
  }
}

func TestByNameUnknown(t *testing.T) {
  if _, err := ByName("no-such-palette"); err == nil {
    t.Errorf("expected error for unknown palette")
  }
}

func TestByNameCaseInsensitive(t *testing.T) {
  names := Names()
  p, err := ByName(strings.ToUpper(names[0]))
  if err != nil {
    t.Fatalf("ByName upper case: %v", err)
  }
  if p.Name() != names[0] {
    t.Errorf("palette name %q, want %q", p.Name(), names[0])
  }
}

func TestAll(t *testing.T) {
  all := All()
  names := Names()
  if len(all) != len(names) {
    t.Fatalf("All() length %d, want %d", len(all), len(names))
  }
  for i, p := range all {
    if p.Name() != names[i] {
      t.Errorf("All()[%d] = %q, want %q", i, p.Name(), names[i])
    }
  }
}
