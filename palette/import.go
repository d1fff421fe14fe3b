package palette
// Provides palette import from graphics and palette file formats.

import (
  "encoding/binary"
  "errors"
  "image"
  "image/color"
  "image/gif"
  "image/png"
  "io"

  "github.com/InfinityTools/paintcreator/palette/sort"
  "golang.org/x/image/bmp"
)

// Imported palettes are capped to this many swatches; larger color tables are thinned to
// evenly spaced entries after ordering by lightness.
const importSwatchLimit = 16


// Import imports a palette from the graphics or palette file pointed to by the ReadSeeker
// parameter. Supported formats are BMP, GIF, PNG, Windows PAL and Adobe Color Table files.
//
// Returns a palette on success, or a non-nil error value otherwise.
func Import(name string, rs io.ReadSeeker) (*Palette, error) {
  return ImportSorted(name, rs, sort.SORT_BY_LIGHTNESS)
}

// ImportSorted works like Import but orders the imported color table by the given sort flags
// (see the sort subpackage) before thinning it to the swatch limit.
func ImportSorted(name string, rs io.ReadSeeker, sortFlags int) (*Palette, error) {
  if rs == nil { return nil, errors.New("No source specified") }
  pal, err := importPalette(rs)
  if err != nil { return nil, err }
  return fromColorTable(name, pal, sortFlags)
}


// Used internally. Delegates import to more specialized functions.
func importPalette(rs io.ReadSeeker) (color.Palette, error) {
  hdr := make([]byte, 4)
  _, err := rs.Read(hdr)
  if err != nil { return nil, err }
  _, err = rs.Seek(0, io.SeekStart)
  if err != nil { return nil, err }

  if string(hdr[:2]) == "BM" {
    return importPaletteBMP(rs)
  } else if string(hdr[:3]) == "GIF" {
    return importPaletteGIF(rs)
  } else if string(hdr[1:4]) == "PNG" {
    return importPalettePNG(rs)
  } else if string(hdr) == "RIFF" {
    return importPalettePAL(rs)
  }
  // assume Adobe Color Table
  return importPaletteACT(rs)
}

// Used internally. Imports a BMP palette.
func importPaletteBMP(rs io.ReadSeeker) (color.Palette, error) {
  cfg, err := bmp.DecodeConfig(rs)
  if err != nil { return nil, err }
  if pal, err := getConfigPalette(cfg); err == nil {
    return pal, nil
  }

  _, err = rs.Seek(0, io.SeekStart)
  if err != nil { return nil, err }
  img, err := bmp.Decode(rs)
  if err != nil { return nil, err }
  return getImagePalette(img)
}

// Used internally. Imports a GIF palette.
func importPaletteGIF(rs io.ReadSeeker) (color.Palette, error) {
  cfg, err := gif.DecodeConfig(rs)
  if err != nil { return nil, err }
  if pal, err := getConfigPalette(cfg); err == nil {
    return pal, nil
  }

  _, err = rs.Seek(0, io.SeekStart)
  if err != nil { return nil, err }
  img, err := gif.Decode(rs)
  if err != nil { return nil, err }
  return getImagePalette(img)
}

// Used internally. Imports a PNG palette.
func importPalettePNG(rs io.ReadSeeker) (color.Palette, error) {
  cfg, err := png.DecodeConfig(rs)
  if err != nil { return nil, err }
  if pal, err := getConfigPalette(cfg); err == nil {
    return pal, nil
  }

  _, err = rs.Seek(0, io.SeekStart)
  if err != nil { return nil, err }
  img, err := png.Decode(rs)
  if err != nil { return nil, err }
  return getImagePalette(img)
}

// Used internally. Imports a Windows palette file: a RIFF container of form type "PAL " whose
// "data" chunk holds a LOGPALETTE structure with 4-byte RGBX entries.
func importPalettePAL(rs io.ReadSeeker) (color.Palette, error) {
  chunk := make([]byte, 12)
  if _, err := io.ReadFull(rs, chunk); err != nil { return nil, err }
  if string(chunk[8:12]) != "PAL " { return nil, errors.New("Not a Windows Palette file") }

  // walk the chunk list until the "data" chunk
  var dataSize int
  for {
    if _, err := io.ReadFull(rs, chunk[:8]); err != nil {
      if err == io.EOF || err == io.ErrUnexpectedEOF { return nil, errors.New("No palette data found") }
      return nil, err
    }
    dataSize = int(binary.LittleEndian.Uint32(chunk[4:8]))
    if string(chunk[:4]) == "data" { break }
    if _, err := rs.Seek(int64(dataSize - 4), io.SeekCurrent); err != nil { return nil, err }
  }
  if dataSize <= 8 { return nil, errors.New("Invalid palette file") }

  // LOGPALETTE: version, entry count, then the entries
  if _, err := io.ReadFull(rs, chunk[:4]); err != nil { return nil, err }
  entries := int(binary.LittleEndian.Uint16(chunk[2:4]))
  if entries > 256 { entries = 256 }
  if dataSize - 8 < entries * 4 { return nil, errors.New("Corrupted palette header") }

  raw := make([]byte, entries * 4)
  if _, err := io.ReadFull(rs, raw); err != nil { return nil, err }

  pal := make(color.Palette, entries)
  for i := range pal {
    ofs := i * 4
    pal[i] = color.NRGBA{raw[ofs], raw[ofs+1], raw[ofs+2], 255}
  }
  return pal, nil
}

// Used internally. Imports an Adobe Color Table.
func importPaletteACT(rs io.ReadSeeker) (color.Palette, error) {
  offset, err := rs.Seek(0, io.SeekEnd)
  if err != nil { return nil, err }
  if offset != 768 && offset != 772 {
    return nil, errors.New("Unrecognized graphics or palette file format")
  }
  _, err = rs.Seek(0, io.SeekStart)
  if err != nil { return nil, err }

  buf := make([]byte, int(offset))
  _, err = rs.Read(buf)
  if err != nil { return nil, err }

  numCols := 256
  if len(buf) == 772 {
    numCols = int(binary.BigEndian.Uint16(buf[768:]))
    if numCols > 256 { numCols = 256 }
  }

  pal := make(color.Palette, numCols)
  for i := 0; i < numCols; i++ {
    ofs := i * 3
    pal[i] = color.NRGBA{buf[ofs], buf[ofs+1], buf[ofs+2], 255}
  }
  return pal, nil
}

// Used internally. Returns a copy of the image palette if available.
func getImagePalette(img image.Image) (color.Palette, error) {
  if img != nil {
    if imgPal, ok := img.(*image.Paletted); ok {
      pal := make(color.Palette, len(imgPal.Palette))
      copy(pal, imgPal.Palette)
      return pal, nil
    }
  }
  return nil, errors.New("No palette data available")
}

// Used internally. Returns the global palette stored in the Config structure if available.
func getConfigPalette(cfg image.Config) (color.Palette, error) {
  if pal, ok := cfg.ColorModel.(color.Palette); ok {
    return pal, nil
  }
  return nil, errors.New("No palette data available")
}

// Used internally. Converts a raw color table into a Palette: duplicates removed, ordered by
// the given sort flags and thinned to the swatch limit.
func fromColorTable(name string, pal color.Palette, sortFlags int) (*Palette, error) {
  seen := make(map[color.NRGBA]bool)
  unique := make(color.Palette, 0, len(pal))
  for _, col := range pal {
    r, g, b, a := col.RGBA()
    if a == 0 { continue }
    c := color.NRGBA{byte(r >> 8), byte(g >> 8), byte(b >> 8), 255}
    if seen[c] { continue }
    seen[c] = true
    unique = append(unique, c)
  }
  if len(unique) == 0 { return nil, errors.New("No usable palette entries found") }

  ordered := sort.Sort(unique, sortFlags)

  count := len(ordered)
  if count > importSwatchLimit { count = importSwatchLimit }
  colors := make([]color.NRGBA, count)
  for i := 0; i < count; i++ {
    idx := i * len(ordered) / count
    colors[i] = ordered[idx].(color.NRGBA)
  }
  return New(name, colors), nil
}
