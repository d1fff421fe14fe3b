package paint
// Provides separable box blur helpers shared by several filter stages.

// blurPlane applies a separable box blur of the given radius to a single float plane and
// returns a new plane. Window samples beyond the plane borders clamp to the edge values.
func blurPlane(plane []float64, width, height, radius int) []float64 {
  if radius < 1 {
    out := make([]float64, len(plane))
    copy(out, plane)
    return out
  }

  tmp := make([]float64, len(plane))
  out := make([]float64, len(plane))
  window := float64(2 * radius + 1)

  // horizontal pass
  for y := 0; y < height; y++ {
    row := y * width
    for x := 0; x < width; x++ {
      var sum float64
      for dx := -radius; dx <= radius; dx++ {
        sx := x + dx
        if sx < 0 { sx = 0 }
        if sx >= width { sx = width - 1 }
        sum += plane[row+sx]
      }
      tmp[row+x] = sum / window
    }
  }

  // vertical pass
  for y := 0; y < height; y++ {
    for x := 0; x < width; x++ {
      var sum float64
      for dy := -radius; dy <= radius; dy++ {
        sy := y + dy
        if sy < 0 { sy = 0 }
        if sy >= height { sy = height - 1 }
        sum += tmp[sy*width+x]
      }
      out[y*width+x] = sum / window
    }
  }
  return out
}

// gaussPlane approximates a Gaussian blur of the given radius on a single float plane by
// three successive box blur passes and returns a new plane.
func gaussPlane(plane []float64, width, height, radius int) []float64 {
  boxRadius := (radius + 1) / 2
  out := blurPlane(plane, width, height, boxRadius)
  out = blurPlane(out, width, height, boxRadius)
  return blurPlane(out, width, height, boxRadius)
}

// BoxBlur applies a separable box blur of the given radius to the RGB channels of the buffer
// and returns a new buffer. Alpha is passed through unchanged.
func BoxBlur(src *Buffer, radius int) *Buffer {
  width, height := src.Width(), src.Height()
  if radius < 1 { return src.Clone() }

  planes := [3][]float64{}
  for ch := 0; ch < 3; ch++ {
    planes[ch] = make([]float64, width * height)
  }
  for i := 0; i < width * height; i++ {
    planes[0][i] = float64(src.Pix[i*4])
    planes[1][i] = float64(src.Pix[i*4+1])
    planes[2][i] = float64(src.Pix[i*4+2])
  }

  for ch := 0; ch < 3; ch++ {
    planes[ch] = blurPlane(planes[ch], width, height, radius)
  }

  dst := NewBuffer(width, height)
  for i := 0; i < width * height; i++ {
    dst.Pix[i*4] = clampByte(planes[0][i])
    dst.Pix[i*4+1] = clampByte(planes[1][i])
    dst.Pix[i*4+2] = clampByte(planes[2][i])
    dst.Pix[i*4+3] = src.Pix[i*4+3]
  }
  return dst
}
