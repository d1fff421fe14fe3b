/*
Paint Video (paintvideo) is a supplementary tool that renders numbered frame sequences through
the reduced-cost video path and packs the result into a compressed paint video stream.

Paint Video is part of the Paint Creator package. Paint Creator is released under the BSD 2-clause
license. See LICENSE in the project's root folder for more details.
*/
package main

import (
  "errors"
  "fmt"
  "io"
  "os"
  "path/filepath"
  "strings"

  "github.com/InfinityTools/go-logging"
  "github.com/InfinityTools/paintcreator"
  "github.com/InfinityTools/paintcreator/config"
  "github.com/InfinityTools/paintcreator/facedet"
  "github.com/InfinityTools/paintcreator/graphics"
  "github.com/InfinityTools/paintcreator/paint"
  "github.com/InfinityTools/paintcreator/palette"
  "github.com/InfinityTools/paintcreator/palette/sort"
  "github.com/schollz/progressbar/v3"
)

const TOOL_NAME = "Paint Video"

func main() {
  err := loadArgs(os.Args)
  if err != nil {
    logging.Errorf("Error: %v\n", err)
    os.Exit(1)
  }

  // Setting global options
  if b, x := argsVerbose(); x {
    if b {
      logging.SetVerbosity(logging.LOG)
    } else {
      logging.SetVerbosity(logging.ERROR)
    }
  }

  // Logger should not interfere with stream data when writing to stdout
  if s, x := argsOutput(); x && s == "-" {
    logging.SetOutput(logging.LOG, os.Stderr)
    logging.SetOutput(logging.INFO, os.Stderr)
  }

  logging.SetPrefixCaller(false)
  if b, x := argsLogStyle(); x && b {
    logging.SetPrefixTimestamp(true)
    logging.SetPrefixLevel(true)
  } else {
    logging.SetPrefixTimestamp(false)
    logging.SetPrefixLevel(false)
  }

  if _, x := argsVersion(); x {
    paintcreator.PrintVersion(TOOL_NAME)
  } else if _, x := argsHelp(); x {
    printHelp()
  } else if argsExtraLength() == 0 {
    printHelp()
  } else {
    logging.Infoln("Starting video conversion")
    err = convert()
    if err != nil {
      logging.Errorf("Error: %v\n", err)
      logging.Infoln("Video conversion failed.")
      os.Exit(1)
    }
    logging.Infoln("Video conversion finished successfully.")
  }
}


func convert() error {
  length := argsExtraLength()
  for idx := 0; idx < length; idx++ {
    configFile := argsExtra(idx)
    if len(configFile) == 0 { continue }  // should not happen
    if configFile == "-" {
      logging.Infof("Starting job %d: (standard input)\n", idx)
    } else {
      logging.Infof("Starting job %d: %s\n", idx, configFile)
    }
    err := convertJob(configFile)
    if err != nil { return fmt.Errorf("Job %d: %v", idx, err) }
    logging.Infof("Finished job %d\n", idx)
  }

  return nil
}


func convertJob(configFile string) error {
  isStdIn := configFile == "-"
  if !isStdIn {
    fi, err := os.Stat(configFile)
    if err != nil { return err }
    if !fi.Mode().IsRegular() { return fmt.Errorf("File not found: %q", configFile) }
  }

  var r io.Reader = nil
  if isStdIn {
    r = os.Stdin
  } else {
    fin, err := os.Open(configFile)
    if err != nil { return fmt.Errorf("Cannot open %q: %v", configFile, err) }
    defer fin.Close()
    r = fin
  }
  cfg, err := config.ImportConfig(r)
  if err != nil { return fmt.Errorf("Error parsing configuration: %v", err) }

  return renderVideo(cfg)
}


func renderVideo(cfg *config.PaintConfig) error {
  if cfg == nil { return errors.New("No configuration data found") }

  bVal, _ := cfg.GetConfigValueBool(config.SECTION_SETTINGS, config.KEY_SETTINGS_THREADED)
  if b, x := argsThreaded(); x { bVal = b }
  paint.SetMultiThreaded(bVal)

  params, err := videoSetupParams(cfg)
  if err != nil { return err }

  fps, _ := cfg.GetConfigValueFloat(config.SECTION_SETTINGS, config.KEY_SETTINGS_FPS)
  if fps <= 0.0 { fps = 30.0 }
  if f, x := argsFps(); x { fps = float64(f) }

  regions, err := videoSetupRegions(cfg)
  if err != nil { return err }

  inputFiles, err := videoCollectInputs(cfg)
  if err != nil { return err }

  outFile, _ := cfg.GetConfigValueText(config.SECTION_OUTPUT, config.KEY_OUTPUT_PATH)
  if s, x := argsOutput(); x { outFile = s }
  if len(outFile) == 0 { return errors.New("No output file specified") }
  if outFile == "-" {
    // config file may request stdout on its own
    logging.SetOutput(logging.LOG, os.Stderr)
    logging.SetOutput(logging.INFO, os.Stderr)
  }

  // The first frame fixes the stream dimensions and drives face detection and palette selection.
  // Later frames are expected to match.
  first, err := loadFrame(inputFiles[0])
  if err != nil { return err }
  firstBuf := first.GetBuffer()

  faceRegions := paint.ScaleRegions(regions, first.GetRatio())
  detector := videoSetupDetector(cfg)
  faceRegions = append(faceRegions, detector.Detect(firstBuf)...)

  mapper, err := videoResolvePalette(cfg, firstBuf)
  if err != nil { return err }

  renderer := paint.NewFrameRenderer(params)
  if mapper != nil { renderer.SetColorMapper(mapper) }
  renderer.SetRegions(faceRegions, 1.0)

  var sb strings.Builder
  sb.WriteString("Options: ")
  sb.WriteString(fmt.Sprintf("threading: %v", paint.GetMultiThreaded()))
  sb.WriteString(fmt.Sprintf(", output: %q", outFile))
  sb.WriteString(fmt.Sprintf(", frames: %d", len(inputFiles)))
  sb.WriteString(fmt.Sprintf(", fps: %v", fps))
  sb.WriteString(fmt.Sprintf(", dimensions: %dx%d", firstBuf.Width(), firstBuf.Height()))
  sb.WriteString(fmt.Sprintf(", posterize levels: %d", params.PosterizeLevels))
  sb.WriteString(fmt.Sprintf(", face detection: %v", detector.Ready()))
  logging.Infoln(sb.String())

  var output io.Writer = os.Stdout
  if outFile != "-" {
    if dir := filepath.Dir(outFile); !directoryExists(dir) {
      if err := os.MkdirAll(dir, 0755); err != nil { return fmt.Errorf("Cannot create output path %q: %v", dir, err) }
    }
    fout, err := os.Create(outFile)
    if err != nil { return fmt.Errorf("Cannot create %q: %v", outFile, err) }
    defer fout.Close()
    output = fout
  }

  sw, err := NewStreamWriter(output, firstBuf.Width(), firstBuf.Height(), len(inputFiles), fps)
  if err != nil { return fmt.Errorf("Stream header: %v", err) }

  bar := videoProgressBar(len(inputFiles))

  for idx, inputFile := range inputFiles {
    buf := firstBuf
    if idx > 0 {
      g, err := loadFrame(inputFile)
      if err != nil { return err }
      buf = g.GetBuffer()
    }

    stamp := float64(idx) / fps
    out, ok := renderer.RenderFrame(buf, stamp)
    if !ok { return fmt.Errorf("Frame %d was skipped by the renderer", idx) }

    err = sw.WriteFrame(out, stamp)
    if err != nil { return err }
    renderer.Retire()
    if bar != nil { bar.Add(1) }
  }

  err = sw.Close()
  if err != nil { return fmt.Errorf("Stream: %v", err) }
  logging.Logf("Finished %s\n", outFile)

  return nil
}


// Used internally. Loads and decodes a single input frame.
func loadFrame(inputFile string) (*graphics.Graphics, error) {
  fin, err := os.Open(inputFile)
  if err != nil { return nil, fmt.Errorf("Could not open %q: %v", inputFile, err) }
  defer fin.Close()

  g := graphics.Import(fin)
  if g.Error() != nil { return nil, fmt.Errorf("Could not import %q: %v", inputFile, g.Error()) }
  return g, nil
}


// Assembles the parameter set from config values and command line overrides. The video path
// ignores parameters of the stages it skips.
func videoSetupParams(cfg *config.PaintConfig) (paint.Params, error) {
  params := paint.DefaultParams()

  if f, ok := cfg.GetConfigValueFloat(config.SECTION_PARAMS, config.KEY_PARAMS_INTENSITY); ok { params.Intensity = f }
  if i, ok := cfg.GetConfigValueInt(config.SECTION_PARAMS, config.KEY_PARAMS_LEVELS); ok { params.PosterizeLevels = int(i) }
  if f, ok := cfg.GetConfigValueFloat(config.SECTION_PARAMS, config.KEY_PARAMS_EDGES); ok { params.EdgeStrength = f }
  if i, ok := cfg.GetConfigValueInt(config.SECTION_PARAMS, config.KEY_PARAMS_BRUSH); ok { params.BrushSize = int(i) }
  if f, ok := cfg.GetConfigValueFloat(config.SECTION_PARAMS, config.KEY_PARAMS_WARMTH); ok { params.Warmth = f }
  if f, ok := cfg.GetConfigValueFloat(config.SECTION_PARAMS, config.KEY_PARAMS_SATURATION); ok { params.Saturation = f }
  if f, ok := cfg.GetConfigValueFloat(config.SECTION_PARAMS, config.KEY_PARAMS_TEXTURE); ok { params.TextureStrength = f }
  if f, ok := cfg.GetConfigValueFloat(config.SECTION_PARAMS, config.KEY_PARAMS_DETAIL); ok { params.DetailPreservation = f }

  if i, x := argsLevels(); x { params.PosterizeLevels = i }
  if f, x := argsEdges(); x { params.EdgeStrength = float64(f) }
  if f, x := argsWarmth(); x { params.Warmth = float64(f) }
  if f, x := argsSaturation(); x { params.Saturation = float64(f) }

  err := params.Validate()
  return params, err
}


// Collects manually configured face regions. Region coordinates refer to the unscaled input frame.
func videoSetupRegions(cfg *config.PaintConfig) ([]paint.Region, error) {
  seq, ok := cfg.GetConfigValueIntSeq2(config.SECTION_PARAMS, config.KEY_PARAMS_REGIONS)
  if !ok { return nil, nil }

  regions := make([]paint.Region, 0, len(seq))
  for idx, entry := range seq {
    if len(entry) != 4 { return nil, fmt.Errorf("Region %d does not consist of x, y, width, height", idx) }
    r := paint.Region{X: int(entry[0]), Y: int(entry[1]), Width: int(entry[2]), Height: int(entry[3])}
    if r.Width < 1 || r.Height < 1 { return nil, fmt.Errorf("Region %d is empty", idx) }
    regions = append(regions, r)
  }
  return regions, nil
}


// Creates a face detector from the configured cascade; --no-faces disables detection.
// Detection runs on the first frame only and the resulting regions are reused for the sequence.
func videoSetupDetector(cfg *config.PaintConfig) facedet.Detector {
  if b, x := argsNoFaces(); x && b { return facedet.New("") }
  cascade, _ := cfg.GetConfigValueText(config.SECTION_SETTINGS, config.KEY_SETTINGS_CASCADE)
  if s, x := argsCascade(); x { cascade = s }
  return facedet.New(cascade)
}


// Resolves the palette selection of the job against the first frame. Returns nil for selection "none".
func videoResolvePalette(cfg *config.PaintConfig, buf *paint.Buffer) (paint.ColorMapper, error) {
  name, _ := cfg.GetConfigValueText(config.SECTION_PALETTE, config.KEY_PALETTE_NAME)
  if s, x := argsPalette(); x { name = strings.ToLower(strings.TrimSpace(s)) }

  palFile, _ := cfg.GetConfigValueText(config.SECTION_PALETTE, config.KEY_PALETTE_FILE)
  if s, x := argsPaletteFile(); x { palFile = s }

  if len(palFile) > 0 {
    fin, err := os.Open(palFile)
    if err != nil { return nil, fmt.Errorf("External palette: %v", err) }
    defer fin.Close()
    name := strings.TrimSuffix(filepath.Base(palFile), filepath.Ext(palFile))
    pal, err := palette.ImportSorted(name, fin, videoPaletteSortFlags(cfg))
    if err != nil { return nil, fmt.Errorf("External palette: %v", err) }
    logging.Logf("Using palette %q with %d swatches\n", pal.Name(), pal.Len())
    return pal, nil
  }

  switch name {
    case palette.SelectionNone:
      return nil, nil
    case palette.SelectionAuto:
      pal := palette.AutoDetect(buf, palette.All())
      if pal == nil { return nil, errors.New("Could not auto-detect a palette") }
      logging.Logf("Auto-detected palette %q\n", pal.Name())
      return pal, nil
    case palette.SelectionAdaptive:
      pal, err := palette.Adaptive(buf)
      if err != nil { return nil, fmt.Errorf("Adaptive palette: %v", err) }
      logging.Logf("Using adaptive palette with %d swatches\n", pal.Len())
      return pal, nil
  }

  pal, err := palette.ByName(name)
  if err != nil { return nil, err }
  logging.Logf("Using palette %q\n", pal.Name())
  return pal, nil
}


// Translates the configured sort type into palette sort flags.
func videoPaletteSortFlags(cfg *config.PaintConfig) int {
  sVal, x := argsPaletteSort()
  if !x {
    sVal, _ = cfg.GetConfigValueText(config.SECTION_PALETTE, config.KEY_PALETTE_SORT_BY)
  }
  sVal = strings.ToLower(strings.TrimSpace(sVal))

  reversed := false
  if idx := strings.LastIndex(sVal, "_reversed"); idx >= 0 && idx == len(sVal) - len("_reversed") {
    reversed = true
    sVal = sVal[:idx]
  }
  stype := sort.SORT_BY_LIGHTNESS
  switch sVal {
    case "", "none", "lightness":
      stype = sort.SORT_BY_LIGHTNESS
    case "saturation":
      stype = sort.SORT_BY_SATURATION
    case "hue":
      stype = sort.SORT_BY_HUE
    case "red":
      stype = sort.SORT_BY_RED
    case "green":
      stype = sort.SORT_BY_GREEN
    case "blue":
      stype = sort.SORT_BY_BLUE
    default:
      logging.Warnf("Unrecognized color sort type: %q. Defaulting to \"lightness\".\n", sVal)
  }
  if reversed { stype |= sort.SORT_REVERSED }
  return stype
}


// Collects the input frames of the job, either from a static list or a numbered file sequence.
func videoCollectInputs(cfg *config.PaintConfig) ([]string, error) {
  entries, _ := cfg.GetConfigValueTextSeq(config.SECTION_INPUT, config.KEY_INPUT_FILES)
  if len(entries) > 0 {
    files := make([]string, 0, len(entries))
    for eidx, entry := range entries {
      if len(entry) == 0 { continue }
      if !fileExists(entry) { return nil, fmt.Errorf("Input frame %d does not exist: %q", eidx, entry) }
      files = append(files, entry)
    }
    if len(files) == 0 { return nil, errors.New("No input frames defined") }
    return files, nil
  }

  path, _ := cfg.GetConfigValueText(config.SECTION_INPUT, config.KEY_INPUT_PATH)
  prefix, _ := cfg.GetConfigValueText(config.SECTION_INPUT, config.KEY_INPUT_PREFIX)
  ext, _ := cfg.GetConfigValueText(config.SECTION_INPUT, config.KEY_INPUT_EXT)
  suffixStart, _ := cfg.GetConfigValueInt(config.SECTION_INPUT, config.KEY_INPUT_SUFFIX_START)
  suffixEnd, _ := cfg.GetConfigValueInt(config.SECTION_INPUT, config.KEY_INPUT_SUFFIX_END)
  suffixLen, _ := cfg.GetConfigValueInt(config.SECTION_INPUT, config.KEY_INPUT_SUFFIX_LEN)
  if len(prefix) == 0 && suffixStart == suffixEnd { return nil, errors.New("No input frames defined") }

  // sequence may be incremented or decremented
  var inc int64
  if suffixEnd < suffixStart { inc = -1; suffixEnd-- } else { inc = 1; suffixEnd++ }
  files := make([]string, 0)
  for index := suffixStart; index != suffixEnd; index += inc {
    fileName := config.AssembleFilePath(path, prefix, ext, index, suffixLen)
    if !fileExists(fileName) { return nil, fmt.Errorf("Input frame does not exist: %q", fileName) }
    files = append(files, fileName)
  }
  return files, nil
}


// Used internally. Creates the frame progress display, or nil if disabled.
func videoProgressBar(frames int) *progressbar.ProgressBar {
  if b, x := argsNoProgress(); x && b { return nil }
  if logging.GetVerbosity() >= logging.ERROR { return nil }
  return progressbar.NewOptions(frames,
    progressbar.OptionSetDescription("Rendering frames"),
    progressbar.OptionSetWriter(os.Stderr),
    progressbar.OptionShowCount(),
  )
}


func printHelp() {
  fmt.Printf("Usage: %s [options] configfile [configfile2 ...]\n", os.Args[0])
  const helpText = "A supplementary tool for Paint Creator that renders numbered frame sequences\n" +
                   "through the fast video path and packs them into a compressed paint video stream.\n" +
                   "\n" +
                // "...............................................................................\n" +
                   "Options:\n" +
                   "  --verbose                 Show additional log messages. All messages will be\n" +
                   "                            redirected to standard error if the stream is\n" +
                   "                            written to standard output.\n" +
                   "  --silent                  Suppress any log messages during the conversion\n" +
                   "                            process except for errors.\n" +
                   "  --log-style               Print log messages in log style, complete with\n" +
                   "                            timestamp and log level.\n" +
                   "  --threaded                Enable multithreading for the frame renderer.\n" +
                   "                            Enabled by default if multiple CPU cores are\n" +
                   "                            detected.\n" +
                   "  --no-threaded             Disable multithreading for the frame renderer.\n" +
                   "  --output file             Set the output stream file. Use minus sign (-) to\n" +
                   "                            write the stream to standard output. Overrides\n" +
                   "                            setting in the config file.\n" +
                   "  --fps rate                Playback frame rate used for the frame timestamps.\n" +
                   "                            Allowed range: (0, 240]. Default: 30. Overrides\n" +
                   "                            setting in the config file.\n" +
                   "  --posterize-levels num    Number of quantization levels per color channel.\n" +
                   "                            Allowed range: [3, 16]. Overrides setting in the\n" +
                   "                            config file.\n" +
                   "  --edge-strength value     Strength of the painted outlines. Allowed range:\n" +
                   "                            [0.0, 1.0]. Overrides setting in the config file.\n" +
                   "  --warmth value            Bias of the color grading toward warm tones.\n" +
                   "                            Allowed range: [0.0, 1.0]. Overrides setting in the\n" +
                   "                            config file.\n" +
                   "  --saturation value        Strength of the global saturation treatment.\n" +
                   "                            Allowed range: [0.0, 1.0]. Overrides setting in the\n" +
                   "                            config file.\n" +
                   "  --palette name            Select the color palette. Available names: none,\n" +
                   "                            auto, adaptive, or one of the built-in palettes\n" +
                   "                            (see documentation). Overrides setting in the\n" +
                   "                            config file.\n" +
                   "  --palette-file file       Import the color palette from a BMP, GIF, PNG,\n" +
                   "                            Windows PAL or Adobe ACT file. Overrides setting in\n" +
                   "                            the config file.\n" +
                   "  --palette-sort type       Sort an imported palette by the specified type. The\n" +
                   "                            following types are recognized: lightness,\n" +
                   "                            saturation, hue, red, green, blue. Append _reversed\n" +
                   "                            to reverse the sort order. Overrides setting in the\n" +
                   "                            config file.\n" +
                   "  --cascade file            Path of the face detection cascade file. Detection\n" +
                   "                            runs on the first frame of the sequence. Overrides\n" +
                   "                            setting in the config file.\n" +
                   "  --no-faces                Disable face detection. The color based skin\n" +
                   "                            heuristics remain active.\n" +
                   "  --no-progress             Disable the frame progress display.\n" +
                   "  --help                    Print this help and terminate.\n" +
                   "  --version                 Print version information and terminate.\n" +
                   "\n" +
                   "Note: Use minus sign (-) in place of configfile to read configuration data\n" +
                   "      from standard input."
  fmt.Println(helpText)
}


// Used internally. Returns whether the specified filename points to a regular existing file.
func fileExists(file string) bool {
  if len(file) == 0 { return false }
  fi, err := os.Stat(file)
  if err != nil { return false }
  return fi.Mode().IsRegular()
}

// Used internally. Returns whether the specified path points to an existing directory.
func directoryExists(dir string) bool {
  if len(dir) == 0 { return true }  // special
  fi, err := os.Stat(dir)
  if err != nil { return false }
  return fi.Mode().IsDir()
}
