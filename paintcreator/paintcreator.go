/*
Paint Creator is a command line tool for turning photos into painterly images from scripts.

Paint Creator is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package main

import (
  "context"
  "errors"
  "fmt"
  "io"
  "os"
  "path/filepath"
  "regexp"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-logging"
  "github.com/InfinityTools/paintcreator"
  "github.com/InfinityTools/paintcreator/config"
  "github.com/InfinityTools/paintcreator/facedet"
  "github.com/InfinityTools/paintcreator/graphics"
  "github.com/InfinityTools/paintcreator/paint"
  "github.com/InfinityTools/paintcreator/palette"
  "github.com/InfinityTools/paintcreator/palette/sort"
)


const TOOL_NAME = "Paint Creator"


func main() {
  err := loadArgs(os.Args)
  if err != nil {
    fmt.Printf("%v\n", err)
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
    logging.Infoln("Starting paint conversion")
    err = convert()
    if err != nil {
      logging.Errorf("%v\n", err)
      os.Exit(1)
    }
    logging.Infoln("Paint conversion finished successfully.")
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
  // consistency checks
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

  err = generatePaintings(cfg)
  if err != nil { return err }

  return nil
}


func generatePaintings(cfg *config.PaintConfig) error {
  if cfg == nil { return errors.New("No configuration data found") }

  // setting up general options
  bVal, _ := cfg.GetConfigValueBool(config.SECTION_SETTINGS, config.KEY_SETTINGS_THREADED)
  if b, x := argsThreaded(); x { bVal = b }
  paint.SetMultiThreaded(bVal)

  params, err := paintSetupParams(cfg)
  if err != nil { return err }

  regions, err := paintSetupRegions(cfg)
  if err != nil { return err }

  filters, err := paintSetupFilters(cfg)
  if err != nil { return err }

  detector := paintSetupDetector(cfg)

  // setting up output options
  outFile, _ := cfg.GetConfigValueText(config.SECTION_OUTPUT, config.KEY_OUTPUT_PATH)
  if s, x := argsOutput(); x { outFile = s }
  if len(outFile) == 0 { return errors.New("No output file specified") }

  outFormat, _ := cfg.GetConfigValueText(config.SECTION_OUTPUT, config.KEY_OUTPUT_FORMAT)
  if s, x := argsFormat(); x { outFormat = strings.ToLower(strings.TrimSpace(s)) }

  inputFiles, err := paintCollectInputs(cfg)
  if err != nil { return err }

  // printing a summary of current export options (INFO level)
  paletteName, _ := cfg.GetConfigValueText(config.SECTION_PALETTE, config.KEY_PALETTE_NAME)
  if s, x := argsPalette(); x { paletteName = strings.ToLower(strings.TrimSpace(s)) }
  var sb strings.Builder
  sb.WriteString("Options: ")
  sb.WriteString(fmt.Sprintf("verbose: %v", logging.GetVerbosity() < logging.INFO))
  sb.WriteString(fmt.Sprintf(", threading: %v", paint.GetMultiThreaded()))
  sb.WriteString(fmt.Sprintf(", output: %q", outFile))
  sb.WriteString(fmt.Sprintf(", intensity: %v", params.Intensity))
  sb.WriteString(fmt.Sprintf(", posterize levels: %d", params.PosterizeLevels))
  sb.WriteString(fmt.Sprintf(", brush size: %d", params.BrushSize))
  sb.WriteString(fmt.Sprintf(", palette: %s", paletteName))
  sb.WriteString(fmt.Sprintf(", face detection: %v", detector.Ready()))
  sb.WriteString(fmt.Sprintf(", inputs: %d", len(inputFiles)))
  sb.WriteString(fmt.Sprintf(", extra filters: %d", len(filters)))
  logging.Infoln(sb.String())

  multi := len(inputFiles) > 1
  if multi {
    if err := os.MkdirAll(outFile, 0755); err != nil { return fmt.Errorf("Cannot create output path %q: %v", outFile, err) }
  } else if dir := filepath.Dir(outFile); !directoryExists(dir) {
    if err := os.MkdirAll(dir, 0755); err != nil { return fmt.Errorf("Cannot create output path %q: %v", dir, err) }
  }

  for _, inputFile := range inputFiles {
    logging.Logf("Painting %s\n", inputFile)
    err := paintFile(cfg, inputFile, outFile, outFormat, multi, params, regions, filters, detector)
    if err != nil { return err }
  }

  return nil
}


// Converts a single input image and writes the result.
func paintFile(cfg *config.PaintConfig, inputFile, outFile, outFormat string, multi bool,
               params paint.Params, regions []paint.Region, filters []paint.PaintFilter,
               detector facedet.Detector) error {
  fin, err := os.Open(inputFile)
  if err != nil { return fmt.Errorf("Could not open %q: %v", inputFile, err) }
  defer fin.Close()

  g := graphics.Import(fin)
  if g.Error() != nil { return fmt.Errorf("Could not import %q: %v", inputFile, g.Error()) }

  buf := g.GetBuffer()

  // face regions: configured regions rescaled to buffer coordinates, detected regions added
  faceRegions := paint.ScaleRegions(regions, g.GetRatio())
  faceRegions = append(faceRegions, detector.Detect(buf)...)

  pipeline := paint.NewPipeline(params)
  if pipeline.Error() != nil { return pipeline.Error() }
  pipeline.SetRegions(faceRegions, 1.0)
  pipeline.SetProgressFunc(func(label string, fraction float64) {
    logging.Logf("%3.0f%% %s\n", fraction * 100.0, label)
  })

  mapper, err := paintResolvePalette(cfg, buf)
  if err != nil { return err }
  if mapper != nil { pipeline.SetColorMapper(mapper) }

  out, err := pipeline.Run(context.Background(), buf)
  if err != nil { return err }

  // extra filter passes from the config
  out, err = paint.ApplyFilters(out, filters, &params)
  if err != nil { return err }

  target := outFile
  format := graphics.FormatByExt(outFormat)
  if multi {
    ext := outFormat
    if format == graphics.TYPE_UNKNOWN { format = g.GetFormat(); ext = extByFormat(format) }
    base := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
    target = filepath.Join(outFile, base + "." + ext)
  } else if format == graphics.TYPE_UNKNOWN {
    format = graphics.FormatByExt(filepath.Ext(outFile))
    if format == graphics.TYPE_UNKNOWN { format = g.GetFormat() }
  }

  fout, err := os.Create(target)
  if err != nil { return fmt.Errorf("Cannot create %q: %v", target, err) }
  defer fout.Close()

  err = graphics.Export(fout, out.ToImage(), format)
  if err != nil { return fmt.Errorf("Could not export %q: %v", target, err) }
  logging.Logf("Finished %s\n", target)

  return nil
}


// Assembles the parameter set from config values and command line overrides.
func paintSetupParams(cfg *config.PaintConfig) (paint.Params, error) {
  params := paint.DefaultParams()

  if f, ok := cfg.GetConfigValueFloat(config.SECTION_PARAMS, config.KEY_PARAMS_INTENSITY); ok { params.Intensity = f }
  if i, ok := cfg.GetConfigValueInt(config.SECTION_PARAMS, config.KEY_PARAMS_LEVELS); ok { params.PosterizeLevels = int(i) }
  if f, ok := cfg.GetConfigValueFloat(config.SECTION_PARAMS, config.KEY_PARAMS_EDGES); ok { params.EdgeStrength = f }
  if i, ok := cfg.GetConfigValueInt(config.SECTION_PARAMS, config.KEY_PARAMS_BRUSH); ok { params.BrushSize = int(i) }
  if f, ok := cfg.GetConfigValueFloat(config.SECTION_PARAMS, config.KEY_PARAMS_WARMTH); ok { params.Warmth = f }
  if f, ok := cfg.GetConfigValueFloat(config.SECTION_PARAMS, config.KEY_PARAMS_SATURATION); ok { params.Saturation = f }
  if f, ok := cfg.GetConfigValueFloat(config.SECTION_PARAMS, config.KEY_PARAMS_TEXTURE); ok { params.TextureStrength = f }
  if f, ok := cfg.GetConfigValueFloat(config.SECTION_PARAMS, config.KEY_PARAMS_DETAIL); ok { params.DetailPreservation = f }

  if f, x := argsIntensity(); x { params.Intensity = float64(f) }
  if i, x := argsLevels(); x { params.PosterizeLevels = i }
  if f, x := argsEdges(); x { params.EdgeStrength = float64(f) }
  if i, x := argsBrush(); x { params.BrushSize = i }
  if f, x := argsWarmth(); x { params.Warmth = float64(f) }
  if f, x := argsSaturation(); x { params.Saturation = float64(f) }
  if f, x := argsTexture(); x { params.TextureStrength = float64(f) }
  if f, x := argsDetail(); x { params.DetailPreservation = float64(f) }

  err := params.Validate()
  return params, err
}


// Collects manually configured face regions. Region coordinates refer to the unscaled input image.
func paintSetupRegions(cfg *config.PaintConfig) ([]paint.Region, error) {
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


// Initializes the extra filter chain from the config and applies override options.
func paintSetupFilters(cfg *config.PaintConfig) ([]paint.PaintFilter, error) {
  filters := make([]paint.PaintFilter, 0)
  numFilters := cfg.GetConfigFilterLength()
  for idx := 0; idx < numFilters; idx++ {
    name, ok := cfg.GetConfigFilterName(idx)
    if !ok { return nil, fmt.Errorf("Empty filter at index=%d", idx) }
    options, ok := cfg.GetConfigFilterOptions(idx)
    if !ok { return nil, fmt.Errorf("Could not evaluate filter %q at index=%d", name, idx) }
    f := paint.CreateFilter(name)
    if f == nil { return nil, fmt.Errorf("Could not create filter: %s", name) }
    for idx2, option := range options {
      if option == nil || len(option) < 2 { return nil, fmt.Errorf("Could not evaluate option %d of filter %q (index=%d)", idx2, name, idx) }
      err := f.SetOption(option[0], option[1])
      if err != nil { return nil, fmt.Errorf("Filter %q (index=%d), option %q: %v", name, idx, option[0], err) }
    }
    filters = append(filters, f)
  }

  // applying override options
  if options, x := argsFilterOptions(); x {
    reg := regexp.MustCompile("(0|[1-9][0-9]*):([^=]+)=(.*)")
    for _, option := range options {
      values := reg.FindStringSubmatch(option)  // should return []string{"full-string", "idx", "key", "value"}
      if values == nil || len(values) < 4 { return nil, fmt.Errorf("Invalid filter option: %s", option) }
      index, err := strconv.Atoi(strings.TrimSpace(values[1]))
      if err != nil { return nil, fmt.Errorf("Invalid filter index: %s", values[1]) }
      key, value := strings.TrimSpace(values[2]), strings.TrimSpace(values[3])
      if index < 0 || index >= len(filters) {
        logging.Warnf("Filter index out of bounds: %d. Skipping option...\n", index)
        continue
      }
      filter := filters[index]
      logging.Logf("Filter #%d (%s): Overriding option %s = %s\n", index, filter.GetName(), key, value)
      err = filter.SetOption(key, value)
      if err != nil {
        logging.Warnf("Filter #%d (%s): Could not set option %s = %s: %v\n", index, filter.GetName(), key, value, err)
      }
    }
  }

  return filters, nil
}


// Creates a face detector from the configured cascade; --no-faces disables detection.
func paintSetupDetector(cfg *config.PaintConfig) facedet.Detector {
  if b, x := argsNoFaces(); x && b { return facedet.New("") }
  cascade, _ := cfg.GetConfigValueText(config.SECTION_SETTINGS, config.KEY_SETTINGS_CASCADE)
  if s, x := argsCascade(); x { cascade = s }
  return facedet.New(cascade)
}


// Resolves the palette selection of the job. Returns nil for selection "none".
func paintResolvePalette(cfg *config.PaintConfig, buf *paint.Buffer) (paint.ColorMapper, error) {
  name, _ := cfg.GetConfigValueText(config.SECTION_PALETTE, config.KEY_PALETTE_NAME)
  if s, x := argsPalette(); x { name = strings.ToLower(strings.TrimSpace(s)) }

  palFile, _ := cfg.GetConfigValueText(config.SECTION_PALETTE, config.KEY_PALETTE_FILE)
  if s, x := argsPaletteFile(); x { palFile = s }

  if len(palFile) > 0 {
    fin, err := os.Open(palFile)
    if err != nil { return nil, fmt.Errorf("External palette: %v", err) }
    defer fin.Close()
    name := strings.TrimSuffix(filepath.Base(palFile), filepath.Ext(palFile))
    pal, err := palette.ImportSorted(name, fin, paletteSortFlags(cfg))
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
func paletteSortFlags(cfg *config.PaintConfig) int {
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


// Collects the input files of the job, either from a static list or a numbered file sequence.
func paintCollectInputs(cfg *config.PaintConfig) ([]string, error) {
  entries, _ := cfg.GetConfigValueTextSeq(config.SECTION_INPUT, config.KEY_INPUT_FILES)
  if len(entries) > 0 {
    files := make([]string, 0, len(entries))
    for eidx, entry := range entries {
      if len(entry) == 0 { continue }
      if !fileExists(entry) { return nil, fmt.Errorf("Input file %d does not exist: %q", eidx, entry) }
      files = append(files, entry)
    }
    if len(files) == 0 { return nil, errors.New("No input files defined") }
    return files, nil
  }

  path, _ := cfg.GetConfigValueText(config.SECTION_INPUT, config.KEY_INPUT_PATH)
  prefix, _ := cfg.GetConfigValueText(config.SECTION_INPUT, config.KEY_INPUT_PREFIX)
  ext, _ := cfg.GetConfigValueText(config.SECTION_INPUT, config.KEY_INPUT_EXT)
  suffixStart, _ := cfg.GetConfigValueInt(config.SECTION_INPUT, config.KEY_INPUT_SUFFIX_START)
  suffixEnd, _ := cfg.GetConfigValueInt(config.SECTION_INPUT, config.KEY_INPUT_SUFFIX_END)
  suffixLen, _ := cfg.GetConfigValueInt(config.SECTION_INPUT, config.KEY_INPUT_SUFFIX_LEN)
  if len(prefix) == 0 && suffixStart == suffixEnd { return nil, errors.New("No input files defined") }

  // sequence may be incremented or decremented
  var inc int64
  if suffixEnd < suffixStart { inc = -1; suffixEnd-- } else { inc = 1; suffixEnd++ }
  files := make([]string, 0)
  for index := suffixStart; index != suffixEnd; index += inc {
    fileName := config.AssembleFilePath(path, prefix, ext, index, suffixLen)
    if !fileExists(fileName) { return nil, fmt.Errorf("Input file does not exist: %q", fileName) }
    files = append(files, fileName)
  }
  return files, nil
}


// Maps a TYPE_xxx constant back to a file name extension.
func extByFormat(format int) string {
  switch format {
    case graphics.TYPE_PNG: return "png"
    case graphics.TYPE_JPG: return "jpg"
    case graphics.TYPE_BMP: return "bmp"
    case graphics.TYPE_GIF: return "gif"
  }
  return "png"
}


func printHelp() {
  fmt.Printf("Usage: %s [options] configfile [configfile2 ...]\n", os.Args[0])
  const helpText = "Turns photographic images into painterly renditions based on settings defined in\n" +
                   "configuration files.\n" +
                   "\n" +
                // "...............................................................................\n" +
                   "Options:\n" +
                   "  --verbose                 Show additional log messages during the conversion\n" +
                   "                            process.\n" +
                   "  --silent                  Suppress any log messages during the conversion\n" +
                   "                            process except for errors.\n" +
                   "  --log-style               Print log messages in log style, complete with\n" +
                   "                            timestamp and log level.\n" +
                   "  --threaded                Enable multithreading for the paint filters. May\n" +
                   "                            speed up the conversion process on multi-core\n" +
                   "                            systems. Enabled by default if multiple CPU cores\n" +
                   "                            are detected.\n" +
                   "  --no-threaded             Disable multithreading for the paint filters.\n" +
                   "  --output file             Set the output file, or the output directory when\n" +
                   "                            multiple input files are defined. Overrides setting\n" +
                   "                            in the config file.\n" +
                   "  --format type             Set the output format. Available types: png, jpg,\n" +
                   "                            bmp, gif. Defaults to the format suggested by the\n" +
                   "                            output file extension, then to the input format.\n" +
                   "                            Overrides setting in the config file.\n" +
                   "  --intensity value         Blend weight of the painted result against the\n" +
                   "                            original image. Allowed range: [0.0, 1.0].\n" +
                   "                            Overrides setting in the config file.\n" +
                   "  --posterize-levels num    Number of quantization levels per color channel.\n" +
                   "                            Allowed range: [3, 16]. Overrides setting in the\n" +
                   "                            config file.\n" +
                   "  --edge-strength value     Strength of the painted outlines. Allowed range:\n" +
                   "                            [0.0, 1.0]. Overrides setting in the config file.\n" +
                   "  --brush-size size         Size of the simulated brush in pixels. Allowed\n" +
                   "                            range: [2, 8]. Overrides setting in the config\n" +
                   "                            file.\n" +
                   "  --warmth value            Bias of the color grading toward warm tones.\n" +
                   "                            Allowed range: [0.0, 1.0]. Overrides setting in the\n" +
                   "                            config file.\n" +
                   "  --saturation value        Strength of the global saturation treatment.\n" +
                   "                            Allowed range: [0.0, 1.0]. Overrides setting in the\n" +
                   "                            config file.\n" +
                   "  --texture-strength value  Strength of the canvas texture overlay. Allowed\n" +
                   "                            range: [0.0, 1.0]. Overrides setting in the config\n" +
                   "                            file.\n" +
                   "  --detail value            Amount of fine detail preserved from the original\n" +
                   "                            image. Allowed range: [0.0, 1.0]. Overrides setting\n" +
                   "                            in the config file.\n" +
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
                   "  --cascade file            Path of the face detection cascade file. Overrides\n" +
                   "                            setting in the config file.\n" +
                   "  --no-faces                Disable face detection. The color based skin\n" +
                   "                            heuristics remain active.\n" +
                   "  --filter idx:key=value    Set or override a filter option. 'idx' indicates\n" +
                   "                            the filter index in the list of extra filters,\n" +
                   "                            starting at index 0. 'key' and 'value' define a\n" +
                   "                            single filter option key and value pair. Wrap the\n" +
                   "                            whole definition in quotes if it contains spaces.\n" +
                   "                            Add multiple --filter instances to set or override\n" +
                   "                            multiple filter options.\n" +
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
