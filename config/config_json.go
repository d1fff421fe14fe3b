package config
// Parse functionality for JSON structures.

import (
  "encoding/json"
  "fmt"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-logging"
)

// Used internally by json.Unmarshal to store output settings.
type JsonOutput struct {
  File          string
  Format        string
}

// Used internally by json.Unmarshal to store file input sequences.
type JsonInputSequence struct {
  Path          string
  Prefix        string
  SuffixStart   int64
  SuffixEnd     int64
  SuffixLength  int64
  Ext           string
}

// Used internally by json.Unmarshal to store input settings.
type JsonInput struct {
  Files         []string
  FileSequence  JsonInputSequence
}

// Used internally by json.Unmarshal to store general settings.
type JsonSettings struct {
  Threaded      *bool
  Cascade       string
  Fps           *float64
}

// Used internally by json.Unmarshal to store paint parameters.
type JsonParams struct {
  Intensity           *float64
  PosterizeLevels     *int64
  EdgeStrength        *float64
  BrushSize           *int64
  Warmth              *float64
  Saturation          *float64
  TextureStrength     *float64
  DetailPreservation  *float64
  Regions             [][]int64
}

// Used internally by json.Unmarshal to store palette settings.
type JsonPalette struct {
  Name          string
  File          string
  SortBy        string
}

// Used internally by json.Unmarshal to store filter settings.
type JsonFilterOptions struct {
  Key           string
  Value         string
}

// Used internally by json.Unmarshal to store filter options.
type JsonFilter struct {
  Name          string
  Options       []JsonFilterOptions
}

// Used internally by json.Unmarshal to store configuration data from JSON scripts.
type JsonGenerator struct {
  Output        JsonOutput
  Input         JsonInput
  Settings      JsonSettings
  Params        JsonParams
  Palette       JsonPalette
  Filters       []JsonFilter
}

// Used internally. Parses JSON source into intermediate structures.
func importJson(buffer []byte) (config *PaintConfig, err error) {
  jsonGenerator := JsonGenerator{}
  err = json.Unmarshal(buffer, &jsonGenerator)
  if err != nil { return }

  config, err = processConfigJson(&jsonGenerator)
  return
}


// Used internally. Converts parsed JSON input into useful data types, taking defaults into account for omitted input.
func processConfigJson(input *JsonGenerator) (config *PaintConfig, err error) {
  cfg := make(PaintConfig)
  config = &cfg
  logging.Logln("Processing output settings")
  err = processConfigJsonOutput(input, config)
  if err != nil { return }
  logging.Logln("Processing input settings")
  err = processConfigJsonInput(input, config)
  if err != nil { return }
  logging.Logln("Processing general settings")
  err = processConfigJsonSettings(input, config)
  if err != nil { return }
  logging.Logln("Processing paint parameters")
  err = processConfigJsonParams(input, config)
  if err != nil { return }
  logging.Logln("Processing palette settings")
  err = processConfigJsonPalette(input, config)
  if err != nil { return }
  logging.Logln("Processing filter settings")
  err = processConfigJsonFilters(input, config)
  return
}

// Used internally. Process "output" section.
func processConfigJsonOutput(input *JsonGenerator, config *PaintConfig) error {
  (*config)[SECTION_OUTPUT] = make(PaintMap)

  var textVal string
  textVal = fixPath(strings.TrimSpace(input.Output.File))
  for len(textVal) > 1 && textVal[len(textVal)-1:] == "/" { textVal = textVal[:len(textVal)-1] }
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_PATH] = Text{textVal}

  textVal = strings.ToLower(strings.TrimSpace(input.Output.Format))
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_FORMAT] = Text{textVal}

  return nil
}

// Used internally. Process "input" section.
func processConfigJsonInput(input *JsonGenerator, config *PaintConfig) error {
  (*config)[SECTION_INPUT] = make(PaintMap)

  var size int
  size = len(input.Input.Files)
  textSeq := make([]string, size)
  for i := 0; i < size; i++ {
    textSeq[i] = strings.TrimSpace(input.Input.Files[i])
  }
  (*config)[SECTION_INPUT][KEY_INPUT_FILES] = TextArray{textSeq}

  var textVal string
  textVal = fixPath(strings.TrimSpace(input.Input.FileSequence.Path))
  if len(textVal) == 0 { textVal = "." }
  for len(textVal) > 1 && (textVal[len(textVal)-1:] == "/" || textVal[len(textVal)-1:] == "\\") { textVal = textVal[:len(textVal)-1] }
  (*config)[SECTION_INPUT][KEY_INPUT_PATH] = Text{textVal}

  textVal = strings.TrimSpace(input.Input.FileSequence.Prefix)
  (*config)[SECTION_INPUT][KEY_INPUT_PREFIX] = Text{textVal}

  var intVal int64
  intVal = input.Input.FileSequence.SuffixStart
  (*config)[SECTION_INPUT][KEY_INPUT_SUFFIX_START] = Int{intVal}

  intVal = input.Input.FileSequence.SuffixEnd
  (*config)[SECTION_INPUT][KEY_INPUT_SUFFIX_END] = Int{intVal}

  intVal = input.Input.FileSequence.SuffixLength
  if intVal == 0 { intVal = 1 }
  if intVal < 1 || intVal > 16 { return fmt.Errorf("Input>FileSequence>SuffixLength not in range [1,16]: %d", intVal) }
  (*config)[SECTION_INPUT][KEY_INPUT_SUFFIX_LEN] = Int{intVal}

  textVal = strings.TrimSpace(input.Input.FileSequence.Ext)
  for len(textVal) > 0 && textVal[0:1] == "." { textVal = textVal[1:] }
  (*config)[SECTION_INPUT][KEY_INPUT_EXT] = Text{textVal}

  return nil
}

// Used internally. Process "settings" section.
func processConfigJsonSettings(input *JsonGenerator, config *PaintConfig) error {
  (*config)[SECTION_SETTINGS] = make(PaintMap)

  boolVal := true
  if input.Settings.Threaded != nil { boolVal = *input.Settings.Threaded }
  (*config)[SECTION_SETTINGS][KEY_SETTINGS_THREADED] = Bool{boolVal}

  textVal := fixPath(strings.TrimSpace(input.Settings.Cascade))
  (*config)[SECTION_SETTINGS][KEY_SETTINGS_CASCADE] = Text{textVal}

  floatVal := 30.0
  if input.Settings.Fps != nil { floatVal = *input.Settings.Fps }
  if floatVal <= 0.0 || floatVal > 240.0 { return fmt.Errorf("Settings>Fps not in range (0.0, 240.0]: %f", floatVal) }
  (*config)[SECTION_SETTINGS][KEY_SETTINGS_FPS] = Float{floatVal}

  return nil
}

// Used internally. Process "params" section. Range violations are rejected here so that later stages can rely on
// validated values.
func processConfigJsonParams(input *JsonGenerator, config *PaintConfig) error {
  (*config)[SECTION_PARAMS] = make(PaintMap)

  var floatVal float64
  floatVal = 0.8
  if input.Params.Intensity != nil { floatVal = *input.Params.Intensity }
  if floatVal < 0.0 || floatVal > 1.0 { return fmt.Errorf("Params>Intensity not in range [0.0, 1.0]: %f", floatVal) }
  (*config)[SECTION_PARAMS][KEY_PARAMS_INTENSITY] = Float{floatVal}

  var intVal int64
  intVal = 8
  if input.Params.PosterizeLevels != nil { intVal = *input.Params.PosterizeLevels }
  if intVal < 3 || intVal > 16 { return fmt.Errorf("Params>PosterizeLevels not in range [3, 16]: %d", intVal) }
  (*config)[SECTION_PARAMS][KEY_PARAMS_LEVELS] = Int{intVal}

  floatVal = 0.5
  if input.Params.EdgeStrength != nil { floatVal = *input.Params.EdgeStrength }
  if floatVal < 0.0 || floatVal > 1.0 { return fmt.Errorf("Params>EdgeStrength not in range [0.0, 1.0]: %f", floatVal) }
  (*config)[SECTION_PARAMS][KEY_PARAMS_EDGES] = Float{floatVal}

  intVal = 4
  if input.Params.BrushSize != nil { intVal = *input.Params.BrushSize }
  if intVal < 2 || intVal > 8 { return fmt.Errorf("Params>BrushSize not in range [2, 8]: %d", intVal) }
  (*config)[SECTION_PARAMS][KEY_PARAMS_BRUSH] = Int{intVal}

  floatVal = 0.5
  if input.Params.Warmth != nil { floatVal = *input.Params.Warmth }
  if floatVal < 0.0 || floatVal > 1.0 { return fmt.Errorf("Params>Warmth not in range [0.0, 1.0]: %f", floatVal) }
  (*config)[SECTION_PARAMS][KEY_PARAMS_WARMTH] = Float{floatVal}

  floatVal = 0.5
  if input.Params.Saturation != nil { floatVal = *input.Params.Saturation }
  if floatVal < 0.0 || floatVal > 1.0 { return fmt.Errorf("Params>Saturation not in range [0.0, 1.0]: %f", floatVal) }
  (*config)[SECTION_PARAMS][KEY_PARAMS_SATURATION] = Float{floatVal}

  floatVal = 0.0
  if input.Params.TextureStrength != nil { floatVal = *input.Params.TextureStrength }
  if floatVal < 0.0 || floatVal > 1.0 { return fmt.Errorf("Params>TextureStrength not in range [0.0, 1.0]: %f", floatVal) }
  (*config)[SECTION_PARAMS][KEY_PARAMS_TEXTURE] = Float{floatVal}

  floatVal = 0.5
  if input.Params.DetailPreservation != nil { floatVal = *input.Params.DetailPreservation }
  if floatVal < 0.0 || floatVal > 1.0 { return fmt.Errorf("Params>DetailPreservation not in range [0.0, 1.0]: %f", floatVal) }
  (*config)[SECTION_PARAMS][KEY_PARAMS_DETAIL] = Float{floatVal}

  // Region entries consist of x, y, width and height quadruplets
  size := len(input.Params.Regions)
  intSeq2 := make([][]int64, size)
  for i := 0; i < size; i++ {
    region := input.Params.Regions[i]
    if len(region) != 4 { return fmt.Errorf("Params>Regions: Entry %d does not consist of x, y, width, height", i) }
    intSeq2[i] = region
  }
  (*config)[SECTION_PARAMS][KEY_PARAMS_REGIONS] = IntMultiArray{intSeq2}

  return nil
}

// Used internally. Process "palette" section.
func processConfigJsonPalette(input *JsonGenerator, config *PaintConfig) error {
  (*config)[SECTION_PALETTE] = make(PaintMap)

  var textVal string
  textVal = strings.ToLower(strings.TrimSpace(input.Palette.Name))
  if len(textVal) == 0 { textVal = "none" }
  (*config)[SECTION_PALETTE][KEY_PALETTE_NAME] = Text{textVal}

  textVal = fixPath(strings.TrimSpace(input.Palette.File))
  for len(textVal) > 1 && textVal[len(textVal)-1:] == "/" { textVal = textVal[:len(textVal)-1] }
  (*config)[SECTION_PALETTE][KEY_PALETTE_FILE] = Text{textVal}

  textVal = strings.ToLower(strings.TrimSpace(input.Palette.SortBy))
  if len(textVal) == 0 { textVal = "none" }
  (*config)[SECTION_PALETTE][KEY_PALETTE_SORT_BY] = Text{textVal}

  return nil
}

func processConfigJsonFilters(input *JsonGenerator, config *PaintConfig) error {
  (*config)[SECTION_FILTERS] = make(PaintMap)

  // process filters sequentially
  for index, filter := range input.Filters {
    f := Filter{ Name: filter.Name, Options: make(map[string]string) }
    for _, option := range filter.Options {
      f.Options[option.Key] = option.Value
    }
    (*config)[SECTION_FILTERS][strconv.Itoa(index)] = f
  }

  return nil
}
