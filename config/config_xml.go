package config
// Parse functionality for XML structures.

import (
  "encoding/xml"
  "fmt"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-logging"
)

// Used internally by xml.Unmarshal to store output settings.
type XmlOutput struct {
  Path          string      `xml:"file"`
  Format        string      `xml:"format"`
}

// Used internally by xml.Unmarshal to store input file sequences settings.
type XmlInputSequence struct {
  Path          string      `xml:"path"`
  Prefix        string      `xml:"prefix"`
  SuffixStart   string      `xml:"suffixstart"`
  SuffixEnd     string      `xml:"suffixend"`
  SuffixLength  string      `xml:"suffixlength"`
  Ext           string      `xml:"ext"`
}

// Used internally by xml.Unmarshal to store input settings.
type XmlInput struct {
  Sequence      XmlInputSequence  `xml:"filesequence"`
  Files         []string          `xml:"files>path"`
}

// Used internally by xml.Unmarshal to store general settings.
type XmlSettings struct {
  Threaded      string      `xml:"threaded"`
  Cascade       string      `xml:"cascade"`
  Fps           string      `xml:"fps"`
}

// Used internally by xml.Unmarshal to store paint parameters.
type XmlParams struct {
  Intensity           string      `xml:"intensity"`
  PosterizeLevels     string      `xml:"posterizelevels"`
  EdgeStrength        string      `xml:"edgestrength"`
  BrushSize           string      `xml:"brushsize"`
  Warmth              string      `xml:"warmth"`
  Saturation          string      `xml:"saturation"`
  TextureStrength     string      `xml:"texturestrength"`
  DetailPreservation  string      `xml:"detailpreservation"`
  Regions             []string    `xml:"regions>region"`
}

// Used internally by xml.Unmarshal to store palette settings.
type XmlPalette struct {
  Name          string      `xml:"name"`
  File          string      `xml:"file"`
  SortBy        string      `xml:"sortby"`
}

// Used internally by xml.Unmarshal to store filter settings.
type XmlFilterOption struct {
  Key           string      `xml:"key"`
  Value         string      `xml:"value"`
}

// Used internally by xml.Unmarshal to store filter options.
type XmlFilter struct {
  Name          string            `xml:"name"`
  Options       []XmlFilterOption `xml:"option"`
}

// Used internally by xml.Unmarshal to store configuration data from XML scripts.
type XmlGenerator struct {
  XMLName       xml.Name        `xml:"generator"`
  Output        XmlOutput       `xml:"output"`
  Input         XmlInput        `xml:"input"`
  Settings      XmlSettings     `xml:"settings"`
  Params        XmlParams       `xml:"params"`
  Palette       XmlPalette      `xml:"palette"`
  Filters       []XmlFilter     `xml:"filters>filter"`
}


// Used internally. Parses XML source into intermediate structures.
func importXml(buffer []byte) (config *PaintConfig, err error) {
  xmlGenerator := XmlGenerator{}
  err = xml.Unmarshal(buffer, &xmlGenerator)
  if err != nil { return }

  config, err = processConfigXml(&xmlGenerator)
  return
}


// Used internally. Converts parsed XML input into useful data types, taking defaults into account for omitted input.
func processConfigXml(input *XmlGenerator) (config *PaintConfig, err error) {
  cfg := make(PaintConfig)
  config = &cfg
  logging.Logln("Processing output settings")
  err = processConfigXmlOutput(input, config)
  if err != nil { return }
  logging.Logln("Processing input settings")
  err = processConfigXmlInput(input, config)
  if err != nil { return }
  logging.Logln("Processing general settings")
  err = processConfigXmlSettings(input, config)
  if err != nil { return }
  logging.Logln("Processing paint parameters")
  err = processConfigXmlParams(input, config)
  if err != nil { return }
  logging.Logln("Processing palette settings")
  err = processConfigXmlPalette(input, config)
  if err != nil { return }
  logging.Logln("Processing filter settings")
  err = processConfigXmlFilters(input, config)
  return
}

// Used internally. Process "output" section.
func processConfigXmlOutput(input *XmlGenerator, config *PaintConfig) error {
  (*config)[SECTION_OUTPUT] = make(PaintMap)

  var textVal string
  textVal = fixPath(strings.TrimSpace(input.Output.Path))
  for len(textVal) > 1 && textVal[len(textVal)-1:] == "/" { textVal = textVal[:len(textVal)-1] }
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_PATH] = Text{textVal}

  textVal = strings.ToLower(strings.TrimSpace(input.Output.Format))
  (*config)[SECTION_OUTPUT][KEY_OUTPUT_FORMAT] = Text{textVal}

  return nil
}

// Used internally. Process "input" section.
func processConfigXmlInput(input *XmlGenerator, config *PaintConfig) error {
  (*config)[SECTION_INPUT] = make(PaintMap)

  var size int
  size = len(input.Input.Files)
  textSeq := make([]string, size)
  for i := 0; i < size; i++ {
    textSeq[i] = strings.TrimSpace(input.Input.Files[i])
  }
  (*config)[SECTION_INPUT][KEY_INPUT_FILES] = TextArray{textSeq}

  var textVal string
  textVal = fixPath(strings.TrimSpace(input.Input.Sequence.Path))
  if len(textVal) == 0 { textVal = "." }
  for len(textVal) > 1 && (textVal[len(textVal)-1:] == "/" || textVal[len(textVal)-1:] == "\\") { textVal = textVal[:len(textVal)-1] }
  (*config)[SECTION_INPUT][KEY_INPUT_PATH] = Text{textVal}

  textVal = strings.TrimSpace(input.Input.Sequence.Prefix)
  (*config)[SECTION_INPUT][KEY_INPUT_PREFIX] = Text{textVal}

  var intVal int64
  intVal = tryParseInt(input.Input.Sequence.SuffixStart, 0)
  (*config)[SECTION_INPUT][KEY_INPUT_SUFFIX_START] = Int{intVal}

  intVal = tryParseInt(input.Input.Sequence.SuffixEnd, 0)
  (*config)[SECTION_INPUT][KEY_INPUT_SUFFIX_END] = Int{intVal}

  intVal = tryParseInt(input.Input.Sequence.SuffixLength, 1)
  if intVal < 1 || intVal > 16 { return fmt.Errorf("Input>FileSequence>SuffixLength not in range [1,16]: %d", intVal) }
  (*config)[SECTION_INPUT][KEY_INPUT_SUFFIX_LEN] = Int{intVal}

  textVal = strings.TrimSpace(input.Input.Sequence.Ext)
  for len(textVal) > 0 && textVal[0:1] == "." { textVal = textVal[1:] }
  (*config)[SECTION_INPUT][KEY_INPUT_EXT] = Text{textVal}

  return nil
}

// Used internally. Process "settings" section.
func processConfigXmlSettings(input *XmlGenerator, config *PaintConfig) error {
  (*config)[SECTION_SETTINGS] = make(PaintMap)

  var boolVal bool
  boolVal = tryParseBool(input.Settings.Threaded, true)
  (*config)[SECTION_SETTINGS][KEY_SETTINGS_THREADED] = Bool{boolVal}

  textVal := fixPath(strings.TrimSpace(input.Settings.Cascade))
  (*config)[SECTION_SETTINGS][KEY_SETTINGS_CASCADE] = Text{textVal}

  floatVal := tryParseFloat(input.Settings.Fps, 30.0)
  if floatVal <= 0.0 || floatVal > 240.0 { return fmt.Errorf("Settings>Fps not in range (0.0, 240.0]: %f", floatVal) }
  (*config)[SECTION_SETTINGS][KEY_SETTINGS_FPS] = Float{floatVal}

  return nil
}

// Used internally. Process "params" section. Range violations are rejected here so that later stages can rely on
// validated values.
func processConfigXmlParams(input *XmlGenerator, config *PaintConfig) error {
  (*config)[SECTION_PARAMS] = make(PaintMap)

  var floatVal float64
  floatVal = tryParseFloat(input.Params.Intensity, 0.8)
  if floatVal < 0.0 || floatVal > 1.0 { return fmt.Errorf("Params>Intensity not in range [0.0, 1.0]: %f", floatVal) }
  (*config)[SECTION_PARAMS][KEY_PARAMS_INTENSITY] = Float{floatVal}

  var intVal int64
  intVal = tryParseInt(input.Params.PosterizeLevels, 8)
  if intVal < 3 || intVal > 16 { return fmt.Errorf("Params>PosterizeLevels not in range [3, 16]: %d", intVal) }
  (*config)[SECTION_PARAMS][KEY_PARAMS_LEVELS] = Int{intVal}

  floatVal = tryParseFloat(input.Params.EdgeStrength, 0.5)
  if floatVal < 0.0 || floatVal > 1.0 { return fmt.Errorf("Params>EdgeStrength not in range [0.0, 1.0]: %f", floatVal) }
  (*config)[SECTION_PARAMS][KEY_PARAMS_EDGES] = Float{floatVal}

  intVal = tryParseInt(input.Params.BrushSize, 4)
  if intVal < 2 || intVal > 8 { return fmt.Errorf("Params>BrushSize not in range [2, 8]: %d", intVal) }
  (*config)[SECTION_PARAMS][KEY_PARAMS_BRUSH] = Int{intVal}

  floatVal = tryParseFloat(input.Params.Warmth, 0.5)
  if floatVal < 0.0 || floatVal > 1.0 { return fmt.Errorf("Params>Warmth not in range [0.0, 1.0]: %f", floatVal) }
  (*config)[SECTION_PARAMS][KEY_PARAMS_WARMTH] = Float{floatVal}

  floatVal = tryParseFloat(input.Params.Saturation, 0.5)
  if floatVal < 0.0 || floatVal > 1.0 { return fmt.Errorf("Params>Saturation not in range [0.0, 1.0]: %f", floatVal) }
  (*config)[SECTION_PARAMS][KEY_PARAMS_SATURATION] = Float{floatVal}

  floatVal = tryParseFloat(input.Params.TextureStrength, 0.0)
  if floatVal < 0.0 || floatVal > 1.0 { return fmt.Errorf("Params>TextureStrength not in range [0.0, 1.0]: %f", floatVal) }
  (*config)[SECTION_PARAMS][KEY_PARAMS_TEXTURE] = Float{floatVal}

  floatVal = tryParseFloat(input.Params.DetailPreservation, 0.5)
  if floatVal < 0.0 || floatVal > 1.0 { return fmt.Errorf("Params>DetailPreservation not in range [0.0, 1.0]: %f", floatVal) }
  (*config)[SECTION_PARAMS][KEY_PARAMS_DETAIL] = Float{floatVal}

  // Region entries consist of x, y, width and height quadruplets
  size := len(input.Params.Regions)
  intSeq2 := make([][]int64, size)
  for i := 0; i < size; i++ {
    seq := tryParseIntSeq(input.Params.Regions[i], 0)
    if len(seq) != 4 { return fmt.Errorf("Params>Regions: Entry %d does not consist of x, y, width, height", i) }
    intSeq2[i] = seq
  }
  (*config)[SECTION_PARAMS][KEY_PARAMS_REGIONS] = IntMultiArray{intSeq2}

  return nil
}

// Used internally. Process "palette" section.
func processConfigXmlPalette(input *XmlGenerator, config *PaintConfig) error {
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


func processConfigXmlFilters(input *XmlGenerator, config *PaintConfig) error {
  (*config)[SECTION_FILTERS] = make(PaintMap)

  // process filters sequentially
  for index, filter := range input.Filters {
    f := Filter{ Name: filter.Name, Options: make(map[string]string) }
    for i := 0; i < len(filter.Options); i++ {
      key, value := strings.TrimSpace(filter.Options[i].Key), strings.TrimSpace(filter.Options[i].Value)
      f.Options[key] = value
    }
    (*config)[SECTION_FILTERS][strconv.Itoa(index)] = f
  }

  return nil
}
