/*
Package config translates paint job configurations from XML or JSON structures into a preprocessed map structure
for quick access.

Paint Creator is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package config

import (
  "bytes"
  "errors"
  "io"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-logging"
)


// Available paint configuration section names
const (
  SECTION_OUTPUT    = "output"
  SECTION_INPUT     = "input"
  SECTION_SETTINGS  = "settings"
  SECTION_PARAMS    = "params"
  SECTION_PALETTE   = "palette"
  SECTION_FILTERS   = "filters"
)

// Available paint configuration key names
const (
  KEY_OUTPUT_PATH         = "output_path"
  KEY_OUTPUT_FORMAT       = "output_format"
  KEY_INPUT_PATH          = "input_path"
  KEY_INPUT_PREFIX        = "input_prefix"
  KEY_INPUT_SUFFIX_START  = "input_suffix_start"
  KEY_INPUT_SUFFIX_END    = "input_suffix_end"
  KEY_INPUT_SUFFIX_LEN    = "input_suffix_len"
  KEY_INPUT_EXT           = "input_ext"
  KEY_INPUT_FILES         = "input_files"
  KEY_SETTINGS_THREADED   = "threaded"
  KEY_SETTINGS_CASCADE    = "cascade"
  KEY_SETTINGS_FPS        = "fps"
  KEY_PARAMS_INTENSITY    = "intensity"
  KEY_PARAMS_LEVELS       = "posterize_levels"
  KEY_PARAMS_EDGES        = "edge_strength"
  KEY_PARAMS_BRUSH        = "brush_size"
  KEY_PARAMS_WARMTH       = "warmth"
  KEY_PARAMS_SATURATION   = "saturation"
  KEY_PARAMS_TEXTURE      = "texture_strength"
  KEY_PARAMS_DETAIL       = "detail_preservation"
  KEY_PARAMS_REGIONS      = "region"
  KEY_PALETTE_NAME        = "palette_name"
  KEY_PALETTE_FILE        = "palette_file"
  KEY_PALETTE_SORT_BY     = "palette_sort_by"
  KEY_FILTERS             = "filter"
)

// Internally used to determine assigned value type.
type ID int

// PaintMap maps key => value associations.
type PaintMap map[string]Variant

// PaintConfig maps section => key => value.
type PaintConfig map[string]PaintMap


// ImportConfig constructs a PaintConfig object from configuration data found in the source wrapped by the Reader object.
func ImportConfig(r io.Reader) (config *PaintConfig, err error) {
  // reading XML data into byte buffer
  logging.Logln("Loading configuration data")
  buffer := make([]byte, 1024)
  totalRead := 0
  for {
    bytesRead, err := r.Read(buffer[totalRead:]);
    if err != nil { break }
    totalRead += bytesRead
    if totalRead == len(buffer) {
      buffer = append(buffer, make([]byte, len(buffer))...)
    }
  }
  if err != nil && err != io.EOF { return }
  if totalRead < len(buffer) {
    buffer = buffer[:totalRead]
  }

  // try to determine input format
  isXml := true
  ofs := 0
  whiteSpace := []byte{0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x20}
  for ofs < len(buffer) {
    if bytes.IndexByte(whiteSpace, buffer[ofs]) < 0 {
      if buffer[ofs] == '<' {
        isXml = true
      } else if buffer[ofs] == '{' {
        isXml = false
      } else {
        err = errors.New("Configuration: Unrecognized format")
      }
      break
    }
    ofs++
  }
  if err != nil { return }

  // parsing source into intermediate structures
  if isXml {
    config, err = importXml(buffer)
  } else {
    config, err = importJson(buffer)
  }
  if err != nil { return }

  logging.Logln("Finished loading configuration data")
  return
}

// GetConfigValueBool returns the boolean value assigned to the specified section => key location. ok returns whether
// the value is available.
func (cfg *PaintConfig) GetConfigValueBool(section, key string) (retVal bool, ok bool) {
  value, ok := (*cfg)[section][key].(VarBool)
  if !ok { return }
  retVal = value.ToBool()
  return
}

// GetConfigValueInt returns the numeric value assigned to the specified section => key location. ok returns whether
// the value is available.
func (cfg *PaintConfig) GetConfigValueInt(section, key string) (retVal int64, ok bool) {
  value, ok := (*cfg)[section][key].(VarInt)
  if !ok { return }
  retVal = value.ToInt()
  return
}

// GetConfigValueFloat returns the floating point value assigned to the specified section => key location. ok returns
// whether the value is available.
func (cfg *PaintConfig) GetConfigValueFloat(section, key string) (retVal float64, ok bool) {
  value, ok := (*cfg)[section][key].(VarFloat)
  if !ok { return }
  retVal = value.ToFloat()
  return
}

// GetConfigValueText returns the string value assigned to the specified section => key location. ok returns whether
// the value is available.
func (cfg *PaintConfig) GetConfigValueText(section, key string) (retVal string, ok bool) {
  value, ok := (*cfg)[section][key].(Variant)
  if !ok { return }
  retVal = value.ToString()
  return
}

// GetConfigValueIntSeq2 returns the two-dimensional numeric array assigned to the specified section => key location.
// ok returns whether the value is available.
func (cfg *PaintConfig) GetConfigValueIntSeq2(section, key string) (retVal [][]int64, ok bool) {
  value, ok := (*cfg)[section][key].(VarIntMultiArray)
  if !ok { return }
  retVal = value.ToIntMultiArray()
  return
}

// GetConfigValueTextSeq returns the array of strings assigned to the specified section => key location. ok returns
// whether the value is available.
func (cfg *PaintConfig) GetConfigValueTextSeq(section, key string) (retVal []string, ok bool) {
  value, ok := (*cfg)[section][key].(VarTextArray)
  if !ok { return }
  retVal = value.ToTextArray()
  return
}

// GetConfigFilterLength returns the number of available filter definitions.
func (cfg *PaintConfig) GetConfigFilterLength() int {
  return len((*cfg)[SECTION_FILTERS])
}

// GetConfigFilterName returns the name of the filter at the specified index. ok returns whether the filter is available.
func (cfg *PaintConfig) GetConfigFilterName(index int) (retVal string, ok bool) {
  var option VarFilterMap
  if option, ok = (*cfg)[SECTION_FILTERS][strconv.Itoa(index)].(VarFilterMap); ok {
    retVal = option.GetName()
  }
  return
}

// GetConfigFilterOptions returns the options of the specified filter as multi-array. First item of each entry contains
// key, second item contains value. ok returns whether the filter is available.
func (cfg *PaintConfig) GetConfigFilterOptions(index int) (retVal [][]string, ok bool) {
  var filter VarFilterMap
  if filter, ok = (*cfg)[SECTION_FILTERS][strconv.Itoa(index)].(VarFilterMap); ok {
    retVal = filter.GetOptions()
  } else {
    retVal = make([][]string, 0)
  }
  return
}


// Used internally. Attempts to convert the content of s into a boolean value. Failing that the function will return
// the specified default value. Both numeric (decimal/hexadecimal) and true/false string values are detected.
func tryParseBool(s string, defValue bool) bool {
  // try true/false first
  if strings.ToLower(s) == "true" {
    return true
  } else if strings.ToLower(s) == "false" {
    return false
  }
  // try numeric value second
  def := 0
  if defValue { def = 1 }
  return (tryParseInt(s, def) != 0)
}

// Used internally. Attempts to convert the content of s into a signed numeric value. Failing that the function will
// return the specified default value. Both decimal and hexadecimal (with prefix "0x") are detected.
func tryParseInt(s string, defValue int) int64 {
  s = strings.ToLower(strings.TrimSpace(s))

  var value int64
  var err error
  if len(s) > 2 && s[:2] == "0x" {
    // hex value?
    value, err = strconv.ParseInt(s[2:], 16, 32)
  } else {
    // dec value?
    value, err = strconv.ParseInt(s, 10, 32)
  }
  if err != nil { value = int64(defValue) }

  return value
}

// Used internally. Attempts to convert the content of s into an unsigned numeric value. Failing that the function
// will return the specified default value. Both decimal and hexadecimal (with prefix "0x") are detected.
func tryParseUInt(s string, defValue uint) int64 {
  s = strings.ToLower(strings.TrimSpace(s))

  var value uint64
  var err error
  if len(s) > 2 && s[:2] == "0x" {
    // hex value?
    value, err = strconv.ParseUint(s[2:], 16, 32)
  } else {
    // dec value?
    value, err = strconv.ParseUint(s, 10, 32)
  }
  if err != nil { value = uint64(defValue) }

  return int64(value)
}

// Used internally. Attempts to convert the content of s into a floating point value. Failing that the function will
// return the specified default value.
func tryParseFloat(s string, defValue float64) float64 {
  s = strings.ToLower(strings.TrimSpace(s))

  var value float64
  var err error
  value, err = strconv.ParseFloat(s, 64)
  if err != nil { value = defValue }

  return value
}

// Used internally. Attempts to convert the content of s into a sequence of signed numeric values. Invalid elements
// will be replaced by the provided default value. The returned array may contain zero, one or more items.
func tryParseIntSeq(s string, defValue int) []int64 {
  items := strings.Split(s, ",")
  retVal := make([]int64, len(items))
  for idx, val := range items {
    retVal[idx] = tryParseInt(val, defValue)
  }

  return retVal
}

// Used internally. Attempts to convert the content of s into a sequence of string values. The returned array may
// contain zero, one or more items.
func tryParseTextSeq(s string) []string {
  items := strings.Split(s, ",")
  retVal := make([]string, len(items))
  for idx, val := range items {
    retVal[idx] = strings.TrimSpace(val)
  }

  return retVal
}

// Used internally. Fixes Windows-specific path separater characters.
func fixPath(s string) string {
  if PATH_SEPARATOR == "\\" {
    s = strings.Replace(s, PATH_SEPARATOR, "/", -1)
  }
  return s
}
