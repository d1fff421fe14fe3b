package config

import (
  "strings"
  "testing"
)

const jsonConfig = `{
  "output": { "file": "out/painting.png", "format": "PNG" },
  "input": {
    "filesequence": { "path": "frames/", "prefix": "frame_", "suffixstart": 1, "suffixend": 10, "suffixlength": 4, "ext": ".png" }
  },
  "settings": { "threaded": false, "cascade": "data/facefinder", "fps": 24.0 },
  "params": {
    "intensity": 0.9,
    "posterizelevels": 10,
    "edgestrength": 0.25,
    "brushsize": 6,
    "warmth": 0.7,
    "saturation": 0.4,
    "texturestrength": 0.2,
    "detailpreservation": 0.6,
    "regions": [[10, 20, 30, 40], [50, 60, 70, 80]]
  },
  "palette": { "name": "Autumn", "sortby": "lightness" },
  "filters": [
    { "name": "vignette", "options": [ { "key": "strength", "value": "0.5" } ] }
  ]
}`

const xmlConfig = `<?xml version="1.0" encoding="UTF-8"?>
<generator>
  <output>
    <file>out/painting.png</file>
    <format>PNG</format>
  </output>
  <input>
    <filesequence>
      <path>frames/</path>
      <prefix>frame_</prefix>
      <suffixstart>1</suffixstart>
      <suffixend>10</suffixend>
      <suffixlength>4</suffixlength>
      <ext>.png</ext>
    </filesequence>
  </input>
  <settings>
    <threaded>false</threaded>
    <cascade>data/facefinder</cascade>
    <fps>24.0</fps>
  </settings>
  <params>
    <intensity>0.9</intensity>
    <posterizelevels>10</posterizelevels>
    <edgestrength>0.25</edgestrength>
    <brushsize>6</brushsize>
    <warmth>0.7</warmth>
    <saturation>0.4</saturation>
    <texturestrength>0.2</texturestrength>
    <detailpreservation>0.6</detailpreservation>
    <regions>
      <region>10, 20, 30, 40</region>
      <region>50, 60, 70, 80</region>
    </regions>
  </params>
  <palette>
    <name>Autumn</name>
    <sortby>lightness</sortby>
  </palette>
  <filters>
    <filter>
      <name>vignette</name>
      <option><key>strength</key><value>0.5</value></option>
    </filter>
  </filters>
</generator>`


// checkFullConfig validates the values shared by the JSON and XML test documents.
func checkFullConfig(t *testing.T, cfg *PaintConfig) {
  t.Helper()

  if s, ok := cfg.GetConfigValueText(SECTION_OUTPUT, KEY_OUTPUT_PATH); !ok || s != "out/painting.png" {
    t.Errorf("output path = %q (%v)", s, ok)
  }
  if s, ok := cfg.GetConfigValueText(SECTION_OUTPUT, KEY_OUTPUT_FORMAT); !ok || s != "png" {
    t.Errorf("output format = %q (%v), want normalized %q", s, ok, "png")
  }

  if s, ok := cfg.GetConfigValueText(SECTION_INPUT, KEY_INPUT_PATH); !ok || s != "frames" {
    t.Errorf("input path = %q (%v), want trailing separator stripped", s, ok)
  }
  if s, ok := cfg.GetConfigValueText(SECTION_INPUT, KEY_INPUT_PREFIX); !ok || s != "frame_" {
    t.Errorf("input prefix = %q (%v)", s, ok)
  }
  if i, ok := cfg.GetConfigValueInt(SECTION_INPUT, KEY_INPUT_SUFFIX_START); !ok || i != 1 {
    t.Errorf("suffix start = %d (%v)", i, ok)
  }
  if i, ok := cfg.GetConfigValueInt(SECTION_INPUT, KEY_INPUT_SUFFIX_END); !ok || i != 10 {
    t.Errorf("suffix end = %d (%v)", i, ok)
  }
  if i, ok := cfg.GetConfigValueInt(SECTION_INPUT, KEY_INPUT_SUFFIX_LEN); !ok || i != 4 {
    t.Errorf("suffix length = %d (%v)", i, ok)
  }
  if s, ok := cfg.GetConfigValueText(SECTION_INPUT, KEY_INPUT_EXT); !ok || s != "png" {
    t.Errorf("input ext = %q (%v), want leading dot stripped", s, ok)
  }

  if b, ok := cfg.GetConfigValueBool(SECTION_SETTINGS, KEY_SETTINGS_THREADED); !ok || b {
    t.Errorf("threaded = %v (%v), want false", b, ok)
  }
  if s, ok := cfg.GetConfigValueText(SECTION_SETTINGS, KEY_SETTINGS_CASCADE); !ok || s != "data/facefinder" {
    t.Errorf("cascade = %q (%v)", s, ok)
  }
  if f, ok := cfg.GetConfigValueFloat(SECTION_SETTINGS, KEY_SETTINGS_FPS); !ok || f != 24.0 {
    t.Errorf("fps = %v (%v), want 24", f, ok)
  }

  if f, ok := cfg.GetConfigValueFloat(SECTION_PARAMS, KEY_PARAMS_INTENSITY); !ok || f != 0.9 {
    t.Errorf("intensity = %v (%v)", f, ok)
  }
  if i, ok := cfg.GetConfigValueInt(SECTION_PARAMS, KEY_PARAMS_LEVELS); !ok || i != 10 {
    t.Errorf("posterize levels = %d (%v)", i, ok)
  }
  if f, ok := cfg.GetConfigValueFloat(SECTION_PARAMS, KEY_PARAMS_EDGES); !ok || f != 0.25 {
    t.Errorf("edge strength = %v (%v)", f, ok)
  }
  if i, ok := cfg.GetConfigValueInt(SECTION_PARAMS, KEY_PARAMS_BRUSH); !ok || i != 6 {
    t.Errorf("brush size = %d (%v)", i, ok)
  }
  if f, ok := cfg.GetConfigValueFloat(SECTION_PARAMS, KEY_PARAMS_DETAIL); !ok || f != 0.6 {
    t.Errorf("detail preservation = %v (%v)", f, ok)
  }

  regions, ok := cfg.GetConfigValueIntSeq2(SECTION_PARAMS, KEY_PARAMS_REGIONS)
  if !ok || len(regions) != 2 {
    t.Fatalf("regions = %v (%v)", regions, ok)
  }
  if regions[0][0] != 10 || regions[0][3] != 40 || regions[1][2] != 70 {
    t.Errorf("region values = %v", regions)
  }

  if s, ok := cfg.GetConfigValueText(SECTION_PALETTE, KEY_PALETTE_NAME); !ok || s != "autumn" {
    t.Errorf("palette name = %q (%v), want normalized %q", s, ok, "autumn")
  }
  if s, ok := cfg.GetConfigValueText(SECTION_PALETTE, KEY_PALETTE_SORT_BY); !ok || s != "lightness" {
    t.Errorf("palette sortby = %q (%v)", s, ok)
  }

  if n := cfg.GetConfigFilterLength(); n != 1 {
    t.Fatalf("filter length = %d, want 1", n)
  }
  if name, ok := cfg.GetConfigFilterName(0); !ok || name != "vignette" {
    t.Errorf("filter name = %q (%v)", name, ok)
  }
  options, ok := cfg.GetConfigFilterOptions(0)
  if !ok || len(options) != 1 || options[0][0] != "strength" || options[0][1] != "0.5" {
    t.Errorf("filter options = %v (%v)", options, ok)
  }
}


func TestImportConfigJson(t *testing.T) {
  cfg, err := ImportConfig(strings.NewReader(jsonConfig))
  if err != nil {
    t.Fatalf("ImportConfig: %v", err)
  }
  checkFullConfig(t, cfg)
}

func TestImportConfigXml(t *testing.T) {
  cfg, err := ImportConfig(strings.NewReader(xmlConfig))
  if err != nil {
    t.Fatalf("ImportConfig: %v", err)
  }
  checkFullConfig(t, cfg)
}

func TestImportConfigDefaults(t *testing.T) {
  cfg, err := ImportConfig(strings.NewReader(`{}`))
  if err != nil {
    t.Fatalf("ImportConfig: %v", err)
  }
  for _, tc := range []struct {
    key   string
    want  float64
  }{
    {KEY_PARAMS_INTENSITY, 0.8},
    {KEY_PARAMS_EDGES, 0.5},
    {KEY_PARAMS_WARMTH, 0.5},
    {KEY_PARAMS_SATURATION, 0.5},
    {KEY_PARAMS_TEXTURE, 0.0},
    {KEY_PARAMS_DETAIL, 0.5},
  } {
    if f, ok := cfg.GetConfigValueFloat(SECTION_PARAMS, tc.key); !ok || f != tc.want {
      t.Errorf("default %s = %v (%v), want %v", tc.key, f, ok, tc.want)
    }
  }
  if i, ok := cfg.GetConfigValueInt(SECTION_PARAMS, KEY_PARAMS_LEVELS); !ok || i != 8 {
    t.Errorf("default posterize levels = %d (%v), want 8", i, ok)
  }
  if i, ok := cfg.GetConfigValueInt(SECTION_PARAMS, KEY_PARAMS_BRUSH); !ok || i != 4 {
    t.Errorf("default brush size = %d (%v), want 4", i, ok)
  }
  if b, ok := cfg.GetConfigValueBool(SECTION_SETTINGS, KEY_SETTINGS_THREADED); !ok || !b {
    t.Errorf("default threaded = %v (%v), want true", b, ok)
  }
  if f, ok := cfg.GetConfigValueFloat(SECTION_SETTINGS, KEY_SETTINGS_FPS); !ok || f != 30.0 {
    t.Errorf("default fps = %v (%v), want 30", f, ok)
  }
  if s, ok := cfg.GetConfigValueText(SECTION_PALETTE, KEY_PALETTE_NAME); !ok || s != "none" {
    t.Errorf("default palette name = %q (%v), want %q", s, ok, "none")
  }
}

func TestImportConfigRangeViolations(t *testing.T) {
  for _, tc := range []struct {
    name  string
    doc   string
  }{
    {"intensity", `{"params": {"intensity": 1.5}}`},
    {"levels low", `{"params": {"posterizelevels": 2}}`},
    {"levels high", `{"params": {"posterizelevels": 20}}`},
    {"brush", `{"params": {"brushsize": 1}}`},
    {"warmth", `{"params": {"warmth": -0.1}}`},
    {"fps", `{"settings": {"fps": 0}}`},
    {"region triplet", `{"params": {"regions": [[1, 2, 3]]}}`},
    {"suffix length", `{"input": {"filesequence": {"suffixlength": 20}}}`},
  } {
    t.Run(tc.name, func(t *testing.T) {
      if _, err := ImportConfig(strings.NewReader(tc.doc)); err == nil {
        t.Errorf("expected error")
      }
    })
  }
}

func TestImportConfigUnrecognizedFormat(t *testing.T) {
  if _, err := ImportConfig(strings.NewReader("key = value")); err == nil {
    t.Errorf("expected error for unrecognized input")
  }
}

func TestImportConfigInputFiles(t *testing.T) {
  cfg, err := ImportConfig(strings.NewReader(`{"input": {"files": [" a.png ", "b.png"]}}`))
  if err != nil {
    t.Fatalf("ImportConfig: %v", err)
  }
  files, ok := cfg.GetConfigValueTextSeq(SECTION_INPUT, KEY_INPUT_FILES)
  if !ok || len(files) != 2 {
    t.Fatalf("input files = %v (%v)", files, ok)
  }
  if files[0] != "a.png" || files[1] != "b.png" {
    t.Errorf("input files not trimmed: %v", files)
  }
}


func TestTryParseHelpers(t *testing.T) {
  if v := tryParseBool("true", false); !v {
    t.Errorf("tryParseBool(true) = false")
  }
  if v := tryParseBool("0", true); v {
    t.Errorf("tryParseBool(0) = true")
  }
  if v := tryParseInt("0x10", 0); v != 16 {
    t.Errorf("tryParseInt(0x10) = %d, want 16", v)
  }
  if v := tryParseInt("garbage", 7); v != 7 {
    t.Errorf("tryParseInt fallback = %d, want 7", v)
  }
  if v := tryParseFloat("2.5", 0.0); v != 2.5 {
    t.Errorf("tryParseFloat(2.5) = %v", v)
  }
  seq := tryParseIntSeq("1, 2,3", 0)
  if len(seq) != 3 || seq[0] != 1 || seq[2] != 3 {
    t.Errorf("tryParseIntSeq = %v", seq)
  }
}

func TestVariantValues(t *testing.T) {
  for _, tc := range []struct {
    v     Variant
    want  string
  }{
    {Text{"painting.png"}, "painting.png"},
    {Bool{true}, "true"},
    {Int{8}, "8"},
    {TextArray{[]string{"a.png", "b.png"}}, "[a.png b.png]"},
    {IntMultiArray{[][]int64{{1, 2, 3, 4}}}, "[[1 2 3 4]]"},
  } {
    if got := tc.v.ToString(); got != tc.want {
      t.Errorf("ToString() = %q, want %q", got, tc.want)
    }
  }

  f := Filter{Name: "vignette", Options: map[string]string{"strength": "0.5"}}
  if f.GetName() != "vignette" {
    t.Errorf("GetName() = %q", f.GetName())
  }
  opts := f.GetOptions()
  if len(opts) != 1 || opts[0][0] != "strength" || opts[0][1] != "0.5" {
    t.Errorf("GetOptions() = %v", opts)
  }
}

func TestAssembleFilePath(t *testing.T) {
  for _, tc := range []struct {
    path, prefix, ext  string
    index              int64
    width              int64
    want               string
  }{
    {"frames", "frame_", "png", 7, 4, "frames/frame_0007.png"},
    {"frames/", "frame_", ".png", 7, 4, "frames/frame_0007.png"},
    {"", "f", "png", 12, 1, "f12.png"},
    {"frames", "frame_", "", 1, 2, "frames/frame_01"},
  } {
    if got := AssembleFilePath(tc.path, tc.prefix, tc.ext, tc.index, tc.width); got != tc.want {
      t.Errorf("AssembleFilePath(%q, %q, %q, %d, %d) = %q, want %q",
               tc.path, tc.prefix, tc.ext, tc.index, tc.width, got, tc.want)
    }
  }
}
