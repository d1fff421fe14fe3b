package main
// Handles command line arguments for paintvideo.

import (
  "errors"
  "fmt"
  "os"

  "github.com/InfinityTools/go-cmdargs"
  "github.com/InfinityTools/go-logging"
)

const (
  CMDOPT_HELP = "help"
  CMDOPT_VERSION = "version"
  CMDOPT_VERBOSE = "verbose"
  CMDOPT_SILENT = "silent"
  CMDOPT_LOG_STYLE = "log-style"
  CMDOPT_THREADED = "threaded"
  CMDOPT_NO_THREADED = "no-threaded"
  CMDOPT_OUTPUT = "output"
  CMDOPT_FPS = "fps"
  CMDOPT_LEVELS = "posterize-levels"
  CMDOPT_EDGES = "edge-strength"
  CMDOPT_WARMTH = "warmth"
  CMDOPT_SATURATION = "saturation"
  CMDOPT_PALETTE = "palette"
  CMDOPT_PALETTE_FILE = "palette-file"
  CMDOPT_PALETTE_SORT = "palette-sort"
  CMDOPT_CASCADE = "cascade"
  CMDOPT_NO_FACES = "no-faces"
  CMDOPT_NO_PROGRESS = "no-progress"
)

type OptBool struct { value bool; set bool }
type OptInt struct { value int; set bool }
type OptFloat struct { value float32; set bool }
type OptText struct { value string; set bool }

type CmdOptions struct {
  help            OptBool
  version         OptBool
  verbose         OptBool
  logStyle        OptBool
  threaded        OptBool
  output          OptText
  fps             OptFloat
  levels          OptInt
  edges           OptFloat
  warmth          OptFloat
  saturation      OptFloat
  palette         OptText
  paletteFile     OptText
  paletteSort     OptText
  cascade         OptText
  noFaces         OptBool
  noProgress      OptBool
  optionsLength   int
  argSelf         string
  argsExtra       []string
}

var cmdOptions  CmdOptions


func loadArgs(args []string) error {
  params := cmdargs.Create()
  params.AddParameter(CMDOPT_HELP, nil, 0)
  params.AddParameter(CMDOPT_VERSION, nil, 0)
  params.AddParameter(CMDOPT_VERBOSE, nil, 0)
  params.AddParameter(CMDOPT_SILENT, nil, 0)
  params.AddParameter(CMDOPT_LOG_STYLE, nil, 0)
  params.AddParameter(CMDOPT_THREADED, nil, 0)
  params.AddParameter(CMDOPT_NO_THREADED, nil, 0)
  params.AddParameter(CMDOPT_OUTPUT, nil, 1)
  params.AddParameter(CMDOPT_FPS, nil, 1)
  params.AddParameter(CMDOPT_LEVELS, nil, 1)
  params.AddParameter(CMDOPT_EDGES, nil, 1)
  params.AddParameter(CMDOPT_WARMTH, nil, 1)
  params.AddParameter(CMDOPT_SATURATION, nil, 1)
  params.AddParameter(CMDOPT_PALETTE, nil, 1)
  params.AddParameter(CMDOPT_PALETTE_FILE, nil, 1)
  params.AddParameter(CMDOPT_PALETTE_SORT, nil, 1)
  params.AddParameter(CMDOPT_CASCADE, nil, 1)
  params.AddParameter(CMDOPT_NO_FACES, nil, 0)
  params.AddParameter(CMDOPT_NO_PROGRESS, nil, 0)

  err := params.Evaluate(args)
  if err != nil { return err }

  // validating extra arguments
  cmdOptions.argSelf = params.GetArgSelf()
  cmdOptions.argsExtra = make([]string, 0)
  for i := 0; i < params.GetArgExtraLength(); i++ {
    s := params.GetArgExtra(i).ToString()
    if s == "-" {
      // Add Stdin as is
      cmdOptions.argsExtra = append(cmdOptions.argsExtra, s)
    } else {
      // Expanding wildcard
      expanded := params.GetExpandedArgExtra(i)
      if len(expanded) == 0 { expanded = []string{s} }  // falling back to check directly
      for _, name := range expanded {
        fi, err := os.Stat(name)
        if err != nil { return fmt.Errorf("Configuration file at %d: %v", len(cmdOptions.argsExtra), err) }
        if !fi.Mode().IsRegular() { return fmt.Errorf("Configuration file does not exist: %q", name) }
        cmdOptions.argsExtra = append(cmdOptions.argsExtra, name)
      }
    }
  }

  // validating options
  cmdOptions.optionsLength = 0
  for idx := 0; idx < params.GetArgLength(); idx++ {
    arg, err := params.GetArgAt(idx)
    if err != nil {
      logging.Warnf("Could not parse command line option at index %d. Skipping...\n", idx)
      continue
    }
    switch arg.Name {
      case CMDOPT_HELP:
        if !cmdOptions.help.set { cmdOptions.optionsLength++ }
        cmdOptions.help = OptBool{true, true}
        return nil
      case CMDOPT_VERSION:
        if !cmdOptions.version.set { cmdOptions.optionsLength++ }
        cmdOptions.version = OptBool{true, true}
        return nil
      case CMDOPT_VERBOSE:
        if !cmdOptions.verbose.set { cmdOptions.optionsLength++ }
        cmdOptions.verbose = OptBool{true, true}
      case CMDOPT_SILENT:
        if !cmdOptions.verbose.set { cmdOptions.optionsLength++ }
        cmdOptions.verbose = OptBool{false, true}
      case CMDOPT_LOG_STYLE:
        if !cmdOptions.logStyle.set { cmdOptions.optionsLength++ }
        cmdOptions.logStyle = OptBool{true, true}
      case CMDOPT_THREADED:
        if !cmdOptions.threaded.set { cmdOptions.optionsLength++ }
        cmdOptions.threaded = OptBool{true, true}
      case CMDOPT_NO_THREADED:
        if !cmdOptions.threaded.set { cmdOptions.optionsLength++ }
        cmdOptions.threaded = OptBool{false, true}
      case CMDOPT_OUTPUT:
        if !cmdOptions.output.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          s := arg.Arguments[0].ToString()
          if len(s) == 0 { return fmt.Errorf("Option %q: No output file specified", arg.Name) }
          cmdOptions.output = OptText{s, true}
        }
      case CMDOPT_FPS:
        if !cmdOptions.fps.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          if f, x := arg.Arguments[0].Float(); x && f > 0.0 && f <= 240.0 {
            cmdOptions.fps = OptFloat{float32(f), true}
          } else {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_LEVELS:
        if !cmdOptions.levels.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          if i, x := arg.Arguments[0].Int(); x && i >= 3 && i <= 16 {
            cmdOptions.levels = OptInt{int(i), true}
          } else {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_EDGES:
        if !cmdOptions.edges.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          if f, x := arg.Arguments[0].Float(); x && f >= 0.0 && f <= 1.0 {
            cmdOptions.edges = OptFloat{float32(f), true}
          } else {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_WARMTH:
        if !cmdOptions.warmth.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          if f, x := arg.Arguments[0].Float(); x && f >= 0.0 && f <= 1.0 {
            cmdOptions.warmth = OptFloat{float32(f), true}
          } else {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_SATURATION:
        if !cmdOptions.saturation.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          if f, x := arg.Arguments[0].Float(); x && f >= 0.0 && f <= 1.0 {
            cmdOptions.saturation = OptFloat{float32(f), true}
          } else {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_PALETTE:
        if !cmdOptions.palette.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          cmdOptions.palette = OptText{arg.Arguments[0].ToString(), true}
        }
      case CMDOPT_PALETTE_FILE:
        if !cmdOptions.paletteFile.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          cmdOptions.paletteFile = OptText{arg.Arguments[0].ToString(), true}
        }
      case CMDOPT_PALETTE_SORT:
        if !cmdOptions.paletteSort.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          cmdOptions.paletteSort = OptText{arg.Arguments[0].ToString(), true}
        }
      case CMDOPT_CASCADE:
        if !cmdOptions.cascade.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          cmdOptions.cascade = OptText{arg.Arguments[0].ToString(), true}
        }
      case CMDOPT_NO_FACES:
        if !cmdOptions.noFaces.set { cmdOptions.optionsLength++ }
        cmdOptions.noFaces = OptBool{true, true}
      case CMDOPT_NO_PROGRESS:
        if !cmdOptions.noProgress.set { cmdOptions.optionsLength++ }
        cmdOptions.noProgress = OptBool{true, true}
      default:
        return fmt.Errorf("Unrecognized option: %q", arg.Name)
    }
  }

  // Invalid combination: Options, but no config files
  if len(cmdOptions.argsExtra) == 0 && cmdOptions.optionsLength > 0 {
    return errors.New("No configuration file specified")
  }

  return nil
}


func argsExtraLength() int {
  if cmdOptions.argsExtra == nil { return 0 }
  return len(cmdOptions.argsExtra)
}

func argsExtra(index int) string {
  if cmdOptions.argsExtra == nil { return "" }
  if index < 0 || index > len(cmdOptions.argsExtra) { return "" }
  return cmdOptions.argsExtra[index]
}

func argsLength() int {
  return cmdOptions.optionsLength
}

func argsHelp() (bool, bool) {
  return cmdOptions.help.value, cmdOptions.help.set
}

func argsVersion() (bool, bool) {
  return cmdOptions.version.value, cmdOptions.version.set
}

func argsVerbose() (bool, bool) {
  return cmdOptions.verbose.value, cmdOptions.verbose.set
}

func argsLogStyle() (bool, bool) {
  return cmdOptions.logStyle.value, cmdOptions.logStyle.set
}

func argsThreaded() (bool, bool) {
  return cmdOptions.threaded.value, cmdOptions.threaded.set
}

func argsOutput() (string, bool) {
  return cmdOptions.output.value, cmdOptions.output.set
}

func argsFps() (float32, bool) {
  return cmdOptions.fps.value, cmdOptions.fps.set
}

func argsLevels() (int, bool) {
  return cmdOptions.levels.value, cmdOptions.levels.set
}

func argsEdges() (float32, bool) {
  return cmdOptions.edges.value, cmdOptions.edges.set
}

func argsWarmth() (float32, bool) {
  return cmdOptions.warmth.value, cmdOptions.warmth.set
}

func argsSaturation() (float32, bool) {
  return cmdOptions.saturation.value, cmdOptions.saturation.set
}

func argsPalette() (string, bool) {
  return cmdOptions.palette.value, cmdOptions.palette.set
}

func argsPaletteFile() (string, bool) {
  return cmdOptions.paletteFile.value, cmdOptions.paletteFile.set
}

func argsPaletteSort() (string, bool) {
  return cmdOptions.paletteSort.value, cmdOptions.paletteSort.set
}

func argsCascade() (string, bool) {
  return cmdOptions.cascade.value, cmdOptions.cascade.set
}

func argsNoFaces() (bool, bool) {
  return cmdOptions.noFaces.value, cmdOptions.noFaces.set
}

func argsNoProgress() (bool, bool) {
  return cmdOptions.noProgress.value, cmdOptions.noProgress.set
}
