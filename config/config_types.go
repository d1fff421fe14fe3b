package config
// Defines the variant value types a preprocessed paint job configuration is composed of.

import (
  "fmt"
  "strings"
)

// Variant is the common interface of all preprocessed configuration values.
type Variant interface { ToString() string }
// A boolean value, e.g. the threaded switch.
type VarBool interface { ToBool() bool }
// An integral value, e.g. posterize levels or brush size.
type VarInt interface { ToInt() int64 }
// A floating point value, e.g. intensity or warmth.
type VarFloat interface { ToFloat() float64 }
// A list of strings, e.g. the input file list.
type VarTextArray interface { ToTextArray() []string }
// A list of integer quadruplets, e.g. the face region rectangles.
type VarIntMultiArray interface { ToIntMultiArray() [][]int64 }
// An extra filter pass entry consisting of a registered filter name and its string options.
type VarFilterMap interface {
  GetName() string
  GetOptions() [][]string
}

type Text struct { Value string }
type Bool struct { Value bool }
type Int struct { Value int64 }
type Float struct { Value float64 }
type TextArray struct { Value []string }
type IntMultiArray struct { Value [][]int64 }
type Filter struct {
  Name      string
  Options   map[string]string
}


func (t Text) ToString() string { return t.Value }

func (b Bool) ToString() string { return fmt.Sprintf("%v", b.Value) }
func (b Bool) ToBool() bool { return b.Value }

func (i Int) ToString() string { return fmt.Sprintf("%d", i.Value) }
func (i Int) ToInt() int64 { return i.Value }

func (f Float) ToString() string { return fmt.Sprintf("%f", f.Value) }
func (f Float) ToFloat() float64 { return f.Value }

func (ta TextArray) ToString() string { return fmt.Sprintf("%v", ta.Value) }
func (ta TextArray) ToTextArray() []string { return ta.Value }

func (ima IntMultiArray) ToString() string { return fmt.Sprintf("%v", ima.Value) }
func (ima IntMultiArray) ToIntMultiArray() [][]int64 { return ima.Value }

// ToString returns a summary of the filter name and options.
func (f Filter) ToString() string {
  var sb strings.Builder
  sb.WriteString(fmt.Sprintf("{name:%s}", f.Name))
  for key, value := range f.Options {
    sb.WriteString(fmt.Sprintf(",{%s:%s}", key, value))
  }
  return sb.String()
}

// GetName returns the filter name.
func (f Filter) GetName() string { return f.Name }

// GetOptions returns all filter options as an array of key/value pairs.
func (f Filter) GetOptions() [][]string {
  retVal := make([][]string, 0, len(f.Options))
  for key, value := range f.Options {
    retVal = append(retVal, []string{key, value})
  }
  return retVal
}
