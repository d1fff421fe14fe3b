package paint
// Provides base functionality for processing paint filters.

import (
  "fmt"
  "runtime"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-logging"
  "github.com/pbenner/threadpool"
)

// PaintFilter provides functions for applying a single stylization effect to a pixel buffer.
// Filters registered by name can be appended to the standard pipeline chain from a job
// configuration.
type PaintFilter interface {
  // GetName returns the name of the filter for identification purposes.
  GetName() string
  // GetOption returns the option of given name. Content of return value is filter specific.
  GetOption(key string) interface{}
  // SetOption adds or updates an option of the given key to the filter. Return value indicates whether option is valid.
  SetOption(key, value string) error
  // Process applies the filter effect to the specified buffer and returns the transformed buffer.
  // The input buffer is treated as read-only.
  Process(buf *Buffer, params *Params) (*Buffer, error)
}

type optionsMap map[string]interface{}

type filterType struct {
  name    string
  create  func() PaintFilter
}

type filterMap map[string]filterType


var filterTypes filterMap = make(filterMap)


// CreateFilter creates a new filter of the given type. Returns nil if the filter does not exist
// or cannot be created.
func CreateFilter(filterName string) PaintFilter {
  f, ok := filterTypes[strings.ToLower(filterName)]
  if !ok { return nil }
  return f.create()
}

// registerFilter registers a PaintFilter for use by the pipeline. It must be called by each filter once.
func registerFilter(name string, create func() PaintFilter) {
  filterTypes[name] = filterType{name, create}
}

// ApplyFilters applies the given chain of extra filters to the buffer and returns the result.
// Filters run strictly sequentially; the buffer handed to each filter is the output of its
// predecessor.
func ApplyFilters(buf *Buffer, filters []PaintFilter, params *Params) (*Buffer, error) {
  out := buf
  for filterIdx, filter := range filters {
    logging.Logf("Applying filter %q\n", filter.GetName())
    result, err := filter.Process(out, params)
    if err != nil {
      return nil, fmt.Errorf("Filter #%d (%s): %v", filterIdx, filter.GetName(), err)
    }
    out = result
  }
  return out, nil
}


// processRows shards the row range [0, height) across worker threads and calls fn for each band.
// fn must only write rows inside its own band. Falls back to a single synchronous call when
// multithreading is disabled.
func processRows(height int, fn func(y0, y1 int) error) error {
  if !GetMultiThreaded() || height < 2 {
    return fn(0, height)
  }

  numThreads := runtime.NumCPU()
  if numThreads > height { numThreads = height }
  pool := threadpool.New(numThreads, numThreads)
  g := pool.NewJobGroup()

  bandSize := (height + numThreads - 1) / numThreads
  var err error
  for y := 0; y < height; y += bandSize {
    y0 := y
    y1 := y + bandSize
    if y1 > height { y1 = height }
    err = pool.AddJob(g, func(pool threadpool.ThreadPool, erf func() error) error {
      if erf() != nil { return nil }
      return fn(y0, y1)
    })
    if err != nil { break }
  }
  if err2 := pool.Wait(g); err2 != nil && err == nil { err = err2 }
  return err
}


// Converts string (oct/dec/hex) without range restrictions.
func parseInt(value string) (int, error) {
  ret, err := strconv.ParseInt(value, 0, 0)
  if err != nil { return 0, fmt.Errorf("not an int: %s", value) }
  return int(ret), nil
}

// Converts string (oct/dec/hex) into int in range [min, max] (both inclusive).
func parseIntRange(value string, min, max int) (int, error) {
  if max < min { min, max = max, min }
  ret, err := strconv.ParseInt(value, 0, 0)
  if err != nil { return 0, fmt.Errorf("not an int: %s", value) }
  if int(ret) < min || int(ret) > max { return 0, fmt.Errorf("not in range [%d, %d]: %s", min, max, value) }
  return int(ret), nil
}

// Converts string into float without range restrictions.
func parseFloat(value string) (float64, error) {
  ret, err := strconv.ParseFloat(value, 64)
  if err != nil { return 0, fmt.Errorf("not a float: %s", value) }
  return ret, nil
}

// Converts string into float in range [min, max] (both inclusive).
func parseFloatRange(value string, min, max float64) (float64, error) {
  if max < min { min, max = max, min }
  ret, err := strconv.ParseFloat(value, 64)
  if err != nil { return 0, fmt.Errorf("not a float: %s", value) }
  if ret < min || ret > max { return 0, fmt.Errorf("not in range [%v, %v]: %s", min, max, value) }
  return ret, nil
}

// Converts string into bool.
func parseBool(value string) (bool, error) {
  ret, err := strconv.ParseBool(value)
  if err != nil {
    n, err := strconv.ParseInt(value, 0, 0)
    if err != nil { return false, fmt.Errorf("not a boolean: %s", value) }
    ret = n != 0
  }
  return ret, nil
}
