package timeseries

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DataLoadError reports a missing or unparseable input file. The core
// propagates it unchanged to the caller.
type DataLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load %s: %s", e.Path, e.Reason)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

func loadErrorf(path string, err error, format string, args ...any) error {
	return &DataLoadError{Path: path, Reason: fmt.Sprintf(format, args...), Err: err}
}

// loadColumnCSV reads column col (0-based) of a comma-delimited file with a
// single header row and returns the first hours data rows. Fewer rows than
// requested is an error; extra rows are ignored, the first hours define the
// year.
func loadColumnCSV(path string, col, hours int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loadErrorf(path, err, "open: %v", err)
	}
	defer f.Close()

	values := make([]float64, 0, hours)
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() && len(values) < hours {
		line++
		if line == 1 {
			continue // header
		}
		fields := strings.Split(sc.Text(), ",")
		if col >= len(fields) {
			return nil, loadErrorf(path, nil, "line %d: expected at least %d columns, got %d", line, col+1, len(fields))
		}
		v, err := parseDecimal(fields[col])
		if err != nil {
			return nil, loadErrorf(path, err, "line %d: %v", line, err)
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, loadErrorf(path, err, "read: %v", err)
	}
	if len(values) < hours {
		return nil, loadErrorf(path, nil, "expected %d data rows, got %d", hours, len(values))
	}
	return values, nil
}

// loadNamedColumnCSV is like loadColumnCSV but locates the column by its
// header name. Quoted fields and comma decimal separators (as found in the
// when2heat exports) are normalized before parsing.
func loadNamedColumnCSV(path, column string, hours int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loadErrorf(path, err, "open: %v", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return nil, loadErrorf(path, sc.Err(), "empty file")
	}
	col := -1
	for i, name := range strings.Split(sc.Text(), ",") {
		if strings.TrimSpace(name) == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, loadErrorf(path, nil, "column %q not found", column)
	}

	values := make([]float64, 0, hours)
	line := 1
	for sc.Scan() && len(values) < hours {
		line++
		fields := strings.Split(sc.Text(), ",")
		if col >= len(fields) {
			continue
		}
		v, err := parseDecimal(fields[col])
		if err != nil {
			return nil, loadErrorf(path, err, "line %d: %v", line, err)
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, loadErrorf(path, err, "read: %v", err)
	}
	if len(values) < hours {
		return nil, loadErrorf(path, nil, "column %q: expected %d data rows, got %d", column, hours, len(values))
	}
	return values, nil
}

// parseDecimal parses a numeric field that may be quoted and may use a comma
// as the decimal separator.
func parseDecimal(field string) (float64, error) {
	s := strings.Trim(strings.TrimSpace(field), `"`)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}
