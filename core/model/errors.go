package model

import "fmt"

// ConfigurationError reports invalid caller-supplied inputs: wrong-length
// time series, invalid rate tables, degenerate parameters. It is always
// surfaced, never silently corrected.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// ConfigErrorf builds a ConfigurationError for the given field.
func ConfigErrorf(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// CheckSeriesLength verifies that an hourly series spans exactly one year.
func CheckSeriesLength(name string, series []float64) error {
	if len(series) != Hours {
		return ConfigErrorf(name, "expected %d hourly values, got %d", Hours, len(series))
	}
	return nil
}
