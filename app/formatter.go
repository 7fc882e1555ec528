package main

import (
	"fmt"
	"io"
	"strings"
)

// OutputFormatter renders a QueryResult for a destination writer.
type OutputFormatter interface {
	FormatValue(value Value) string
	FormatRow(row Row) string
	FormatResult(result *QueryResult) string
}

// ConsoleFormatter is the default plain-text renderer: COUNT(*) prints as a
// bare integer, a single projected column prints one value per line, and
// multiple projected columns join with "|" per row.
type ConsoleFormatter struct {
	io.Writer
}

// NewConsoleFormatter creates a console formatter writing to writer.
func NewConsoleFormatter(writer io.Writer) *ConsoleFormatter {
	return &ConsoleFormatter{Writer: writer}
}

// FormatValue formats a single value's text representation.
func (cf *ConsoleFormatter) FormatValue(value Value) string {
	if value == nil {
		return ""
	}
	return value.String()
}

// FormatRow joins a row's column values with "|".
func (cf *ConsoleFormatter) FormatRow(row Row) string {
	parts := make([]string, len(row.Values))
	for i, v := range row.Values {
		parts[i] = cf.FormatValue(v)
	}
	return strings.Join(parts, "|")
}

// FormatResult renders a whole QueryResult as the lines to print to stdout.
func (cf *ConsoleFormatter) FormatResult(result *QueryResult) string {
	if result.IsCount {
		return fmt.Sprintf("%d", result.Count)
	}
	lines := make([]string, len(result.Rows))
	for i, row := range result.Rows {
		lines[i] = cf.FormatRow(row)
	}
	return strings.Join(lines, "\n")
}

// JSONFormatter renders a QueryResult as a JSON value: a count as
// {"count": N}, rows as an array of value arrays in projection order.
// Column names are not included.
type JSONFormatter struct {
	io.Writer
}

// NewJSONFormatter creates a JSON formatter writing to writer.
func NewJSONFormatter(writer io.Writer) *JSONFormatter {
	return &JSONFormatter{Writer: writer}
}

func (jf *JSONFormatter) FormatValue(value Value) string {
	if value == nil {
		return "null"
	}
	switch value.Type() {
	case ValueTypeText, ValueTypeBlob:
		return fmt.Sprintf(`"%s"`, strings.ReplaceAll(value.String(), `"`, `\"`))
	case ValueTypeNull:
		return "null"
	default:
		return value.String()
	}
}

func (jf *JSONFormatter) FormatRow(row Row) string {
	parts := make([]string, len(row.Values))
	for i, v := range row.Values {
		parts[i] = jf.FormatValue(v)
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}

func (jf *JSONFormatter) FormatResult(result *QueryResult) string {
	if result.IsCount {
		return fmt.Sprintf(`{"count": %d}`, result.Count)
	}
	rowStrings := make([]string, len(result.Rows))
	for i, row := range result.Rows {
		rowStrings[i] = jf.FormatRow(row)
	}
	return fmt.Sprintf("[%s]", strings.Join(rowStrings, ", "))
}
