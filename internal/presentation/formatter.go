package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatForest formats a forest as JSON
func (f *Formatter) FormatForest(forest ForestDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(forest)
}

// FormatTree writes a rendered tree followed by a newline. Nothing is written
// for an empty rendering.
func (f *Formatter) FormatTree(rendered string) error {
	if rendered == "" {
		return nil
	}
	_, err := fmt.Fprintln(f.writer, strings.TrimRight(rendered, "\n"))
	return err
}

// FormatDiff writes a change header and the diff body.
func (f *Formatter) FormatDiff(header, diff string) error {
	if diff == "" {
		return nil
	}
	if _, err := fmt.Fprintf(f.writer, "%s\n", header); err != nil {
		return err
	}
	_, err := io.WriteString(f.writer, diff)
	return err
}
