package loading

import (
	"errors"
	"fmt"
	"strings"
)

// Loader errors
var (
	// ErrSourceNotFound is returned when the source file does not exist.
	ErrSourceNotFound = errors.New("group source not found")

	// ErrUnsupportedFormat is returned for formats no file loader handles.
	ErrUnsupportedFormat = errors.New("unsupported source format")
)

// FormatError reports a source that exists but cannot be parsed into records.
type FormatError struct {
	Path   string
	Format Format
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed %s source %s: %v", e.Format, e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// SchemaIssue is one schema violation at an instance location.
type SchemaIssue struct {
	Path    string // Instance location (e.g., "/0/id")
	Message string
	Keyword string
}

// SchemaError lists every schema violation found in a source.
type SchemaError struct {
	Issues []SchemaIssue
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Path+": "+issue.Message)
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}
