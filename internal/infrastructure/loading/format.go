package loading

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format names a source encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatXML    Format = "xml"
	FormatSQLite Format = "sqlite"
)

// ParseFormat normalizes a user supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xml":
		return FormatXML, nil
	case "sqlite", "sqlite3", "db":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// DetectFormat infers the format from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: no extension on %s", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Resolve returns the explicit format when set, otherwise the detected one.
func Resolve(path, explicit string) (Format, error) {
	if strings.TrimSpace(explicit) != "" {
		return ParseFormat(explicit)
	}
	return DetectFormat(path)
}
