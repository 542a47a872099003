// Package loading reads flat group records from JSON, YAML and XML files.
//
// Every loader reports a missing file as ErrSourceNotFound and an unreadable
// document as a *FormatError, so callers can tell the two apart with
// errors.Is and errors.As.
package loading

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zjrosen/pulsar/internal/domain/groups"
	"github.com/zjrosen/pulsar/internal/log"
)

// New returns the file loader for format. FormatSQLite is not a file loader
// and yields ErrUnsupportedFormat; use the sqlite package for it.
func New(path string, format Format) (groups.Loader, error) {
	switch format {
	case FormatJSON:
		return NewJSONLoader(path), nil
	case FormatYAML:
		return NewYAMLLoader(path), nil
	case FormatXML:
		return NewXMLLoader(path), nil
	default:
		return nil, fmt.Errorf("%w: %q is not a file format", ErrUnsupportedFormat, format)
	}
}

// readSource reads the whole file, mapping absence to ErrSourceNotFound.
func readSource(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) //nolint:gosec // G304: path is the user-selected source file
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, cleanPath)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", cleanPath, err)
	}
	return data, nil
}

func loaded(path string, format Format, records []groups.Record) []groups.Record {
	log.Debug(log.CatLoad, "loaded records", "path", path, "format", format, "count", len(records))
	return records
}

func malformed(path string, format Format, err error) error {
	log.ErrorErr(log.CatLoad, "malformed source", err, "path", path, "format", format)
	return &FormatError{Path: path, Format: format, Err: err}
}
