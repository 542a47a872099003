package loading

import (
	"context"

	"github.com/zjrosen/pulsar/internal/domain/groups"
)

// JSONLoader reads a JSON array of group records.
type JSONLoader struct {
	path string
}

// NewJSONLoader creates a loader for the JSON file at path.
func NewJSONLoader(path string) *JSONLoader {
	return &JSONLoader{path: path}
}

// Compile-time check that JSONLoader implements groups.Loader.
var _ groups.Loader = (*JSONLoader)(nil)

// Load reads and validates the file.
func (l *JSONLoader) Load(ctx context.Context) ([]groups.Record, error) {
	data, err := readSource(ctx, l.path)
	if err != nil {
		return nil, err
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, malformed(l.path, FormatJSON, err)
	}
	return loaded(l.path, FormatJSON, records), nil
}
