package loading

import (
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/pulsar/internal/domain/groups"
)

// YAMLLoader reads a YAML sequence of group records. The document is
// converted to JSON and validated against the same schema as JSONLoader.
type YAMLLoader struct {
	path string
}

// NewYAMLLoader creates a loader for the YAML file at path.
func NewYAMLLoader(path string) *YAMLLoader {
	return &YAMLLoader{path: path}
}

// Compile-time check that YAMLLoader implements groups.Loader.
var _ groups.Loader = (*YAMLLoader)(nil)

// Load reads, converts and validates the file.
func (l *YAMLLoader) Load(ctx context.Context) ([]groups.Record, error) {
	data, err := readSource(ctx, l.path)
	if err != nil {
		return nil, err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, malformed(l.path, FormatYAML, fmt.Errorf("parsing YAML: %w", err))
	}
	if raw == nil {
		// An empty document has no records.
		raw = []any{}
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, malformed(l.path, FormatYAML, fmt.Errorf("converting to JSON: %w", err))
	}

	records, err := decodeRecords(jsonData)
	if err != nil {
		return nil, malformed(l.path, FormatYAML, err)
	}
	return loaded(l.path, FormatYAML, records), nil
}
