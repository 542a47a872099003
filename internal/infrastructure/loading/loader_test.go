package loading

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pulsar/internal/domain/groups"
)

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func TestJSONLoader_Load(t *testing.T) {
	records, err := NewJSONLoader(fixture("groups.json")).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 5)
	require.Equal(t, groups.Record{ExternalID: "1", Name: "1", Desc: "1"}, records[0])
	require.Equal(t, groups.Record{ExternalID: "2", Name: "2", Desc: "2", Parent: "1"}, records[1])
	require.Equal(t, "2", records[4].Parent)
}

func TestJSONLoader_Empty(t *testing.T) {
	records, err := NewJSONLoader(fixture("empty.json")).Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestYAMLLoader_Load(t *testing.T) {
	records, err := NewYAMLLoader(fixture("groups.yaml")).Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, []groups.Record{
		{ExternalID: "eng", Name: "Engineering", Desc: "Builds things"},
		{
			GUID:       "3f0a3c4e-0000-5000-8000-000000000001",
			ExternalID: "platform",
			Name:       "Platform",
			Desc:       "  Runs things  ",
			Parent:     "eng",
		},
		{ExternalID: "42", Name: "Numeric", Parent: "platform"},
	}, records)
}

func TestXMLLoader_Load(t *testing.T) {
	records, err := NewXMLLoader(fixture("groups.xml")).Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, []groups.Record{
		{ExternalID: "root", Name: "Root", Desc: "Top of the tree"},
		{ExternalID: "child", Name: "Child", Parent: "root"},
		{GUID: "orphan-guid", ExternalID: "orphan", Parent: "missing"},
	}, records)
}

func TestLoaders_SourceNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	loaders := map[string]groups.Loader{
		"json": NewJSONLoader(missing + ".json"),
		"yaml": NewYAMLLoader(missing + ".yaml"),
		"xml":  NewXMLLoader(missing + ".xml"),
	}

	for name, loader := range loaders {
		t.Run(name, func(t *testing.T) {
			_, err := loader.Load(context.Background())
			require.ErrorIs(t, err, ErrSourceNotFound)

			var formatErr *FormatError
			require.False(t, errors.As(err, &formatErr), "missing file is not a format error")
		})
	}
}

func TestLoaders_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		loader groups.Loader
		format Format
	}{
		{"truncated json", NewJSONLoader(fixture("truncated.json")), FormatJSON},
		{"broken yaml", NewYAMLLoader(fixture("broken.yaml")), FormatYAML},
		{"broken xml", NewXMLLoader(fixture("broken.xml")), FormatXML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.loader.Load(context.Background())

			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
			require.Equal(t, tt.format, formatErr.Format)
			require.NotErrorIs(t, err, ErrSourceNotFound)
		})
	}
}

func TestJSONLoader_SchemaViolations(t *testing.T) {
	_, err := NewJSONLoader(fixture("missing_id.json")).Load(context.Background())

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.NotEmpty(t, schemaErr.Issues)

	paths := make([]string, 0, len(schemaErr.Issues))
	for _, issue := range schemaErr.Issues {
		paths = append(paths, issue.Path)
	}
	require.Contains(t, paths, "/1")
	require.Contains(t, paths, "/2/id")
	require.Contains(t, err.Error(), "schema validation failed")
}

func TestJSONLoader_WrongFieldType(t *testing.T) {
	_, err := NewJSONLoader(fixture("wrong_type.json")).Load(context.Background())

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, "/0/name", schemaErr.Issues[0].Path)
	require.Equal(t, "type", schemaErr.Issues[0].Keyword)
}

func TestYAMLLoader_EmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o600))

	records, err := NewYAMLLoader(path).Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestYAMLLoader_NotASequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "object.yaml")
	require.NoError(t, os.WriteFile(path, []byte("id: 1\nname: one\n"), 0o600))

	_, err := NewYAMLLoader(path).Load(context.Background())

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewJSONLoader(fixture("groups.json")).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNew(t *testing.T) {
	tests := []struct {
		format Format
		want   groups.Loader
	}{
		{FormatJSON, &JSONLoader{path: "x"}},
		{FormatYAML, &YAMLLoader{path: "x"}},
		{FormatXML, &XMLLoader{path: "x"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			loader, err := New("x", tt.format)
			require.NoError(t, err)
			require.Equal(t, tt.want, loader)
		})
	}

	_, err := New("x.db", FormatSQLite)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		explicit string
		want     Format
		wantErr  bool
	}{
		{name: "json extension", path: "a/groups.json", want: FormatJSON},
		{name: "yml extension", path: "groups.yml", want: FormatYAML},
		{name: "upper case", path: "GROUPS.XML", want: FormatXML},
		{name: "sqlite db", path: "groups.db", want: FormatSQLite},
		{name: "explicit wins", path: "groups.txt", explicit: "yaml", want: FormatYAML},
		{name: "unknown extension", path: "groups.txt", wantErr: true},
		{name: "no extension", path: "groups", wantErr: true},
		{name: "unknown explicit", path: "groups.json", explicit: "csv", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.path, tt.explicit)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    text
		wantErr bool
	}{
		{in: `"abc"`, want: "abc"},
		{in: `12`, want: "12"},
		{in: `1.5`, want: "1.5"},
		{in: `null`, want: ""},
		{in: `true`, wantErr: true},
		{in: `{}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got text
			err := got.UnmarshalJSON([]byte(tt.in))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
