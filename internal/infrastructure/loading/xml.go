package loading

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/zjrosen/pulsar/internal/domain/groups"
)

// XMLLoader reads group records from an XML document of the form
//
//	<groups>
//	  <group id="2" parent="1" guid="optional">
//	    <name>Two</name>
//	    <desc>Second group</desc>
//	  </group>
//	</groups>
//
// Attributes that are absent are treated like absent JSON keys, so the same
// schema applies.
type XMLLoader struct {
	path string
}

// NewXMLLoader creates a loader for the XML file at path.
func NewXMLLoader(path string) *XMLLoader {
	return &XMLLoader{path: path}
}

// Compile-time check that XMLLoader implements groups.Loader.
var _ groups.Loader = (*XMLLoader)(nil)

type xmlDocument struct {
	XMLName xml.Name   `xml:"groups"`
	Groups  []xmlGroup `xml:"group"`
}

type xmlGroup struct {
	Attrs []xml.Attr `xml:",any,attr"`
	Name  *string    `xml:"name"`
	Desc  *string    `xml:"desc"`
}

// fields maps the element onto the JSON record keys it carries.
func (g xmlGroup) fields() map[string]any {
	m := make(map[string]any, len(g.Attrs)+2)
	for _, attr := range g.Attrs {
		switch attr.Name.Local {
		case "id", "guid", "parent":
			m[attr.Name.Local] = attr.Value
		}
	}
	if g.Name != nil {
		m["name"] = *g.Name
	}
	if g.Desc != nil {
		m["desc"] = *g.Desc
	}
	return m
}

// Load reads, converts and validates the file.
func (l *XMLLoader) Load(ctx context.Context) ([]groups.Record, error) {
	data, err := readSource(ctx, l.path)
	if err != nil {
		return nil, err
	}

	var doc xmlDocument
	decoder := xml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&doc); err != nil {
		return nil, malformed(l.path, FormatXML, fmt.Errorf("parsing XML: %w", err))
	}

	items := make([]any, 0, len(doc.Groups))
	for _, g := range doc.Groups {
		items = append(items, g.fields())
	}
	jsonData, err := json.Marshal(items)
	if err != nil {
		return nil, malformed(l.path, FormatXML, fmt.Errorf("converting to JSON: %w", err))
	}

	records, err := decodeRecords(jsonData)
	if err != nil {
		return nil, malformed(l.path, FormatXML, err)
	}
	return loaded(l.path, FormatXML, records), nil
}
