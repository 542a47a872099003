package loading

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zjrosen/pulsar/internal/domain/groups"
)

// text is a string field that also accepts JSON numbers and null.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*t = text(n.String())
	return nil
}

// fileRecord is the on-disk shape shared by the JSON and YAML sources:
//
//	[{"id": "2", "name": "Two", "desc": "...", "parent": "1"}]
type fileRecord struct {
	ID     text `json:"id"`
	GUID   text `json:"guid"`
	Name   text `json:"name"`
	Desc   text `json:"desc"`
	Parent text `json:"parent"`
}

func (r fileRecord) toRecord() groups.Record {
	return groups.Record{
		GUID:       strings.TrimSpace(string(r.GUID)),
		ExternalID: strings.TrimSpace(string(r.ID)),
		Name:       string(r.Name),
		Desc:       string(r.Desc),
		Parent:     strings.TrimSpace(string(r.Parent)),
	}
}

// decodeRecords validates a JSON document against the record schema and
// decodes it in source order.
func decodeRecords(data []byte) ([]groups.Record, error) {
	if err := validateJSON(data); err != nil {
		return nil, err
	}

	var raw []fileRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}

	records := make([]groups.Record, 0, len(raw))
	for _, r := range raw {
		records = append(records, r.toRecord())
	}
	return records, nil
}
