package sqlite

import (
	"database/sql"

	"github.com/zjrosen/pulsar/internal/domain/groups"
)

// groupColumns is the list of columns every group source table provides.
const groupColumns = `id, guid, name, description, parent_id`

// GroupModel is one row of a group source table. Nullable columns map to
// empty strings in the domain record.
type GroupModel struct {
	ID          string
	GUID        sql.NullString
	Name        sql.NullString
	Description sql.NullString
	ParentID    sql.NullString
}

// scanGroup scans a row into a GroupModel.
func scanGroup(scanner interface{ Scan(...any) error }) (*GroupModel, error) {
	var model GroupModel
	err := scanner.Scan(&model.ID, &model.GUID, &model.Name, &model.Description, &model.ParentID)
	return &model, err
}

// toRecord converts the row to a loader record.
func (m *GroupModel) toRecord() groups.Record {
	return groups.Record{
		GUID:       m.GUID.String,
		ExternalID: m.ID,
		Name:       m.Name.String,
		Desc:       m.Description.String,
		Parent:     m.ParentID.String,
	}
}
