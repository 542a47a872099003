package testutil

// groupData holds all data for a group row to be inserted.
// Nil pointers are stored as NULL.
type groupData struct {
	id          string
	guid        *string
	name        string
	description *string
	parentID    *string
}

// defaultGroup returns a groupData with no parent whose name is the id.
func defaultGroup(id string) groupData {
	return groupData{
		id:   id,
		name: id, // Default name is the ID
	}
}

// GroupOption configures a group row.
type GroupOption func(*groupData)

// Name sets the group name.
func Name(name string) GroupOption {
	return func(g *groupData) { g.name = name }
}

// Description sets the group description.
func Description(desc string) GroupOption {
	return func(g *groupData) { g.description = &desc }
}

// Parent sets the parent external id.
func Parent(parentID string) GroupOption {
	return func(g *groupData) { g.parentID = &parentID }
}

// GUID sets an explicit internal id.
func GUID(guid string) GroupOption {
	return func(g *groupData) { g.guid = &guid }
}
