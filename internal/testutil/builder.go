package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

// Builder accumulates group rows and inserts them in order.
type Builder struct {
	t      *testing.T
	db     *sql.DB
	table  string
	groups []groupData
}

// NewBuilder creates a builder for the groups table of the given database.
func NewBuilder(t *testing.T, db *sql.DB) *Builder {
	t.Helper()
	return &Builder{t: t, db: db, table: "groups"}
}

// InTable targets a different table with the same columns.
func (b *Builder) InTable(table string) *Builder {
	b.table = table
	return b
}

// WithGroup adds a group with optional configuration.
func (b *Builder) WithGroup(id string, opts ...GroupOption) *Builder {
	g := defaultGroup(id)
	for _, opt := range opts {
		opt(&g)
	}
	b.groups = append(b.groups, g)
	return b
}

// Build inserts all accumulated rows in the order they were added.
func (b *Builder) Build() {
	b.t.Helper()
	for _, g := range b.groups {
		b.insertGroup(g)
	}
}

func (b *Builder) insertGroup(g groupData) {
	b.t.Helper()
	//nolint:gosec // G202: table name is chosen by the test, values passed as args
	_, err := b.db.Exec(
		`INSERT INTO `+b.table+` (id, guid, name, description, parent_id) VALUES (?, ?, ?, ?, ?)`,
		g.id, g.guid, g.name, g.description, g.parentID,
	)
	require.NoError(b.t, err)
}
