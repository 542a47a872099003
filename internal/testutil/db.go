// Package testutil provides test utilities for database setup.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"
)

// Schema is the group source table the sqlite loader reads by default.
// id is the external id; guid is optional and derived when empty.
const Schema = `
CREATE TABLE groups (
	id TEXT PRIMARY KEY,
	guid TEXT,
	name TEXT NOT NULL DEFAULT '',
	description TEXT,
	parent_id TEXT
);
`

// NewTestDB creates an in-memory SQLite database with the groups schema.
// The caller is responsible for closing the database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Every pooled connection to ":memory:" would be a new empty database.
	db.SetMaxOpenConns(1)
	_, err = db.Exec(Schema)
	require.NoError(t, err)
	return db
}

// NewFileDB creates a SQLite database file at path with the groups schema.
// The connection is closed when the test completes.
func NewFileDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file:"+path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(Schema)
	require.NoError(t, err)
	return db
}
