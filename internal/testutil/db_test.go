package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTestDB_CreatesSchema(t *testing.T) {
	db := NewTestDB(t)
	defer func() { _ = db.Close() }()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = 'groups'`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "expected groups table")
}

func TestNewFileDB_PersistsToDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.db")
	db := NewFileDB(t, path)

	NewBuilder(t, db).WithGroup("e1").Build()

	require.FileExists(t, path)
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM groups`).Scan(&count))
	require.Equal(t, 1, count)
}
