// Package sqlite loads flat group records from a table in a SQLite database.
// The database is opened read-only; the table needs the columns
// id, guid, name, description and parent_id.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/pulsar/internal/domain/groups"
	"github.com/zjrosen/pulsar/internal/infrastructure/loading"
	"github.com/zjrosen/pulsar/internal/log"
)

// DefaultTable is the table read when none is configured.
const DefaultTable = "groups"

// ErrInvalidTable is returned for table names that are not plain identifiers.
var ErrInvalidTable = errors.New("invalid table name")

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Loader reads group records from a SQLite database file.
type Loader struct {
	path  string
	table string
}

// NewLoader creates a loader for table in the database at path.
// An empty table selects DefaultTable.
func NewLoader(path, table string) (*Loader, error) {
	if table == "" {
		table = DefaultTable
	}
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	return &Loader{path: path, table: table}, nil
}

// Compile-time check that Loader implements groups.Loader.
var _ groups.Loader = (*Loader)(nil)

// Load opens the database read-only and returns every row in rowid order.
func (l *Loader) Load(ctx context.Context) ([]groups.Record, error) {
	cleanPath := filepath.Clean(l.path)
	if _, err := os.Stat(cleanPath); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", loading.ErrSourceNotFound, cleanPath)
	}

	log.Debug(log.CatDB, "Opening database", "path", cleanPath)
	db, err := sql.Open("sqlite3", "file:"+cleanPath+"?mode=ro")
	if err != nil {
		log.ErrorErr(log.CatDB, "Failed to open database", err, "path", cleanPath)
		return nil, fmt.Errorf("opening %s: %w", cleanPath, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		log.ErrorErr(log.CatDB, "Failed to ping database", err, "path", cleanPath)
		return nil, &loading.FormatError{Path: cleanPath, Format: loading.FormatSQLite, Err: err}
	}

	records, err := ReadGroups(ctx, db, l.table)
	if err != nil {
		log.ErrorErr(log.CatDB, "Failed to read groups", err, "path", cleanPath, "table", l.table)
		return nil, &loading.FormatError{Path: cleanPath, Format: loading.FormatSQLite, Err: err}
	}
	log.Debug(log.CatLoad, "loaded records", "path", cleanPath, "format", loading.FormatSQLite, "table", l.table, "count", len(records))
	return records, nil
}

// ReadGroups reads every row of table from an open database in rowid order.
func ReadGroups(ctx context.Context, db *sql.DB, table string) ([]groups.Record, error) {
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}

	//nolint:gosec // G202: table is validated as a plain identifier above
	query := `SELECT ` + groupColumns + ` FROM ` + table + ` ORDER BY rowid`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]groups.Record, 0)
	for rows.Next() {
		model, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		records = append(records, model.toRecord())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", table, err)
	}
	return records, nil
}
