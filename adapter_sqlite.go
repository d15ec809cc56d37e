package main

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
)

// SQLiteAdapter implements DBAdapter for SQLite databases. DATABASE_NAME is
// the file path; host, port and credentials are unused.
type SQLiteAdapter struct{}

func (a *SQLiteAdapter) DriverName() string { return "sqlite" }
func (a *SQLiteAdapter) URIScheme() string  { return "sqlite" }

func (a *SQLiteAdapter) BuildDSN(cfg Config) (string, error) {
	return cfg.Database, nil
}

// DatabaseName reduces the file path to a display name for resource URIs.
func (a *SQLiteAdapter) DatabaseName(cfg Config) string {
	name := filepath.Base(cfg.Database)
	for _, ext := range []string{".db", ".sqlite", ".sqlite3"} {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

func (a *SQLiteAdapter) ListTablesQuery(database string, schemas []string) (string, []any) {
	query := `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`

	// SQLite has a single implicit schema. A filter that does not name it
	// matches nothing.
	if len(schemas) > 0 && !containsFold(schemas, "main") {
		query += " AND 1 = 0"
	}
	query += " ORDER BY name"

	return query, nil
}

func (a *SQLiteAdapter) ScanTableRow(rows *sql.Rows) (string, error) {
	var table string
	if err := rows.Scan(&table); err != nil {
		return "", err
	}
	return "main." + table, nil
}

func (a *SQLiteAdapter) DescribeTableQuery(database, table string) (string, []any) {
	// PRAGMA table_info cannot use placeholders, so the table name is
	// embedded with quote escaping.
	return fmt.Sprintf("PRAGMA table_info('%s')", strings.ReplaceAll(table, "'", "''")), nil
}

func (a *SQLiteAdapter) ScanColumn(rows *sql.Rows) (ColumnInfo, error) {
	// PRAGMA table_info returns: cid, name, type, notnull, dflt_value, pk
	var cid, notNull, pk int
	var col ColumnInfo
	if err := rows.Scan(&cid, &col.Name, &col.DataType, &notNull, &col.Default, &pk); err != nil {
		return ColumnInfo{}, err
	}
	col.Nullable = notNull == 0
	return col, nil
}

func (a *SQLiteAdapter) Placeholder(n int) string {
	return "?"
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
