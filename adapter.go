package main

import (
	"database/sql"
	"fmt"
)

// ColumnInfo is one table column as reported by the engine catalog, in the
// shape describe_table and the schema resources render from.
type ColumnInfo struct {
	Name      string
	DataType  string
	MaxLength sql.NullInt64
	Nullable  bool
	Default   sql.NullString
}

// DBAdapter defines the contract for database-specific behavior.
// Each supported engine (SQL Server, MySQL, PostgreSQL, SQLite) implements
// this interface; handlers stay engine-agnostic.
type DBAdapter interface {
	// DriverName returns the database/sql driver name (e.g., "sqlserver").
	DriverName() string

	// URIScheme returns the resource URI scheme (e.g., "mssql").
	URIScheme() string

	// BuildDSN constructs a DSN from the configuration snapshot.
	BuildDSN(cfg Config) (string, error)

	// DatabaseName returns the display name of the configured database,
	// used in resource URIs.
	DatabaseName(cfg Config) string

	// ListTablesQuery returns the catalog query and arguments listing base
	// tables, optionally filtered to the given schema names.
	ListTablesQuery(database string, schemas []string) (string, []any)

	// ScanTableRow scans one row of the list-tables result into its
	// "schema.table" display form.
	ScanTableRow(rows *sql.Rows) (string, error)

	// DescribeTableQuery returns the catalog query and arguments reading
	// column metadata for a table, in ordinal order.
	DescribeTableQuery(database, table string) (string, []any)

	// ScanColumn scans one row of the describe-table result.
	ScanColumn(rows *sql.Rows) (ColumnInfo, error)

	// Placeholder returns the bound-parameter marker for 1-based position n.
	Placeholder(n int) string
}

func adapterFor(engine Engine) (DBAdapter, error) {
	switch engine {
	case EngineSQLServer:
		return &MSSQLAdapter{}, nil
	case EngineMySQL:
		return &MySQLAdapter{}, nil
	case EnginePostgres:
		return &PostgresAdapter{}, nil
	case EngineSQLite:
		return &SQLiteAdapter{}, nil
	default:
		return nil, fmt.Errorf("no adapter for engine %q", engine)
	}
}
