package main

import (
	"database/sql"
	"fmt"
	"strings"
)

// MySQLAdapter implements DBAdapter for MySQL databases.
type MySQLAdapter struct{}

func (a *MySQLAdapter) DriverName() string { return "mysql" }
func (a *MySQLAdapter) URIScheme() string  { return "mysql" }

func (a *MySQLAdapter) BuildDSN(cfg Config) (string, error) {
	// user:password@tcp(host:port)/dbname
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?timeout=15s",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database), nil
}

func (a *MySQLAdapter) DatabaseName(cfg Config) string { return cfg.Database }

func (a *MySQLAdapter) ListTablesQuery(database string, schemas []string) (string, []any) {
	query := `SELECT TABLE_SCHEMA, TABLE_NAME
		FROM information_schema.tables
		WHERE TABLE_TYPE = 'BASE TABLE'`

	var args []any
	if len(schemas) > 0 {
		placeholders := make([]string, len(schemas))
		for i, schema := range schemas {
			placeholders[i] = "?"
			args = append(args, schema)
		}
		query += fmt.Sprintf(" AND TABLE_SCHEMA IN (%s)", strings.Join(placeholders, ", "))
	} else {
		query += " AND TABLE_SCHEMA = ?"
		args = append(args, database)
	}
	query += " ORDER BY TABLE_SCHEMA, TABLE_NAME"

	return query, args
}

func (a *MySQLAdapter) ScanTableRow(rows *sql.Rows) (string, error) {
	var schema, table string
	if err := rows.Scan(&schema, &table); err != nil {
		return "", err
	}
	return schema + "." + table, nil
}

func (a *MySQLAdapter) DescribeTableQuery(database, table string) (string, []any) {
	return `SELECT COLUMN_NAME, DATA_TYPE, CHARACTER_MAXIMUM_LENGTH, IS_NULLABLE, COLUMN_DEFAULT
		FROM information_schema.columns
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION`, []any{database, table}
}

func (a *MySQLAdapter) ScanColumn(rows *sql.Rows) (ColumnInfo, error) {
	var col ColumnInfo
	var nullable string
	if err := rows.Scan(&col.Name, &col.DataType, &col.MaxLength, &nullable, &col.Default); err != nil {
		return ColumnInfo{}, err
	}
	col.Nullable = !strings.EqualFold(nullable, "NO")
	return col, nil
}

func (a *MySQLAdapter) Placeholder(n int) string {
	return "?"
}
