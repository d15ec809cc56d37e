package main

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
)

// PostgresAdapter implements DBAdapter for PostgreSQL databases.
type PostgresAdapter struct{}

func (a *PostgresAdapter) DriverName() string { return "postgres" }
func (a *PostgresAdapter) URIScheme() string  { return "postgres" }

func (a *PostgresAdapter) BuildDSN(cfg Config) (string, error) {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   cfg.Database,
	}

	q := url.Values{}
	q.Set("sslmode", "prefer")
	q.Set("connect_timeout", "15")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (a *PostgresAdapter) DatabaseName(cfg Config) string { return cfg.Database }

func (a *PostgresAdapter) ListTablesQuery(database string, schemas []string) (string, []any) {
	query := `SELECT table_schema, table_name
		FROM information_schema.tables
		WHERE table_type = 'BASE TABLE'`

	var args []any
	if len(schemas) > 0 {
		placeholders := make([]string, len(schemas))
		for i, schema := range schemas {
			placeholders[i] = a.Placeholder(i + 1)
			args = append(args, schema)
		}
		query += fmt.Sprintf(" AND table_schema IN (%s)", strings.Join(placeholders, ", "))
	} else {
		query += ` AND table_schema NOT IN ('pg_catalog', 'information_schema')`
	}
	query += " ORDER BY table_schema, table_name"

	return query, args
}

func (a *PostgresAdapter) ScanTableRow(rows *sql.Rows) (string, error) {
	var schema, table string
	if err := rows.Scan(&schema, &table); err != nil {
		return "", err
	}
	return schema + "." + table, nil
}

func (a *PostgresAdapter) DescribeTableQuery(database, table string) (string, []any) {
	return `SELECT column_name, data_type, character_maximum_length, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_name = $1
		ORDER BY ordinal_position`, []any{table}
}

func (a *PostgresAdapter) ScanColumn(rows *sql.Rows) (ColumnInfo, error) {
	var col ColumnInfo
	var nullable string
	if err := rows.Scan(&col.Name, &col.DataType, &col.MaxLength, &nullable, &col.Default); err != nil {
		return ColumnInfo{}, err
	}
	col.Nullable = !strings.EqualFold(nullable, "NO")
	return col, nil
}

func (a *PostgresAdapter) Placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
