package main

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
)

// MSSQLAdapter implements DBAdapter for Microsoft SQL Server, the primary
// target engine.
type MSSQLAdapter struct{}

func (a *MSSQLAdapter) DriverName() string { return "sqlserver" }
func (a *MSSQLAdapter) URIScheme() string  { return "mssql" }

func (a *MSSQLAdapter) BuildDSN(cfg Config) (string, error) {
	u := &url.URL{
		Scheme: "sqlserver",
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}
	if cfg.Instance != "" {
		// Named instance: the SQL Browser service resolves the port, so a
		// configured PORT is ignored. The instance name takes precedence.
		u.Host = cfg.Host
		u.Path = cfg.Instance
	}

	q := url.Values{}
	q.Set("database", cfg.Database)
	q.Set("dial timeout", "15")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (a *MSSQLAdapter) DatabaseName(cfg Config) string { return cfg.Database }

func (a *MSSQLAdapter) ListTablesQuery(database string, schemas []string) (string, []any) {
	query := `SELECT TABLE_SCHEMA, TABLE_NAME
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_TYPE = 'BASE TABLE'`

	var args []any
	if len(schemas) > 0 {
		placeholders := make([]string, len(schemas))
		for i, schema := range schemas {
			placeholders[i] = a.Placeholder(i + 1)
			args = append(args, schema)
		}
		query += fmt.Sprintf(" AND TABLE_SCHEMA IN (%s)", strings.Join(placeholders, ", "))
	}
	query += " ORDER BY TABLE_SCHEMA, TABLE_NAME"

	return query, args
}

func (a *MSSQLAdapter) ScanTableRow(rows *sql.Rows) (string, error) {
	var schema, table string
	if err := rows.Scan(&schema, &table); err != nil {
		return "", err
	}
	return schema + "." + table, nil
}

func (a *MSSQLAdapter) DescribeTableQuery(database, table string) (string, []any) {
	return `SELECT COLUMN_NAME, DATA_TYPE, CHARACTER_MAXIMUM_LENGTH, IS_NULLABLE, COLUMN_DEFAULT
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_NAME = @p1
		ORDER BY ORDINAL_POSITION`, []any{table}
}

func (a *MSSQLAdapter) ScanColumn(rows *sql.Rows) (ColumnInfo, error) {
	var col ColumnInfo
	var nullable string
	if err := rows.Scan(&col.Name, &col.DataType, &col.MaxLength, &nullable, &col.Default); err != nil {
		return ColumnInfo{}, err
	}
	col.Nullable = !strings.EqualFold(nullable, "NO")
	return col, nil
}

func (a *MSSQLAdapter) Placeholder(n int) string {
	return fmt.Sprintf("@p%d", n)
}
