package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Tool handlers. Each one acquires its own session via withConnection,
// performs a single driver-level action, and renders a textual result.

func (d *Dispatcher) listTable(ctx context.Context, args map[string]any) (string, error) {
	var schemas []string
	if raw, ok := args["parameters"]; ok {
		var err error
		if schemas, err = toStringSlice(raw, "parameters"); err != nil {
			return "", err
		}
	}

	tables, err := d.listTableNames(ctx, schemas)
	if err != nil {
		return "", err
	}
	if len(tables) == 0 {
		return "No tables found", nil
	}
	return strings.Join(tables, "\n"), nil
}

// listTableNames queries the engine catalog for base tables in
// "schema.table" form. Shared by list_table and the resource listing.
func (d *Dispatcher) listTableNames(ctx context.Context, schemas []string) ([]string, error) {
	var tables []string
	err := withConnection(ctx, d.cfg, d.adapter, false, func(ctx context.Context, q querier) error {
		query, queryArgs := d.adapter.ListTablesQuery(d.cfg.Database, schemas)
		rows, err := q.QueryContext(ctx, query, queryArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			table, err := d.adapter.ScanTableRow(rows)
			if err != nil {
				return err
			}
			tables = append(tables, table)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (d *Dispatcher) describeTable(ctx context.Context, args map[string]any) (string, error) {
	tableName, err := argString(args, "tableName")
	if err != nil {
		return "", err
	}

	columns, err := d.readColumns(ctx, tableName)
	if err != nil {
		return "", err
	}
	if len(columns) == 0 {
		return fmt.Sprintf("Table '%s' not found", tableName), nil
	}

	lines := make([]string, len(columns))
	for i, col := range columns {
		lines[i] = formatColumn(col)
	}
	return strings.Join(lines, "\n"), nil
}

// formatColumn renders one column descriptor line. A zero maximum length is
// treated like an absent one.
func formatColumn(col ColumnInfo) string {
	line := col.Name + " " + col.DataType
	if col.MaxLength.Valid && col.MaxLength.Int64 != 0 {
		line += fmt.Sprintf("(%d)", col.MaxLength.Int64)
	}
	if !col.Nullable {
		line += " NOT NULL"
	}
	if col.Default.Valid && col.Default.String != "" {
		line += " DEFAULT " + col.Default.String
	}
	return line
}

// readColumns queries the engine catalog for a table's columns in ordinal
// order. Shared by describe_table and the schema resources.
func (d *Dispatcher) readColumns(ctx context.Context, table string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	err := withConnection(ctx, d.cfg, d.adapter, false, func(ctx context.Context, q querier) error {
		query, queryArgs := d.adapter.DescribeTableQuery(d.cfg.Database, table)
		rows, err := q.QueryContext(ctx, query, queryArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			col, err := d.adapter.ScanColumn(rows)
			if err != nil {
				return err
			}
			columns = append(columns, col)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return columns, nil
}

func (d *Dispatcher) readData(ctx context.Context, args map[string]any) (string, error) {
	query, err := argString(args, "query")
	if err != nil {
		return "", err
	}
	// Rejected before any connection is opened.
	if err := validateReadQuery(query); err != nil {
		return "", err
	}

	var results []map[string]any
	err = withConnection(ctx, d.cfg, d.adapter, false, func(ctx context.Context, q querier) error {
		rows, err := q.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return err
		}

		for rows.Next() {
			values := make([]any, len(columns))
			pointers := make([]any, len(columns))
			for i := range values {
				pointers[i] = &values[i]
			}
			if err := rows.Scan(pointers...); err != nil {
				return err
			}

			row := make(map[string]any, len(columns))
			for i, col := range columns {
				// Convert []byte to string for JSON serialization
				if b, ok := values[i].([]byte); ok {
					row[col] = string(b)
				} else {
					row[col] = values[i]
				}
			}
			results = append(results, row)
		}
		return rows.Err()
	})
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		return "No results found", nil
	}
	rendered, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", err
	}
	return string(rendered), nil
}

func (d *Dispatcher) insertData(ctx context.Context, args map[string]any) (string, error) {
	tableName, err := argString(args, "tableName")
	if err != nil {
		return "", err
	}

	// Normalize single-object and array forms to a record sequence.
	var records []map[string]any
	switch data := args["data"].(type) {
	case map[string]any:
		records = []map[string]any{data}
	case []any:
		for i, item := range data {
			record, ok := item.(map[string]any)
			if !ok {
				return "", fmt.Errorf("%w: data[%d] is not an object", ErrInvalidArguments, i)
			}
			records = append(records, record)
		}
	default:
		return "", fmt.Errorf("%w: data must be an object or an array of objects", ErrInvalidArguments)
	}

	if len(records) == 0 {
		return "No data to insert", nil
	}

	// All records run in one transaction: all-or-nothing.
	err = withConnection(ctx, d.cfg, d.adapter, true, func(ctx context.Context, q querier) error {
		for _, record := range records {
			query, queryArgs, err := buildInsert(d.adapter, tableName, record)
			if err != nil {
				return err
			}
			if _, err := q.ExecContext(ctx, query, queryArgs...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Inserted %d record(s)", len(records)), nil
}

func (d *Dispatcher) updateData(ctx context.Context, args map[string]any) (string, error) {
	tableName, err := argString(args, "tableName")
	if err != nil {
		return "", err
	}
	whereClause, err := argString(args, "whereClause")
	if err != nil {
		return "", err
	}
	updates, ok := args["updates"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: updates must be an object", ErrInvalidArguments)
	}

	query, queryArgs, err := buildUpdate(d.adapter, tableName, updates, whereClause)
	if err != nil {
		return "", err
	}

	var affected int64
	err = withConnection(ctx, d.cfg, d.adapter, true, func(ctx context.Context, q querier) error {
		result, err := q.ExecContext(ctx, query, queryArgs...)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Updated %d record(s)", affected), nil
}

func (d *Dispatcher) createTable(ctx context.Context, args map[string]any) (string, error) {
	tableName, err := argString(args, "tableName")
	if err != nil {
		return "", err
	}
	columns, err := parseColumnDefs(args["columns"])
	if err != nil {
		return "", err
	}
	query, err := buildCreateTable(tableName, columns)
	if err != nil {
		return "", err
	}

	if err := d.execWrite(ctx, query); err != nil {
		return "", err
	}
	return fmt.Sprintf("Table '%s' created successfully", tableName), nil
}

func (d *Dispatcher) createIndex(ctx context.Context, args map[string]any) (string, error) {
	tableName, err := argString(args, "tableName")
	if err != nil {
		return "", err
	}
	indexName, err := argString(args, "indexName")
	if err != nil {
		return "", err
	}
	columns, err := toStringSlice(args["columns"], "columns")
	if err != nil {
		return "", err
	}
	unique, _ := args["unique"].(bool)

	query, err := buildCreateIndex(tableName, indexName, columns, unique)
	if err != nil {
		return "", err
	}

	if err := d.execWrite(ctx, query); err != nil {
		return "", err
	}
	return fmt.Sprintf("Index '%s' created successfully", indexName), nil
}

func (d *Dispatcher) dropTable(ctx context.Context, args map[string]any) (string, error) {
	tableName, err := argString(args, "tableName")
	if err != nil {
		return "", err
	}

	if err := d.execWrite(ctx, "DROP TABLE "+tableName); err != nil {
		return "", err
	}
	return fmt.Sprintf("Table '%s' dropped successfully", tableName), nil
}

// execWrite runs a single statement inside a write-scoped session.
func (d *Dispatcher) execWrite(ctx context.Context, query string) error {
	return withConnection(ctx, d.cfg, d.adapter, true, func(ctx context.Context, q querier) error {
		_, err := q.ExecContext(ctx, query)
		return err
	})
}

func argString(args map[string]any, key string) (string, error) {
	value, ok := args[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: missing or invalid %q parameter", ErrInvalidArguments, key)
	}
	return value, nil
}

func toStringSlice(raw any, key string) ([]string, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be an array of strings", ErrInvalidArguments, key)
	}
	values := make([]string, len(list))
	for i, item := range list {
		value, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is not a string", ErrInvalidArguments, key, i)
		}
		values[i] = value
	}
	return values, nil
}
