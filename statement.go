package main

import (
	"fmt"
	"sort"
	"strings"
)

// Statement builders for the write tools. Table, column and index names are
// interpolated into the SQL text as-is: the caller is a trusted client and
// this boundary is documented. Values are always bound as parameters.

// buildInsert builds one parameterized INSERT for a single record. Column
// names come from the record's own keys, sorted so the statement text is
// deterministic under map iteration.
func buildInsert(a DBAdapter, table string, record map[string]any) (string, []any, error) {
	if len(record) == 0 {
		return "", nil, fmt.Errorf("%w: empty record", ErrInvalidArguments)
	}

	columns := sortedKeys(record)
	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		placeholders[i] = a.Placeholder(i + 1)
		args[i] = record[col]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	return query, args, nil
}

// buildUpdate builds a parameterized UPDATE. The WHERE fragment is appended
// verbatim after a literal WHERE.
func buildUpdate(a DBAdapter, table string, updates map[string]any, whereClause string) (string, []any, error) {
	if len(updates) == 0 {
		return "", nil, fmt.Errorf("%w: updates must not be empty", ErrInvalidArguments)
	}

	columns := sortedKeys(updates)
	assignments := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		assignments[i] = fmt.Sprintf("%s = %s", col, a.Placeholder(i+1))
		args[i] = updates[col]
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		table, strings.Join(assignments, ", "), whereClause)
	return query, args, nil
}

// columnDef is one column definition for create_table.
type columnDef struct {
	Name       string
	Type       string
	Nullable   bool
	PrimaryKey bool
}

// parseColumnDefs extracts column definitions from the decoded JSON shape
// create_table receives. Columns are nullable unless marked otherwise.
func parseColumnDefs(raw any) ([]columnDef, error) {
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return nil, fmt.Errorf("%w: columns must be a non-empty array", ErrInvalidArguments)
	}

	defs := make([]columnDef, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: column %d is not an object", ErrInvalidArguments, i)
		}
		name, _ := obj["name"].(string)
		colType, _ := obj["type"].(string)
		if name == "" || colType == "" {
			return nil, fmt.Errorf("%w: column %d needs name and type", ErrInvalidArguments, i)
		}

		def := columnDef{Name: name, Type: colType, Nullable: true}
		if nullable, ok := obj["nullable"].(bool); ok {
			def.Nullable = nullable
		}
		if pk, ok := obj["primaryKey"].(bool); ok {
			def.PrimaryKey = pk
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// buildCreateTable builds a CREATE TABLE statement. At most one column may
// be the primary key (simple-key rule).
func buildCreateTable(table string, columns []columnDef) (string, error) {
	defs := make([]string, 0, len(columns)+1)
	primaryKey := ""
	for _, col := range columns {
		def := col.Name + " " + col.Type
		if !col.Nullable {
			def += " NOT NULL"
		}
		defs = append(defs, def)

		if col.PrimaryKey {
			if primaryKey != "" {
				return "", fmt.Errorf("%w: at most one column may be marked primaryKey", ErrInvalidArguments)
			}
			primaryKey = col.Name
		}
	}
	if primaryKey != "" {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", primaryKey))
	}

	return fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(defs, ", ")), nil
}

// buildCreateIndex builds a CREATE [UNIQUE] INDEX statement.
func buildCreateIndex(table, index string, columns []string, unique bool) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("%w: columns must not be empty", ErrInvalidArguments)
	}

	uniqueKeyword := ""
	if unique {
		uniqueKeyword = "UNIQUE "
	}
	return fmt.Sprintf("CREATE %sINDEX %s ON %s (%s)",
		uniqueKeyword, index, table, strings.Join(columns, ", ")), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
