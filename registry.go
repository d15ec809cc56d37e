package main

import "context"

// HandlerFunc executes one tool call and returns its textual result.
type HandlerFunc func(ctx context.Context, args map[string]any) (string, error)

// OperationDescriptor is the static metadata for one callable tool: its
// name, parameter shape and handler. Immutable once the registry is built.
type OperationDescriptor struct {
	Name        string
	Description string
	InputSchema InputSchema
	Required    []string
	Handler     HandlerFunc
}

// buildRegistry constructs the fixed tool catalog. The three read tools are
// always present; the five write tools are appended iff writeEnabled. Pure
// construction, no I/O; the result never changes for the life of the
// process.
func (d *Dispatcher) buildRegistry(writeEnabled bool) []OperationDescriptor {
	zero := 0

	ops := []OperationDescriptor{
		{
			Name:        "list_table",
			Description: "Lists tables in the database, or lists tables in specific schemas",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"parameters": {
						Type:        "array",
						Items:       &Property{Type: "string"},
						Description: "Schemas to filter by (optional)",
						MinItems:    &zero,
					},
				},
				Required: []string{},
			},
			Handler: d.listTable,
		},
		{
			Name:        "describe_table",
			Description: "Describes the schema (columns and types) of a specified database table",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"tableName": {
						Type:        "string",
						Description: "Name of the table to describe",
					},
				},
				Required: []string{"tableName"},
			},
			Required: []string{"tableName"},
			Handler:  d.describeTable,
		},
		{
			Name:        "read_data",
			Description: "Executes a SELECT query on a database table",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"query": {
						Type:        "string",
						Description: "SQL SELECT query to execute (must start with SELECT)",
					},
				},
				Required: []string{"query"},
			},
			Required: []string{"query"},
			Handler:  d.readData,
		},
	}

	if !writeEnabled {
		return ops
	}

	return append(ops, []OperationDescriptor{
		{
			Name:        "insert_data",
			Description: "Inserts data into a database table",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"tableName": {
						Type:        "string",
						Description: "Name of the table to insert into",
					},
					"data": {
						OneOf: []Property{
							{Type: "object", Description: "Single record data object"},
							{Type: "array", Items: &Property{Type: "object"}, Description: "Array of data objects for multiple records"},
						},
					},
				},
				Required: []string{"tableName", "data"},
			},
			Required: []string{"tableName", "data"},
			Handler:  d.insertData,
		},
		{
			Name:        "update_data",
			Description: "Updates data in a database table using a WHERE clause",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"tableName": {
						Type:        "string",
						Description: "Name of the table to update",
					},
					"updates": {
						Type:        "object",
						Description: "Key-value pairs of columns to update",
					},
					"whereClause": {
						Type:        "string",
						Description: "WHERE clause to identify which records to update",
					},
				},
				Required: []string{"tableName", "updates", "whereClause"},
			},
			Required: []string{"tableName", "updates", "whereClause"},
			Handler:  d.updateData,
		},
		{
			Name:        "create_table",
			Description: "Creates a new table in the database",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"tableName": {
						Type:        "string",
						Description: "Name of the table to create",
					},
					"columns": {
						Type:        "array",
						Description: "Column definitions",
						Items: &Property{
							Type: "object",
							Properties: map[string]Property{
								"name":       {Type: "string"},
								"type":       {Type: "string"},
								"nullable":   {Type: "boolean"},
								"primaryKey": {Type: "boolean"},
							},
							Required: []string{"name", "type"},
						},
					},
				},
				Required: []string{"tableName", "columns"},
			},
			Required: []string{"tableName", "columns"},
			Handler:  d.createTable,
		},
		{
			Name:        "create_index",
			Description: "Creates an index on a table",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"tableName": {
						Type:        "string",
						Description: "Name of the table",
					},
					"indexName": {
						Type:        "string",
						Description: "Name of the index",
					},
					"columns": {
						Type:        "array",
						Items:       &Property{Type: "string"},
						Description: "Columns to index",
					},
					"unique": {
						Type:        "boolean",
						Description: "Whether the index should be unique",
					},
				},
				Required: []string{"tableName", "indexName", "columns"},
			},
			Required: []string{"tableName", "indexName", "columns"},
			Handler:  d.createIndex,
		},
		{
			Name:        "drop_table",
			Description: "Drops a table from the database",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"tableName": {
						Type:        "string",
						Description: "Name of the table to drop",
					},
				},
				Required: []string{"tableName"},
			},
			Required: []string{"tableName"},
			Handler:  d.dropTable,
		},
	}...)
}
