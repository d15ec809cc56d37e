package main

import (
	"strings"
	"testing"
)

func TestMSSQLBuildDSN(t *testing.T) {
	adapter := &MSSQLAdapter{}
	cfg := Config{
		Engine:   EngineSQLServer,
		Host:     "db01",
		Port:     1433,
		Database: "climate",
		Username: "sa",
		Password: "p@ss word",
	}

	dsn, err := adapter.BuildDSN(cfg)
	if err != nil {
		t.Fatalf("BuildDSN failed: %v", err)
	}

	for _, part := range []string{"sqlserver://", "db01:1433", "database=climate", "dial+timeout=15"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN %q missing %q", dsn, part)
		}
	}
	if strings.Contains(dsn, "p@ss word") {
		t.Errorf("DSN %q leaks unescaped password", dsn)
	}
}

func TestMSSQLBuildDSN_NamedInstance(t *testing.T) {
	adapter := &MSSQLAdapter{}
	cfg := Config{
		Host:     "db01",
		Instance: "SQLEXPRESS",
		Port:     1433,
		Database: "climate",
		Username: "sa",
		Password: "secret",
	}

	dsn, err := adapter.BuildDSN(cfg)
	if err != nil {
		t.Fatalf("BuildDSN failed: %v", err)
	}

	if !strings.Contains(dsn, "@db01/SQLEXPRESS") {
		t.Errorf("DSN %q should address the named instance", dsn)
	}
	if strings.Contains(dsn, ":1433") {
		t.Errorf("DSN %q should omit the port for a named instance", dsn)
	}
}

func TestMSSQLListTablesQuery(t *testing.T) {
	adapter := &MSSQLAdapter{}

	query, args := adapter.ListTablesQuery("climate", nil)
	if !strings.Contains(query, "INFORMATION_SCHEMA.TABLES") {
		t.Errorf("Query should use INFORMATION_SCHEMA.TABLES: %s", query)
	}
	if !strings.Contains(query, "ORDER BY TABLE_SCHEMA, TABLE_NAME") {
		t.Errorf("Query should be ordered: %s", query)
	}
	if len(args) != 0 {
		t.Errorf("Unfiltered query should have no args, got %v", args)
	}

	query, args = adapter.ListTablesQuery("climate", []string{"dbo", "sales"})
	if !strings.Contains(query, "TABLE_SCHEMA IN (@p1, @p2)") {
		t.Errorf("Filtered query should bind schemas: %s", query)
	}
	if len(args) != 2 || args[0] != "dbo" || args[1] != "sales" {
		t.Errorf("Unexpected args: %v", args)
	}
}

func TestMSSQLDescribeTableQuery(t *testing.T) {
	adapter := &MSSQLAdapter{}

	query, args := adapter.DescribeTableQuery("climate", "Readings")
	for _, part := range []string{"INFORMATION_SCHEMA.COLUMNS", "TABLE_NAME = @p1", "ORDER BY ORDINAL_POSITION"} {
		if !strings.Contains(query, part) {
			t.Errorf("Query missing %q: %s", part, query)
		}
	}
	if len(args) != 1 || args[0] != "Readings" {
		t.Errorf("Unexpected args: %v", args)
	}
}

func TestPostgresBuildDSN(t *testing.T) {
	adapter := &PostgresAdapter{}
	cfg := Config{
		Host:     "pg01",
		Port:     5432,
		Database: "climate",
		Username: "svc",
		Password: "secret",
	}

	dsn, err := adapter.BuildDSN(cfg)
	if err != nil {
		t.Fatalf("BuildDSN failed: %v", err)
	}
	for _, part := range []string{"postgres://", "pg01:5432", "/climate", "connect_timeout=15"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN %q missing %q", dsn, part)
		}
	}
}

func TestMySQLBuildDSN(t *testing.T) {
	adapter := &MySQLAdapter{}
	cfg := Config{
		Host:     "my01",
		Port:     3306,
		Database: "climate",
		Username: "svc",
		Password: "secret",
	}

	dsn, err := adapter.BuildDSN(cfg)
	if err != nil {
		t.Fatalf("BuildDSN failed: %v", err)
	}
	if dsn != "svc:secret@tcp(my01:3306)/climate?timeout=15s" {
		t.Errorf("Unexpected DSN: %q", dsn)
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		adapter DBAdapter
		n       int
		want    string
	}{
		{&MSSQLAdapter{}, 1, "@p1"},
		{&MSSQLAdapter{}, 3, "@p3"},
		{&PostgresAdapter{}, 2, "$2"},
		{&MySQLAdapter{}, 5, "?"},
		{&SQLiteAdapter{}, 5, "?"},
	}

	for _, tc := range tests {
		if got := tc.adapter.Placeholder(tc.n); got != tc.want {
			t.Errorf("%s.Placeholder(%d) = %q, want %q", tc.adapter.DriverName(), tc.n, got, tc.want)
		}
	}
}

func TestSQLiteListTablesQuery_SchemaFilter(t *testing.T) {
	adapter := &SQLiteAdapter{}

	query, _ := adapter.ListTablesQuery("climate", []string{"main"})
	if strings.Contains(query, "1 = 0") {
		t.Errorf("Filter naming main should match: %s", query)
	}

	query, _ = adapter.ListTablesQuery("climate", []string{"dbo"})
	if !strings.Contains(query, "1 = 0") {
		t.Errorf("Filter not naming main should match nothing: %s", query)
	}
}

func TestAdapterFor(t *testing.T) {
	for _, engine := range []Engine{EngineSQLServer, EngineMySQL, EnginePostgres, EngineSQLite} {
		adapter, err := adapterFor(engine)
		if err != nil {
			t.Errorf("adapterFor(%q) failed: %v", engine, err)
			continue
		}
		if adapter.DriverName() == "" {
			t.Errorf("adapterFor(%q): empty driver name", engine)
		}
	}

	if _, err := adapterFor(Engine("oracle")); err == nil {
		t.Error("Expected error for unsupported engine")
	}
}
