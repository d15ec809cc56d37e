package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, readOnly bool) *MCPServer {
	t.Helper()
	cfg := Config{
		Engine:   EngineSQLite,
		Database: filepath.Join(t.TempDir(), "test.db"),
		ReadOnly: readOnly,
	}
	server, err := NewMCPServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewMCPServer failed: %v", err)
	}
	t.Cleanup(server.Shutdown)
	return server
}

func TestHandleMessage_ParseError(t *testing.T) {
	s := newTestServer(t, false)

	resp := s.handleMessage([]byte("{not json"))
	if resp == nil || resp.Error == nil || resp.Error.Code != ParseError {
		t.Errorf("Expected parse error response, got %+v", resp)
	}
}

func TestHandleMessage_InvalidVersion(t *testing.T) {
	s := newTestServer(t, false)

	resp := s.handleMessage([]byte(`{"jsonrpc":"1.0","id":1,"method":"ping"}`))
	if resp == nil || resp.Error == nil || resp.Error.Code != InvalidRequest {
		t.Errorf("Expected invalid-request response, got %+v", resp)
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := newTestServer(t, false)

	resp := s.handleMessage([]byte(`{"jsonrpc":"2.0","id":1,"method":"no/such"}`))
	if resp == nil || resp.Error == nil || resp.Error.Code != MethodNotFound {
		t.Errorf("Expected method-not-found response, got %+v", resp)
	}
}

func TestHandleRequest_InitializedNotification(t *testing.T) {
	s := newTestServer(t, false)

	if resp := s.handleMessage([]byte(`{"jsonrpc":"2.0","id":null,"method":"initialized"}`)); resp != nil {
		t.Errorf("Notification must not produce a response, got %+v", resp)
	}
}

func TestHandleInitialize(t *testing.T) {
	s := newTestServer(t, false)

	result, rpcErr := s.handleInitialize(json.RawMessage(`{"protocolVersion":"2024-11-05","clientInfo":{"name":"test","version":"0"}}`))
	if rpcErr != nil {
		t.Fatalf("initialize failed: %+v", rpcErr)
	}
	if result.ServerInfo.Name != ServerName || result.ProtocolVersion != ProtocolVersion {
		t.Errorf("Unexpected initialize result: %+v", result)
	}
	if !s.initialized {
		t.Error("Server should be marked initialized")
	}
}

func TestHandleListTools_ModeGating(t *testing.T) {
	tests := []struct {
		readOnly bool
		count    int
	}{
		{true, 3},
		{false, 8},
	}

	for _, tc := range tests {
		s := newTestServer(t, tc.readOnly)
		result, rpcErr := s.handleListTools()
		if rpcErr != nil {
			t.Fatalf("tools/list failed: %+v", rpcErr)
		}
		if len(result.Tools) != tc.count {
			t.Errorf("readOnly=%v: expected %d tools, got %d", tc.readOnly, tc.count, len(result.Tools))
		}
	}
}

func TestHandleCallTool_ErrorsStayInBand(t *testing.T) {
	s := newTestServer(t, true)

	result, rpcErr := s.handleCallTool(json.RawMessage(`{"name":"drop_table","arguments":{"tableName":"t"}}`))
	if rpcErr != nil {
		t.Fatalf("A tool failure must not become a protocol fault: %+v", rpcErr)
	}
	if !result.IsError {
		t.Fatal("Expected an error-flagged result")
	}
	if len(result.Content) != 1 || !strings.Contains(result.Content[0].Text, "unknown tool") {
		t.Errorf("Unexpected content: %+v", result.Content)
	}
}

func TestHandleCallTool_RoundTrip(t *testing.T) {
	s := newTestServer(t, false)

	result, rpcErr := s.handleCallTool(json.RawMessage(`{
		"name": "create_table",
		"arguments": {
			"tableName": "stations",
			"columns": [{"name": "id", "type": "int", "nullable": false, "primaryKey": true}]
		}
	}`))
	if rpcErr != nil {
		t.Fatalf("tools/call failed: %+v", rpcErr)
	}
	if result.IsError {
		t.Fatalf("create_table failed: %s", result.Content[0].Text)
	}

	result, rpcErr = s.handleCallTool(json.RawMessage(`{"name":"list_table","arguments":{}}`))
	if rpcErr != nil || result.IsError {
		t.Fatalf("list_table failed: %+v / %+v", rpcErr, result)
	}
	if result.Content[0].Text != "main.stations" {
		t.Errorf("Unexpected listing: %q", result.Content[0].Text)
	}
}

func TestResources(t *testing.T) {
	s := newTestServer(t, false)

	if _, rpcErr := s.handleCallTool(json.RawMessage(`{
		"name": "create_table",
		"arguments": {
			"tableName": "stations",
			"columns": [{"name": "id", "type": "int", "nullable": false}]
		}
	}`)); rpcErr != nil {
		t.Fatalf("setup failed: %+v", rpcErr)
	}

	list, rpcErr := s.handleListResources()
	if rpcErr != nil {
		t.Fatalf("resources/list failed: %+v", rpcErr)
	}
	if len(list.Resources) != 1 {
		t.Fatalf("Expected 1 resource, got %d", len(list.Resources))
	}

	uri := list.Resources[0].URI
	if !strings.HasPrefix(uri, "sqlite://test/main.stations/") {
		t.Errorf("Unexpected resource URI: %q", uri)
	}

	params, _ := json.Marshal(ReadResourceParams{URI: uri})
	read, rpcErr := s.handleReadResource(params)
	if rpcErr != nil {
		t.Fatalf("resources/read failed: %+v", rpcErr)
	}
	if len(read.Contents) != 1 {
		t.Fatalf("Expected 1 content entry, got %d", len(read.Contents))
	}
	text := read.Contents[0].Text
	for _, part := range []string{`"column_name": "id"`, `"data_type": "int"`, `"is_nullable": false`} {
		if !strings.Contains(text, part) {
			t.Errorf("Schema document %s missing %q", text, part)
		}
	}
}

func TestHandleReadResource_BadURI(t *testing.T) {
	s := newTestServer(t, false)

	for _, uri := range []string{
		"mysql://db/t/schema",
		"sqlite://db/t",
		"sqlite://db/t/extra/schema",
	} {
		params, _ := json.Marshal(ReadResourceParams{URI: uri})
		if _, rpcErr := s.handleReadResource(params); rpcErr == nil {
			t.Errorf("Expected error for URI %q", uri)
		}
	}
}
