package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// MCPServer handles the MCP protocol over stdio. It holds no database state:
// every tool call and resource read opens its own session through the
// dispatcher's connection helper.
type MCPServer struct {
	cfg         Config
	adapter     DBAdapter
	dispatcher  *Dispatcher
	initialized bool
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewMCPServer creates an MCP server for the configured engine.
func NewMCPServer(ctx context.Context, cfg Config) (*MCPServer, error) {
	adapter, err := adapterFor(cfg.Engine)
	if err != nil {
		return nil, err
	}

	serverCtx, serverCancel := context.WithCancel(ctx)
	return &MCPServer{
		cfg:        cfg,
		adapter:    adapter,
		dispatcher: NewDispatcher(cfg, adapter),
		ctx:        serverCtx,
		cancel:     serverCancel,
	}, nil
}

// Run starts the MCP server, reading from stdin and writing to stdout.
func (s *MCPServer) Run() error {
	reader := bufio.NewReader(os.Stdin)

	for {
		select {
		case <-s.ctx.Done():
			return s.ctx.Err()
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		response := s.handleMessage([]byte(line))
		if response != nil {
			responseBytes, err := json.Marshal(response)
			if err != nil {
				logError("Failed to marshal response: %v", err)
				continue
			}
			fmt.Println(string(responseBytes))
		}
	}
}

func (s *MCPServer) handleMessage(data []byte) *JSONRPCResponse {
	var req JSONRPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      nil,
			Error: &Error{
				Code:    ParseError,
				Message: "Parse error",
				Data:    err.Error(),
			},
		}
	}

	if req.JSONRPC != "2.0" {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &Error{
				Code:    InvalidRequest,
				Message: "Invalid JSON-RPC version",
			},
		}
	}

	return s.handleRequest(&req)
}

func (s *MCPServer) handleRequest(req *JSONRPCRequest) *JSONRPCResponse {
	var result any
	var err *Error

	switch req.Method {
	case "initialize":
		result, err = s.handleInitialize(req.Params)
	case "initialized":
		// Notification, no response needed
		return nil
	case "tools/list":
		result, err = s.handleListTools()
	case "tools/call":
		result, err = s.handleCallTool(req.Params)
	case "resources/list":
		result, err = s.handleListResources()
	case "resources/read":
		result, err = s.handleReadResource(req.Params)
	case "ping":
		result = map[string]any{}
	default:
		err = &Error{
			Code:    MethodNotFound,
			Message: fmt.Sprintf("Method not found: %s", req.Method),
		}
	}

	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
		Error:   err,
	}
}

func (s *MCPServer) handleInitialize(params json.RawMessage) (*InitializeResult, *Error) {
	var initParams InitializeParams
	if params != nil {
		if err := json.Unmarshal(params, &initParams); err != nil {
			return nil, &Error{
				Code:    InvalidParams,
				Message: "Invalid initialize parameters",
				Data:    err.Error(),
			}
		}
	}

	s.initialized = true

	return &InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities: ServerCapabilities{
			Tools:     &ToolsCapability{},
			Resources: &ResourcesCapability{},
		},
		ServerInfo: ServerInfo{
			Name:    ServerName,
			Version: ServerVersion,
		},
	}, nil
}

func (s *MCPServer) handleListTools() (*ListToolsResult, *Error) {
	ops := s.dispatcher.Operations()
	tools := make([]Tool, len(ops))
	for i, op := range ops {
		tools[i] = Tool{
			Name:        op.Name,
			Description: op.Description,
			InputSchema: op.InputSchema,
		}
	}
	return &ListToolsResult{Tools: tools}, nil
}

func (s *MCPServer) handleCallTool(params json.RawMessage) (*CallToolResult, *Error) {
	var callParams CallToolParams
	if err := json.Unmarshal(params, &callParams); err != nil {
		return nil, &Error{
			Code:    InvalidParams,
			Message: "Invalid parameters",
			Data:    err.Error(),
		}
	}

	text, isError := s.dispatcher.Dispatch(s.ctx, callParams.Name, callParams.Arguments)
	return &CallToolResult{
		Content: []Content{{Type: "text", Text: text}},
		IsError: isError,
	}, nil
}

func (s *MCPServer) handleListResources() (*ListResourcesResult, *Error) {
	tables, err := s.dispatcher.listTableNames(s.ctx, nil)
	if err != nil {
		return nil, &Error{
			Code:    InternalError,
			Message: fmt.Sprintf("Failed to list tables: %v", err),
		}
	}

	databaseName := s.adapter.DatabaseName(s.cfg)
	resources := make([]Resource, len(tables))
	for i, table := range tables {
		resources[i] = Resource{
			URI:      fmt.Sprintf("%s://%s/%s/schema", s.adapter.URIScheme(), databaseName, table),
			Name:     fmt.Sprintf("Schema for table '%s'", table),
			MimeType: "application/json",
		}
	}
	return &ListResourcesResult{Resources: resources}, nil
}

func (s *MCPServer) handleReadResource(params json.RawMessage) (*ReadResourceResult, *Error) {
	var readParams ReadResourceParams
	if err := json.Unmarshal(params, &readParams); err != nil {
		return nil, &Error{
			Code:    InvalidParams,
			Message: "Invalid parameters",
			Data:    err.Error(),
		}
	}

	// URI format: <scheme>://<database>/<schema.table>/schema
	uri := readParams.URI
	prefix := s.adapter.URIScheme() + "://"
	if !strings.HasPrefix(uri, prefix) {
		return nil, &Error{
			Code:    InvalidParams,
			Message: fmt.Sprintf("Invalid resource URI: must start with %s", prefix),
		}
	}

	parts := strings.Split(strings.TrimPrefix(uri, prefix), "/")
	if len(parts) != 3 || parts[2] != "schema" {
		return nil, &Error{
			Code:    InvalidParams,
			Message: fmt.Sprintf("Invalid resource URI format: expected %sdatabase/table/schema", prefix),
		}
	}

	// Tables are listed as "schema.table"; the catalog lookup wants the
	// bare table name.
	tableName := parts[1]
	if idx := strings.LastIndex(tableName, "."); idx != -1 {
		tableName = tableName[idx+1:]
	}

	columns, err := s.dispatcher.readColumns(s.ctx, tableName)
	if err != nil {
		return nil, &Error{
			Code:    InternalError,
			Message: fmt.Sprintf("Failed to get schema: %v", err),
		}
	}

	rendered := make([]map[string]any, len(columns))
	for i, col := range columns {
		entry := map[string]any{
			"column_name": col.Name,
			"data_type":   col.DataType,
			"is_nullable": col.Nullable,
		}
		if col.MaxLength.Valid {
			entry["max_length"] = col.MaxLength.Int64
		}
		if col.Default.Valid {
			entry["column_default"] = col.Default.String
		}
		rendered[i] = entry
	}

	schemaJSON, jsonErr := json.MarshalIndent(rendered, "", "  ")
	if jsonErr != nil {
		return nil, &Error{
			Code:    InternalError,
			Message: fmt.Sprintf("Failed to marshal schema: %v", jsonErr),
		}
	}

	return &ReadResourceResult{
		Contents: []ResourceContent{
			{
				URI:      uri,
				MimeType: "application/json",
				Text:     string(schemaJSON),
			},
		},
	}, nil
}

// Shutdown gracefully shuts down the server.
func (s *MCPServer) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[mssql-mcp] "+format+"\n", args...)
}
