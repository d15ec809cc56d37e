package main

import "errors"

// Error kinds surfaced by the dispatcher. Every one of them is rendered as a
// textual error payload at the tools/call boundary; none of them reaches the
// transport layer as a protocol fault.
var (
	// ErrUnknownOperation: the requested tool is not in the registry. Write
	// tools in read-only mode fail with this, not with a permission error.
	ErrUnknownOperation = errors.New("unknown tool")

	// ErrInvalidArguments: a required parameter is missing or has an
	// unusable shape.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrQueryNotAllowed: read_data received a query that does not start
	// with SELECT. Raised before any connection is opened.
	ErrQueryNotAllowed = errors.New("query not allowed")

	// ErrConnectionFailed: the per-call session could not be established
	// within the login timeout.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrStatementFailed: the engine rejected a statement (syntax error,
	// constraint violation, permission denied) or the operation timed out.
	ErrStatementFailed = errors.New("statement failed")
)
