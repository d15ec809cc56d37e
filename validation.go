package main

import (
	"fmt"
	"strings"
)

// validateReadQuery enforces the read_data contract: the trimmed query must
// begin with the case-insensitive literal SELECT. Nothing else is inspected;
// everything past the prefix is the engine's business, and the write path is
// gated by the registry rather than by SQL inspection.
func validateReadQuery(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return fmt.Errorf("%w: empty query", ErrQueryNotAllowed)
	}
	if !strings.HasPrefix(strings.ToUpper(trimmed), "SELECT") {
		return fmt.Errorf("%w: query must start with SELECT", ErrQueryNotAllowed)
	}
	return nil
}
