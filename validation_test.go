package main

import (
	"errors"
	"testing"
)

func TestValidateReadQuery_AllowedQueries(t *testing.T) {
	allowedQueries := []string{
		"SELECT * FROM users",
		"SELECT id, name FROM users WHERE id = 1",
		"select * from users",
		"  SELECT 1  ",
		"\nSELECT TOP 10 * FROM dbo.Readings",
		"SELECT * FROM users WHERE name = 'DROP TABLE users'",
	}

	for _, query := range allowedQueries {
		t.Run(query, func(t *testing.T) {
			if err := validateReadQuery(query); err != nil {
				t.Errorf("Expected query to be allowed, but got error: %v", err)
			}
		})
	}
}

func TestValidateReadQuery_BlockedQueries(t *testing.T) {
	blockedQueries := []string{
		"",
		"   ",
		"DELETE FROM t",
		"INSERT INTO users VALUES (1)",
		"UPDATE users SET name = 'x'",
		"DROP TABLE users",
		"EXEC sp_who",
		"WITH x AS (SELECT 1) SELECT * FROM x",
	}

	for _, query := range blockedQueries {
		t.Run(query, func(t *testing.T) {
			err := validateReadQuery(query)
			if err == nil {
				t.Fatal("Expected query to be blocked, but it was allowed")
			}
			if !errors.Is(err, ErrQueryNotAllowed) {
				t.Errorf("Expected ErrQueryNotAllowed, got: %v", err)
			}
		})
	}
}
