package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Connection lifecycle timeouts. Connecting fails fast after LoginTimeout;
// statement execution is bounded by OperationTimeout.
const (
	LoginTimeout     = 15 * time.Second
	OperationTimeout = 30 * time.Second
)

// querier is the subset of database/sql the tool handlers use, satisfied by
// both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// withConnection runs body against a database session opened for this call
// only. The session is closed on every exit path. Write calls run inside a
// transaction: commit on success, rollback on failure. A failed rollback is
// logged and swallowed so the original error is what propagates.
func withConnection(ctx context.Context, cfg Config, adapter DBAdapter, write bool, body func(ctx context.Context, q querier) error) error {
	dsn, err := adapter.BuildDSN(cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	db, err := sql.Open(adapter.DriverName(), dsn)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	defer db.Close()

	// One session per invocation, never shared.
	db.SetMaxOpenConns(1)

	pingCtx, pingCancel := context.WithTimeout(ctx, LoginTimeout)
	defer pingCancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	opCtx, opCancel := context.WithTimeout(ctx, OperationTimeout)
	defer opCancel()

	if !write {
		return asStatementError(body(opCtx, db))
	}

	tx, err := db.BeginTx(opCtx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	if err := body(opCtx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logError("rollback failed: %v", rbErr)
		}
		return asStatementError(err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrStatementFailed, err)
	}
	return nil
}

// asStatementError maps driver errors to the statement-failed kind while
// leaving already-classified errors intact.
func asStatementError(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrInvalidArguments, ErrQueryNotAllowed, ErrConnectionFailed, ErrStatementFailed, ErrUnknownOperation} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrStatementFailed, err)
}
