package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type txKey struct{}

// Transactor runs fn inside a unit of work. Services depend on this
// interface so they can be tested without a database.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TxManager opens sqlx transactions and carries them through the context
type TxManager struct {
	db        *sqlx.DB
	isolation sql.IsolationLevel
}

// NewTxManager creates a TxManager using read committed isolation
func NewTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{db: db, isolation: sql.LevelReadCommitted}
}

// WithIsolation returns a copy of the manager that opens transactions at level
func (m *TxManager) WithIsolation(level sql.IsolationLevel) *TxManager {
	return &TxManager{db: m.db, isolation: level}
}

// WithinTx runs fn in a transaction. The transaction commits when fn returns
// nil and rolls back otherwise. Nested calls join the outer transaction.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTxx(ctx, &sql.TxOptions{Isolation: m.isolation})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Executor returns the transaction stored in ctx, or db when there is none
func Executor(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

// NoopTransactor runs fn directly. It is meant for service tests.
type NoopTransactor struct{}

func (NoopTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
