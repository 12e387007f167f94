package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/smartcontractkit/measurement-framework/pkg/logger"
)

// DB is the subset of *sql.DB and *sql.Tx the store queries through.
type DB interface {
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
}

var _ DB = &dbController{}

func newDbController(db *sql.DB, lggr logger.Logger) *dbController {
	return &dbController{base: db, lggr: lggr}
}

// dbController routes statements to the open transaction, if any, or to the database. There is at
// most one transaction per controller.
type dbController struct {
	mu   sync.Mutex
	tx   *sql.Tx
	base *sql.DB
	lggr logger.Logger
}

func (d *dbController) current() DB {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tx != nil {
		return d.tx
	}

	return d.base
}

func (d *dbController) QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	d.lggr.Debugw("Executing query", "query", q, "args", args)
	return d.current().QueryContext(ctx, q, args...)
}

func (d *dbController) ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error) {
	d.lggr.Debugw("Executing statement", "query", q, "args", args)
	return d.current().ExecContext(ctx, q, args...)
}

// Fixture performs an Exec but ignores the result, and is intended for schema setup.
func (d *dbController) Fixture(ctx context.Context, q string, args ...any) error {
	_, err := d.ExecContext(ctx, q, args...)
	return err
}

func (d *dbController) InTransaction() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.tx != nil
}

func (d *dbController) Begin(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tx != nil {
		return errors.New("transaction already started")
	}
	tx, err := d.base.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	d.tx = tx

	return nil
}

func (d *dbController) Commit() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tx == nil {
		return errors.New("no transaction to commit")
	}
	defer func() {
		d.tx = nil
	}()

	return d.tx.Commit()
}

func (d *dbController) Rollback() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tx == nil {
		return errors.New("no transaction to roll back")
	}
	defer func() {
		d.tx = nil
	}()

	return d.tx.Rollback()
}
