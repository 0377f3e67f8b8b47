package pgsql

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type execCall struct {
	sql  string
	args []any
}

// fakeTx records statements and fails the Nth Exec when failOnExec is set.
type fakeTx struct {
	pgx.Tx

	execs      []execCall
	failOnExec int
	execErr    error
	countRow   int
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.execs = append(t.execs, execCall{sql: sql, args: args})
	if t.failOnExec > 0 && len(t.execs) == t.failOnExec {
		return pgconn.CommandTag{}, t.execErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (t *fakeTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return fakeRow{values: []any{t.countRow}}
}

func (t *fakeTx) Commit(context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

// committedStatements returns the recorded statements only if the transaction committed.
func (t *fakeTx) committedStatements() []execCall {
	if !t.committed {
		return nil
	}
	return t.execs
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		if i >= len(r.values) {
			break
		}
		if p, ok := d.(*int); ok {
			*p = r.values[i].(int)
		}
	}
	return nil
}

// fakeDB hands out a single fakeTx and answers pool-level Exec with a fixed tag.
type fakeDB struct {
	tx       *fakeTx
	beginErr error
	execTag  pgconn.CommandTag
	execErr  error
}

func (d *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	return d.tx, nil
}

func (d *fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return d.execTag, d.execErr
}

func (d *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (d *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return fakeRow{err: pgx.ErrNoRows}
}

func tableOf(sql string) string {
	switch {
	case strings.Contains(sql, "INSERT INTO historical_exchange_rates"):
		return "historical_exchange_rates"
	case strings.Contains(sql, "INSERT INTO exchange_rates"):
		return "exchange_rates"
	}
	return ""
}
