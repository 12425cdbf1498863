package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// scanInto copies stubbed row values into scan destinations.
func scanInto(dest []any, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("scan arity mismatch: %d dest, %d vals", len(dest), len(vals))
	}
	for i := range dest {
		dv := reflect.ValueOf(dest[i]).Elem()
		if vals[i] == nil {
			dv.Set(reflect.Zero(dv.Type()))
			continue
		}
		v := reflect.ValueOf(vals[i])
		if !v.Type().AssignableTo(dv.Type()) {
			if !v.Type().ConvertibleTo(dv.Type()) {
				return fmt.Errorf("cannot scan %T into %s", vals[i], dv.Type())
			}
			v = v.Convert(dv.Type())
		}
		dv.Set(v)
	}
	return nil
}

// rowStub implements pgx.Row.
type rowStub struct{ scan func(dest ...any) error }

func (r rowStub) Scan(dest ...any) error { return r.scan(dest...) }

// rowsStub implements pgx.Rows over canned value tuples.
type rowsStub struct {
	vals [][]any
	i    int
	err  error
}

func (r *rowsStub) Close()                                       {}
func (r *rowsStub) Err() error                                   { return r.err }
func (r *rowsStub) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *rowsStub) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *rowsStub) Next() bool                                   { r.i++; return r.i <= len(r.vals) }
func (r *rowsStub) Scan(dest ...any) error                       { return scanInto(dest, r.vals[r.i-1]) }
func (r *rowsStub) Values() ([]any, error)                       { return nil, nil }
func (r *rowsStub) RawValues() [][]byte                          { return nil }
func (r *rowsStub) Conn() *pgx.Conn                              { return nil }

type execCall struct {
	sql  string
	args []any
}

// poolStub implements postgres.PgxPool. QueryRow and Query consume their
// canned responses in call order.
type poolStub struct {
	execErr error
	execs   []execCall

	rowVals [][]any
	rowN    int
	rowErr  error

	queryRows []pgx.Rows
	queryN    int
	queryErr  error
}

func (p *poolStub) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	p.execs = append(p.execs, execCall{sql: sql, args: args})
	return pgconn.CommandTag{}, p.execErr
}

func (p *poolStub) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	if p.rowErr != nil {
		return rowStub{scan: func(...any) error { return p.rowErr }}
	}
	if p.rowN >= len(p.rowVals) {
		return rowStub{scan: func(...any) error { return errors.New("no row configured") }}
	}
	vals := p.rowVals[p.rowN]
	p.rowN++
	return rowStub{scan: func(dest ...any) error { return scanInto(dest, vals) }}
}

func (p *poolStub) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	if p.queryErr != nil {
		return nil, p.queryErr
	}
	if p.queryN >= len(p.queryRows) {
		return &rowsStub{}, nil
	}
	rows := p.queryRows[p.queryN]
	p.queryN++
	return rows, nil
}
