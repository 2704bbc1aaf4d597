package sink

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/sqlkit"
	"github.com/zoobzio/sqlkit/postgres"
	"github.com/zoobzio/sqlkit/predicate"
)

type fakeRows struct {
	fields []pgconn.FieldDescription
	data   [][]any
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.closed || r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	for i, d := range dest {
		if p, ok := d.(*any); ok {
			*p = r.data[r.pos-1][i]
		}
	}
	return nil
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.pos-1], nil
}

type fakeQuerier struct {
	rows  *fakeRows
	err   error
	query string
	args  []any
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.query = sql
	q.args = args
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func newFakeRows(cols []string, data ...[]any) *fakeRows {
	fields := make([]pgconn.FieldDescription, len(cols))
	for i, c := range cols {
		fields[i] = pgconn.FieldDescription{Name: c}
	}
	return &fakeRows{fields: fields, data: data}
}

func TestPgx_Accept(t *testing.T) {
	q := &fakeQuerier{rows: newFakeRows([]string{"id", "name"},
		[]any{int64(1), "alice"},
		[]any{int64(2), "bob"},
	)}
	sink := NewPgx(q)

	stmt := sqlkit.NewSelect("users").
		Where(predicate.Map{"name": []any{"alice", "bob"}}).
		Limit(2).
		Offset(0)
	require.NoError(t, sqlkit.Prepare(sqlkit.Decorate(stmt, postgres.New()), postgres.New(), sink))

	assert.Equal(t, `SELECT "users".* FROM "users" WHERE "name" IN ($1, $2) LIMIT $3 OFFSET $4`, q.query)
	assert.Equal(t, []any{"alice", "bob", 2, 0}, q.args)

	res, ok := sink.Last()
	require.True(t, ok)
	assert.Equal(t, []string{"id", "name"}, res.Columns)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "bob", res.Rows[1]["name"])
	assert.True(t, q.rows.closed)
}

func TestPgx_LiteralPassesNoArgs(t *testing.T) {
	q := &fakeQuerier{rows: newFakeRows([]string{"id"})}
	sink := NewPgx(q)

	stmt := sqlkit.NewSelect("users").Limit(1)
	require.NoError(t, sqlkit.Literal(stmt, postgres.New(), sink))

	assert.Equal(t, `SELECT "users".* FROM "users" LIMIT 1`, q.query)
	assert.Empty(t, q.args)
	res, ok := sink.Last()
	require.True(t, ok)
	assert.Empty(t, res.Rows)
}

func TestPgx_Errors(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		sink := NewPgx(&fakeQuerier{err: assert.AnError})
		err := sink.Accept("SELECT 1", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "query")
	})

	t.Run("rows", func(t *testing.T) {
		rows := newFakeRows([]string{"id"}, []any{int64(1)})
		rows.err = assert.AnError
		sink := NewPgx(&fakeQuerier{rows: rows})
		err := sink.Accept("SELECT 1", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "collect")
		_, ok := sink.Last()
		assert.False(t, ok)
	})
}
