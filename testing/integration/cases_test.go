//go:build integration

package integration

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/sqlkit"
	"github.com/zoobzio/sqlkit/predicate"
	"github.com/zoobzio/sqlkit/sink"
)

// itemCount rows are seeded; note is NULL for even ids.
const itemCount = 20

// resultSink is a sink that keeps the last result.
type resultSink interface {
	sqlkit.Sink
	Last() (sink.Result, bool)
}

type execFunc func(ctx context.Context, query string) error

// seedItems recreates the items table through exec.
func seedItems(ctx context.Context, t *testing.T, exec execFunc) {
	t.Helper()

	require.NoError(t, exec(ctx, "DROP TABLE IF EXISTS items"))
	require.NoError(t, exec(ctx, `CREATE TABLE items (
		id INT PRIMARY KEY,
		label VARCHAR(50) NOT NULL,
		price INT NOT NULL,
		note VARCHAR(50) NULL
	)`))

	for i := 1; i <= itemCount; i++ {
		note := "NULL"
		if i%2 == 1 {
			note = fmt.Sprintf("'odd-%d'", i)
		}
		query := fmt.Sprintf("INSERT INTO items (id, label, price, note) VALUES (%d, 'item-%d', %d, %s)",
			i, i, i*10, note)
		require.NoError(t, exec(ctx, query))
	}
}

type itemCase struct {
	name string
	stmt func() *sqlkit.Select
	want []int64
}

func itemCases() []itemCase {
	base := func() *sqlkit.Select {
		return sqlkit.NewSelect("items").Columns("id").OrderBy("id", sqlkit.ASC)
	}
	return []itemCase{
		{
			name: "offset only",
			stmt: func() *sqlkit.Select { return base().Offset(15) },
			want: []int64{16, 17, 18, 19, 20},
		},
		{
			name: "limit and offset",
			stmt: func() *sqlkit.Select { return base().Limit(5).Offset(10) },
			want: []int64{11, 12, 13, 14, 15},
		},
		{
			name: "limit only",
			stmt: func() *sqlkit.Select { return base().Limit(2) },
			want: []int64{1, 2},
		},
		{
			name: "operator and null",
			stmt: func() *sqlkit.Select {
				return base().Where(predicate.Map{"price >= ?": 100, "note": nil}).Limit(3)
			},
			want: []int64{10, 12, 14},
		},
		{
			name: "nested or group",
			stmt: func() *sqlkit.Select {
				return base().Where(predicate.Group(predicate.OR, predicate.Map{"id < ?": 3, "id > ?": 18}))
			},
			want: []int64{1, 2, 19, 20},
		},
		{
			name: "in list with offset",
			stmt: func() *sqlkit.Select {
				return base().Where(predicate.Map{"id": []any{4, 5, 6, 7}}).Offset(2)
			},
			want: []int64{6, 7},
		},
		{
			name: "between and not like",
			stmt: func() *sqlkit.Select {
				return base().
					Where(predicate.Use(predicate.Between("price", 30, 60))).
					Where(predicate.Use(predicate.Operator("label", predicate.NotLike, "item-5")))
			},
			want: []int64{3, 4, 6},
		},
		{
			name: "quoted string value",
			stmt: func() *sqlkit.Select {
				return base().Where(predicate.Map{"label <> ?": "o'brien"}).Limit(2).Offset(1)
			},
			want: []int64{2, 3},
		},
		{
			name: "empty not in matches all",
			stmt: func() *sqlkit.Select {
				return base().Where(predicate.Use(predicate.NotIn("id"))).Offset(18)
			},
			want: []int64{19, 20},
		},
	}
}

// runItemCases renders every case in both modes through s and checks the ids.
func runItemCases(t *testing.T, p sqlkit.Platform, s resultSink) {
	t.Helper()

	for _, tc := range itemCases() {
		t.Run(tc.name, func(t *testing.T) {
			stmt := sqlkit.Decorate(tc.stmt(), p)

			require.NoError(t, sqlkit.Prepare(stmt, p, s))
			res, ok := s.Last()
			require.True(t, ok)
			assert.Equal(t, tc.want, ids(t, res), "prepared: %s", res.SQL)

			require.NoError(t, sqlkit.Literal(stmt, p, s))
			res, ok = s.Last()
			require.True(t, ok)
			assert.Equal(t, tc.want, ids(t, res), "literal: %s", res.SQL)
		})
	}
}

func ids(t *testing.T, res sink.Result) []int64 {
	t.Helper()
	out := make([]int64, 0, len(res.Rows))
	for _, row := range res.Rows {
		switch v := row["id"].(type) {
		case int64:
			out = append(out, v)
		case int32:
			out = append(out, int64(v))
		case int:
			out = append(out, int64(v))
		case string:
			n, err := strconv.ParseInt(v, 10, 64)
			require.NoError(t, err)
			out = append(out, n)
		default:
			t.Fatalf("unexpected id type %T", v)
		}
	}
	return out
}
