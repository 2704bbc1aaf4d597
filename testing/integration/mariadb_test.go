//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/sqlkit"
	"github.com/zoobzio/sqlkit/mariadb"
	"github.com/zoobzio/sqlkit/mysql"
	"github.com/zoobzio/sqlkit/sink"
	sqlkittest "github.com/zoobzio/sqlkit/testing"
)

func TestMariaDB_Items(t *testing.T) {
	mc := getMariaDBContainer(t)
	ctx := context.Background()

	seedItems(ctx, t, func(ctx context.Context, query string) error {
		_, err := mc.db.ExecContext(ctx, query)
		return err
	})

	s := sink.NewDB(mc.db, sink.WithContext(ctx), sink.WithLogger(sqlkittest.NewTestLogger(t)))

	t.Run("mysql", func(t *testing.T) {
		runItemCases(t, mysql.New(), s)
	})
	t.Run("mariadb", func(t *testing.T) {
		runItemCases(t, mariadb.New(), s)
	})
}

func TestMariaDB_SentinelIsAccepted(t *testing.T) {
	mc := getMariaDBContainer(t)
	ctx := context.Background()

	p := mariadb.New()
	query, err := sqlkit.RenderLiteral(sqlkit.Decorate(sqlkit.NewSelect("items").Offset(0), p), p)
	require.NoError(t, err)
	assert.Contains(t, query, "LIMIT "+mysql.LimitSentinel)

	var n int
	require.NoError(t, mc.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ("+query+") AS t").Scan(&n))
	assert.Equal(t, itemCount, n)
}
