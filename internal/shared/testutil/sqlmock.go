// Package testutil holds helpers shared by repository tests.
package testutil

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// NewMockDB returns a sqlx handle backed by go-sqlmock with regexp query
// matching. Named queries bind with '?' under the "sqlmock" driver name.
func NewMockDB(t testing.TB) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlx.NewDb(sqlDB, "sqlmock"), mock
}
