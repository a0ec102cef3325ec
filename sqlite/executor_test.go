package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/asaidimu/go-kente/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockExecutor(t *testing.T) (*Executor, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewExecutor(db, nil, nil), mock
}

func TestExecutor_Query(t *testing.T) {
	exec, mock := newMockExecutor(t)
	mock.ExpectQuery("SELECT `id`, `name` FROM `users` WHERE `id` = ?;").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "Alice").
			AddRow(int64(2), nil))

	rs, err := exec.Query(context.Background(), "SELECT `id`, `name` FROM `users` WHERE `id` = ?;", []any{int64(1)})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, rs.Columns)
	require.Len(t, rs.Rows, 2)
	assert.True(t, core.Int(1).Equal(rs.Rows[0][0]))
	assert.True(t, core.Text("Alice").Equal(rs.Rows[0][1]))
	assert.True(t, rs.Rows[1][1].IsNull())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutor_QueryError(t *testing.T) {
	exec, mock := newMockExecutor(t)
	mock.ExpectQuery("SELECT * FROM `missing`;").
		WillReturnError(errors.New("no such table"))

	_, err := exec.Query(context.Background(), "SELECT * FROM `missing`;", nil)
	require.ErrorContains(t, err, "no such table")
}

func TestExecutor_Exec(t *testing.T) {
	exec, mock := newMockExecutor(t)
	mock.ExpectExec("UPDATE `users` SET `name` = ? WHERE `id` = ?;").
		WithArgs("Bob", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := exec.Exec(context.Background(), "UPDATE `users` SET `name` = ? WHERE `id` = ?;", []any{"Bob", int64(2)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutor_ExecError(t *testing.T) {
	exec, mock := newMockExecutor(t)
	mock.ExpectExec("DELETE FROM `users`;").
		WillReturnError(errors.New("locked"))

	_, err := exec.Exec(context.Background(), "DELETE FROM `users`;", nil)
	require.ErrorContains(t, err, "locked")
}

func TestExecutor_WithTx(t *testing.T) {
	exec, mock := newMockExecutor(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `users` WHERE `id` = ?;").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx, err := exec.DB().Begin()
	require.NoError(t, err)

	scoped := exec.WithTx(tx)
	affected, err := scoped.Exec(context.Background(), "DELETE FROM `users` WHERE `id` = ?;", []any{int64(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_BadPath(t *testing.T) {
	_, err := Open("/no/such/dir/db.sqlite", nil)
	var connErr *core.ConnectionError
	require.True(t, errors.As(err, &connErr))
}
