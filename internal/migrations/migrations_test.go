package migrations

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMigrations_Sorted(t *testing.T) {
	ms := Migrations()
	require.NotEmpty(t, ms)
	for i := 1; i < len(ms); i++ {
		assert.Less(t, ms[i-1].ID, ms[i].ID)
	}
}

func TestApply_FreshDatabase(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM schema_migrations")).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	for _, m := range Migrations() {
		mock.ExpectExec(regexp.QuoteMeta(m.UpSQL)).
			WillReturnResult(pgxmock.NewResult("CREATE", 0))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations")).
			WithArgs(m.ID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	require.NoError(t, Apply(context.Background(), discardLogger(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_SkipsAppliedMigrations(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	ms := Migrations()
	applied := pgxmock.NewRows([]string{"id"})
	for _, m := range ms {
		applied.AddRow(m.ID)
	}

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM schema_migrations")).
		WillReturnRows(applied)
	mock.ExpectBegin()
	mock.ExpectCommit()

	require.NoError(t, Apply(context.Background(), discardLogger(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_FailedMigrationRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	first := Migrations()[0]

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM schema_migrations")).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(first.UpSQL)).
		WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err = Apply(context.Background(), discardLogger(), mock)

	require.Error(t, err)
	assert.Contains(t, err.Error(), first.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
