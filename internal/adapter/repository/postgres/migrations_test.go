package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestMigrate(t *testing.T) {
	db, mock := newDB(t)

	mock.MatchExpectationsInOrder(true)
	for range migrations {
		mock.ExpectExec(regexp.QuoteMeta("IF NOT EXISTS")).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	assert.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateStopsAtFirstFailure(t *testing.T) {
	db, mock := newDB(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS cars")).WillReturnError(errors.New("permission denied"))

	err := Migrate(context.Background(), db)

	assert.ErrorContains(t, err, "migration 2 failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
