package db

import (
	"context"
	"regexp"
	"testing"
	"time"

	"presence_backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeHash(p string) (string, error) { return "hashed:" + p, nil }

func TestSeedDataDatesRowsInCivilZone(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	// 00:30 IST on the 21st is still the 20th in UTC.
	ist := time.FixedZone("IST", 5*60*60+30*60)
	today := time.Date(2024, 3, 21, 0, 30, 0, 0, ist)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM teachers)")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	for i := 0; i < 2; i++ {
		mock.ExpectExec("INSERT INTO teachers").WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectExec("INSERT INTO admins").
		WithArgs("hashed:123").
		WillReturnResult(sqlmock.NewResult(1, 1))
	for i := 0; i < 3; i++ {
		mock.ExpectExec("INSERT INTO school_auth").WillReturnResult(sqlmock.NewResult(1, 1))
	}
	for i := 0; i < 3; i++ {
		mock.ExpectExec("INSERT INTO students").WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectExec("INSERT INTO attendance").
		WithArgs("S001", "2024-03-21", "Present", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO attendance").
		WithArgs("S002", "2024-03-21", "Absent", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	for i := 0; i < 2; i++ {
		mock.ExpectExec("INSERT INTO schedules").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "2024-03-21").
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, SeedData(context.Background(), conn, today, fakeHash))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedDataSkipsPopulatedDatabase(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM teachers)")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	require.NoError(t, SeedData(context.Background(), conn, time.Now(), fakeHash))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootstrapAdmin(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	admin := models.Admin{AdminID: "root", Name: "Administrator", PasswordHash: "hash"}

	mock.ExpectExec(regexp.QuoteMeta("WHERE NOT EXISTS (SELECT 1 FROM admins)")).
		WithArgs("root", "Administrator", "", "hash").
		WillReturnResult(sqlmock.NewResult(1, 1))
	created, err := BootstrapAdmin(context.Background(), conn, admin)
	require.NoError(t, err)
	assert.True(t, created)

	mock.ExpectExec(regexp.QuoteMeta("WHERE NOT EXISTS (SELECT 1 FROM admins)")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	created, err = BootstrapAdmin(context.Background(), conn, admin)
	require.NoError(t, err)
	assert.False(t, created)

	assert.NoError(t, mock.ExpectationsWereMet())
}
