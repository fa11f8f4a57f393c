package database

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/alumni/core"
)

func TestDataSourceName(t *testing.T) {
	conf := core.NewTestConfig()
	conf.Database = core.DatabaseConfig{
		Host: "db", Port: "5432", Name: "alumni",
		User: "app", Password: "p@ss", AdminUser: "postgres", AdminPassword: "root",
	}

	assert.Equal(t, "postgres://app:p%40ss@db:5432/alumni?sslmode=require&timezone=utc", dataSourceName("alumni", false, conf))

	conf.Database.DisableTLS = true
	assert.Equal(t, "postgres://postgres:root@db:5432/postgres?sslmode=disable&timezone=utc", dataSourceName("postgres", true, conf))
}

func TestCreateDB(t *testing.T) {
	conf := core.NewTestConfig()
	conf.Database.Name = "alumni"
	checkQ := regexp.QuoteMeta("SELECT true FROM pg_database WHERE datname = $1")

	t.Run("already exists", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectQuery(checkQ).WithArgs("alumni").WillReturnRows(sqlmock.NewRows([]string{"bool"}).AddRow(true))

		require.NoError(t, createDB(context.Background(), sqlx.NewDb(mockDB, "postgres"), conf))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("created", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectQuery(checkQ).WithArgs("alumni").WillReturnRows(sqlmock.NewRows([]string{"bool"}))
		mock.ExpectExec(regexp.QuoteMeta(`CREATE DATABASE "alumni"`)).WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, createDB(context.Background(), sqlx.NewDb(mockDB, "postgres"), conf))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateAppUser(t *testing.T) {
	conf := core.NewTestConfig()
	conf.Database.User = "app"
	conf.Database.Password = "it's"

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT true FROM pg_roles WHERE rolname = $1")).
		WithArgs("app").WillReturnRows(sqlmock.NewRows([]string{"bool"}))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE USER "app" CREATEDB ENCRYPTED PASSWORD 'it''s'`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, createAppUser(context.Background(), sqlx.NewDb(mockDB, "postgres"), conf))
	assert.NoError(t, mock.ExpectationsWereMet())
}
