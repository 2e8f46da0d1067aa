package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func TestGetTableColumns(t *testing.T) {
	db := newSQLite(t)

	err := db.Exec("CREATE TABLE acme_march (id INTEGER PRIMARY KEY, Account TEXT NOT NULL, \"Gross commission\" DECIMAL(10,2))").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "acme_march")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	colMap := make(map[string]ColumnInfo)
	for _, col := range columns {
		colMap[col.Field] = col
	}

	assert.Equal(t, "integer", colMap["id"].Type)
	assert.Equal(t, "text", colMap["Account"].Type)
	assert.Equal(t, "NO", colMap["Account"].Null)
	assert.Equal(t, "decimal(10,2)", colMap["Gross commission"].Type)

	// PRAGMA table_info returns an empty result for unknown tables.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("Account", "VARCHAR(64)", "NO", "", nil, "").
		AddRow("Gross commission", "DECIMAL(10,2)", "YES", "", nil, "")
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `acme_march`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "acme_march")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "Account", columns[0].Field)
	assert.Equal(t, "varchar(64)", columns[0].Type)
	assert.Equal(t, "decimal(10,2)", columns[1].Type)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestReadRows(t *testing.T) {
	db := newSQLite(t)
	require.NoError(t, db.Exec("CREATE TABLE r (Account TEXT, Amount REAL)").Error)
	require.NoError(t, db.Exec("INSERT INTO r VALUES ('A', 1.5), ('B', NULL)").Error)

	names, rows, err := ReadRows(context.Background(), db, "r")
	require.NoError(t, err)
	assert.Equal(t, []string{"Account", "Amount"}, names)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0][0])
	assert.Equal(t, 1.5, rows[0][1])
	assert.Nil(t, rows[1][1])
}

func TestReadRows_MySQLError(t *testing.T) {
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	sqlMock.ExpectQuery("SELECT \\* FROM `missing`").WillReturnError(assert.AnError)

	_, _, err = ReadRows(context.Background(), db, "missing")
	assert.ErrorIs(t, err, assert.AnError)
}
