package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGetTableColumns(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("code", "VARCHAR(64)", "NO", "PRI", nil, "").
		AddRow("defaultCategory", "TEXT", "YES", "", nil, "").
		AddRow("stock", "INT(11)", "YES", "", "0", "")
	mock.ExpectQuery("SHOW COLUMNS FROM `products`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "products")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	assert.Equal(t, "code", columns[0].Field)
	assert.Equal(t, "varchar(64)", columns[0].Type)
	assert.Equal(t, "defaultCategory", columns[1].Field)
	assert.Equal(t, "int(11)", columns[2].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTableColumns_InvalidName(t *testing.T) {
	db, _ := setupMockDB(t)

	_, err := GetTableColumns(db, "products`; DROP TABLE x")
	assert.Error(t, err)
}
