package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPersistentModels(t *testing.T) {
	models := PersistentModels()
	assert.Len(t, models, 4)
}

func TestGormLoggerLogMode(t *testing.T) {
	base := NewGormLogger()
	silenced := base.LogMode(logger.Silent)

	// LogMode must return a copy, not mutate the shared instance.
	assert.NotSame(t, base, silenced)
	assert.Equal(t, logger.Warn, base.(*CustomGormLogger).Config.LogLevel)
	assert.Equal(t, logger.Silent, silenced.(*CustomGormLogger).Config.LogLevel)
}

func TestGormUsesCustomLogger(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         NewGormLogger(),
		TranslateError: true,
	})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "swap_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	var n int64
	require.NoError(t, gdb.Table("swap_requests").Count(&n).Error)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
