package db

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lojf/regform/internal/logger"
	"github.com/lojf/regform/internal/models"
)

var conn *gorm.DB

// gormWriter sends gorm's log lines through the app logger, so they follow
// its level and format. gorm filters by its own LogLevel first.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...any) {
	logger.Warn().Str("component", "gorm").Msgf(format, args...)
}

// Open connects to the SQLite file named by dsn and creates the students
// table if it does not exist yet.
func Open(dsn string, lvl gormlogger.LogLevel) (*gorm.DB, error) {
	gl := gormlogger.New(
		gormWriter{},
		gormlogger.Config{
			SlowThreshold: 500 * time.Millisecond,
			LogLevel:      lvl,
			Colorful:      false,
		},
	)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gl})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}

	// SQLite works best with a single writer; cap the pool accordingly.
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := gdb.AutoMigrate(&models.Student{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	// Roster pages list newest first.
	if err := gdb.Exec("CREATE INDEX IF NOT EXISTS idx_students_created ON students(created_at)").Error; err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	return gdb, nil
}

// Init opens the application database and keeps it for Conn.
func Init(dsn string) error {
	gdb, err := Open(dsn, gormlogger.Warn)
	if err != nil {
		return err
	}
	conn = gdb
	return nil
}

func Conn() *gorm.DB {
	return conn
}

// Close releases the underlying connection pool.
func Close() error {
	if conn == nil {
		return nil
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
