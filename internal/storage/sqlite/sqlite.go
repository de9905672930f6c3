package sqlite

import (
	_ "embed"
	"errors"
	"log/slog"
	"mymdb/proj/internal/lib/logger"
	"mymdb/proj/internal/storage"
	"strings"
	"time"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed schema.sql
var schema string

// Storage is the embedded SQLite backend. It keeps a single connection open:
// SQLite serializes writers anyway and an in-memory database only lives as
// long as its connection.
type Storage struct {
	DB *gorm.DB
}

func New(dsn string, log *slog.Logger) (*Storage, error) {
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(logger.LogAdapter(log), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}
	if err := db.Exec(schema).Error; err != nil {
		return nil, err
	}
	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ClassifyError maps gorm errors onto the storage sentinels.
func ClassifyError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return storage.ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return storage.ErrForeignKey
	}
	// older drivers leave constraint errors untranslated
	switch msg := err.Error(); {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return storage.ErrConflict
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return storage.ErrForeignKey
	}
	return err
}
