package recorder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/imgrooty/roi-calculator/pkg/calculator"
)

// entryRow is the gorm model of the entries table.
type entryRow struct {
	ID         string    `gorm:"primaryKey"`
	RecordedAt time.Time `gorm:"index"`
	Email      string
	Revenue    float64
	Cost       float64
	ROI        float64 `gorm:"column:roi"`
}

func (entryRow) TableName() string { return "entries" }

// SQLite stores entries in a SQLite database through gorm.
type SQLite struct {
	db  *gorm.DB
	now func() time.Time
}

// OpenSQLite opens the database at path and migrates the entries table.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&entryRow{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &SQLite{db: db, now: time.Now}, nil
}

// Record inserts e.
func (s *SQLite) Record(ctx context.Context, e calculator.Entry) error {
	row := entryRow{
		ID:         uuid.NewString(),
		RecordedAt: s.now().UTC(),
		Email:      e.Email,
		Revenue:    e.Revenue,
		Cost:       e.Cost,
		ROI:        e.ROI,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// List returns up to limit entries, newest first.
func (s *SQLite) List(ctx context.Context, limit int) ([]Stored, error) {
	var rows []entryRow
	q := s.db.WithContext(ctx).Order("recorded_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]Stored, 0, len(rows))
	for _, r := range rows {
		out = append(out, Stored{
			ID:         r.ID,
			RecordedAt: r.RecordedAt,
			Entry: calculator.Entry{
				Email:   r.Email,
				Revenue: r.Revenue,
				Cost:    r.Cost,
				ROI:     r.ROI,
			},
		})
	}
	return out, nil
}

// Ping checks the database connection.
func (s *SQLite) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
