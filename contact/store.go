package contact

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Record is the persisted form of a submission.
type Record struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Name         string    `json:"name" gorm:"column:name"`
	Email        string    `json:"email" gorm:"column:email;index"`
	Organization string    `json:"organization" gorm:"column:organization"`
	Message      string    `json:"message" gorm:"column:message"`
	ReceivedAt   time.Time `json:"received_at" gorm:"column:received_at;index"`
}

// TableName returns the table name for the Record model
func (Record) TableName() string {
	return "contact_submissions"
}

func recordOf(s Submission) Record {
	return Record{
		ID:           s.ID,
		Name:         s.Request.Name,
		Email:        s.Request.Email,
		Organization: s.Request.Organization,
		Message:      s.Request.Message,
		ReceivedAt:   s.ReceivedAt,
	}
}

// Store persists submissions with gorm.
type Store struct {
	db *gorm.DB
}

// OpenStore opens (or creates) a SQLite database at dsn.
// Use ":memory:" for an ephemeral store.
func OpenStore(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open contact store: %w", err)
	}
	if dsn == ":memory:" {
		// Each pooled connection would get its own empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return NewStore(db)
}

// NewStore wraps db and migrates the submissions table.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate contact store: %w", err)
	}
	return &Store{db: db}, nil
}

// Submit inserts the submission.
func (s *Store) Submit(ctx context.Context, sub Submission) error {
	rec := recordOf(sub)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("store submission %s: %w", sub.ID, err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	var out []Record
	q := s.db.WithContext(ctx).Order("received_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of stored submissions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&Record{}).Count(&n).Error
	return n, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
