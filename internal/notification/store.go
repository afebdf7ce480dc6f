package notification

import (
	"context"
	"time"

	"github.com/nkp491/surehelp/internal/shared"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Notification{})
}

func (s *Store) Create(ctx context.Context, n *Notification) error {
	if n.ID == "" {
		n.ID = shared.NewID("ntf_")
	}
	return s.db.WithContext(ctx).Create(n).Error
}

type ListOptions struct {
	UnreadOnly bool
	Limit      int
	Before     time.Time
}

// List returns the newest notifications first.
func (s *Store) List(ctx context.Context, userID string, opts ListOptions) ([]*Notification, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)

	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if opts.UnreadOnly {
		q = q.Where("read = ?", false)
	}
	if !opts.Before.IsZero() {
		q = q.Where("created_at < ?", opts.Before)
	}

	var out []*Notification
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (s *Store) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (s *Store) MarkRead(ctx context.Context, userID, id string, at time.Time) error {
	result := s.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"read": true, "read_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Store) MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]any{"read": true, "read_at": at})
	return result.RowsAffected, result.Error
}
