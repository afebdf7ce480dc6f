package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/nkp491/surehelp/internal/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyMetric is one user's counters for one calendar day.
type DailyMetric struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_daily_user_date" json:"user_id"`
	Date      string    `gorm:"not null;size:10;uniqueIndex:idx_daily_user_date" json:"date"`
	Leads     int64     `gorm:"not null;default:0" json:"leads"`
	Calls     int64     `gorm:"not null;default:0" json:"calls"`
	Contacts  int64     `gorm:"not null;default:0" json:"contacts"`
	Scheduled int64     `gorm:"not null;default:0" json:"scheduled"`
	Sits      int64     `gorm:"not null;default:0" json:"sits"`
	Sales     int64     `gorm:"not null;default:0" json:"sales"`
	AP        int64     `gorm:"column:ap;not null;default:0" json:"ap"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DailyMetric) TableName() string {
	return "daily_metrics"
}

func (d *DailyMetric) Snapshot() Snapshot {
	return Snapshot{
		Leads:     d.Leads,
		Calls:     d.Calls,
		Contacts:  d.Contacts,
		Scheduled: d.Scheduled,
		Sits:      d.Sits,
		Sales:     d.Sales,
		AP:        d.AP,
	}
}

func (d *DailyMetric) SetSnapshot(s Snapshot) {
	d.Leads = s.Leads
	d.Calls = s.Calls
	d.Contacts = s.Contacts
	d.Scheduled = s.Scheduled
	d.Sits = s.Sits
	d.Sales = s.Sales
	d.AP = s.AP
}

var counterColumns = []string{"leads", "calls", "contacts", "scheduled", "sits", "sales", "ap"}

type DailyStore struct {
	db *gorm.DB
}

func NewDailyStore(db *gorm.DB) *DailyStore {
	return &DailyStore{db: db}
}

func (s *DailyStore) Migrate() error {
	return s.db.AutoMigrate(&DailyMetric{})
}

func (s *DailyStore) Get(ctx context.Context, userID, date string) (*DailyMetric, error) {
	var m DailyMetric
	err := s.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &m, err
}

// Upsert writes the full row for (user_id, date), replacing the counters.
func (s *DailyStore) Upsert(ctx context.Context, m *DailyMetric) error {
	if m.ID == "" {
		m.ID = shared.NewID("dm_")
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns(append(counterColumns, "updated_at")),
	}).Create(m).Error
}

func (s *DailyStore) ListRange(ctx context.Context, userID, from, to string) ([]*DailyMetric, error) {
	var rows []*DailyMetric
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

const sumSelect = "COALESCE(SUM(leads), 0) AS leads, COALESCE(SUM(calls), 0) AS calls, " +
	"COALESCE(SUM(contacts), 0) AS contacts, COALESCE(SUM(scheduled), 0) AS scheduled, " +
	"COALESCE(SUM(sits), 0) AS sits, COALESCE(SUM(sales), 0) AS sales, COALESCE(SUM(ap), 0) AS ap"

// SumRange totals the counters of userID over the inclusive date range.
func (s *DailyStore) SumRange(ctx context.Context, userID, from, to string) (Snapshot, error) {
	var total Snapshot
	err := s.db.WithContext(ctx).Model(&DailyMetric{}).
		Select(sumSelect).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Scan(&total).Error
	return total, err
}

type UserTotals struct {
	UserID string
	Snapshot
}

// SumRangeForUsers totals each listed user over the range. Users without rows
// are omitted.
func (s *DailyStore) SumRangeForUsers(ctx context.Context, userIDs []string, from, to string) (map[string]Snapshot, error) {
	out := make(map[string]Snapshot, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	var rows []UserTotals
	err := s.db.WithContext(ctx).Model(&DailyMetric{}).
		Select("user_id, "+sumSelect).
		Where("user_id IN ? AND date >= ? AND date <= ?", userIDs, from, to).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.UserID] = r.Snapshot
	}
	return out, nil
}

// DistinctUsers lists users with any history on or after since.
func (s *DailyStore) DistinctUsers(ctx context.Context, since string) ([]string, error) {
	var users []string
	err := s.db.WithContext(ctx).Model(&DailyMetric{}).
		Where("date >= ?", since).
		Distinct().
		Order("user_id").
		Pluck("user_id", &users).Error
	return users, err
}
