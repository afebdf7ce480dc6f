package role

import (
	"context"

	"github.com/nkp491/surehelp/internal/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&UserRole{})
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]Role, error) {
	var roles []Role
	err := s.db.WithContext(ctx).Model(&UserRole{}).
		Where("user_id = ?", userID).
		Order("role").
		Pluck("role", &roles).Error
	return roles, err
}

// Grant is idempotent.
func (s *Store) Grant(ctx context.Context, userID string, r Role, grantedBy string) error {
	ur := &UserRole{
		ID:        shared.NewID("role_"),
		UserID:    userID,
		Role:      r,
		GrantedBy: grantedBy,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(ur).Error
}

func (s *Store) Revoke(ctx context.Context, userID string, r Role) error {
	result := s.db.WithContext(ctx).Where("user_id = ? AND role = ?", userID, r).Delete(&UserRole{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Store) UsersWithRole(ctx context.Context, r Role) ([]string, error) {
	var users []string
	err := s.db.WithContext(ctx).Model(&UserRole{}).
		Where("role = ?", r).
		Order("user_id").
		Pluck("user_id", &users).Error
	return users, err
}
