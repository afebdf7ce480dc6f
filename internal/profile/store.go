package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/nkp491/surehelp/internal/shared"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Profile{})
}

func (s *Store) GetByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &p, err
}

func (s *Store) ListByIDs(ctx context.Context, ids []string) ([]*Profile, error) {
	var profiles []*Profile
	if len(ids) == 0 {
		return profiles, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("first_name, last_name").Find(&profiles).Error
	return profiles, err
}

// FindOrCreateFromJWT keeps the profile in step with the identity claims.
// Names edited by the user are not overwritten by an empty claim.
func (s *Store) FindOrCreateFromJWT(ctx context.Context, userID, email, name, avatar string) (*Profile, error) {
	first, last := SplitName(strings.TrimSpace(name))

	var p Profile
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&p).Error
	if err == nil {
		changed := false
		if email != "" && p.Email != email {
			p.Email = email
			changed = true
		}
		if avatar != "" && p.AvatarURL != avatar {
			p.AvatarURL = avatar
			changed = true
		}
		if p.FirstName == "" && p.LastName == "" && first != "" {
			p.FirstName, p.LastName = first, last
			changed = true
		}
		if changed {
			if err := s.db.WithContext(ctx).Save(&p).Error; err != nil {
				return nil, err
			}
		}
		return &p, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p = Profile{
		ID:        userID,
		Email:     email,
		FirstName: first,
		LastName:  last,
		AvatarURL: avatar,
	}

	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *Store) SyncFromJWT(ctx context.Context, userID, email, name, avatar string) error {
	_, err := s.FindOrCreateFromJWT(ctx, userID, email, name, avatar)
	return err
}

func (s *Store) Update(ctx context.Context, id string, updates map[string]any) (*Profile, error) {
	if len(updates) > 0 {
		result := s.db.WithContext(ctx).Model(&Profile{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, shared.ErrNotFound
		}
	}
	return s.GetByID(ctx, id)
}

func (s *Store) SetPrivacy(ctx context.Context, id string, data datatypes.JSON) error {
	result := s.db.WithContext(ctx).Model(&Profile{}).Where("id = ?", id).Update("privacy", data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
