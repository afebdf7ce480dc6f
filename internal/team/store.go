package team

import (
	"context"
	"errors"

	"github.com/nkp491/surehelp/internal/shared"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Team{}, &Member{})
}

// Create stores the team and adds its owner as the first member.
func (s *Store) Create(ctx context.Context, t *Team) error {
	if t.ID == "" {
		t.ID = shared.NewID("team_")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		return tx.Create(&Member{
			ID:     shared.NewID("tm_"),
			TeamID: t.ID,
			UserID: t.OwnerID,
			Role:   MemberRoleOwner,
			Status: MemberStatusActive,
		}).Error
	})
}

func (s *Store) Get(ctx context.Context, id string) (*Team, error) {
	var t Team
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &t, err
}

func (s *Store) ListForUser(ctx context.Context, userID string) ([]*Team, error) {
	var teams []*Team
	err := s.db.WithContext(ctx).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Order("teams.name").
		Find(&teams).Error
	return teams, err
}

func (s *Store) Members(ctx context.Context, teamID string) ([]*Member, error) {
	var members []*Member
	err := s.db.WithContext(ctx).Where("team_id = ?", teamID).Order("created_at, user_id").Find(&members).Error
	return members, err
}

func (s *Store) GetMember(ctx context.Context, teamID, userID string) (*Member, error) {
	var m Member
	err := s.db.WithContext(ctx).Where("team_id = ? AND user_id = ?", teamID, userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &m, err
}

// AddMember inserts or updates the membership of m.UserID in m.TeamID. New
// rows without a status are active; updates keep the stored status.
func (s *Store) AddMember(ctx context.Context, m *Member) error {
	return s.saveMember(ctx, m, true)
}

// Invite inserts a pending membership that counts toward the hierarchy only
// after Accept. It fails with shared.ErrConflict when the user is already on
// the team.
func (s *Store) Invite(ctx context.Context, m *Member) error {
	m.Status = MemberStatusPending
	return s.saveMember(ctx, m, false)
}

func (s *Store) saveMember(ctx context.Context, m *Member, update bool) error {
	if m.ReportsTo == m.UserID {
		return ErrInvalidReportsTo
	}
	if m.Status == "" {
		m.Status = MemberStatusActive
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.ReportsTo != "" {
			var count int64
			err := tx.Model(&Member{}).
				Where("team_id = ? AND user_id = ? AND status = ?", m.TeamID, m.ReportsTo, MemberStatusActive).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count == 0 {
				return ErrInvalidReportsTo
			}
		}

		var existing Member
		err := tx.Where("team_id = ? AND user_id = ?", m.TeamID, m.UserID).First(&existing).Error
		if err == nil {
			if !update {
				return shared.ErrConflict
			}
			m.ID = existing.ID
			m.Status = existing.Status
			m.CreatedAt = existing.CreatedAt
			return tx.Model(&existing).Updates(map[string]any{
				"role":       m.Role,
				"reports_to": m.ReportsTo,
			}).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if m.ID == "" {
			m.ID = shared.NewID("tm_")
		}
		return tx.Create(m).Error
	})
}

// Accept activates a pending membership.
func (s *Store) Accept(ctx context.Context, teamID, userID string) (*Member, error) {
	result := s.db.WithContext(ctx).Model(&Member{}).
		Where("team_id = ? AND user_id = ? AND status = ?", teamID, userID, MemberStatusPending).
		Update("status", MemberStatusActive)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return s.GetMember(ctx, teamID, userID)
}

// RemoveMember deletes the membership and detaches anyone who reported to
// the removed user within the team.
func (s *Store) RemoveMember(ctx context.Context, teamID, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&Member{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Model(&Member{}).
			Where("team_id = ? AND reports_to = ?", teamID, userID).
			Update("reports_to", "").Error
	})
}

type reportEdge struct {
	UserID    string
	ReportsTo string
}

// DirectReports returns, for each manager, the active members reporting to
// them in any team.
func (s *Store) DirectReports(ctx context.Context, managerIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(managerIDs))
	if len(managerIDs) == 0 {
		return out, nil
	}

	var edges []reportEdge
	err := s.db.WithContext(ctx).Model(&Member{}).
		Distinct("user_id", "reports_to").
		Where("reports_to IN ? AND status = ?", managerIDs, MemberStatusActive).
		Order("user_id").
		Scan(&edges).Error
	if err != nil {
		return nil, err
	}

	for _, e := range edges {
		out[e.ReportsTo] = append(out[e.ReportsTo], e.UserID)
	}
	return out, nil
}
