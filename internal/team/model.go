package team

import (
	"errors"
	"time"
)

var ErrInvalidReportsTo = errors.New("reports_to must be another active member of the team")

type MemberRole string

const (
	MemberRoleMember  MemberRole = "member"
	MemberRoleManager MemberRole = "manager"
	MemberRoleOwner   MemberRole = "owner"
)

// ParseMemberRole accepts the roles that can be assigned to a member. The
// owner role only comes from creating the team.
func ParseMemberRole(s string) (MemberRole, bool) {
	switch r := MemberRole(s); r {
	case MemberRoleMember, MemberRoleManager:
		return r, true
	case "":
		return MemberRoleMember, true
	}
	return "", false
}

// CanManage reports whether the member may change the team roster.
func (r MemberRole) CanManage() bool {
	return r == MemberRoleManager || r == MemberRoleOwner
}

// MemberStatus tracks whether the user accepted the membership. Only active
// members take part in the reporting hierarchy.
type MemberStatus string

const (
	MemberStatusPending MemberStatus = "pending"
	MemberStatusActive  MemberStatus = "active"
)

type Team struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	OwnerID   string    `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

type Member struct {
	ID        string       `gorm:"primaryKey" json:"id"`
	TeamID    string       `gorm:"not null;uniqueIndex:idx_team_user" json:"team_id"`
	UserID    string       `gorm:"not null;uniqueIndex:idx_team_user;index" json:"user_id"`
	Role      MemberRole   `gorm:"not null;size:16;default:member" json:"role"`
	ReportsTo string       `gorm:"index" json:"reports_to,omitempty"`
	Status    MemberStatus `gorm:"not null;size:16;default:active;index" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

func (m *Member) Active() bool {
	return m.Status == MemberStatusActive
}

func (Member) TableName() string {
	return "team_members"
}
