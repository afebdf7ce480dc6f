package role

import (
	"errors"
	"time"
)

var ErrUnknownRole = errors.New("unknown role")

type Role string

const (
	Agent              Role = "agent"
	ManagerPro         Role = "manager_pro"
	ManagerProGold     Role = "manager_pro_gold"
	ManagerProPlatinum Role = "manager_pro_platinum"
	BetaUser           Role = "beta_user"
	SystemAdmin        Role = "system_admin"
)

var All = []Role{Agent, ManagerPro, ManagerProGold, ManagerProPlatinum, BetaUser, SystemAdmin}

// Managers are the roles allowed to own teams.
var Managers = []Role{ManagerPro, ManagerProGold, ManagerProPlatinum, SystemAdmin}

func Parse(s string) (Role, error) {
	for _, r := range All {
		if string(r) == s {
			return r, nil
		}
	}
	return "", ErrUnknownRole
}

// tierDepth is how many levels of the reporting hierarchy each manager tier
// may see.
var tierDepth = map[Role]int{
	ManagerPro:         1,
	ManagerProGold:     2,
	ManagerProPlatinum: 3,
}

type UserRole struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_user_role" json:"user_id"`
	Role      Role      `gorm:"not null;size:32;uniqueIndex:idx_user_role;index" json:"role"`
	GrantedBy string    `json:"granted_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
