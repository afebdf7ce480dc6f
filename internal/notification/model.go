package notification

import (
	"time"

	"gorm.io/datatypes"
)

const (
	KindTeamInvitation   = "team.invitation"
	KindTeamMemberJoined = "team.member_joined"
	KindRoleGranted      = "role.granted"
	KindRoleRevoked      = "role.revoked"

	EventNotificationCreated = "notification.created"
	EventStreamReady         = "stream.ready"
)

type Notification struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	UserID    string         `gorm:"not null;index:idx_notifications_user_read" json:"user_id"`
	Kind      string         `gorm:"not null;size:64" json:"kind"`
	Title     string         `gorm:"not null" json:"title"`
	Message   string         `json:"message,omitempty"`
	Data      datatypes.JSON `json:"data,omitempty"`
	Read      bool           `gorm:"not null;default:false;index:idx_notifications_user_read" json:"read"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Event is what subscribers of a user's channel receive.
type Event struct {
	Type    string         `json:"type"`
	Payload datatypes.JSON `json:"payload,omitempty"`
	At      time.Time      `json:"at"`
}
