package dto

type NotificationResponse struct {
	ID        string         `json:"id" example:"ntf_abc123"`
	Kind      string         `json:"kind" example:"team.invitation"`
	Title     string         `json:"title" example:"You were added to West Region"`
	Message   string         `json:"message,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Read      bool           `json:"read" example:"false"`
	ReadAt    string         `json:"read_at,omitempty"`
	CreatedAt string         `json:"created_at" example:"2024-01-15T10:00:00Z"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count" example:"3"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated" example:"3"`
}
