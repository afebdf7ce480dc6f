package notification

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"gorm.io/datatypes"
)

type Service struct {
	store  *Store
	hub    *Hub
	now    func() time.Time
	logger *slog.Logger
}

func NewService(store *Store, hub *Hub, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		hub:    hub,
		now:    time.Now,
		logger: logger.With("component", "notifications"),
	}
}

// Notify stores a notification and pushes it to the user's open streams. A
// failed push is logged; the stored notification is still returned.
func (s *Service) Notify(ctx context.Context, userID, kind, title, message string, data map[string]any) (*Notification, error) {
	n := &Notification{
		UserID:  userID,
		Kind:    kind,
		Title:   title,
		Message: message,
	}
	if len(data) > 0 {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		n.Data = datatypes.JSON(raw)
	}

	if err := s.store.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.hub != nil {
		if err := s.hub.Publish(ctx, userID, EventNotificationCreated, n); err != nil {
			s.logger.Error("failed to push notification", "error", err, "user_id", userID, "notification_id", n.ID)
		}
	}
	return n, nil
}

// Send is Notify for callers that only care whether it was stored.
func (s *Service) Send(ctx context.Context, userID, kind, title, message string, data map[string]any) error {
	_, err := s.Notify(ctx, userID, kind, title, message, data)
	return err
}

func (s *Service) List(ctx context.Context, userID string, opts ListOptions) ([]*Notification, error) {
	return s.store.List(ctx, userID, opts)
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.store.UnreadCount(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	return s.store.MarkRead(ctx, userID, id, s.now())
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.store.MarkAllRead(ctx, userID, s.now())
}
