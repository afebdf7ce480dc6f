package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const userEventChannel = "user:%s:events"

func Channel(userID string) string {
	return fmt.Sprintf(userEventChannel, userID)
}

// Hub fans events out to every process holding a stream for the user.
type Hub struct {
	redis  *redis.Client
	logger *slog.Logger
	now    func() time.Time
}

func NewHub(redisClient *redis.Client, logger *slog.Logger) *Hub {
	return &Hub{
		redis:  redisClient,
		logger: logger.With("component", "hub"),
		now:    time.Now,
	}
}

func (h *Hub) Publish(ctx context.Context, userID, eventType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	data, err := json.Marshal(Event{Type: eventType, Payload: raw, At: h.now()})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := h.redis.Publish(ctx, Channel(userID), data).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	h.logger.Debug("published event", "user_id", userID, "type", eventType)
	return nil
}

// Subscription delivers a user's events until Close is called.
type Subscription struct {
	pubsub *redis.PubSub
	events chan Event
	done   chan struct{}
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) Close() error {
	err := s.pubsub.Close()
	<-s.done
	return err
}

// Subscribe returns once Redis has confirmed the subscription.
func (h *Hub) Subscribe(ctx context.Context, userID string) (*Subscription, error) {
	pubsub := h.redis.Subscribe(ctx, Channel(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	sub := &Subscription{
		pubsub: pubsub,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}

	messages := pubsub.Channel()
	go func() {
		defer close(sub.done)
		defer close(sub.events)

		for msg := range messages {
			var evt Event
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				h.logger.Error("unmarshal event", "error", err, "user_id", userID)
				continue
			}
			select {
			case sub.events <- evt:
			default:
				h.logger.Warn("event buffer full, dropping event", "user_id", userID, "type", evt.Type)
			}
		}
	}()

	return sub, nil
}
