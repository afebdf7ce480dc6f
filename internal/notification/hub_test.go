package notification

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestChannel(t *testing.T) {
	if got := Channel("u1"); got != "user:u1:events" {
		t.Errorf("unexpected channel %s", got)
	}
}

func TestHub_PublishSubscribe(t *testing.T) {
	hub := NewHub(setupTestRedis(t), testLogger())
	ctx := context.Background()

	sub, err := hub.Subscribe(ctx, testUserID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Close()

	if err := hub.Publish(ctx, otherUserID, "metrics.updated", map[string]any{"field": "calls"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if err := hub.Publish(ctx, testUserID, "metrics.updated", map[string]any{"field": "leads"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case evt := <-sub.Events():
		if evt.Type != "metrics.updated" {
			t.Errorf("unexpected type %s", evt.Type)
		}
		var payload map[string]any
		json.Unmarshal(evt.Payload, &payload)
		if payload["field"] != "leads" {
			t.Errorf("expected only this user's event, got %v", payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSubscription_CloseEndsEvents(t *testing.T) {
	hub := NewHub(setupTestRedis(t), testLogger())

	sub, err := hub.Subscribe(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if err := sub.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	select {
	case _, ok := <-sub.Events():
		if ok {
			t.Error("expected closed events channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestService_NotifyPushes(t *testing.T) {
	svc, hub, store := newTestService(t)
	ctx := context.Background()

	sub, err := hub.Subscribe(ctx, testUserID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Close()

	n, err := svc.Notify(ctx, testUserID, KindTeamInvitation, "Invited to West", "", map[string]any{"team_id": "team_1"})
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	stored, _ := store.List(ctx, testUserID, ListOptions{})
	if len(stored) != 1 || stored[0].ID != n.ID {
		t.Fatalf("expected stored notification, got %v", stored)
	}

	select {
	case evt := <-sub.Events():
		if evt.Type != EventNotificationCreated {
			t.Errorf("unexpected type %s", evt.Type)
		}
		var pushed Notification
		json.Unmarshal(evt.Payload, &pushed)
		if pushed.ID != n.ID || pushed.Title != "Added to West" {
			t.Errorf("unexpected pushed notification %+v", pushed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for push")
	}
}
