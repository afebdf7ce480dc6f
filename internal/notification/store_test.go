package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nkp491/surehelp/internal/shared"
)

func TestStore_ListAndCount(t *testing.T) {
	_, _, store := newTestService(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		n := &Notification{UserID: testUserID, Kind: KindRoleGranted, Title: "n", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := store.Create(ctx, n); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	store.Create(ctx, &Notification{UserID: otherUserID, Kind: KindRoleGranted, Title: "other"})

	items, err := store.List(ctx, testUserID, ListOptions{Limit: 3})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if !items[0].CreatedAt.After(items[1].CreatedAt) {
		t.Error("expected newest first")
	}

	older, _ := store.List(ctx, testUserID, ListOptions{Before: items[2].CreatedAt})
	if len(older) != 2 {
		t.Errorf("expected 2 older items, got %d", len(older))
	}

	count, _ := store.UnreadCount(ctx, testUserID)
	if count != 5 {
		t.Errorf("expected 5 unread, got %d", count)
	}

	if err := store.MarkRead(ctx, testUserID, items[0].ID, base); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	unread, _ := store.List(ctx, testUserID, ListOptions{UnreadOnly: true})
	if len(unread) != 4 {
		t.Errorf("expected 4 unread, got %d", len(unread))
	}

	updated, err := store.MarkAllRead(ctx, testUserID, base)
	if err != nil {
		t.Fatalf("mark all read failed: %v", err)
	}
	if updated != 4 {
		t.Errorf("expected 4 updated, got %d", updated)
	}
	count, _ = store.UnreadCount(ctx, otherUserID)
	if count != 1 {
		t.Errorf("other user's notifications should be untouched, got %d", count)
	}
}

func TestStore_MarkReadOtherUser(t *testing.T) {
	_, _, store := newTestService(t)
	ctx := context.Background()

	n := &Notification{UserID: otherUserID, Kind: KindRoleGranted, Title: "x"}
	store.Create(ctx, n)

	if err := store.MarkRead(ctx, testUserID, n.ID, time.Now()); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
