package metrics

import (
	"context"
	"errors"
)

// ErrCorruptSnapshot is returned when a stored snapshot cannot be decoded.
// Callers choose whether to surface it or recover from history.
var ErrCorruptSnapshot = errors.New("corrupt metrics snapshot")

// Repository persists per-period snapshots and the period selection of a user.
// Load and LoadSelection return shared.ErrNotFound for missing keys.
type Repository interface {
	Load(ctx context.Context, userID, key string) (*Record, error)
	Save(ctx context.Context, userID, key string, rec *Record) error
	LoadSelection(ctx context.Context, userID string) (*Selection, error)
	SaveSelection(ctx context.Context, userID string, sel *Selection) error
	Reset(ctx context.Context, userID string) error
	// DropCustom forgets every cached custom-range snapshot of the user.
	DropCustom(ctx context.Context, userID string) error
}
