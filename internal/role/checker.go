package role

import (
	"context"
	"log/slog"
	"slices"
)

// Checker answers role questions, reading through the Redis cache.
type Checker struct {
	store    *Store
	cache    *Cache
	maxDepth int
	logger   *slog.Logger
}

func NewChecker(store *Store, cache *Cache, maxDepth int, logger *slog.Logger) *Checker {
	return &Checker{
		store:    store,
		cache:    cache,
		maxDepth: maxDepth,
		logger:   logger,
	}
}

func (c *Checker) Roles(ctx context.Context, userID string) ([]Role, error) {
	if c.cache != nil {
		roles, ok, err := c.cache.Get(ctx, userID)
		if err != nil {
			c.logger.Warn("role cache read failed", "error", err, "user_id", userID)
		} else if ok {
			return roles, nil
		}
	}

	roles, err := c.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, userID, roles); err != nil {
			c.logger.Warn("role cache write failed", "error", err, "user_id", userID)
		}
	}
	return roles, nil
}

func (c *Checker) RoleNames(ctx context.Context, userID string) ([]string, error) {
	roles, err := c.Roles(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names, nil
}

func (c *Checker) HasAny(ctx context.Context, userID string, wanted ...Role) (bool, error) {
	roles, err := c.Roles(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if slices.Contains(wanted, r) {
			return true, nil
		}
	}
	return false, nil
}

func (c *Checker) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return c.HasAny(ctx, userID, SystemAdmin)
}

// HierarchyDepth is how many reporting levels below userID are visible.
// Zero means only the user's own data.
func (c *Checker) HierarchyDepth(ctx context.Context, userID string) (int, error) {
	roles, err := c.Roles(ctx, userID)
	if err != nil {
		return 0, err
	}
	return DepthFor(roles, c.maxDepth), nil
}

// DepthFor returns the deepest tier among roles, capped at maxDepth.
func DepthFor(roles []Role, maxDepth int) int {
	depth := 0
	for _, r := range roles {
		if r == SystemAdmin {
			return maxDepth
		}
		if d := tierDepth[r]; d > depth {
			depth = d
		}
	}
	return min(depth, maxDepth)
}

// Grant stores the role. A failed cache invalidation is logged; the cached
// roles then expire with the cache TTL.
func (c *Checker) Grant(ctx context.Context, userID string, r Role, grantedBy string) error {
	if err := c.store.Grant(ctx, userID, r, grantedBy); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

func (c *Checker) Revoke(ctx context.Context, userID string, r Role) error {
	if err := c.store.Revoke(ctx, userID, r); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

func (c *Checker) invalidate(ctx context.Context, userID string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Invalidate(ctx, userID); err != nil {
		c.logger.Warn("role cache invalidation failed", "error", err, "user_id", userID)
	}
}
