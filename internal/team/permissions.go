package team

import (
	"context"

	"github.com/nkp491/surehelp/internal/profile"
	"github.com/nkp491/surehelp/internal/role"
)

// ProfileSource loads the profiles whose privacy settings gate metrics.
type ProfileSource interface {
	ListByIDs(ctx context.Context, ids []string) ([]*profile.Profile, error)
}

// Permissions decides whose metrics a viewer may read.
type Permissions struct {
	roles    *role.Checker
	resolver *Resolver
	profiles ProfileSource
}

func NewPermissions(roles *role.Checker, resolver *Resolver, profiles ProfileSource) *Permissions {
	return &Permissions{roles: roles, resolver: resolver, profiles: profiles}
}

// CanView allows viewers to read their own metrics, admins to read anyone's,
// and managers to read subordinates within their tier's depth who share
// their metrics.
func (p *Permissions) CanView(ctx context.Context, viewerID, targetID string) (bool, error) {
	if viewerID == targetID {
		return true, nil
	}

	admin, err := p.roles.IsAdmin(ctx, viewerID)
	if err != nil || admin {
		return admin, err
	}

	depth, err := p.roles.HierarchyDepth(ctx, viewerID)
	if err != nil || depth == 0 {
		return false, err
	}
	ok, err := p.resolver.IsSubordinate(ctx, viewerID, targetID, depth)
	if err != nil || !ok {
		return false, err
	}

	hidden, err := p.hidden(ctx, []string{targetID})
	if err != nil {
		return false, err
	}
	return !hidden[targetID], nil
}

// Visible filters userIDs down to the ones viewerID may read, keeping order.
func (p *Permissions) Visible(ctx context.Context, viewerID string, userIDs []string) ([]string, error) {
	admin, err := p.roles.IsAdmin(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if admin {
		return userIDs, nil
	}

	allowed := map[string]bool{viewerID: true}
	depth, err := p.roles.HierarchyDepth(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if depth > 0 {
		subs, err := p.resolver.Subordinates(ctx, viewerID, depth)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(subs))
		for i, s := range subs {
			ids[i] = s.UserID
		}
		hidden, err := p.hidden(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if !hidden[id] {
				allowed[id] = true
			}
		}
	}

	out := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if allowed[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

// hidden returns the users whose privacy settings keep their metrics from
// managers. Users without a profile share by default.
func (p *Permissions) hidden(ctx context.Context, ids []string) (map[string]bool, error) {
	out := make(map[string]bool)
	if p.profiles == nil || len(ids) == 0 {
		return out, nil
	}
	profiles, err := p.profiles.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, pr := range profiles {
		if !profile.EffectivePrivacy(pr).SharesMetrics() {
			out[pr.ID] = true
		}
	}
	return out, nil
}

// Reports lists the viewer's subordinates within their tier's depth.
func (p *Permissions) Reports(ctx context.Context, viewerID string) (int, []Subordinate, error) {
	depth, err := p.roles.HierarchyDepth(ctx, viewerID)
	if err != nil {
		return 0, nil, err
	}
	if depth == 0 {
		return 0, nil, nil
	}
	subs, err := p.resolver.Subordinates(ctx, viewerID, depth)
	return depth, subs, err
}
