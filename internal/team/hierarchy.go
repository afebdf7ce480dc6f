package team

import "context"

// ReportsSource returns the direct reports of each listed manager.
type ReportsSource interface {
	DirectReports(ctx context.Context, managerIDs []string) (map[string][]string, error)
}

type Subordinate struct {
	UserID string
	Level  int
}

type Resolver struct {
	reports ReportsSource
}

func NewResolver(reports ReportsSource) *Resolver {
	return &Resolver{reports: reports}
}

// Subordinates walks the reporting graph breadth first from managerID, at
// most depth levels down. Each user appears once at the shallowest level it
// is reached; cycles terminate. The manager is never included.
func (r *Resolver) Subordinates(ctx context.Context, managerID string, depth int) ([]Subordinate, error) {
	var out []Subordinate
	visited := map[string]bool{managerID: true}
	frontier := []string{managerID}

	for level := 1; level <= depth && len(frontier) > 0; level++ {
		reports, err := r.reports.DirectReports(ctx, frontier)
		if err != nil {
			return nil, err
		}

		var next []string
		for _, manager := range frontier {
			for _, userID := range reports[manager] {
				if visited[userID] {
					continue
				}
				visited[userID] = true
				out = append(out, Subordinate{UserID: userID, Level: level})
				next = append(next, userID)
			}
		}
		frontier = next
	}
	return out, nil
}

// IsSubordinate reports whether target is within depth levels below managerID.
func (r *Resolver) IsSubordinate(ctx context.Context, managerID, target string, depth int) (bool, error) {
	subs, err := r.Subordinates(ctx, managerID, depth)
	if err != nil {
		return false, err
	}
	for _, s := range subs {
		if s.UserID == target {
			return true, nil
		}
	}
	return false, nil
}
