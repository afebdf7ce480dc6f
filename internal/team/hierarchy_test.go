package team

import (
	"context"
	"errors"
	"testing"
)

type graphSource map[string][]string

func (g graphSource) DirectReports(ctx context.Context, managerIDs []string) (map[string][]string, error) {
	out := make(map[string][]string)
	for _, m := range managerIDs {
		out[m] = g[m]
	}
	return out, nil
}

type failingSource struct{}

func (failingSource) DirectReports(ctx context.Context, managerIDs []string) (map[string][]string, error) {
	return nil, errors.New("db down")
}

func TestResolver_Subordinates(t *testing.T) {
	graph := graphSource{
		"boss": {"m1", "m2"},
		"m1":   {"a1", "a2"},
		"m2":   {"a2", "a3"},
		"a1":   {"x1"},
		"x1":   {"boss"},
	}
	r := NewResolver(graph)

	tests := []struct {
		name  string
		depth int
		want  map[string]int
	}{
		{"depth zero", 0, map[string]int{}},
		{"direct reports", 1, map[string]int{"m1": 1, "m2": 1}},
		{"two levels", 2, map[string]int{"m1": 1, "m2": 1, "a1": 2, "a2": 2, "a3": 2}},
		{"cycle back to root", 10, map[string]int{"m1": 1, "m2": 1, "a1": 2, "a2": 2, "a3": 2, "x1": 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs, err := r.Subordinates(context.Background(), "boss", tt.depth)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(subs) != len(tt.want) {
				t.Fatalf("expected %d subordinates, got %v", len(tt.want), subs)
			}
			for _, s := range subs {
				level, ok := tt.want[s.UserID]
				if !ok {
					t.Errorf("unexpected subordinate %s", s.UserID)
					continue
				}
				if s.Level != level {
					t.Errorf("%s: expected level %d, got %d", s.UserID, level, s.Level)
				}
			}
		})
	}
}

func TestResolver_IsSubordinate(t *testing.T) {
	r := NewResolver(graphSource{"m": {"a"}, "a": {"b"}})
	ctx := context.Background()

	if ok, _ := r.IsSubordinate(ctx, "m", "b", 1); ok {
		t.Error("b is two levels down and should not be visible at depth 1")
	}
	if ok, _ := r.IsSubordinate(ctx, "m", "b", 2); !ok {
		t.Error("b should be visible at depth 2")
	}
	if ok, _ := r.IsSubordinate(ctx, "a", "m", 5); ok {
		t.Error("managers are not subordinates of their reports")
	}
}

func TestResolver_PropagatesErrors(t *testing.T) {
	r := NewResolver(failingSource{})
	if _, err := r.Subordinates(context.Background(), "m", 1); err == nil {
		t.Error("expected error from source")
	}
}
