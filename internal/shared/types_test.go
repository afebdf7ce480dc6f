package shared

import (
	"strings"
	"testing"
	"time"
)

func TestNewID(t *testing.T) {
	tests := []struct {
		prefix string
	}{
		{prefix: "team_"},
		{prefix: "member_"},
		{prefix: "ntf_"},
		{prefix: ""},
	}

	for _, tt := range tests {
		t.Run("prefix_"+tt.prefix, func(t *testing.T) {
			id := NewID(tt.prefix)
			if !strings.HasPrefix(id, tt.prefix) {
				t.Errorf("expected ID to start with '%s', got '%s'", tt.prefix, id)
			}
			expectedLen := len(tt.prefix) + 32
			if len(id) != expectedLen {
				t.Errorf("expected length %d, got %d", expectedLen, len(id))
			}
		})
	}

	id1 := NewID("test_")
	id2 := NewID("test_")
	if id1 == id2 {
		t.Error("expected unique IDs, got duplicates")
	}
}

func TestDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 03:30 UTC on the 15th is still the 14th in New York.
	ts := time.Date(2024, 1, 15, 3, 30, 0, 0, time.UTC)

	if got := FormatDay(Day(ts, time.UTC)); got != "2024-01-15" {
		t.Errorf("expected 2024-01-15 in UTC, got %s", got)
	}
	if got := FormatDay(Day(ts, ny)); got != "2024-01-14" {
		t.Errorf("expected 2024-01-14 in New York, got %s", got)
	}
	if got := FormatDay(Day(ts, nil)); got != "2024-01-15" {
		t.Errorf("expected nil location to mean UTC, got %s", got)
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "2024-02-29"},
		{name: "invalid day", input: "2023-02-29", wantErr: true},
		{name: "wrong layout", input: "02/29/2024", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDay(tt.input, time.UTC)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if FormatDay(d) != tt.input {
				t.Errorf("expected %s, got %s", tt.input, FormatDay(d))
			}
		})
	}
}
