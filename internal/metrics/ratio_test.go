package metrics

import "testing"

func ratioValues(ratios []Ratio) map[string]string {
	out := make(map[string]string, len(ratios))
	for _, r := range ratios {
		out[r.Label] = r.Value
	}
	return out
}

func TestCalculateRatios_Order(t *testing.T) {
	ratios := CalculateRatios(Snapshot{})

	wantLabels := []string{
		"Leads to Contact", "Leads to Scheduled", "Leads to Sits", "Leads to Sales", "AP per Lead",
		"Calls to Contact", "Calls to Scheduled", "Calls to Sits", "Calls to Sales", "AP per Call",
		"Contact to Scheduled", "Contact to Sits", "Contact to Sales", "AP per Contact",
		"Scheduled to Sits", "Scheduled to Sales", "AP per Scheduled",
		"Sits to Sales", "AP per Sit",
		"AP per Sale",
	}

	if len(ratios) != len(wantLabels) {
		t.Fatalf("expected %d ratios, got %d", len(wantLabels), len(ratios))
	}
	for i, want := range wantLabels {
		if ratios[i].Label != want {
			t.Errorf("ratio %d: expected %q, got %q", i, want, ratios[i].Label)
		}
	}
}

func TestCalculateRatios_ZeroDenominators(t *testing.T) {
	for _, r := range CalculateRatios(Snapshot{}) {
		want := "0%"
		if r.Key[:3] == "ap_" {
			want = "$0.00"
		}
		if r.Value != want {
			t.Errorf("%s: expected %s, got %s", r.Label, want, r.Value)
		}
	}
}

func TestCalculateRatios_Values(t *testing.T) {
	snap := Snapshot{
		Leads:     10,
		Calls:     20,
		Contacts:  5,
		Scheduled: 2,
		Sits:      1,
		Sales:     1,
		AP:        500000,
	}

	got := ratioValues(CalculateRatios(snap))

	tests := map[string]string{
		"Leads to Contact":     "50%",
		"Leads to Scheduled":   "20%",
		"Leads to Sales":       "10%",
		"AP per Lead":          "$500.00",
		"Calls to Contact":     "25%",
		"AP per Call":          "$250.00",
		"Contact to Scheduled": "40%",
		"Scheduled to Sits":    "50%",
		"Sits to Sales":        "100%",
		"AP per Sale":          "$5000.00",
	}
	for label, want := range tests {
		if got[label] != want {
			t.Errorf("%s: expected %s, got %s", label, want, got[label])
		}
	}
}

func TestCalculateRatios_Rounding(t *testing.T) {
	got := ratioValues(CalculateRatios(Snapshot{Leads: 3, Contacts: 1, AP: 100}))

	if got["Leads to Contact"] != "33.33%" {
		t.Errorf("expected 33.33%%, got %s", got["Leads to Contact"])
	}
	if got["AP per Lead"] != "$0.33" {
		t.Errorf("expected $0.33, got %s", got["AP per Lead"])
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{100, "$1.00"},
		{500000, "$5000.00"},
		{123456, "$1234.56"},
	}

	for _, tt := range tests {
		if got := FormatCents(tt.cents); got != tt.want {
			t.Errorf("FormatCents(%d): expected %s, got %s", tt.cents, tt.want, got)
		}
	}
}
