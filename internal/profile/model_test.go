package profile

import (
	"errors"
	"testing"

	"gorm.io/datatypes"
)

func TestParsePrivacy(t *testing.T) {
	tests := []struct {
		name    string
		data    datatypes.JSON
		want    PrivacySettings
		wantErr bool
	}{
		{
			name: "empty column uses defaults",
			data: nil,
			want: DefaultPrivacy(),
		},
		{
			name: "stored settings",
			data: datatypes.JSON(`{"visibility":"private","show_email":false,"show_phone":true}`),
			want: PrivacySettings{Visibility: VisibilityPrivate, ShowPhone: true},
		},
		{
			name:    "malformed json",
			data:    datatypes.JSON(`{"visibility":`),
			wantErr: true,
		},
		{
			name:    "unknown visibility",
			data:    datatypes.JSON(`{"visibility":"everyone"}`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrivacy(tt.data)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPrivacySettings) {
					t.Fatalf("expected ErrInvalidPrivacySettings, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestEncodePrivacy(t *testing.T) {
	data, err := EncodePrivacy(PrivacySettings{Visibility: VisibilityPublic, ShowMetrics: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	back, err := ParsePrivacy(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Visibility != VisibilityPublic || !back.ShowMetrics {
		t.Errorf("unexpected settings %+v", back)
	}

	if _, err := EncodePrivacy(PrivacySettings{}); !errors.Is(err, ErrInvalidPrivacySettings) {
		t.Errorf("expected ErrInvalidPrivacySettings for empty visibility, got %v", err)
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		in, first, last string
	}{
		{"", "", ""},
		{"Jane", "Jane", ""},
		{"Jane Doe", "Jane", "Doe"},
		{"Mary Ann Smith", "Mary Ann", "Smith"},
	}
	for _, tt := range tests {
		first, last := SplitName(tt.in)
		if first != tt.first || last != tt.last {
			t.Errorf("SplitName(%q) = %q, %q; want %q, %q", tt.in, first, last, tt.first, tt.last)
		}
	}
}

func TestProfile_FullName(t *testing.T) {
	tests := []struct {
		p    Profile
		want string
	}{
		{Profile{FirstName: "Jane", LastName: "Doe"}, "Jane Doe"},
		{Profile{FirstName: "Jane"}, "Jane"},
		{Profile{LastName: "Doe"}, "Doe"},
	}
	for _, tt := range tests {
		if got := tt.p.FullName(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestEffectivePrivacy(t *testing.T) {
	tests := []struct {
		name        string
		profile     *Profile
		wantMetrics bool
		wantEmail   bool
		wantPhone   bool
	}{
		{"no profile", nil, true, true, false},
		{"empty column", &Profile{}, true, true, false},
		{"metrics hidden", &Profile{Privacy: datatypes.JSON(`{"visibility":"team","show_email":true,"show_metrics":false}`)}, false, true, false},
		{"private overrides flags", &Profile{Privacy: datatypes.JSON(`{"visibility":"private","show_email":true,"show_phone":true,"show_metrics":true}`)}, false, false, false},
		{"public with phone", &Profile{Privacy: datatypes.JSON(`{"visibility":"public","show_phone":true,"show_metrics":true}`)}, true, false, true},
		{"unreadable hides all", &Profile{Privacy: datatypes.JSON(`{"visibility":"everyone"}`)}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := EffectivePrivacy(tt.profile)
			if s.SharesMetrics() != tt.wantMetrics {
				t.Errorf("SharesMetrics: expected %v", tt.wantMetrics)
			}
			if s.SharesEmail() != tt.wantEmail {
				t.Errorf("SharesEmail: expected %v", tt.wantEmail)
			}
			if s.SharesPhone() != tt.wantPhone {
				t.Errorf("SharesPhone: expected %v", tt.wantPhone)
			}
		})
	}
}
