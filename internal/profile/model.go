package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

var ErrInvalidPrivacySettings = errors.New("invalid privacy settings")

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityTeam    Visibility = "team"
	VisibilityPrivate Visibility = "private"
)

type Profile struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"index" json:"email,omitempty"`
	FirstName string         `json:"first_name,omitempty"`
	LastName  string         `json:"last_name,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Privacy   datatypes.JSON `json:"privacy,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

type PrivacySettings struct {
	Visibility  Visibility `json:"visibility"`
	ShowEmail   bool       `json:"show_email"`
	ShowPhone   bool       `json:"show_phone"`
	ShowMetrics bool       `json:"show_metrics"`
}

func DefaultPrivacy() PrivacySettings {
	return PrivacySettings{
		Visibility:  VisibilityTeam,
		ShowEmail:   true,
		ShowMetrics: true,
	}
}

func (s PrivacySettings) Validate() error {
	switch s.Visibility {
	case VisibilityPublic, VisibilityTeam, VisibilityPrivate:
		return nil
	}
	return fmt.Errorf("%w: visibility %q", ErrInvalidPrivacySettings, s.Visibility)
}

// ParsePrivacy decodes the stored settings. An empty column yields defaults;
// anything unreadable is reported as ErrInvalidPrivacySettings.
func ParsePrivacy(data datatypes.JSON) (PrivacySettings, error) {
	if len(data) == 0 {
		return DefaultPrivacy(), nil
	}

	var s PrivacySettings
	if err := json.Unmarshal(data, &s); err != nil {
		return PrivacySettings{}, fmt.Errorf("%w: %v", ErrInvalidPrivacySettings, err)
	}
	if err := s.Validate(); err != nil {
		return PrivacySettings{}, err
	}
	return s, nil
}

// SharesMetrics reports whether managers above the user may read their metrics.
func (s PrivacySettings) SharesMetrics() bool {
	return s.ShowMetrics && s.Visibility != VisibilityPrivate
}

func (s PrivacySettings) SharesEmail() bool {
	return s.ShowEmail && s.Visibility != VisibilityPrivate
}

func (s PrivacySettings) SharesPhone() bool {
	return s.ShowPhone && s.Visibility != VisibilityPrivate
}

// EffectivePrivacy returns the settings to enforce for p. A missing profile
// gets defaults; unreadable settings hide everything.
func EffectivePrivacy(p *Profile) PrivacySettings {
	if p == nil {
		return DefaultPrivacy()
	}
	s, err := ParsePrivacy(p.Privacy)
	if err != nil {
		return PrivacySettings{Visibility: VisibilityPrivate}
	}
	return s
}

func EncodePrivacy(s PrivacySettings) (datatypes.JSON, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

// SplitName breaks a display name from the identity provider into first and
// last name on the last space.
func SplitName(full string) (first, last string) {
	for i := len(full) - 1; i >= 0; i-- {
		if full[i] == ' ' {
			return full[:i], full[i+1:]
		}
	}
	return full, ""
}
