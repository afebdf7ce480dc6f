package metrics

import (
	"errors"
	"strings"
	"time"

	"github.com/nkp491/surehelp/internal/shared"
)

var (
	ErrUnknownPeriod   = errors.New("unknown period")
	ErrIncompleteRange = errors.New("custom period requires a complete date range")
)

type Period string

const (
	Period24h    Period = "24h"
	Period7d     Period = "7d"
	Period30d    Period = "30d"
	PeriodCustom Period = "custom"
)

// Windows are the rolling periods kept in the snapshot cache.
var Windows = []Period{Period24h, Period7d, Period30d}

func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case Period24h, Period7d, Period30d, PeriodCustom:
		return p, nil
	case "":
		return Period24h, nil
	}
	return "", ErrUnknownPeriod
}

// Days is the window length in calendar days; zero for custom.
func (p Period) Days() int {
	switch p {
	case Period24h:
		return 1
	case Period7d:
		return 7
	case Period30d:
		return 30
	}
	return 0
}

func (p Period) IsWindow() bool {
	return p.Days() > 0
}

// Bounds returns the inclusive first and last day of the window ending on today.
func (p Period) Bounds(today time.Time) (from, to time.Time) {
	return today.AddDate(0, 0, -(p.Days() - 1)), today
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (r *DateRange) Complete() bool {
	if r == nil || r.From.IsZero() || r.To.IsZero() {
		return false
	}
	return !r.To.Before(r.From)
}

const customPrefix = "custom:"

// Key is the snapshot key a custom range is cached under.
func (r DateRange) Key() string {
	return customPrefix + shared.FormatDay(r.From) + "_" + shared.FormatDay(r.To)
}

// ParseRange builds a range from YYYY-MM-DD strings. Either side may be empty,
// in which case the returned range is incomplete.
func ParseRange(from, to string, loc *time.Location) (*DateRange, error) {
	r := &DateRange{}
	if from != "" {
		d, err := shared.ParseDay(from, loc)
		if err != nil {
			return nil, err
		}
		r.From = d
	}
	if to != "" {
		d, err := shared.ParseDay(to, loc)
		if err != nil {
			return nil, err
		}
		r.To = d
	}
	return r, nil
}
