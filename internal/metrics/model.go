package metrics

import (
	"errors"
	"math"
	"strings"
	"time"
)

var ErrUnknownField = errors.New("unknown metric field")

type Field string

const (
	FieldLeads     Field = "leads"
	FieldCalls     Field = "calls"
	FieldContacts  Field = "contacts"
	FieldScheduled Field = "scheduled"
	FieldSits      Field = "sits"
	FieldSales     Field = "sales"
	FieldAP        Field = "ap"
)

// Fields lists the counters in funnel order.
var Fields = []Field{
	FieldLeads,
	FieldCalls,
	FieldContacts,
	FieldScheduled,
	FieldSits,
	FieldSales,
	FieldAP,
}

// APStep is one increment of annual premium, in cents.
const APStep int64 = 100

func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", ErrUnknownField
}

func (f Field) String() string {
	return string(f)
}

// Step is the amount a single increment or decrement moves the counter.
func (f Field) Step() int64 {
	if f == FieldAP {
		return APStep
	}
	return 1
}

// Snapshot holds the seven activity counters for one period. AP is in cents.
type Snapshot struct {
	Leads     int64 `json:"leads"`
	Calls     int64 `json:"calls"`
	Contacts  int64 `json:"contacts"`
	Scheduled int64 `json:"scheduled"`
	Sits      int64 `json:"sits"`
	Sales     int64 `json:"sales"`
	AP        int64 `json:"ap"`
}

func (s Snapshot) Get(f Field) int64 {
	switch f {
	case FieldLeads:
		return s.Leads
	case FieldCalls:
		return s.Calls
	case FieldContacts:
		return s.Contacts
	case FieldScheduled:
		return s.Scheduled
	case FieldSits:
		return s.Sits
	case FieldSales:
		return s.Sales
	case FieldAP:
		return s.AP
	}
	return 0
}

// Set stores v, clamping negative values to zero.
func (s *Snapshot) Set(f Field, v int64) {
	if v < 0 {
		v = 0
	}
	switch f {
	case FieldLeads:
		s.Leads = v
	case FieldCalls:
		s.Calls = v
	case FieldContacts:
		s.Contacts = v
	case FieldScheduled:
		s.Scheduled = v
	case FieldSits:
		s.Sits = v
	case FieldSales:
		s.Sales = v
	case FieldAP:
		s.AP = v
	}
}

// Add applies delta to a counter. The result stays within [0, MaxInt64].
func (s *Snapshot) Add(f Field, delta int64) {
	s.Set(f, saturatingAdd(s.Get(f), delta))
}

func (s Snapshot) Plus(o Snapshot) Snapshot {
	for _, f := range Fields {
		s.Set(f, saturatingAdd(s.Get(f), o.Get(f)))
	}
	return s
}

func saturatingAdd(a, b int64) int64 {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return math.MaxInt64
	case b < 0 && a < math.MinInt64-b:
		return math.MinInt64
	}
	return a + b
}

func (s Snapshot) IsZero() bool {
	return s == Snapshot{}
}

// Record is what the repository persists for a period key.
type Record struct {
	Snapshot  Snapshot  `json:"snapshot"`
	Day       string    `json:"day"`
	UpdatedAt time.Time `json:"updated_at"`
}
