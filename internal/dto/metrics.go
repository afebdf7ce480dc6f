package dto

type Counters struct {
	Leads     int64  `json:"leads" example:"10"`
	Calls     int64  `json:"calls" example:"20"`
	Contacts  int64  `json:"contacts" example:"5"`
	Scheduled int64  `json:"scheduled" example:"2"`
	Sits      int64  `json:"sits" example:"1"`
	Sales     int64  `json:"sales" example:"1"`
	AP        int64  `json:"ap" example:"500000"`
	APDisplay string `json:"ap_display" example:"$5000.00"`
}

type RatioResponse struct {
	Key   string `json:"key" example:"leads_to_contact"`
	Label string `json:"label" example:"Leads to Contact"`
	Value string `json:"value" example:"50%"`
}

type SnapshotResponse struct {
	Period string          `json:"period" example:"24h"`
	From   string          `json:"from,omitempty" example:"2024-01-01"`
	To     string          `json:"to,omitempty" example:"2024-01-31"`
	Counts Counters        `json:"counts"`
	Ratios []RatioResponse `json:"ratios,omitempty"`
}

type RatiosResponse struct {
	Period string          `json:"period" example:"7d"`
	Ratios []RatioResponse `json:"ratios"`
}

type AdjustCounterRequest struct {
	Steps int64 `json:"steps" example:"1"`
}

type SetCounterRequest struct {
	Value *int64 `json:"value" example:"500000"`
}

type CounterResponse struct {
	Field  string   `json:"field" example:"ap"`
	Value  int64    `json:"value" example:"500100"`
	Date   string   `json:"date" example:"2024-01-15"`
	Counts Counters `json:"counts"`
}

type SelectionRequest struct {
	Period string `json:"period" example:"custom"`
	From   string `json:"from,omitempty" example:"2024-01-01"`
	To     string `json:"to,omitempty" example:"2024-01-31"`
}

type SelectionResponse struct {
	Active         string   `json:"active" example:"7d"`
	From           string   `json:"from,omitempty" example:"2024-01-01"`
	To             string   `json:"to,omitempty" example:"2024-01-31"`
	PreviousPeriod string   `json:"previous_period,omitempty" example:"24h"`
	Previous       Counters `json:"previous"`
	Changed        bool     `json:"changed" example:"true"`
	ChangedAt      string   `json:"changed_at,omitempty" example:"2024-01-15T10:00:00Z"`
}

type TrendDeltaResponse struct {
	Field    string  `json:"field" example:"leads"`
	Current  int64   `json:"current" example:"12"`
	Previous int64   `json:"previous" example:"10"`
	Percent  float64 `json:"percent" example:"20"`
}

type TrendResponse struct {
	Period         string               `json:"period" example:"7d"`
	PreviousPeriod string               `json:"previous_period,omitempty" example:"24h"`
	Deltas         []TrendDeltaResponse `json:"deltas"`
}

type DayRequest struct {
	Leads     int64 `json:"leads"`
	Calls     int64 `json:"calls"`
	Contacts  int64 `json:"contacts"`
	Scheduled int64 `json:"scheduled"`
	Sits      int64 `json:"sits"`
	Sales     int64 `json:"sales"`
	AP        int64 `json:"ap"`
}

type DayResponse struct {
	Date   string   `json:"date" example:"2024-01-15"`
	Counts Counters `json:"counts"`
}

type HistoryResponse struct {
	From   string        `json:"from" example:"2024-01-01"`
	To     string        `json:"to" example:"2024-01-31"`
	Days   []DayResponse `json:"days"`
	Totals Counters      `json:"totals"`
}

type RebuildResponse struct {
	Windows map[string]Counters `json:"windows"`
}
