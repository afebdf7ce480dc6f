package dto

type CreateTeamRequest struct {
	Name string `json:"name" example:"West Region"`
}

type AddMemberRequest struct {
	UserID    string `json:"user_id" example:"6f1c2a7e-3b4d-4c5e-8f90-123456789abc"`
	Role      string `json:"role,omitempty" example:"member" enums:"member,manager"`
	ReportsTo string `json:"reports_to,omitempty" example:"0e0d6c1a-1111-4222-8333-444455556666"`
}

type MemberResponse struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name,omitempty" example:"Jane Doe"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role" example:"member"`
	ReportsTo string `json:"reports_to,omitempty"`
	Status    string `json:"status,omitempty" example:"pending" enums:"pending,active"`
}

type TeamResponse struct {
	ID        string           `json:"id" example:"team_abc123"`
	Name      string           `json:"name" example:"West Region"`
	OwnerID   string           `json:"owner_id"`
	CreatedAt string           `json:"created_at" example:"2024-01-15T10:00:00Z"`
	Members   []MemberResponse `json:"members,omitempty"`
}

type TeamListResponse struct {
	Teams []TeamResponse `json:"teams"`
}

type MemberMetrics struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name,omitempty"`
	Counts Counters `json:"counts"`
}

type TeamMetricsResponse struct {
	TeamID  string          `json:"team_id"`
	Period  string          `json:"period" example:"7d"`
	From    string          `json:"from,omitempty"`
	To      string          `json:"to,omitempty"`
	Members []MemberMetrics `json:"members"`
	Totals  Counters        `json:"totals"`
	Ratios  []RatioResponse `json:"ratios"`
}

type ReportResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Level  int    `json:"level" example:"1"`
}

type ReportsResponse struct {
	Depth   int              `json:"depth" example:"2"`
	Reports []ReportResponse `json:"reports"`
}
