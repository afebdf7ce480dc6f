package dto

type MeResponse struct {
	ID        string   `json:"id" example:"6f1c2a7e-3b4d-4c5e-8f90-123456789abc"`
	Email     string   `json:"email,omitempty" example:"agent@example.com"`
	FirstName string   `json:"first_name,omitempty" example:"Jane"`
	LastName  string   `json:"last_name,omitempty" example:"Doe"`
	Phone     string   `json:"phone,omitempty" example:"+15555550100"`
	AvatarURL string   `json:"avatar_url,omitempty" example:"https://example.com/avatar.png"`
	Roles     []string `json:"roles"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" example:"Jane"`
	LastName  *string `json:"last_name,omitempty" example:"Doe"`
	Phone     *string `json:"phone,omitempty" example:"+15555550100"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type PrivacySettings struct {
	Visibility  string `json:"visibility" example:"team" enums:"public,team,private"`
	ShowEmail   bool   `json:"show_email" example:"true"`
	ShowPhone   bool   `json:"show_phone" example:"false"`
	ShowMetrics bool   `json:"show_metrics" example:"true"`
}
