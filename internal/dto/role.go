package dto

type RolesResponse struct {
	UserID         string   `json:"user_id" example:"6f1c2a7e-3b4d-4c5e-8f90-123456789abc"`
	Roles          []string `json:"roles" example:"agent,manager_pro"`
	HierarchyDepth int      `json:"hierarchy_depth" example:"1"`
}

type RoleChangeRequest struct {
	UserID string `json:"user_id" example:"6f1c2a7e-3b4d-4c5e-8f90-123456789abc"`
	Role   string `json:"role" example:"manager_pro_gold" enums:"agent,manager_pro,manager_pro_gold,manager_pro_platinum,beta_user,system_admin"`
}
