package dtos

type CreateLeadRequest struct {
	Name       string `json:"name" binding:"required,max=120"`
	Email      string `json:"email" binding:"required_without=Phone,omitempty,email"`
	Phone      string `json:"phone" binding:"required_without=Email,omitempty,phone"`
	Message    string `json:"message" binding:"max=5000"`
	Source     string `json:"source" binding:"omitempty,oneof=website referral walk_in portal"`
	PropertyID *int64 `json:"property_id"`
	ProjectID  *int64 `json:"project_id"`
}

type UpdateLeadRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=120"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone" binding:"omitempty,phone"`
	Message    *string `json:"message" binding:"omitempty,max=5000"`
	Status     *string `json:"status" binding:"omitempty,oneof=new contacted qualified closed lost"`
	AssignedTo *int64  `json:"assigned_to"`
}
