package dtos

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Slug        string `json:"slug" binding:"omitempty,slug,max=220"`
	Developer   string `json:"developer" binding:"max=200"`
	City        string `json:"city" binding:"max=120"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=upcoming ongoing completed"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Slug        *string `json:"slug" binding:"omitempty,slug,max=220"`
	Developer   *string `json:"developer" binding:"omitempty,max=200"`
	City        *string `json:"city" binding:"omitempty,max=120"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=upcoming ongoing completed"`
}
