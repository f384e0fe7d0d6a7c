package dto

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=200"`
	Slug        string `json:"slug" binding:"required,min=2,max=200"`
	Description string `json:"description"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=200"`
	Slug        *string `json:"slug" binding:"omitempty,min=2,max=200"`
	Description *string `json:"description"`
	Color       *string `json:"color" binding:"omitempty,hexcolor"`
}
