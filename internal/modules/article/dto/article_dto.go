package dto

type CreateArticleRequest struct {
	Title         string   `json:"title" binding:"required,min=5,max=500"`
	Slug          string   `json:"slug" binding:"required,min=3,max=500"`
	Excerpt       string   `json:"excerpt" binding:"required"`
	Content       string   `json:"content" binding:"required,min=50"`
	CoverImageURL string   `json:"cover_image_url" binding:"omitempty,url"`
	CategoryID    string   `json:"category_id" binding:"required,uuid"`
	TagIDs        []string `json:"tag_ids" binding:"omitempty,dive,uuid"`
	Status        string   `json:"status" binding:"omitempty,oneof=draft pending published rejected"`
}

// UpdateArticleRequest uses pointers so a missing field and an empty field
// can be told apart.
type UpdateArticleRequest struct {
	Title         *string   `json:"title" binding:"omitempty,min=5,max=500"`
	Slug          *string   `json:"slug" binding:"omitempty,min=3,max=500"`
	Excerpt       *string   `json:"excerpt"`
	Content       *string   `json:"content" binding:"omitempty,min=50"`
	CoverImageURL *string   `json:"cover_image_url"`
	CategoryID    *string   `json:"category_id" binding:"omitempty,uuid"`
	TagIDs        *[]string `json:"tag_ids" binding:"omitempty,dive,uuid"`
	Status        *string   `json:"status" binding:"omitempty,oneof=draft pending published rejected"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft pending published rejected"`
}

type ListArticlesQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=draft pending published rejected"`
	AuthorID   string `form:"authorId" binding:"omitempty,uuid"`
	CategoryID string `form:"categoryId" binding:"omitempty,uuid"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type SearchArticlesQuery struct {
	Q     string `form:"q" binding:"required,min=2"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
