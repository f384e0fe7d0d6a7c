package dto

type CreateCommentRequest struct {
	ArticleID string `json:"article_id" binding:"required,uuid"`
	ParentID  string `json:"parent_id" binding:"omitempty,uuid"`
	Content   string `json:"content" binding:"required,min=1,max=2000"`
}
