package dto

type CreateChannelRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description"`
	ArticleID   string `json:"article_id" binding:"omitempty,uuid"`
	IsPrivate   bool   `json:"is_private"`
}

type CreateMessageRequest struct {
	ChannelID string `json:"channel_id" binding:"required,uuid"`
	Content   string `json:"content" binding:"required,min=1,max=4000"`
}
