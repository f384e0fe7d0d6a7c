package dto

import (
	"time"

	"anoa.com/collegejournal/internal/entity"
	"github.com/google/uuid"
)

// UserResponse is the public projection of a user. The password hash never
// crosses the API boundary; this type is how it stays inside.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Bio         string    `json:"bio"`
	AvatarURL   string    `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt,
	}
}

type PublicUserResponse struct {
	UserResponse
	ArticleCount int64 `json:"article_count"`
}

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
}

func NewCategoryResponse(c entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Color:       c.Color,
	}
}

type CategoryWithCountResponse struct {
	CategoryResponse
	ArticleCount int64 `json:"article_count"`
}

type TagResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

func NewTagResponse(t entity.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug}
}

type ArticleResponse struct {
	ID            uuid.UUID         `json:"id"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Excerpt       string            `json:"excerpt"`
	Content       string            `json:"content"`
	CoverImageURL string            `json:"cover_image_url"`
	AuthorID      uuid.UUID         `json:"author_id"`
	Author        UserResponse      `json:"author"`
	CategoryID    *uuid.UUID        `json:"category_id"`
	Category      *CategoryResponse `json:"category"`
	Status        string            `json:"status"`
	PublishedAt   *time.Time        `json:"published_at"`
	ReadTime      int               `json:"read_time"`
	Tags          []TagResponse     `json:"tags"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func NewArticleResponse(a entity.Article) ArticleResponse {
	tags := make([]TagResponse, 0, len(a.Tags))
	for _, t := range a.Tags {
		tags = append(tags, NewTagResponse(t))
	}

	resp := ArticleResponse{
		ID:            a.ID,
		Title:         a.Title,
		Slug:          a.Slug,
		Excerpt:       a.Excerpt,
		Content:       a.Content,
		CoverImageURL: a.CoverImageURL,
		AuthorID:      a.AuthorID,
		Author:        NewUserResponse(a.Author),
		CategoryID:    a.CategoryID,
		Status:        a.Status,
		PublishedAt:   a.PublishedAt,
		ReadTime:      a.ReadTime,
		Tags:          tags,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}

	// A deleted category leaves the article orphaned; the response then
	// simply carries no category.
	if a.CategoryID != nil && a.Category.ID != uuid.Nil {
		cat := NewCategoryResponse(a.Category)
		resp.Category = &cat
	}

	return resp
}

type CommentResponse struct {
	ID         uuid.UUID         `json:"id"`
	ArticleID  uuid.UUID         `json:"article_id"`
	AuthorID   uuid.UUID         `json:"author_id"`
	Author     UserResponse      `json:"author"`
	ParentID   *uuid.UUID        `json:"parent_id"`
	Content    string            `json:"content"`
	IsApproved bool              `json:"is_approved"`
	CreatedAt  time.Time         `json:"created_at"`
	Replies    []CommentResponse `json:"replies,omitempty"`
}

func NewCommentResponse(c entity.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		ArticleID:  c.ArticleID,
		AuthorID:   c.AuthorID,
		Author:     NewUserResponse(c.Author),
		ParentID:   c.ParentID,
		Content:    c.Content,
		IsApproved: c.IsApproved,
		CreatedAt:  c.CreatedAt,
	}
}

type MessageResponse struct {
	ID        uuid.UUID    `json:"id"`
	ChannelID uuid.UUID    `json:"channel_id"`
	AuthorID  uuid.UUID    `json:"author_id"`
	Author    UserResponse `json:"author"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}

func NewMessageResponse(m entity.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		AuthorID:  m.AuthorID,
		Author:    NewUserResponse(m.Author),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

type ChannelResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ArticleID   *uuid.UUID       `json:"article_id"`
	Article     *ArticleResponse `json:"article"`
	IsPrivate   bool             `json:"is_private"`
	CreatedAt   time.Time        `json:"created_at"`
	LastMessage *MessageResponse `json:"last_message"`
	UnreadCount int              `json:"unread_count"`
}

// DashboardStats keeps the original field naming: total and published are
// scoped to the caller for non-admins, the remaining counts are global.
type DashboardStats struct {
	TotalArticles     int64 `json:"totalArticles"`
	PendingReviews    int64 `json:"pendingReviews"`
	PublishedArticles int64 `json:"publishedArticles"`
	TotalComments     int64 `json:"totalComments"`
	TotalUsers        int64 `json:"totalUsers"`
}
