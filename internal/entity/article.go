package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusRejected  = "rejected"
)

// ValidStatus reports whether s is one of the four workflow states.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPending, StatusPublished, StatusRejected:
		return true
	}
	return false
}

type Article struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string     `gorm:"size:500;not null" json:"title"`
	Slug          string     `gorm:"size:500;uniqueIndex;not null" json:"slug"`
	Excerpt       string     `gorm:"type:text" json:"excerpt"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	CoverImageURL string     `gorm:"type:text" json:"cover_image_url"`
	AuthorID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	Author        User       `gorm:"constraint:OnDelete:CASCADE" json:"author"`
	CategoryID    *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category      Category   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category"`
	Status        string     `gorm:"size:20;not null;default:draft;index" json:"status"`
	PublishedAt   *time.Time `json:"published_at"`
	ReadTime      int        `gorm:"default:1" json:"read_time"`
	Tags          []Tag      `gorm:"many2many:article_tags;constraint:OnDelete:CASCADE" json:"tags"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	return
}
