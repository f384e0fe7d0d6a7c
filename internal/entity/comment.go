package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment.ParentID is a plain column, not a foreign key: whether it points at
// a comment on the same article is the API's problem, not the schema's.
type Comment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ArticleID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"article_id"`
	Article    Article    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AuthorID   uuid.UUID  `gorm:"type:uuid;not null" json:"author_id"`
	Author     User       `gorm:"constraint:OnDelete:CASCADE" json:"author"`
	ParentID   *uuid.UUID `gorm:"type:uuid" json:"parent_id"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	IsApproved bool       `gorm:"default:true" json:"is_approved"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
