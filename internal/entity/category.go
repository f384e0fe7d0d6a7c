package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultCategoryColor is the accent used when a category is created without
// an explicit one.
const DefaultCategoryColor = "#3b82f6"

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Slug        string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Color       string    `gorm:"size:20;default:#3b82f6" json:"color"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
