package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin     = "admin"
	RoleRedacteur = "redacteur"
)

// ValidRole reports whether s is one of the two fixed roles.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleRedacteur
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	DisplayName  string    `gorm:"size:200;not null" json:"display_name"`
	Role         string    `gorm:"size:20;not null;default:redacteur" json:"role"`
	Bio          string    `gorm:"type:text" json:"bio"`
	AvatarURL    string    `gorm:"type:text" json:"avatar_url"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID, err = uuid.NewV7()
	}
	return
}

// IsAdmin is the single role check used by the visibility rules.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
