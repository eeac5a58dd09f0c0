package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Password     string `gorm:"column:password_hash;not null" json:"-"` // Not shown in JSON
	Nickname     string `gorm:"not null" json:"nickname"`
	Introduction string `json:"introduction"`

	// Every user belongs to exactly one permission group.
	PermissionGroupID int64            `gorm:"not null;index" json:"-"`
	PermissionGroup   *PermissionGroup `gorm:"foreignKey:PermissionGroupID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
