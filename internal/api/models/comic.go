package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comic struct {
	ID          string  `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string  `json:"name" gorm:"not null"`
	Slug        string  `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	Description string  `json:"description,omitempty"`
	Author      string  `json:"author,omitempty"`
	Category    string  `json:"category,omitempty"`
	PostedBy    string  `json:"posted_by" gorm:"type:uuid;not null;index"`
	ThumbnailID *string `json:"thumbnail_id,omitempty" gorm:"type:uuid"`
	Likes       int64   `json:"likes" gorm:"not null;default:0"`
	Views       int64   `json:"views" gorm:"not null;default:0"`

	Thumbnail *Resource `json:"thumbnail,omitempty" gorm:"foreignKey:ThumbnailID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// association
	Tags []ComicTag `json:"tags,omitempty" gorm:"many2many:comic_book_tags;constraint:OnDelete:CASCADE;"`
}

func (c *Comic) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (Comic) TableName() string {
	return "comics"
}
