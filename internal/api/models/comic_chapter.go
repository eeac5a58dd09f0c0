package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ViewType is the content mode of a chapter.
type ViewType string

const (
	ViewTypeImage ViewType = "image"
	ViewTypeText  ViewType = "text"
)

func (v ViewType) Valid() bool {
	return v == ViewTypeImage || v == ViewTypeText
}

type ComicChapter struct {
	ID       string   `json:"id" gorm:"primaryKey;type:uuid"`
	Name     string   `json:"name" gorm:"not null"`
	ComicID  string   `json:"comic_id" gorm:"type:uuid;not null;index"`
	PostedBy string   `json:"posted_by" gorm:"type:uuid;not null"`
	ViewType ViewType `json:"view_type" gorm:"type:varchar(16);not null;default:'image'"`

	// Length is the number of content blocks (pages or paragraphs). New
	// chapters start at 0 and are updated once content is populated.
	Length int `json:"length" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *ComicChapter) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (ComicChapter) TableName() string {
	return "comic_chapters"
}
