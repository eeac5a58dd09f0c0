package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resource is the metadata row for one uploaded file. The file itself lives
// on disk under Path; other entities reference resources by id (e.g. a comic
// thumbnail).
type Resource struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name          string    `gorm:"not null" json:"name"` // original client filename
	Filename      string    `gorm:"uniqueIndex;not null" json:"filename"`
	Path          string    `gorm:"not null" json:"-"`
	ThumbnailPath string    `json:"-"`
	MimeType      string    `json:"mime_type"`
	Size          int64     `json:"size"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	UploadedBy    string    `gorm:"type:uuid;not null;index" json:"uploaded_by"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (Resource) TableName() string {
	return "resources"
}
