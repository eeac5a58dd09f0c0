package dto

import (
	"time"

	"comichub/internal/api/models"
)

type CreateChapterRequest struct {
	Name     string `json:"name" binding:"required"`
	ViewType string `json:"view_type"`
}

type UpdateChapterLengthRequest struct {
	Length *int `json:"length" binding:"required"`
}

type ChapterResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ComicID   string    `json:"comic_id"`
	PostedBy  string    `json:"posted_by"`
	ViewType  string    `json:"view_type"`
	Length    int       `json:"length"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromChapter(c models.ComicChapter) ChapterResponse {
	return ChapterResponse{
		ID:        c.ID,
		Name:      c.Name,
		ComicID:   c.ComicID,
		PostedBy:  c.PostedBy,
		ViewType:  string(c.ViewType),
		Length:    c.Length,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
